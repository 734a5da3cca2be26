package question

import "uat/internal/question/types"

type FileUploadQuestion struct {
	view
	def *types.FileUploadQuestionDefinition
}

func newFileUploadQuestion(q *ApplicantQuestion, def *types.FileUploadQuestionDefinition) *FileUploadQuestion {
	return &FileUploadQuestion{view: view{q: q}, def: def}
}

// FileKey is the storage key of the uploaded file.
func (f *FileUploadQuestion) FileKey() (string, bool) {
	key, ok := f.q.data.ReadString(f.def.FileKeyPath())
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func (f *FileUploadQuestion) IsAnswered() bool {
	_, ok := f.FileKey()
	return ok
}

func (f *FileUploadQuestion) QuestionErrors() []ValidationError {
	return f.questionErrors(f.IsAnswered())
}

func (f *FileUploadQuestion) TypeSpecificErrors() []ValidationError { return nil }

func (f *FileUploadQuestion) HasQuestionErrors() bool     { return len(f.QuestionErrors()) > 0 }
func (f *FileUploadQuestion) HasTypeSpecificErrors() bool { return false }
