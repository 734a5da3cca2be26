package types

import "uat/internal/path"

// FileUploadQuestionDefinition asks for a document; the answer is the storage
// key of the uploaded file.
type FileUploadQuestionDefinition struct {
	definition
}

func NewFileUploadQuestionDefinition(cfg Config) *FileUploadQuestionDefinition {
	return &FileUploadQuestionDefinition{definition: newDefinition(cfg)}
}

func (q *FileUploadQuestionDefinition) Type() QuestionType { return FileUpload }
func (q *FileUploadQuestionDefinition) Accept(v Visitor)   { v.VisitFileUpload(q) }
func (q *FileUploadQuestionDefinition) Validate() []error  { return q.validate() }

func (q *FileUploadQuestionDefinition) FileKeyPath() path.Path { return q.cfg.Path.Join("file") }

func (q *FileUploadQuestionDefinition) Equal(other QuestionDefinition) bool {
	o, ok := other.(*FileUploadQuestionDefinition)
	return ok && o != nil && q.cfg.equal(o.cfg)
}
