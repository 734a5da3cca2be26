package question

import (
	"strings"

	"uat/internal/path"
	"uat/internal/question/types"
)

type AddressQuestion struct {
	view
	def *types.AddressQuestionDefinition
}

func newAddressQuestion(q *ApplicantQuestion, def *types.AddressQuestionDefinition) *AddressQuestion {
	return &AddressQuestion{view: view{q: q}, def: def}
}

func (a *AddressQuestion) Street() (string, bool) { return a.read(a.def.StreetPath()) }
func (a *AddressQuestion) City() (string, bool)   { return a.read(a.def.CityPath()) }
func (a *AddressQuestion) State() (string, bool)  { return a.read(a.def.StatePath()) }
func (a *AddressQuestion) Zip() (string, bool)    { return a.read(a.def.ZipPath()) }

// read treats blank strings as absent.
func (a *AddressQuestion) read(p path.Path) (string, bool) {
	s, ok := a.q.data.ReadString(p)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func (a *AddressQuestion) IsAnswered() bool {
	for _, p := range []path.Path{a.def.StreetPath(), a.def.CityPath(), a.def.StatePath(), a.def.ZipPath()} {
		if _, ok := a.read(p); ok {
			return true
		}
	}
	return false
}

func (a *AddressQuestion) QuestionErrors() []ValidationError {
	return a.questionErrors(a.IsAnswered())
}

func (a *AddressQuestion) TypeSpecificErrors() []ValidationError {
	if !a.IsAnswered() {
		return nil
	}
	var errs []ValidationError
	if _, ok := a.Street(); !ok {
		errs = append(errs, newValidationError(KeyStreetRequired))
	}
	if _, ok := a.City(); !ok {
		errs = append(errs, newValidationError(KeyCityRequired))
	}
	if _, ok := a.Zip(); !ok {
		errs = append(errs, newValidationError(KeyZipRequired))
	}
	return errs
}

func (a *AddressQuestion) HasQuestionErrors() bool     { return len(a.QuestionErrors()) > 0 }
func (a *AddressQuestion) HasTypeSpecificErrors() bool { return len(a.TypeSpecificErrors()) > 0 }
