// Package catalog loads question definitions from YAML.
//
// Text coming from a catalog file is untrusted: question and option text are
// reduced to plain text and help text keeps only user-generated-content
// markup.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"uat/internal/path"
	"uat/internal/question/types"
	"uat/pkg/domain"
)

type file struct {
	Questions []questionEntry `yaml:"questions"`
}

type questionEntry struct {
	ID          int64             `yaml:"id"`
	Name        string            `yaml:"name"`
	Type        string            `yaml:"type"`
	Path        string            `yaml:"path"`
	Description string            `yaml:"description"`
	Stage       string            `yaml:"stage"`
	Required    bool              `yaml:"required"`
	RepeaterID  int64             `yaml:"repeater_id"`
	Text        map[string]string `yaml:"text"`
	Help        map[string]string `yaml:"help"`
	Min         *int64            `yaml:"min"`
	Max         *int64            `yaml:"max"`
	Options     []optionEntry     `yaml:"options"`
}

type optionEntry struct {
	ID   int64             `yaml:"id"`
	Text map[string]string `yaml:"text"`
}

// Catalog is an ordered, id-indexed set of definitions.
type Catalog struct {
	definitions []types.QuestionDefinition
	byID        map[domain.QuestionID]types.QuestionDefinition
}

func LoadFile(name string) (*Catalog, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Load(bytes.NewReader(raw))
}

// Load decodes a catalog and builds every definition in it. Unknown YAML
// fields, unsupported question types, duplicate ids and definitions that
// fail validation are all reported, joined into one error.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byID: make(map[domain.QuestionID]types.QuestionDefinition, len(f.Questions))}
	var errs []error
	for i, entry := range f.Questions {
		def, err := entry.build()
		if err != nil {
			errs = append(errs, fmt.Errorf("question %d (%q): %w", i, entry.Name, err))
			continue
		}
		if _, dup := c.byID[def.ID()]; dup {
			errs = append(errs, fmt.Errorf("question %d (%q): duplicate id %s", i, entry.Name, def.ID()))
			continue
		}
		if problems := def.Validate(); len(problems) > 0 {
			errs = append(errs, fmt.Errorf("question %d (%q): %w", i, entry.Name, errors.Join(problems...)))
			continue
		}
		c.definitions = append(c.definitions, def)
		c.byID[def.ID()] = def
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

func (e questionEntry) build() (types.QuestionDefinition, error) {
	typ, err := types.ParseQuestionType(e.Type)
	if err != nil {
		return nil, err
	}
	stage := domain.LifecycleStageActive
	if e.Stage != "" {
		if stage, err = domain.ParseLifecycleStage(e.Stage); err != nil {
			return nil, err
		}
	}
	text, err := localized(e.Text, sanitizeText)
	if err != nil {
		return nil, fmt.Errorf("text: %w", err)
	}
	help, err := localized(e.Help, sanitizeHelp)
	if err != nil {
		return nil, fmt.Errorf("help: %w", err)
	}

	b := types.NewBuilder().
		SetType(typ).
		SetID(domain.QuestionID(e.ID)).
		SetName(e.Name).
		SetPath(path.Create(e.Path)).
		SetDescription(e.Description).
		SetStage(stage).
		SetRequired(e.Required).
		SetRepeaterID(domain.QuestionID(e.RepeaterID)).
		SetQuestionText(text).
		SetHelpText(help).
		SetRange(types.Range{Min: e.Min, Max: e.Max})
	for _, o := range e.Options {
		optionText, err := localized(o.Text, sanitizeText)
		if err != nil {
			return nil, fmt.Errorf("option %d: %w", o.ID, err)
		}
		b.AddOption(types.NewQuestionOption(o.ID, optionText))
	}
	return b.Build()
}

func localized(texts map[string]string, clean func(string) string) (map[language.Tag]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make(map[language.Tag]string, len(texts))
	for locale, text := range texts {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		out[tag] = clean(text)
	}
	return out, nil
}

// Definitions returns the definitions in file order.
func (c *Catalog) Definitions() []types.QuestionDefinition {
	return slices.Clone(c.definitions)
}

func (c *Catalog) Lookup(id domain.QuestionID) (types.QuestionDefinition, bool) {
	def, ok := c.byID[id]
	return def, ok
}

// ForProgram returns the definitions with the given ids, in the order given.
// Ids missing from the catalog are returned separately.
func (c *Catalog) ForProgram(ids []domain.QuestionID) ([]types.QuestionDefinition, []domain.QuestionID) {
	var (
		found   []types.QuestionDefinition
		missing []domain.QuestionID
	)
	for _, id := range ids {
		if def, ok := c.byID[id]; ok {
			found = append(found, def)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

func (c *Catalog) Len() int {
	return len(c.definitions)
}
