package question

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"uat/internal/applicant/data"
	"uat/internal/question/types"
)

func required(def types.QuestionDefinition) types.QuestionDefinition {
	built, err := types.BuilderFrom(def).SetRequired(true).Build()
	if err != nil {
		panic(err)
	}
	return built
}

func TestSingleSelect(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		q := New(dropdownDefinition, data.New())
		view := q.CreateSingleSelectQuestion()

		assert.ElementsMatch(t, []types.LocalizedQuestionOption{
			{ID: 1, Text: "option 1", Locale: language.AmericanEnglish},
			{ID: 2, Text: "option 2", Locale: language.AmericanEnglish},
		}, view.Options())
		assert.False(t, q.HasErrors())
		_, ok := view.SelectedOptionValue()
		assert.False(t, ok)
	})

	t.Run("selected option", func(t *testing.T) {
		d := data.New()
		d.PutLong(dropdownDefinition.SelectionPath(), 1)
		view := New(dropdownDefinition, d).CreateSingleSelectQuestion()

		assert.False(t, view.HasTypeSpecificErrors())
		assert.False(t, view.HasQuestionErrors())
		selected, ok := view.SelectedOptionValue()
		require.True(t, ok)
		assert.Equal(t, types.LocalizedQuestionOption{ID: 1, Text: "option 1", Locale: language.AmericanEnglish}, selected)
	})

	t.Run("selection in preferred locale", func(t *testing.T) {
		d := data.New()
		d.SetPreferredLocale(language.French)
		d.PutLong(dropdownDefinition.SelectionPath(), 2)
		view := New(dropdownDefinition, d).CreateSingleSelectQuestion()

		selected, ok := view.SelectedOptionValue()
		require.True(t, ok)
		assert.Equal(t, types.LocalizedQuestionOption{ID: 2, Text: "deux", Locale: language.French}, selected)
		assert.Equal(t, "un", view.Options()[0].Text)
	})

	t.Run("stale selection reads as absent", func(t *testing.T) {
		d := data.New()
		d.PutLong(dropdownDefinition.SelectionPath(), 9)
		view := New(dropdownDefinition, d).CreateSingleSelectQuestion()

		assert.False(t, view.HasTypeSpecificErrors())
		assert.False(t, view.HasQuestionErrors())
		_, ok := view.SelectedOptionValue()
		assert.False(t, ok)
		id, ok := view.SelectedOptionID()
		require.True(t, ok)
		assert.Equal(t, int64(9), id)
	})

	t.Run("stale selection on a required question is unanswered", func(t *testing.T) {
		d := data.New()
		d.PutLong(dropdownDefinition.SelectionPath(), 9)
		q := New(required(dropdownDefinition), d)

		assert.True(t, q.HasErrors())
		assert.Equal(t, []ValidationError{{Key: KeyRequired}}, q.ErrorsPresenter().QuestionErrors())
		assert.Empty(t, q.ErrorsPresenter().TypeSpecificErrors())
	})
}

func TestMultiSelect(t *testing.T) {
	def := types.NewCheckboxQuestionDefinition(config(), []types.QuestionOption{
		option(1, "option 1"), option(2, "option 2"), option(3, "option 3"),
	}, types.Between(1, 2))

	t.Run("drops stale and repeated ids", func(t *testing.T) {
		d := data.New()
		d.PutLongList(def.SelectionPath(), []int64{3, 9, 1, 3})
		view := New(def, d).CreateMultiSelectQuestion()

		selected, ok := view.SelectedOptionsValue()
		require.True(t, ok)
		assert.Equal(t, []types.LocalizedQuestionOption{
			{ID: 3, Text: "option 3", Locale: language.AmericanEnglish},
			{ID: 1, Text: "option 1", Locale: language.AmericanEnglish},
		}, selected)
		assert.False(t, view.HasTypeSpecificErrors())

		ids, ok := view.SelectedOptionIDs()
		require.True(t, ok)
		assert.Equal(t, []int64{3, 9, 1, 3}, ids)
	})

	t.Run("only stale ids", func(t *testing.T) {
		d := data.New()
		d.PutLongList(def.SelectionPath(), []int64{8, 9})
		view := New(def, d).CreateMultiSelectQuestion()

		_, ok := view.SelectedOptionsValue()
		assert.False(t, ok)
		assert.False(t, view.IsAnswered())
		assert.False(t, view.HasTypeSpecificErrors())
	})

	t.Run("too many choices", func(t *testing.T) {
		d := data.New()
		d.PutLongList(def.SelectionPath(), []int64{1, 2, 3})
		view := New(def, d).CreateMultiSelectQuestion()

		assert.Equal(t, []ValidationError{{Key: KeyTooManyChoices, Args: []string{"2"}}}, view.TypeSpecificErrors())
	})

	t.Run("too few choices", func(t *testing.T) {
		atLeastTwo := types.NewCheckboxQuestionDefinition(config(), def.Options(), types.AtLeast(2))
		d := data.New()
		d.PutLongList(atLeastTwo.SelectionPath(), []int64{2})
		view := New(atLeastTwo, d).CreateMultiSelectQuestion()

		assert.Equal(t, []ValidationError{{Key: KeyTooFewChoices, Args: []string{"2"}}}, view.TypeSpecificErrors())
	})
}

func TestAddress(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		d := data.New()
		d.PutString(addressDefinition.StreetPath(), "123 Main St")
		d.PutString(addressDefinition.CityPath(), "Seattle")
		d.PutString(addressDefinition.StatePath(), "WA")
		d.PutString(addressDefinition.ZipPath(), "98101")
		view := New(addressDefinition, d).CreateAddressQuestion()

		street, ok := view.Street()
		require.True(t, ok)
		assert.Equal(t, "123 Main St", street)
		assert.True(t, view.IsAnswered())
		assert.False(t, view.HasTypeSpecificErrors())
	})

	t.Run("partial", func(t *testing.T) {
		d := data.New()
		d.PutString(addressDefinition.CityPath(), "Seattle")
		d.PutString(addressDefinition.ZipPath(), "  ")
		view := New(addressDefinition, d).CreateAddressQuestion()

		assert.Equal(t, []ValidationError{{Key: KeyStreetRequired}, {Key: KeyZipRequired}}, view.TypeSpecificErrors())
		_, ok := view.State()
		assert.False(t, ok)
	})

	t.Run("required and blank", func(t *testing.T) {
		view := New(required(addressDefinition), data.New()).ErrorsPresenter()
		assert.True(t, view.HasQuestionErrors())
		assert.False(t, view.HasTypeSpecificErrors())
	})
}

func TestName(t *testing.T) {
	d := data.New()
	d.PutString(nameDefinition.FirstNamePath(), "Ada")
	view := New(nameDefinition, d).CreateNameQuestion()

	first, ok := view.FirstName()
	require.True(t, ok)
	assert.Equal(t, "Ada", first)
	_, ok = view.MiddleName()
	assert.False(t, ok)
	assert.Equal(t, []ValidationError{{Key: KeyLastNameRequired}}, view.TypeSpecificErrors())

	d.PutString(nameDefinition.LastNamePath(), "Lovelace")
	assert.False(t, view.HasTypeSpecificErrors())
}

func TestNumber(t *testing.T) {
	bounded := types.NewNumberQuestionDefinition(config(), types.Between(0, 120))

	tests := []struct {
		name  string
		store func(d *data.ApplicantData)
		want  []ValidationError
		value int64
		ok    bool
	}{
		{"unanswered", func(*data.ApplicantData) {}, nil, 0, false},
		{"in range", func(d *data.ApplicantData) { d.PutLong(bounded.NumberPath(), 42) }, nil, 42, true},
		{"numeric string", func(d *data.ApplicantData) { d.PutString(bounded.NumberPath(), "7") }, nil, 7, true},
		{"malformed", func(d *data.ApplicantData) { d.PutString(bounded.NumberPath(), "seven") }, []ValidationError{{Key: KeyNumberInvalid}}, 0, false},
		{"fractional", func(d *data.ApplicantData) { d.PutDouble(bounded.NumberPath(), 1.5) }, []ValidationError{{Key: KeyNumberInvalid}}, 0, false},
		{"too small", func(d *data.ApplicantData) { d.PutLong(bounded.NumberPath(), -1) }, []ValidationError{{Key: KeyNumberTooSmall, Args: []string{"0"}}}, -1, true},
		{"too large", func(d *data.ApplicantData) { d.PutLong(bounded.NumberPath(), 121) }, []ValidationError{{Key: KeyNumberTooLarge, Args: []string{"120"}}}, 121, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := data.New()
			tt.store(d)
			view := New(bounded, d).CreateNumberQuestion()

			assert.Equal(t, tt.want, view.TypeSpecificErrors())
			v, ok := view.Value()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, v)
		})
	}
}

func TestText(t *testing.T) {
	bounded := types.NewTextQuestionDefinition(config(), types.Between(2, 5))

	d := data.New()
	view := New(bounded, d).CreateTextQuestion()
	assert.False(t, view.IsAnswered())

	d.PutString(bounded.TextPath(), "")
	assert.False(t, view.IsAnswered())
	assert.Empty(t, view.TypeSpecificErrors())

	d.PutString(bounded.TextPath(), "a")
	assert.Equal(t, []ValidationError{{Key: KeyTextTooShort, Args: []string{"2"}}}, view.TypeSpecificErrors())

	d.PutString(bounded.TextPath(), "héllo")
	assert.Empty(t, view.TypeSpecificErrors())

	d.PutString(bounded.TextPath(), "héllo!")
	assert.Equal(t, []ValidationError{{Key: KeyTextTooLong, Args: []string{"5"}}}, view.TypeSpecificErrors())
}

func TestFileUpload(t *testing.T) {
	d := data.New()
	q := New(required(fileUploadDefinition), d)
	view := q.CreateFileUploadQuestion()
	assert.True(t, view.HasQuestionErrors())

	d.PutString(fileUploadDefinition.FileKeyPath(), "applicant-1/pay-stub.pdf")
	key, ok := view.FileKey()
	require.True(t, ok)
	assert.Equal(t, "applicant-1/pay-stub.pdf", key)
	assert.False(t, q.HasErrors())
}
