package l10n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolve(t *testing.T) {
	texts := map[language.Tag]string{
		language.AmericanEnglish: "option 1",
		language.French:          "un",
	}

	t.Run("exact locale", func(t *testing.T) {
		text, used, ok := Resolve(texts, language.French)
		assert.True(t, ok)
		assert.Equal(t, "un", text)
		assert.Equal(t, language.French, used)
	})

	t.Run("matches a regional variant of the language", func(t *testing.T) {
		regional := map[language.Tag]string{
			language.AmericanEnglish:    "option 1",
			language.MustParse("fr-FR"): "un",
		}
		text, used, ok := Resolve(regional, language.French)
		assert.True(t, ok)
		assert.Equal(t, "un", text)
		assert.Equal(t, language.MustParse("fr-FR"), used)

		text, used, _ = Resolve(regional, language.CanadianFrench)
		assert.Equal(t, "un", text)
		assert.Equal(t, language.MustParse("fr-FR"), used)
	})

	t.Run("falls back to default locale", func(t *testing.T) {
		text, used, ok := Resolve(texts, language.German)
		assert.True(t, ok)
		assert.Equal(t, "option 1", text)
		assert.Equal(t, DefaultLocale, used)
	})

	t.Run("falls back to first locale when default is missing", func(t *testing.T) {
		text, used, ok := Resolve(map[language.Tag]string{
			language.Spanish: "uno",
			language.French:  "un",
		}, language.German)
		assert.True(t, ok)
		assert.Equal(t, "uno", text)
		assert.Equal(t, language.Spanish, used)
	})

	t.Run("empty map", func(t *testing.T) {
		_, _, ok := Resolve(nil, language.French)
		assert.False(t, ok)
	})
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))
	src := map[language.Tag]string{language.French: "un"}
	dst := Clone(src)
	dst[language.French] = "deux"
	assert.Equal(t, "un", src[language.French])
}
