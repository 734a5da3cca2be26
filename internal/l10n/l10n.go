// Package l10n resolves localized text maps with a fixed fallback order.
package l10n

import (
	"slices"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale every localized map is expected to carry.
var DefaultLocale = language.AmericanEnglish

// Resolve looks up text for locale. Without an exact entry it takes the
// closest tag of the same language and script (fr matches fr-FR or fr-CA),
// then DefaultLocale, then the entry whose tag sorts first. It returns the
// locale actually used; ok is false only when texts is empty.
func Resolve(texts map[language.Tag]string, locale language.Tag) (text string, used language.Tag, ok bool) {
	if len(texts) == 0 {
		return "", language.Und, false
	}
	if text, ok := texts[locale]; ok {
		return text, locale, true
	}
	tags := Locales(texts)
	if _, i, conf := language.NewMatcher(tags).Match(locale); conf >= language.High {
		return texts[tags[i]], tags[i], true
	}
	if text, ok := texts[DefaultLocale]; ok {
		return text, DefaultLocale, true
	}
	return texts[tags[0]], tags[0], true
}

// Locales returns the keys of texts ordered by their BCP 47 string.
func Locales(texts map[language.Tag]string) []language.Tag {
	tags := make([]language.Tag, 0, len(texts))
	for tag := range texts {
		tags = append(tags, tag)
	}
	slices.SortFunc(tags, func(a, b language.Tag) int {
		switch as, bs := a.String(), b.String(); {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
		return 0
	})
	return tags
}

// Clone copies a localized map; nil stays nil.
func Clone(texts map[language.Tag]string) map[language.Tag]string {
	if texts == nil {
		return nil
	}
	out := make(map[language.Tag]string, len(texts))
	for k, v := range texts {
		out[k] = v
	}
	return out
}
