package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is configured or found in context.
const DefaultLanguage = "en"

// Normalize returns the canonical BCP 47 form of lang ("en_us" -> "en-US").
// Unparseable input is returned lower-cased and trimmed.
func Normalize(lang string) string {
	lang = strings.TrimSpace(strings.ReplaceAll(lang, "_", "-"))
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return strings.ToLower(lang)
	}
	return tag.String()
}

// Base returns the base language of lang ("en-US" -> "en").
func Base(lang string) string {
	tag, err := language.Parse(Normalize(lang))
	if err != nil {
		return lang
	}
	base, _ := tag.Base()
	return base.String()
}
