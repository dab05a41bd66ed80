// Package i18n provides a small message catalog used to render validation
// failure messages in the caller's language.
//
// Catalogs are nested maps keyed by language code. Keys are addressed with
// dot notation ("validation.min.string") and templates use named
// placeholders in the form %{name}:
//
//	en:
//	  validation:
//	    required: "The %{attribute} field is required."
//
// # Loading
//
// A Translator is created from a Source. Three sources are provided:
//
//   - MapSource       – in-memory catalog, handy for tests and defaults
//   - FileSource      – a single YAML or JSON file holding several languages
//   - DirectorySource – every *.yaml, *.yml and *.json file in a directory
//
// The parser is chosen by file extension (see ParserFor).
//
// # Lookup
//
// Language codes are normalized with golang.org/x/text/language, so "en_us",
// "EN-us" and "en-US" address the same catalog. When a regional catalog is
// missing a key the base language ("en" for "en-US") is consulted before
// giving up.
//
//	tr, err := i18n.New(ctx, i18n.NewFileSource("lang/validation.yaml"))
//	if err != nil {
//	    return err
//	}
//	msg := tr.T("de", "validation.required", "attribute", "name")
//
// Missing keys fall back to the key itself unless WithFallbackToKey(false)
// is used, in which case an empty string is returned.
package i18n
