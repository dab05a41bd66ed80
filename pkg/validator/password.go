package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// commonPasswords is a short list of passwords rejected by Uncommon.
var commonPasswords = map[string]bool{
	"password": true, "password1": true, "password123": true, "123456": true,
	"12345678": true, "123456789": true, "1234567890": true, "qwerty": true,
	"qwerty123": true, "abc123": true, "letmein": true, "welcome": true,
	"admin": true, "admin123": true, "iloveyou": true, "111111": true,
}

// PasswordRule is a configurable password rule object.
//
//	validator.Password(8).MixedCase().Numbers().Symbols()
type PasswordRule struct {
	min       int
	mixedCase bool
	letters   bool
	numbers   bool
	symbols   bool
	uncommon  bool
	messages  []string
}

// Password returns a rule requiring at least min characters.
func Password(min int) *PasswordRule {
	return &PasswordRule{min: min}
}

func (p *PasswordRule) MixedCase() *PasswordRule { p.mixedCase = true; return p }
func (p *PasswordRule) Letters() *PasswordRule   { p.letters = true; return p }
func (p *PasswordRule) Numbers() *PasswordRule   { p.numbers = true; return p }
func (p *PasswordRule) Symbols() *PasswordRule   { p.symbols = true; return p }
func (p *PasswordRule) Uncommon() *PasswordRule  { p.uncommon = true; return p }

// Passes evaluates every configured requirement and keeps all failures.
func (p *PasswordRule) Passes(attribute string, value any) bool {
	p.messages = nil
	name := strings.ReplaceAll(attribute, "_", " ")

	s, ok := value.(string)
	if !ok {
		p.messages = []string{fmt.Sprintf("The %s must be a string.", name)}
		return false
	}

	err := Apply(
		passwordCheck(attribute, p.min > 0, utf8.RuneCountInString(s) >= p.min,
			fmt.Sprintf("The %s must be at least %d characters.", name, p.min), "password.min"),
		passwordCheck(attribute, p.mixedCase, hasRune(s, unicode.IsUpper) && hasRune(s, unicode.IsLower),
			fmt.Sprintf("The %s must contain at least one uppercase and one lowercase letter.", name), "password.mixed"),
		passwordCheck(attribute, p.letters, hasRune(s, unicode.IsLetter),
			fmt.Sprintf("The %s must contain at least one letter.", name), "password.letters"),
		passwordCheck(attribute, p.numbers, hasRune(s, unicode.IsDigit),
			fmt.Sprintf("The %s must contain at least one number.", name), "password.numbers"),
		passwordCheck(attribute, p.symbols, hasRune(s, isSymbol),
			fmt.Sprintf("The %s must contain at least one symbol.", name), "password.symbols"),
		passwordCheck(attribute, p.uncommon, !commonPasswords[strings.ToLower(s)],
			fmt.Sprintf("The given %s is too common. Please choose a different %s.", name, name), "password.common"),
	)
	if err == nil {
		return true
	}

	p.messages = ExtractValidationErrors(err).Messages()
	return false
}

func (p *PasswordRule) Message() []string {
	return p.messages
}

// passwordCheck is a Rule that always passes when the requirement is disabled.
func passwordCheck(field string, enabled, ok bool, message, key string) Rule {
	return Rule{
		Check: func() bool { return !enabled || ok },
		Error: ValidationError{
			Field:          field,
			Rule:           "password",
			Message:        message,
			TranslationKey: "validation." + key,
		},
	}
}

func hasRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

func isSymbol(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
