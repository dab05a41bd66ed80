package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		rule     *validator.PasswordRule
		value    any
		messages []string
	}{
		{
			name:  "long enough",
			rule:  validator.Password(8),
			value: "longenough",
		},
		{
			name:     "too short",
			rule:     validator.Password(8),
			value:    "short",
			messages: []string{"The password must be at least 8 characters."},
		},
		{
			name:  "counts characters not bytes",
			rule:  validator.Password(4),
			value: "äöüß",
		},
		{
			name:  "all requirements met",
			rule:  validator.Password(8).MixedCase().Letters().Numbers().Symbols().Uncommon(),
			value: "Secr3t!Pass",
		},
		{
			name:  "every failure is reported",
			rule:  validator.Password(8).MixedCase().Numbers().Symbols(),
			value: "alllowercase",
			messages: []string{
				"The password must contain at least one uppercase and one lowercase letter.",
				"The password must contain at least one number.",
				"The password must contain at least one symbol.",
			},
		},
		{
			name:     "letters",
			rule:     validator.Password(0).Letters(),
			value:    "12345678",
			messages: []string{"The password must contain at least one letter."},
		},
		{
			name:     "common",
			rule:     validator.Password(6).Uncommon(),
			value:    "Password123",
			messages: []string{"The given password is too common. Please choose a different password."},
		},
		{
			name:     "not a string",
			rule:     validator.Password(8),
			value:    12345678,
			messages: []string{"The password must be a string."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passed := tt.rule.Passes("password", tt.value)
			assert.Equal(t, len(tt.messages) == 0, passed)
			assert.Equal(t, tt.messages, tt.rule.Message())
		})
	}
}

func TestPassword_ResetsMessages(t *testing.T) {
	rule := validator.Password(8)
	assert.False(t, rule.Passes("password", "short"))
	assert.True(t, rule.Passes("password", "long enough"))
	assert.Empty(t, rule.Message())
}

func TestPassword_InEngine(t *testing.T) {
	engine := validator.New()
	rules := map[string][]any{"new_password": {"required", validator.Password(10).Numbers()}}

	out := engine.Validate(map[string]any{"new_password": "tooshort"}, rules)
	assert.Equal(t, []string{
		"The new password must be at least 10 characters.",
		"The new password must contain at least one number.",
	}, out.Get("new_password"))

	out = engine.Validate(map[string]any{}, rules)
	assert.Equal(t, []string{"The new password field is required."}, out.AllMessages())
}
