package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/rulebuilder/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.Any().(error).Error())
	})

	t.Run("errors skips nil", func(t *testing.T) {
		assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))

		attr := logger.Errors(nil, errors.New("a"), errors.New("b"))
		assert.Equal(t, "errors", attr.Key)
		group := attr.Value.Group()
		assert.Len(t, group, 2)
		assert.Equal(t, "1", group[0].Key)
		assert.Equal(t, "2", group[1].Key)
	})

	t.Run("group", func(t *testing.T) {
		attr := logger.Group("rule", logger.RuleToken("max:3"), logger.Attribute("title"))
		assert.Equal(t, "rule", attr.Key)
		assert.Len(t, attr.Value.Group(), 2)
	})

	t.Run("domain attrs", func(t *testing.T) {
		assert.True(t, logger.Component("validator").Equal(slog.String("component", "validator")))
		assert.True(t, logger.Attribute("email").Equal(slog.String("attribute", "email")))
		assert.True(t, logger.RuleToken("max:255").Equal(slog.String("rule", "max:255")))
		assert.True(t, logger.Locale("de").Equal(slog.String("locale", "de")))
		assert.True(t, logger.Path("rules.yaml").Equal(slog.String("path", "rules.yaml")))
		assert.True(t, logger.Failures(3).Equal(slog.Int("failures", 3)))
	})

	t.Run("empty values drop", func(t *testing.T) {
		assert.True(t, logger.Attribute("").Equal(slog.Attr{}))
		assert.True(t, logger.RuleToken("").Equal(slog.Attr{}))
		assert.True(t, logger.Locale("").Equal(slog.Attr{}))
		assert.True(t, logger.Path("").Equal(slog.Attr{}))
	})
}
