package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), stdin, args...)
}

func executeContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, k := range []string{"VALIDATION_LOCALE", "VALIDATION_STRICT", "VALIDATION_STOP_ON_FIRST_FAILURE", "VALIDATION_TRANSLATIONS_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("RULECHECK_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func TestRulecheck(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		stdout, _, err := execute(t, "", "--rules", "testdata/article.yaml", "--data", "testdata/valid.json")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", stdout)
	})

	t.Run("invalid record", func(t *testing.T) {
		stdout, _, err := execute(t, "", "-r", "testdata/article.yaml", "-d", "testdata/invalid.json")
		require.ErrorIs(t, err, errRecordInvalid)
		assert.Contains(t, stdout, "title: The headline must be at least 5 characters.\n")
		assert.Contains(t, stdout, "slug: The slug must be a string.\n")
		assert.Contains(t, stdout, "tags: The tags must not have more than 3 items.\n")
	})

	t.Run("stdin and json output", func(t *testing.T) {
		stdout, _, err := execute(t, `{"slug": "ok-slug"}`, "-r", "testdata/article.yaml", "-o", "json")
		require.ErrorIs(t, err, errRecordInvalid)

		var rep jsonReport
		require.NoError(t, json.Unmarshal([]byte(stdout), &rep))
		assert.False(t, rep.Valid)
		assert.Equal(t, []string{"The headline field is required."}, rep.Errors["title"])
		assert.NotContains(t, rep.Errors, "slug")
	})

	t.Run("translated messages", func(t *testing.T) {
		stdout, _, err := execute(t, `{}`, "-r", "testdata/article.yaml", "--translations", "testdata/fr.yaml", "--locale", "fr")
		require.ErrorIs(t, err, errRecordInvalid)
		assert.Contains(t, stdout, "title: Le champ headline est obligatoire.\n")
	})

	t.Run("strict lint", func(t *testing.T) {
		_, stderr, err := execute(t, `{"title": "Hello"}`, "-r", "testdata/typo.yaml", "--strict")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errRecordInvalid)
		assert.Contains(t, stderr, "strnig")
	})

	t.Run("unknown rule skipped without strict", func(t *testing.T) {
		stdout, _, err := execute(t, `{"title": "Hello"}`, "-r", "testdata/typo.yaml")
		require.NoError(t, err)
		assert.Equal(t, "ok\n", stdout)
	})

	t.Run("missing rules flag", func(t *testing.T) {
		_, _, err := execute(t, `{}`)
		require.Error(t, err)
	})

	t.Run("bad output format", func(t *testing.T) {
		_, stderr, err := execute(t, `{}`, "-r", "testdata/article.yaml", "-o", "xml")
		require.Error(t, err)
		assert.Contains(t, stderr, "invalid output format")
	})

	t.Run("malformed record", func(t *testing.T) {
		_, _, err := execute(t, `not json`, "-r", "testdata/article.yaml")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errRecordInvalid)
	})
}

func TestServe(t *testing.T) {
	stopped := func() context.Context {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}

	t.Run("starts and stops with the context", func(t *testing.T) {
		_, stderr, err := executeContext(t, stopped(), "", "serve", "--rules-dir", "testdata/sets", "--addr", "127.0.0.1:0")
		require.NoError(t, err)
		assert.Empty(t, stderr)
	})

	t.Run("strict rejects unknown rules", func(t *testing.T) {
		_, stderr, err := executeContext(t, stopped(), "", "serve", "--rules-dir", "testdata/sets", "--addr", "127.0.0.1:0", "--strict")
		require.Error(t, err)
		assert.Contains(t, stderr, "strnig")
	})

	t.Run("missing directory flag", func(t *testing.T) {
		_, _, err := execute(t, "", "serve")
		require.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, stderr, err := execute(t, "", "serve", "--rules-dir", t.TempDir())
		require.Error(t, err)
		assert.Contains(t, stderr, "no rule set files found")
	})
}
