package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulebuilder/pkg/config"
	"github.com/dmitrymomot/rulebuilder/pkg/i18n"
	"github.com/dmitrymomot/rulebuilder/pkg/logger"
	"github.com/dmitrymomot/rulebuilder/pkg/ruleset"
	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

// envPrefix is prepended to the command's own variables.
const envPrefix = "RULECHECK_"

// errRecordInvalid marks a run whose record failed validation.
var errRecordInvalid = errors.New("record is invalid")

// cliConfig holds RULECHECK_* settings.
type cliConfig struct {
	Env       string     `env:"ENV" envDefault:"development"`
	LogFormat string     `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  slog.Level `env:"LOG_LEVEL" envDefault:"warn"`
}

type options struct {
	rulesPath    string
	dataPath     string
	envFiles     []string
	locale       string
	translations string
	strict       bool
	output       string
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "rulecheck",
		Short:         "Validate a JSON record against a rule set",
		Long:          "Validate a JSON record against a YAML or JSON rule set using the bundled validation engine.\nUse the serve command to expose a directory of rule sets over HTTP.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := run(cmd.Context(), cmd, opts)
			if err != nil && !errors.Is(err, errRecordInvalid) {
				fmt.Fprintln(cmd.ErrOrStderr(), "rulecheck:", err)
			}
			return err
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringSliceVar(&opts.envFiles, "env-file", nil, ".env files to load before reading configuration")
	pf.StringVarP(&opts.locale, "locale", "l", "", "message locale (overrides VALIDATION_LOCALE)")
	pf.StringVar(&opts.translations, "translations", "", "translation catalog file or directory (overrides VALIDATION_TRANSLATIONS_PATH)")
	pf.BoolVar(&opts.strict, "strict", false, "fail on unknown rules (overrides VALIDATION_STRICT)")

	f := cmd.Flags()
	f.StringVarP(&opts.rulesPath, "rules", "r", "", "rule set file (.yaml, .yml or .json)")
	f.StringVarP(&opts.dataPath, "data", "d", "-", `JSON record file, "-" reads stdin`)
	f.StringVarP(&opts.output, "output", "o", "text", "output format: text or json")
	_ = cmd.MarkFlagRequired("rules")

	cmd.AddCommand(newServeCmd(&opts))
	return cmd
}

// setup loads .env files and configuration, builds the logger and applies
// flag overrides to the engine configuration.
func setup(cmd *cobra.Command, opts options, extractors ...logger.ContextExtractor) (*slog.Logger, validator.Config, error) {
	if err := config.LoadEnv(opts.envFiles...); err != nil {
		return nil, validator.Config{}, err
	}

	var cli cliConfig
	if err := config.Load(&cli, config.WithPrefix(envPrefix), config.WithoutCache()); err != nil {
		return nil, validator.Config{}, err
	}
	format, err := logger.ParseFormat(cli.LogFormat)
	if err != nil {
		return nil, validator.Config{}, err
	}
	log := logger.New(
		logger.WithEnvironment(cli.Env, "rulecheck"),
		logger.WithFormat(format),
		logger.WithLevel(cli.LogLevel),
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextValue("locale", localeKey{}),
		logger.WithContextExtractors(extractors...),
	)

	cfg, err := validator.LoadConfig(config.WithoutCache())
	if err != nil {
		return nil, validator.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = opts.locale
	}
	if flags.Changed("translations") {
		cfg.TranslationsPath = opts.translations
	}
	if flags.Changed("strict") {
		cfg.Strict = opts.strict
	}
	return log, cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, opts options) error {
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("invalid output format %q: must be text or json", opts.output)
	}

	log, cfg, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	set, err := ruleset.Load(opts.rulesPath)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("locale") && set.Locale() != "" {
		cfg.Locale = set.Locale()
	}

	engine, err := validator.NewFromConfig(ctx, cfg,
		validator.WithAttributeNames(set.Attributes()),
		validator.WithLogger(log),
	)
	if err != nil {
		return err
	}
	ctx = context.WithValue(ctx, localeKey{}, engine.Locale())

	if cfg.Strict {
		if err := set.Lint(engine); err != nil {
			log.ErrorContext(ctx, "rule set rejected", logger.Path(opts.rulesPath), logger.Error(err))
			return err
		}
	}

	raw, err := readInput(cmd.InOrStdin(), opts.dataPath)
	if err != nil {
		return err
	}
	out, err := set.ValidateJSON(i18n.WithLocale(ctx, engine.Locale()), engine, raw)
	if err != nil {
		return fmt.Errorf("%s: %w", opts.dataPath, err)
	}

	if out.Failed() {
		log.InfoContext(ctx, "record rejected", logger.Path(opts.dataPath), logger.Failures(len(out.AllMessages())))
	}
	if err := report(cmd.OutOrStdout(), opts.output, out); err != nil {
		return err
	}
	if out.Failed() {
		return errRecordInvalid
	}
	return nil
}

type localeKey struct{}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

type jsonReport struct {
	Valid  bool                `json:"valid"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func report(w io.Writer, format string, out *validator.Outcome) error {
	if format == "json" {
		rep := jsonReport{Valid: out.Passed()}
		if out.Failed() {
			rep.Errors = make(map[string][]string)
			for _, field := range out.Fields() {
				rep.Errors[field] = out.Get(field)
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	if out.Passed() {
		_, err := fmt.Fprintln(w, "ok")
		return err
	}
	for _, field := range out.Fields() {
		for _, msg := range out.Get(field) {
			if _, err := fmt.Fprintf(w, "%s: %s\n", field, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
