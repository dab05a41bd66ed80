package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rulebuilder/pkg/config"
	"github.com/dmitrymomot/rulebuilder/pkg/httpserver"
	"github.com/dmitrymomot/rulebuilder/pkg/logger"
	"github.com/dmitrymomot/rulebuilder/pkg/ruleserver"
	"github.com/dmitrymomot/rulebuilder/pkg/ruleset"
	"github.com/dmitrymomot/rulebuilder/pkg/validator"
)

type serveOptions struct {
	dir     string
	addr    string
	maxBody int64
}

func newServeCmd(root *options) *cobra.Command {
	var so serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a directory of rule sets over HTTP",
		Long: "Load every rule set file in a directory and validate JSON records posted to\n" +
			"/rulesets/{name}/validate. Listener settings come from RULECHECK_HTTP_* variables.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := serve(cmd.Context(), cmd, *root, so)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "rulecheck serve:", err)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&so.dir, "rules-dir", "", "directory of rule set files")
	f.StringVar(&so.addr, "addr", "", "listen address (overrides RULECHECK_HTTP_ADDR)")
	f.Int64Var(&so.maxBody, "max-body", ruleserver.DefaultMaxBodySize, "maximum request body size in bytes")
	_ = cmd.MarkFlagRequired("rules-dir")

	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command, opts options, so serveOptions) error {
	log, cfg, err := setup(cmd, opts, ruleserver.RequestIDExtractor)
	if err != nil {
		return err
	}

	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg, config.WithPrefix(envPrefix), config.WithoutCache()); err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		httpCfg.Addr = so.addr
	}

	sets, err := ruleset.LoadDir(so.dir)
	if err != nil {
		return err
	}

	factory := func(name string, set *ruleset.Set) (*validator.Engine, error) {
		engine, err := validator.NewFromConfig(ctx, cfg,
			validator.WithAttributeNames(set.Attributes()),
			validator.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		if cfg.Strict {
			if err := set.Lint(engine); err != nil {
				return nil, err
			}
		}
		return engine, nil
	}

	rs, err := ruleserver.New(sets, factory,
		ruleserver.WithLogger(log),
		ruleserver.WithMaxBodySize(so.maxBody),
	)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "rule sets loaded", logger.Path(so.dir), slog.Any("rule_sets", rs.Names()))

	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, rs.Handler())
}
