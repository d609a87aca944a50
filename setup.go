// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package clish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/matt-FFFFFF/clish/internal/cfgfile"
	"github.com/matt-FFFFFF/clish/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	verboseFlag  = "verbose"
	quietFlag    = "quiet"
	configFlag   = "config"
	logLevelFlag = "log-level"
)

var (
	// ErrNilRoot is returned when Setup is given no root command.
	ErrNilRoot = errors.New("root command is nil")
	// ErrInvalidLogLevel is returned when the log level flag cannot be parsed.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Options controls what Setup attaches to the root command.
type Options struct {
	// AppName is used to derive the config-file environment variable. It
	// defaults to the root command's name.
	AppName string
	// Config is the caller's configuration object, populated from the
	// resolved config file. Nil disables config loading.
	Config any
	// ConfigPaths are candidate config-file locations tried in order. The
	// first entry is the --config flag's default value. Missing candidates
	// are skipped silently.
	ConfigPaths []string
	// DefaultCommand names the subcommand to run when none is given on the
	// command line. It is invoked exactly as if named explicitly.
	DefaultCommand string
	// BaseLevel is the log level before verbosity flags are applied.
	// The zero value is slog.LevelInfo.
	BaseLevel slog.Level
}

// Setup installs cross-cutting startup behavior on the root command:
// repeatable --verbose/-v and --quiet/-q flags, a --config/-c path option
// (with a <APP>_CONFIG environment source), a --log-level option, styled
// process-wide logging, and config-file loading. It runs before any
// subcommand so that leaf commands need none of this themselves.
func Setup(root *cli.Command, opts Options) error {
	if root == nil {
		return ErrNilRoot
	}

	appName := opts.AppName
	if appName == "" {
		appName = root.Name
	}

	var defaultPath string
	if len(opts.ConfigPaths) > 0 {
		defaultPath = opts.ConfigPaths[0]
	}

	root.Flags = append(root.Flags,
		&cli.BoolFlag{
			Name:    verboseFlag,
			Aliases: []string{"v"},
			Usage:   "Increase logging output. Repeat for more.",
			Config:  cli.BoolConfig{Count: new(int)},
		},
		&cli.BoolFlag{
			Name:    quietFlag,
			Aliases: []string{"q"},
			Usage:   "Decrease logging output. Repeat for less.",
			Config:  cli.BoolConfig{Count: new(int)},
		},
		&cli.StringFlag{
			Name:      configFlag,
			Aliases:   []string{"c"},
			Usage:     "Path or URL of the configuration file",
			Value:     defaultPath,
			TakesFile: true,
			Sources:   cli.EnvVars(configEnvVar(appName)),
		},
		&cli.StringFlag{
			Name:  logLevelFlag,
			Usage: "Base log level (debug, info, warn, error)",
			Value: strings.ToLower(opts.BaseLevel.String()),
		},
	)

	if opts.DefaultCommand != "" {
		root.DefaultCommand = opts.DefaultCommand
	}

	prev := root.Before
	root.Before = func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
		if prev != nil {
			var err error
			if ctx, err = prev(ctx, cmd); err != nil {
				return ctx, err
			}
		}

		base, err := parseLevel(cmd.String(logLevelFlag))
		if err != nil {
			return ctx, err
		}

		ctxlog.Configure(ctxlog.EffectiveLevel(base, cmd.Count(verboseFlag), cmd.Count(quietFlag)))
		ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

		if opts.Config == nil {
			return ctx, nil
		}

		// An explicitly requested config file must load; the default
		// candidates are optional.
		if cmd.IsSet(configFlag) {
			path := cmd.String(configFlag)
			if err := cfgfile.Load(ctx, path, opts.Config); err != nil {
				return ctx, err
			}

			ctxlog.Debug(ctx, "config loaded", "path", path)

			return ctx, nil
		}

		loaded, err := cfgfile.LoadFirst(ctx, opts.ConfigPaths, opts.Config)
		if err != nil {
			return ctx, err
		}

		if loaded != "" {
			ctxlog.Debug(ctx, "config loaded", "path", loaded)
		}

		return ctx, nil
	}

	return nil
}

// configEnvVar derives the environment variable naming the config file,
// e.g. "my app" -> "MY_APP_CONFIG".
func configEnvVar(appName string) string {
	r := strings.NewReplacer(" ", "_", "-", "_")

	return strings.ToUpper(r.Replace(appName)) + "_CONFIG"
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}

	return level, nil
}
