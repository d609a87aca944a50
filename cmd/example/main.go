// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main demonstrates wiring clish onto a urfave/cli application:
// Setup on the root command, plus an interactive shell subcommand that is
// also the default command.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matt-FFFFFF/clish"
	"github.com/matt-FFFFFF/clish/internal/ctxlog"
	"github.com/matt-FFFFFF/clish/internal/signalbroker"
	"github.com/matt-FFFFFF/clish/shell"
	"github.com/urfave/cli/v3"
)

type appConfig struct {
	Greeting string `yaml:"greeting"`
	Excited  bool   `yaml:"excited"`
}

var cfg = appConfig{
	Greeting: "Hello",
}

var greetCmd = &cli.Command{
	Name:  "greet",
	Usage: "Greet someone by name",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		name := "world"
		if cmd.Args().Len() > 0 {
			name = cmd.Args().First()
		}

		punctuation := "."
		if cfg.Excited {
			punctuation = "!"
		}

		fmt.Fprintf(cmd.Root().Writer, "%s, %s%s\n", cfg.Greeting, name, punctuation)

		return nil
	},
}

var mathCmd = &cli.Command{
	Name:  "math",
	Usage: "Arithmetic on integer arguments",
	Commands: []*cli.Command{
		{
			Name:  "add",
			Usage: "Sum the arguments",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return reduce(cmd, func(a, b int) int { return a + b })
			},
		},
		{
			Name:  "mul",
			Usage: "Multiply the arguments",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return reduce(cmd, func(a, b int) int { return a * b })
			},
		},
	},
}

var dumpCmd = &cli.Command{
	Name:   "dump-config",
	Usage:  "Print the effective configuration",
	Hidden: true,
	Action: func(ctx context.Context, cmd *cli.Command) error {
		fmt.Fprintf(cmd.Root().Writer, "%+v\n", cfg)

		return nil
	},
}

var shellCmd = &cli.Command{
	Name:  "shell",
	Usage: "Start an interactive shell",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		sh := shell.New(cmd.Root(),
			shell.WithHistoryFile(filepath.Join(os.TempDir(), ".greeter_history")),
		)

		return sh.Run(ctx)
	},
}

var rootCmd = &cli.Command{
	Name:      "greeter",
	Usage:     "greeter [command]",
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Commands: []*cli.Command{
		greetCmd,
		mathCmd,
		dumpCmd,
		shellCmd,
	},
}

func reduce(cmd *cli.Command, f func(a, b int) int) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return cli.Exit("at least one integer argument is required", 1)
	}

	var acc int

	for i, arg := range args {
		var n int
		if _, err := fmt.Sscanf(arg, "%d", &n); err != nil {
			return cli.Exit(fmt.Sprintf("not an integer: %s", arg), 1)
		}

		if i == 0 {
			acc = n

			continue
		}

		acc = f(acc, n)
	}

	fmt.Fprintln(cmd.Root().Writer, acc)

	return nil
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", clish.Version, clish.Commit)

	err := clish.Setup(rootCmd, clish.Options{
		AppName:        "greeter",
		Config:         &cfg,
		ConfigPaths:    []string{filepath.Join(configDir(), "greeter", "config.yaml")},
		DefaultCommand: "shell",
	})
	if err != nil {
		ctxlog.Error(ctx, "setup failed", "error", err)
		os.Exit(1)
	}

	if err := rootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return dir
}
