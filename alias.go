// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package clish

import "github.com/urfave/cli/v3"

// Aliases for the urfave/cli v3 names that command declarations touch, so
// that code migrating to clish can swap its cli import for this package and
// change nothing else. They carry no behavior of their own.
type (
	// Command is an alias for cli.Command.
	Command = cli.Command
	// Flag is an alias for cli.Flag.
	Flag = cli.Flag
	// Argument is an alias for cli.Argument.
	Argument = cli.Argument
	// BoolFlag is an alias for cli.BoolFlag.
	BoolFlag = cli.BoolFlag
	// IntFlag is an alias for cli.IntFlag.
	IntFlag = cli.IntFlag
	// StringFlag is an alias for cli.StringFlag.
	StringFlag = cli.StringFlag
	// StringSliceFlag is an alias for cli.StringSliceFlag.
	StringSliceFlag = cli.StringSliceFlag
	// ActionFunc is an alias for cli.ActionFunc.
	ActionFunc = cli.ActionFunc
	// BeforeFunc is an alias for cli.BeforeFunc.
	BeforeFunc = cli.BeforeFunc
)

var (
	// Exit is an alias for cli.Exit.
	Exit = cli.Exit
	// EnvVars is an alias for cli.EnvVars.
	EnvVars = cli.EnvVars
)
