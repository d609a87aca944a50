// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clish is a thin convenience layer over urfave/cli v3: a Setup
// call that wires verbosity flags, styled logging and config-file loading
// onto an existing root command, plus the cmdtree and shell packages for
// driving an interactive loop over the same command hierarchy.
package clish

var (
	// Version is set during the build process.
	Version = "dev"
	// Commit is set during the build process.
	Commit = "unknown"
)
