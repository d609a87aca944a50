// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package shell runs an interactive read-resolve-invoke loop over a
// command hierarchy. Line editing, history and completion are delegated to
// the liner package; command resolution to cmdtree. Each input line is an
// independent unit of work: command errors are reported and the loop
// continues. The loop stops cleanly on Ctrl-C, EOF or context
// cancellation and never exits the hosting process itself.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/clish/cmdtree"
	"github.com/matt-FFFFFF/clish/internal/ctxlog"
	"github.com/peterh/liner"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// FS is a filesystem abstraction used for the history file.
// Default is the OS filesystem, but can be replaced with a mock for testing.
var FS = afero.NewOsFs()

var (
	// ErrCallback is returned when an invoked command fails or panics.
	ErrCallback = errors.New("command failed")
	// ErrReadLine is returned when the input source fails for a reason
	// other than an interrupt or end of input.
	ErrReadLine = errors.New("failed to read input")
)

// LineReader is the blocking line input source consumed by the shell.
// *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	SetWordCompleter(f liner.WordCompleter)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// Shell drives the interactive loop.
type Shell struct {
	root        *cli.Command
	tree        *cmdtree.Tree
	input       LineReader
	historyPath string
	out         io.Writer
	errOut      io.Writer
	styles      *Styles
}

// Option configures a Shell.
type Option func(*Shell)

// WithHistoryFile sets the path of the persistent history file. History is
// loaded before the first prompt and written back when the loop ends; both
// are best-effort.
func WithHistoryFile(path string) Option {
	return func(s *Shell) {
		s.historyPath = path
	}
}

// WithInput replaces the default liner-backed input source.
func WithInput(in LineReader) Option {
	return func(s *Shell) {
		s.input = in
	}
}

// WithOutput sets the writer for shell output.
func WithOutput(w io.Writer) Option {
	return func(s *Shell) {
		s.out = w
	}
}

// WithErrOutput sets the writer for reported command errors.
func WithErrOutput(w io.Writer) Option {
	return func(s *Shell) {
		s.errOut = w
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles *Styles) Option {
	return func(s *Shell) {
		s.styles = styles
	}
}

// New creates a shell over the given root command.
func New(root *cli.Command, opts ...Option) *Shell {
	s := &Shell{
		root:   root,
		tree:   cmdtree.New(root),
		out:    os.Stdout,
		errOut: os.Stderr,
		styles: NewStyles(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Tree returns the navigator owned by this shell.
func (s *Shell) Tree() *cmdtree.Tree {
	return s.tree
}

// Run executes the read-resolve-invoke loop until the user interrupts it,
// input ends, or the context is cancelled. It returns nil on clean
// termination; the caller owns any further shutdown.
func (s *Shell) Run(ctx context.Context) error {
	in := s.input
	if in == nil {
		in = newLinerReader()
	}

	defer s.shutdown(ctx, in)

	in.SetWordCompleter(s.completeWord)
	s.loadHistory(ctx, in)

	for {
		select {
		case <-ctx.Done():
			// A deliberate cancellation ends the session; it is not a
			// failure of the loop.
			return nil
		default:
		}

		line, err := in.Prompt(s.prompt())

		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			fmt.Fprintln(s.out)

			return nil
		case err != nil:
			return errors.Join(ErrReadLine, err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		in.AppendHistory(line)

		if line == "exit" || line == "quit" {
			return nil
		}

		node, args, err := s.tree.Find(line)
		if err != nil {
			fmt.Fprintln(s.errOut, s.styles.Notice.Render(err.Error()))

			continue
		}

		if node.IsGroup() && len(args) == 0 {
			// Entering a bare group name changes directory rather than
			// invoking it.
			if err := s.tree.JumpTo(node.Segments()...); err != nil {
				fmt.Fprintln(s.errOut, s.styles.Notice.Render(err.Error()))
			}

			continue
		}

		if err := s.invoke(ctx, node, args); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			fmt.Fprintln(s.errOut, s.styles.Error.Render(err.Error()))
		}
	}
}

// Dispatch resolves and invokes a single line without entering the loop.
// Unlike Run, resolution and command errors propagate to the caller.
func (s *Shell) Dispatch(ctx context.Context, line string) error {
	node, args, err := s.tree.Find(line)
	if err != nil {
		return err
	}

	return s.invoke(ctx, node, args)
}

// invoke runs the resolved command with the remaining tokens. A panic in
// the command is recovered and reported as an ErrCallback like any other
// failure.
func (s *Shell) invoke(ctx context.Context, node *cmdtree.Node, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCallback, r)
		}
	}()

	argv := append([]string{node.Command().Name}, args...)
	if err := node.Command().Run(ctx, argv); err != nil {
		return errors.Join(ErrCallback, err)
	}

	return nil
}

func (s *Shell) prompt() string {
	path := s.tree.Path()

	return path + "> "
}

func (s *Shell) loadHistory(ctx context.Context, in LineReader) {
	if s.historyPath == "" {
		return
	}

	f, err := FS.Open(s.historyPath)
	if err != nil {
		return
	}

	defer f.Close() //nolint:errcheck

	if _, err := in.ReadHistory(f); err != nil {
		ctxlog.Warn(ctx, "failed to read history file", "path", s.historyPath, "error", err)
	}
}

// shutdown writes the history file back and closes the input source,
// restoring the terminal state. Failures are logged, not returned: they
// must not mask the loop's outcome.
func (s *Shell) shutdown(ctx context.Context, in LineReader) {
	var merr *multierror.Error

	if s.historyPath != "" {
		if err := s.writeHistory(in); err != nil {
			merr = multierror.Append(merr, err)
		}
	}

	if err := in.Close(); err != nil {
		merr = multierror.Append(merr, err)
	}

	if err := merr.ErrorOrNil(); err != nil {
		ctxlog.Warn(ctx, "shell shutdown", "error", err)
	}
}

func (s *Shell) writeHistory(in LineReader) error {
	f, err := FS.Create(s.historyPath)
	if err != nil {
		return err
	}

	if _, err := in.WriteHistory(f); err != nil {
		f.Close() //nolint:errcheck,gosec

		return err
	}

	return f.Close()
}

// completeWord provides completion candidates for the token under the
// cursor from the visible children of the addressed command group.
func (s *Shell) completeWord(line string, pos int) (string, []string, string) {
	head := line[:pos]
	tail := line[pos:]

	start := strings.LastIndexAny(head, " /") + 1
	prefix := head[start:]

	node, args, err := s.tree.Find(head[:start])
	if err != nil || len(args) > 0 {
		return head[:start], nil, prefix + tail
	}

	var candidates []string

	for _, c := range node.Children() {
		if strings.HasPrefix(c.Name(), prefix) {
			candidates = append(candidates, c.Name())
		}
	}

	return head[:start], candidates, tail
}

// newLinerReader builds the default terminal input source.
func newLinerReader() LineReader {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	l.SetTabCompletionStyle(liner.TabPrints)

	return l
}
