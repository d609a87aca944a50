// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	// ErrMarshalAttrs is returned when log record attributes cannot be marshaled.
	ErrMarshalAttrs = errors.New("failed to marshal log attributes")
	// ErrWriteRecord is returned when a log record cannot be written to the output.
	ErrWriteRecord = errors.New("failed to write log record")
)

// timeFormat is the format used for timestamps in log messages.
const timeFormat = "[15:04:05.000]"

// Styles holds the lipgloss styles used to render a log record.
type Styles struct {
	Timestamp lipgloss.Style
	Message   lipgloss.Style
	Attrs     lipgloss.Style
	Debug     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles creates the default styling for the pretty handler.
func NewStyles() *Styles {
	return &Styles{
		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")),
		Attrs: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Debug: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")),
		Warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
	}
}

// PrettyHandler is a slog handler that formats records for the console.
// Attributes are rendered through an inner JSON handler so that groups and
// ReplaceAttr behave exactly as they do for slog's own handlers.
type PrettyHandler struct {
	inner  slog.Handler
	buf    *bytes.Buffer
	mu     *sync.Mutex
	writer io.Writer
	styles *Styles
	json   *colorjson.Formatter
	color  bool
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// WithAttrs returns a new handler whose attributes consist of both the
// receiver's attributes and the arguments.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{
		inner:  h.inner.WithAttrs(attrs),
		buf:    h.buf,
		mu:     h.mu,
		writer: h.writer,
		styles: h.styles,
		json:   h.json,
		color:  h.color,
	}
}

// WithGroup returns a new handler with the given group appended to the
// receiver's existing groups.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		inner:  h.inner.WithGroup(name),
		buf:    h.buf,
		mu:     h.mu,
		writer: h.writer,
		styles: h.styles,
		json:   h.json,
		color:  h.color,
	}
}

// Handle formats and writes a single log record.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	var rendered string

	if len(attrs) > 0 {
		b, err := h.json.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttrs, err)
		}

		rendered = string(b)
	}

	timestamp := r.Time.Format(timeFormat)
	level := r.Level.String() + ":"
	msg := r.Message

	if h.color {
		timestamp = h.styles.Timestamp.Render(timestamp)
		level = h.levelStyle(r.Level).Render(level)
		msg = h.styles.Message.Render(msg)
		rendered = h.styles.Attrs.Render(rendered)
	}

	out := strings.Builder{}
	out.WriteString(timestamp)
	out.WriteString(" ")
	out.WriteString(level)
	out.WriteString(" ")
	out.WriteString(msg)

	if len(attrs) > 0 {
		out.WriteString(" ")
		out.WriteString(rendered)
	}

	out.WriteString("\n")

	h.mu.Lock()
	_, err = io.WriteString(h.writer, out.String())
	h.mu.Unlock()

	if err != nil {
		return errors.Join(ErrWriteRecord, err)
	}

	return nil
}

// computeAttrs runs the record through the inner JSON handler and decodes
// the result, yielding the record's attributes with all group and
// ReplaceAttr processing applied.
func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.mu.Lock()
	defer func() {
		h.buf.Reset()
		h.mu.Unlock()
	}()

	if err := h.inner.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("%w: inner handler: %v", ErrMarshalAttrs, err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.buf.Bytes(), &attrs); err != nil {
		return nil, errors.Join(ErrMarshalAttrs, err)
	}

	return attrs, nil
}

func (h *PrettyHandler) levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level < slog.LevelInfo:
		return h.styles.Debug
	case level < slog.LevelWarn:
		return h.styles.Info
	case level < slog.LevelError:
		return h.styles.Warn
	default:
		return h.styles.Error
	}
}

// suppressDefaults drops the time, level and message attributes before they
// reach the inner JSON handler; Handle renders those itself.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr,
) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}

// NewPrettyHandler creates a new PrettyHandler with the given options.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		buf: buf,
		inner: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		mu:     &sync.Mutex{},
		writer: os.Stderr,
		styles: NewStyles(),
		json:   colorjson.NewFormatter(),
	}
	handler.json.Indent = 0

	for _, opt := range options {
		opt(handler)
	}

	handler.json.DisabledColor = !handler.color

	return handler
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithWriter sets the destination writer for the PrettyHandler.
func WithWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithStyles replaces the default styles.
func WithStyles(styles *Styles) Option {
	return func(h *PrettyHandler) {
		h.styles = styles
	}
}

// WithColor enables color output for the PrettyHandler.
func WithColor() Option {
	return func(h *PrettyHandler) {
		h.color = true
	}
}

// WithAutoColor enables color output when stderr is a terminal, honouring
// the NO_COLOR and FORCE_COLOR environment variables.
func WithAutoColor() Option {
	return func(h *PrettyHandler) {
		h.color = colorEnabled()
	}
}

func colorEnabled() bool {
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	return term.IsTerminal(int(os.Stderr.Fd()))
}
