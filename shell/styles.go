// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package shell

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for shell messages. The prompt itself is
// deliberately unstyled: liner measures prompt width byte-wise and escape
// sequences would break redraw.
type Styles struct {
	// Notice renders recoverable conditions such as an unknown command.
	Notice lipgloss.Style
	// Error renders failures reported by invoked commands.
	Error lipgloss.Style
}

// NewStyles creates the default styling for the shell.
func NewStyles() *Styles {
	return &Styles{
		Notice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
	}
}
