// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdtree provides a navigable, read-only tree view over a built
// urfave/cli command hierarchy. It supports stateless path resolution and a
// stateful current position for shell-style relative navigation. The
// command hierarchy must not be mutated after the tree is built.
package cmdtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// ErrNotFound is returned when a path segment does not match any command.
var ErrNotFound = errors.New("command not found")

const pathSeparator = "/"

// Node is one command or command group in the tree.
type Node struct {
	cmd      *cli.Command
	parent   *Node
	children []*Node
	byName   map[string]*Node
}

func newNode(cmd *cli.Command, parent *Node) *Node {
	n := &Node{
		cmd:    cmd,
		parent: parent,
		byName: make(map[string]*Node, len(cmd.Commands)),
	}

	for _, sub := range cmd.Commands {
		child := newNode(sub, n)
		n.children = append(n.children, child)
		n.byName[sub.Name] = child

		for _, alias := range sub.Aliases {
			n.byName[alias] = child
		}
	}

	return n
}

// Name returns the command name, or the empty string for the root.
func (n *Node) Name() string {
	if n.parent == nil {
		return ""
	}

	return n.cmd.Name
}

// Command returns the underlying cli command.
func (n *Node) Command() *cli.Command {
	return n.cmd
}

// Hidden reports whether the command is excluded from listings.
// Hidden commands remain resolvable and invocable.
func (n *Node) Hidden() bool {
	return n.cmd.Hidden
}

// IsGroup reports whether the node has subcommands.
func (n *Node) IsGroup() bool {
	return len(n.children) > 0
}

// Children returns the visible immediate children in declaration order.
func (n *Node) Children() []*Node {
	visible := make([]*Node, 0, len(n.children))

	for _, c := range n.children {
		if c.Hidden() {
			continue
		}

		visible = append(visible, c)
	}

	return visible
}

// Segments returns the path from the root to this node as name segments.
// The root yields an empty slice.
func (n *Node) Segments() []string {
	if n.parent == nil {
		return nil
	}

	return append(n.parent.Segments(), n.cmd.Name)
}

// Path returns the absolute slash-separated path of the node.
func (n *Node) Path() string {
	return pathSeparator + strings.Join(n.Segments(), pathSeparator)
}

// child looks up an immediate child by name or alias, including hidden ones.
func (n *Node) child(name string) (*Node, bool) {
	c, ok := n.byName[name]

	return c, ok
}

// Tree is a navigator over a command hierarchy. It tracks a single current
// position for relative navigation; use one Tree per interactive session.
type Tree struct {
	root *Node
	cur  *Node
}

// New builds a tree view over the given root command.
func New(root *cli.Command) *Tree {
	n := newNode(root, nil)

	return &Tree{root: n, cur: n}
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Current returns the node at the current position.
func (t *Tree) Current() *Node {
	return t.cur
}

// Path returns the absolute path of the current position.
func (t *Tree) Path() string {
	return t.cur.Path()
}

// Resolve walks the given path from the root without changing the current
// position. It fails with ErrNotFound on the first non-matching segment.
// Matching is case-sensitive and exact; hidden commands resolve.
func (t *Tree) Resolve(path ...string) (*Node, error) {
	node := t.root

	for _, seg := range path {
		c, ok := node.child(seg)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, seg)
		}

		node = c
	}

	return node, nil
}

// Children returns the visible children of the current position in
// declaration order.
func (t *Tree) Children() []*Node {
	return t.cur.Children()
}

// ChildrenOf returns the visible children of the node at the given path.
func (t *Tree) ChildrenOf(path ...string) ([]*Node, error) {
	node, err := t.Resolve(path...)
	if err != nil {
		return nil, err
	}

	return node.Children(), nil
}

// Descend moves the current position into the named child. On failure the
// current position is unchanged.
func (t *Tree) Descend(name string) error {
	c, ok := t.cur.child(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	t.cur = c

	return nil
}

// Ascend moves the current position to its parent. At the root it is a
// no-op.
func (t *Tree) Ascend() {
	if t.cur.parent != nil {
		t.cur = t.cur.parent
	}
}

// Reset moves the current position back to the root. It never fails.
func (t *Tree) Reset() {
	t.cur = t.root
}

// JumpTo moves the current position to the given absolute path. On failure
// the current position is unchanged.
func (t *Tree) JumpTo(path ...string) error {
	node, err := t.Resolve(path...)
	if err != nil {
		return err
	}

	t.cur = node

	return nil
}

// Find parses one line of input relative to the current position and
// returns the addressed node together with the remaining tokens.
//
// Spaces and slashes are interchangeable separators; repeated separators
// collapse. A leading slash addresses from the root, ".." moves to the
// parent (staying at the root when already there). Resolution stops at the
// first node without subcommands; the tokens after it are returned as
// arguments, split on the same separators, so "cmd/arg" and "cmd arg" are
// equivalent. The current position is never changed.
func (t *Tree) Find(line string) (*Node, []string, error) {
	remain := strings.TrimSpace(line)

	node := t.cur
	if strings.HasPrefix(remain, pathSeparator) {
		node = t.root
	}

	for remain != "" {
		seg, rest := cutSegment(remain)
		remain = rest

		if seg == "" {
			continue
		}

		switch seg {
		case "..":
			if node.parent != nil {
				node = node.parent
			}
		default:
			c, ok := node.child(seg)
			if !ok {
				return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, seg)
			}

			node = c
		}

		if !node.IsGroup() {
			break
		}
	}

	args := strings.FieldsFunc(remain, isSeparator)
	if len(args) == 0 {
		args = nil
	}

	return node, args, nil
}

// cutSegment splits off the leading segment at the first separator.
func cutSegment(s string) (seg, rest string) {
	if i := strings.IndexFunc(s, isSeparator); i >= 0 {
		return s[:i], s[i+1:]
	}

	return s, ""
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '/'
}
