// Package php models PHP declarations as a tree of nodes and renders that
// tree into source text.
//
// Trees are built bottom-up with constructors and fluent setters, then
// rendered from the root. Mutation never validates: illegal modifier
// combinations or container layouts are only rejected by Render, so a tree
// may be assembled incrementally. Rendering never modifies a node and can be
// repeated. Adding or removing a nil child is a no-op.
//
// Formatting is taken from config.Active unless a config.Format is passed to
// RenderWith.
package php

import (
	"strings"

	"phpgen/internal/config"
)

// OpenTag is written at the top of every generated file.
const OpenTag = "<?php"

// Node is a renderable construct.
type Node interface {
	// Render renders the node with the process-wide format.
	Render() (string, error)
	// RenderWith renders the node with f, or with the process-wide format
	// if f is nil.
	RenderWith(f *config.Format) (string, error)
}

func resolve(f *config.Format) *config.Format {
	if f == nil {
		return config.Active()
	}
	return f
}

// stringify backs the String methods; a node that fails to render yields "".
func stringify(n Node) string {
	s, err := n.Render()
	if err != nil {
		return ""
	}
	return s
}

// Indent prefixes every line of text with f.IndentString repeated level
// times. Lines are delimited by f.Newline exactly. The empty remainder after
// a trailing newline is not a line, and blank lines are only indented when
// f.IndentEmptyLines is set.
func Indent(text string, level int, f *config.Format) string {
	if level <= 0 {
		return text
	}
	f = resolve(f)
	prefix := strings.Repeat(f.IndentString, level)

	var lines []string
	if f.Newline == "" {
		lines = []string{text}
	} else {
		lines = strings.Split(text, f.Newline)
	}

	last := len(lines) - 1
	for i, line := range lines {
		if line == "" {
			if i == last && last > 0 {
				continue
			}
			if !f.IndentEmptyLines {
				continue
			}
		}
		lines[i] = prefix + line
	}

	if f.Newline == "" {
		return lines[0]
	}
	return strings.Join(lines, f.Newline)
}

// trimNewlines strips every trailing character that occurs in the newline
// sequence, so "\r\n" trailers of any length are removed as a whole.
func trimNewlines(s string, f *config.Format) string {
	if f.Newline == "" {
		return s
	}
	return strings.TrimRight(s, f.Newline)
}

func renderDocBlock(d *DocBlock, f *config.Format) (string, error) {
	if d == nil {
		return "", nil
	}
	return d.RenderWith(f)
}
