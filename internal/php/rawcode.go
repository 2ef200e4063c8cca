package php

import (
	"strings"

	"phpgen/internal/config"
)

type fragmentKind int

const (
	fragmentCode   fragmentKind = iota // verbatim text
	fragmentLine                       // a line, preceded by a newline unless it is the first output
	fragmentConcat                     // like fragmentLine, followed by a newline literal and ";"
)

type fragment struct {
	kind  fragmentKind
	text  string
	level int
}

// RawCode is a block of PHP statements, used as method body. Lines are
// collected with their indentation level; newlines are only inserted when
// the block is rendered, so the same block renders correctly for every
// configured newline.
type RawCode struct {
	fragments   []fragment
	indentLevel int
}

// NewRawCode creates an empty code block.
func NewRawCode() *RawCode {
	return &RawCode{}
}

// SetCode replaces the block with code.
func (r *RawCode) SetCode(code string) *RawCode {
	r.fragments = []fragment{{kind: fragmentCode, text: code}}
	return r
}

// AddCode appends code verbatim.
func (r *RawCode) AddCode(code string) *RawCode {
	r.fragments = append(r.fragments, fragment{kind: fragmentCode, text: code})
	return r
}

// SetIndentLevel sets the level used by AddLine.
func (r *RawCode) SetIndentLevel(level int) *RawCode {
	r.indentLevel = level
	return r
}

// IndentLevel returns the level used by AddLine.
func (r *RawCode) IndentLevel() int {
	return r.indentLevel
}

// AddLine appends a line at the current indent level. An empty line adds a
// blank line.
func (r *RawCode) AddLine(line string) *RawCode {
	return r.AddLineAt(line, 0)
}

// AddLineAt appends a line at the given level; 0 means the current level.
func (r *RawCode) AddLineAt(line string, level int) *RawCode {
	if level == 0 {
		level = r.indentLevel
	}
	r.fragments = append(r.fragments, fragment{kind: fragmentLine, text: line, level: level})
	return r
}

// OpenScope adds line and increments the indent level. With closeFirst the
// level is decremented before the line is written, as needed for "} else {".
func (r *RawCode) OpenScope(line string, closeFirst bool) *RawCode {
	if closeFirst {
		r.indentLevel--
	}
	r.AddLine(line)
	r.indentLevel++
	return r
}

// CloseScope decrements the indent level and adds line. With openAfter the
// level is incremented again afterwards.
func (r *RawCode) CloseScope(line string, openAfter bool) *RawCode {
	r.indentLevel--
	r.AddLine(line)
	if openAfter {
		r.indentLevel++
	}
	return r
}

// CreateLines turns block into statements that build the same text in the
// variable varName, one concatenation per non-empty line. Single quotes in
// block must already be escaped.
func (r *RawCode) CreateLines(varName string, block string) *RawCode {
	var lines []string
	normalized := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(block)
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimRight(line, " \t\n\r\x00\x0B")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	v := "$" + varName
	switch len(lines) {
	case 0:
		return r.AddLine(v + " = '';")
	case 1:
		return r.AddLine(v + " = '" + lines[0] + "';")
	}
	for i, line := range lines {
		switch {
		case i == 0:
			r.addConcat(v + "  = '" + line + "'")
		case i < len(lines)-1:
			r.addConcat(v + " .= '" + line + "'")
		default:
			r.AddLine(v + " .= '" + line + "';")
		}
	}
	return r
}

func (r *RawCode) addConcat(text string) {
	r.fragments = append(r.fragments, fragment{kind: fragmentConcat, text: text, level: r.indentLevel})
}

// Code returns the block rendered with the process-wide format.
func (r *RawCode) Code() string {
	code, _ := r.RenderWith(nil)
	return code
}

// IsEmpty reports whether the block renders to nothing.
func (r *RawCode) IsEmpty() bool {
	code, _ := r.RenderWith(&config.Format{Newline: "\n"})
	return code == ""
}

func (r *RawCode) Render() (string, error) { return r.RenderWith(nil) }
func (r *RawCode) String() string          { return stringify(r) }

func (r *RawCode) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	var b strings.Builder
	for _, fr := range r.fragments {
		if fr.kind == fragmentCode {
			b.WriteString(fr.text)
			continue
		}
		if b.Len() > 0 {
			b.WriteString(f.Newline)
		}
		text := fr.text
		if fr.kind == fragmentConcat {
			text += " . " + newlineLiteral(f) + ";"
		}
		b.WriteString(Indent(text, fr.level, f))
	}
	return b.String(), nil
}

// newlineLiteral is the double-quoted PHP literal for the configured newline.
func newlineLiteral(f *config.Format) string {
	switch f.Newline {
	case "\r\n":
		return `"\r\n"`
	case "\r":
		return `"\r"`
	}
	return `"\n"`
}
