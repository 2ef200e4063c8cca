package config

import (
	"strings"
	"sync/atomic"
)

// Format holds the knobs that control how a node tree is turned into text.
type Format struct {
	Newline          string // Line terminator inserted between generated lines
	IndentString     string // Unit repeated once per indentation level
	IndentEmptyLines bool   // Whether blank lines receive indentation
}

// Clone returns a copy of f that can be modified independently.
func (f *Format) Clone() *Format {
	c := *f
	return &c
}

var active atomic.Pointer[Format]

// Active returns the process-wide format. A default format is created on
// first use if none was set.
//
// Renders only read the returned value; modifying it while another goroutine
// renders is undefined. Callers that need isolation should pass a Format
// explicitly instead.
func Active() *Format {
	if f := active.Load(); f != nil {
		return f
	}
	def := DefaultFormat()
	active.CompareAndSwap(nil, &def)
	return active.Load()
}

// SetActive replaces the process-wide format. Passing nil restores the lazily
// created default.
func SetActive(f *Format) {
	active.Store(f)
}

// ParseNewline resolves the symbolic line ending names lf, crlf and cr
// (case-insensitive). Any other input is returned unchanged, after expanding
// the escape sequences \n and \r.
func ParseNewline(s string) string {
	switch strings.ToLower(s) {
	case "lf", "unix":
		return "\n"
	case "crlf", "windows":
		return "\r\n"
	case "cr", "mac":
		return "\r"
	}
	return strings.NewReplacer(`\n`, "\n", `\r`, "\r").Replace(s)
}
