// Package config provides configuration handling for phpgen.
package config

import "runtime"

// DefaultNewline returns the line terminator of the host platform.
func DefaultNewline() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// DefaultFormat returns the formatting used when nothing else is configured:
// the platform newline, one tab per indentation level and unindented blank lines.
func DefaultFormat() Format {
	return Format{
		Newline:          DefaultNewline(),
		IndentString:     "\t",
		IndentEmptyLines: false,
	}
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{
		Accessors: false,
	}
}
