// phpgen generates PHP source files from YAML or JSON manifests.
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phpgen/internal/config"
	"phpgen/internal/generator"
	"phpgen/internal/parser"
)

type options struct {
	input            string
	configFile       string
	output           string
	newline          string
	indent           string
	indentEmptyLines bool
	types            string
	exclude          string
	accessors        bool
	verbose          bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		for _, hint := range errors.GetAllHints(err) {
			color.New(color.FgYellow).Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "phpgen -i <manifest.yaml> [options]",
		Short: "Generate PHP source from a manifest",
		Long: `phpgen - PHP source generator

Reads a manifest describing namespaces, classes and interfaces and writes
the corresponding PHP file.

Examples:
    # Generate to stdout
    phpgen -i models.yaml

    # Generate specific classes only
    phpgen -i models.yaml -T User,Product -o Models.php

    # Exclude specific types
    phpgen -i models.yaml -X InternalConfig,PrivateData

    # Windows line endings, four space indentation
    phpgen -i models.yaml --newline crlf --indent "    "

    # Generate with custom config and accessors for every class
    phpgen -i models.yaml -c phpgen.toml --accessors -o Models.php`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "Input manifest (YAML or JSON, required)")
	flags.StringVarP(&opts.configFile, "config", "c", "", "Config file (YAML, JSON or TOML)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default: stdout)")
	flags.StringVar(&opts.newline, "newline", "", "Line ending: lf, crlf, cr")
	flags.StringVar(&opts.indent, "indent", "", "Indent string (default: tab)")
	flags.BoolVar(&opts.indentEmptyLines, "indent-empty-lines", false, "Indent blank lines too")
	flags.StringVarP(&opts.types, "types", "T", "", "Only generate these classes/interfaces (comma-separated)")
	flags.StringVarP(&opts.exclude, "exclude", "X", "", "Exclude these classes/interfaces (comma-separated)")
	flags.BoolVar(&opts.accessors, "accessors", false, "Add getters and setters to every class")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	log := zap.NewNop().Sugar()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return errors.Wrap(err, "creating logger")
		}
		defer func() { _ = l.Sync() }()
		log = l.Sugar()
	}

	// Load configuration
	cfg := config.New()
	if opts.configFile != "" {
		if err := cfg.LoadFile(opts.configFile); err != nil {
			return errors.Wrap(err, "loading config")
		}
		log.Debugw("loaded config", "path", opts.configFile)
	}

	// Apply CLI overrides
	flags := cmd.Flags()
	if flags.Changed("newline") {
		cfg.Format.Newline = config.ParseNewline(opts.newline)
	}
	if flags.Changed("indent") {
		cfg.Format.IndentString = opts.indent
	}
	if flags.Changed("indent-empty-lines") {
		cfg.Format.IndentEmptyLines = opts.indentEmptyLines
	}
	if flags.Changed("accessors") {
		cfg.Options.Accessors = opts.accessors
	}
	if opts.types != "" {
		cfg.Options.IncludeTypes = parseCommaSeparated(opts.types)
	}
	if opts.exclude != "" {
		cfg.Options.ExcludeTypes = parseCommaSeparated(opts.exclude)
	}

	// Parse input manifest
	file, err := parser.New().ParseFile(opts.input)
	if err != nil {
		return errors.Wrap(err, "parsing input")
	}
	log.Debugw("parsed manifest",
		"path", opts.input,
		"namespaces", len(file.Namespaces),
		"classes", len(file.Classes),
		"interfaces", len(file.Interfaces))

	// A failed render must leave an existing output file untouched.
	var code bytes.Buffer
	if err := generator.New(cfg, log).Generate(file, &code); err != nil {
		return err
	}

	if opts.output == "" {
		_, err := code.WriteTo(cmd.OutOrStdout())
		return errors.Wrap(err, "writing output")
	}
	if err := writeOutput(opts.output, code.Bytes()); err != nil {
		return err
	}

	log.Infow("generated output", "path", opts.output)
	return nil
}

func writeOutput(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "closing output file")
		}
	}()

	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// parseCommaSeparated splits a comma-separated string into a slice of trimmed strings.
func parseCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
