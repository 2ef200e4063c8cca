// Package parser loads phpgen manifests.
package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"phpgen/internal/model"
)

// ErrInvalidManifest is returned for a manifest that decodes but describes
// code that cannot be declared.
var ErrInvalidManifest = errors.New("invalid manifest")

var (
	identRe     = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*$`)
	qualifiedRe = regexp.MustCompile(`^\\?[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*(\\[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z0-9_\x{80}-\x{10FFFF}]*)*$`)
)

// Parser reads manifests.
type Parser struct {
	strict bool
}

// New creates a new Parser that rejects unknown manifest keys.
func New() *Parser {
	return &Parser{strict: true}
}

// Lenient makes the parser ignore unknown manifest keys.
func (p *Parser) Lenient() *Parser {
	p.strict = false
	return p
}

// ParseFile parses a YAML or JSON manifest file.
func (p *Parser) ParseFile(path string) (*model.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	file, err := p.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	file.Path = path

	return file, nil
}

// Parse parses a manifest held in memory. An empty document yields an empty
// file.
func (p *Parser) Parse(data []byte) (*model.File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.strict)

	file := &model.File{}
	if err := dec.Decode(file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "decoding manifest")
	}

	if err := validate(file); err != nil {
		return nil, err
	}
	return file, nil
}

func invalid(path, format string, args ...any) error {
	return errors.Mark(errors.Newf("%s: "+format, append([]any{path}, args...)...), ErrInvalidManifest)
}

func checkIdent(path, what, name string) error {
	if name == "" {
		return invalid(path, "%s is empty", what)
	}
	if !identRe.MatchString(name) {
		return invalid(path, "%s %q is not a valid identifier", what, name)
	}
	return nil
}

func checkQualified(path, what, name string) error {
	if !qualifiedRe.MatchString(name) {
		return invalid(path, "%s %q is not a valid qualified name", what, name)
	}
	return nil
}

// validate reports the first entry that cannot be declared.
func validate(f *model.File) error {
	for i, n := range f.Namespaces {
		path := fmt.Sprintf("namespaces[%d]", i)
		if n.Name != "" && n.Name != `\` {
			if err := checkQualified(path, "namespace", n.Name); err != nil {
				return err
			}
		}
		for j, u := range n.Uses {
			upath := fmt.Sprintf("%s.uses[%d]", path, j)
			if err := checkQualified(upath, "use", u.Name); err != nil {
				return err
			}
			if u.Alias != "" {
				if err := checkIdent(upath, "alias", u.Alias); err != nil {
					return err
				}
			}
		}
		if err := validateTypes(path+".", n.Classes, n.Interfaces); err != nil {
			return err
		}
	}
	return validateTypes("", f.Classes, f.Interfaces)
}

func validateTypes(prefix string, classes []model.Class, interfaces []model.Interface) error {
	for i, c := range classes {
		path := fmt.Sprintf("%sclasses[%d]", prefix, i)
		if err := checkIdent(path, "class name", c.Name); err != nil {
			return err
		}
		if c.Extends != "" {
			if err := checkQualified(path, "parent", c.Extends); err != nil {
				return err
			}
		}
		for _, name := range c.Implements {
			if err := checkQualified(path, "interface", name); err != nil {
				return err
			}
		}
		if err := validateConstants(path, c.Constants); err != nil {
			return err
		}
		for j, prop := range c.Properties {
			if err := checkIdent(fmt.Sprintf("%s.properties[%d]", path, j), "property name", prop.Name); err != nil {
				return err
			}
		}
		if err := validateMethods(path, c.Methods); err != nil {
			return err
		}
	}

	for i, in := range interfaces {
		path := fmt.Sprintf("%sinterfaces[%d]", prefix, i)
		if err := checkIdent(path, "interface name", in.Name); err != nil {
			return err
		}
		for _, name := range in.Extends {
			if err := checkQualified(path, "parent", name); err != nil {
				return err
			}
		}
		if err := validateConstants(path, in.Constants); err != nil {
			return err
		}
		if err := validateMethods(path, in.Methods); err != nil {
			return err
		}
	}
	return nil
}

func validateConstants(path string, constants []model.Constant) error {
	for i, k := range constants {
		kpath := fmt.Sprintf("%s.constants[%d]", path, i)
		if err := checkIdent(kpath, "constant name", k.Name); err != nil {
			return err
		}
		if k.Value == nil {
			return invalid(kpath, "constant %s has no value", k.Name)
		}
	}
	return nil
}

func validateMethods(path string, methods []model.Method) error {
	for i, m := range methods {
		mpath := fmt.Sprintf("%s.methods[%d]", path, i)
		if err := checkIdent(mpath, "method name", m.Name); err != nil {
			return err
		}
		for j, param := range m.Parameters {
			if err := checkIdent(fmt.Sprintf("%s.parameters[%d]", mpath, j), "parameter name", param.Name); err != nil {
				return err
			}
		}
		if m.Assign != nil {
			if err := checkIdent(mpath+".assign", "variable", m.Assign.Variable); err != nil {
				return err
			}
		}
	}
	return nil
}
