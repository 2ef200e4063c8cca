package generator

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"phpgen/internal/model"
	"phpgen/internal/php"
)

// Local YAML tags understood in manifest values.
const (
	tagConst  = "!const"  // scalar written as a constant reference
	tagRaw    = "!raw"    // scalar written verbatim
	tagObject = "!object" // mapping written as a stdClass object
)

func docBlock(d *model.DocBlock) *php.DocBlock {
	return php.NewDocBlock().
		SetSections(d.Sections...).
		SetAnnotations(d.Annotations...)
}

func newConstant(k model.Constant) (*php.Constant, error) {
	if k.Value == nil {
		return nil, errors.Newf("constant %s has no value", k.Name)
	}
	v, err := newValue(k.Value)
	if err != nil {
		return nil, errors.Wrapf(err, "constant %s", k.Name)
	}
	c := php.NewConstant(k.Name, v)
	if k.DocBlock != nil {
		c.SetDocBlock(docBlock(k.DocBlock))
	}
	return c, nil
}

func newProperty(p model.Property) (*php.Property, error) {
	visibility, err := php.ParseVisibility(p.Visibility, php.VisibilityProtected)
	if err != nil {
		return nil, err
	}

	prop := php.NewProperty(p.Name).
		SetVisibility(visibility).
		SetStatic(p.Static)
	if p.Value != nil {
		v, err := newValue(p.Value)
		if err != nil {
			return nil, err
		}
		prop.SetValue(v)
	}

	var doc *php.DocBlock
	if p.DocBlock != nil {
		doc = docBlock(p.DocBlock)
	}
	if p.Type != "" {
		if doc == nil {
			doc = php.NewDocBlock()
		}
		doc.AddAnnotation("@var " + p.Type)
	}
	if doc != nil {
		prop.SetDocBlock(doc)
	}

	return prop, nil
}

func newMethod(m model.Method, scope php.Scope) (*php.Method, error) {
	visibility, err := php.ParseVisibility(m.Visibility, php.VisibilityPublic)
	if err != nil {
		return nil, err
	}

	method := php.NewMethod(m.Name).
		SetVisibility(visibility).
		SetScope(scope).
		SetStatic(m.Static).
		SetAbstract(m.Abstract).
		SetFinal(m.Final)
	if m.DocBlock != nil {
		method.SetDocBlock(docBlock(m.DocBlock))
	}

	for _, p := range m.Parameters {
		param := php.NewParameter(p.Name).SetType(p.Type)
		if p.Default != nil {
			v, err := newValue(p.Default)
			if err != nil {
				return nil, errors.Wrapf(err, "parameter $%s", p.Name)
			}
			param.SetValue(v)
		}
		method.AddParameter(param)
	}

	if body := newBody(m.Body, m.Assign); body != nil {
		method.SetBody(body)
	}

	return method, nil
}

// newBody splits body into lines. Leading tabs of a line are taken as its
// indent level, so the body follows the configured indent string.
func newBody(body string, assign *model.Assign) *php.RawCode {
	body = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(body)
	body = strings.TrimRight(body, "\n")
	if body == "" && assign == nil {
		return nil
	}

	code := php.NewRawCode()
	if body != "" {
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimRight(line, " \t")
			text := strings.TrimLeft(line, "\t")
			if text == "" {
				code.AddLine("")
				continue
			}
			code.AddLineAt(text, len(line)-len(text))
		}
	}
	if assign != nil {
		code.CreateLines(assign.Variable, assign.Text)
	}
	return code
}

// newValue converts a manifest literal. A value without an explicit type
// whose data is a tagged scalar becomes that nested value.
func newValue(v *model.Value) (*php.Value, error) {
	kind, err := php.ParseKind(v.Type)
	if err != nil {
		return nil, err
	}
	output, err := php.ParseArrayOutput(v.Output)
	if err != nil {
		return nil, err
	}

	raw, err := nodeValue(&v.Data)
	if err != nil {
		return nil, err
	}
	if nested, ok := raw.(*php.Value); ok && kind == php.KindAuto {
		return nested.SetArrayOutput(output), nil
	}
	return php.NewTypedValue(raw, kind).SetArrayOutput(output), nil
}

// nodeValue converts a YAML node into the data accepted by php.Value.
// Sequences and mappings become php.Array so key order is kept.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.ScalarNode:
		return scalarValue(n)
	case yaml.SequenceNode:
		a := make(php.Array, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			a = a.Append(v)
		}
		return a, nil
	case yaml.MappingNode:
		return mappingValue(n)
	}
	return nil, errors.Newf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case tagConst:
		return php.NewTypedValue(n.Value, php.KindConstant), nil
	case tagRaw:
		return php.NewTypedValue(n.Value, php.KindRaw), nil
	case "!!timestamp", "!!binary":
		return n.Value, nil
	}

	var v any
	if err := n.Decode(&v); err != nil {
		return nil, errors.Wrapf(err, "line %d", n.Line)
	}
	return v, nil
}

func mappingValue(n *yaml.Node) (any, error) {
	a := make(php.Array, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.Newf("line %d: array keys must be scalars", keyNode.Line)
		}
		var key any
		if err := keyNode.Decode(&key); err != nil {
			return nil, errors.Wrapf(err, "line %d", keyNode.Line)
		}
		if key == nil {
			key = ""
		}

		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		a = a.Set(key, v)
	}

	switch tag := n.ShortTag(); {
	case tag == tagObject:
		return php.Object{Properties: a}, nil
	case strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!"):
		return php.Object{Class: strings.TrimPrefix(tag, "!"), Properties: a}, nil
	}
	return a, nil
}

// addAccessors adds get<Name>() and set<Name>($name) for every non-static
// property, unless the class already declares a method of that name. It
// returns the number of methods added.
func addAccessors(cls *php.Class, props []model.Property) int {
	declared := make(map[string]bool)
	for _, m := range cls.Methods() {
		declared[strings.ToLower(m.Name())] = true
	}

	added := 0
	add := func(m *php.Method) {
		if declared[strings.ToLower(m.Name())] {
			return
		}
		declared[strings.ToLower(m.Name())] = true
		cls.AddMethod(m)
		added++
	}

	for _, p := range props {
		if p.Static {
			continue
		}
		name := strcase.ToCamel(p.Name)
		param := strcase.ToLowerCamel(p.Name)

		getter := php.NewMethod("get" + name).
			SetBody(php.NewRawCode().AddLine("return $this->" + p.Name + ";"))
		setter := php.NewMethod("set"+name).
			AddParameter(php.NewParameter(param)).
			SetBody(php.NewRawCode().
				AddLine("$this->" + p.Name + " = $" + param + ";").
				AddLine("return $this;"))

		if p.Type != "" {
			getter.SetDocBlock(php.NewDocBlock().AddAnnotation("@return " + p.Type))
			setter.SetDocBlock(php.NewDocBlock().
				AddAnnotation("@param " + p.Type + " $" + param).
				AddAnnotation("@return $this"))
		}

		add(getter)
		add(setter)
	}
	return added
}
