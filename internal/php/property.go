package php

import (
	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Property is a class property.
type Property struct {
	identity
	name       string
	value      *Value
	visibility Visibility
	isStatic   bool
	docBlock   *DocBlock
}

// NewProperty creates a protected, non-static property without value.
func NewProperty(name string) *Property {
	return &Property{name: name, visibility: VisibilityProtected}
}

// SetName sets the property name, without the leading $.
func (p *Property) SetName(name string) *Property {
	p.name = name
	return p
}

// Name returns the property name.
func (p *Property) Name() string {
	return p.name
}

// SetValue sets the initial value. nil removes it.
func (p *Property) SetValue(v *Value) *Property {
	p.value = v
	return p
}

// Value returns the initial value.
func (p *Property) Value() *Value {
	return p.value
}

// SetVisibility sets the visibility.
func (p *Property) SetVisibility(v Visibility) *Property {
	p.visibility = v
	return p
}

// Visibility returns the visibility.
func (p *Property) Visibility() Visibility {
	return p.visibility
}

// SetStatic defines if the property is static.
func (p *Property) SetStatic(isStatic bool) *Property {
	p.isStatic = isStatic
	return p
}

// IsStatic reports whether the property is static.
func (p *Property) IsStatic() bool {
	return p.isStatic
}

// SetDocBlock sets the comment written above the property.
func (p *Property) SetDocBlock(d *DocBlock) *Property {
	p.docBlock = d
	return p
}

// DocBlock returns the comment written above the property.
func (p *Property) DocBlock() *DocBlock {
	return p.docBlock
}

func (p *Property) Render() (string, error) { return p.RenderWith(nil) }
func (p *Property) String() string          { return stringify(p) }

func (p *Property) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	visibility, err := visibilityKeyword(p.visibility)
	if err != nil {
		return "", errors.Wrapf(err, "property $%s", p.name)
	}
	doc, err := renderDocBlock(p.docBlock, f)
	if err != nil {
		return "", err
	}

	code := doc + visibility + " "
	if p.isStatic {
		code += "static "
	}
	code += "$" + p.name
	if p.value != nil {
		v, err := p.value.RenderWith(f)
		if err != nil {
			return "", errors.Wrapf(err, "property $%s", p.name)
		}
		code += " = " + v
	}
	return code + ";" + f.Newline, nil
}
