package php

import (
	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Parameter is a method parameter: [type ]$name[ = default].
type Parameter struct {
	identity
	name     string
	typeHint string
	value    *Value
}

// NewParameter creates an untyped parameter without default value.
func NewParameter(name string) *Parameter {
	return &Parameter{name: name}
}

// SetName sets the parameter name, without the leading $.
func (p *Parameter) SetName(name string) *Parameter {
	p.name = name
	return p
}

// Name returns the parameter name.
func (p *Parameter) Name() string {
	return p.name
}

// SetType sets the type hint.
func (p *Parameter) SetType(typeHint string) *Parameter {
	p.typeHint = typeHint
	return p
}

// Type returns the type hint.
func (p *Parameter) Type() string {
	return p.typeHint
}

// SetValue sets the default value. nil removes it.
func (p *Parameter) SetValue(v *Value) *Parameter {
	p.value = v
	return p
}

// Value returns the default value.
func (p *Parameter) Value() *Value {
	return p.value
}

func (p *Parameter) Render() (string, error) { return p.RenderWith(nil) }
func (p *Parameter) String() string          { return stringify(p) }

func (p *Parameter) RenderWith(f *config.Format) (string, error) {
	code := ""
	if p.typeHint != "" {
		code += p.typeHint + " "
	}
	code += "$" + p.name
	if p.value != nil {
		v, err := p.value.RenderWith(f)
		if err != nil {
			return "", errors.Wrapf(err, "parameter $%s", p.name)
		}
		code += " = " + v
	}
	return code, nil
}
