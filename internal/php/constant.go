package php

import (
	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Constant is a class or interface constant.
type Constant struct {
	identity
	name     string
	value    *Value
	docBlock *DocBlock
}

// NewConstant creates a constant.
func NewConstant(name string, value *Value) *Constant {
	return &Constant{name: name, value: value}
}

// SetName sets the constant name.
func (c *Constant) SetName(name string) *Constant {
	c.name = name
	return c
}

// Name returns the constant name.
func (c *Constant) Name() string {
	return c.name
}

// SetValue sets the constant value.
func (c *Constant) SetValue(v *Value) *Constant {
	c.value = v
	return c
}

// Value returns the constant value.
func (c *Constant) Value() *Value {
	return c.value
}

// SetDocBlock sets the comment written above the constant.
func (c *Constant) SetDocBlock(d *DocBlock) *Constant {
	c.docBlock = d
	return c
}

// DocBlock returns the comment written above the constant.
func (c *Constant) DocBlock() *DocBlock {
	return c.docBlock
}

func (c *Constant) Render() (string, error) { return c.RenderWith(nil) }
func (c *Constant) String() string          { return stringify(c) }

func (c *Constant) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	if c.value == nil {
		return "", valuef("constant %s has no value", c.name)
	}
	doc, err := renderDocBlock(c.docBlock, f)
	if err != nil {
		return "", err
	}
	v, err := c.value.RenderWith(f)
	if err != nil {
		return "", errors.Wrapf(err, "constant %s", c.name)
	}
	return doc + "const " + c.name + " = " + v + ";" + f.Newline, nil
}
