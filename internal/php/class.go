package php

import (
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Class is a class declaration.
type Class struct {
	identity
	name       string
	parent     string
	interfaces stringSet
	isAbstract bool
	isFinal    bool
	constants  orderedSet[*Constant]
	properties orderedSet[*Property]
	methods    orderedSet[*Method]
	docBlock   *DocBlock
}

// NewClass creates a class.
func NewClass(name string) *Class {
	return &Class{name: name}
}

// SetName sets the class name.
func (c *Class) SetName(name string) *Class {
	c.name = name
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// SetParent sets the class to extend; empty means none.
func (c *Class) SetParent(parent string) *Class {
	c.parent = parent
	return c
}

// Parent returns the class to extend.
func (c *Class) Parent() string {
	return c.parent
}

// SetInterfaces replaces the implemented interfaces.
func (c *Class) SetInterfaces(names ...string) *Class {
	c.interfaces.set(names)
	return c
}

// Interfaces returns the implemented interfaces in insertion order.
func (c *Class) Interfaces() []string {
	return c.interfaces.values()
}

// AddInterface adds an implemented interface.
func (c *Class) AddInterface(name string) *Class {
	c.interfaces.add(name)
	return c
}

// RemoveInterface removes an implemented interface.
func (c *Class) RemoveInterface(name string) *Class {
	c.interfaces.delete(name)
	return c
}

// SetAbstract defines if the class is abstract.
func (c *Class) SetAbstract(isAbstract bool) *Class {
	c.isAbstract = isAbstract
	return c
}

// IsAbstract reports whether the class is abstract.
func (c *Class) IsAbstract() bool {
	return c.isAbstract
}

// SetFinal defines if the class is final.
func (c *Class) SetFinal(isFinal bool) *Class {
	c.isFinal = isFinal
	return c
}

// IsFinal reports whether the class is final.
func (c *Class) IsFinal() bool {
	return c.isFinal
}

// SetConstants replaces all constants.
func (c *Class) SetConstants(constants ...*Constant) *Class {
	c.constants.reset()
	for _, k := range constants {
		c.AddConstant(k)
	}
	return c
}

// Constants returns the constants in insertion order.
func (c *Class) Constants() []*Constant {
	return c.constants.values()
}

// AddConstant adds a constant.
func (c *Class) AddConstant(k *Constant) *Class {
	putNode(&c.constants, k)
	return c
}

// RemoveConstant removes a constant.
func (c *Class) RemoveConstant(k *Constant) *Class {
	removeNode(&c.constants, k)
	return c
}

// SetProperties replaces all properties.
func (c *Class) SetProperties(properties ...*Property) *Class {
	c.properties.reset()
	for _, p := range properties {
		c.AddProperty(p)
	}
	return c
}

// Properties returns the properties in insertion order.
func (c *Class) Properties() []*Property {
	return c.properties.values()
}

// AddProperty adds a property.
func (c *Class) AddProperty(p *Property) *Class {
	putNode(&c.properties, p)
	return c
}

// RemoveProperty removes a property.
func (c *Class) RemoveProperty(p *Property) *Class {
	removeNode(&c.properties, p)
	return c
}

// SetMethods replaces all methods.
func (c *Class) SetMethods(methods ...*Method) *Class {
	c.methods.reset()
	for _, m := range methods {
		c.AddMethod(m)
	}
	return c
}

// Methods returns the methods in insertion order.
func (c *Class) Methods() []*Method {
	return c.methods.values()
}

// AddMethod adds a method.
func (c *Class) AddMethod(m *Method) *Class {
	putNode(&c.methods, m)
	return c
}

// RemoveMethod removes a method.
func (c *Class) RemoveMethod(m *Method) *Class {
	removeNode(&c.methods, m)
	return c
}

// SetDocBlock sets the comment written above the class.
func (c *Class) SetDocBlock(d *DocBlock) *Class {
	c.docBlock = d
	return c
}

// DocBlock returns the comment written above the class.
func (c *Class) DocBlock() *DocBlock {
	return c.docBlock
}

func (c *Class) Render() (string, error) { return c.RenderWith(nil) }
func (c *Class) String() string          { return stringify(c) }

// RenderWith writes the class. Methods are always written as class methods,
// whatever scope they carry.
func (c *Class) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	if c.isAbstract && c.isFinal {
		return "", errors.Wrapf(
			constraintf("cannot use final keyword on abstract class declaration"), "class %s", c.name)
	}

	body, err := c.body(f)
	if err != nil {
		return "", errors.Wrapf(err, "class %s", c.name)
	}
	doc, err := renderDocBlock(c.docBlock, f)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(doc)
	if c.isAbstract {
		b.WriteString("abstract ")
	}
	if c.isFinal {
		b.WriteString("final ")
	}
	b.WriteString("class " + c.name)
	if c.parent != "" {
		b.WriteString(" extends " + c.parent)
	}
	if c.interfaces.len() > 0 {
		b.WriteString(" implements " + strings.Join(c.interfaces.values(), ", "))
	}
	writeBody(&b, body, f)

	return b.String(), nil
}

func (c *Class) body(f *config.Format) (string, error) {
	var b strings.Builder
	for _, k := range c.constants.values() {
		if err := writeMember(&b, k, f); err != nil {
			return "", err
		}
	}
	for _, p := range c.properties.values() {
		if err := writeMember(&b, p, f); err != nil {
			return "", err
		}
	}
	for _, m := range c.methods.values() {
		code, err := m.renderIn(ScopeClass, f)
		if err != nil {
			return "", err
		}
		b.WriteString(f.Newline + code)
	}
	if b.Len() == 0 {
		return "", nil
	}
	return Indent(b.String(), 1, f), nil
}

// writeMember writes a newline followed by the member.
func writeMember(b *strings.Builder, n Node, f *config.Format) error {
	code, err := n.RenderWith(f)
	if err != nil {
		return err
	}
	b.WriteString(f.Newline + code)
	return nil
}

// writeBody writes " {", the already indented body and the closing brace.
func writeBody(b *strings.Builder, body string, f *config.Format) {
	b.WriteString(" {")
	if body != "" {
		b.WriteString(f.Newline + body)
	}
	b.WriteString("}" + f.Newline)
}
