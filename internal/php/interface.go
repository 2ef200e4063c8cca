package php

import (
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Interface is an interface declaration.
type Interface struct {
	identity
	name      string
	parents   stringSet
	constants orderedSet[*Constant]
	methods   orderedSet[*Method]
	docBlock  *DocBlock
}

// NewInterface creates an interface.
func NewInterface(name string) *Interface {
	return &Interface{name: name}
}

// SetName sets the interface name.
func (i *Interface) SetName(name string) *Interface {
	i.name = name
	return i
}

// Name returns the interface name.
func (i *Interface) Name() string {
	return i.name
}

// SetParents replaces the inherited interfaces.
func (i *Interface) SetParents(names ...string) *Interface {
	i.parents.set(names)
	return i
}

// Parents returns the inherited interfaces in insertion order.
func (i *Interface) Parents() []string {
	return i.parents.values()
}

// AddParent adds an inherited interface.
func (i *Interface) AddParent(name string) *Interface {
	i.parents.add(name)
	return i
}

// RemoveParent removes an inherited interface.
func (i *Interface) RemoveParent(name string) *Interface {
	i.parents.delete(name)
	return i
}

// SetConstants replaces all constants.
func (i *Interface) SetConstants(constants ...*Constant) *Interface {
	i.constants.reset()
	for _, k := range constants {
		i.AddConstant(k)
	}
	return i
}

// Constants returns the constants in insertion order.
func (i *Interface) Constants() []*Constant {
	return i.constants.values()
}

// AddConstant adds a constant.
func (i *Interface) AddConstant(k *Constant) *Interface {
	putNode(&i.constants, k)
	return i
}

// RemoveConstant removes a constant.
func (i *Interface) RemoveConstant(k *Constant) *Interface {
	removeNode(&i.constants, k)
	return i
}

// SetMethods replaces all methods.
func (i *Interface) SetMethods(methods ...*Method) *Interface {
	i.methods.reset()
	for _, m := range methods {
		i.AddMethod(m)
	}
	return i
}

// Methods returns the methods in insertion order.
func (i *Interface) Methods() []*Method {
	return i.methods.values()
}

// AddMethod adds a method.
func (i *Interface) AddMethod(m *Method) *Interface {
	putNode(&i.methods, m)
	return i
}

// RemoveMethod removes a method.
func (i *Interface) RemoveMethod(m *Method) *Interface {
	removeNode(&i.methods, m)
	return i
}

// SetDocBlock sets the comment written above the interface.
func (i *Interface) SetDocBlock(d *DocBlock) *Interface {
	i.docBlock = d
	return i
}

// DocBlock returns the comment written above the interface.
func (i *Interface) DocBlock() *DocBlock {
	return i.docBlock
}

func (i *Interface) Render() (string, error) { return i.RenderWith(nil) }
func (i *Interface) String() string          { return stringify(i) }

// RenderWith writes the interface. Methods are always written as interface
// methods, whatever scope they carry.
func (i *Interface) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	body, err := i.body(f)
	if err != nil {
		return "", errors.Wrapf(err, "interface %s", i.name)
	}
	doc, err := renderDocBlock(i.docBlock, f)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(doc)
	b.WriteString("interface " + i.name)
	if i.parents.len() > 0 {
		b.WriteString(" extends " + strings.Join(i.parents.values(), ", "))
	}
	writeBody(&b, body, f)

	return b.String(), nil
}

func (i *Interface) body(f *config.Format) (string, error) {
	var b strings.Builder
	for _, k := range i.constants.values() {
		if err := writeMember(&b, k, f); err != nil {
			return "", err
		}
	}
	for _, m := range i.methods.values() {
		code, err := m.renderIn(ScopeInterface, f)
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
