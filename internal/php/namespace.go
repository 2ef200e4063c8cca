package php

import (
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Namespace is a namespace declaration with its use statements, classes and
// interfaces. An empty name is the global namespace, which can only be
// written with braces.
type Namespace struct {
	identity
	name       string
	braced     bool
	uses       orderedSet[*Use]
	classes    orderedSet[*Class]
	interfaces orderedSet[*Interface]
}

// NewNamespace creates a namespace using the non-braced syntax.
func NewNamespace(name string) *Namespace {
	n := &Namespace{}
	return n.SetName(name)
}

// SetName sets the namespace name. Leading and trailing separators are
// removed.
func (n *Namespace) SetName(name string) *Namespace {
	n.name = strings.Trim(name, `\`)
	return n
}

// Name returns the namespace name.
func (n *Namespace) Name() string {
	return n.name
}

// SetBraced selects between "namespace X { ... }" and "namespace X;".
func (n *Namespace) SetBraced(braced bool) *Namespace {
	n.braced = braced
	return n
}

// IsBraced reports whether the braced syntax is used.
func (n *Namespace) IsBraced() bool {
	return n.braced
}

// SetUses replaces all use statements.
func (n *Namespace) SetUses(uses ...*Use) *Namespace {
	n.uses.reset()
	for _, u := range uses {
		n.AddUse(u)
	}
	return n
}

// Uses returns the use statements in insertion order.
func (n *Namespace) Uses() []*Use {
	return n.uses.values()
}

// AddUse adds a use statement.
func (n *Namespace) AddUse(u *Use) *Namespace {
	putNode(&n.uses, u)
	return n
}

// RemoveUse removes a use statement.
func (n *Namespace) RemoveUse(u *Use) *Namespace {
	removeNode(&n.uses, u)
	return n
}

// SetClasses replaces all classes.
func (n *Namespace) SetClasses(classes ...*Class) *Namespace {
	n.classes.reset()
	for _, c := range classes {
		n.AddClass(c)
	}
	return n
}

// Classes returns the classes in insertion order.
func (n *Namespace) Classes() []*Class {
	return n.classes.values()
}

// AddClass adds a class.
func (n *Namespace) AddClass(c *Class) *Namespace {
	putNode(&n.classes, c)
	return n
}

// RemoveClass removes a class.
func (n *Namespace) RemoveClass(c *Class) *Namespace {
	removeNode(&n.classes, c)
	return n
}

// SetInterfaces replaces all interfaces.
func (n *Namespace) SetInterfaces(interfaces ...*Interface) *Namespace {
	n.interfaces.reset()
	for _, i := range interfaces {
		n.AddInterface(i)
	}
	return n
}

// Interfaces returns the interfaces in insertion order.
func (n *Namespace) Interfaces() []*Interface {
	return n.interfaces.values()
}

// AddInterface adds an interface.
func (n *Namespace) AddInterface(i *Interface) *Namespace {
	putNode(&n.interfaces, i)
	return n
}

// RemoveInterface removes an interface.
func (n *Namespace) RemoveInterface(i *Interface) *Namespace {
	removeNode(&n.interfaces, i)
	return n
}

func (n *Namespace) Render() (string, error) { return n.RenderWith(nil) }
func (n *Namespace) String() string          { return stringify(n) }

func (n *Namespace) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	if n.name == "" && !n.braced {
		return "", ErrGlobalNamespaceWithoutBraces
	}

	body, err := n.body(f)
	if err != nil {
		return "", errors.Wrapf(err, "namespace %s", n.name)
	}

	if !n.braced {
		return "namespace " + n.name + ";" + f.Newline + body, nil
	}

	var b strings.Builder
	b.WriteString("namespace ")
	if n.name != "" {
		b.WriteString(n.name + " ")
	}
	b.WriteString("{")
	if body != "" {
		b.WriteString(f.Newline + Indent(body, 1, f))
	}
	b.WriteString("}" + f.Newline)

	return b.String(), nil
}

// body writes the use statements as one block led by a newline, then every
// class and interface led by a newline.
func (n *Namespace) body(f *config.Format) (string, error) {
	var b strings.Builder
	if n.uses.len() > 0 {
		b.WriteString(f.Newline)
		for _, u := range n.uses.values() {
			code, err := u.RenderWith(f)
			if err != nil {
				return "", err
			}
			b.WriteString(code)
		}
	}
	for _, c := range n.classes.values() {
		if err := writeMember(&b, c, f); err != nil {
			return "", err
		}
	}
	for _, i := range n.interfaces.values() {
		if err := writeMember(&b, i, f); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
