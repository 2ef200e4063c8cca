package php

import (
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// File is the root of a tree. It holds either namespaces, or classes and
// interfaces in the global scope, never both.
type File struct {
	docBlock   *DocBlock
	namespaces orderedSet[*Namespace]
	classes    orderedSet[*Class]
	interfaces orderedSet[*Interface]
}

// NewFile creates an empty file.
func NewFile() *File {
	return &File{}
}

// SetDocBlock sets the file-level comment.
func (fl *File) SetDocBlock(d *DocBlock) *File {
	fl.docBlock = d
	return fl
}

// DocBlock returns the file-level comment.
func (fl *File) DocBlock() *DocBlock {
	return fl.docBlock
}

// SetNamespaces replaces all namespaces.
func (fl *File) SetNamespaces(namespaces ...*Namespace) *File {
	fl.namespaces.reset()
	for _, n := range namespaces {
		fl.AddNamespace(n)
	}
	return fl
}

// Namespaces returns the namespaces in insertion order.
func (fl *File) Namespaces() []*Namespace {
	return fl.namespaces.values()
}

// AddNamespace adds a namespace.
func (fl *File) AddNamespace(n *Namespace) *File {
	putNode(&fl.namespaces, n)
	return fl
}

// RemoveNamespace removes a namespace.
func (fl *File) RemoveNamespace(n *Namespace) *File {
	removeNode(&fl.namespaces, n)
	return fl
}

// SetClasses replaces all classes.
func (fl *File) SetClasses(classes ...*Class) *File {
	fl.classes.reset()
	for _, c := range classes {
		fl.AddClass(c)
	}
	return fl
}

// Classes returns the classes in insertion order.
func (fl *File) Classes() []*Class {
	return fl.classes.values()
}

// AddClass adds a class.
func (fl *File) AddClass(c *Class) *File {
	putNode(&fl.classes, c)
	return fl
}

// RemoveClass removes a class.
func (fl *File) RemoveClass(c *Class) *File {
	removeNode(&fl.classes, c)
	return fl
}

// SetInterfaces replaces all interfaces.
func (fl *File) SetInterfaces(interfaces ...*Interface) *File {
	fl.interfaces.reset()
	for _, i := range interfaces {
		fl.AddInterface(i)
	}
	return fl
}

// Interfaces returns the interfaces in insertion order.
func (fl *File) Interfaces() []*Interface {
	return fl.interfaces.values()
}

// AddInterface adds an interface.
func (fl *File) AddInterface(i *Interface) *File {
	putNode(&fl.interfaces, i)
	return fl
}

// RemoveInterface removes an interface.
func (fl *File) RemoveInterface(i *Interface) *File {
	removeNode(&fl.interfaces, i)
	return fl
}

func (fl *File) Render() (string, error) { return fl.RenderWith(nil) }
func (fl *File) String() string          { return stringify(fl) }

func (fl *File) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	if fl.namespaces.len() > 0 && (fl.classes.len() > 0 || fl.interfaces.len() > 0) {
		return "", errors.WithHint(ErrMixedNamespaceAndTypes,
			"add the classes and interfaces to one of the namespaces")
	}

	doc, err := renderDocBlock(fl.docBlock, f)
	if err != nil {
		return "", err
	}
	namespaces, err := fl.namespaceBlock(f)
	if err != nil {
		return "", err
	}
	classes, err := block(fl.classes.values(), f)
	if err != nil {
		return "", err
	}
	interfaces, err := block(fl.interfaces.values(), f)
	if err != nil {
		return "", err
	}

	return OpenTag + f.Newline + doc + namespaces + classes + interfaces, nil
}

func (fl *File) namespaceBlock(f *config.Format) (string, error) {
	if fl.namespaces.len() == 0 {
		return "", nil
	}

	var braced, nonBraced bool
	for _, n := range fl.namespaces.values() {
		if n.IsBraced() {
			braced = true
		} else {
			nonBraced = true
		}
	}
	if braced && nonBraced {
		return "", ErrWrongNamespaceCombination
	}

	var b strings.Builder
	if fl.docBlock == nil {
		b.WriteString(f.Newline)
	}
	for _, n := range fl.namespaces.values() {
		code, err := n.RenderWith(f)
		if err != nil {
			return "", err
		}
		b.WriteString(code + f.Newline)
	}
	return trimNewlines(b.String(), f) + f.Newline, nil
}

// block writes nodes separated by blank lines, led by a newline and ending
// in exactly one newline.
func block[T Node](nodes []T, f *config.Format) (string, error) {
	if len(nodes) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString(f.Newline)
	for _, n := range nodes {
		code, err := n.RenderWith(f)
		if err != nil {
			return "", err
		}
		b.WriteString(code + f.Newline)
	}
	return trimNewlines(b.String(), f) + f.Newline, nil
}
