// Package generator builds PHP source from manifests.
package generator

import (
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"phpgen/internal/config"
	"phpgen/internal/model"
	"phpgen/internal/php"
)

// Generator turns parsed manifests into php trees and renders them.
type Generator struct {
	config *config.Config
	log    *zap.SugaredLogger
}

// New creates a new Generator. A nil config uses the defaults, a nil logger
// discards all output.
func New(cfg *config.Config, log *zap.SugaredLogger) *Generator {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Generator{
		config: cfg,
		log:    log,
	}
}

// Generate renders the manifest with the configured format and writes it
// to w.
func (g *Generator) Generate(file *model.File, w io.Writer) error {
	tree, err := g.Build(file)
	if err != nil {
		return err
	}

	code, err := tree.RenderWith(&g.config.Format)
	if err != nil {
		return errors.Wrap(err, "rendering")
	}
	g.log.Debugw("rendered file", "manifest", file.Path, "bytes", len(code))

	if _, err := io.WriteString(w, code); err != nil {
		return errors.Wrap(err, "writing output")
	}
	return nil
}

// Build converts the manifest into a php tree. Classes and interfaces
// rejected by the configured type filters are left out.
func (g *Generator) Build(file *model.File) (*php.File, error) {
	out := php.NewFile()
	if file.DocBlock != nil {
		out.SetDocBlock(docBlock(file.DocBlock))
	}

	for _, ns := range file.Namespaces {
		n, err := g.namespace(ns)
		if err != nil {
			return nil, errors.Wrapf(err, "namespace %s", ns.Name)
		}
		out.AddNamespace(n)
	}

	classes, interfaces, err := g.types(file.Classes, file.Interfaces)
	if err != nil {
		return nil, err
	}
	out.SetClasses(classes...).SetInterfaces(interfaces...)

	g.log.Debugw("built file",
		"namespaces", len(out.Namespaces()),
		"classes", len(out.Classes()),
		"interfaces", len(out.Interfaces()))

	return out, nil
}

func (g *Generator) namespace(ns model.Namespace) (*php.Namespace, error) {
	n := php.NewNamespace(ns.Name).SetBraced(ns.Braced)
	for _, u := range ns.Uses {
		n.AddUse(php.NewUse(u.Name).SetAlias(u.Alias))
	}

	classes, interfaces, err := g.types(ns.Classes, ns.Interfaces)
	if err != nil {
		return nil, err
	}
	return n.SetClasses(classes...).SetInterfaces(interfaces...), nil
}

// types converts the classes and interfaces that pass the type filters.
func (g *Generator) types(classes []model.Class, interfaces []model.Interface) ([]*php.Class, []*php.Interface, error) {
	var outClasses []*php.Class
	for _, c := range classes {
		if !g.config.ShouldIncludeType(c.Name) {
			g.log.Debugw("skipping class", "name", c.Name)
			continue
		}
		cls, err := g.class(c)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "class %s", c.Name)
		}
		outClasses = append(outClasses, cls)
	}

	var outInterfaces []*php.Interface
	for _, in := range interfaces {
		if !g.config.ShouldIncludeType(in.Name) {
			g.log.Debugw("skipping interface", "name", in.Name)
			continue
		}
		i, err := g.iface(in)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "interface %s", in.Name)
		}
		outInterfaces = append(outInterfaces, i)
	}

	return outClasses, outInterfaces, nil
}

func (g *Generator) class(c model.Class) (*php.Class, error) {
	cls := php.NewClass(c.Name).
		SetParent(c.Extends).
		SetInterfaces(c.Implements...).
		SetAbstract(c.Abstract).
		SetFinal(c.Final)
	if c.DocBlock != nil {
		cls.SetDocBlock(docBlock(c.DocBlock))
	}

	for _, k := range c.Constants {
		constant, err := newConstant(k)
		if err != nil {
			return nil, err
		}
		cls.AddConstant(constant)
	}

	for _, p := range c.Properties {
		prop, err := newProperty(p)
		if err != nil {
			return nil, errors.Wrapf(err, "property $%s", p.Name)
		}
		cls.AddProperty(prop)
	}

	for _, m := range c.Methods {
		method, err := newMethod(m, php.ScopeClass)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", m.Name)
		}
		cls.AddMethod(method)
	}

	if c.Accessors || g.config.Options.Accessors {
		added := addAccessors(cls, c.Properties)
		g.log.Debugw("added accessors", "class", c.Name, "methods", added)
	}

	return cls, nil
}

func (g *Generator) iface(in model.Interface) (*php.Interface, error) {
	i := php.NewInterface(in.Name).SetParents(in.Extends...)
	if in.DocBlock != nil {
		i.SetDocBlock(docBlock(in.DocBlock))
	}

	for _, k := range in.Constants {
		constant, err := newConstant(k)
		if err != nil {
			return nil, err
		}
		i.AddConstant(constant)
	}

	for _, m := range in.Methods {
		method, err := newMethod(m, php.ScopeInterface)
		if err != nil {
			return nil, errors.Wrapf(err, "method %s", m.Name)
		}
		i.AddMethod(method)
	}

	return i, nil
}
