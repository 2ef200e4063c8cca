package php

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestNamespaceNonBraced(t *testing.T) {
	n := NewNamespace("\\com\\mohiva\\").
		AddUse(NewUse("a\\B")).
		AddUse(NewUse("c\\D").SetAlias("E")).
		AddClass(NewClass("Test")).
		AddInterface(NewInterface("ITest"))

	want := "namespace com\\mohiva;\n" +
		"\n" +
		"use a\\B;\n" +
		"use c\\D as E;\n" +
		"\n" +
		"class Test {}\n" +
		"\n" +
		"interface ITest {}\n"
	assert.Equal(t, want, render(t, n, lf))
	assert.Equal(t, "namespace a;\n", render(t, NewNamespace("a"), lf))
}

func TestNamespaceBraced(t *testing.T) {
	n := NewNamespace("com\\mohiva").SetBraced(true).
		AddUse(NewUse("a\\B")).
		AddClass(NewClass("Test"))

	assert.Equal(t, "namespace com\\mohiva {\n\n\tuse a\\B;\n\n\tclass Test {}\n}\n", render(t, n, lf))
	assert.Equal(t, "namespace a {}\n", render(t, NewNamespace("a").SetBraced(true), lf))
}

func TestNamespaceGlobal(t *testing.T) {
	n := NewNamespace("").SetBraced(true)
	assert.Equal(t, "namespace {}\n", render(t, n, lf))

	n.AddClass(NewClass("A"))
	assert.Equal(t, "namespace {\n\n\tclass A {}\n}\n", render(t, n, lf))
}

func TestNamespaceGlobalWithoutBraces(t *testing.T) {
	_, err := NewNamespace("\\").RenderWith(lf)
	assert.True(t, errors.Is(err, ErrGlobalNamespaceWithoutBraces))
	assert.True(t, errors.Is(err, ErrStructuralMismatch))
}

func TestNamespaceMemberErrors(t *testing.T) {
	n := NewNamespace("a").AddClass(NewClass("A").SetAbstract(true).SetFinal(true))

	_, err := n.RenderWith(lf)
	assert.True(t, errors.Is(err, ErrConstraintViolation))
	assert.Contains(t, err.Error(), "namespace a: class A")
}

func TestNamespaceCollections(t *testing.T) {
	u := NewUse("a")
	c := NewClass("C")
	i := NewInterface("I")
	n := NewNamespace("x").SetName("y").SetUses(u).SetClasses(c).SetInterfaces(i)

	assert.Equal(t, "y", n.Name())
	assert.False(t, n.IsBraced())
	assert.Equal(t, []*Use{u}, n.Uses())
	assert.Equal(t, []*Class{c}, n.Classes())
	assert.Equal(t, []*Interface{i}, n.Interfaces())

	n.RemoveUse(u).RemoveClass(c).RemoveInterface(i)
	assert.Empty(t, n.Uses())
	assert.Empty(t, n.Classes())
	assert.Empty(t, n.Interfaces())
}
