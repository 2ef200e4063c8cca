package php

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"phpgen/internal/config"
)

// Scope decides whether a method is written as class or interface member.
type Scope int

const (
	ScopeClass Scope = iota
	ScopeInterface
)

func (s Scope) String() string {
	switch s {
	case ScopeClass:
		return "class"
	case ScopeInterface:
		return "interface"
	}
	return "scope(" + strconv.Itoa(int(s)) + ")"
}

// Method is a class or interface method.
type Method struct {
	identity
	name       string
	visibility Visibility
	scope      Scope
	isAbstract bool
	isFinal    bool
	isStatic   bool
	parameters orderedSet[*Parameter]
	body       *RawCode
	docBlock   *DocBlock
}

// NewMethod creates a public, non-static class method.
func NewMethod(name string) *Method {
	return &Method{name: name, visibility: VisibilityPublic, scope: ScopeClass}
}

// SetName sets the method name.
func (m *Method) SetName(name string) *Method {
	m.name = name
	return m
}

// Name returns the method name.
func (m *Method) Name() string {
	return m.name
}

// SetVisibility sets the visibility.
func (m *Method) SetVisibility(v Visibility) *Method {
	m.visibility = v
	return m
}

// Visibility returns the visibility.
func (m *Method) Visibility() Visibility {
	return m.visibility
}

// SetScope sets the scope used when the method is rendered on its own.
// Classes and interfaces render their methods in their own scope.
func (m *Method) SetScope(s Scope) *Method {
	m.scope = s
	return m
}

// Scope returns the scope.
func (m *Method) Scope() Scope {
	return m.scope
}

// SetAbstract defines if the method is abstract.
func (m *Method) SetAbstract(isAbstract bool) *Method {
	m.isAbstract = isAbstract
	return m
}

// IsAbstract reports whether the method is abstract.
func (m *Method) IsAbstract() bool {
	return m.isAbstract
}

// SetFinal defines if the method is final.
func (m *Method) SetFinal(isFinal bool) *Method {
	m.isFinal = isFinal
	return m
}

// IsFinal reports whether the method is final.
func (m *Method) IsFinal() bool {
	return m.isFinal
}

// SetStatic defines if the method is static.
func (m *Method) SetStatic(isStatic bool) *Method {
	m.isStatic = isStatic
	return m
}

// IsStatic reports whether the method is static.
func (m *Method) IsStatic() bool {
	return m.isStatic
}

// SetParameters replaces all parameters.
func (m *Method) SetParameters(params ...*Parameter) *Method {
	m.parameters.reset()
	for _, p := range params {
		m.AddParameter(p)
	}
	return m
}

// Parameters returns the parameters in declaration order.
func (m *Method) Parameters() []*Parameter {
	return m.parameters.values()
}

// AddParameter appends a parameter. Adding the same parameter twice keeps
// its first position.
func (m *Method) AddParameter(p *Parameter) *Method {
	putNode(&m.parameters, p)
	return m
}

// RemoveParameter removes a parameter.
func (m *Method) RemoveParameter(p *Parameter) *Method {
	removeNode(&m.parameters, p)
	return m
}

// SetBody sets the method body.
func (m *Method) SetBody(body *RawCode) *Method {
	m.body = body
	return m
}

// Body returns the method body.
func (m *Method) Body() *RawCode {
	return m.body
}

// SetDocBlock sets the comment written above the method.
func (m *Method) SetDocBlock(d *DocBlock) *Method {
	m.docBlock = d
	return m
}

// DocBlock returns the comment written above the method.
func (m *Method) DocBlock() *DocBlock {
	return m.docBlock
}

func (m *Method) Render() (string, error) { return m.RenderWith(nil) }
func (m *Method) String() string          { return stringify(m) }

func (m *Method) RenderWith(f *config.Format) (string, error) {
	return m.renderIn(m.scope, resolve(f))
}

func (m *Method) renderIn(scope Scope, f *config.Format) (string, error) {
	var (
		code string
		err  error
	)
	switch scope {
	case ScopeClass:
		code, err = m.renderClassMethod(f)
	case ScopeInterface:
		code, err = m.renderInterfaceMethod(f)
	default:
		err = errors.Wrapf(ErrUnrecognizedScope, "no scope with the value %d defined", int(scope))
	}
	if err != nil {
		return "", errors.Wrapf(err, "method %s", m.name)
	}
	return code, nil
}

func (m *Method) hasBody() bool {
	return m.body != nil && !m.body.IsEmpty()
}

func (m *Method) renderClassMethod(f *config.Format) (string, error) {
	switch {
	case m.isAbstract && m.isFinal:
		return "", constraintf("cannot use final keyword for abstract method")
	case m.isAbstract && m.isStatic:
		return "", constraintf("cannot use static keyword for abstract method")
	case m.isAbstract && m.hasBody():
		return "", constraintf("an abstract method cannot contain a body")
	}

	head, err := m.head(f)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if m.isAbstract {
		b.WriteString("abstract ")
	}
	if m.isFinal {
		b.WriteString("final ")
	}
	b.WriteString(head)

	if m.isAbstract {
		b.WriteString(";" + f.Newline)
		return m.withDocBlock(b.String(), f)
	}

	b.WriteString(" {")
	if m.hasBody() {
		body, err := m.body.RenderWith(f)
		if err != nil {
			return "", err
		}
		b.WriteString(f.Newline)
		b.WriteString(Indent(f.Newline+trimNewlines(body, f)+f.Newline, 1, f))
	}
	b.WriteString("}" + f.Newline)

	return m.withDocBlock(b.String(), f)
}

func (m *Method) renderInterfaceMethod(f *config.Format) (string, error) {
	switch {
	case m.isAbstract:
		return "", constraintf("cannot use abstract keyword for interface method")
	case m.isFinal:
		return "", constraintf("cannot use final keyword for interface method")
	case m.hasBody():
		return "", constraintf("an interface method cannot contain a body")
	}

	head, err := m.head(f)
	if err != nil {
		return "", err
	}
	return m.withDocBlock(head+";"+f.Newline, f)
}

// head writes "<visibility> [static ]function <name>(<params>)".
func (m *Method) head(f *config.Format) (string, error) {
	visibility, err := visibilityKeyword(m.visibility)
	if err != nil {
		return "", err
	}

	params := make([]string, 0, m.parameters.len())
	for _, p := range m.parameters.values() {
		code, err := p.RenderWith(f)
		if err != nil {
			return "", err
		}
		params = append(params, code)
	}

	code := visibility + " "
	if m.isStatic {
		code += "static "
	}
	return code + "function " + m.name + "(" + strings.Join(params, ", ") + ")", nil
}

func (m *Method) withDocBlock(code string, f *config.Format) (string, error) {
	doc, err := renderDocBlock(m.docBlock, f)
	if err != nil {
		return "", err
	}
	return doc + code, nil
}
