package php

import (
	"strings"

	"phpgen/internal/config"
)

// Use is a use statement importing a class or namespace.
type Use struct {
	identity
	fqn   string
	alias string
}

// NewUse creates a use statement. Leading and trailing namespace separators
// are removed from fqn.
func NewUse(fqn string) *Use {
	u := &Use{}
	return u.SetFQN(fqn)
}

// SetFQN sets the fully qualified class or namespace name.
func (u *Use) SetFQN(fqn string) *Use {
	u.fqn = strings.Trim(fqn, `\`)
	return u
}

// FQN returns the fully qualified class or namespace name.
func (u *Use) FQN() string {
	return u.fqn
}

// SetAlias sets the alias; an empty alias imports under the original name.
func (u *Use) SetAlias(alias string) *Use {
	u.alias = alias
	return u
}

// Alias returns the alias.
func (u *Use) Alias() string {
	return u.alias
}

func (u *Use) Render() (string, error) { return u.RenderWith(nil) }
func (u *Use) String() string          { return stringify(u) }

func (u *Use) RenderWith(f *config.Format) (string, error) {
	f = resolve(f)
	code := "use " + u.fqn
	if u.alias != "" {
		code += " as " + u.alias
	}
	return code + ";" + f.Newline, nil
}
