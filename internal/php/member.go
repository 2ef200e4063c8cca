package php

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Visibility of a class member.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityProtected
	VisibilityPrivate
)

func (v Visibility) String() string {
	if kw, err := visibilityKeyword(v); err == nil {
		return kw
	}
	return "visibility(" + strconv.Itoa(int(v)) + ")"
}

// ParseVisibility resolves a visibility keyword. The empty string yields def.
func ParseVisibility(s string, def Visibility) (Visibility, error) {
	switch strings.ToLower(s) {
	case "":
		return def, nil
	case "public":
		return VisibilityPublic, nil
	case "protected":
		return VisibilityProtected, nil
	case "private":
		return VisibilityPrivate, nil
	}
	return def, errors.Wrapf(ErrUnrecognizedVisibility, "%q", s)
}

// visibilityKeyword is shared by methods and properties.
func visibilityKeyword(v Visibility) (string, error) {
	switch v {
	case VisibilityPublic:
		return "public", nil
	case VisibilityProtected:
		return "protected", nil
	case VisibilityPrivate:
		return "private", nil
	}
	return "", errors.Wrapf(ErrUnrecognizedVisibility, "no visibility with the value %d defined", int(v))
}
