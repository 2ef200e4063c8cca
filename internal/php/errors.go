package php

import "github.com/cockroachdb/errors"

// Error categories. Every error returned by a render call is marked with
// exactly one of them, use errors.Is to test for a category.
var (
	// ErrConstraintViolation reports an illegal combination of modifiers,
	// such as an abstract final class.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrUnrecognizedEnum reports an out-of-range visibility, scope or
	// array output mode.
	ErrUnrecognizedEnum = errors.New("unrecognized enum value")

	// ErrStructuralMismatch reports an illegal composition of containers.
	ErrStructuralMismatch = errors.New("structural mismatch")

	// ErrValue reports a value that cannot be turned into a literal.
	ErrValue = errors.New("unsupported value")
)

var (
	ErrUnrecognizedVisibility  = errors.Mark(errors.New("unrecognized visibility"), ErrUnrecognizedEnum)
	ErrUnrecognizedScope       = errors.Mark(errors.New("unrecognized scope"), ErrUnrecognizedEnum)
	ErrUnrecognizedArrayOutput = errors.Mark(errors.New("unrecognized array output mode"), ErrUnrecognizedEnum)

	ErrGlobalNamespaceWithoutBraces = errors.Mark(
		errors.New("a global namespace definition can only be used with braces"), ErrStructuralMismatch)
	ErrMixedNamespaceAndTypes = errors.Mark(
		errors.New("namespaces cannot be mixed with classes or interfaces in one file"), ErrStructuralMismatch)
	ErrWrongNamespaceCombination = errors.Mark(
		errors.New("multiple namespaces in a file must use the same (preferably braced) syntax"), ErrStructuralMismatch)
)

func constraintf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrConstraintViolation)
}

func valuef(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrValue)
}
