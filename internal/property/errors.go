package property

import "errors"

var (
	// ErrUnknownResidue is returned when a residue code has no entry in a property's table.
	ErrUnknownResidue = errors.New("property: unknown residue")

	// ErrUnsupportedOperation is returned when an accessor is called on the wrong variant,
	// e.g. asking a OneHot property for a single scalar value.
	ErrUnsupportedOperation = errors.New("property: operation not supported by variant")

	// ErrUnknownProperty is returned by registry lookups for a name that isn't registered.
	ErrUnknownProperty = errors.New("property: unknown property")

	// ErrInvalidTable is returned when a property is constructed from an incomplete
	// or non-finite value table.
	ErrInvalidTable = errors.New("property: invalid value table")
)
