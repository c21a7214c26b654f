package config

import "errors"

var (
	// ErrMissingProperty is returned when a required property is absent, or
	// absent or empty depending on the accessor.
	ErrMissingProperty = errors.New("missing property")
	// ErrInvalidValue is returned when a property holds a value outside the allowed set.
	ErrInvalidValue = errors.New("invalid property value")
	// ErrFormat is returned when a property cannot be converted to the requested type.
	ErrFormat = errors.New("malformed property value")
	// ErrInvalidSettings is returned when the bootstrap settings are unusable.
	ErrInvalidSettings = errors.New("invalid harness settings")
)
