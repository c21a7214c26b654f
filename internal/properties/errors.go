package properties

import "errors"

var (
	// ErrResourceMissing is returned when a required resource cannot be located or read.
	ErrResourceMissing = errors.New("property resource is missing")
	// ErrParse is returned when a resource exists but its content is malformed.
	ErrParse = errors.New("property resource is malformed")
)
