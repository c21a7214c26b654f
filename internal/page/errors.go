package page

import "errors"

var (
	// ErrUnknownLocator indicates a page has no locator registered under the requested name.
	ErrUnknownLocator = errors.New("unknown locator")

	// ErrWaitTimeout indicates a condition did not hold before the wait expired.
	ErrWaitTimeout = errors.New("wait timed out")
)
