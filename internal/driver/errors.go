package driver

import "errors"

var (
	// ErrUnknownEnvironment is returned for a driver environment other than local or remote.
	ErrUnknownEnvironment = errors.New("unknown driver environment")
	// ErrUnsupportedBrowser is returned when no local driver exists for the configured browser.
	ErrUnsupportedBrowser = errors.New("unsupported browser")
	// ErrInvalidRemoteURL is returned when the remote WebDriver URL cannot be parsed.
	ErrInvalidRemoteURL = errors.New("invalid remote WebDriver URL")
)
