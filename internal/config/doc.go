// Package config owns the harness configuration. It resolves the bootstrap
// settings (environment variables and CLI flags), merges the property sources
// with precedence defaults < custom file < environment < CLI defines, keeps
// the result in a process-wide registry and exposes Property handles for
// validated, typed reads and writes of individual keys.
package config
