// Package properties loads flat key/value property sources (bundled resources,
// optional override files, the process environment, command-line defines) and
// merges them under a precedence policy in which later sources win only with
// non-empty values. It has no knowledge of the process-wide registry.
package properties
