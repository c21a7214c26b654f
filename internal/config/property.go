package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/properties"
	"github.com/eugenenazirov/webui-harness/internal/storage"
)

// Property is a reusable reference to one key within a store. It never caches:
// every accessor reads the store again, so later writes are always visible.
type Property struct {
	key         string
	store       storage.Store
	description string
	logger      *zap.Logger
}

// PropertyOption configures a Property.
type PropertyOption func(*Property)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *zap.Logger) PropertyOption {
	return func(p *Property) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProperty references key within store. A nil store is replaced with an
// empty mapping.
func NewProperty(key string, store storage.Store, opts ...PropertyOption) *Property {
	p := &Property{
		key:    key,
		store:  normalizeStore(store),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func normalizeStore(store storage.Store) storage.Store {
	if store == nil {
		return properties.Properties{}
	}
	if props, ok := store.(properties.Properties); ok && props == nil {
		return properties.Properties{}
	}
	return store
}

// Key returns the referenced key.
func (p *Property) Key() string {
	return p.key
}

// Describe attaches a human-readable description.
func (p *Property) Describe(description string) *Property {
	p.description = description
	return p
}

// Description returns the attached description, if any.
func (p *Property) Description() string {
	return p.description
}

// Get returns the current value and whether the key is present.
func (p *Property) Get() (string, bool) {
	return p.store.Lookup(p.key)
}

// GetOr returns the current value, or def when the key is absent or empty.
func (p *Property) GetOr(def string) string {
	v, ok := p.store.Lookup(p.key)
	if !ok || v == "" {
		p.logger.Debug("no value present for property, using default",
			zap.String("property", p.key),
			zap.String("default", def),
		)
		return def
	}
	return v
}

// Set writes value through to the store.
func (p *Property) Set(value string) *Property {
	p.store.Set(p.key, value)
	return p
}

// ExpectNonNull returns the value, failing only when the key is absent.
func (p *Property) ExpectNonNull() (string, error) {
	v, ok := p.store.Lookup(p.key)
	if !ok {
		return "", fmt.Errorf("%w: expected the '%s' property to be present and not null", ErrMissingProperty, p.key)
	}
	return v, nil
}

// Expect returns the value, failing when the key is absent or empty.
func (p *Property) Expect() (string, error) {
	v, ok := p.store.Lookup(p.key)
	if !ok {
		return "", fmt.Errorf("%w: expected the '%s' property to be present and not null", ErrMissingProperty, p.key)
	}
	if v == "" {
		return "", fmt.Errorf("%w: expected the '%s' property to be present and not empty", ErrMissingProperty, p.key)
	}
	return v, nil
}

// ExpectOneOf returns the value when it is one of allowed.
func (p *Property) ExpectOneOf(allowed ...string) (string, error) {
	joined := strings.Join(allowed, ", ")

	v, err := p.Expect()
	if err != nil {
		return "", fmt.Errorf("%w: the prop '%s' is not present, the property must be one of these values: %s",
			ErrMissingProperty, p.key, joined)
	}
	if !slices.Contains(allowed, v) {
		return "", fmt.Errorf("%w: the prop '%s' has value '%s' which is not one of the allowed values: %s",
			ErrInvalidValue, p.key, v, joined)
	}
	return v, nil
}

// HasValue reports whether the key is present with a non-empty value.
func (p *Property) HasValue() bool {
	v, ok := p.store.Lookup(p.key)
	return ok && v != ""
}

// IsEmpty reports whether the key is present with an empty value.
func (p *Property) IsEmpty() bool {
	v, ok := p.store.Lookup(p.key)
	return ok && v == ""
}

// IsNull reports whether the key is absent.
func (p *Property) IsNull() bool {
	_, ok := p.store.Lookup(p.key)
	return !ok
}

// Int parses the required value as a base-10 integer.
func (p *Property) Int() (int, error) {
	v, err := p.Expect()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: the prop '%s' has value '%s' which is not an integer: %w", ErrFormat, p.key, v, err)
	}
	return n, nil
}

// Bool reports whether the value equals "true", ignoring case. Absent and
// empty values are false.
func (p *Property) Bool() bool {
	v, _ := p.store.Lookup(p.key)
	return strings.EqualFold(v, "true")
}

// Is reports whether the required value equals any of anyOf.
func (p *Property) Is(anyOf ...string) (bool, error) {
	v, err := p.Expect()
	if err != nil {
		return false, err
	}
	return slices.Contains(anyOf, v), nil
}

// IsNot reports whether the required value differs from all of anyOf.
func (p *Property) IsNot(anyOf ...string) (bool, error) {
	is, err := p.Is(anyOf...)
	if err != nil {
		return false, err
	}
	return !is, nil
}

// Contains reports whether the value, which must be present, contains sub.
func (p *Property) Contains(sub string) (bool, error) {
	v, err := p.ExpectNonNull()
	if err != nil {
		return false, err
	}
	return strings.Contains(v, sub), nil
}

// SwitchTo retargets this handle to key and returns it.
func (p *Property) SwitchTo(key string) *Property {
	p.key = key
	return p
}

// SwitchToStore rebinds this handle to store and returns it. The previous
// store is left untouched.
func (p *Property) SwitchToStore(store storage.Store) *Property {
	p.store = normalizeStore(store)
	return p
}

// Using returns a new handle for key over the same store. The receiver is not modified.
func (p *Property) Using(key string) *Property {
	return NewProperty(key, p.store, WithLogger(p.logger))
}

// UsingStore returns a new handle for the same key over store. The receiver is not modified.
func (p *Property) UsingStore(store storage.Store) *Property {
	return NewProperty(p.key, store, WithLogger(p.logger))
}

// String returns the current value, or an empty string when absent.
func (p *Property) String() string {
	v, _ := p.store.Lookup(p.key)
	return v
}
