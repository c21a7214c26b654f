package suite

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// ErrAssertion marks a recorded soft assertion failure.
var ErrAssertion = errors.New("assertion failed")

// SoftAssert collects assertion failures without stopping the caller.
type SoftAssert struct {
	mu       sync.Mutex
	failures []error
}

// NewSoftAssert returns an empty SoftAssert.
func NewSoftAssert() *SoftAssert {
	return &SoftAssert{}
}

// Equal records a failure unless want and got are equal.
func (a *SoftAssert) Equal(want, got any, msg string) bool {
	if cmp.Equal(want, got) {
		return true
	}
	a.record(fmt.Errorf("%w: %s: mismatch (-want +got):\n%s", ErrAssertion, msg, cmp.Diff(want, got)))
	return false
}

// True records a failure unless cond holds.
func (a *SoftAssert) True(cond bool, msg string) bool {
	if cond {
		return true
	}
	a.record(fmt.Errorf("%w: %s", ErrAssertion, msg))
	return false
}

// NoError records err, if any.
func (a *SoftAssert) NoError(err error, msg string) bool {
	if err == nil {
		return true
	}
	a.record(fmt.Errorf("%w: %s: %w", ErrAssertion, msg, err))
	return false
}

// Failures returns the recorded failures in order.
func (a *SoftAssert) Failures() []error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]error(nil), a.failures...)
}

// Err joins every recorded failure. It is nil when none were recorded.
func (a *SoftAssert) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return errors.Join(a.failures...)
}

func (a *SoftAssert) record(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures = append(a.failures, err)
}
