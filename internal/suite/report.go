package suite

import (
	"errors"
	"fmt"
	"time"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name     string
	Priority int
	Duration time.Duration
	Err      error
}

// Passed reports whether the case returned without error.
func (c CaseResult) Passed() bool { return c.Err == nil }

// SuiteResult is the outcome of one suite. Err carries session setup and
// teardown failures together with the suite's soft assertion failures.
type SuiteResult struct {
	Name  string
	Cases []CaseResult
	Err   error
}

// Failed reports whether anything in the suite failed.
func (s SuiteResult) Failed() bool {
	if s.Err != nil {
		return true
	}
	for _, c := range s.Cases {
		if !c.Passed() {
			return true
		}
	}
	return false
}

// Report is the outcome of a run.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Suites   []SuiteResult
}

// Failed reports whether any suite failed.
func (r *Report) Failed() bool {
	for _, s := range r.Suites {
		if s.Failed() {
			return true
		}
	}
	return false
}

// Err joins every failure of the run, prefixed with its suite and case.
func (r *Report) Err() error {
	var errs []error
	for _, s := range r.Suites {
		for _, c := range s.Cases {
			if c.Err != nil {
				errs = append(errs, fmt.Errorf("%s/%s: %w", s.Name, c.Name, c.Err))
			}
		}
		if s.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	return errors.Join(errs...)
}

// Counts returns the number of passed and failed cases.
func (r *Report) Counts() (passed, failed int) {
	for _, s := range r.Suites {
		for _, c := range s.Cases {
			if c.Passed() {
				passed++
			} else {
				failed++
			}
		}
	}
	return passed, failed
}
