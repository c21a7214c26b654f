package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"
)

const (
	// DefaultTimeout bounds WaitFor when no timeout is configured.
	DefaultTimeout = 15 * time.Second

	// DefaultInterval is the pause between condition checks.
	DefaultInterval = 250 * time.Millisecond
)

// Condition reports whether the session reached the awaited state. A returned
// error stops the wait.
type Condition = selenium.Condition

// Wait polls cond every interval until it holds, timeout elapses or ctx ends.
// Non-positive durations fall back to the defaults. Polling is delegated to the
// session; ctx is checked before every evaluation of cond.
func Wait(ctx context.Context, wd selenium.WebDriver, cond Condition, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	var stopped, condErr error
	err := wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		if stopped = ctx.Err(); stopped != nil {
			return false, stopped
		}
		ok, err := cond(wd)
		condErr = err
		return ok, err
	}, timeout, interval)

	switch {
	case err == nil:
		return nil
	case stopped != nil:
		return fmt.Errorf("%w after %s: %w", ErrWaitTimeout, timeout, stopped)
	case condErr != nil:
		return condErr
	default:
		return fmt.Errorf("%w after %s: %w", ErrWaitTimeout, timeout, err)
	}
}

// URLContains holds once the current URL contains fragment.
func URLContains(fragment string) Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		current, err := wd.CurrentURL()
		if err != nil {
			return false, fmt.Errorf("read current url: %w", err)
		}
		return strings.Contains(current, fragment), nil
	}
}

// Clickable holds once the element at loc is present, displayed and enabled.
// A missing element is not an error: the page may still be loading.
func Clickable(loc Locator) Condition {
	return func(wd selenium.WebDriver) (bool, error) {
		el, err := wd.FindElement(loc.By, loc.Value)
		if err != nil {
			return false, nil
		}
		displayed, err := el.IsDisplayed()
		if err != nil || !displayed {
			return false, nil
		}
		enabled, err := el.IsEnabled()
		if err != nil {
			return false, nil
		}
		return enabled, nil
	}
}
