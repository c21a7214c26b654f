package page

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"
)

const scrollIntoView = "arguments[0].scrollIntoView(true)"

// Base carries the session and locators shared by every page object.
type Base struct {
	wd       selenium.WebDriver
	locators Locators
	timeout  time.Duration
	interval time.Duration
	logger   *zap.Logger
}

// Option configures a Base.
type Option func(*Base)

// WithTimeout sets the WaitFor timeout.
func WithTimeout(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// WithInterval sets the WaitFor polling interval.
func WithInterval(d time.Duration) Option {
	return func(b *Base) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithLogger sets the logger for element actions.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBase binds locators to wd. The locators are copied.
func NewBase(wd selenium.WebDriver, locators Locators, opts ...Option) *Base {
	b := &Base{
		wd:       wd,
		locators: maps.Clone(locators),
		timeout:  DefaultTimeout,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
	}
	if b.locators == nil {
		b.locators = Locators{}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Driver returns the underlying session.
func (b *Base) Driver() selenium.WebDriver {
	return b.wd
}

// Timeout returns the WaitFor timeout.
func (b *Base) Timeout() time.Duration {
	return b.timeout
}

// Locator returns the locator registered under name.
func (b *Base) Locator(name string) (Locator, error) {
	loc, ok := b.locators[name]
	if !ok {
		return Locator{}, fmt.Errorf("%w: unable to find locator %s", ErrUnknownLocator, name)
	}
	return loc, nil
}

// Element finds the element registered under name.
func (b *Base) Element(name string) (selenium.WebElement, error) {
	loc, err := b.Locator(name)
	if err != nil {
		return nil, err
	}
	return b.ElementBy(loc)
}

// ElementBy finds the element at loc.
func (b *Base) ElementBy(loc Locator) (selenium.WebElement, error) {
	el, err := b.wd.FindElement(loc.By, loc.Value)
	if err != nil {
		return nil, fmt.Errorf("find element %s: %w", loc, err)
	}
	return el, nil
}

// Click clicks the element registered under name.
func (b *Base) Click(name string) error {
	el, err := b.Element(name)
	if err != nil {
		return err
	}
	b.logger.Debug("click", zap.String("element", name))
	if err := el.Click(); err != nil {
		return fmt.Errorf("click %s: %w", name, err)
	}
	return nil
}

// ScrollTo scrolls the element registered under name into view.
func (b *Base) ScrollTo(name string) error {
	el, err := b.Element(name)
	if err != nil {
		return err
	}
	b.logger.Debug("scroll into view", zap.String("element", name))
	if _, err := b.wd.ExecuteScript(scrollIntoView, []any{el}); err != nil {
		return fmt.Errorf("scroll to %s: %w", name, err)
	}
	return nil
}

// Color returns the computed CSS color of the element registered under name.
func (b *Base) Color(name string) (string, error) {
	el, err := b.Element(name)
	if err != nil {
		return "", err
	}
	color, err := el.CSSProperty("color")
	if err != nil {
		return "", fmt.Errorf("read color of %s: %w", name, err)
	}
	return color, nil
}

// Navigate loads url in the session.
func (b *Base) Navigate(url string) error {
	b.logger.Debug("navigate", zap.String("url", url))
	if err := b.wd.Get(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// WaitFor polls cond with the page timeout.
func (b *Base) WaitFor(ctx context.Context, cond Condition) error {
	return Wait(ctx, b.wd, cond, b.timeout, b.interval)
}
