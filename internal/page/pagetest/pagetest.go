// Package pagetest provides an in-memory WebDriver session for exercising
// page objects and suites without a browser.
package pagetest

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tebeka/selenium"

	"github.com/eugenenazirov/webui-harness/internal/page"
)

// ErrNoSuchElement is returned by FindElement for unregistered locators.
var ErrNoSuchElement = errors.New("no such element")

// Script is one recorded ExecuteScript call.
type Script struct {
	Source string
	Args   []any
}

// Driver is a fake selenium.WebDriver. Methods it does not implement panic.
type Driver struct {
	selenium.WebDriver

	mu       sync.Mutex
	url      string
	elements map[page.Locator]*Element
	visited  []string
	scripts  []Script
	quits    int

	// GetErr, when set, is returned by Get.
	GetErr error
}

// NewDriver returns a session positioned at about:blank.
func NewDriver() *Driver {
	return &Driver{
		url:      "about:blank",
		elements: map[page.Locator]*Element{},
	}
}

// Add registers el under loc and returns it.
func (d *Driver) Add(loc page.Locator, el *Element) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	el.driver = d
	d.elements[loc] = el
	return el
}

// SetURL moves the session to url without recording a visit.
func (d *Driver) SetURL(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.url = url
}

// Visited returns the URLs passed to Get, in order.
func (d *Driver) Visited() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.visited...)
}

// Scripts returns the recorded ExecuteScript calls.
func (d *Driver) Scripts() []Script {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Script(nil), d.scripts...)
}

// Quits reports how many times Quit was called.
func (d *Driver) Quits() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.quits
}

func (d *Driver) Get(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.GetErr != nil {
		return d.GetErr
	}
	d.url = url
	d.visited = append(d.visited, url)
	return nil
}

func (d *Driver) CurrentURL() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.url, nil
}

func (d *Driver) FindElement(by, value string) (selenium.WebElement, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el, ok := d.elements[page.Locator{By: by, Value: value}]
	if !ok {
		return nil, fmt.Errorf("%w: %s=%s", ErrNoSuchElement, by, value)
	}
	return el, nil
}

func (d *Driver) ExecuteScript(script string, args []any) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripts = append(d.scripts, Script{Source: script, Args: args})
	return nil, nil
}

// WaitWithTimeoutAndInterval evaluates condition until it holds, fails or
// timeout elapses. The lock is not held while condition runs.
func (d *Driver) WaitWithTimeoutAndInterval(condition selenium.Condition, timeout, interval time.Duration) error {
	start := time.Now()
	for {
		done, err := condition(d)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if elapsed := time.Since(start); elapsed > timeout {
			return fmt.Errorf("timeout after %v", elapsed)
		}
		time.Sleep(interval)
	}
}

func (d *Driver) WaitWithTimeout(condition selenium.Condition, timeout time.Duration) error {
	return d.WaitWithTimeoutAndInterval(condition, timeout, page.DefaultInterval)
}

func (d *Driver) Wait(condition selenium.Condition) error {
	return d.WaitWithTimeoutAndInterval(condition, page.DefaultTimeout, page.DefaultInterval)
}

func (d *Driver) SetPageLoadTimeout(time.Duration) error { return nil }

func (d *Driver) SetImplicitWaitTimeout(time.Duration) error { return nil }

func (d *Driver) Quit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.quits++
	return nil
}

// Element is a fake selenium.WebElement. Clicking it follows Href when set.
type Element struct {
	selenium.WebElement

	driver *Driver

	Href     string
	CSS      map[string]string
	Hidden   bool
	Disabled bool
	ClickErr error

	// OnClick runs after a successful click.
	OnClick func()

	mu     sync.Mutex
	clicks int
}

// Clicks reports how many times the element was clicked.
func (e *Element) Clicks() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clicks
}

func (e *Element) Click() error {
	if e.ClickErr != nil {
		return e.ClickErr
	}
	e.mu.Lock()
	e.clicks++
	e.mu.Unlock()

	if e.Href != "" && e.driver != nil {
		e.driver.SetURL(e.Href)
	}
	if e.OnClick != nil {
		e.OnClick()
	}
	return nil
}

// SetCSS sets the computed value of a CSS property.
func (e *Element) SetCSS(name, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.CSS == nil {
		e.CSS = map[string]string{}
	}
	e.CSS[name] = value
}

func (e *Element) CSSProperty(name string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.CSS[name], nil
}

func (e *Element) IsDisplayed() (bool, error) {
	return !e.Hidden, nil
}

func (e *Element) IsEnabled() (bool, error) {
	return !e.Disabled, nil
}
