package page

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Locator identifies an element by strategy and value.
type Locator struct {
	By    string
	Value string
}

// CSS locates by CSS selector.
func CSS(selector string) Locator {
	return Locator{By: selenium.ByCSSSelector, Value: selector}
}

// ID locates by element id.
func ID(id string) Locator {
	return Locator{By: selenium.ByID, Value: id}
}

// XPath locates by XPath expression.
func XPath(expr string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expr}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}

// Locators maps element names to locators.
type Locators map[string]Locator
