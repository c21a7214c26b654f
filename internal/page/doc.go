// Package page provides the page-object base: named locators registered by
// each page, element actions and condition polling over a WebDriver session.
package page
