// Package pages holds the page objects of the site under test. Each page
// registers its named locators explicitly and knows its own URL.
package pages
