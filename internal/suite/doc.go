// Package suite runs browser test suites. Each suite gets its own WebDriver
// session; cases run in priority order and record soft assertion failures
// that are reported once the session is torn down.
package suite
