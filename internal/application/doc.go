// Package application wires the property registry, the WebDriver factory, the
// suite runner and the inspection API into one App, leaving the main package to
// CLI parsing and orchestration.
package application
