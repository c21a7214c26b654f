// Package driver creates WebDriver sessions for the harness. A local session
// starts chromedriver, msedgedriver or geckodriver and connects to it; a remote
// session connects to a Selenium grid. At most one session is open per Factory
// and it is reused until Destroy is called.
package driver
