package config

// Property keys read by the harness.
const (
	KeyAppName           = "app.name"
	KeyAppEnv            = "app.env"
	KeyAppURL            = "app.url"
	KeyDriverEnvironment = "env.driver"
	KeyBrowserName       = "env.browser.name"
	KeyRemoteURL         = "env.remote.url"

	KeyDriverPort         = "driver.port"
	KeyDriverHeadless     = "driver.headless"
	KeyDriverWaitSeconds  = "driver.wait.seconds"
	KeyDriverImplicitWait = "driver.implicit.wait.seconds"
	KeyDriverPageLoad     = "driver.pageload.seconds"
	KeyChromeDriverPath   = "driver.chrome.path"
	KeyEdgeDriverPath     = "driver.edge.path"
	KeyGeckoDriverPath    = "driver.firefox.path"

	KeyActionsPerSecond = "harness.actions.per.second"

	KeyAPIPort           = "harness.api.port"
	KeyAPIRateLimit      = "harness.api.rate.limit"
	KeyAPIRateBurst      = "harness.api.rate.burst"
	KeyAPIRequestLogging = "harness.api.request.logging"
	KeyShutdownSeconds   = "harness.shutdown.seconds"
)

// Driver environments accepted by KeyDriverEnvironment.
const (
	DriverLocal  = "local"
	DriverRemote = "remote"
)
