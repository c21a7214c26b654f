package driver

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/config"
)

// Supported local browsers.
const (
	BrowserChrome  = "chrome"
	BrowserEdge    = "edge"
	BrowserFirefox = "firefox"
)

const edgeCapabilitiesKey = "ms:edgeOptions"

// Config is the configuration the factory reads when opening a session.
type Config interface {
	DriverEnvironment() (string, error)
	BrowserName() (string, error)
	RemoteURL() (string, error)
	Property(key string) *config.Property
}

// Service is a running local driver process.
type Service interface {
	Stop() error
}

// RemoteFunc connects to a WebDriver endpoint.
type RemoteFunc func(caps selenium.Capabilities, urlPrefix string) (selenium.WebDriver, error)

// ServiceFunc starts the local driver binary at path for browser on port.
type ServiceFunc func(browser, path string, port int) (Service, error)

// Options are the session settings derived from configuration. Zero fields
// are filled from defaults.
type Options struct {
	Port         int
	PageLoad     time.Duration
	ImplicitWait time.Duration
}

var defaultOptions = Options{
	Port:     9515,
	PageLoad: 30 * time.Second,
}

var defaultDriverPaths = map[string]struct {
	key  string
	path string
}{
	BrowserChrome:  {key: config.KeyChromeDriverPath, path: "chromedriver"},
	BrowserEdge:    {key: config.KeyEdgeDriverPath, path: "msedgedriver"},
	BrowserFirefox: {key: config.KeyGeckoDriverPath, path: "geckodriver"},
}

// Factory opens and tracks a single WebDriver session.
type Factory struct {
	cfg          Config
	logger       *zap.Logger
	remote       RemoteFunc
	startService ServiceFunc
	output       io.Writer

	mu      sync.Mutex
	wd      selenium.WebDriver
	service Service
}

// Option configures a Factory.
type Option func(*Factory)

// WithRemote overrides how WebDriver endpoints are dialed (primarily for tests).
func WithRemote(fn RemoteFunc) Option {
	return func(f *Factory) {
		f.remote = fn
	}
}

// WithService overrides how local driver processes are started (primarily for tests).
func WithService(fn ServiceFunc) Option {
	return func(f *Factory) {
		f.startService = fn
	}
}

// WithServiceOutput forwards local driver output to w.
func WithServiceOutput(w io.Writer) Option {
	return func(f *Factory) {
		f.output = w
	}
}

// NewFactory constructs a Factory reading cfg.
func NewFactory(cfg Config, logger *zap.Logger, opts ...Option) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Factory{
		cfg:    cfg,
		logger: logger,
		remote: selenium.NewRemote,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.startService == nil {
		f.startService = f.defaultService
	}
	return f
}

// Open sets up capabilities for the configured environment and builds a
// session, reusing the open one if any.
func (f *Factory) Open() (selenium.WebDriver, error) {
	env, err := f.cfg.DriverEnvironment()
	if err != nil {
		return nil, err
	}
	caps, err := f.Setup(env)
	if err != nil {
		return nil, err
	}
	return f.Build(env, caps)
}

// Setup returns the capabilities for env.
func (f *Factory) Setup(env string) (selenium.Capabilities, error) {
	switch env {
	case config.DriverLocal:
		return f.setupLocal()
	case config.DriverRemote:
		return f.setupRemote(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}
}

func (f *Factory) setupLocal() (selenium.Capabilities, error) {
	browser, err := f.browser()
	if err != nil {
		return nil, err
	}
	headless := f.cfg.Property(config.KeyDriverHeadless).Bool()

	caps := selenium.Capabilities{"browserName": browser}
	switch browser {
	case BrowserChrome:
		opts := chrome.Capabilities{W3C: true}
		if headless {
			opts.Args = append(opts.Args, "--headless")
		}
		caps.AddChrome(opts)
	case BrowserEdge:
		caps["browserName"] = "MicrosoftEdge"
		opts := map[string]any{}
		if headless {
			opts["args"] = []string{"--headless"}
		}
		caps[edgeCapabilitiesKey] = opts
	case BrowserFirefox:
		var opts firefox.Capabilities
		if headless {
			opts.Args = append(opts.Args, "-headless")
		}
		caps.AddFirefox(opts)
	default:
		return nil, fmt.Errorf("%w: provided browser '%s' is not supported", ErrUnsupportedBrowser, browser)
	}
	return caps, nil
}

func (f *Factory) setupRemote() selenium.Capabilities {
	caps := selenium.Capabilities{}
	if name := f.cfg.Property(config.KeyBrowserName).String(); name != "" {
		caps["browserName"] = strings.ToLower(name)
	}
	return caps
}

// Build opens a session for env with caps. When a session is already open it
// is returned unchanged.
func (f *Factory) Build(env string, caps selenium.Capabilities) (selenium.WebDriver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.wd != nil {
		return f.wd, nil
	}

	opts, err := f.options()
	if err != nil {
		return nil, err
	}

	var wd selenium.WebDriver
	switch env {
	case config.DriverLocal:
		wd, err = f.buildLocal(caps, opts)
	case config.DriverRemote:
		wd, err = f.buildRemote(caps)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
	}
	if err != nil {
		return nil, err
	}

	if err := applyTimeouts(wd, opts); err != nil {
		f.logger.Warn("failed to apply session timeouts", zap.Error(err))
		_ = wd.Quit()
		f.stopService()
		return nil, err
	}

	f.wd = wd
	f.logger.Info("webdriver session opened", zap.String("environment", env))
	return wd, nil
}

func (f *Factory) buildLocal(caps selenium.Capabilities, opts Options) (selenium.WebDriver, error) {
	browser, err := f.browser()
	if err != nil {
		return nil, err
	}
	driverPath, ok := defaultDriverPaths[browser]
	if !ok {
		return nil, fmt.Errorf("%w: provided browser '%s' is not supported", ErrUnsupportedBrowser, browser)
	}
	path := f.cfg.Property(driverPath.key).GetOr(driverPath.path)

	svc, err := f.startService(browser, path, opts.Port)
	if err != nil {
		return nil, fmt.Errorf("start %s driver: %w", browser, err)
	}

	prefix := fmt.Sprintf("http://localhost:%d/wd/hub", opts.Port)
	if browser == BrowserFirefox {
		prefix = fmt.Sprintf("http://localhost:%d", opts.Port)
	}

	wd, err := f.remote(caps, prefix)
	if err != nil {
		_ = svc.Stop()
		return nil, fmt.Errorf("connect to local %s driver: %w", browser, err)
	}
	f.service = svc
	return wd, nil
}

func (f *Factory) buildRemote(caps selenium.Capabilities) (selenium.WebDriver, error) {
	raw, err := f.cfg.RemoteURL()
	if err != nil {
		return nil, err
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRemoteURL, raw)
	}

	wd, err := f.remote(caps, raw)
	if err != nil {
		return nil, fmt.Errorf("connect to remote driver %s: %w", u.Host, err)
	}
	return wd, nil
}

// Session returns the open session, or nil.
func (f *Factory) Session() selenium.WebDriver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wd
}

// Destroy quits the open session and stops the local driver. It is a no-op
// when nothing is open.
func (f *Factory) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	if f.wd != nil {
		if err := f.wd.Quit(); err != nil {
			errs = append(errs, fmt.Errorf("quit session: %w", err))
		}
		f.wd = nil
	}
	if f.service != nil {
		if err := f.service.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop driver: %w", err))
		}
		f.service = nil
	}
	return errors.Join(errs...)
}

func (f *Factory) stopService() {
	if f.service != nil {
		_ = f.service.Stop()
		f.service = nil
	}
}

func (f *Factory) browser() (string, error) {
	name, err := f.cfg.BrowserName()
	if err != nil {
		return "", err
	}
	return strings.ToLower(name), nil
}

// options reads the session settings and fills the gaps from defaults.
func (f *Factory) options() (Options, error) {
	var opts Options

	if p := f.cfg.Property(config.KeyDriverPort); p.HasValue() {
		port, err := p.Int()
		if err != nil {
			return Options{}, err
		}
		opts.Port = port
	}

	pageLoad, err := f.seconds(config.KeyDriverPageLoad)
	if err != nil {
		return Options{}, err
	}
	opts.PageLoad = pageLoad

	implicit, err := f.seconds(config.KeyDriverImplicitWait)
	if err != nil {
		return Options{}, err
	}
	opts.ImplicitWait = implicit

	if err := mergo.Merge(&opts, defaultOptions); err != nil {
		return Options{}, fmt.Errorf("apply default driver options: %w", err)
	}
	return opts, nil
}

func (f *Factory) seconds(key string) (time.Duration, error) {
	p := f.cfg.Property(key)
	if !p.HasValue() {
		return 0, nil
	}
	n, err := p.Int()
	if err != nil {
		return 0, err
	}
	return time.Duration(n) * time.Second, nil
}

func (f *Factory) defaultService(browser, path string, port int) (Service, error) {
	var opts []selenium.ServiceOption
	if f.output != nil {
		opts = append(opts, selenium.Output(f.output))
	}

	var (
		svc *selenium.Service
		err error
	)
	if browser == BrowserFirefox {
		svc, err = selenium.NewGeckoDriverService(path, port, opts...)
	} else {
		svc, err = selenium.NewChromeDriverService(path, port, opts...)
	}
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func applyTimeouts(wd selenium.WebDriver, opts Options) error {
	if opts.PageLoad > 0 {
		if err := wd.SetPageLoadTimeout(opts.PageLoad); err != nil {
			return fmt.Errorf("set page load timeout: %w", err)
		}
	}
	if opts.ImplicitWait > 0 {
		if err := wd.SetImplicitWaitTimeout(opts.ImplicitWait); err != nil {
			return fmt.Errorf("set implicit wait timeout: %w", err)
		}
	}
	return nil
}
