package application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/api"
	"github.com/eugenenazirov/webui-harness/internal/cases"
	"github.com/eugenenazirov/webui-harness/internal/config"
	"github.com/eugenenazirov/webui-harness/internal/driver"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

// App encapsulates the harness dependencies and the inspection server.
type App struct {
	registry  *config.Registry
	drivers   *driver.Factory
	runner    *suite.Runner
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	serverCfg ServerConfig
	server    *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// Option configures App construction.
type Option func(*options)

type options struct {
	driverOpts []driver.Option
	runnerOpts []suite.RunnerOption
}

// WithDriverOptions passes opts to the WebDriver factory.
func WithDriverOptions(opts ...driver.Option) Option {
	return func(o *options) {
		o.driverOpts = append(o.driverOpts, opts...)
	}
}

// WithRunnerOptions passes opts to the suite runner.
func WithRunnerOptions(opts ...suite.RunnerOption) Option {
	return func(o *options) {
		o.runnerOpts = append(o.runnerOpts, opts...)
	}
}

// New initializes the harness from an already bootstrapped registry.
func New(reg *config.Registry, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	drivers := driver.NewFactory(reg, logger.Named("driver"), o.driverOpts...)
	runner, err := suite.NewRunner(drivers, reg, logger.Named("suite"), o.runnerOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build suite runner: %w", err)
	}

	serverCfg, err := LoadServerConfig(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to read server configuration: %w", err)
	}

	handler := api.NewHandler(reg, api.WithSuites(cases.All()...))
	router := api.NewRouter(handler, logger.Named("api"),
		api.WithLogging(serverCfg.RequestLogging),
		api.WithRateLimit(float64(serverCfg.RateLimit), serverCfg.RateBurst),
	)

	return &App{
		registry:  reg,
		drivers:   drivers,
		runner:    runner,
		handler:   handler,
		router:    router,
		logger:    logger,
		serverCfg: serverCfg,
		server:    NewServer(serverCfg, router),
	}, nil
}

// RunSuites runs the named suites, or every suite when none is named.
func (a *App) RunSuites(ctx context.Context, names ...string) (*suite.Report, error) {
	suites, err := cases.Lookup(names...)
	if err != nil {
		return nil, err
	}
	return a.runner.Run(ctx, suites...), nil
}

// Start binds the server address and serves in a goroutine. Bind failures are
// returned; later serve failures are fatal.
func (a *App) Start() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.server.Addr, err)
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	go func() {
		a.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Addr returns the bound address once Start succeeded, or the configured one.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener != nil {
		return a.listener.Addr().String()
	}
	return a.server.Addr
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Router returns the API handler.
func (a *App) Router() http.Handler {
	return a.router
}

// ServerConfig returns the settings the server was built with.
func (a *App) ServerConfig() ServerConfig {
	return a.serverCfg
}

// Close tears down any WebDriver session left open.
func (a *App) Close() error {
	return a.drivers.Destroy()
}
