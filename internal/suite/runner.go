package suite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tebeka/selenium"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/webui-harness/internal/config"
	"github.com/eugenenazirov/webui-harness/internal/page"
)

// Drivers opens and tears down the WebDriver session of a suite.
type Drivers interface {
	Open() (selenium.WebDriver, error)
	Destroy() error
}

// Config is the configuration read when a suite starts.
type Config interface {
	AppURL() *config.Property
	Property(key string) *config.Property
}

// Runner executes suites one after another.
type Runner struct {
	drivers Drivers
	cfg     Config
	logger  *zap.Logger
	limiter *rate.Limiter
	newID   func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLimiter paces cases with limiter instead of the configured rate.
func WithLimiter(limiter *rate.Limiter) RunnerOption {
	return func(r *Runner) {
		r.limiter = limiter
	}
}

// NewRunner constructs a Runner. Cases are paced at harness.actions.per.second
// when it is set to a positive integer, and run back to back otherwise.
func NewRunner(drivers Drivers, cfg Config, logger *zap.Logger, opts ...RunnerOption) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runner{
		drivers: drivers,
		cfg:     cfg,
		logger:  logger,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.limiter == nil {
		limiter, err := limiterFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		r.limiter = limiter
	}
	return r, nil
}

func limiterFromConfig(cfg Config) (*rate.Limiter, error) {
	p := cfg.Property(config.KeyActionsPerSecond)
	if !p.HasValue() {
		return rate.NewLimiter(rate.Inf, 1), nil
	}
	n, err := p.Int()
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 1), nil
	}
	return rate.NewLimiter(rate.Limit(n), 1), nil
}

// Run executes suites in order and reports every outcome. A failing case does
// not stop its suite. A cancelled ctx stops the run after the current case.
func (r *Runner) Run(ctx context.Context, suites ...Suite) *Report {
	report := &Report{RunID: r.newID(), Started: time.Now()}
	logger := r.logger.With(zap.String("run_id", report.RunID))
	logger.Info("run started", zap.Int("suites", len(suites)))

	for _, s := range suites {
		if err := ctx.Err(); err != nil {
			report.Suites = append(report.Suites, SuiteResult{Name: s.Name, Err: fmt.Errorf("not started: %w", err)})
			continue
		}
		report.Suites = append(report.Suites, r.runSuite(ctx, logger.With(zap.String("suite", s.Name)), s))
	}

	report.Duration = time.Since(report.Started)
	passed, failed := report.Counts()
	logger.Info("run finished",
		zap.Int("passed", passed),
		zap.Int("failed", failed),
		zap.Duration("duration", report.Duration),
	)
	return report
}

func (r *Runner) runSuite(ctx context.Context, logger *zap.Logger, s Suite) SuiteResult {
	result := SuiteResult{Name: s.Name}

	baseURL, err := r.cfg.AppURL().Expect()
	if err != nil {
		result.Err = err
		return result
	}
	pageOpts, err := r.pageOptions()
	if err != nil {
		result.Err = err
		return result
	}

	wd, err := r.drivers.Open()
	if err != nil {
		logger.Error("failed to open webdriver session", zap.Error(err))
		result.Err = fmt.Errorf("open session: %w", err)
		return result
	}

	sess := &Session{
		Driver:   wd,
		BaseURL:  baseURL,
		Assert:   NewSoftAssert(),
		Logger:   logger,
		pageOpts: pageOpts,
	}

	var errs []error
	for _, c := range s.Ordered() {
		if err := r.limiter.Wait(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stopped before %s: %w", c.Name, err))
			break
		}
		result.Cases = append(result.Cases, r.runCase(ctx, sess, c))
	}

	if err := r.drivers.Destroy(); err != nil {
		logger.Warn("failed to destroy webdriver session", zap.Error(err))
		errs = append(errs, fmt.Errorf("destroy session: %w", err))
	}
	if err := sess.Assert.Err(); err != nil {
		errs = append(errs, err)
	}
	result.Err = errors.Join(errs...)
	return result
}

func (r *Runner) runCase(ctx context.Context, sess *Session, c Case) (result CaseResult) {
	result = CaseResult{Name: c.Name, Priority: c.Priority}
	logger := sess.Logger.With(zap.String("case", c.Name))
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result.Err = fmt.Errorf("panic: %v", rec)
		}
		result.Duration = time.Since(start)
		if result.Err != nil {
			logger.Error("case failed", zap.Error(result.Err), zap.Duration("duration", result.Duration))
			return
		}
		logger.Info("case passed", zap.Duration("duration", result.Duration))
	}()

	if c.Run == nil {
		return result
	}
	caseSess := *sess
	caseSess.Logger = logger
	result.Err = c.Run(ctx, &caseSess)
	return result
}

func (r *Runner) pageOptions() ([]page.Option, error) {
	p := r.cfg.Property(config.KeyDriverWaitSeconds)
	if !p.HasValue() {
		return nil, nil
	}
	n, err := p.Int()
	if err != nil {
		return nil, err
	}
	return []page.Option{page.WithTimeout(time.Duration(n) * time.Second)}, nil
}
