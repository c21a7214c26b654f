package suite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"go.uber.org/zap/zaptest"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/webui-harness/internal/config"
	"github.com/eugenenazirov/webui-harness/internal/page"
	"github.com/eugenenazirov/webui-harness/internal/page/pagetest"
	"github.com/eugenenazirov/webui-harness/internal/properties"
)

type fakeDrivers struct {
	wd         *pagetest.Driver
	openErr    error
	destroyErr error
	opens      int
	destroys   int
}

func (f *fakeDrivers) Open() (selenium.WebDriver, error) {
	f.opens++
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.wd, nil
}

func (f *fakeDrivers) Destroy() error {
	f.destroys++
	return f.destroyErr
}

func newRegistry(t *testing.T, props properties.Properties) *config.Registry {
	t.Helper()
	base := properties.Properties{config.KeyAppURL: "https://example.test"}
	return config.NewRegistry(properties.Merge(base, props), zaptest.NewLogger(t), nil)
}

func newRunner(t *testing.T, drivers Drivers, props properties.Properties) *Runner {
	t.Helper()
	r, err := NewRunner(drivers, newRegistry(t, props), zaptest.NewLogger(t))
	require.NoError(t, err)
	r.newID = func() string { return "run-1" }
	return r
}

func TestRunOrdersCasesAndContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, nil)

	var order []string
	record := func(name string, err error) func(context.Context, *Session) error {
		return func(_ context.Context, s *Session) error {
			order = append(order, name)
			assert.Equal(t, "https://example.test", s.BaseURL)
			assert.Same(t, drivers.wd, s.Driver)
			return err
		}
	}
	boom := errors.New("boom")

	report := r.Run(context.Background(), Suite{Name: "nav", Cases: []Case{
		{Name: "third", Priority: 3, Run: record("third", nil)},
		{Name: "first", Priority: 1, Run: record("first", boom)},
		{Name: "second", Priority: 2, Run: record("second", nil)},
	}})

	assert.Equal(t, []string{"first", "second", "third"}, order)
	assert.Equal(t, "run-1", report.RunID)
	require.Len(t, report.Suites, 1)
	assert.Equal(t, 1, drivers.opens)
	assert.Equal(t, 1, drivers.destroys)

	passed, failed := report.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
	assert.True(t, report.Failed())
	require.ErrorIs(t, report.Err(), boom)
	assert.Contains(t, report.Err().Error(), "nav/first")
}

func TestRunReportsSoftFailuresAfterTeardown(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, nil)

	var destroyedBeforeAssert bool
	report := r.Run(context.Background(), Suite{Name: "login", Cases: []Case{
		{Name: "color", Run: func(_ context.Context, s *Session) error {
			s.Assert.Equal("#FF0000", "#000000", "status color")
			destroyedBeforeAssert = drivers.destroys > 0
			return nil
		}},
	}})

	assert.False(t, destroyedBeforeAssert)
	require.Len(t, report.Suites, 1)
	res := report.Suites[0]
	require.Len(t, res.Cases, 1)
	assert.True(t, res.Cases[0].Passed(), "soft failures do not fail the case itself")
	require.ErrorIs(t, res.Err, ErrAssertion)
	assert.True(t, report.Failed())
	assert.Equal(t, 1, drivers.destroys)
}

func TestRunEachSuiteGetsItsOwnSession(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, nil)

	noop := Case{Name: "noop", Run: func(context.Context, *Session) error { return nil }}
	report := r.Run(context.Background(),
		Suite{Name: "a", Cases: []Case{noop}},
		Suite{Name: "b", Cases: []Case{noop}},
	)

	assert.Equal(t, 2, drivers.opens)
	assert.Equal(t, 2, drivers.destroys)
	assert.False(t, report.Failed())
	require.NoError(t, report.Err())
}

func TestRunOpenFailureSkipsCases(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{openErr: errors.New("no driver")}
	r := newRunner(t, drivers, nil)

	ran := false
	report := r.Run(context.Background(), Suite{Name: "nav", Cases: []Case{
		{Name: "one", Run: func(context.Context, *Session) error { ran = true; return nil }},
	}})

	assert.False(t, ran)
	assert.Zero(t, drivers.destroys)
	require.Len(t, report.Suites, 1)
	assert.Empty(t, report.Suites[0].Cases)
	require.ErrorIs(t, report.Err(), drivers.openErr)
}

func TestRunRequiresAppURL(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	reg := config.NewRegistry(properties.Properties{}, zaptest.NewLogger(t), nil)
	r, err := NewRunner(drivers, reg, zaptest.NewLogger(t))
	require.NoError(t, err)

	report := r.Run(context.Background(), Suite{Name: "nav"})
	require.ErrorIs(t, report.Err(), config.ErrMissingProperty)
	assert.Zero(t, drivers.opens)
}

func TestRunRecoversPanics(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, nil)

	report := r.Run(context.Background(), Suite{Name: "nav", Cases: []Case{
		{Name: "panics", Run: func(context.Context, *Session) error { panic("nil element") }},
		{Name: "after", Run: func(context.Context, *Session) error { return nil }},
	}})

	cases := report.Suites[0].Cases
	require.Len(t, cases, 2)
	require.Error(t, cases[0].Err)
	assert.Contains(t, cases[0].Err.Error(), "nil element")
	assert.True(t, cases[1].Passed())
	assert.Equal(t, 1, drivers.destroys)
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, nil)

	ctx, cancel := context.WithCancel(context.Background())
	report := r.Run(ctx,
		Suite{Name: "a", Cases: []Case{
			{Name: "cancels", Run: func(context.Context, *Session) error { cancel(); return nil }},
			{Name: "skipped", Run: func(context.Context, *Session) error { return nil }},
		}},
		Suite{Name: "b"},
	)

	require.Len(t, report.Suites, 2)
	assert.Len(t, report.Suites[0].Cases, 1)
	assert.ErrorIs(t, report.Suites[0].Err, context.Canceled)
	assert.ErrorIs(t, report.Suites[1].Err, context.Canceled)
	assert.Equal(t, 1, drivers.opens)
	assert.Equal(t, 1, drivers.destroys)
}

func TestRunDestroyFailureFailsSuite(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver(), destroyErr: errors.New("quit failed")}
	r := newRunner(t, drivers, nil)

	report := r.Run(context.Background(), Suite{Name: "a"})
	require.ErrorIs(t, report.Err(), drivers.destroyErr)
}

func TestRunnerPacing(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	reg := newRegistry(t, nil)
	r, err := NewRunner(drivers, reg, zaptest.NewLogger(t), WithLimiter(rate.NewLimiter(rate.Every(20*time.Millisecond), 1)))
	require.NoError(t, err)

	noop := func(context.Context, *Session) error { return nil }
	start := time.Now()
	r.Run(context.Background(), Suite{Name: "a", Cases: []Case{
		{Name: "1", Run: noop}, {Name: "2", Run: noop}, {Name: "3", Run: noop},
	}})
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestNewRunnerReadsConfig(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}

	r, err := NewRunner(drivers, newRegistry(t, properties.Properties{config.KeyActionsPerSecond: "4"}), nil)
	require.NoError(t, err)
	assert.Equal(t, rate.Limit(4), r.limiter.Limit())

	r, err = NewRunner(drivers, newRegistry(t, properties.Properties{config.KeyActionsPerSecond: "0"}), nil)
	require.NoError(t, err)
	assert.Equal(t, rate.Inf, r.limiter.Limit())

	_, err = NewRunner(drivers, newRegistry(t, properties.Properties{config.KeyActionsPerSecond: "fast"}), nil)
	require.ErrorIs(t, err, config.ErrFormat)
}

func TestSessionUsesConfiguredWait(t *testing.T) {
	t.Parallel()

	drivers := &fakeDrivers{wd: pagetest.NewDriver()}
	r := newRunner(t, drivers, properties.Properties{config.KeyDriverWaitSeconds: "7"})

	var timeout time.Duration
	r.Run(context.Background(), Suite{Name: "a", Cases: []Case{
		{Name: "wait", Run: func(_ context.Context, s *Session) error {
			timeout = page.NewBase(s.Driver, nil, s.PageOptions()...).Timeout()
			return nil
		}},
	}})
	assert.Equal(t, 7*time.Second, timeout)
}
