package suite

import (
	"context"
	"slices"

	"github.com/tebeka/selenium"
	"go.uber.org/zap"

	"github.com/eugenenazirov/webui-harness/internal/page"
)

// Case is one browser test.
type Case struct {
	Name     string
	Priority int
	Run      func(ctx context.Context, s *Session) error
}

// Suite groups cases sharing one WebDriver session.
type Suite struct {
	Name  string
	Cases []Case
}

// Ordered returns the cases sorted by priority. Ties keep declaration order.
func (s Suite) Ordered() []Case {
	cases := slices.Clone(s.Cases)
	slices.SortStableFunc(cases, func(a, b Case) int {
		return a.Priority - b.Priority
	})
	return cases
}

// Session is what a running case sees.
type Session struct {
	Driver  selenium.WebDriver
	BaseURL string
	Assert  *SoftAssert
	Logger  *zap.Logger

	pageOpts []page.Option
}

// PageOptions returns the options page objects are built with.
func (s *Session) PageOptions() []page.Option {
	return append(slices.Clone(s.pageOpts), page.WithLogger(s.Logger))
}

// WaitFor polls cond with the configured page timeout.
func (s *Session) WaitFor(ctx context.Context, cond page.Condition) error {
	return page.NewBase(s.Driver, nil, s.PageOptions()...).WaitFor(ctx, cond)
}
