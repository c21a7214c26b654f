package cases

import (
	"context"

	"github.com/eugenenazirov/webui-harness/internal/page"
	"github.com/eugenenazirov/webui-harness/internal/pages"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

// Topics opens the first story of the console/PC listing.
func Topics() suite.Suite {
	return suite.Suite{
		Name: TopicsSuite,
		Cases: []suite.Case{
			{Name: "topicLinkFirst", Run: func(ctx context.Context, s *suite.Session) error {
				p, err := pages.OpenConsolePCPage(ctx, s.Driver, s.BaseURL, s.PageOptions()...)
				if err != nil {
					return err
				}
				if err := p.ScrollTo(pages.FirstTopic); err != nil {
					return err
				}
				if err := p.Click(pages.FirstTopic); err != nil {
					return err
				}
				return p.WaitFor(ctx, page.URLContains("news"))
			}},
		},
	}
}
