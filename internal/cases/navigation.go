package cases

import (
	"context"

	"github.com/eugenenazirov/webui-harness/internal/page"
	"github.com/eugenenazirov/webui-harness/internal/pages"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

// Navigation follows each link of the front page topic menu.
func Navigation() suite.Suite {
	return suite.Suite{
		Name: NavigationSuite,
		Cases: []suite.Case{
			{Name: "consolePcLink", Priority: 1, Run: func(ctx context.Context, s *suite.Session) error {
				p, err := followTopic(ctx, s, pages.ConsolePC, "console-pc")
				if err != nil {
					return err
				}
				return p.Click(pages.AllTopics)
			}},
			{Name: "smartphoneTabLink", Priority: 2, Run: topicLink(pages.SmartphoneTab, "smartphone-tablet")},
			{Name: "independentLink", Priority: 3, Run: topicLink(pages.Independent, "indie")},
			{Name: "vrArLink", Priority: 4, Run: topicLink(pages.VRAR, "")},
			{Name: "socialOnlineLink", Priority: 5, Run: topicLink(pages.SocialOnline, "social-online")},
			{Name: "gamaMagLink", Priority: 6, Run: topicLink(pages.GameDevMag, "game-developer")},
		},
	}
}

func topicLink(element, fragment string) func(context.Context, *suite.Session) error {
	return func(ctx context.Context, s *suite.Session) error {
		_, err := followTopic(ctx, s, element, fragment)
		return err
	}
}

// followTopic opens the front page, clicks element and, when fragment is
// set, waits for the URL to contain it.
func followTopic(ctx context.Context, s *suite.Session, element, fragment string) (*pages.TopicsPage, error) {
	p, err := pages.OpenTopicsPage(ctx, s.Driver, s.BaseURL, s.PageOptions()...)
	if err != nil {
		return nil, err
	}
	if err := p.ScrollTo(element); err != nil {
		return nil, err
	}
	if err := p.Click(element); err != nil {
		return nil, err
	}
	if fragment == "" {
		return p, nil
	}
	return p, p.WaitFor(ctx, page.URLContains(fragment))
}
