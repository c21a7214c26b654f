package cases

import (
	"context"

	"github.com/eugenenazirov/webui-harness/internal/page"
	"github.com/eugenenazirov/webui-harness/internal/pages"
	"github.com/eugenenazirov/webui-harness/internal/suite"
)

// InvalidLoginColor is the status text color shown for a rejected login.
const InvalidLoginColor = "#FF0000"

// Login submits the empty member login form.
func Login() suite.Suite {
	return suite.Suite{
		Name: LoginSuite,
		Cases: []suite.Case{
			{Name: "invalidLogin", Run: func(ctx context.Context, s *suite.Session) error {
				p, err := pages.OpenHomePage(ctx, s.Driver, s.BaseURL, s.PageOptions()...)
				if err != nil {
					return err
				}
				if err := p.ScrollTo(pages.LoginButton); err != nil {
					return err
				}
				if err := p.Click(pages.LoginButton); err != nil {
					return err
				}

				raw, err := p.Color(pages.InvalidLogin)
				if err != nil {
					return err
				}
				color, err := page.HexColor(raw)
				if !s.Assert.NoError(err, "invalid login status color") {
					return nil
				}
				s.Assert.Equal(InvalidLoginColor, color, "invalid login status color")
				return nil
			}},
		},
	}
}
