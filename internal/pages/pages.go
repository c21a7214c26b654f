package pages

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tebeka/selenium"

	"github.com/eugenenazirov/webui-harness/internal/page"
)

const topicMenu = ".container .content-body-wrapper .span-20 .hide-phone .last .topicmenu"

func topicMenuItem(n int) page.Locator {
	return page.CSS(fmt.Sprintf("%s ul li:nth-child(%d) a", topicMenu, n))
}

// Topic menu element names.
const (
	AllTopics     = "allTopics"
	ConsolePC     = "consolePC"
	SmartphoneTab = "smartphoneTab"
	Independent   = "independent"
	VRAR          = "vrAr"
	SocialOnline  = "socialOnline"
	GameDevMag    = "gameDevMag"
	FirstTopic    = "firstTopic"
	LoginButton   = "loginBtn"
	InvalidLogin  = "invalidLogin"
)

var topicLocators = page.Locators{
	AllTopics:     topicMenuItem(1),
	ConsolePC:     topicMenuItem(2),
	SmartphoneTab: topicMenuItem(3),
	Independent:   topicMenuItem(4),
	VRAR:          topicMenuItem(5),
	SocialOnline:  topicMenuItem(6),
	GameDevMag:    page.CSS(topicMenu + " .gdmag a"),
}

// ConsolePCPath is the console/PC topic listing relative to the site root.
const ConsolePCPath = "/topic/console-pc"

// TopicsPage is the site front page with its topic menu.
type TopicsPage struct {
	*page.Base
	url string
}

// NewTopicsPage binds the front page of baseURL to wd.
func NewTopicsPage(wd selenium.WebDriver, baseURL string, opts ...page.Option) *TopicsPage {
	return &TopicsPage{Base: page.NewBase(wd, topicLocators, opts...), url: baseURL}
}

// OpenTopicsPage navigates to the front page and waits until it is loaded.
func OpenTopicsPage(ctx context.Context, wd selenium.WebDriver, baseURL string, opts ...page.Option) (*TopicsPage, error) {
	p := NewTopicsPage(wd, baseURL, opts...)
	return p, open(ctx, p.Base, p.url, p.Ready())
}

// URL returns the page address.
func (p *TopicsPage) URL() string { return p.url }

// Go navigates to the page.
func (p *TopicsPage) Go() error { return p.Navigate(p.url) }

// Ready holds once the session is on the site host.
func (p *TopicsPage) Ready() page.Condition { return onHost(p.url) }

// ConsolePCPage lists console and PC stories.
type ConsolePCPage struct {
	*page.Base
	url string
}

// NewConsolePCPage binds the console/PC listing of baseURL to wd.
func NewConsolePCPage(wd selenium.WebDriver, baseURL string, opts ...page.Option) (*ConsolePCPage, error) {
	u, err := url.JoinPath(baseURL, ConsolePCPath)
	if err != nil {
		return nil, fmt.Errorf("console/pc page url: %w", err)
	}
	locators := page.Locators{
		ConsolePC:  topicLocators[ConsolePC],
		FirstTopic: page.CSS(".content_box_middle:nth-child(1) .feed_item .story_title a"),
	}
	return &ConsolePCPage{Base: page.NewBase(wd, locators, opts...), url: u}, nil
}

// OpenConsolePCPage navigates to the listing and waits until it is loaded.
func OpenConsolePCPage(ctx context.Context, wd selenium.WebDriver, baseURL string, opts ...page.Option) (*ConsolePCPage, error) {
	p, err := NewConsolePCPage(wd, baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return p, open(ctx, p.Base, p.url, p.Ready())
}

// URL returns the page address.
func (p *ConsolePCPage) URL() string { return p.url }

// Go navigates to the page.
func (p *ConsolePCPage) Go() error { return p.Navigate(p.url) }

// Ready holds once the session shows the console/PC listing.
func (p *ConsolePCPage) Ready() page.Condition { return page.URLContains("console-pc") }

var homeLocators = page.Locators{
	LoginButton:  page.CSS("#submit"),
	InvalidLogin: page.CSS("#memeberLogin #status"),
}

// HomePage is the front page seen through its member login form.
type HomePage struct {
	*page.Base
	url string
}

// NewHomePage binds the front page of baseURL to wd.
func NewHomePage(wd selenium.WebDriver, baseURL string, opts ...page.Option) *HomePage {
	return &HomePage{Base: page.NewBase(wd, homeLocators, opts...), url: baseURL}
}

// OpenHomePage navigates to the front page and waits for the login button.
func OpenHomePage(ctx context.Context, wd selenium.WebDriver, baseURL string, opts ...page.Option) (*HomePage, error) {
	p := NewHomePage(wd, baseURL, opts...)
	return p, open(ctx, p.Base, p.url, p.Ready())
}

// URL returns the page address.
func (p *HomePage) URL() string { return p.url }

// Go navigates to the page.
func (p *HomePage) Go() error { return p.Navigate(p.url) }

// Ready holds once the login button can be clicked.
func (p *HomePage) Ready() page.Condition { return page.Clickable(page.ID("submit")) }

func open(ctx context.Context, b *page.Base, target string, ready page.Condition) error {
	if err := b.Navigate(target); err != nil {
		return err
	}
	if err := b.WaitFor(ctx, ready); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

func onHost(raw string) page.Condition {
	host := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		host = u.Host
	}
	return page.URLContains(host)
}
