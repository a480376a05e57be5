package web

import (
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Locator is the subset of element operations the page objects use.
type Locator interface {
	Click() error
	Fill(value string) error
	Clear() error
	Press(key string) error
	InnerText() (string, error)
	GetAttribute(name string) (string, error)
	Count() (int, error)
	All() ([]Locator, error)
	First() Locator
	Locator(selector string) Locator
	// FilterText narrows the matches to elements whose text matches pattern.
	FilterText(pattern *regexp.Regexp) Locator
	WaitVisible(timeout time.Duration) error
	WaitAttached(timeout time.Duration) error
	IsVisible() (bool, error)
	// Unwrap returns the driver locator, for playwright assertions. It is
	// nil for locators not backed by a browser.
	Unwrap() playwright.Locator
}

// Page is the subset of page operations the page objects use.
type Page interface {
	Goto(url string, timeout time.Duration) error
	Reload(timeout time.Duration) error
	URL() string
	WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error
	Wait(d time.Duration)
	Locator(selector string) Locator
	Screenshot(path string) error
	SetViewport(width, height int) error
	Close() error
}

func ms(d time.Duration) *float64 {
	return playwright.Float(float64(d.Milliseconds()))
}

type pwPage struct {
	page playwright.Page
}

// WrapPage adapts a playwright page.
func WrapPage(p playwright.Page) Page {
	return &pwPage{page: p}
}

func (p *pwPage) Goto(url string, timeout time.Duration) error {
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   ms(timeout),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (p *pwPage) Reload(timeout time.Duration) error {
	_, err := p.page.Reload(playwright.PageReloadOptions{Timeout: ms(timeout)})
	return err
}

func (p *pwPage) URL() string {
	return p.page.URL()
}

func (p *pwPage) WaitForURL(pattern *regexp.Regexp, timeout time.Duration) error {
	return p.page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout:   ms(timeout),
		WaitUntil: playwright.WaitUntilStateCommit,
	})
}

func (p *pwPage) Wait(d time.Duration) {
	p.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (p *pwPage) Locator(selector string) Locator {
	return &pwLocator{loc: p.page.Locator(selector)}
}

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return err
}

func (p *pwPage) SetViewport(width, height int) error {
	return p.page.SetViewportSize(width, height)
}

func (p *pwPage) Close() error {
	return p.page.Close()
}

type pwLocator struct {
	loc playwright.Locator
}

func (l *pwLocator) Click() error {
	return l.loc.Click()
}

func (l *pwLocator) Fill(value string) error {
	return l.loc.Fill(value)
}

func (l *pwLocator) Clear() error {
	return l.loc.Clear()
}

func (l *pwLocator) Press(key string) error {
	return l.loc.Press(key)
}

func (l *pwLocator) InnerText() (string, error) {
	return l.loc.InnerText()
}

func (l *pwLocator) Count() (int, error) {
	return l.loc.Count()
}

func (l *pwLocator) IsVisible() (bool, error) {
	return l.loc.IsVisible()
}

func (l *pwLocator) First() Locator {
	return &pwLocator{loc: l.loc.First()}
}

func (l *pwLocator) Unwrap() playwright.Locator {
	return l.loc
}

func (l *pwLocator) Locator(sel string) Locator {
	return &pwLocator{loc: l.loc.Locator(sel)}
}

func (l *pwLocator) FilterText(pattern *regexp.Regexp) Locator {
	return &pwLocator{loc: l.loc.Filter(playwright.LocatorFilterOptions{HasText: pattern})}
}

func (l *pwLocator) GetAttribute(name string) (string, error) {
	return l.loc.GetAttribute(name)
}

func (l *pwLocator) All() ([]Locator, error) {
	all, err := l.loc.All()
	if err != nil {
		return nil, err
	}
	out := make([]Locator, 0, len(all))
	for _, a := range all {
		out = append(out, &pwLocator{loc: a})
	}
	return out, nil
}

func (l *pwLocator) WaitVisible(timeout time.Duration) error {
	return l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
}

func (l *pwLocator) WaitAttached(timeout time.Duration) error {
	return l.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: ms(timeout),
	})
}
