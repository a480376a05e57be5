package web_test

import (
	"errors"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ghqa/issues-qa/pkg/web"
)

var errNotVisible = errors.New("timeout waiting for element")

// fakeLocator records interactions and serves canned content.
type fakeLocator struct {
	selector string
	text     string
	attrs    map[string]string
	children map[string]*fakeLocator
	items    []*fakeLocator
	hidden   bool
	detached bool

	clicks  int
	cleared int
	filled  []string
	pressed []string
}

func newFakeLocator(selector string) *fakeLocator {
	return &fakeLocator{
		selector: selector,
		attrs:    map[string]string{},
		children: map[string]*fakeLocator{},
	}
}

func (l *fakeLocator) child(selector string) *fakeLocator {
	c, ok := l.children[selector]
	if !ok {
		c = newFakeLocator(selector)
		l.children[selector] = c
	}
	return c
}

func (l *fakeLocator) Click() error {
	l.clicks++
	return nil
}

func (l *fakeLocator) Fill(value string) error {
	l.filled = append(l.filled, value)
	return nil
}

func (l *fakeLocator) Clear() error {
	l.cleared++
	return nil
}

func (l *fakeLocator) Press(key string) error {
	l.pressed = append(l.pressed, key)
	return nil
}

func (l *fakeLocator) InnerText() (string, error) {
	return l.text, nil
}

func (l *fakeLocator) GetAttribute(name string) (string, error) {
	return l.attrs[name], nil
}

func (l *fakeLocator) Count() (int, error) {
	return len(l.items), nil
}

func (l *fakeLocator) All() ([]web.Locator, error) {
	out := make([]web.Locator, 0, len(l.items))
	for _, i := range l.items {
		out = append(out, i)
	}
	return out, nil
}

func (l *fakeLocator) First() web.Locator {
	if len(l.items) > 0 {
		return l.items[0]
	}
	return l
}

func (l *fakeLocator) Locator(selector string) web.Locator {
	return l.child(selector)
}

// FilterText keeps the items whose text matches pattern.
func (l *fakeLocator) FilterText(pattern *regexp.Regexp) web.Locator {
	filtered := newFakeLocator(l.selector)
	for _, i := range l.items {
		if pattern.MatchString(i.text) {
			filtered.items = append(filtered.items, i)
		}
	}
	return filtered
}

func (l *fakeLocator) WaitVisible(time.Duration) error {
	if l.hidden {
		return errNotVisible
	}
	return nil
}

func (l *fakeLocator) WaitAttached(time.Duration) error {
	if l.detached {
		return errNotVisible
	}
	return nil
}

func (l *fakeLocator) IsVisible() (bool, error) {
	return !l.hidden, nil
}

func (l *fakeLocator) Unwrap() playwright.Locator {
	return nil
}

// fakePage hands out one fakeLocator per selector.
type fakePage struct {
	url         string
	locators    map[string]*fakeLocator
	visited     []string
	reloads     int
	waited      []time.Duration
	screenshots []string
	viewport    [2]int
	closed      bool
}

func newFakePage(url string) *fakePage {
	return &fakePage{url: url, locators: map[string]*fakeLocator{}}
}

func (p *fakePage) loc(selector string) *fakeLocator {
	l, ok := p.locators[selector]
	if !ok {
		l = newFakeLocator(selector)
		p.locators[selector] = l
	}
	return l
}

func (p *fakePage) Goto(url string, _ time.Duration) error {
	p.visited = append(p.visited, url)
	p.url = url
	return nil
}

func (p *fakePage) Reload(time.Duration) error {
	p.reloads++
	return nil
}

func (p *fakePage) URL() string {
	return p.url
}

func (p *fakePage) WaitForURL(pattern *regexp.Regexp, _ time.Duration) error {
	if !pattern.MatchString(p.url) {
		return errors.New("timeout waiting for url")
	}
	return nil
}

func (p *fakePage) Wait(d time.Duration) {
	p.waited = append(p.waited, d)
}

func (p *fakePage) Locator(selector string) web.Locator {
	return p.loc(selector)
}

func (p *fakePage) Screenshot(path string) error {
	p.screenshots = append(p.screenshots, path)
	return nil
}

func (p *fakePage) SetViewport(width, height int) error {
	p.viewport = [2]int{width, height}
	return nil
}

func (p *fakePage) Close() error {
	p.closed = true
	return nil
}

func testEnv() web.Env {
	return web.Env{
		BaseURL:         "https://github.example",
		Engine:          web.EngineChromium,
		Headless:        true,
		PageLoadTimeout: time.Second,
		ElementTimeout:  time.Second,
		ScreenshotDir:   "screenshots",
	}
}

func items(texts ...string) []*fakeLocator {
	out := make([]*fakeLocator, 0, len(texts))
	for _, t := range texts {
		l := newFakeLocator("li")
		l.text = t
		out = append(out, l)
	}
	return out
}
