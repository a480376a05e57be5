package web

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

// BasePage holds what every page object shares: the page, the path that
// identifies it and a marker selector that is visible once it has loaded.
type BasePage struct {
	site   *Website
	page   Page
	path   string
	marker string
	log    *zap.SugaredLogger
}

func NewBasePage(site *Website, path, marker string) BasePage {
	return BasePage{
		site:   site,
		page:   site.Page(),
		path:   path,
		marker: marker,
		log:    zap.S().Named("page"),
	}
}

func (p *BasePage) Path() string {
	return p.path
}

func (p *BasePage) Marker() string {
	return p.marker
}

func (p *BasePage) Locator(selector string) Locator {
	return p.page.Locator(selector)
}

// Open navigates to the page's own path and validates it.
func (p *BasePage) Open() error {
	if err := p.Navigate(p.site.Env().URL(p.path)); err != nil {
		return err
	}
	return p.ValidateLoaded()
}

func (p *BasePage) Navigate(url string) error {
	p.log.Debugf("Navigate to '%s'", url)
	if err := p.page.Goto(url, p.site.Env().PageLoadTimeout); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// ValidateLoaded checks, in order, that the URL contains the page path, the
// document body is attached and the marker is visible.
func (p *BasePage) ValidateLoaded() error {
	env := p.site.Env()
	p.log.Infof("Validating page load for '%s'", p.path)

	if err := p.page.WaitForURL(regexp.MustCompile(regexp.QuoteMeta(p.path)), env.PageLoadTimeout); err != nil {
		return srvErrors.NewPageNotLoadedError(p.path,
			fmt.Sprintf("expected page URL to contain '%s', but got '%s'", p.path, p.page.URL()), err)
	}

	if err := p.page.Locator("body").WaitAttached(env.PageLoadTimeout); err != nil {
		return srvErrors.NewPageNotLoadedError(p.path, "document body is not attached", err)
	}

	if p.marker != "" {
		if err := p.page.Locator(p.marker).WaitVisible(env.ElementTimeout); err != nil {
			return srvErrors.NewPageNotLoadedError(p.path, fmt.Sprintf("page marker '%s' was not displayed", p.marker), err)
		}
	}

	p.log.Infof("Page '%s' loaded successfully", p.path)
	return nil
}

// Refresh reloads the page and validates it again when validate is set.
func (p *BasePage) Refresh(validate bool) error {
	p.log.Infof("Refreshing page '%s'", p.path)
	if err := p.page.Reload(p.site.Env().PageLoadTimeout); err != nil {
		return fmt.Errorf("failed to reload %s: %w", p.path, err)
	}
	if !validate {
		return nil
	}
	return p.ValidateLoaded()
}

// fillField clears a text input then types value into it.
func fillField(l Locator, value string) error {
	if err := l.Clear(); err != nil {
		return err
	}
	return l.Fill(value)
}
