package web

import (
	"fmt"

	"github.com/ghqa/issues-qa/internal/util"
	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

const (
	dashboardHeaderSelector = "span.AppHeader-context-item-label"
	profileMenuSelector     = "button.Button--invisible.Button--medium.Button.Button--invisible-noVisuals.color-bg-transparent.p-0"
	profileListSelector     = "ul.List__ListBox-sc-1x7olzq-0"

	signOutText = "sign out"
)

type DashboardPage struct {
	BasePage
	leftPanel *LeftPanel
}

func NewDashboardPage(site *Website) *DashboardPage {
	return &DashboardPage{
		BasePage:  NewBasePage(site, "/", dashboardHeaderSelector),
		leftPanel: NewLeftPanel(site.Page()),
	}
}

// Header locates the context label of the app header ("Dashboard" once logged in).
func (p *DashboardPage) Header() Locator {
	return p.Locator(dashboardHeaderSelector)
}

func (p *DashboardPage) LeftPanel() *LeftPanel {
	return p.leftPanel
}

func (p *DashboardPage) OpenProfileMenu() error {
	if err := p.Locator(profileMenuSelector).Click(); err != nil {
		return fmt.Errorf("failed to open profile menu: %w", err)
	}
	return nil
}

// ClickSignOut clicks the menu entry whose text is "Sign out".
func (p *DashboardPage) ClickSignOut() error {
	items, err := p.Locator(profileListSelector).Locator("li").All()
	if err != nil {
		return fmt.Errorf("failed to list profile menu: %w", err)
	}

	for _, item := range items {
		text, err := item.InnerText()
		if err != nil {
			return fmt.Errorf("failed to read profile menu item: %w", err)
		}
		if util.NormalizeText(text) == signOutText {
			return item.Click()
		}
	}
	return srvErrors.NewElementNotFoundError(profileListSelector+" li", "Sign out")
}

func (p *DashboardPage) SignOut() error {
	if err := p.OpenProfileMenu(); err != nil {
		return err
	}
	return p.ClickSignOut()
}

// OpenRepository follows the left panel link to owner/repo.
func (p *DashboardPage) OpenRepository(owner, repo string) (*RepositoryPage, error) {
	if err := p.leftPanel.ClickRepository(owner, repo); err != nil {
		return nil, err
	}
	return NewRepositoryPage(p.site, owner, repo), nil
}
