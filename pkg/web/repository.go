package web

import (
	"fmt"
	"strings"
	"time"

	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

// InnerTab is a tab of the repository navigation bar.
type InnerTab string

const (
	TabCode         InnerTab = "Code"
	TabIssues       InnerTab = "Issues"
	TabPullRequests InnerTab = "Pull requests"
	TabActions      InnerTab = "Actions"
	TabProjects     InnerTab = "Projects"
	TabWiki         InnerTab = "Wiki"
	TabSecurity     InnerTab = "Security"
	TabInsights     InnerTab = "Insights"
)

var tabSelectors = map[InnerTab]string{
	TabCode:         "#code-tab",
	TabIssues:       "#issues-tab",
	TabPullRequests: "#pull-requests-tab",
	TabActions:      "#actions-tab",
	TabProjects:     "#projects-tab",
	TabWiki:         "#wiki-tab",
	TabSecurity:     "#security-tab",
	TabInsights:     "#insights-tab",
}

// Selector returns the id selector of the tab, or "" for unknown tabs.
func (t InnerTab) Selector() string {
	return tabSelectors[t]
}

const (
	toolbarSelector = "ul.UnderlineNav-body.list-style-none"
	// settle time for the toolbar scripts after it becomes visible
	toolbarSettle = 500 * time.Millisecond
)

// RepositoryPage is the landing page of one repository.
type RepositoryPage struct {
	BasePage
	owner     string
	repo      string
	tabPath   string
	tabMarker string
	issues    *IssueTab
	newIssue  *NewIssueWindow
}

func NewRepositoryPage(site *Website, owner, repo string) *RepositoryPage {
	return &RepositoryPage{
		BasePage: NewBasePage(site, fmt.Sprintf("/%s/%s", owner, repo), toolbarSelector),
		owner:    owner,
		repo:     repo,
		issues:   NewIssueTab(site.Page()),
		newIssue: NewNewIssueWindow(site.Page()),
	}
}

func (p *RepositoryPage) IssueTab() *IssueTab {
	return p.issues
}

func (p *RepositoryPage) NewIssueWindow() *NewIssueWindow {
	return p.newIssue
}

// TabPath is the URL of the last tab switched to.
func (p *RepositoryPage) TabPath() string {
	return p.tabPath
}

func (p *RepositoryPage) TabMarker() string {
	return p.tabMarker
}

// ClickTab switches to tab. Only the Issues tab is supported; for Code the
// tab path is recorded before failing.
func (p *RepositoryPage) ClickTab(tab InnerTab) error {
	selector := tab.Selector()
	if selector == "" {
		return srvErrors.NewTabNotImplementedError(string(tab))
	}

	toolbar := p.Locator(toolbarSelector)
	if err := toolbar.WaitVisible(p.site.Env().ElementTimeout); err != nil {
		return srvErrors.NewPageNotLoadedError(p.path, "repository toolbar is not visible", err)
	}
	p.page.Wait(toolbarSettle)

	switch tab {
	case TabCode:
		if err := p.switchTo(toolbar, selector); err != nil {
			return err
		}
		p.tabPath = p.site.Env().URL(p.path)
		p.tabMarker = selector + ".selected"
		return srvErrors.NewTabNotImplementedError(string(tab))
	case TabIssues:
		if err := p.switchTo(toolbar, selector); err != nil {
			return err
		}
		p.tabPath = p.site.Env().URL(p.path + "/issues")
		p.tabMarker = selector + ".selected"
	default:
		return srvErrors.NewTabNotImplementedError(string(tab))
	}

	p.log.Infof("Successfully clicked on tab: %s", tab)
	return nil
}

// switchTo clicks the tab unless its class already marks it selected.
func (p *RepositoryPage) switchTo(toolbar Locator, selector string) error {
	tab := toolbar.Locator(selector)

	class, err := tab.GetAttribute("class")
	if err != nil {
		return fmt.Errorf("failed to read class of %s: %w", selector, err)
	}
	if strings.Contains(class, "selected") {
		p.log.Debugf("Already on '%s' tab", selector)
		return nil
	}

	if err := tab.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", selector, err)
	}
	p.log.Infof("Switched to tab: '%s'", selector)
	return nil
}

func (p *RepositoryPage) ClickNewIssue() (*RepositoryPage, error) {
	if err := p.issues.ClickNewIssue(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *RepositoryPage) SelectIssueType(t IssueType) (*RepositoryPage, error) {
	if err := p.newIssue.SelectType(t); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateIssue fills the new issue form with info and submits it.
func (p *RepositoryPage) CreateIssue(info IssueInfo) (*RepositoryPage, error) {
	if err := p.newIssue.Fill(info); err != nil {
		return nil, err
	}
	return p, nil
}
