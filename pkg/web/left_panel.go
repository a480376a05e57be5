package web

import (
	"fmt"
)

const repoListSelector = "aside div.js-repos-container ul li"

// LeftPanel is the repository list on the left of the dashboard.
type LeftPanel struct {
	page Page
}

func NewLeftPanel(page Page) *LeftPanel {
	return &LeftPanel{page: page}
}

func (l *LeftPanel) RepositoryLink(owner, repo string) Locator {
	return l.page.Locator(fmt.Sprintf("%s a[href='/%s/%s']", repoListSelector, owner, repo))
}

func (l *LeftPanel) ClickRepository(owner, repo string) error {
	if err := l.RepositoryLink(owner, repo).First().Click(); err != nil {
		return fmt.Errorf("failed to open %s/%s from the left panel: %w", owner, repo, err)
	}
	return nil
}
