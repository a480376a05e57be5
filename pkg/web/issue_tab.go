package web

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	srvErrors "github.com/ghqa/issues-qa/pkg/errors"
)

const (
	newIssueButtonSelector = "//span[contains(text(), 'New issue')]"
	issueSearchSelector    = "#repository-input"
	issueListSelector      = "ul[data-listview-component='items-list']"
	issueTitleSelector     = "a.Link--primary"
)

// IssueTab is the issue list of a repository.
type IssueTab struct {
	page Page
	log  *zap.SugaredLogger
}

func NewIssueTab(page Page) *IssueTab {
	return &IssueTab{page: page, log: zap.S().Named("issue_tab")}
}

func (t *IssueTab) ClickNewIssue() error {
	if err := t.page.Locator(newIssueButtonSelector).Click(); err != nil {
		return fmt.Errorf("failed to click new issue: %w", err)
	}
	return nil
}

func (t *IssueTab) Search(query string) error {
	box := t.page.Locator(issueSearchSelector)
	if err := box.Fill(query); err != nil {
		return fmt.Errorf("failed to type search query: %w", err)
	}
	return box.Press("Enter")
}

// IssueTitles returns the titles of the listed issues in display order.
func (t *IssueTab) IssueTitles() ([]string, error) {
	links, err := t.page.Locator(issueListSelector).Locator(issueTitleSelector).All()
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	titles := make([]string, 0, len(links))
	for _, l := range links {
		text, err := l.InnerText()
		if err != nil {
			return nil, err
		}
		titles = append(titles, text)
	}
	return titles, nil
}

// exactText matches text as the whole trimmed content of an element.
func exactText(text string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*` + regexp.QuoteMeta(text) + `\s*$`)
}

// SelectItem clicks the first list item showing exactly text.
func (t *IssueTab) SelectItem(text string) error {
	t.log.Infof("Selecting '%s' from the issue list", text)

	item := t.page.Locator(issueListSelector).Locator("li").FilterText(exactText(text))
	n, err := item.Count()
	if err != nil {
		return fmt.Errorf("failed to count items: %w", err)
	}
	if n == 0 {
		t.log.Infof("No <li> element with text '%s' found", text)
		return srvErrors.NewElementNotFoundError(issueListSelector+" li", text)
	}

	if err := item.First().Click(); err != nil {
		return fmt.Errorf("failed to click item %q: %w", text, err)
	}
	return nil
}
