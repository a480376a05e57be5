package web

import (
	"fmt"

	"go.uber.org/zap"
)

// IssueType is an entry of the issue template chooser.
type IssueType string

const (
	IssueTypeBugReport             IssueType = "Bug report"
	IssueTypeFeatureRequest        IssueType = "Feature request"
	IssueTypeSecurityVulnerability IssueType = "Report a security vulnerability"
	IssueTypeQuestion              IssueType = "Question"
	IssueTypeExtensionDevelopment  IssueType = "Extension Development"
)

const (
	issueTitleInputSelector = "input[placeholder='Title']"
	issueDescSelector       = "textarea[placeholder='Type your description here…']"
	createButtonSelector    = "//span[contains(text(), 'Create')]"
)

// IssueInfo is what the new issue form is filled with.
type IssueInfo struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// NewIssueWindow is the form opened by the "New issue" button.
type NewIssueWindow struct {
	page Page
	log  *zap.SugaredLogger
}

func NewNewIssueWindow(page Page) *NewIssueWindow {
	return &NewIssueWindow{page: page, log: zap.S().Named("new_issue")}
}

func (w *NewIssueWindow) SelectType(t IssueType) error {
	if err := w.page.Locator(fmt.Sprintf("//span[contains(text(), '%s')]", t)).Click(); err != nil {
		return fmt.Errorf("failed to select issue type %q: %w", t, err)
	}
	w.log.Infof("Selected option: %s", t)
	return nil
}

func (w *NewIssueWindow) AddTitle(title string) error {
	if err := fillField(w.page.Locator(issueTitleInputSelector), title); err != nil {
		return fmt.Errorf("failed to add title: %w", err)
	}
	w.log.Infof("Added title: %s", title)
	return nil
}

func (w *NewIssueWindow) AddDescription(description string) error {
	if err := fillField(w.page.Locator(issueDescSelector), description); err != nil {
		return fmt.Errorf("failed to add description: %w", err)
	}
	w.log.Debugf("Added description: %s", description)
	return nil
}

func (w *NewIssueWindow) ClickCreate() error {
	if err := w.page.Locator(createButtonSelector).Click(); err != nil {
		return fmt.Errorf("failed to click create: %w", err)
	}
	w.log.Info("Clicked 'Create' button")
	return nil
}

// Fill adds title and description then submits the form.
func (w *NewIssueWindow) Fill(info IssueInfo) error {
	if err := w.AddTitle(info.Title); err != nil {
		return err
	}
	if err := w.AddDescription(info.Description); err != nil {
		return err
	}
	return w.ClickCreate()
}
