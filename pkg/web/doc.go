// Package web drives the issues web application through page objects.
//
// # Layers
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│ Website        browser + context + page for a run (playwright)   │
//	├──────────────────────────────────────────────────────────────────┤
//	│ BasePage       path, load marker, Open / Navigate / Refresh      │
//	│   ├── LoginPage                                                  │
//	│   ├── DashboardPage ── LeftPanel                                 │
//	│   └── RepositoryPage ── IssueTab, NewIssueWindow                 │
//	├──────────────────────────────────────────────────────────────────┤
//	│ Page / Locator narrow driver interfaces (driver.go)              │
//	└──────────────────────────────────────────────────────────────────┘
//
// Page objects only talk to the Page and Locator interfaces. WrapPage
// adapts a playwright page; tests substitute in-memory fakes. Locators
// returned to callers expose Unwrap so specs can use playwright's
// web-first assertions:
//
//	assert := playwright.NewPlaywrightAssertions()
//	Expect(assert.Locator(dashboard.Header().Unwrap()).ToHaveText("Dashboard")).To(Succeed())
//
// # Page load validation
//
// ValidateLoaded runs three checks and stops at the first failure, which
// is reported as *errors.PageNotLoadedError:
//
//  1. the page URL contains the page path (PageLoadTimeout)
//  2. the document body is attached (PageLoadTimeout)
//  3. the page marker is visible (ElementTimeout)
//
// # Repository tabs
//
// RepositoryPage.ClickTab waits for the tab bar, lets it settle for 500ms
// and clicks the tab unless its class already contains "selected". Only
// the Issues tab is navigable; the others return
// *errors.TabNotImplementedError.
package web
