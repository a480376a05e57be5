package web

import (
	"fmt"

	"github.com/ghqa/issues-qa/internal/config"
)

const (
	LoginPath = "/login"

	usernameSelector       = "#login_field"
	passwordSelector       = "#password"
	loginButtonSelector    = "[name='commit']"
	errorMessageSelector   = "div[role='alert']"
	signOutConfirmSelector = "input[value='Sign out from all accounts']"
)

type LoginPage struct {
	BasePage
}

func NewLoginPage(site *Website) *LoginPage {
	return &LoginPage{BasePage: NewBasePage(site, LoginPath, usernameSelector)}
}

func (p *LoginPage) EnterUsername(username string) error {
	if err := fillField(p.Locator(usernameSelector), username); err != nil {
		return fmt.Errorf("failed to enter username: %w", err)
	}
	return nil
}

func (p *LoginPage) EnterPassword(password string) error {
	if err := fillField(p.Locator(passwordSelector), password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	return nil
}

func (p *LoginPage) ClickLogin() error {
	if err := p.Locator(loginButtonSelector).Click(); err != nil {
		return fmt.Errorf("failed to click login: %w", err)
	}
	return nil
}

// Login submits creds and returns the dashboard the site lands on. It does
// not check that the login succeeded; assert on the dashboard header or
// ErrorMessage for that.
func (p *LoginPage) Login(creds config.Credentials) (*DashboardPage, error) {
	p.log.Infow("logging in", "username", creds.Username)
	if err := p.EnterUsername(creds.Username); err != nil {
		return nil, err
	}
	if err := p.EnterPassword(creds.Password); err != nil {
		return nil, err
	}
	if err := p.ClickLogin(); err != nil {
		return nil, err
	}
	return NewDashboardPage(p.site), nil
}

// ErrorMessage locates the alert shown after a failed login.
func (p *LoginPage) ErrorMessage() Locator {
	return p.Locator(errorMessageSelector)
}

// SignOutConfirmation locates the button of the sign out page.
func (p *LoginPage) SignOutConfirmation() Locator {
	return p.Locator(signOutConfirmSelector)
}
