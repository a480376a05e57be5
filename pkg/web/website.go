package web

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// ErrEngineNotImplemented is returned by Launch for engines it cannot start.
var ErrEngineNotImplemented = errors.New("browser engine not implemented")

// Website owns the browser session of a run: one browser, one context, one page.
type Website struct {
	env     Env
	pw      *playwright.Playwright
	browser playwright.Browser
	page    Page
	log     *zap.SugaredLogger
}

// Launch starts the playwright driver and the browser named by env.Engine.
func Launch(env Env) (*Website, error) {
	log := zap.S().Named("website")

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	var browserType playwright.BrowserType
	switch env.Engine {
	case EngineChromium, EngineChrome, EngineEdge:
		browserType = pw.Chromium
	case EngineFirefox:
		browserType = pw.Firefox
	case EngineWebKit:
		browserType = pw.WebKit
	default:
		_ = pw.Stop()
		log.Errorw("browser type is not implemented", "engine", env.Engine)
		return nil, fmt.Errorf("%w: %s", ErrEngineNotImplemented, env.Engine)
	}

	opts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(env.Headless)}
	if ch := env.Engine.channel(); ch != "" {
		opts.Channel = playwright.String(ch)
	}
	log.Infow("launching browser", "engine", env.Engine, "headless", env.Headless)

	browser, err := browserType.Launch(opts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", env.Engine, err)
	}

	ctxOpts := playwright.BrowserNewContextOptions{}
	if vp := env.viewport(); vp.Width > 0 {
		log.Debugw("viewport", "width", vp.Width, "height", vp.Height)
		ctxOpts.Viewport = &playwright.Size{Width: vp.Width, Height: vp.Height}
	}

	bctx, err := browser.NewContext(ctxOpts)
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	bctx.SetDefaultTimeout(float64(env.ElementTimeout.Milliseconds()))
	bctx.SetDefaultNavigationTimeout(float64(env.PageLoadTimeout.Milliseconds()))

	page, err := bctx.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}

	w := NewWebsite(env, WrapPage(page))
	w.pw = pw
	w.browser = browser
	return w, nil
}

// NewWebsite binds an already open page to env.
func NewWebsite(env Env, page Page) *Website {
	return &Website{
		env:  env,
		page: page,
		log:  zap.S().Named("website"),
	}
}

func (w *Website) Env() Env {
	return w.env
}

func (w *Website) Page() Page {
	return w.page
}

// Open navigates to url; a relative url is resolved against the base URL.
func (w *Website) Open(url string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = w.env.URL(url)
	}
	w.log.Infof("Open '%s' page", url)
	if err := w.page.Goto(url, w.env.PageLoadTimeout); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Screenshot writes a full page PNG under the screenshot directory and
// returns its path.
func (w *Website) Screenshot(name, description string) (string, error) {
	if err := os.MkdirAll(w.env.ScreenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}

	file := fmt.Sprintf("%s-%s.png", unsafeFileChars.ReplaceAllString(name, "_"), time.Now().Format("20060102-150405.000"))
	path := filepath.Join(w.env.ScreenshotDir, file)
	if err := w.page.Screenshot(path); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	w.log.Infow("screenshot taken", "path", path, "description", description)
	return path, nil
}

// Close closes the page, the browser and the driver.
func (w *Website) Close() error {
	var errs []error
	if w.page != nil {
		errs = append(errs, w.page.Close())
	}
	if w.browser != nil {
		errs = append(errs, w.browser.Close())
	}
	if w.pw != nil {
		errs = append(errs, w.pw.Stop())
	}
	return errors.Join(errs...)
}
