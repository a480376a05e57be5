package web

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghqa/issues-qa/internal/config"
)

type Engine string

const (
	EngineChromium Engine = "chromium"
	EngineChrome   Engine = "chrome"
	EngineEdge     Engine = "edge"
	EngineFirefox  Engine = "firefox"
	EngineWebKit   Engine = "webkit"
)

// channel returns the branded browser channel for chromium-based engines.
func (e Engine) channel() string {
	switch e {
	case EngineChrome:
		return "chrome"
	case EngineEdge:
		return "msedge"
	default:
		return ""
	}
}

type Viewport struct {
	Width  int
	Height int
}

// headlessViewport is used when running headless without an explicit size.
var headlessViewport = Viewport{Width: 1920, Height: 1080}

// Env describes the website under test and how to drive it.
type Env struct {
	BaseURL         string
	Engine          Engine
	Headless        bool
	Viewport        Viewport
	PageLoadTimeout time.Duration
	ElementTimeout  time.Duration
	ScreenshotDir   string
}

func NewEnv(cfg config.Browser) Env {
	return Env{
		BaseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		Engine:          Engine(strings.ToLower(strings.TrimSpace(cfg.Engine))),
		Headless:        cfg.Headless,
		Viewport:        Viewport{Width: cfg.ViewportWidth, Height: cfg.ViewportHeight},
		PageLoadTimeout: cfg.PageLoadTimeout,
		ElementTimeout:  cfg.ElementTimeout,
		ScreenshotDir:   cfg.ScreenshotDir,
	}
}

// URL joins path onto the base URL.
func (e Env) URL(path string) string {
	return e.BaseURL + "/" + strings.TrimLeft(path, "/")
}

func (e Env) viewport() Viewport {
	if e.Viewport.Width > 0 && e.Viewport.Height > 0 {
		return e.Viewport
	}
	if e.Headless {
		return headlessViewport
	}
	return Viewport{}
}

func (e Env) String() string {
	return fmt.Sprintf("Env(base_url=%q, engine=%s, headless=%t)", e.BaseURL, e.Engine, e.Headless)
}
