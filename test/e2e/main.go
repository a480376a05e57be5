package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/test/e2e/infra"
)

type configuration struct {
	*config.Configuration

	ConfigFile string
	Target     string
	UI         bool
	Engine     string
	Headless   bool
	KeepIssues bool
}

var (
	cfg    configuration
	target infra.Target
)

func (c configuration) Validate() error {
	if c.Target != infra.TargetMock && c.Target != infra.TargetRemote {
		return fmt.Errorf("invalid target %q: must be '%s' or '%s'", c.Target, infra.TargetMock, infra.TargetRemote)
	}
	return c.Configuration.Validate()
}

// applyFlags copies browser flags set on the command line over the loaded
// configuration. Flags left at their default keep the file and env values.
func (c *configuration) applyFlags(fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "engine":
			c.Browser.Engine = c.Engine
		case "headless":
			c.Browser.Headless = c.Headless
		}
	})
}

func (c *configuration) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Target, "target", infra.TargetMock, "API target: 'mock' (in-process server) or 'remote' (real API, token from the environment)")
	fs.StringVar(&c.ConfigFile, "config", "", "Optional configuration file")
	fs.BoolVar(&c.UI, "ui", false, "Run the web UI specs (needs ISSUESQA_CREDENTIALS_USERNAME and ISSUESQA_CREDENTIALS_PASSWORD)")
	fs.StringVar(&c.Engine, "engine", "", "Browser engine override: chromium, chrome, edge, firefox or webkit")
	fs.BoolVar(&c.Headless, "headless", true, "Run the browser headless")
	fs.BoolVar(&c.KeepIssues, "keep-issues", false, "Leave issues created by the suite open")
}

func main() {
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	loaded, err := config.Load(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	cfg.Configuration = loaded
	cfg.applyFlags(flag.CommandLine)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	switch cfg.Target {
	case infra.TargetMock:
		target = infra.NewMockTarget(cfg.GitHub, cfg.Mock.Addr, cfg.Mock.Collaborators...)
	case infra.TargetRemote:
		target = infra.NewRemoteTarget(cfg.GitHub, cfg.Credentials.Username)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
