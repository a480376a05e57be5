package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/pflag"

	"github.com/ghqa/issues-qa/internal/config"
)

var _ = Describe("Configuration", func() {
	BeforeEach(func() {
		for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN", "ISSUESQA_GITHUB_TOKEN"} {
			GinkgoT().Setenv(name, "")
		}
	})

	Context("defaults", func() {
		It("should target the public vscode repository", func() {
			// Act
			cfg, err := config.Load("")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.APIURL).To(Equal("https://api.github.com"))
			Expect(cfg.GitHub.Owner).To(Equal("microsoft"))
			Expect(cfg.GitHub.Repo).To(Equal("vscode"))
			Expect(cfg.GitHub.Timeout).To(Equal(30 * time.Second))
			Expect(cfg.Browser.Engine).To(Equal("chromium"))
			Expect(cfg.Browser.Headless).To(BeTrue())
			Expect(cfg.Workers).To(Equal(4))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("environment", func() {
		It("should override defaults with ISSUESQA variables", func() {
			// Arrange
			GinkgoT().Setenv("ISSUESQA_GITHUB_OWNER", "octo-org")
			GinkgoT().Setenv("ISSUESQA_BROWSER_HEADLESS", "false")
			GinkgoT().Setenv("ISSUESQA_GITHUB_TIMEOUT", "5s")

			// Act
			cfg, err := config.Load("")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.Owner).To(Equal("octo-org"))
			Expect(cfg.Browser.Headless).To(BeFalse())
			Expect(cfg.GitHub.Timeout).To(Equal(5 * time.Second))
		})

		It("should fall back to GITHUB_TOKEN", func() {
			GinkgoT().Setenv("GITHUB_TOKEN", "from-env")

			cfg, err := config.Load("")

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.Token).To(Equal("from-env"))
		})
	})

	Context("file", func() {
		It("should read a YAML file", func() {
			// Arrange
			path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
			Expect(os.WriteFile(path, []byte("github:\n  repo: sandbox\nmock:\n  collaborators: [alice, bob]\nworkers: 2\n"), 0o600)).To(Succeed())

			// Act
			cfg, err := config.Load(path)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.Repo).To(Equal("sandbox"))
			Expect(cfg.GitHub.Owner).To(Equal("microsoft"))
			Expect(cfg.Mock.Collaborators).To(ConsistOf("alice", "bob"))
			Expect(cfg.Workers).To(Equal(2))
		})

		It("should fail on a missing file", func() {
			_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "nope.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})

	Context("flags", func() {
		var fs *pflag.FlagSet

		BeforeEach(func() {
			def := config.NewConfigurationWithDefaults()
			fs = pflag.NewFlagSet("issues-qa", pflag.ContinueOnError)
			fs.String("owner", def.GitHub.Owner, "")
			fs.String("repo", def.GitHub.Repo, "")
			fs.Int("workers", def.Workers, "")
		})

		keys := map[string]string{"owner": "github.owner", "repo": "github.repo", "workers": "workers"}

		It("should let flags set on the command line win over the environment", func() {
			// Arrange
			GinkgoT().Setenv("ISSUESQA_GITHUB_OWNER", "env-org")
			Expect(fs.Parse([]string{"--owner", "cli-org", "--workers", "8"})).To(Succeed())

			// Act
			cfg, err := config.Load("", config.WithFlags(fs, keys))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.Owner).To(Equal("cli-org"))
			Expect(cfg.Workers).To(Equal(8))
		})

		It("should keep file and environment values for unset flags", func() {
			// Arrange
			path := filepath.Join(GinkgoT().TempDir(), "config.yaml")
			Expect(os.WriteFile(path, []byte("workers: 2\n"), 0o600)).To(Succeed())
			GinkgoT().Setenv("ISSUESQA_GITHUB_REPO", "env-repo")
			Expect(fs.Parse(nil)).To(Succeed())

			// Act
			cfg, err := config.Load(path, config.WithFlags(fs, keys))

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.GitHub.Repo).To(Equal("env-repo"))
			Expect(cfg.GitHub.Owner).To(Equal("microsoft"))
			Expect(cfg.Workers).To(Equal(2))
		})

		It("should reject bindings to unknown flags", func() {
			_, err := config.Load("", config.WithFlags(fs, map[string]string{"nope": "github.owner"}))
			Expect(err).To(MatchError(ContainSubstring("unknown flag")))
		})
	})

	Context("Validate", func() {
		var cfg *config.Configuration

		BeforeEach(func() {
			cfg = config.NewConfigurationWithDefaults()
		})

		It("should accept engine aliases", func() {
			cfg.Browser.Engine = "Edge"
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.Browser.NormalizedEngine()).To(Equal(config.EngineChromium))
		})

		It("should reject unknown engines", func() {
			cfg.Browser.Engine = "netscape"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("unsupported browser engine")))
		})

		It("should reject relative URLs and empty repositories", func() {
			cfg.GitHub.APIURL = "/api"
			cfg.GitHub.Repo = ""

			err := cfg.Validate()

			Expect(err).To(MatchError(ContainSubstring("github.api_url")))
			Expect(err).To(MatchError(ContainSubstring("owner and repo")))
		})
	})

	Context("DebugMap", func() {
		It("should redact secrets", func() {
			cfg := config.NewConfigurationWithDefaults()
			cfg.GitHub.Token = "secret-token"
			cfg.Credentials.Password = "hunter2"

			m := cfg.DebugMap()

			Expect(m["github"]).To(HaveKeyWithValue("token", "<redacted>"))
			Expect(m["credentials"]).To(HaveKeyWithValue("password", "<redacted>"))
			Expect(m["github"]).To(HaveKeyWithValue("owner", "microsoft"))
		})
	})
})
