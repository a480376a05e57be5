package main

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/test/e2e/fixtures"
	"github.com/ghqa/issues-qa/test/e2e/service"
)

var (
	fx     = fixtures.MustLoad()
	issues *service.IssueSvc
)

var _ = BeforeSuite(func() {
	zap.S().Infow("starting target", "target", target.Name(), "owner", cfg.GitHub.Owner, "repo", cfg.GitHub.Repo)
	Expect(target.Start()).To(Succeed())

	svc, err := service.NewIssueService(target.GitHub(), cfg.Workers)
	Expect(err).NotTo(HaveOccurred())
	issues = svc
})

var _ = AfterSuite(func() {
	if issues != nil && !cfg.KeepIssues {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		Expect(issues.Cleanup(ctx)).To(Succeed())
	}
	Expect(target.Stop()).To(Succeed())
})
