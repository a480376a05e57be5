package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ghqa/issues-qa/pkg/github/githubmock"
)

func newMockCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Offline issues API",
	}
	cmd.AddCommand(newMockServeCommand(root))
	return cmd
}

func newMockServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock issues API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := root.cfg
			if cmd.Flags().Changed("addr") {
				cfg.Mock.Addr = addr
			}

			srv := githubmock.New(cfg.GitHub.Owner, cfg.GitHub.Repo, githubmock.WithCollaborators(cfg.Mock.Collaborators...))
			if err := srv.Start(cfg.Mock.Addr); err != nil {
				return err
			}
			defer srv.Stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "api: %s/repos/%s/%s/issues\n", srv.URL(), srv.Owner(), srv.Repo())
			for _, login := range append([]string{cfg.GitHub.Owner}, cfg.Mock.Collaborators...) {
				token, err := srv.IssueToken(login)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "token %s: %s\n", login, token)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config mock.addr)")
	return cmd
}
