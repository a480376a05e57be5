package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ghqa/issues-qa/internal/models"
	"github.com/ghqa/issues-qa/pkg/github"
	"github.com/ghqa/issues-qa/pkg/scheduler"
)

func newIssueCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "List, read, create and change the state of issues",
	}

	cmd.AddCommand(
		newIssueListCommand(root),
		newIssueGetCommand(root),
		newIssueCreateCommand(root),
		newIssueStateCommand(root, "close", models.IssueStateClosed),
		newIssueStateCommand(root, "reopen", models.IssueStateOpen),
	)
	return cmd
}

func (o *rootOptions) client() (*github.Client, error) {
	return github.NewClient(o.cfg.GitHub)
}

func newIssueListCommand(root *rootOptions) *cobra.Command {
	var opts github.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues of the repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := root.client()
			if err != nil {
				return err
			}
			issues, err := client.ListIssues(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printIssues(cmd.OutOrStdout(), issues)
		},
	}

	cmd.Flags().StringVar(&opts.State, "state", "open", "Issue state (open, closed, all)")
	cmd.Flags().StringSliceVarP(&opts.Labels, "label", "l", nil, "Only issues carrying every label")
	cmd.Flags().IntVar(&opts.PerPage, "per-page", 30, "Page size")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page number")
	return cmd
}

func newIssueGetCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get NUMBER",
		Short: "Show one issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parseNumber(args[0])
			if err != nil {
				return err
			}
			client, err := root.client()
			if err != nil {
				return err
			}
			issue, err := client.GetIssue(cmd.Context(), number)
			if err != nil {
				return err
			}
			return printIssue(cmd.OutOrStdout(), issue)
		},
	}
}

func newIssueCreateCommand(root *rootOptions) *cobra.Command {
	var (
		title     string
		body      string
		assignees []string
		labels    []string
		milestone int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an issue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []models.IssueRequestOption{models.WithLabels(labels...), models.WithAssignees(assignees...)}
			if cmd.Flags().Changed("milestone") {
				opts = append(opts, models.WithMilestone(milestone))
			}

			client, err := root.client()
			if err != nil {
				return err
			}
			issue, err := client.CreateIssue(cmd.Context(), models.NewIssueRequest(title, body, opts...))
			if err != nil {
				return err
			}
			return printIssue(cmd.OutOrStdout(), issue)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Issue title")
	cmd.Flags().StringVarP(&body, "body", "b", "", "Issue body")
	cmd.Flags().StringSliceVarP(&assignees, "assignee", "a", nil, "Logins to assign")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "Labels to add")
	cmd.Flags().IntVar(&milestone, "milestone", 0, "Milestone number")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// newIssueStateCommand changes the state of every listed issue, at most
// --workers at a time.
func newIssueStateCommand(root *rootOptions, verb string, state models.IssueState) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " NUMBER...",
		Short: fmt.Sprintf("Set issues to %s", state),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers := make([]int, 0, len(args))
			for _, a := range args {
				n, err := parseNumber(a)
				if err != nil {
					return err
				}
				numbers = append(numbers, n)
			}

			client, err := root.client()
			if err != nil {
				return err
			}

			s := scheduler.New(root.cfg.Workers)
			defer s.Close()

			works := make([]scheduler.Work[*models.Issue], 0, len(numbers))
			for _, n := range numbers {
				works = append(works, func(ctx context.Context) (*models.Issue, error) {
					return client.UpdateIssue(ctx, n, models.StateUpdate(state))
				})
			}

			issues, err := scheduler.Run(cmd.Context(), s, works...)
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", issue.Number, stateLabel(issue.State))
			}
			return err
		},
	}
}

func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid issue number %q", s)
	}
	return n, nil
}

var (
	openColor   = color.New(color.FgGreen).SprintFunc()
	closedColor = color.New(color.FgMagenta).SprintFunc()
)

func stateLabel(state models.IssueState) string {
	if state == models.IssueStateClosed {
		return closedColor(string(state))
	}
	return openColor(string(state))
}

func printIssues(w io.Writer, issues []models.Issue) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, issue := range issues {
		fmt.Fprintf(tw, "#%d\t%s\t%s\n", issue.Number, stateLabel(issue.State), issue.Title)
	}
	return tw.Flush()
}

func printIssue(w io.Writer, issue *models.Issue) error {
	author := ""
	if issue.User != nil {
		author = issue.User.Login
	}
	_, err := fmt.Fprintf(w, "#%d %s [%s]\nauthor: %s\nurl: %s\n\n%s\n",
		issue.Number, issue.Title, stateLabel(issue.State), author, issue.HTMLURL, issue.Body)
	return err
}
