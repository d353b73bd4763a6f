// Package cmd contains the CLI command for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

// fetcherFactory builds the Fetcher once the logger is configured.
type fetcherFactory func(logger *zap.Logger) gateway.Fetcher

// newGitHubFetcher builds the Fetcher backed by the public GitHub API.
func newGitHubFetcher(logger *zap.Logger) gateway.Fetcher {
	return gateway.NewGitHubGateway(gateway.DefaultUserAgent, logger)
}

// usageError marks errors caused by how the command was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exactlyOneUsername accepts a single, non-blank positional argument.
func exactlyOneUsername(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return &usageError{err: err}
	}
	if strings.TrimSpace(args[0]) == "" {
		return &usageError{err: errors.New("username must not be empty")}
	}
	return nil
}

// newRootCmd builds the root command writing to stdout and stderr.
func newRootCmd(stdout, stderr io.Writer, newFetcher fetcherFactory) *cobra.Command {
	var (
		verbose    bool
		jsonOutput bool
	)

	rootCmd := &cobra.Command{
		Use:   "github-activity <username>",
		Short: "Summarizes a GitHub user's recent public activity.",
		Long: `github-activity fetches the public event feed of a GitHub user and prints
one line per push, opened issue and starred repository, newest first.`,
		Args:          exactlyOneUsername,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, verbose)
			defer func() { _ = logger.Sync() }()

			reporter := usecase.NewReporter(newFetcher(logger), logger)
			username := strings.TrimSpace(args[0])

			if jsonOutput {
				return printActivitiesJSON(cmd.OutOrStdout(), reporter.Activities(cmd.Context(), username))
			}
			printLines(cmd.OutOrStdout(), reporter.Lines(cmd.Context(), username))
			return nil
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the activity as JSON")
	return rootCmd
}

// execute runs the command with args and returns the process exit status.
func execute(args []string, stdout, stderr io.Writer, newFetcher fetcherFactory) int {
	rootCmd := newRootCmd(stdout, stderr, newFetcher)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprint(stdout, rootCmd.UsageString())
	}
	return 1
}

// Execute runs the root command against the real GitHub API.
// This is called by main.main(). It exits the process with status 1 on failure.
func Execute() {
	if code := execute(os.Args[1:], os.Stdout, os.Stderr, newGitHubFetcher); code != 0 {
		os.Exit(code)
	}
}
