// Package main provides the CLI entry point for lintje.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-skalski/lintje/internal/cleanup"
	"github.com/smykla-skalski/lintje/internal/commitparse"
	"github.com/smykla-skalski/lintje/internal/engine"
	"github.com/smykla-skalski/lintje/internal/gitcollab"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/logger"
	"github.com/smykla-skalski/lintje/internal/report"
)

// Exit codes per the CLI contract: 0 clean, 1 lint errors found, 2
// internal/Git failure.
const (
	ExitCodeSuccess = 0
	ExitCodeIssues  = 1
	ExitCodeFailure = 2
)

var (
	hookMessageFile string
	noHints         bool
	noBranch        bool
	noColor         bool
	debugMode       bool

	exitCode int
)

func main() {
	os.Exit(run())
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "lintje: internal error: %v\n", r)

			code = ExitCodeFailure
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lintje: %v\n", err)

		return ExitCodeFailure
	}

	return exitCode
}

var rootCmd = &cobra.Command{
	Use:   "lintje [revision-range]",
	Short: "Lint commit messages and the current branch name",
	Long: `lintje checks commit messages and the current branch name against a fixed
set of rules: subject formatting, message body quality, ticket references,
rebase hygiene and branch naming.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.Flags().StringVar(&hookMessageFile, "hook-message-file", "", "lint a single commit-msg hook file instead of a revision range")
	rootCmd.Flags().BoolVar(&noHints, "no-hints", false, "suppress hint-severity findings")
	rootCmd.Flags().BoolVar(&noBranch, "no-branch", false, "skip branch-name rules")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "enable debug logging to stderr")
}

func runLint(cmd *cobra.Command, args []string) error {
	ctx := logger.WithContext(context.Background(), logger.NewStderrLogger(debugMode))
	log := logger.FromContext(ctx)

	rep, err := lint(ctx, args)
	if err != nil {
		exitCode = ExitCodeFailure

		return err
	}

	if noHints {
		rep = withoutHints(rep)
	}

	renderer := report.NewRenderer(!noColor)
	renderer.Render(os.Stdout, rep)

	log.Debug("lint complete", "errors", rep.Errors, "hints", rep.Hints)

	if rep.HasErrors() {
		exitCode = ExitCodeIssues
	}

	return nil
}

func lint(ctx context.Context, args []string) (*report.ValidationReport, error) {
	collab, err := gitcollab.Discover()
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover repository")
	}

	eng := engine.New(engine.WithChangesetConvention(collab.HasChangesetConvention()))

	if hookMessageFile != "" {
		return lintHookMessage(eng)
	}

	revisionRange := ""
	if len(args) > 0 {
		revisionRange = args[0]
	}

	cfg, err := collab.ReadCleanupConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cleanup config")
	}

	commits, err := collab.CommitsInRange(revisionRange, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list commits")
	}

	results, err := eng.LintRange(ctx, commits)
	if err != nil {
		return nil, errors.Wrap(err, "failed to lint commits")
	}

	var branchIssues []issue.Issue

	branchChecked := false

	if !noBranch {
		if branch, err := collab.CurrentBranch(); err == nil {
			branchIssues = eng.LintBranch(branch)
			branchChecked = true
		}
	}

	return report.Build(results, branchIssues, branchChecked), nil
}

func lintHookMessage(eng *engine.Engine) (*report.ValidationReport, error) {
	raw, err := os.ReadFile(hookMessageFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read hook message file")
	}

	cleaned := cleanup.Apply(string(raw), cleanup.Strip, cleanup.DefaultCommentChar)

	commit := commitparse.Parse(commitparse.Input{
		Message:    cleaned,
		HasChanges: true,
	})

	results := []engine.CommitResult{{Commit: commit, Issues: eng.LintCommit(commit)}}

	return report.Build(results, nil, false), nil
}

// withoutHints returns a copy of rep with every Hint-severity issue
// removed; totals are recomputed so the summary line stays consistent.
func withoutHints(rep *report.ValidationReport) *report.ValidationReport {
	commitResults := make([]engine.CommitResult, len(rep.CommitResults))

	for i, cr := range rep.CommitResults {
		commitResults[i] = engine.CommitResult{Commit: cr.Commit, Issues: errorsOnly(cr.Issues)}
	}

	return report.Build(commitResults, errorsOnly(rep.BranchIssues), rep.BranchChecked)
}

func errorsOnly(issues []issue.Issue) []issue.Issue {
	out := make([]issue.Issue, 0, len(issues))

	for _, iss := range issues {
		if iss.Severity == issue.Error {
			out = append(out, iss)
		}
	}

	return out
}
