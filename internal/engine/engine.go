// Package engine runs the rule catalogue against parsed commits and
// branches: fixed registration order, the fired-rule skip matrix, and
// lintje:disable suppression. Rules themselves are pure and side-effect
// free, so a commit range is linted concurrently via errgroup.
package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/rules"
)

// skipMatrix maps a fired rule to the rules it suppresses on the same
// commit, because the fired rule already explains the same defect more
// specifically.
var skipMatrix = map[issue.Rule][]issue.Rule{
	rules.RuleSubjectCliche:       {rules.RuleSubjectLength, rules.RuleSubjectCapitalization},
	rules.RuleSubjectPrefix:       {rules.RuleSubjectCapitalization},
	rules.RuleSubjectTicketNumber: {rules.RuleMessageTicketNumber},
	rules.RuleSubjectBuildTag:     {rules.RuleMessageSkipBuildTag},
}

// Engine evaluates the full rule catalogue against commits and branches.
type Engine struct {
	rebase rules.CommitRule
	merge  rules.CommitRule

	commitRules []rules.CommitRule
	branchRules []rules.BranchRule
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithChangesetConvention tells DiffChangeset the repository uses a
// changeset-fragment convention (detected once per run by the git
// collaborator), so commits that touch code without adding a fragment are
// flagged.
func WithChangesetConvention(enabled bool) Option {
	return func(e *Engine) {
		e.commitRules = append(e.commitRules, rules.NewDiffChangesetRule(enabled))
	}
}

// New builds an Engine with the full rule catalogue in its fixed
// registration order: rebase/merge short-circuits, then subject, message
// and diff rules.
func New(opts ...Option) *Engine {
	e := &Engine{
		rebase: rules.NewRebaseCommitRule(),
		merge:  rules.NewMergeCommitRule(),
		commitRules: []rules.CommitRule{
			rules.NewSubjectLengthRule(),
			rules.NewSubjectMoodRule(),
			rules.NewSubjectWhitespaceRule(),
			rules.NewSubjectCapitalizationRule(),
			rules.NewSubjectPunctuationRule(),
			rules.NewSubjectTicketNumberRule(),
			rules.NewSubjectPrefixRule(),
			rules.NewSubjectBuildTagRule(),
			rules.NewSubjectClicheRule(),
			rules.NewMessageEmptyFirstLineRule(),
			rules.NewMessagePresenceRule(),
			rules.NewMessageLineLengthRule(),
			rules.NewMessageTicketNumberRule(),
			rules.NewMessageSkipBuildTagRule(),
			rules.NewMessageTrailerLineRule(),
			rules.NewDiffPresenceRule(),
		},
		branchRules: []rules.BranchRule{
			rules.NewBranchNameLengthRule(),
			rules.NewBranchNameTicketNumberRule(),
			rules.NewBranchNamePunctuationRule(),
			rules.NewBranchNameClicheRule(),
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// LintCommit runs the full catalogue against a single commit. Ignored
// commits (bot authors, PR/MR merges, reverts, squash-from-PR) always
// produce zero issues. A fired RebaseCommit or MergeCommit short-circuits
// every other rule.
func (e *Engine) LintCommit(c *commitmodel.Commit) []issue.Issue {
	if c.Ignored {
		return nil
	}

	if found := e.rebase.Check(c); len(found) > 0 {
		return filterDisabled(c, found)
	}

	if found := e.merge.Check(c); len(found) > 0 {
		return filterDisabled(c, found)
	}

	fired := make(map[issue.Rule]bool)

	var all []issue.Issue

	for _, r := range e.commitRules {
		found := r.Check(c)
		if len(found) == 0 {
			continue
		}

		fired[r.Name()] = true
		all = append(all, found...)
	}

	suppressed := make(map[issue.Rule]bool)

	for firedRule := range fired {
		for _, s := range skipMatrix[firedRule] {
			suppressed[s] = true
		}
	}

	kept := make([]issue.Issue, 0, len(all))

	for _, iss := range all {
		if suppressed[iss.Rule] {
			continue
		}

		kept = append(kept, iss)
	}

	return filterDisabled(c, kept)
}

func filterDisabled(c *commitmodel.Commit, issues []issue.Issue) []issue.Issue {
	if len(issues) == 0 {
		return nil
	}

	out := make([]issue.Issue, 0, len(issues))

	for _, iss := range issues {
		if c.RuleDisabled(string(iss.Rule)) {
			continue
		}

		out = append(out, iss)
	}

	return out
}

// LintBranch runs the branch-name rule catalogue against the currently
// checked-out branch. A detached HEAD or a default branch name (main,
// master, ...) always produces zero issues.
func (e *Engine) LintBranch(b *commitmodel.Branch) []issue.Issue {
	var all []issue.Issue

	for _, r := range e.branchRules {
		all = append(all, r.Check(b)...)
	}

	return all
}

// CommitResult pairs a commit with the issues found for it.
type CommitResult struct {
	Commit *commitmodel.Commit
	Issues []issue.Issue
}

// LintRange lints every commit concurrently; rule evaluation is pure, so
// ordering commits back into results[i] by index keeps output
// deterministic regardless of goroutine completion order.
func (e *Engine) LintRange(ctx context.Context, commits []*commitmodel.Commit) ([]CommitResult, error) {
	results := make([]CommitResult, len(commits))

	g, _ := errgroup.WithContext(ctx)

	for i, c := range commits {
		i, c := i, c

		g.Go(func() error {
			results[i] = CommitResult{Commit: c, Issues: e.LintCommit(c)}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
