package rules

import (
	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
)

// --- RebaseCommit ---

// RebaseCommit fires on fixup!/squash!/amend! commits left in a branch that
// should have been rebased away before merging. When it fires, the engine
// returns early and runs no other rule on this commit.
type rebaseCommitRule struct{}

func NewRebaseCommitRule() CommitRule { return rebaseCommitRule{} }

func (rebaseCommitRule) Name() issue.Rule { return RuleRebaseCommit }

func (rebaseCommitRule) Check(c *commitmodel.Commit) []issue.Issue {
	if !c.IsRebaseCommit() {
		return nil
	}

	kind := "fixup"

	switch {
	case c.IsSquash:
		kind = "squash"
	case c.IsAmend:
		kind = "amend"
	}

	return []issue.Issue{{
		Rule:     RuleRebaseCommit,
		Severity: issue.Error,
		Message:  "Commit needs to be rebased, it's a " + kind + "! commit",
		Context: []issue.ContextLine{
			issue.NewUnderline(issue.Subject, 1, c.Subject, 0, len(c.Subject), "rebase this away"),
		},
	}}
}

// --- MergeCommit ---

// MergeCommit fires on a non-PR/MR merge commit (a `git merge` of a remote
// or remote-tracking branch). PR/MR merge commits and reverts are
// classified as Ignored upstream and the engine runs no rule on them.
type mergeCommitRule struct{}

func NewMergeCommitRule() CommitRule { return mergeCommitRule{} }

func (mergeCommitRule) Name() issue.Rule { return RuleMergeCommit }

func (mergeCommitRule) Check(c *commitmodel.Commit) []issue.Issue {
	if !c.IsMergeCommit {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleMergeCommit,
		Severity: issue.Error,
		Message:  "Commit is a merge commit",
		Context: []issue.ContextLine{
			issue.NewUnderline(issue.Subject, 1, c.Subject, 0, len(c.Subject), "rebase instead of merging"),
		},
	}}
}
