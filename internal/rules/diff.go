package rules

import (
	"path"
	"strings"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
)

// --- DiffPresence ---

type diffPresenceRule struct{}

func NewDiffPresenceRule() CommitRule { return diffPresenceRule{} }

func (diffPresenceRule) Name() issue.Rule { return RuleDiffPresence }

func (diffPresenceRule) Check(c *commitmodel.Commit) []issue.Issue {
	if c.HasChanges {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleDiffPresence,
		Severity: issue.Error,
		Message:  "Commit has no changes, it's empty",
		Context:  []issue.ContextLine{placeholderSubjectContext("empty diff")},
	}}
}

// --- DiffChangeset ---

// changesetDirs are the closed set of directory names a changeset-file
// convention (changesets/changie-style release-note fragments) is
// recognised under.
var changesetDirs = []string{".changeset", ".changesets"}

// changesetFileExt is the file extension changeset fragments use.
const changesetFileExt = ".md"

type diffChangesetRule struct {
	// requireChangeset is supplied by the collaborator: true when the
	// repository root has one of changesetDirs, meaning contributors are
	// expected to add a fragment file with every user-facing change.
	requireChangeset bool
}

// NewDiffChangesetRule builds the DiffChangeset rule. requireChangeset
// should be true only when the repository actually uses a changeset-file
// convention (the git collaborator detects this once per run).
func NewDiffChangesetRule(requireChangeset bool) CommitRule {
	return diffChangesetRule{requireChangeset: requireChangeset}
}

func (diffChangesetRule) Name() issue.Rule { return RuleDiffChangeset }

func (r diffChangesetRule) Check(c *commitmodel.Commit) []issue.Issue {
	if !r.requireChangeset {
		return nil
	}

	if !c.HasChanges {
		return nil
	}

	if onlyDocumentationFiles(c.FileChanges) {
		return nil
	}

	if hasChangesetFragment(c.FileChanges) {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleDiffChangeset,
		Severity: issue.Hint,
		Message:  "Commit changes code but adds no changeset fragment",
		Context:  []issue.ContextLine{placeholderSubjectContext("add a changeset file")},
	}}
}

func hasChangesetFragment(files []string) bool {
	for _, f := range files {
		dir := path.Dir(f)

		for _, cd := range changesetDirs {
			if dir == cd || strings.HasPrefix(dir, cd+"/") {
				if strings.HasSuffix(f, changesetFileExt) {
					return true
				}
			}
		}
	}

	return false
}

// documentationBaseNames are recognised as documentation regardless of
// extension (README, LICENSE, ...), matched case-insensitively against the
// file's base name with its extension stripped.
var documentationBaseNames = map[string]bool{
	"readme": true, "license": true, "code_of_conduct": true, "changelog": true,
}

// onlyDocumentationFiles reports whether every changed file is
// documentation/plain-text (README, LICENSE, CODE_OF_CONDUCT, CHANGELOG,
// `.md`, `.mdx`, `.txt`). DiffChangeset uses it to exempt doc-only commits;
// MessageSkipBuildTag fires only for them.
func onlyDocumentationFiles(files []string) bool {
	if len(files) == 0 {
		return false
	}

	for _, f := range files {
		if !isDocumentationFile(f) {
			return false
		}
	}

	return true
}

func isDocumentationFile(f string) bool {
	ext := path.Ext(f)
	if ext == ".md" || ext == ".mdx" || ext == ".txt" {
		return true
	}

	base := strings.TrimSuffix(path.Base(f), ext)

	return documentationBaseNames[strings.ToLower(base)]
}
