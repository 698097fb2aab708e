// Package gitcollab is the SDK-based collaborator that supplies commits,
// branch state and relevant config to the rule engine using go-git v6,
// mirroring the discovery/options pattern the rest of the ecosystem uses
// for repository access.
package gitcollab

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/smykla-skalski/lintje/internal/cleanup"
	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/commitparse"
)

// ErrNotRepository is returned when the current directory is not inside a
// git repository.
var ErrNotRepository = errors.New("not a git repository")

// ErrNoHead is returned when HEAD cannot be resolved (unborn branch).
var ErrNoHead = errors.New("repository has no HEAD")

// gitEnvVarsToUnset clears environment variables that corrupt go-git's view
// of the index when lintje runs as a commit-msg hook and inherits
// GIT_INDEX_FILE from the parent git process.
var gitEnvVarsToUnset = []string{"GIT_INDEX_FILE"}

func init() {
	for _, v := range gitEnvVarsToUnset {
		_ = os.Unsetenv(v)
	}
}

// Collaborator discovers the repository once and serves commits, branch
// state and config off of it.
type Collaborator struct {
	repo *git.Repository
}

// Discover opens the repository containing the current working directory.
func Discover() (*Collaborator, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotRepository
		}

		return nil, errors.Wrap(err, "failed to open repository")
	}

	return &Collaborator{repo: repo}, nil
}

// CleanupConfig is the subset of git config the cleanup package needs.
type CleanupConfig struct {
	Mode        cleanup.Mode
	CommentChar byte
}

// ReadCleanupConfig reads commit.cleanup and core.commentChar, falling back
// to git's own defaults (strip when no editor-driven message, "#").
func (c *Collaborator) ReadCleanupConfig() (CleanupConfig, error) {
	cfg, err := c.repo.Config()
	if err != nil {
		return CleanupConfig{}, errors.Wrap(err, "failed to read config")
	}

	mode := cleanup.Strip

	if raw := cfg.Raw.Section("commit").Option("cleanup"); raw != "" {
		mode = cleanup.ParseMode(raw)
	}

	commentChar := cleanup.DefaultCommentChar

	if raw := cfg.Raw.Section("core").Option("commentChar"); raw != "" && raw != "#" {
		commentChar = raw[0]
	}

	return CleanupConfig{Mode: mode, CommentChar: commentChar}, nil
}

// HasChangesetConvention reports whether the repository's worktree root
// contains a changeset-fragment directory (.changeset or .changesets), the
// signal DiffChangeset needs to turn itself on.
func (c *Collaborator) HasChangesetConvention() bool {
	wt, err := c.repo.Worktree()
	if err != nil {
		return false
	}

	for _, dir := range []string{".changeset", ".changesets"} {
		if info, statErr := wt.Filesystem.Stat(dir); statErr == nil && info.IsDir() {
			return true
		}
	}

	return false
}

// CurrentBranch returns the checked-out branch, or IsDetached=true when
// HEAD points directly at a commit.
func (c *Collaborator) CurrentBranch() (*commitmodel.Branch, error) {
	head, err := c.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoHead
		}

		return nil, errors.Wrap(err, "failed to resolve HEAD")
	}

	if !head.Name().IsBranch() {
		return &commitmodel.Branch{IsDetached: true}, nil
	}

	return &commitmodel.Branch{Name: head.Name().Short()}, nil
}

// CommitsInRange lists the commits reachable from revisionRange (a
// `base..head`-style ref expression, or a single ref meaning "everything
// reachable from it"), oldest first, each parsed into a commitmodel.Commit.
func (c *Collaborator) CommitsInRange(revisionRange string, cfg CleanupConfig) ([]*commitmodel.Commit, error) {
	commits, err := c.logRange(revisionRange)
	if err != nil {
		return nil, err
	}

	result := make([]*commitmodel.Commit, 0, len(commits))

	for i := len(commits) - 1; i >= 0; i-- {
		result = append(result, c.parseCommit(commits[i], cfg))
	}

	return result, nil
}

func (c *Collaborator) logRange(revisionRange string) ([]*object.Commit, error) {
	fromHash, toHash, err := splitRange(c.repo, revisionRange)
	if err != nil {
		return nil, err
	}

	logOpts := &git.LogOptions{From: toHash}

	iter, err := c.repo.Log(logOpts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to walk commit log")
	}

	defer iter.Close()

	var commits []*object.Commit

	err = iter.ForEach(func(commit *object.Commit) error {
		if commit.Hash == fromHash {
			return storerErrStop
		}

		commits = append(commits, commit)

		return nil
	})
	if err != nil && !errors.Is(err, storerErrStop) {
		return nil, errors.Wrap(err, "failed to iterate commit log")
	}

	return commits, nil
}

// storerErrStop is a sentinel returned from ForEach callbacks to end
// iteration early without propagating a real error.
var storerErrStop = errors.New("stop iteration")

func (c *Collaborator) parseCommit(commit *object.Commit, cfg CleanupConfig) *commitmodel.Commit {
	cleaned := cleanup.Apply(commit.Message, cfg.Mode, cfg.CommentChar)

	files, hasChanges := c.changedFiles(commit)

	return commitparse.Parse(commitparse.Input{
		LongSHA:                commit.Hash.String(),
		ShortSHA:               commit.Hash.String()[:7],
		Email:                  commit.Author.Email,
		Message:                cleaned,
		FileChanges:            files,
		HasChanges:             hasChanges,
		IsMergeCommitByParents: commit.NumParents() > 1,
	})
}

// changedFiles diffs commit against its first parent (or against the empty
// tree for a root commit) to list touched paths.
func (c *Collaborator) changedFiles(commit *object.Commit) ([]string, bool) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, true
	}

	var parentTree *object.Tree

	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err == nil {
			parentTree, _ = parent.Tree()
		}
	}

	if parentTree == nil {
		parentTree = &object.Tree{}
	}

	changes, err := parentTree.Diff(tree)
	if err != nil {
		return nil, true
	}

	files := make([]string, 0, len(changes))

	for _, ch := range changes {
		if ch.To.Name != "" {
			files = append(files, ch.To.Name)
		} else {
			files = append(files, ch.From.Name)
		}
	}

	return files, len(files) > 0 || commit.NumParents() > 1
}

func splitRange(repo *git.Repository, revisionRange string) (from, to plumbing.Hash, err error) {
	for _, sep := range []string{"...", ".."} {
		if idx := indexOf(revisionRange, sep); idx >= 0 {
			fromRef := revisionRange[:idx]
			toRef := revisionRange[idx+len(sep):]

			fromHash, err := resolve(repo, fromRef)
			if err != nil {
				return plumbing.ZeroHash, plumbing.ZeroHash, err
			}

			toHash, err := resolve(repo, toRef)
			if err != nil {
				return plumbing.ZeroHash, plumbing.ZeroHash, err
			}

			return fromHash, toHash, nil
		}
	}

	toHash, err := resolve(repo, revisionRange)
	if err != nil {
		return plumbing.ZeroHash, plumbing.ZeroHash, err
	}

	return plumbing.ZeroHash, toHash, nil
}

func resolve(repo *git.Repository, ref string) (plumbing.Hash, error) {
	if ref == "" {
		head, err := repo.Head()
		if err != nil {
			return plumbing.ZeroHash, errors.Wrap(err, "failed to resolve HEAD")
		}

		return head.Hash(), nil
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, errors.Wrapf(err, "failed to resolve revision %q", ref)
	}

	return *hash, nil
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}

	return -1
}
