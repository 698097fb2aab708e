// Package commitparse builds a commitmodel.Commit from raw commit headers
// and cleaned message text: subject/body splitting, trailer extraction,
// lintje:disable scanning, and the ignored-commit classification (bot
// authors, PR/MR merges, reverts, squash-from-PR merges).
package commitparse

import (
	"regexp"
	"strings"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/ignoredirective"
)

// Input is the sidecar metadata the git collaborator supplies alongside a
// cleaned message.
type Input struct {
	LongSHA     string
	ShortSHA    string
	Email       string
	Message     string // cleaned subject+body text, no trailing newline required
	FileChanges []string
	HasChanges  bool
	// IsMergeCommitByParents is set by the collaborator when a commit has
	// more than one parent. Parse does not read it: Commit.IsMergeCommit
	// is decided from the subject line alone.
	IsMergeCommitByParents bool
}

// botEmailSuffixes are author-email suffixes that mark an automated commit
// (renovate/dependabot/GitHub Actions bots) as wholesale ignored.
var botEmailSuffixes = []string{
	"bot@users.noreply.github.com",
	"@dependabot.com",
	"@renovatebot.com",
	"[bot]@users.noreply.github.com",
}

var (
	prMergeRegex = regexp.MustCompile(
		`^Merge pull request #\d+ from `,
	)
	mrMergeRegex = regexp.MustCompile(
		`^Merge branch '[^']+' of https?://`,
	)
	revertRegex = regexp.MustCompile(`^Revert "`)
	// squashTitleRegex matches GitHub's squash-merge subject convention:
	// "Some title (#123)".
	squashTitleRegex = regexp.MustCompile(`^.+ \(#\d+\)$`)
	squashBulletLine = regexp.MustCompile(`^\s*\*\s+`)

	remoteMergeRegex = regexp.MustCompile(`^Merge branch '[^']+' of `)
	remoteTrackRegex = regexp.MustCompile(`^Merge remote-tracking branch `)

	trailerLineRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*:\s.+$`)
)

// Parse builds a Commit from the cleaned message text and sidecar input.
func Parse(in Input) *commitmodel.Commit {
	subject, bodyLines, hadNoBlank := splitSubjectBody(in.Message)

	c := &commitmodel.Commit{
		LongSHA:     in.LongSHA,
		ShortSHA:    in.ShortSHA,
		Email:       in.Email,
		Subject:     subject,
		FileChanges: in.FileChanges,
		HasChanges:  in.HasChanges,

		MessageHadNoBlankAfterSubject: hadNoBlank,
	}

	c.IsFixup = strings.HasPrefix(subject, "fixup! ")
	c.IsSquash = strings.HasPrefix(subject, "squash! ")
	c.IsAmend = strings.HasPrefix(subject, "amend! ")

	c.IsMergeCommit = !isPRorMRMerge(subject) &&
		(remoteMergeRegex.MatchString(subject) || remoteTrackRegex.MatchString(subject))

	c.Ignored = classifyIgnored(subject, in.Email, bodyLines)

	trailers, trailerLineSet := extractTrailers(bodyLines)
	c.Trailers = trailers
	c.TrailerLines = trailerLineSet
	c.BodyLines = bodyLines
	c.Message = strings.Join(bodyLines, "\n")

	ignoreScanLines := make([]string, 0, len(bodyLines))

	for i, line := range bodyLines {
		if trailerLineSet[i+1] {
			continue
		}

		ignoreScanLines = append(ignoreScanLines, line)
	}

	disabled := ignoredirective.Scan(ignoreScanLines)
	if len(disabled) > 0 {
		c.IgnoredRules = disabled
	}

	return c
}

// splitSubjectBody returns the subject, the body as individual lines
// (1-based line 1 is the first body line, the blank separator already
// consumed), and whether the message lacked a blank line after the
// subject.
func splitSubjectBody(message string) (subject string, body []string, hadNoBlank bool) {
	lines := strings.Split(message, "\n")

	idx := 0
	for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}

	if idx >= len(lines) {
		return "", nil, false
	}

	subject = lines[idx]
	rest := lines[idx+1:]

	if len(rest) == 0 {
		return subject, nil, false
	}

	if strings.TrimSpace(rest[0]) == "" {
		return subject, rest[1:], false
	}

	return subject, rest, true
}

func isPRorMRMerge(subject string) bool {
	return prMergeRegex.MatchString(subject) || mrMergeRegex.MatchString(subject)
}

func isBotEmail(email string) bool {
	for _, suffix := range botEmailSuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}

	return false
}

func isSquashFromPR(subject string, bodyLines []string) bool {
	if !squashTitleRegex.MatchString(subject) {
		return false
	}

	for _, line := range bodyLines {
		if squashBulletLine.MatchString(line) {
			return true
		}
	}

	return false
}

func classifyIgnored(subject, email string, bodyLines []string) bool {
	if isBotEmail(email) {
		return true
	}

	if isPRorMRMerge(subject) {
		return true
	}

	if revertRegex.MatchString(subject) {
		return true
	}

	if isSquashFromPR(subject, bodyLines) {
		return true
	}

	return false
}

// extractTrailers walks backwards from the end of bodyLines, collecting a
// contiguous block of `Key: value` lines, stopping when a non-trailer or
// blank line is reached. The block only counts as trailers when it is
// preceded by a blank line or the start of the body. Returns the detected
// trailers (in source order) and the set of 1-based line numbers the
// trailer block occupies.
func extractTrailers(bodyLines []string) ([]commitmodel.Trailer, map[int]bool) {
	if len(bodyLines) == 0 {
		return nil, nil
	}

	end := len(bodyLines)
	for end > 0 && strings.TrimSpace(bodyLines[end-1]) == "" {
		end--
	}

	start := end

	for start > 0 {
		line := bodyLines[start-1]
		if strings.TrimSpace(line) == "" {
			break
		}

		if !trailerLineRegex.MatchString(line) {
			break
		}

		start--
	}

	if start == end {
		return nil, nil
	}

	// Require a blank line (or body start) immediately before the block.
	if start > 0 && strings.TrimSpace(bodyLines[start-1]) != "" {
		return nil, nil
	}

	trailers := make([]commitmodel.Trailer, 0, end-start)
	lineSet := make(map[int]bool, end-start)

	for i := start; i < end; i++ {
		key, value := splitTrailerLine(bodyLines[i])
		trailers = append(trailers, commitmodel.Trailer{
			Key:        key,
			Value:      value,
			LineNumber: i + 1,
		})
		lineSet[i+1] = true
	}

	return trailers, lineSet
}

func splitTrailerLine(line string) (key, value string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return line, ""
	}

	return line[:idx], strings.TrimSpace(line[idx+1:])
}
