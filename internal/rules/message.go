package rules

import (
	"fmt"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/width"
)

const messageLineMaxWidth = 72

// messagePresenceMinLength is the minimum grapheme-cluster width the body
// must reach (trailer lines excluded) before MessagePresence stops firing.
// Open Question in the source spec; fixed here as a compile-time constant
// rather than a configurable threshold, consistent with the no-per-project-
// config decision.
const messagePresenceMinLength = 10

// --- MessageEmptyFirstLine ---

type messageEmptyFirstLineRule struct{}

func NewMessageEmptyFirstLineRule() CommitRule { return messageEmptyFirstLineRule{} }

func (messageEmptyFirstLineRule) Name() issue.Rule { return RuleMessageEmptyFirstLine }

func (messageEmptyFirstLineRule) Check(c *commitmodel.Commit) []issue.Issue {
	if len(c.BodyLines) == 0 {
		return nil
	}

	if !c.MessageHadNoBlankAfterSubject {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleMessageEmptyFirstLine,
		Severity: issue.Error,
		Message:  "No blank line found after the subject",
		Context: []issue.ContextLine{
			issue.NewUnderline(issue.Message, 1, c.BodyLines[0], 0, len(c.BodyLines[0]), "expected a blank line before this"),
		},
	}}
}

// --- MessagePresence ---

type messagePresenceRule struct{}

func NewMessagePresenceRule() CommitRule { return messagePresenceRule{} }

func (messagePresenceRule) Name() issue.Rule { return RuleMessagePresence }

func (messagePresenceRule) Check(c *commitmodel.Commit) []issue.Issue {
	total := 0

	for i, line := range c.BodyLines {
		if c.IsTrailerLine(i + 1) {
			continue
		}

		total += width.StringWidth(line)
	}

	if total >= messagePresenceMinLength {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleMessagePresence,
		Severity: issue.Error,
		Message:  "Message body is missing or too short, explain the why behind the change",
		Context:  []issue.ContextLine{placeholderSubjectContext("add a message body")},
	}}
}

// --- MessageLineLength ---

type messageLineLengthRule struct{}

func NewMessageLineLengthRule() CommitRule { return messageLineLengthRule{} }

func (messageLineLengthRule) Name() issue.Rule { return RuleMessageLineLength }

func (messageLineLengthRule) Check(c *commitmodel.Commit) []issue.Issue {
	var issues []issue.Issue

	for i, line := range c.BodyLines {
		lineNo := i + 1

		if c.IsTrailerLine(lineNo) {
			continue
		}

		if isURLOnlyLine(line) {
			continue
		}

		w := width.StringWidth(line)
		if w <= messageLineMaxWidth {
			continue
		}

		issues = append(issues, issue.Issue{
			Rule:     RuleMessageLineLength,
			Severity: issue.Error,
			Message:  fmt.Sprintf("Body line is too long (%d characters)", w),
			Context: []issue.ContextLine{
				issue.NewUnderline(issue.Message, lineNo, line, 0, len(line), "too long"),
			},
		})
	}

	return issues
}

func isURLOnlyLine(line string) bool {
	trimmed := trimSpaceASCII(line)

	return urlWholeLineRegex.MatchString(trimmed)
}

// --- MessageTicketNumber ---

type messageTicketNumberRule struct{}

func NewMessageTicketNumberRule() CommitRule { return messageTicketNumberRule{} }

func (messageTicketNumberRule) Name() issue.Rule { return RuleMessageTicketNumber }

func (messageTicketNumberRule) Check(c *commitmodel.Commit) []issue.Issue {
	for _, line := range c.BodyLines {
		if HasTicketReference(line) {
			return nil
		}
	}

	return []issue.Issue{{
		Rule:     RuleMessageTicketNumber,
		Severity: issue.Hint,
		Message:  "Message body does not reference a ticket/issue number",
		Context:  []issue.ContextLine{placeholderSubjectContext("add a ticket reference")},
	}}
}

// --- MessageSkipBuildTag ---

type messageSkipBuildTagRule struct{}

func NewMessageSkipBuildTagRule() CommitRule { return messageSkipBuildTagRule{} }

func (messageSkipBuildTagRule) Name() issue.Rule { return RuleMessageSkipBuildTag }

// Check fires (Hint) when every changed file is documentation/plain-text and
// the body does not already carry a skip-CI tag suggesting one be added.
func (messageSkipBuildTagRule) Check(c *commitmodel.Commit) []issue.Issue {
	if !onlyDocumentationFiles(c.FileChanges) {
		return nil
	}

	for _, line := range c.BodyLines {
		if _, _, ok := FindBuildTag(line); ok {
			return nil
		}
	}

	return []issue.Issue{{
		Rule:     RuleMessageSkipBuildTag,
		Severity: issue.Hint,
		Message:  "Commit only touches documentation, consider adding a skip-CI build tag",
		Context:  []issue.ContextLine{placeholderSubjectContext("add a skip-CI tag")},
	}}
}

// --- MessageTrailerLine ---

// MessageTrailerLine flags a trailer-shaped line (`Key: value`) appearing
// outside the detected trailing trailer block, a common mistake when a
// trailer is pasted mid-body instead of at the tail.
type messageTrailerLineRule struct{}

func NewMessageTrailerLineRule() CommitRule { return messageTrailerLineRule{} }

func (messageTrailerLineRule) Name() issue.Rule { return RuleMessageTrailerLine }

func (messageTrailerLineRule) Check(c *commitmodel.Commit) []issue.Issue {
	var issues []issue.Issue

	for i, line := range c.BodyLines {
		lineNo := i + 1

		if c.IsTrailerLine(lineNo) {
			continue
		}

		key, ok := looksLikeTrailerKey(line)
		if !ok {
			continue
		}

		issues = append(issues, issue.Issue{
			Rule:     RuleMessageTrailerLine,
			Severity: issue.Error,
			Message:  fmt.Sprintf("'%s:' looks like a trailer but is not at the end of the message", key),
			Context: []issue.ContextLine{
				issue.NewUnderline(issue.Message, lineNo, line, 0, len(line), "misplaced trailer"),
			},
		})
	}

	return issues
}
