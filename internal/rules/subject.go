package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/width"
)

const (
	subjectMinWidth = 5
	subjectMaxWidth = 50
)

// CommitRule checks a single commit and returns zero or more issues.
type CommitRule interface {
	Name() issue.Rule
	Check(c *commitmodel.Commit) []issue.Issue
}

// Rule name constants, also the strings `lintje:disable` directives name.
const (
	RuleSubjectLength         issue.Rule = "SubjectLength"
	RuleSubjectMood           issue.Rule = "SubjectMood"
	RuleSubjectWhitespace     issue.Rule = "SubjectWhitespace"
	RuleSubjectCapitalization issue.Rule = "SubjectCapitalization"
	RuleSubjectPunctuation    issue.Rule = "SubjectPunctuation"
	RuleSubjectTicketNumber   issue.Rule = "SubjectTicketNumber"
	RuleSubjectPrefix         issue.Rule = "SubjectPrefix"
	RuleSubjectBuildTag       issue.Rule = "SubjectBuildTag"
	RuleSubjectCliche         issue.Rule = "SubjectCliche"

	RuleMessageEmptyFirstLine issue.Rule = "MessageEmptyFirstLine"
	RuleMessagePresence       issue.Rule = "MessagePresence"
	RuleMessageLineLength     issue.Rule = "MessageLineLength"
	RuleMessageTicketNumber   issue.Rule = "MessageTicketNumber"
	RuleMessageSkipBuildTag   issue.Rule = "MessageSkipBuildTag"
	RuleMessageTrailerLine    issue.Rule = "MessageTrailerLine"

	RuleDiffPresence   issue.Rule = "DiffPresence"
	RuleDiffChangeset  issue.Rule = "DiffChangeset"
	RuleRebaseCommit   issue.Rule = "RebaseCommit"
	RuleMergeCommit    issue.Rule = "MergeCommit"

	RuleBranchNameLength       issue.Rule = "BranchNameLength"
	RuleBranchNameTicketNumber issue.Rule = "BranchNameTicketNumber"
	RuleBranchNamePunctuation  issue.Rule = "BranchNamePunctuation"
	RuleBranchNameCliche       issue.Rule = "BranchNameCliche"
)

func subjectContext(subject string, start, end int, annotation string) issue.ContextLine {
	return issue.NewUnderline(issue.Subject, 1, subject, start, end, annotation)
}

func placeholderSubjectContext(annotation string) issue.ContextLine {
	const placeholder = "(empty subject)"

	return issue.NewUnderline(issue.Subject, 1, placeholder, 0, len(placeholder), annotation)
}

// --- SubjectLength ---

type subjectLengthRule struct{}

func NewSubjectLengthRule() CommitRule { return subjectLengthRule{} }

func (subjectLengthRule) Name() issue.Rule { return RuleSubjectLength }

func (subjectLengthRule) Check(c *commitmodel.Commit) []issue.Issue {
	w := width.StringWidth(c.Subject)

	switch {
	case w == 0:
		return []issue.Issue{{
			Rule:     RuleSubjectLength,
			Severity: issue.Error,
			Message:  "Subject is empty",
			Context:  []issue.ContextLine{placeholderSubjectContext("empty subject")},
		}}
	case w < subjectMinWidth:
		return []issue.Issue{{
			Rule:     RuleSubjectLength,
			Severity: issue.Error,
			Message:  fmt.Sprintf("Subject is too short (%d characters)", w),
			Context: []issue.ContextLine{
				subjectContext(c.Subject, 0, len(c.Subject), "too short"),
			},
		}}
	case w > subjectMaxWidth:
		return []issue.Issue{{
			Rule:     RuleSubjectLength,
			Severity: issue.Error,
			Message:  fmt.Sprintf("Subject is too long (%d characters)", w),
			Context: []issue.ContextLine{
				subjectContext(c.Subject, 0, len(c.Subject), "too long"),
			},
		}}
	default:
		return nil
	}
}

// --- SubjectMood ---

type subjectMoodRule struct{}

func NewSubjectMoodRule() CommitRule { return subjectMoodRule{} }

func (subjectMoodRule) Name() issue.Rule { return RuleSubjectMood }

func (subjectMoodRule) Check(c *commitmodel.Commit) []issue.Issue {
	words := strings.Fields(c.Subject)
	if len(words) == 0 {
		return nil
	}

	first := words[0]

	imperative, bad := nonImperativeVerbs[first]
	if !bad {
		return nil
	}

	start := 0
	end := len(first)

	return []issue.Issue{{
		Rule:     RuleSubjectMood,
		Severity: issue.Error,
		Message:  fmt.Sprintf("Subject mood is not imperative, use '%s' instead of '%s'", imperative, first),
		Context: []issue.ContextLine{
			{
				Source:             issue.Subject,
				LineNumberInSource: 1,
				Content:            c.Subject,
				Spans: []issue.Span{
					{ByteStart: start, ByteEndExclusive: end, Kind: issue.Removal, Annotation: "use " + imperative},
				},
			},
		},
	}}
}

// --- SubjectWhitespace ---

type subjectWhitespaceRule struct{}

func NewSubjectWhitespaceRule() CommitRule { return subjectWhitespaceRule{} }

func (subjectWhitespaceRule) Name() issue.Rule { return RuleSubjectWhitespace }

func (subjectWhitespaceRule) Check(c *commitmodel.Commit) []issue.Issue {
	end := 0
	for end < len(c.Subject) {
		r, size := utf8.DecodeRuneInString(c.Subject[end:])
		if !width.IsWhitespace(r) {
			break
		}

		end += size
	}

	if end == 0 {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleSubjectWhitespace,
		Severity: issue.Error,
		Message:  "Subject starts with whitespace",
		Context:  []issue.ContextLine{subjectContext(c.Subject, 0, end, "leading whitespace")},
	}}
}

// --- SubjectCapitalization ---

type subjectCapitalizationRule struct{}

func NewSubjectCapitalizationRule() CommitRule { return subjectCapitalizationRule{} }

func (subjectCapitalizationRule) Name() issue.Rule { return RuleSubjectCapitalization }

func (subjectCapitalizationRule) Check(c *commitmodel.Commit) []issue.Issue {
	r, size := firstLetterRune(c.Subject)
	if size == 0 {
		return nil
	}

	if unicode.IsUpper(r) {
		return nil
	}

	upper := strings.ToUpper(string(r))

	return []issue.Issue{{
		Rule:     RuleSubjectCapitalization,
		Severity: issue.Error,
		Message:  "Subject does not start with a capital letter",
		Context: []issue.ContextLine{
			{
				Source:             issue.Subject,
				LineNumberInSource: 1,
				Content:            c.Subject,
				Spans: []issue.Span{
					{ByteStart: 0, ByteEndExclusive: size, Kind: issue.Addition, Annotation: "capitalize to " + upper},
				},
			},
		},
	}}
}

// firstLetterRune returns the first Unicode-letter rune in s and its byte
// size, scanning from the start; size is 0 if s contains no letter before
// a non-letter, non-whitespace rune interrupts (only whitespace is
// skipped).
func firstLetterRune(s string) (rune, int) {
	offset := 0

	for offset < len(s) {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if width.IsWhitespace(r) {
			offset += size

			continue
		}

		if unicode.IsLetter(r) {
			return r, size
		}

		return 0, 0
	}

	return 0, 0
}

// --- SubjectPunctuation ---

var bulletPrefixRegex = regexp.MustCompile(`^[-*•]\s`)

type subjectPunctuationRule struct{}

func NewSubjectPunctuationRule() CommitRule { return subjectPunctuationRule{} }

func (subjectPunctuationRule) Name() issue.Rule { return RuleSubjectPunctuation }

func (subjectPunctuationRule) Check(c *commitmodel.Commit) []issue.Issue {
	subject := c.Subject
	if subject == "" {
		return nil
	}

	if bulletPrefixRegex.MatchString(subject) {
		return []issue.Issue{punctuationIssue(subject, 0, len(bulletPrefixRegex.FindString(subject)), "remove leading bullet")}
	}

	if width.HasEmojiPresentation(subject) {
		firstClusterLen := len(width.Clusters(subject)[0])

		return []issue.Issue{punctuationIssue(subject, 0, firstClusterLen, "remove leading emoji")}
	}

	if start, end, ok := leadingBuildTagBracket(subject); ok {
		return []issue.Issue{punctuationIssue(subject, start, end, "remove leading build tag")}
	}

	r, size := utf8.DecodeRuneInString(subject)
	if width.IsPunctuation(r) {
		return []issue.Issue{punctuationIssue(subject, 0, size, "starts with punctuation")}
	}

	lastRune, lastSize := utf8.DecodeLastRuneInString(subject)
	if width.IsPunctuation(lastRune) {
		return []issue.Issue{punctuationIssue(subject, len(subject)-lastSize, len(subject), "ends with punctuation")}
	}

	return nil
}

func punctuationIssue(subject string, start, end int, annotation string) issue.Issue {
	return issue.Issue{
		Rule:     RuleSubjectPunctuation,
		Severity: issue.Error,
		Message:  "Subject has unwanted punctuation",
		Context:  []issue.ContextLine{subjectContext(subject, start, end, annotation)},
	}
}

var leadingBracketRegex = regexp.MustCompile(`^\[[^\]]*\]`)

// leadingBuildTagBracket matches a leading `[...]` bracket that is not one
// of the recognised skip-CI build tags (those are SubjectBuildTag's
// concern, not this rule's).
func leadingBuildTagBracket(subject string) (start, end int, ok bool) {
	loc := leadingBracketRegex.FindStringIndex(subject)
	if loc == nil {
		return 0, 0, false
	}

	if _, _, isBuildTag := FindBuildTag(subject[loc[0]:loc[1]]); isBuildTag {
		return 0, 0, false
	}

	return loc[0], loc[1], true
}

// --- SubjectTicketNumber ---

type subjectTicketNumberRule struct{}

func NewSubjectTicketNumberRule() CommitRule { return subjectTicketNumberRule{} }

func (subjectTicketNumberRule) Name() issue.Rule { return RuleSubjectTicketNumber }

func (subjectTicketNumberRule) Check(c *commitmodel.Commit) []issue.Issue {
	matches := FindTicketReferences(c.Subject)
	if len(matches) == 0 {
		return nil
	}

	m := matches[0]
	matched := c.Subject[m.Start:m.End]

	return []issue.Issue{{
		Rule:     RuleSubjectTicketNumber,
		Severity: issue.Error,
		Message:  "Subject contains a ticket/issue reference; move it to the message body",
		Context: []issue.ContextLine{
			{
				Source:             issue.Subject,
				LineNumberInSource: 1,
				Content:            c.Subject,
				Spans: []issue.Span{
					{ByteStart: m.Start, ByteEndExclusive: m.End, Kind: issue.Removal, Annotation: "move to body trailer"},
				},
			},
			{
				Source:             issue.Message,
				LineNumberInSource: len(c.BodyLines) + 1,
				Content:            ticketTrailerSuggestion(matched),
				Spans: []issue.Span{
					{
						ByteStart:        0,
						ByteEndExclusive: len(ticketTrailerSuggestion(matched)),
						Kind:             issue.Addition,
						Annotation:       "add trailer",
					},
				},
			},
		},
	}}
}

func ticketTrailerSuggestion(matched string) string {
	number := matched
	if idx := strings.LastIndexByte(matched, '#'); idx >= 0 {
		number = matched[idx:]
	}

	if !strings.HasPrefix(number, "#") {
		number = "#" + strings.TrimLeft(number, "#")
	}

	return "Closes " + number
}

// --- SubjectPrefix ---

var conventionalPrefixRegex = regexp.MustCompile(`^[a-zA-Z]+(\([^)]*\))?!?:\s`)

type subjectPrefixRule struct{}

func NewSubjectPrefixRule() CommitRule { return subjectPrefixRule{} }

func (subjectPrefixRule) Name() issue.Rule { return RuleSubjectPrefix }

func (subjectPrefixRule) Check(c *commitmodel.Commit) []issue.Issue {
	loc := conventionalPrefixRegex.FindStringIndex(c.Subject)
	if loc == nil {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleSubjectPrefix,
		Severity: issue.Error,
		Message:  "Subject has a conventional-commit style prefix",
		Context: []issue.ContextLine{
			subjectContext(c.Subject, loc[0], loc[1], "remove prefix"),
		},
	}}
}

// HasPrefix reports whether subject carries a conventional-commit prefix.
// SubjectCapitalization does not call it: the engine's skip matrix
// suppresses that rule when SubjectPrefix fires.
func HasPrefix(subject string) bool {
	return conventionalPrefixRegex.MatchString(subject)
}

// --- SubjectBuildTag ---

type subjectBuildTagRule struct{}

func NewSubjectBuildTagRule() CommitRule { return subjectBuildTagRule{} }

func (subjectBuildTagRule) Name() issue.Rule { return RuleSubjectBuildTag }

func (subjectBuildTagRule) Check(c *commitmodel.Commit) []issue.Issue {
	start, end, ok := FindBuildTag(c.Subject)
	if !ok {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleSubjectBuildTag,
		Severity: issue.Error,
		Message:  "Subject contains a skip-CI build tag",
		Context:  []issue.ContextLine{subjectContext(c.Subject, start, end, "remove build tag")},
	}}
}

// --- SubjectCliche ---

type subjectClicheRule struct{}

func NewSubjectClicheRule() CommitRule { return subjectClicheRule{} }

func (subjectClicheRule) Name() issue.Rule { return RuleSubjectCliche }

func (subjectClicheRule) Check(c *commitmodel.Commit) []issue.Issue {
	if !IsClicheSubject(c.Subject) {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleSubjectCliche,
		Severity: issue.Error,
		Message:  "Subject is a cliché, rewrite to describe the actual change",
		Context:  []issue.ContextLine{subjectContext(c.Subject, 0, len(c.Subject), "cliché subject")},
	}}
}
