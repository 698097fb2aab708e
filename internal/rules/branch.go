package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/smykla-skalski/lintje/internal/commitmodel"
	"github.com/smykla-skalski/lintje/internal/issue"
	"github.com/smykla-skalski/lintje/internal/width"
)

const (
	branchNameMinWidth = 4
	branchNameMaxWidth = 50
)

// defaultBranchNames are never linted, they're the repository's trunk, not
// a feature branch a contributor wrote a name for.
var defaultBranchNames = map[string]bool{
	"main": true, "master": true, "develop": true, "development": true,
	"trunk": true, "staging": true, "production": true,
}

// BranchRule checks the currently checked-out branch.
type BranchRule interface {
	Name() issue.Rule
	Check(b *commitmodel.Branch) []issue.Issue
}

func branchContext(name string, start, end int, annotation string) issue.ContextLine {
	return issue.NewUnderline(issue.BranchName, 1, name, start, end, annotation)
}

func skipBranch(b *commitmodel.Branch) bool {
	if b == nil || b.IsDetached || b.Name == "" {
		return true
	}

	return defaultBranchNames[strings.ToLower(b.Name)]
}

// --- BranchNameLength ---

type branchNameLengthRule struct{}

func NewBranchNameLengthRule() BranchRule { return branchNameLengthRule{} }

func (branchNameLengthRule) Name() issue.Rule { return RuleBranchNameLength }

func (branchNameLengthRule) Check(b *commitmodel.Branch) []issue.Issue {
	if skipBranch(b) {
		return nil
	}

	w := width.StringWidth(b.Name)

	switch {
	case w < branchNameMinWidth:
		return []issue.Issue{{
			Rule:     RuleBranchNameLength,
			Severity: issue.Error,
			Message:  fmt.Sprintf("Branch name is too short (%d characters)", w),
			Context:  []issue.ContextLine{branchContext(b.Name, 0, len(b.Name), "too short")},
		}}
	case w > branchNameMaxWidth:
		return []issue.Issue{{
			Rule:     RuleBranchNameLength,
			Severity: issue.Error,
			Message:  fmt.Sprintf("Branch name is too long (%d characters)", w),
			Context:  []issue.ContextLine{branchContext(b.Name, 0, len(b.Name), "too long")},
		}}
	default:
		return nil
	}
}

// --- BranchNameTicketNumber ---

// branchEssentiallyTicketPatterns are the closed set of shapes a branch name
// can take while being essentially just a ticket reference with no
// descriptive content: pure digits, a dotted tracker ID, a prefix/suffix
// verb plus digits. Matched case-insensitively. A name with additional
// descriptive words (`123-email-validation`) matches none of these and so
// passes the rule — an exact anchored-pattern match rather than a fuzzy
// score (Open Question resolution).
var branchEssentiallyTicketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\d+$`),
	regexp.MustCompile(`(?i)^[A-Z]+-?\d+$`),
	regexp.MustCompile(`(?i)^\d+[-_/]?$`),
	regexp.MustCompile(`(?i)^(fix|feature|feat|chore)[-_/]\d+$`),
	regexp.MustCompile(`(?i)^\d+[-_/](fix|feature|feat|chore)$`),
}

type branchNameTicketNumberRule struct{}

func NewBranchNameTicketNumberRule() BranchRule { return branchNameTicketNumberRule{} }

func (branchNameTicketNumberRule) Name() issue.Rule { return RuleBranchNameTicketNumber }

func (branchNameTicketNumberRule) Check(b *commitmodel.Branch) []issue.Issue {
	if skipBranch(b) {
		return nil
	}

	if !branchIsEssentiallyTicket(b.Name) {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleBranchNameTicketNumber,
		Severity: issue.Error,
		Message:  "Branch name is essentially just a ticket reference, describe the change too",
		Context:  []issue.ContextLine{branchContext(b.Name, 0, len(b.Name), "add a description")},
	}}
}

// branchIsEssentiallyTicket reports whether the branch name, as a whole,
// reduces to nothing but a ticket reference.
func branchIsEssentiallyTicket(name string) bool {
	for _, p := range branchEssentiallyTicketPatterns {
		if p.MatchString(name) {
			return true
		}
	}

	return false
}

// --- BranchNamePunctuation ---

type branchNamePunctuationRule struct{}

func NewBranchNamePunctuationRule() BranchRule { return branchNamePunctuationRule{} }

func (branchNamePunctuationRule) Name() issue.Rule { return RuleBranchNamePunctuation }

// branchEdgePunctuation is the stricter punctuation set checked only at the
// first/last character of a branch name. `-`, `_`, `/` and interior `.` are
// allowed everywhere and never checked against this set.
const branchEdgePunctuation = `!.'"~()[]{}<>`

func (branchNamePunctuationRule) Check(b *commitmodel.Branch) []issue.Issue {
	if skipBranch(b) {
		return nil
	}

	name := b.Name

	runes := []rune(name)
	if len(runes) == 0 {
		return nil
	}

	if first := runes[0]; strings.ContainsRune(branchEdgePunctuation, first) {
		return []issue.Issue{{
			Rule:     RuleBranchNamePunctuation,
			Severity: issue.Error,
			Message:  "Branch name starts with punctuation",
			Context:  []issue.ContextLine{branchContext(name, 0, len(string(first)), "unexpected character")},
		}}
	}

	if last := runes[len(runes)-1]; strings.ContainsRune(branchEdgePunctuation, last) {
		start := len(name) - len(string(last))

		return []issue.Issue{{
			Rule:     RuleBranchNamePunctuation,
			Severity: issue.Error,
			Message:  "Branch name ends with punctuation",
			Context:  []issue.ContextLine{branchContext(name, start, len(name), "unexpected character")},
		}}
	}

	return nil
}

// --- BranchNameCliche ---

type branchNameClicheRule struct{}

func NewBranchNameClicheRule() BranchRule { return branchNameClicheRule{} }

func (branchNameClicheRule) Name() issue.Rule { return RuleBranchNameCliche }

func (branchNameClicheRule) Check(b *commitmodel.Branch) []issue.Issue {
	if skipBranch(b) {
		return nil
	}

	segments := strings.FieldsFunc(b.Name, func(r rune) bool {
		return r == '/' || r == '-' || r == '_'
	})

	if !isClicheSegments(segments) {
		return nil
	}

	return []issue.Issue{{
		Rule:     RuleBranchNameCliche,
		Severity: issue.Error,
		Message:  "Branch name is a cliché, rename to describe the actual change",
		Context:  []issue.ContextLine{branchContext(b.Name, 0, len(b.Name), "cliché branch name")},
	}}
}

func isClicheSegments(segments []string) bool {
	words := make([]string, 0, len(segments))

	for _, seg := range segments {
		if seg == "" {
			continue
		}

		words = append(words, seg)
	}

	if len(words) == 0 || len(words) > 2 {
		return false
	}

	if _, ok := IsClicheBranchWord(words[0]); !ok {
		return false
	}

	if len(words) == 1 {
		return true
	}

	return IsClicheNoun(words[1])
}
