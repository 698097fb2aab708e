package rules

import (
	"regexp"
	"strings"
)

// clicheVerbs are the closed set of verbs that, alone or with a generic
// noun, make a subject/branch name a cliché.
var clicheVerbs = []string{"fix", "add", "update", "change", "remove", "delete"}

// clicheVerbInflections maps surface forms back to their base verb.
var clicheVerbInflections = map[string]string{
	"fix": "fix", "fixes": "fix", "fixed": "fix", "fixing": "fix",
	"add": "add", "adds": "add", "added": "add", "adding": "add",
	"update": "update", "updates": "update", "updated": "update", "updating": "update",
	"change": "change", "changes": "change", "changed": "change", "changing": "change",
	"remove": "remove", "removes": "remove", "removed": "remove", "removing": "remove",
	"delete": "delete", "deletes": "delete", "deleted": "delete", "deleting": "delete",
}

// clicheNouns are the closed set of generic nouns that follow a cliché verb.
var clicheNouns = map[string]bool{
	"bug": true, "bugs": true, "test": true, "tests": true,
	"issue": true, "issues": true, "build": true, "ci": true,
	"code": true, "file": true, "files": true, "stuff": true,
	"readme": true,
}

var wipPhrases = []string{"wip", "work in progress"}

// IsClicheSubject reports whether subject (lowercased, leading/trailing
// punctuation stripped) is a closed-set cliché: a bare cliché verb, a
// cliché verb plus a generic noun, or a "wip"/"work in progress" variant.
func IsClicheSubject(subject string) bool {
	normalized := normalizeClicheText(subject)
	if normalized == "" {
		return false
	}

	for _, wip := range wipPhrases {
		if normalized == wip || strings.HasPrefix(normalized, wip+" ") {
			return true
		}
	}

	words := strings.Fields(normalized)
	if len(words) == 0 {
		return false
	}

	base, isVerb := clicheVerbInflections[words[0]]
	if !isVerb {
		return false
	}

	if len(words) == 1 {
		return true
	}

	if len(words) == 2 && clicheNouns[words[1]] {
		return true
	}

	_ = base

	return false
}

var trimClichePunct = regexp.MustCompile(`^[^\p{L}\p{N}]+|[^\p{L}\p{N}]+$`)

func normalizeClicheText(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))

	return trimClichePunct.ReplaceAllString(lower, "")
}

// IsClicheBranchWord reports whether a single branch-name word segment is
// one of the cliché verbs (for BranchNameCliche).
func IsClicheBranchWord(word string) (base string, ok bool) {
	base, ok = clicheVerbInflections[strings.ToLower(word)]

	return base, ok
}

// IsClicheNoun reports whether word is one of the generic cliché nouns.
func IsClicheNoun(word string) bool {
	return clicheNouns[strings.ToLower(word)]
}

// nonImperativeVerbs is the closed list of non-imperative-mood first words
// SubjectMood flags, mapped to the imperative form the suggestion proposes
// instead (e.g. "Fixed" -> "Fix").
var nonImperativeVerbs = map[string]string{
	"Added": "Add", "Adds": "Add", "Adding": "Add",
	"Fixed": "Fix", "Fixes": "Fix", "Fixing": "Fix",
	"Removed": "Remove", "Removes": "Remove", "Removing": "Remove",
	"Updated": "Update", "Updates": "Update", "Updating": "Update",
	"Changed": "Change", "Changes": "Change", "Changing": "Change",
	"Deleted": "Delete", "Deletes": "Delete", "Deleting": "Delete",
	"Refactored": "Refactor", "Refactors": "Refactor", "Refactoring": "Refactor",
	"Implemented": "Implement", "Implements": "Implement", "Implementing": "Implement",
	"Created": "Create", "Creates": "Create", "Creating": "Create",
	"Renamed": "Rename", "Renames": "Rename", "Renaming": "Rename",
	"Moved": "Move", "Moves": "Move", "Moving": "Move",
}

// Bot-author classification has no table here: it lives in commitparse
// (botEmailSuffixes) since it gates commit ignoring, not a rule.

// buildTagPatterns is the closed set of skip-CI bracket tags SubjectBuildTag
// recognises, case-insensitively.
var buildTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[ci skip\]`),
	regexp.MustCompile(`(?i)\[skip ci\]`),
	regexp.MustCompile(`(?i)\[no ci\]`),
	regexp.MustCompile(`(?i)\[actions skip\]`),
	regexp.MustCompile(`(?i)\[skip actions\]`),
	regexp.MustCompile(`(?i)\[skip appveyor\]`),
	regexp.MustCompile(`(?i)\[az[a-z]*\s+skip\]`),
	regexp.MustCompile(`(?i)\[skip\s+az[a-z]*\]`),
	regexp.MustCompile(`(?i)\[travis(?:-ci| ci)?\s+skip\]`),
	regexp.MustCompile(`(?i)\[skip\s+travis(?:-ci| ci)?\]`),
	regexp.MustCompile(`\[\*\*\*NO_CI\*\*\*\]|\*\*\*NO_CI\*\*\*`),
	regexp.MustCompile(`(?i)\[[a-z0-9_-]*\s+skip\]`),
	regexp.MustCompile(`(?i)\[skip\s+[a-z0-9_-]*\]`),
}

// FindBuildTag returns the byte range of the first recognised skip-CI tag
// in s, or ok=false.
func FindBuildTag(s string) (start, end int, ok bool) {
	for _, re := range buildTagPatterns {
		if loc := re.FindStringIndex(s); loc != nil {
			return loc[0], loc[1], true
		}
	}

	return 0, 0, false
}
