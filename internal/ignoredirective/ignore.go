// Package ignoredirective scans a commit body for `lintje:disable <Rule>`
// directives that suppress a named rule for that commit.
package ignoredirective

import "regexp"

var directiveRegex = regexp.MustCompile(`^lintje:disable\s+(\w+)\s*$`)

// Scan walks bodyLines (not including trailer lines — callers exclude the
// trailer block before calling) and returns the set of rule names named by
// `lintje:disable` directives.
func Scan(bodyLines []string) map[string]bool {
	disabled := make(map[string]bool)

	for _, line := range bodyLines {
		m := directiveRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		disabled[m[1]] = true
	}

	return disabled
}
