package mention

import (
	"regexp"
	"strings"
)

// Everyone is the broadcast handle that targets every team member.
const Everyone = "everyone"

// handlePattern matches @handles (e.g., @sarah, @everyone).
var handlePattern = regexp.MustCompile(`@(\w+)`)

// Extract returns the handles mentioned in text, without the leading @.
// Returns a deduplicated list preserving the order of first occurrence.
func Extract(text string) []string {
	matches := handlePattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		handle := m[1]
		if seen[handle] {
			continue
		}
		seen[handle] = true
		result = append(result, handle)
	}
	return result
}

// Targets reports whether the mention list addresses handle, either
// directly or through @everyone. Comparison ignores case.
func Targets(mentions []string, handle string) bool {
	for _, m := range mentions {
		if strings.EqualFold(m, Everyone) {
			return true
		}
		if handle != "" && strings.EqualFold(m, handle) {
			return true
		}
	}
	return false
}

// Known narrows mentions to the handles present in known. If known is
// empty, all mentions are returned.
func Known(mentions []string, known map[string]bool) []string {
	if len(known) == 0 {
		return mentions
	}

	var filtered []string
	for _, m := range mentions {
		if known[strings.ToLower(m)] || strings.EqualFold(m, Everyone) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// Highlight rewrites every @handle in text with style.
func Highlight(text string, style func(string) string) string {
	return handlePattern.ReplaceAllStringFunc(text, style)
}
