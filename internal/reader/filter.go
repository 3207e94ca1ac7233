package reader

import "strings"

// FilterByObjective keeps only the lines of content containing at least one
// objective keyword as a case-insensitive substring. If nothing matches, the
// original content is returned unchanged so a narrow objective never yields
// empty output. Purely textual, line granularity.
func FilterByObjective(content, objective string) string {
	keywords := strings.Fields(strings.ToLower(objective))
	if len(keywords) == 0 {
		return content
	}
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				kept = append(kept, line)
				break
			}
		}
	}
	if len(kept) == 0 {
		return content
	}
	return strings.Join(kept, "\n")
}
