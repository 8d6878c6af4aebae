package backend

import "strings"

// DefaultPriority is used when no priority list is configured.
const DefaultPriority = "groq,ollama,grok,claude,openai"

// ParsePriority splits a comma-separated provider list. Entries are trimmed,
// empty entries dropped, and duplicates removed keeping the first occurrence.
// Unknown names are kept; they never match an adapter.
func ParsePriority(s string) []string {
	if strings.TrimSpace(s) == "" {
		s = DefaultPriority
	}

	seen := make(map[string]bool)
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
