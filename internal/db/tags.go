package db

import "strings"

const MaxTags = 20

// ParseTags turns comma-separated input into normalized tags: trimmed,
// lowercased, no empties, no repeats, at most MaxTags.
func ParseTags(input string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
