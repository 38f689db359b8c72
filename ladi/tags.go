package ladi

import "strings"

// ParseTags parses an annotation field like "[Flood, Infrastructure]" into
// a list of trimmed, lowercased tags. Enclosing brackets are stripped from
// the field as a whole, so every comma-separated segment is examined.
func ParseTags(answer string) []string {
	s := strings.TrimSpace(answer)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")

	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// AnyTagContains reports whether any tag contains one of the given terms.
// Terms are expected to be lowercase.
func AnyTagContains(tags []string, terms ...string) bool {
	for _, tag := range tags {
		for _, term := range terms {
			if strings.Contains(tag, term) {
				return true
			}
		}
	}
	return false
}

// HasTag reports whether the tag set contains exactly the given tag.
func HasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
