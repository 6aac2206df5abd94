package model

import "strings"

// ParseTags turns a raw comma-separated tag string into a normalized tag
// list: pieces are trimmed of surrounding whitespace, empties dropped and
// duplicates collapsed, keeping first-occurrence order. Parsing the
// formatted output of a previous parse yields the same list.
func ParseTags(raw string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, piece := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// FormatTags renders a tag list back into the editable comma-separated
// form shown in the settings modal.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
