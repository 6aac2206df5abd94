// Package display computes short labels for a set of absolute paths.
// Each path is shown by its trailing component, extended with parent
// directories only as far as needed to tell duplicates apart.
package display

import "strings"

// ShortPaths returns one label per input path, in input order. Labels
// are unique within the set except for paths that are fully identical,
// which both render as their complete component chain.
func ShortPaths(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}

	// Components in reverse order, trailing name first.
	reversed := make([][]string, len(paths))
	maxDepth := 0
	for i, p := range paths {
		reversed[i] = reverseComponents(p)
		if len(reversed[i]) > maxDepth {
			maxDepth = len(reversed[i])
		}
	}

	required := make([]int, len(paths))
	for i := range required {
		required[i] = 1
	}

	for depth := 1; depth <= maxDepth; depth++ {
		groups := make(map[string][]int)
		for i, comps := range reversed {
			if required[i] > depth {
				continue
			}
			groups[render(comps, depth)] = append(groups[render(comps, depth)], i)
		}
		for _, indices := range groups {
			if len(indices) < 2 {
				continue
			}
			for _, i := range indices {
				if depth < len(reversed[i]) {
					required[i] = depth + 1
				}
			}
		}
	}

	labels := make([]string, len(paths))
	for i, comps := range reversed {
		labels[i] = render(comps, required[i])
	}
	return labels
}

// render joins the first depth reversed components back into display
// order. A depth past the end uses the whole chain.
func render(reversed []string, depth int) string {
	if depth > len(reversed) {
		depth = len(reversed)
	}
	parts := make([]string, depth)
	for i := 0; i < depth; i++ {
		parts[depth-1-i] = reversed[i]
	}
	return strings.Join(parts, "/")
}

func reverseComponents(path string) []string {
	fields := strings.Split(path, "/")
	var out []string
	for i := len(fields) - 1; i >= 0; i-- {
		if fields[i] == "" || fields[i] == "." {
			continue
		}
		out = append(out, fields[i])
	}
	return out
}
