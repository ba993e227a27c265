package utils

import (
	"path"
	"strings"
)

// NormalizePath lower-cases a request URI, drops query and fragment and
// cleans the path (handles //, .., .).
func NormalizePath(uri string) string {
	if idx := strings.IndexAny(uri, "?#"); idx != -1 {
		uri = uri[:idx]
	}
	if uri == "" {
		return "/"
	}

	cleaned := path.Clean(uri)
	if !strings.HasPrefix(cleaned, "/") {
		cleaned = "/" + cleaned
	}

	return strings.ToLower(cleaned)
}

// NormalizePaths normalizes every entry and drops blanks and duplicates, keeping the first occurrence
func NormalizePaths(paths []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		p = NormalizePath(p)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
