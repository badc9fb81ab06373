package validate

import (
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeName cleans a project or category name: trims whitespace and drops
// control characters. Case is preserved; registries match names exactly.
func SanitizeName(name string) string {
	name = strings.TrimSpace(name)

	var sb strings.Builder
	for _, r := range name {
		if !unicode.IsControl(r) {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

// SanitizeNames applies SanitizeName to each name and drops the empty results.
func SanitizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = SanitizeName(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// SanitizeDescription cleans an entry description for safe storage.
func SanitizeDescription(desc string) string {
	desc = strings.TrimSpace(desc)

	// Remove null bytes (common injection attempt)
	desc = strings.ReplaceAll(desc, "\x00", "")

	// Normalize line endings
	desc = strings.ReplaceAll(desc, "\r\n", "\n")
	desc = strings.ReplaceAll(desc, "\r", "\n")

	return desc
}

// IsPathTraversal checks if a path contains traversal patterns.
func IsPathTraversal(path string) bool {
	if strings.Contains(path, "..") {
		return true
	}
	return filepath.IsAbs(path)
}

// NormalizeColor upper-cases a hex colour so equal colours compare equal.
func NormalizeColor(color string) string {
	return strings.ToUpper(strings.TrimSpace(color))
}
