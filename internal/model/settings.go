package model

import (
	"sort"
	"strings"
)

// LabelKind selects one of the two label registries.
type LabelKind string

const (
	KindProject  LabelKind = "project"
	KindCategory LabelKind = "category"
)

// Opposite returns the registry whose colours a new colour must stand apart from.
func (k LabelKind) Opposite() LabelKind {
	if k == KindProject {
		return KindCategory
	}
	return KindProject
}

// Settings is the singleton record holding both label registries.
type Settings struct {
	Projects       []string          `json:"projects"`
	Categories     []string          `json:"categories"`
	ProjectColors  map[string]string `json:"project_colors"`
	CategoryColors map[string]string `json:"category_colors"`
}

// GetKey returns the storage key for the settings record.
func (s *Settings) GetKey() string {
	return KeySettings
}

// NewSettings returns an empty settings record.
func NewSettings() *Settings {
	s := &Settings{}
	s.Normalize()
	return s
}

// Normalize replaces nil collections with empty ones and sorts and dedups the name lists.
func (s *Settings) Normalize() {
	s.Projects = sortedSet(s.Projects)
	s.Categories = sortedSet(s.Categories)
	if s.ProjectColors == nil {
		s.ProjectColors = map[string]string{}
	}
	if s.CategoryColors == nil {
		s.CategoryColors = map[string]string{}
	}
}

// Names returns the registered names of kind.
func (s *Settings) Names(kind LabelKind) []string {
	if kind == KindProject {
		return s.Projects
	}
	return s.Categories
}

// Colors returns the colour mapping of kind.
func (s *Settings) Colors(kind LabelKind) map[string]string {
	if kind == KindProject {
		return s.ProjectColors
	}
	return s.CategoryColors
}

// Register adds names to kind's registry and reports whether anything was added.
// Names are trimmed; empty names are skipped. Matching is case-sensitive.
func (s *Settings) Register(kind LabelKind, names ...string) bool {
	existing := s.Names(kind)
	seen := make(map[string]bool, len(existing))
	for _, n := range existing {
		seen[n] = true
	}

	added := false
	merged := append([]string(nil), existing...)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		merged = append(merged, n)
		added = true
	}
	if !added {
		return false
	}

	sort.Strings(merged)
	if kind == KindProject {
		s.Projects = merged
	} else {
		s.Categories = merged
	}
	return true
}

// Uncolored returns the registered names of kind without a colour, in ascending order.
func (s *Settings) Uncolored(kind LabelKind) []string {
	colors := s.Colors(kind)
	var out []string
	for _, n := range s.Names(kind) {
		if _, ok := colors[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// LabelColor is a name with its assigned colour.
type LabelColor struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ColorSet is the combined colour view of both registries.
type ColorSet struct {
	ProjectColors  map[string]string `json:"project_colors"`
	CategoryColors map[string]string `json:"category_colors"`
}

func sortedSet(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
