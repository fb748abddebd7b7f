package types

import (
	"strings"
	"time"
)

// Category is the manifest's per-file classification, derived from the
// leading path segment of the file relative to root.
type Category string

const (
	CategoryUser    Category = "user"
	CategoryProject Category = "project"
	CategoryAgent   Category = "agent"
	CategoryTopic   Category = "topic"
	CategoryIndex   Category = "index"
	CategoryPolicy  Category = "policy"
	CategoryOther   Category = "other"
)

// categoryBySegment maps a path's leading directory segment to its Category.
var categoryBySegment = map[string]Category{
	"00_user":     CategoryUser,
	"10_projects": CategoryProject,
	"20_agents":   CategoryAgent,
	"30_topics":   CategoryTopic,
	"90_index":    CategoryIndex,
	"99_policy":   CategoryPolicy,
}

// CategoryForPath derives a manifest Category from a root-relative path.
func CategoryForPath(path string) Category {
	path = strings.TrimPrefix(path, "/")
	seg := path
	if i := strings.IndexRune(path, '/'); i >= 0 {
		seg = path[:i]
	}
	if cat, ok := categoryBySegment[seg]; ok {
		return cat
	}
	return CategoryOther
}

// ManifestEntry tracks one on-disk document's expected hash/size/category.
type ManifestEntry struct {
	Path      string    `json:"path"`
	Hash      string    `json:"hash"`
	Size      int64     `json:"size"`
	UpdatedAt UnixMilli `json:"updatedAt"`
	Category  Category  `json:"category"`
}

// ManifestSummary totals the manifest's entries by category.
type ManifestSummary struct {
	TotalFiles int              `json:"totalFiles"`
	ByCategory map[string]int   `json:"byCategory"`
}

// Manifest is the boot-time source of truth for what documents should exist
// and what their bytes should hash to.
type Manifest struct {
	Version   int             `json:"version"`
	UpdatedAt UnixMilli       `json:"updatedAt"`
	Summary   ManifestSummary `json:"summary"`
	Files     []ManifestEntry `json:"files"`
}

// EmptyManifest returns a freshly initialized, empty manifest.
func EmptyManifest(now time.Time) *Manifest {
	return &Manifest{
		Version:   1,
		UpdatedAt: Now(now),
		Summary:   ManifestSummary{ByCategory: map[string]int{}},
		Files:     []ManifestEntry{},
	}
}

// Find returns the entry for path, if present.
func (m *Manifest) Find(path string) (ManifestEntry, bool) {
	for _, f := range m.Files {
		if f.Path == path {
			return f, true
		}
	}
	return ManifestEntry{}, false
}

// Upsert adds or replaces the entry for entry.Path.
func (m *Manifest) Upsert(entry ManifestEntry) {
	for i, f := range m.Files {
		if f.Path == entry.Path {
			m.Files[i] = entry
			return
		}
	}
	m.Files = append(m.Files, entry)
}

// Remove deletes the entry for path, if present.
func (m *Manifest) Remove(path string) {
	out := m.Files[:0]
	for _, f := range m.Files {
		if f.Path != path {
			out = append(out, f)
		}
	}
	m.Files = out
}

// Recompute rebuilds Summary from Files. Must be called after any mutation.
func (m *Manifest) Recompute(now time.Time) {
	byCat := map[string]int{}
	for _, f := range m.Files {
		byCat[string(f.Category)]++
	}
	m.Summary = ManifestSummary{TotalFiles: len(m.Files), ByCategory: byCat}
	m.UpdatedAt = Now(now)
}

// TagsConfig declares the allowed tag axes.
type TagsConfig struct {
	Axes []string `json:"axes"`
}

// DefaultTagsConfig is the fixed two-axis declaration.
func DefaultTagsConfig() *TagsConfig {
	return &TagsConfig{Axes: []string{TagAxisDomain, TagAxisIntent}}
}

// FolderEntry declares one fixed category folder.
type FolderEntry struct {
	Path     string   `json:"path"`
	Category Category `json:"category"`
}

// FolderRegistry declares the store's fixed top-level folders.
type FolderRegistry struct {
	Folders []FolderEntry `json:"folders"`
}

// DefaultFolderRegistry is the fixed six-folder declaration.
func DefaultFolderRegistry() *FolderRegistry {
	return &FolderRegistry{
		Folders: []FolderEntry{
			{Path: "00_user", Category: CategoryUser},
			{Path: "10_projects", Category: CategoryProject},
			{Path: "20_agents", Category: CategoryAgent},
			{Path: "30_topics", Category: CategoryTopic},
			{Path: "90_index", Category: CategoryIndex},
			{Path: "99_policy", Category: CategoryPolicy},
		},
	}
}
