package clean

import (
	"fmt"
	"time"
)

// Category names a kind of reclaimable item.
type Category string

const (
	CategoryTemp       Category = "temp"
	CategoryJunk       Category = "junk"
	CategoryAdobe      Category = "adobe"
	CategorySystem     Category = "system"
	CategoryLarge      Category = "large"
	CategoryVideos     Category = "videos"
	CategoryDuplicates Category = "duplicates"
	CategoryRegistry   Category = "registry"
)

// Categories lists every category in menu order.
var Categories = []Category{
	CategoryTemp,
	CategoryJunk,
	CategoryAdobe,
	CategorySystem,
	CategoryLarge,
	CategoryVideos,
	CategoryDuplicates,
	CategoryRegistry,
}

var categoryTitles = map[Category]string{
	CategoryTemp:       "Temporary Files",
	CategoryJunk:       "Junk Files",
	CategoryAdobe:      "Adobe Temp Files",
	CategorySystem:     "System Files",
	CategoryLarge:      "Large Files",
	CategoryVideos:     "Old Videos",
	CategoryDuplicates: "Duplicate Files",
	CategoryRegistry:   "Registry Issues",
}

// Title is the human label for a category.
func (c Category) Title() string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Kind distinguishes filesystem items from registry values.
type Kind int

const (
	KindFile Kind = iota
	KindRegistry
)

func (k Kind) String() string {
	if k == KindRegistry {
		return "registry"
	}
	return "file"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Item is one thing the user may choose to delete. For registry items Path
// is the key and Name the value name.
type Item struct {
	Path        string    `json:"path"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modified,omitzero"`
	Category    Category  `json:"category"`
	Description string    `json:"description,omitempty"`
	DuplicateOf string    `json:"duplicate_of,omitempty"`
	Kind        Kind      `json:"kind"`
}

// TotalSize sums item sizes.
func TotalSize(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.Size
	}
	return total
}
