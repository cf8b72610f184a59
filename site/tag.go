package site

import (
	"cmp"
	"encoding/hex"
	"slices"
	"strings"
	"unicode"
)

// TagListPath is where the page listing every tag lives.
const TagListPath = "/tags"

// Tag is a label attached to items.
type Tag string

func (t Tag) String() string { return string(t) }

// Normalized is the lower-case, URL-safe form of the tag and its identity:
// tags with the same normalized form are the same tag. Runs of anything
// that is not a letter or digit collapse into a single dash. A tag with no
// letters or digits, such as "++", becomes "_" followed by its hex bytes,
// which no other tag can normalize to.
func (t Tag) Normalized() string {
	trimmed := strings.TrimSpace(t.String())
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(trimmed) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	if b.Len() == 0 && trimmed != "" {
		return "_" + hex.EncodeToString([]byte(trimmed))
	}
	return b.String()
}

// Same reports whether t and other are the same tag.
func (t Tag) Same(other Tag) bool {
	return t.Normalized() == other.Normalized()
}

// Path is the site-relative location of the tag's detail page.
func (t Tag) Path() string {
	return TagListPath + "/" + t.Normalized()
}

// SortedTags returns a copy of tags ordered by normalized form, keeping one
// spelling per tag. Of several spellings the smallest, "Go" before "go",
// is kept.
func SortedTags(tags []Tag) []Tag {
	sorted := slices.Clone(tags)
	slices.SortFunc(sorted, func(a, b Tag) int {
		if c := cmp.Compare(a.Normalized(), b.Normalized()); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return slices.CompactFunc(sorted, Tag.Same)
}

// ParseTags splits a comma separated tag string, dropping empty entries.
func ParseTags(s string) []Tag {
	var tags []Tag
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, Tag(part))
		}
	}
	return tags
}
