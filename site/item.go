package site

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Item is a single piece of content, typically a blog post.
type Item struct {
	SectionID   SectionID
	Slug        string
	Title       string
	Description string
	// Body is the rendered HTML fragment.
	Body string
	Date time.Time
	Tags []Tag
}

// Path is the site-relative location of the item page.
func (i *Item) Path() string {
	return "/" + i.SectionID.String() + "/" + i.Slug
}

// HasTag reports whether the item carries t in any spelling.
func (i *Item) HasTag(t Tag) bool {
	return slices.ContainsFunc(i.Tags, t.Same)
}

// FormatDate is the human readable publish date.
func (i *Item) FormatDate() string {
	return i.Date.Format("January 2, 2006")
}

func (i *Item) String() string {
	b := new(strings.Builder)
	b.WriteString("title: ")
	b.WriteString(i.Title)
	b.WriteString("\nsection: ")
	b.WriteString(i.SectionID.String())
	b.WriteString("\ndate: ")
	b.WriteString(i.Date.String())
	b.WriteString("\ndescription: ")
	b.WriteString(i.Description)
	b.WriteString("\ntags: ")
	fmt.Fprintln(b, i.Tags)

	body := i.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	b.WriteString("body: ")
	b.WriteString(body)

	return b.String()
}

// SortByDateDescending orders items newest first. Items published at the
// same instant are ordered by path so output is deterministic.
func SortByDateDescending(items []*Item) {
	slices.SortStableFunc(items, func(a, b *Item) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Path(), b.Path())
	})
}

// LatestDate is the newest publish date among items, zero if there are none.
func LatestDate(items []*Item) time.Time {
	var t time.Time
	for _, i := range items {
		if i.Date.After(t) {
			t = i.Date
		}
	}
	return t
}
