package site

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrUnknownSection is returned when content references a section the
// configuration does not declare.
var ErrUnknownSection = errors.New("unknown section")

// ErrPathConflict is returned when two pages would be published at the
// same location.
var ErrPathConflict = errors.New("conflicting page path")

// Index is the home page record.
type Index struct {
	Title       string
	Description string
	Body        string
}

// Section groups the items that share a SectionID.
type Section struct {
	ID          SectionID
	Title       string
	Description string
	Body        string
	Items       []*Item
}

// Path is the site-relative location of the section listing.
func (s *Section) Path() string {
	return "/" + s.ID.String()
}

// Page is a static page that belongs to no section.
type Page struct {
	// Path is relative to the content root, without extension, e.g. "colophon".
	Path        string
	Title       string
	Description string
	Body        string
}

// URLPath is the site-relative location of the page.
func (p *Page) URLPath() string {
	return "/" + p.Path
}

// SectionMeta carries what a section's own index.md declares.
type SectionMeta struct {
	Title       string
	Description string
	Body        string
}

// Context is everything the theme needs to render any page of the site.
type Context struct {
	Config *Config
	Index  Index

	sections []*Section
	byID     map[SectionID]*Section
	items    []*Item
	pages    []*Page
}

// NewContext validates cfg and groups items into their sections. meta may
// be nil; sections without metadata get a title derived from their id.
func NewContext(cfg *Config, index Index, meta map[SectionID]SectionMeta, items []*Item, pages []*Page) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx := &Context{
		Config: cfg,
		Index:  index,
		byID:   make(map[SectionID]*Section, len(cfg.Sections)),
		items:  slices.Clone(items),
		pages:  slices.Clone(pages),
	}
	if ctx.Index.Title == "" {
		ctx.Index.Title = cfg.Name
	}
	if ctx.Index.Description == "" {
		ctx.Index.Description = cfg.Description
	}

	for _, id := range cfg.Sections {
		s := &Section{ID: id, Title: cfg.SectionTitle(id)}
		if m, ok := meta[id]; ok {
			if m.Title != "" {
				s.Title = m.Title
			}
			s.Description = m.Description
			s.Body = m.Body
		}
		ctx.sections = append(ctx.sections, s)
		ctx.byID[id] = s
	}
	for id := range meta {
		if _, ok := ctx.byID[id]; !ok {
			return nil, fmt.Errorf("section metadata for %q: %w", id, ErrUnknownSection)
		}
	}

	for _, item := range ctx.items {
		s, ok := ctx.byID[item.SectionID]
		if !ok {
			return nil, fmt.Errorf("item %q in section %q: %w", item.Slug, item.SectionID, ErrUnknownSection)
		}
		s.Items = append(s.Items, item)
	}

	SortByDateDescending(ctx.items)
	for _, s := range ctx.sections {
		SortByDateDescending(s.Items)
	}
	slices.SortFunc(ctx.pages, func(a, b *Page) int { return cmp.Compare(a.Path, b.Path) })

	if err := ctx.checkPaths(); err != nil {
		return nil, err
	}
	return ctx, nil
}

// checkPaths fails if any two pages of the site share a location. Tags are
// merged by their normalized form, so they never conflict with each other.
func (c *Context) checkPaths() error {
	owners := make(map[string]string)
	claim := func(path, owner string) error {
		path = "/" + strings.Trim(path, "/")
		if prev, ok := owners[path]; ok {
			return fmt.Errorf("%s and %s both publish %s: %w", prev, owner, path, ErrPathConflict)
		}
		owners[path] = owner
		return nil
	}

	if err := claim("/", "the index"); err != nil {
		return err
	}
	if err := claim(TagListPath, "the tag list"); err != nil {
		return err
	}
	for _, t := range c.AllTags() {
		if err := claim(t.Path(), fmt.Sprintf("tag %q", t)); err != nil {
			return err
		}
	}
	for _, s := range c.sections {
		if err := claim(s.Path(), fmt.Sprintf("section %q", s.ID)); err != nil {
			return err
		}
	}
	for _, item := range c.items {
		if err := claim(item.Path(), fmt.Sprintf("item %q", item.Slug)); err != nil {
			return err
		}
	}
	for _, p := range c.pages {
		if err := claim(p.URLPath(), fmt.Sprintf("page %q", p.Path)); err != nil {
			return err
		}
	}
	return nil
}

// Sections returns the sections in configuration order.
func (c *Context) Sections() []*Section { return c.sections }

// Section returns the section with the given id, or nil.
func (c *Context) Section(id SectionID) *Section { return c.byID[id] }

// Pages returns the static pages ordered by path.
func (c *Context) Pages() []*Page { return c.pages }

// AllItems returns every item, newest first.
func (c *Context) AllItems() []*Item { return c.items }

// Items returns the items tagged with t, newest first.
func (c *Context) Items(taggedWith Tag) []*Item {
	var tagged []*Item
	for _, item := range c.items {
		if item.HasTag(taggedWith) {
			tagged = append(tagged, item)
		}
	}
	return tagged
}

// ItemsIn returns the items of the given sections, newest first.
func (c *Context) ItemsIn(ids ...SectionID) []*Item {
	var in []*Item
	for _, item := range c.items {
		if slices.Contains(ids, item.SectionID) {
			in = append(in, item)
		}
	}
	return in
}

// AllTags returns every tag in use, sorted and without duplicates.
func (c *Context) AllTags() []Tag {
	var tags []Tag
	for _, item := range c.items {
		tags = append(tags, item.Tags...)
	}
	return SortedTags(tags)
}
