package site

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func testConfig() *Config {
	return &Config{
		Name:         "Test Blog",
		Description:  "A blog for tests",
		URL:          "https://example.com",
		Language:     language.English,
		Sections:     []SectionID{"home", "posts", "about"},
		FeedSections: []SectionID{"posts"},
	}
}

func day(d int) time.Time {
	return time.Date(2022, time.August, d, 12, 0, 0, 0, time.UTC)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.Name = " " }},
		{"unparseable url", func(c *Config) { c.URL = "http://[::1" }},
		{"relative url", func(c *Config) { c.URL = "/blog" }},
		{"no sections", func(c *Config) { c.Sections = nil }},
		{"duplicate section", func(c *Config) { c.Sections = []SectionID{"posts", "about", "posts"} }},
		{"empty section id", func(c *Config) { c.Sections = []SectionID{"posts", ""} }},
		{"undeclared feed section", func(c *Config) { c.FeedSections = []SectionID{"news"} }},
	}

	require.NoError(t, testConfig().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestConfigHelpers(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "Posts", cfg.SectionTitle("posts"))
	assert.Equal(t, "Release Notes", cfg.SectionTitle("release-notes"))
	assert.Equal(t, "https://example.com/posts/hello", cfg.AbsoluteURL("/posts/hello"))
	assert.Equal(t, "en", cfg.LanguageCode())
	assert.True(t, cfg.HasSection("about"))
	assert.False(t, cfg.HasSection("news"))

	cfg.URL = "https://example.com/"
	assert.Equal(t, "https://example.com/feed.xml", cfg.AbsoluteURL("feed.xml"))
}

func TestTagNormalized(t *testing.T) {
	tests := map[Tag]string{
		"intro":          "intro",
		"Swift UI":       "swift-ui",
		"  C++ & Go  ":   "c-go",
		"release/2.0":    "release-2-0",
		"Ünïcode":        "ünïcode",
		"already-dashed": "already-dashed",
		"++":             "_2b2b",
		"🙂":              "_f09f9982",
	}
	for tag, want := range tests {
		assert.Equal(t, want, tag.Normalized(), "tag %q", tag)
	}
	assert.Equal(t, "/tags/swift-ui", Tag("Swift UI").Path())
	assert.Equal(t, "/tags/_2b2b", Tag("++").Path())
}

func TestSortedTagsDeduplicates(t *testing.T) {
	in := []Tag{"swift", "go", "swift", "css", "go"}
	assert.Equal(t, []Tag{"css", "go", "swift"}, SortedTags(in))
	assert.Equal(t, []Tag{"swift", "go", "swift", "css", "go"}, in, "input must not be modified")
}

func TestSortedTagsMergesSpellings(t *testing.T) {
	in := []Tag{"go", "swift", "Go", "Swift UI", "swift-ui"}
	assert.Equal(t, []Tag{"Go", "swift", "Swift UI"}, SortedTags(in))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []Tag{"intro", "swift"}, ParseTags("intro, swift,"))
	assert.Empty(t, ParseTags(" , "))
}

func TestNewContextGroupsAndSorts(t *testing.T) {
	items := []*Item{
		{SectionID: "posts", Slug: "old", Date: day(1), Tags: []Tag{"intro"}},
		{SectionID: "posts", Slug: "new", Date: day(20), Tags: []Tag{"swift", "intro"}},
		{SectionID: "about", Slug: "me", Date: day(10)},
		{SectionID: "posts", Slug: "mid", Date: day(10), Tags: []Tag{"swift"}},
	}
	meta := map[SectionID]SectionMeta{"about": {Title: "About me", Description: "Who I am"}}

	ctx, err := NewContext(testConfig(), Index{}, meta, items, nil)
	require.NoError(t, err)

	assert.Equal(t, "Test Blog", ctx.Index.Title)
	assert.Equal(t, "A blog for tests", ctx.Index.Description)

	var slugs []string
	for _, i := range ctx.AllItems() {
		slugs = append(slugs, i.Slug)
	}
	assert.Equal(t, []string{"new", "me", "mid", "old"}, slugs)

	require.Len(t, ctx.Sections(), 3)
	assert.Equal(t, SectionID("home"), ctx.Sections()[0].ID)
	assert.Empty(t, ctx.Section("home").Items)
	assert.Len(t, ctx.Section("posts").Items, 3)
	assert.Equal(t, "new", ctx.Section("posts").Items[0].Slug)
	assert.Equal(t, "About me", ctx.Section("about").Title)
	assert.Equal(t, "Posts", ctx.Section("posts").Title)

	tagged := ctx.Items("intro")
	require.Len(t, tagged, 2)
	assert.Equal(t, "new", tagged[0].Slug)
	assert.Equal(t, "old", tagged[1].Slug)

	assert.Equal(t, []Tag{"intro", "swift"}, ctx.AllTags())
	assert.Len(t, ctx.ItemsIn("posts"), 3)
}

func TestNewContextRejectsUnknownSection(t *testing.T) {
	items := []*Item{{SectionID: "news", Slug: "x"}}
	_, err := NewContext(testConfig(), Index{}, nil, items, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSection))

	_, err = NewContext(testConfig(), Index{}, map[SectionID]SectionMeta{"news": {}}, nil, nil)
	assert.True(t, errors.Is(err, ErrUnknownSection))
}

func TestNewContextRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.URL = "not a url"
	_, err := NewContext(cfg, Index{}, nil, nil, nil)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestSortByDateDescendingIsNonIncreasing(t *testing.T) {
	var items []*Item
	for i, d := range []int{3, 17, 3, 28, 1, 17, 9} {
		items = append(items, &Item{SectionID: "posts", Slug: string(rune('a' + i)), Date: day(d)})
	}
	SortByDateDescending(items)
	for i := 1; i < len(items); i++ {
		assert.False(t, items[i].Date.After(items[i-1].Date), "item %d is newer than its predecessor", i)
	}
	assert.Equal(t, day(28), LatestDate(items))
	assert.True(t, LatestDate(nil).IsZero())
}

func TestItemPaths(t *testing.T) {
	item := &Item{SectionID: "posts", Slug: "hello", Date: day(7), Tags: []Tag{"intro"}}
	assert.Equal(t, "/posts/hello", item.Path())
	assert.Equal(t, "August 7, 2022", item.FormatDate())
	assert.True(t, item.HasTag("intro"))
	assert.Equal(t, "/about", (&Section{ID: "about"}).Path())
	assert.Equal(t, "/colophon", (&Page{Path: "colophon"}).URLPath())
}

func TestTagsAreMatchedByNormalizedForm(t *testing.T) {
	items := []*Item{
		{SectionID: "posts", Slug: "upper", Date: day(2), Tags: []Tag{"++", "Go"}},
		{SectionID: "posts", Slug: "lower", Date: day(1), Tags: []Tag{"go"}},
	}
	ctx, err := NewContext(testConfig(), Index{}, nil, items, nil)
	require.NoError(t, err)

	assert.Equal(t, []Tag{"++", "Go"}, ctx.AllTags())

	var slugs []string
	for _, i := range ctx.Items("go") {
		slugs = append(slugs, i.Slug)
	}
	assert.Equal(t, []string{"upper", "lower"}, slugs)
	assert.Len(t, ctx.Items("++"), 1)
}

func TestNewContextRejectsConflictingPaths(t *testing.T) {
	posts := []*Item{{SectionID: "posts", Slug: "hello", Date: day(1), Tags: []Tag{"go"}}}

	tests := map[string]struct {
		items []*Item
		pages []*Page
	}{
		"page over section":   {pages: []*Page{{Path: "posts"}}},
		"page over tag list":  {pages: []*Page{{Path: "tags"}}},
		"page over tag":       {items: posts, pages: []*Page{{Path: "tags/go"}}},
		"page over item":      {items: posts, pages: []*Page{{Path: "posts/hello"}}},
		"page over index":     {pages: []*Page{{Path: ""}}},
		"duplicate pages":     {pages: []*Page{{Path: "notes"}, {Path: "notes/"}}},
		"duplicate item slug": {items: append(slices.Clone(posts), &Item{SectionID: "posts", Slug: "hello", Date: day(2)})},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewContext(testConfig(), Index{}, nil, tc.items, tc.pages)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrPathConflict))
		})
	}

	cfg := testConfig()
	cfg.Sections = append(cfg.Sections, "tags")
	_, err := NewContext(cfg, Index{}, nil, nil, nil)
	assert.True(t, errors.Is(err, ErrPathConflict))

	_, err = NewContext(testConfig(), Index{}, nil, posts, []*Page{{Path: "colophon"}, {Path: "notes"}})
	assert.NoError(t, err)
}
