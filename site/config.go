// Package site holds the blog's configuration and the immutable content
// records that flow from ingestion into the theme.
package site

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid site configuration")

// SectionID names a top-level content grouping such as "posts".
type SectionID string

func (id SectionID) String() string { return string(id) }

// Attribution is the "generated using" link in the page footer.
type Attribution struct {
	Text string
	URL  string
}

// Config is the global identity of the site. It is built once at startup
// and never modified afterwards.
type Config struct {
	Name        string
	Description string
	URL         string
	Language    language.Tag
	Author      string

	// Sections is the closed, ordered set of sections. Navigation lists
	// them in this order.
	Sections []SectionID

	// FeedSections restricts which sections appear in the feed.
	FeedSections []SectionID

	// ClassPrefix is prepended to every highlighted token class.
	ClassPrefix string

	Attribution Attribution
}

// Validate reports malformed configuration. Any error is fatal for a build.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: site name is empty", ErrInvalidConfig)
	}

	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("%w: base URL %q: %v", ErrInvalidConfig, c.URL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: base URL %q must be absolute", ErrInvalidConfig, c.URL)
	}

	if len(c.Sections) == 0 {
		return fmt.Errorf("%w: no sections declared", ErrInvalidConfig)
	}
	seen := make(map[SectionID]bool, len(c.Sections))
	for _, id := range c.Sections {
		if id == "" {
			return fmt.Errorf("%w: empty section identifier", ErrInvalidConfig)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidConfig, id)
		}
		seen[id] = true
	}
	for _, id := range c.FeedSections {
		if !seen[id] {
			return fmt.Errorf("%w: feed section %q is not declared", ErrInvalidConfig, id)
		}
	}

	return nil
}

// HasSection reports whether id is one of the declared sections.
func (c *Config) HasSection(id SectionID) bool {
	for _, s := range c.Sections {
		if s == id {
			return true
		}
	}
	return false
}

// SectionTitle is the display title used when a section has no index.md
// of its own.
func (c *Config) SectionTitle(id SectionID) string {
	tag := c.Language
	if tag == language.Und {
		tag = language.English
	}
	return cases.Title(tag).String(strings.ReplaceAll(id.String(), "-", " "))
}

// AbsoluteURL joins a site-relative path onto the base URL.
func (c *Config) AbsoluteURL(path string) string {
	return strings.TrimSuffix(c.URL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// LanguageCode is the value of the html lang attribute.
func (c *Config) LanguageCode() string {
	if c.Language == language.Und {
		return ""
	}
	return c.Language.String()
}
