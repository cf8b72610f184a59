package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/jdiggity/blog/site"
	"github.com/jdiggity/blog/theme"
	atom "github.com/thomas11/atomgenerator"
)

// RenderFeed writes the feed of the configured feed sections.
func (s *Site) RenderFeed() error {
	filePath := filepath.Join(s.conf.OutDir, filepath.FromSlash(theme.FeedPath))
	feedXml, err := s.renderFeed(s.ctx.ItemsIn(s.ctx.Config.FeedSections...))
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, feedXml, os.FileMode(0664))
}

func (s *Site) renderFeed(items []*site.Item) ([]byte, error) {
	cfg := s.ctx.Config

	pubDate := site.LatestDate(items)
	if pubDate.IsZero() {
		pubDate = time.Now()
	}

	feed := atom.Feed{
		Title:   cfg.Name,
		Link:    cfg.AbsoluteURL("/"),
		PubDate: pubDate,
	}
	author := cfg.Author
	if author == "" {
		author = cfg.Name
	}
	feed.AddAuthor(atom.Author{
		Name: author,
		Uri:  cfg.URL,
	})

	for _, item := range items {
		feed.AddEntry(s.entryForItem(item))
	}

	if errs := feed.Validate(); len(errs) > 0 {
		for _, e := range errs {
			s.logger.Error("Feed is not valid", "error", e)
		}
		return nil, errors.Join(errs...)
	}

	return feed.GenXml()
}

func (s *Site) entryForItem(item *site.Item) *atom.Entry {
	summary := item.Description
	if summary == "" {
		summary = item.Title
	}
	e := &atom.Entry{
		Title:       item.Title,
		Description: summary,
		Link:        s.ctx.Config.AbsoluteURL(item.Path()),
		PubDate:     item.Date,
		Content:     item.Body,
	}
	for _, tag := range item.Tags {
		e.AddCategory(atom.Category{Term: tag.String()})
	}
	return e
}
