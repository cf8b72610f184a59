// Command blog is the static site generator for Joe's Blog. It reads
// markdown from the content directory, highlights fenced code blocks,
// renders every page through the theme and writes the site, its feed and
// its sitemap to the output directory.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jdiggity/blog/highlight"
	"github.com/jdiggity/blog/markdown"
	"github.com/jdiggity/blog/site"
	"github.com/jdiggity/blog/theme"
	"github.com/otiai10/copy"
)

type Site struct {
	ctx      *site.Context
	conf     *BuildConf
	modifier *highlight.Modifier
	logger   *slog.Logger
}

// ReadSite loads and converts all content. Nothing is written: a bad
// configuration or content file fails here, before the output directory is
// touched.
func ReadSite(cfg *site.Config, modifier *highlight.Modifier, conf *BuildConf, drafts bool, logger *slog.Logger) (*Site, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c, err := readContent(conf.ContentDir, cfg, markdown.New(modifier), drafts, logger)
	if err != nil {
		return nil, err
	}

	ctx, err := site.NewContext(cfg, c.index, c.sections, c.items, c.pages)
	if err != nil {
		return nil, err
	}

	return &Site{
		ctx:      ctx,
		conf:     conf,
		modifier: modifier,
		logger:   logger,
	}, nil
}

// RenderHtml writes one page per page kind instance.
func (s *Site) RenderHtml() error {
	pw := newPageWriter(s.conf.OutDir, s.ctx)
	pages := theme.Pages(s.ctx)
	for _, p := range pages {
		if err := pw.write(p); err != nil {
			return fmt.Errorf("render %s: %w", p.Path(), err)
		}
	}
	s.logger.Info("Rendered pages", "pages", len(pages))
	return nil
}

// RenderHighlightCSS writes the stylesheet for highlighted code.
func (s *Site) RenderHighlightCSS() (err error) {
	f, err := os.Create(filepath.Join(s.conf.OutDir, filepath.FromSlash(theme.HighlightPath)))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return s.modifier.WriteCSS(f, s.conf.HighlightStyle)
}

// RenderAll replaces the output directory with a freshly generated site.
func (s *Site) RenderAll() error {
	s.logger.Info("Writing site", "dir", s.conf.OutDir)
	if err := os.RemoveAll(s.conf.OutDir); err != nil {
		return err
	}
	if err := os.MkdirAll(s.conf.OutDir, os.FileMode(0775)); err != nil {
		return err
	}

	steps := []func() error{
		s.CopyResources,
		s.RenderHtml,
		s.RenderHighlightCSS,
		s.RenderFeed,
		s.RenderSitemap,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// CopyResources copies the theme's files and the site's own resources into
// the output root. Either directory may be absent.
func (s *Site) CopyResources() error {
	for _, srcDir := range []string{s.conf.ThemeDir, s.conf.ResourcesDir} {
		if _, err := os.Stat(srcDir); errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("No resources to copy", "dir", srcDir)
			continue
		}
		s.logger.Info("Copying resources", "from", srcDir, "to", s.conf.OutDir)
		if err := copy.Copy(srcDir, s.conf.OutDir); err != nil {
			return fmt.Errorf("copy resources: %w", err)
		}
	}
	return nil
}
