package main

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"time"

	"github.com/jdiggity/blog/site"
)

const sitemapFile = "sitemap.xml"

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func buildSitemap(ctx *site.Context) urlSet {
	cfg := ctx.Config
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	add := func(path string, lastMod time.Time, freq string) {
		u := sitemapURL{Loc: cfg.AbsoluteURL(path), ChangeFreq: freq}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, u)
	}

	add("/", site.LatestDate(ctx.AllItems()), "daily")
	for _, s := range ctx.Sections() {
		add(s.Path(), site.LatestDate(s.Items), "daily")
	}
	for _, item := range ctx.AllItems() {
		add(item.Path(), item.Date, "monthly")
	}
	for _, p := range ctx.Pages() {
		add(p.URLPath(), time.Time{}, "monthly")
	}
	return set
}

// RenderSitemap writes sitemap.xml for the index, sections, items and pages.
func (s *Site) RenderSitemap() error {
	out, err := xml.MarshalIndent(buildSitemap(s.ctx), "", "  ")
	if err != nil {
		return err
	}
	out = append([]byte(xml.Header), out...)
	return os.WriteFile(filepath.Join(s.conf.OutDir, sitemapFile), out, os.FileMode(0664))
}
