package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/jdiggity/blog/markdown"
	"github.com/jdiggity/blog/site"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const contentFileExtension = ".md"

var dateFormats = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

type frontMatter struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Date        string  `yaml:"date"`
	Tags        tagList `yaml:"tags"`
	Draft       bool    `yaml:"draft"`
}

// tagList accepts both "tags: a, b" and a YAML sequence.
type tagList []site.Tag

func (t *tagList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*t = site.ParseTags(value.Value)
	case yaml.SequenceNode:
		var raw []string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*t = site.ParseTags(strings.Join(raw, ","))
	default:
		return fmt.Errorf("line %d: tags must be a string or a list", value.Line)
	}
	return nil
}

// content is everything read from the content directory.
type content struct {
	index    site.Index
	sections map[site.SectionID]site.SectionMeta
	items    []*site.Item
	pages    []*site.Page
}

type document struct {
	meta  frontMatter
	title string
	body  string
	date  time.Time
}

func findContentFiles(dir, fileExtension string) ([]string, error) {
	files := make([]string, 0, 100)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, fileExtension) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// readContent loads every markdown file under dir. index.md is the home
// page, <section>/index.md describes a section, other files in a declared
// section are items and everything else is a static page.
func readContent(dir string, cfg *site.Config, md *markdown.Pipeline, drafts bool, logger *slog.Logger) (*content, error) {
	files, err := findContentFiles(dir, contentFileExtension)
	if err != nil {
		return nil, fmt.Errorf("find content: %w", err)
	}

	c := &content{sections: make(map[site.SectionID]site.SectionMeta)}
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)

		doc, err := readDocument(f, md)
		if err != nil {
			return nil, err
		}
		if doc.meta.Draft && !drafts {
			logger.Debug("Skipping draft", "path", rel)
			continue
		}

		sectionID, rest, inSection := strings.Cut(rel, "/")
		switch {
		case rel == "index.md":
			c.index = site.Index{Title: doc.title, Description: doc.meta.Description, Body: doc.body}
		case inSection && cfg.HasSection(site.SectionID(sectionID)) && rest == "index.md":
			c.sections[site.SectionID(sectionID)] = site.SectionMeta{
				Title:       doc.title,
				Description: doc.meta.Description,
				Body:        doc.body,
			}
		case inSection && cfg.HasSection(site.SectionID(sectionID)):
			slug := contentPath(rest)
			c.items = append(c.items, &site.Item{
				SectionID:   site.SectionID(sectionID),
				Slug:        slug,
				Title:       titleOr(doc.title, slug, cfg.Language),
				Description: doc.meta.Description,
				Body:        doc.body,
				Date:        doc.date,
				Tags:        doc.meta.Tags,
			})
		default:
			p := contentPath(rel)
			c.pages = append(c.pages, &site.Page{
				Path:        p,
				Title:       titleOr(doc.title, p, cfg.Language),
				Description: doc.meta.Description,
				Body:        doc.body,
			})
		}
	}

	logger.Info("Read content", "dir", dir, "items", len(c.items), "pages", len(c.pages))
	return c, nil
}

// contentPath maps a content file to its site-relative location:
// "notes/setup.md" is "notes/setup" and "notes/index.md" is "notes".
func contentPath(rel string) string {
	p := strings.TrimSuffix(rel, contentFileExtension)
	if p == "index" {
		return ""
	}
	return strings.TrimSuffix(p, "/index")
}

// titleOr returns title, or one derived from the last element of path.
// The home page and section listings fall back to site configuration
// instead, so they never get here.
func titleOr(title, path string, lang language.Tag) string {
	if title != "" {
		return title
	}
	return titleFromFilename(path, lang)
}

// readDocument reads one content file. Its title comes from front matter or
// a leading heading and is empty when neither is present.
func readDocument(path string, md *markdown.Pipeline) (*document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	doc := &document{}
	rest, err := frontmatter.Parse(f, &doc.meta, frontmatter.NewFormat("---", "---", yaml.Unmarshal))
	if err != nil {
		return nil, fmt.Errorf("front matter in %s: %w", path, err)
	}

	heading, body := splitTitleHeading(rest)
	doc.title = doc.meta.Title
	if doc.title == "" {
		doc.title = heading
	}
	doc.body = string(md.Convert(body))

	doc.date = info.ModTime()
	if doc.meta.Date != "" {
		doc.date, err = parseDate(doc.meta.Date)
		if err != nil {
			return nil, fmt.Errorf("date in %s: %w", path, err)
		}
	}

	return doc, nil
}

// splitTitleHeading removes a leading level one ATX heading, which the
// theme renders itself, and returns its text. Both "# Title" and "#Title"
// count, as do closing hashes such as "# Title #".
func splitTitleHeading(src []byte) (string, []byte) {
	trimmed := bytes.TrimLeft(src, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("#")) || bytes.HasPrefix(trimmed, []byte("##")) {
		return "", src
	}
	line, rest, _ := bytes.Cut(trimmed, []byte("\n"))
	title := strings.TrimSpace(string(line[1:]))
	title = strings.TrimSpace(strings.TrimRight(title, "#"))
	if title == "" {
		return "", src
	}
	return title, rest
}

func titleFromFilename(path string, lang language.Tag) string {
	name := strings.TrimSuffix(filepath.Base(path), contentFileExtension)
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	if lang == language.Und {
		lang = language.English
	}
	return cases.Title(lang).String(name)
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}
