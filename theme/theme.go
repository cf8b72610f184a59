// Package theme renders the blog's pages as HTML node trees.
//
// Each page kind is a variant of the sealed Page interface and Render
// dispatches on it with a single type switch. Rendering never fails: absent
// optional fields render as empty content.
package theme

import (
	"fmt"

	"github.com/jdiggity/blog/site"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is one of IndexPage, SectionPage, ItemPage, StaticPage, TagListPage
// or TagDetailsPage.
type Page interface {
	// Path is the site-relative location the page is published at.
	Path() string
	isPage()
}

// IndexPage is the home page.
type IndexPage struct{}

// SectionPage lists the items of one section.
type SectionPage struct{ Section *site.Section }

// ItemPage shows a single item.
type ItemPage struct{ Item *site.Item }

// StaticPage shows a page outside any section.
type StaticPage struct{ Page *site.Page }

// TagListPage lists tags. Order and duplicates in Tags do not matter.
type TagListPage struct{ Tags []site.Tag }

// TagDetailsPage lists the items carrying Tag.
type TagDetailsPage struct{ Tag site.Tag }

func (IndexPage) Path() string        { return "/" }
func (p SectionPage) Path() string    { return p.Section.Path() }
func (p ItemPage) Path() string       { return p.Item.Path() }
func (p StaticPage) Path() string     { return p.Page.URLPath() }
func (TagListPage) Path() string      { return site.TagListPath }
func (p TagDetailsPage) Path() string { return p.Tag.Path() }

func (IndexPage) isPage()      {}
func (SectionPage) isPage()    {}
func (ItemPage) isPage()       {}
func (StaticPage) isPage()     {}
func (TagListPage) isPage()    {}
func (TagDetailsPage) isPage() {}

// Pages enumerates every page of the site in a stable order.
func Pages(ctx *site.Context) []Page {
	pages := []Page{IndexPage{}}
	for _, s := range ctx.Sections() {
		pages = append(pages, SectionPage{Section: s})
	}
	for _, item := range ctx.AllItems() {
		pages = append(pages, ItemPage{Item: item})
	}
	for _, p := range ctx.Pages() {
		pages = append(pages, StaticPage{Page: p})
	}
	tags := ctx.AllTags()
	pages = append(pages, TagListPage{Tags: tags})
	for _, t := range tags {
		pages = append(pages, TagDetailsPage{Tag: t})
	}
	return pages
}

// Render builds the complete document for page.
func Render(page Page, ctx *site.Context) *html.Node {
	var (
		title, description string
		body               *html.Node
	)

	switch p := page.(type) {
	case IndexPage:
		title, description = ctx.Config.Name, ctx.Index.Description
		body = indexBody(ctx)
	case SectionPage:
		title, description = p.Section.Title, p.Section.Description
		body = sectionBody(ctx, p.Section)
	case ItemPage:
		title, description = p.Item.Title, p.Item.Description
		body = itemBody(ctx, p.Item)
	case StaticPage:
		title, description = p.Page.Title, p.Page.Description
		body = staticBody(ctx, p.Page)
	case TagListPage:
		title = "All tags"
		body = tagListBody(ctx, p.Tags)
	case TagDetailsPage:
		title = p.Tag.String()
		body = tagDetailsBody(ctx, p.Tag)
	default:
		panic(fmt.Sprintf("theme: unknown page kind %T", page))
	}

	root := element(atom.Html, langAttr(ctx), head(ctx, title, description), body)
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(root)
	return doc
}

func langAttr(ctx *site.Context) attrs {
	if code := ctx.Config.LanguageCode(); code != "" {
		return attrs{attr("lang", code)}
	}
	return nil
}

func indexBody(ctx *site.Context) *html.Node {
	return element(atom.Body, nil,
		siteHeader(ctx, ""),
		wrapper(
			element(atom.H1, attrs{attr("style", "text-align: center;")}, text(ctx.Index.Title)),
			element(atom.P, class("description"), text(ctx.Index.Description)),
			fragment(atom.Div, class("content"), ctx.Index.Body),
			element(atom.H2, nil, text("Latest content")),
			itemList(ctx.AllItems()),
		),
		siteFooter(ctx),
	)
}

func sectionBody(ctx *site.Context, s *site.Section) *html.Node {
	items := append([]*site.Item(nil), s.Items...)
	site.SortByDateDescending(items)
	return element(atom.Body, nil,
		siteHeader(ctx, s.ID),
		wrapper(
			element(atom.H1, nil, text(s.Title)),
			fragment(atom.Div, class("content"), s.Body),
			itemList(items),
		),
		siteFooter(ctx),
	)
}

func itemBody(ctx *site.Context, item *site.Item) *html.Node {
	return element(atom.Body, class("item-page"),
		siteHeader(ctx, item.SectionID),
		wrapper(
			element(atom.Article, nil,
				element(atom.H1, nil, text(item.Title)),
				fragment(atom.Div, class("content"), item.Body),
				itemTagList(item),
			),
		),
		siteFooter(ctx),
	)
}

func staticBody(ctx *site.Context, p *site.Page) *html.Node {
	return element(atom.Body, nil,
		siteHeader(ctx, ""),
		wrapper(
			element(atom.H1, nil, text(p.Title)),
			fragment(atom.Div, class("content"), p.Body),
		),
		siteFooter(ctx),
	)
}

func tagListBody(ctx *site.Context, tags []site.Tag) *html.Node {
	list := element(atom.Ul, class("all-tags"))
	for _, tag := range site.SortedTags(tags) {
		list.AppendChild(element(atom.Li, class("tag"), link(tag.String(), tag.Path())))
	}
	return element(atom.Body, nil,
		siteHeader(ctx, ""),
		wrapper(
			element(atom.H1, nil, text("All tags")),
			list,
		),
		siteFooter(ctx),
	)
}

func tagDetailsBody(ctx *site.Context, tag site.Tag) *html.Node {
	return element(atom.Body, nil,
		siteHeader(ctx, ""),
		wrapper(
			element(atom.H1, nil,
				text("Tagged with "),
				element(atom.Span, class("tag"), text(tag.String())),
			),
			link("Browse all tags", site.TagListPath, attr("class", "browse-all")),
			itemList(ctx.Items(tag)),
		),
		siteFooter(ctx),
	)
}
