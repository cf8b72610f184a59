package theme

import (
	"github.com/jdiggity/blog/site"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Paths of the site-wide resources every page links to.
const (
	StylesheetPath = "/styles.css"
	HighlightPath  = "/highlight.css"
	FeedPath       = "/feed.xml"
)

func wrapper(children ...*html.Node) *html.Node {
	return element(atom.Div, class("wrapper"), children...)
}

func head(ctx *site.Context, title, description string) *html.Node {
	cfg := ctx.Config
	if title == "" || title == cfg.Name {
		title = cfg.Name
	} else {
		title = title + " | " + cfg.Name
	}
	if description == "" {
		description = cfg.Description
	}

	return element(atom.Head, nil,
		element(atom.Meta, attrs{attr("charset", "UTF-8")}),
		element(atom.Meta, attrs{attr("name", "viewport"), attr("content", "width=device-width, initial-scale=1.0")}),
		element(atom.Title, nil, text(title)),
		element(atom.Meta, attrs{attr("name", "description"), attr("content", description)}),
		element(atom.Meta, attrs{attr("property", "og:site_name"), attr("content", cfg.Name)}),
		element(atom.Meta, attrs{attr("property", "og:title"), attr("content", title)}),
		element(atom.Link, attrs{attr("rel", "stylesheet"), attr("href", StylesheetPath), attr("type", "text/css")}),
		element(atom.Link, attrs{attr("rel", "stylesheet"), attr("href", HighlightPath), attr("type", "text/css")}),
		element(atom.Link, attrs{
			attr("rel", "alternate"),
			attr("href", cfg.AbsoluteURL(FeedPath)),
			attr("type", "application/atom+xml"),
			attr("title", "Subscription"),
		}),
	)
}

// siteHeader renders the home link and, when the site has more than one
// section, a navigation bar with the selected section marked.
func siteHeader(ctx *site.Context, selected site.SectionID) *html.Node {
	var nav *html.Node
	if sections := ctx.Sections(); len(sections) > 1 {
		list := element(atom.Ul, nil)
		for _, s := range sections {
			var at []html.Attribute
			if s.ID == selected {
				at = append(at, attr("class", "selected"))
			}
			list.AppendChild(element(atom.Li, nil, link(s.Title, s.Path(), at...)))
		}
		nav = element(atom.Nav, nil, list)
	}

	return element(atom.Header, nil,
		wrapper(
			link(ctx.Config.Name, "/", attr("class", "site-name")),
			nav,
		),
	)
}

func itemList(items []*site.Item) *html.Node {
	list := element(atom.Ul, class("item-list"))
	for _, item := range items {
		list.AppendChild(element(atom.Li, nil,
			element(atom.Article, nil,
				element(atom.H1, nil, link(item.Title, item.Path())),
				itemTagList(item),
				element(atom.P, nil, text(item.Description)),
			),
		))
	}
	return list
}

func itemTagList(item *site.Item) *html.Node {
	list := element(atom.Ul, class("tag-list"))
	for _, tag := range item.Tags {
		list.AppendChild(element(atom.Li, nil, link(tag.String(), tag.Path())))
	}
	return list
}

func siteFooter(ctx *site.Context) *html.Node {
	at := ctx.Config.Attribution
	var generated *html.Node
	if at.Text != "" {
		generated = element(atom.P, nil, text("Generated using "), link(at.Text, at.URL))
	}
	return element(atom.Footer, nil,
		generated,
		element(atom.P, nil, link("Atom feed", FeedPath)),
	)
}
