package theme

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type attrs []html.Attribute

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func class(name string) attrs {
	if name == "" {
		return nil
	}
	return attrs{attr("class", name)}
}

func href(url string) attrs {
	return attrs{attr("href", url)}
}

// element builds an element node. nil children are skipped so optional
// parts of a component can be left out inline.
func element(a atom.Atom, at attrs, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: at}
	for _, c := range children {
		if c != nil {
			n.AppendChild(c)
		}
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func link(label, url string, at ...html.Attribute) *html.Node {
	return element(atom.A, append(href(url), at...), text(label))
}

// fragment parses an HTML fragment produced by the markdown pipeline into
// nodes and appends them under a new element. Fragments that fail to parse
// are kept verbatim.
func fragment(a atom.Atom, at attrs, body string) *html.Node {
	n := element(a, at)
	if body == "" {
		return n
	}
	nodes, err := html.ParseFragment(strings.NewReader(body), &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	})
	if err != nil {
		n.AppendChild(&html.Node{Type: html.RawNode, Data: body})
		return n
	}
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return n
}

// Write serializes a rendered page.
func Write(w io.Writer, doc *html.Node) error {
	return html.Render(w, doc)
}
