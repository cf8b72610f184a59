// Package markdown converts post bodies to HTML, handing every fenced code
// block to a highlight.Modifier on the way.
package markdown

import (
	"io"

	"github.com/jdiggity/blog/highlight"
	"github.com/russross/blackfriday/v2"
)

const htmlFlags = blackfriday.UseXHTML |
	blackfriday.Smartypants |
	blackfriday.SmartypantsFractions |
	blackfriday.SmartypantsLatexDashes

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Autolink |
	blackfriday.Strikethrough |
	blackfriday.HeadingIDs

// Pipeline is an immutable markdown-to-HTML converter. It is safe to reuse
// for any number of documents.
type Pipeline struct {
	modifier *highlight.Modifier
}

// New builds a pipeline that routes fenced code blocks through modifier. A
// nil modifier leaves code blocks to blackfriday's default rendering.
func New(modifier *highlight.Modifier) *Pipeline {
	return &Pipeline{modifier: modifier}
}

// Convert renders one markdown document to an HTML fragment.
func (p *Pipeline) Convert(src []byte) []byte {
	var r blackfriday.Renderer = blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: htmlFlags,
	})
	if p.modifier != nil {
		r = codeBlockRenderer{Renderer: r, modifier: p.modifier}
	}
	return blackfriday.Run(src, blackfriday.WithRenderer(r), blackfriday.WithExtensions(extensions))
}

type codeBlockRenderer struct {
	blackfriday.Renderer
	modifier *highlight.Modifier
}

func (c codeBlockRenderer) RenderNode(w io.Writer, node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
	if node.Type == blackfriday.CodeBlock && node.IsFenced {
		if out, ok := c.modifier.Modify(fencedSource(node)); ok {
			io.WriteString(w, out)
			io.WriteString(w, "\n")
			return blackfriday.GoToNext
		}
	}
	return c.Renderer.RenderNode(w, node, entering)
}

// fencedSource rebuilds the markdown of a fenced block from its node: the
// opening fence with its info string, the literal body and the closing fence.
func fencedSource(node *blackfriday.Node) string {
	return "```" + string(node.Info) + "\n" + string(node.Literal) + "```"
}
