// Package highlight replaces fenced markdown code blocks with
// syntax-highlighted HTML.
package highlight

import (
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	fence = "```"

	// NoHighlight opts a fenced block out of highlighting.
	NoHighlight = "no-highlight"
)

// Format configures the markup emitted for highlighted tokens.
type Format struct {
	// ClassPrefix is prepended to every token class, e.g. "hl-" yields
	// class="hl-kd" for a declaration keyword.
	ClassPrefix string
	TabWidth    int
}

func (f Format) formatter() *chromahtml.Formatter {
	opts := []chromahtml.Option{
		chromahtml.WithClasses(true),
		chromahtml.ClassPrefix(f.ClassPrefix),
		chromahtml.PreventSurroundingPre(true),
	}
	if f.TabWidth > 0 {
		opts = append(opts, chromahtml.TabWidth(f.TabWidth))
	}
	return chromahtml.New(opts...)
}

// Modifier highlights fenced code blocks. It is immutable once built and
// applies the same grammar table to every block it is given.
type Modifier struct {
	format    Format
	formatter *chromahtml.Formatter
	grammars  []Grammar
}

// NewModifier builds a modifier for grammars in registration order. The
// first grammar is the default for blocks whose tag matches nothing. A tag
// registered twice keeps its first position and its last lexer. Without
// grammars every block is highlighted as plain text.
func NewModifier(format Format, grammars ...Grammar) *Modifier {
	m := &Modifier{
		format:    format,
		formatter: format.formatter(),
	}
	for _, g := range grammars {
		if g.Lexer == nil {
			g.Lexer = lexers.Fallback
		}
		if i := m.index(g.Name); i >= 0 {
			m.grammars[i] = g
			continue
		}
		m.grammars = append(m.grammars, g)
	}
	if len(m.grammars) == 0 {
		m.grammars = append(m.grammars, plainTextGrammar())
	}
	return m
}

func (m *Modifier) index(name string) int {
	for i, g := range m.grammars {
		if g.Name == name {
			return i
		}
	}
	return -1
}

// Format returns the formatting options the modifier was built with.
func (m *Modifier) Format() Format { return m.format }

// Grammars returns the registered grammars in registration order.
func (m *Modifier) Grammars() []Grammar {
	return append([]Grammar(nil), m.grammars...)
}

// Default is the grammar used when no registered tag matches.
func (m *Modifier) Default() Grammar { return m.grammars[0] }

// Select picks the first registered grammar whose tag is a prefix of info.
// Overlapping tags such as "swift" and "swiftui" resolve to whichever was
// registered first.
func (m *Modifier) Select(info string) Grammar {
	for _, g := range m.grammars {
		if strings.HasPrefix(info, g.Name) {
			return g
		}
	}
	return m.Default()
}

// Modify turns the raw text of one fenced code block, fences included, into
// highlighted HTML. It returns false for blocks tagged no-highlight, which
// the caller must leave to the default rendering.
func (m *Modifier) Modify(block string) (string, bool) {
	markdown := strings.TrimPrefix(block, fence)
	if strings.HasPrefix(markdown, NoHighlight) {
		return "", false
	}

	grammar := m.Select(markdown)

	source := ""
	if i := strings.IndexByte(markdown, '\n'); i >= 0 {
		source = markdown[i+1:]
	}
	source = strings.TrimSuffix(source, fence)
	source = strings.TrimSuffix(source, "\n")

	return "<pre><code>" + m.Highlight(source, grammar) + "\n</code></pre>", true
}

// Highlight renders source with grammar. Tokenizer failures degrade to
// escaped, unstyled text.
func (m *Modifier) Highlight(source string, grammar Grammar) string {
	lexer := grammar.Lexer
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return html.EscapeString(source)
	}

	var b strings.Builder
	if err := m.formatter.Format(&b, styles.Fallback, it); err != nil {
		return html.EscapeString(source)
	}
	return b.String()
}

// WriteCSS writes the stylesheet for the modifier's token classes using the
// named chroma style. Unknown names fall back to chroma's default style.
func (m *Modifier) WriteCSS(w io.Writer, styleName string) error {
	return m.formatter.WriteCSS(w, lookupStyle(styleName))
}

func lookupStyle(name string) *chroma.Style {
	if name == "" {
		return styles.Fallback
	}
	return styles.Get(name)
}
