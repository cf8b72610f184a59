package highlight

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blogModifier(t *testing.T, prefix string) (*Modifier, Grammar, Grammar) {
	t.Helper()
	yaml, err := LookupGrammar("yaml")
	require.NoError(t, err)
	swift, err := LookupGrammar("swift")
	require.NoError(t, err)
	return NewModifier(Format{ClassPrefix: prefix}, yaml, swift), yaml, swift
}

func TestLookupGrammarUnknown(t *testing.T) {
	_, err := LookupGrammar("definitely-not-a-language")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownGrammar))
	assert.Panics(t, func() { MustLookupGrammar("definitely-not-a-language") })
}

func TestModifyUsesEachBlocksGrammar(t *testing.T) {
	m, yaml, swift := blogModifier(t, "")

	yamlSource := "name: blog\nsections:\n  - posts"
	swiftSource := "let answer = 42\nprint(answer)"

	got, ok := m.Modify("```yaml\n" + yamlSource + "\n```")
	require.True(t, ok)
	assert.Equal(t, "<pre><code>"+m.Highlight(yamlSource, yaml)+"\n</code></pre>", got)
	assert.NotEqual(t, m.Highlight(yamlSource, yaml), m.Highlight(yamlSource, swift))

	got, ok = m.Modify("```swift\n" + swiftSource + "\n```")
	require.True(t, ok)
	assert.Equal(t, "<pre><code>"+m.Highlight(swiftSource, swift)+"\n</code></pre>", got)
	assert.NotEqual(t, m.Highlight(swiftSource, swift), m.Highlight(swiftSource, yaml))
	assert.NotContains(t, got, "```")
}

func TestModifyUnknownTagFallsBackToFirstGrammar(t *testing.T) {
	m, yaml, _ := blogModifier(t, "")
	source := "fn main() {}"

	got, ok := m.Modify("```rust\n" + source + "\n```")
	require.True(t, ok)
	assert.Equal(t, "<pre><code>"+m.Highlight(source, yaml)+"\n</code></pre>", got)

	got, ok = m.Modify("```\n" + source + "\n```")
	require.True(t, ok)
	assert.Equal(t, "<pre><code>"+m.Highlight(source, yaml)+"\n</code></pre>", got)
	assert.Equal(t, "yaml", m.Default().Name)
}

func TestModifyNoHighlightBypasses(t *testing.T) {
	m, _, _ := blogModifier(t, "")
	got, ok := m.Modify("```no-highlight\nlet x = 1\n```")
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestModifyEdgeShapes(t *testing.T) {
	m := NewModifier(Format{})

	tests := []struct {
		name  string
		block string
		want  string
	}{
		{"tag line only", "```swift", ""},
		{"empty body", "```swift\n```", ""},
		{"missing closing fence", "```\nplain words", "plain words"},
		{"escapes markup", "```\n<b>&</b>\n```", "&lt;b&gt;&amp;&lt;/b&gt;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Modify(tt.block)
			require.True(t, ok)
			assert.True(t, strings.HasPrefix(got, "<pre><code>"))
			assert.True(t, strings.HasSuffix(got, "\n</code></pre>"))
			assert.Contains(t, got, tt.want)
			assert.NotContains(t, got, "```")
			assert.NotContains(t, got, "<b>")
		})
	}
}

func TestSelectIsFirstMatchInRegistrationOrder(t *testing.T) {
	swift := NewGrammar("swift", lexers.Get("swift"))
	swiftUI := NewGrammar("swiftui", lexers.Get("swift"))

	m := NewModifier(Format{}, swift, swiftUI)
	assert.Equal(t, "swift", m.Select("swiftui\nText(\"hi\")").Name)

	m = NewModifier(Format{}, swiftUI, swift)
	assert.Equal(t, "swiftui", m.Select("swiftui\nText(\"hi\")").Name)
	assert.Equal(t, "swift", m.Select("swift\nlet x = 1").Name)
}

func TestNewModifierDuplicateKeepsPositionTakesLastLexer(t *testing.T) {
	first := NewGrammar("conf", lexers.Get("yaml"))
	other := NewGrammar("go", lexers.Get("go"))
	last := NewGrammar("conf", lexers.Get("ini"))

	m := NewModifier(Format{}, first, other, last)
	grammars := m.Grammars()
	require.Len(t, grammars, 2)
	assert.Equal(t, "conf", grammars[0].Name)
	assert.Equal(t, last.Lexer, grammars[0].Lexer)
	assert.Equal(t, "go", grammars[1].Name)
}

func TestNewModifierWithoutGrammarsUsesPlainText(t *testing.T) {
	m := NewModifier(Format{})
	assert.Equal(t, PlainText, m.Default().Name)

	got, ok := m.Modify("```swift\nlet x = 1\n```")
	require.True(t, ok)
	assert.Contains(t, got, "let x = 1")
	assert.NotContains(t, got, "class=")
}

func TestClassPrefixAppliesToTokens(t *testing.T) {
	m, _, swift := blogModifier(t, "hl-")
	out := m.Highlight("let answer = 42", swift)
	assert.Contains(t, out, `class="hl-`)
	assert.NotContains(t, out, "<pre")
	assert.Equal(t, "hl-", m.Format().ClassPrefix)
}

func TestWriteCSS(t *testing.T) {
	m, _, _ := blogModifier(t, "hl-")

	var buf bytes.Buffer
	require.NoError(t, m.WriteCSS(&buf, "github"))
	assert.Contains(t, buf.String(), ".hl-")

	buf.Reset()
	require.NoError(t, m.WriteCSS(&buf, "no-such-style"))
	assert.True(t, strings.Contains(buf.String(), "{"))
}
