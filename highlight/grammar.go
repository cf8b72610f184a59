package highlight

import (
	"errors"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ErrUnknownGrammar is returned by LookupGrammar when no lexer exists for
// the requested language.
var ErrUnknownGrammar = errors.New("unknown grammar")

// PlainText is the tag of the grammar used when nothing else is registered.
const PlainText = "text"

// Grammar binds a fence language tag to the lexer that tokenizes it.
type Grammar struct {
	Name  string
	Lexer chroma.Lexer
}

// NewGrammar wraps lexer so adjacent tokens of the same type are merged.
func NewGrammar(name string, lexer chroma.Lexer) Grammar {
	return Grammar{Name: name, Lexer: chroma.Coalesce(lexer)}
}

// LookupGrammar resolves a chroma lexer by name or alias and registers it
// under that name.
func LookupGrammar(name string) (Grammar, error) {
	lexer := lexers.Get(name)
	if lexer == nil {
		return Grammar{}, fmt.Errorf("%w: %q", ErrUnknownGrammar, name)
	}
	return NewGrammar(name, lexer), nil
}

// MustLookupGrammar is LookupGrammar for compiled-in registrations.
func MustLookupGrammar(name string) Grammar {
	g, err := LookupGrammar(name)
	if err != nil {
		panic(err)
	}
	return g
}

func plainTextGrammar() Grammar {
	return NewGrammar(PlainText, lexers.Fallback)
}
