// Package grammar holds the EBNF description of the C subset accepted by
// the parser, and a lexer driven by its lexical productions.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"reflect"
	"slices"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

//go:embed c.ebnf
var source []byte

const (
	// Start is the syntactic start production.
	Start = "Program"
	// TokenStart is the lexical start production. Each of its
	// alternatives names a token kind.
	TokenStart = "token"
)

// Source returns the text of the embedded grammar.
func Source() []byte {
	return slices.Clone(source)
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse("c.ebnf", bytes.NewReader(source))
}

// Parse reads a grammar in the same notation as the embedded one.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Verify checks that every production referenced is defined and that every
// production is reachable from Start or TokenStart.
func Verify(g ebnf.Grammar) error {
	for _, name := range []string{Start, TokenStart} {
		if _, ok := g[name]; !ok {
			return fmt.Errorf("no start production %s", name)
		}
	}
	const root = "Source"
	rooted := make(ebnf.Grammar, len(g)+1)
	for name, prod := range g {
		rooted[name] = prod
	}
	rooted[root] = &ebnf.Production{
		Name: &ebnf.Name{String: root},
		Expr: ebnf.Alternative{&ebnf.Name{String: Start}, &ebnf.Name{String: TokenStart}},
	}
	return ebnf.Verify(rooted, root)
}

// Errors splits an error returned by Parse or Verify into its parts.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	v := reflect.ValueOf(err)
	if v.Kind() != reflect.Slice {
		return []error{err}
	}
	errs := make([]error, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if e, ok := v.Index(i).Interface().(error); ok {
			errs = append(errs, e)
		}
	}
	return errs
}

// Keywords returns the identifier-shaped literals used by the syntactic
// productions, sorted.
func Keywords(g ebnf.Grammar) []string {
	seen := map[string]bool{}
	for name, prod := range g {
		if isLexical(name) || prod.Expr == nil {
			continue
		}
		walk(prod.Expr, func(tok *ebnf.Token) {
			if isWord(tok.String) {
				seen[tok.String] = true
			}
		})
	}
	words := make([]string, 0, len(seen))
	for w := range seen {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// Literals returns every literal used by the syntactic productions, sorted.
func Literals(g ebnf.Grammar) []string {
	seen := map[string]bool{}
	for name, prod := range g {
		if isLexical(name) || prod.Expr == nil {
			continue
		}
		walk(prod.Expr, func(tok *ebnf.Token) {
			seen[tok.String] = true
		})
	}
	lits := make([]string, 0, len(seen))
	for l := range seen {
		lits = append(lits, l)
	}
	slices.Sort(lits)
	return lits
}

func walk(expr ebnf.Expression, visit func(*ebnf.Token)) {
	switch e := expr.(type) {
	case *ebnf.Token:
		visit(e)
	case ebnf.Sequence:
		for _, x := range e {
			walk(x, visit)
		}
	case ebnf.Alternative:
		for _, x := range e {
			walk(x, visit)
		}
	case *ebnf.Group:
		walk(e.Body, visit)
	case *ebnf.Option:
		walk(e.Body, visit)
	case *ebnf.Repetition:
		walk(e.Body, visit)
	}
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i, ch := range s {
		if !(ch == '_' || unicode.IsLetter(ch) || i > 0 && unicode.IsDigit(ch)) {
			return false
		}
	}
	return true
}
