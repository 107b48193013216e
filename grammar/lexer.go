package grammar

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"

	"github.com/romirk/sea/c/parser"
)

// Token kinds produced by the lexer besides the alternatives of TokenStart.
const (
	KindEOF   = "eof"
	KindError = "error"
)

// Token is a lexeme and where it starts.
type Token struct {
	Kind string
	Text string
	Pos  parser.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Text)
}

// Trivia reports whether the token separates other tokens without
// meaning anything itself.
func (t Token) Trivia() bool {
	return t.Kind == "space" || t.Kind == "comment"
}

type memoKey struct {
	name   string
	offset int
}

// Lexer splits input into tokens by matching the lexical productions of a
// grammar. At each position it takes the longest match among the kinds
// listed by TokenStart, preferring the earlier kind on a tie.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int // match length, -1 for no match
	visiting map[memoKey]bool
}

// NewLexer creates a lexer for input using the token kinds of g.
func NewLexer(g ebnf.Grammar, input []byte, filename string) (*Lexer, error) {
	prod, ok := g[TokenStart]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("grammar has no %s production", TokenStart)
	}
	var kinds []string
	alts, ok := prod.Expr.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{prod.Expr}
	}
	for _, alt := range alts {
		name, ok := alt.(*ebnf.Name)
		if !ok {
			return nil, fmt.Errorf("%s alternatives must be production names", TokenStart)
		}
		kinds = append(kinds, name.String)
	}
	return &Lexer{
		grammar:  g,
		kinds:    kinds,
		input:    input,
		filename: filename,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}, nil
}

// Position returns the current position in the input.
func (l *Lexer) Position() parser.Position {
	return parser.Position{
		File:   l.filename,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance(n int) {
	for _, ch := range string(l.input[l.pos : l.pos+n]) {
		if ch == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
	}
	l.pos += n
}

// Next returns the next token. At the end of input it returns an eof token
// and io.EOF. A byte no kind matches becomes a one-byte error token.
func (l *Lexer) Next() (Token, error) {
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Pos: start}, io.EOF
	}

	var bestKind string
	bestLen := 0
	for _, kind := range l.kinds {
		if n := l.matchName(kind, l.pos); n > bestLen {
			bestLen = n
			bestKind = kind
		}
	}
	if bestLen == 0 {
		bestKind = KindError
		bestLen = 1
	}

	text := string(l.input[l.pos : l.pos+bestLen])
	l.advance(bestLen)
	return Token{Kind: bestKind, Text: text, Pos: start}, nil
}

// Tokenize reads all tokens up to and including the eof token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}

// Tokenize splits src with the embedded grammar, dropping trivia.
func Tokenize(src []byte, filename string) ([]Token, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	l, err := NewLexer(g, src, filename)
	if err != nil {
		return nil, err
	}
	all, err := l.Tokenize()
	if err != nil {
		return nil, err
	}
	tokens := all[:0]
	for _, tok := range all {
		if !tok.Trivia() {
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// match returns the length of the longest match of expr at offset, or 0.
// Repetitions are greedy and never give back what they consumed.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		if bytes.HasPrefix(l.input[offset:], []byte(e.String)) {
			return len(e.String)
		}
		return 0

	case *ebnf.Range:
		return l.matchRange(e, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n == 0 && !nullable(item) {
				return 0
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			best = max(best, l.match(alt, offset))
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n == 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		return l.match(e.Body, offset)

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return 0
}

func nullable(expr ebnf.Expression) bool {
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return true
	}
	return false
}

func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return max(n, 0)
	}
	// Left recursion matches nothing.
	if l.visiting[key] {
		return 0
	}
	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	if n == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = n
	}
	return n
}

func (l *Lexer) matchRange(r *ebnf.Range, offset int) int {
	if offset >= len(l.input) {
		return 0
	}
	lo, _ := utf8.DecodeRuneInString(r.Begin.String)
	hi, _ := utf8.DecodeRuneInString(r.End.String)
	ch, size := utf8.DecodeRune(l.input[offset:])
	if ch == utf8.RuneError && size <= 1 {
		return 0
	}
	if ch >= lo && ch <= hi {
		return size
	}
	return 0
}
