// Package parser parses a subset of C into the hir data model.
//
// # Overview
//
// The parser is a backtracking recursive descent parser working directly
// on the source text; there is no separate token stream. Every grammar
// rule is a function of a *Cursor and returns its result or an error:
//
//	func parseX(p *Cursor) (T, error) {
//	    c := p.Delegate()
//	    defer c.Release()
//	    ...
//	    c.Finish()
//	    return v, nil
//	}
//
// # Cursors
//
// A Context holds the source and a single scan offset. A Cursor is a
// scope over that offset: Delegate opens a nested scope, Finish commits
// what has been consumed, and Release rewinds the offset to the last
// commit. A failing rule therefore consumes nothing, and ordered choice is
// trying alternatives one after another from the same offset.
//
// The primitives on Cursor consume one lexical element and the whitespace
// and comments after it:
//
//	Symbol(s)     a literal string
//	Keyword(kw)   a literal word not followed by an identifier character
//	Ident()       an identifier
//	Operator(...) the longest punctuator, if it is one of the given ones
//	Number()      a preprocessing number
//	CharLit()     a character constant
//	StringLit()   a string literal
//
// # Declarators
//
// Declarators are parsed into source order, where prefix '*' wraps the
// whole direct declarator after it and each postfix '[]' or '()' wraps
// what precedes it. Declarations store them in type order instead, see
// hir.Invert. ParseBinding returns the source order tree.
//
// # Typedef names
//
// Whether "a * b;" declares b or multiplies depends on whether a names a
// type. The Context keeps the typedef names in scope in a log that
// cursors rewind together with the offset, so names declared on an
// abandoned path disappear, and a block drops its own typedefs at its
// closing brace.
//
// # Errors
//
// A failed parse reports the failure that got furthest into the input,
// with the expectations of every alternative that failed there. Input
// that parses but is not allowed where it appears, such as a function
// body inside a block, is reported as such instead. Nesting beyond the
// limit set by WithMaxDepth fails with "nesting too deep".
package parser
