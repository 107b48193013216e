package parser

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Error is a parse failure. Expected lists what would have been accepted at
// Offset; Message replaces it for input that parsed but is not allowed
// where it appears.
type Error struct {
	Offset   int
	Pos      Position
	Expected []string
	Found    string
	Message  string

	fatal bool
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return e.Pos.String() + ": " + e.Text()
	}
	return e.Text()
}

// Text is the message without the position.
func (e *Error) Text() string {
	if e.Message != "" {
		return e.Message
	}
	text := "expected " + joinExpected(e.Expected)
	if e.Found != "" {
		text += ", found " + e.Found
	}
	return text
}

// Width is the length in bytes of the offending token, zero at the end of
// input.
func (e *Error) Width() int {
	if len(e.Found) >= 2 && e.Found[0] == '\'' {
		return len(e.Found) - 2
	}
	return 0
}

func joinExpected(expected []string) string {
	switch len(expected) {
	case 0:
		return "nothing"
	case 1:
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// note keeps the failure that got furthest into the input. Failures at the
// same offset merge their expectations.
func (ctx *Context) note(err *Error) {
	if len(err.Expected) == 0 {
		return
	}
	f := ctx.furthest
	switch {
	case f == nil || err.Offset > f.Offset:
		ctx.furthest = &Error{Offset: err.Offset, Expected: slices.Clone(err.Expected)}
	case err.Offset == f.Offset:
		for _, e := range err.Expected {
			if !slices.Contains(f.Expected, e) {
				f.Expected = append(f.Expected, e)
			}
		}
	}
}

// report picks the error to show for a failed parse and resolves its
// position.
func (ctx *Context) report(err error) *Error {
	var e Error
	switch {
	case ctx.violation != nil:
		e = *ctx.violation
	case ctx.furthest != nil:
		e = *ctx.furthest
	default:
		if pe, ok := err.(*Error); ok {
			e = *pe
		} else {
			e = Error{Offset: ctx.offset, Message: err.Error()}
		}
	}
	if pe, ok := err.(*Error); ok && ctx.violation == nil && pe.Offset > e.Offset {
		e = *pe
	}
	e.Pos = ctx.position(e.Offset)
	e.Found = found(ctx.src[e.Offset:])
	ctx.log.Debugf("%s", e.Error())
	return &e
}

func (ctx *Context) position(offset int) Position {
	head := ctx.src[:offset]
	line := strings.Count(head, "\n") + 1
	col := offset - strings.LastIndexByte(head, '\n')
	return Position{File: ctx.file, Offset: offset, Line: line, Column: col}
}

// found describes the token at the start of s.
func found(s string) string {
	if s == "" {
		return "end of input"
	}
	n := 0
	for n < len(s) && isIdentChar(s[n]) {
		n++
	}
	if n == 0 {
		if p := longestPunct(s); p != "" {
			n = len(p)
		} else {
			_, n = utf8.DecodeRuneInString(s)
		}
	}
	return quote(s[:n])
}
