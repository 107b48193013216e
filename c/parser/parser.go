package parser

import (
	"github.com/romirk/sea/c/hir"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("sea.parser")

// Parse parses a translation unit.
func Parse(src string, opts ...Option) (*hir.Program, error) {
	ctx := NewContext(src, opts...)
	prog, err := parseAll(ctx, parseProgram)
	if err != nil {
		return nil, err
	}
	ctx.log.Debugf("parsed %d top-level definitions", len(prog.Decls))
	return prog, nil
}

// ParseBinding parses a lone declarator and returns it in source order.
func ParseBinding(src string, opts ...Option) (hir.Binding, error) {
	return parseAll(NewContext(src, opts...), func(c *Cursor) (hir.Binding, error) {
		return parseBinding(c, false)
	})
}

func ParseStmt(src string, opts ...Option) (hir.Stmt, error) {
	return parseAll(NewContext(src, opts...), parseStmt)
}

func ParseExpr(src string, opts ...Option) (hir.Expr, error) {
	return parseAll(NewContext(src, opts...), parseExpr)
}

// parseAll runs rule over the whole input.
func parseAll[T any](ctx *Context, rule func(*Cursor) (T, error)) (T, error) {
	var zero T
	c := ctx.Start()
	defer c.Release()

	v, err := rule(c)
	if err == nil && !c.Done() {
		err = c.fail("end of input")
	}
	if err != nil {
		return zero, ctx.report(err)
	}
	c.Finish()
	return v, nil
}

// firstOf tries rules in order from the same offset and returns the first
// success. A violation ends the choice.
func firstOf[T any](c *Cursor, rules ...func(*Cursor) (T, error)) (T, error) {
	var zero T
	var last error
	for _, rule := range rules {
		v, err := rule(c)
		if err == nil {
			return v, nil
		}
		if e, ok := err.(*Error); ok && e.fatal {
			return zero, err
		}
		last = err
	}
	return zero, last
}
