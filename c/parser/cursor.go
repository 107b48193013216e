package parser

import (
	"slices"
	"strings"

	"github.com/tliron/commonlog"
)

const DefaultMaxDepth = 2048

// Context owns the source text and the single scan offset shared by every
// Cursor of a parse.
type Context struct {
	src      string
	file     string
	offset   int
	depth    int
	maxDepth int
	log      commonlog.Logger

	// names is the typedef names in scope, innermost last. Cursors rewind
	// it together with the offset.
	names []string

	furthest  *Error
	violation *Error
}

type Option func(*Context)

// WithFile sets the file name reported in positions.
func WithFile(path string) Option {
	return func(ctx *Context) {
		ctx.file = path
	}
}

// WithTypeNames predeclares typedef names, for sources whose typedefs come
// from headers that are not parsed.
func WithTypeNames(names ...string) Option {
	return func(ctx *Context) {
		ctx.names = append(ctx.names, names...)
	}
}

// WithMaxDepth bounds the nesting of cursors. Deeper input fails with
// "nesting too deep" instead of exhausting the stack. Hitting the limit
// ends the parse, even inside an alternative that would later be
// abandoned: no other alternative is tried afterwards.
func WithMaxDepth(depth int) Option {
	return func(ctx *Context) {
		ctx.maxDepth = depth
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(ctx *Context) {
		ctx.log = log
	}
}

func NewContext(src string, opts ...Option) *Context {
	ctx := &Context{
		src:      src,
		maxDepth: DefaultMaxDepth,
		log:      log,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// Offset returns the shared scan offset.
func (ctx *Context) Offset() int {
	return ctx.offset
}

// Start returns a Cursor at the current offset with leading whitespace
// skipped.
func (ctx *Context) Start() *Cursor {
	ctx.depth++
	c := &Cursor{ctx: ctx, start: ctx.offset, names: len(ctx.names)}
	c.TrimWS()
	return c
}

func (ctx *Context) declareType(name string) {
	ctx.names = append(ctx.names, name)
}

func (ctx *Context) isTypeName(name string) bool {
	for i := len(ctx.names) - 1; i >= 0; i-- {
		if ctx.names[i] == name {
			return true
		}
	}
	return false
}

func (ctx *Context) scope() int {
	return len(ctx.names)
}

func (ctx *Context) endScope(n int) {
	if n < len(ctx.names) {
		ctx.names = ctx.names[:n]
	}
}

// Cursor is a speculative scan scope. It records the shared offset when it
// is created; Release moves the offset back there unless Finish committed
// the scope first. Every grammar rule opens a Cursor with Delegate and
// defers its Release, which makes the rule all-or-nothing with respect to
// the shared offset.
type Cursor struct {
	ctx      *Context
	start    int
	names    int
	released bool
}

// Input returns the unconsumed text from the shared offset on.
func (c *Cursor) Input() string {
	return c.ctx.src[c.ctx.offset:]
}

// Offset returns the shared scan offset.
func (c *Cursor) Offset() int {
	return c.ctx.offset
}

// Done reports whether all input has been consumed.
func (c *Cursor) Done() bool {
	return c.ctx.offset >= len(c.ctx.src)
}

// Delegate opens a nested Cursor at the current offset.
func (c *Cursor) Delegate() *Cursor {
	ctx := c.ctx
	ctx.depth++
	if ctx.depth > ctx.maxDepth && ctx.violation == nil {
		ctx.violation = &Error{Offset: ctx.offset, Message: "nesting too deep", fatal: true}
	}
	return &Cursor{ctx: ctx, start: ctx.offset, names: len(ctx.names)}
}

// Finish commits everything consumed so far.
func (c *Cursor) Finish() {
	c.start = c.ctx.offset
	c.names = len(c.ctx.names)
}

// Release ends the scope, rewinding to the last committed offset.
func (c *Cursor) Release() {
	if c.released {
		return
	}
	c.released = true
	c.ctx.depth--
	c.ctx.offset = c.start
	c.ctx.endScope(c.names)
}

// blocked reports whether the depth limit has been hit, after which every
// primitive fails.
func (c *Cursor) blocked() bool {
	v := c.ctx.violation
	return v != nil && v.Message == "nesting too deep"
}

func (c *Cursor) advance(n int) {
	c.ctx.offset += n
	c.TrimWS()
}

// TrimWS skips whitespace and comments and reports whether anything was
// skipped.
func (c *Cursor) TrimWS() bool {
	n := skipSpace(c.Input())
	c.ctx.offset += n
	return n != 0
}

// Symbol consumes the literal s.
func (c *Cursor) Symbol(s string) error {
	if c.blocked() {
		return c.ctx.violation
	}
	if !strings.HasPrefix(c.Input(), s) {
		return c.fail(quote(s))
	}
	c.advance(len(s))
	return nil
}

// Keyword consumes kw when it is not followed by an identifier character,
// so "int" does not match the start of "integer".
func (c *Cursor) Keyword(kw string) error {
	if c.blocked() {
		return c.ctx.violation
	}
	in := c.Input()
	if !strings.HasPrefix(in, kw) || (len(in) > len(kw) && isIdentChar(in[len(kw)])) {
		return c.fail(quote(kw))
	}
	c.advance(len(kw))
	return nil
}

// Ident consumes a run of letters, digits and underscores that does not
// start with a digit.
func (c *Cursor) Ident() (string, error) {
	if c.blocked() {
		return "", c.ctx.violation
	}
	in := c.Input()
	n := 0
	for n < len(in) && isIdentChar(in[n]) {
		n++
	}
	if n == 0 || isDigit(in[0]) {
		return "", c.fail("identifier")
	}
	c.advance(n)
	return in[:n], nil
}

// Operator consumes the longest punctuator at the offset if it is one of
// ops. Matching the longest punctuator keeps "<" from matching the start
// of "<=" or "<<".
func (c *Cursor) Operator(ops ...string) (string, error) {
	if c.blocked() {
		return "", c.ctx.violation
	}
	tok := longestPunct(c.Input())
	if tok == "" || !slices.Contains(ops, tok) {
		expected := make([]string, len(ops))
		for i, op := range ops {
			expected[i] = quote(op)
		}
		return "", c.fail(expected...)
	}
	c.advance(len(tok))
	return tok, nil
}

// Number consumes a preprocessing number: a digit, or '.' and a digit,
// followed by identifier characters, dots, and signs after an exponent
// letter.
func (c *Cursor) Number() (string, error) {
	if c.blocked() {
		return "", c.ctx.violation
	}
	in := c.Input()
	if !(len(in) > 0 && isDigit(in[0]) || len(in) > 1 && in[0] == '.' && isDigit(in[1])) {
		return "", c.fail("number")
	}
	n := 1
	for n < len(in) {
		ch := in[n]
		switch {
		case isIdentChar(ch) || ch == '.':
		case (ch == '+' || ch == '-') && strings.IndexByte("eEpP", in[n-1]) >= 0:
		default:
			c.advance(n)
			return in[:n], nil
		}
		n++
	}
	c.advance(n)
	return in, nil
}

// CharLit consumes a character constant, quotes included.
func (c *Cursor) CharLit() (string, error) {
	return c.quoted('\'', "character constant")
}

// StringLit consumes a string literal, quotes included.
func (c *Cursor) StringLit() (string, error) {
	return c.quoted('"', "string literal")
}

func (c *Cursor) quoted(q byte, what string) (string, error) {
	if c.blocked() {
		return "", c.ctx.violation
	}
	in := c.Input()
	if len(in) == 0 || in[0] != q {
		return "", c.fail(what)
	}
	for n := 1; n < len(in); n++ {
		switch in[n] {
		case '\\':
			n++
		case '\n':
			return "", c.fail(what)
		case q:
			if n == 1 && q == '\'' {
				return "", c.fail(what)
			}
			c.advance(n + 1)
			return in[:n+1], nil
		}
	}
	return "", c.fail(what)
}

// fail records and returns a failure at the current offset.
func (c *Cursor) fail(expected ...string) *Error {
	return c.failAt(c.ctx.offset, expected...)
}

func (c *Cursor) failAt(offset int, expected ...string) *Error {
	err := &Error{Offset: offset, Expected: expected}
	c.ctx.note(err)
	return err
}

// violate reports input that parsed but is not allowed where it appears.
// Violations end ordered choice instead of falling through to the next
// alternative.
func (c *Cursor) violate(offset int, msg string) *Error {
	err := &Error{Offset: offset, Message: msg, fatal: true}
	if c.ctx.violation == nil {
		c.ctx.violation = err
	}
	return err
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isIdentChar(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || isDigit(ch) || ch == '_'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func skipSpace(s string) int {
	i := 0
	for i < len(s) {
		switch {
		case isSpace(s[i]):
			i++
		case strings.HasPrefix(s[i:], "//"):
			end := strings.IndexByte(s[i:], '\n')
			if end < 0 {
				return len(s)
			}
			i += end + 1
		case strings.HasPrefix(s[i:], "/*"):
			end := strings.Index(s[i+2:], "*/")
			if end < 0 {
				return i
			}
			i += end + 4
		default:
			return i
		}
	}
	return i
}

// puncts lists the C punctuators, longest first.
var puncts = []string{
	"...", "<<=", ">>=",
	"->", "++", "--", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||",
	"*=", "/=", "%=", "+=", "-=", "&=", "^=", "|=", "##",
	"[", "]", "(", ")", "{", "}", ".", "&", "*", "+", "-", "~", "!",
	"/", "%", "<", ">", "^", "|", "?", ":", ";", "=", ",", "#",
}

func longestPunct(s string) string {
	for _, p := range puncts {
		if strings.HasPrefix(s, p) {
			return p
		}
	}
	return ""
}

func quote(s string) string {
	return "'" + s + "'"
}
