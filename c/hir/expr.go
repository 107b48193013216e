package hir

import "strings"

// Expr is an expression. String renders it back as C source; explicit
// parentheses in the source are kept as *ParenExpr, so no others are added.
type Expr interface {
	expr()
	String() string
}

// DebugExpr is the "expr" marker, accepted wherever an expression is.
type DebugExpr struct{}

// RefExpr takes the address of X.
type RefExpr struct {
	X Expr
}

type BinExpr struct {
	Op BinOp
	L  Expr
	R  Expr
}

type UnaExpr struct {
	Op UnaOp
	X  Expr
}

type IdentExpr struct {
	Name string
}

// IntLit is an integer constant as written, suffixes included.
type IntLit struct {
	Text string
}

// FloatLit is a floating constant as written.
type FloatLit struct {
	Text string
}

// CharLit is a character constant as written, quotes included.
type CharLit struct {
	Text string
}

// StringLit is a string literal as written, quotes included.
type StringLit struct {
	Text string
}

type CallExpr struct {
	Fn   Expr
	Args []Expr
}

type IndexExpr struct {
	X     Expr
	Index Expr
}

type AssignExpr struct {
	L Expr
	R Expr
}

type ParenExpr struct {
	X Expr
}

func (*DebugExpr) expr()  {}
func (*RefExpr) expr()    {}
func (*BinExpr) expr()    {}
func (*UnaExpr) expr()    {}
func (*IdentExpr) expr()  {}
func (*IntLit) expr()     {}
func (*FloatLit) expr()   {}
func (*CharLit) expr()    {}
func (*StringLit) expr()  {}
func (*CallExpr) expr()   {}
func (*IndexExpr) expr()  {}
func (*AssignExpr) expr() {}
func (*ParenExpr) expr()  {}

func (e *DebugExpr) String() string  { return "expr" }
func (e *RefExpr) String() string    { return prefixed("&", e.X.String()) }
func (e *BinExpr) String() string    { return e.L.String() + " " + e.Op.String() + " " + e.R.String() }
func (e *UnaExpr) String() string    { return prefixed(e.Op.String(), e.X.String()) }
func (e *IdentExpr) String() string  { return e.Name }
func (e *IntLit) String() string     { return e.Text }
func (e *FloatLit) String() string   { return e.Text }
func (e *CharLit) String() string    { return e.Text }
func (e *StringLit) String() string  { return e.Text }
func (e *IndexExpr) String() string  { return e.X.String() + "[" + e.Index.String() + "]" }
func (e *AssignExpr) String() string { return e.L.String() + " = " + e.R.String() }
func (e *ParenExpr) String() string  { return "(" + e.X.String() + ")" }

func (e *CallExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Fn.String() + "(" + strings.Join(args, ", ") + ")"
}

// prefixed keeps "- -x" and "& &x" from gluing into one token.
func prefixed(op, x string) string {
	if x != "" && x[0] == op[0] {
		return op + " " + x
	}
	return op + x
}

type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
	Lt
	Le
	Gt
	Ge
	Eq
	Ne
	BitAnd
	BitXor
	BitOr
	LogAnd
	LogOr
)

var binOpSymbols = map[BinOp]string{
	Add:    "+",
	Sub:    "-",
	Mul:    "*",
	Div:    "/",
	Mod:    "%",
	Shl:    "<<",
	Shr:    ">>",
	Lt:     "<",
	Le:     "<=",
	Gt:     ">",
	Ge:     ">=",
	Eq:     "==",
	Ne:     "!=",
	BitAnd: "&",
	BitXor: "^",
	BitOr:  "|",
	LogAnd: "&&",
	LogOr:  "||",
}

// binOpPrecedence follows the C standard; higher binds tighter.
var binOpPrecedence = map[BinOp]int{
	LogOr:  1,
	LogAnd: 2,
	BitOr:  3,
	BitXor: 4,
	BitAnd: 5,
	Eq:     6,
	Ne:     6,
	Lt:     7,
	Le:     7,
	Gt:     7,
	Ge:     7,
	Shl:    8,
	Shr:    8,
	Add:    9,
	Sub:    9,
	Mul:    10,
	Div:    10,
	Mod:    10,
}

func (op BinOp) String() string {
	if s, ok := binOpSymbols[op]; ok {
		return s
	}
	return "?"
}

// Precedence returns the binding strength of op. All binary operators are
// left associative.
func (op BinOp) Precedence() int {
	return binOpPrecedence[op]
}

// LookupBinOp returns the operator spelled sym.
func LookupBinOp(sym string) (BinOp, bool) {
	for op, s := range binOpSymbols {
		if s == sym {
			return op, true
		}
	}
	return 0, false
}

type UnaOp int

const (
	// Neg is arithmetic negation.
	Neg UnaOp = iota
	// Not is logical inversion.
	Not
	// Inv is bitwise inversion.
	Inv
	// Deref is pointer indirection.
	Deref
)

func (op UnaOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	case Inv:
		return "~"
	case Deref:
		return "*"
	}
	return "?"
}
