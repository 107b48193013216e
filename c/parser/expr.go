package parser

import (
	"strings"

	"github.com/romirk/sea/c/hir"
)

// binarySymbols[p] lists the binary operators binding at least as tightly
// as precedence p.
var binarySymbols = func() [][]string {
	ops := []hir.BinOp{
		hir.Add, hir.Sub, hir.Mul, hir.Div, hir.Mod, hir.Shl, hir.Shr,
		hir.Lt, hir.Le, hir.Gt, hir.Ge, hir.Eq, hir.Ne,
		hir.BitAnd, hir.BitXor, hir.BitOr, hir.LogAnd, hir.LogOr,
	}
	maxPrec := 0
	for _, op := range ops {
		maxPrec = max(maxPrec, op.Precedence())
	}
	table := make([][]string, maxPrec+2)
	for prec := range table {
		for _, op := range ops {
			if op.Precedence() >= prec {
				table[prec] = append(table[prec], op.String())
			}
		}
	}
	return table
}()

func parseExpr(c *Cursor) (hir.Expr, error) {
	return parseAssign(c)
}

// parseAssign parses a right-associative assignment.
func parseAssign(p *Cursor) (hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	lhs, err := parseBinary(c, 1)
	if err != nil {
		return nil, err
	}
	if _, err := c.Operator("="); err == nil {
		rhs, err := parseAssign(c)
		if err != nil {
			return nil, err
		}
		lhs = &hir.AssignExpr{L: lhs, R: rhs}
	}
	c.Finish()
	return lhs, nil
}

// parseBinary parses operands joined by operators of at least precedence
// minPrec, grouping equal precedence to the left.
func parseBinary(p *Cursor, minPrec int) (hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	lhs, err := parseUnary(c)
	if err != nil {
		return nil, err
	}
	for {
		sym, err := c.Operator(binarySymbols[minPrec]...)
		if err != nil {
			break
		}
		op, _ := hir.LookupBinOp(sym)
		rhs, err := parseBinary(c, op.Precedence()+1)
		if err != nil {
			return nil, err
		}
		lhs = &hir.BinExpr{Op: op, L: lhs, R: rhs}
	}
	c.Finish()
	return lhs, nil
}

var unaryOps = map[string]hir.UnaOp{
	"-": hir.Neg,
	"!": hir.Not,
	"~": hir.Inv,
	"*": hir.Deref,
}

func parseUnary(p *Cursor) (hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	if sym, err := c.Operator("-", "!", "~", "*", "&"); err == nil {
		x, err := parseUnary(c)
		if err != nil {
			return nil, err
		}
		c.Finish()
		if sym == "&" {
			return &hir.RefExpr{X: x}, nil
		}
		return &hir.UnaExpr{Op: unaryOps[sym], X: x}, nil
	}
	x, err := parsePostfix(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return x, nil
}

// parsePostfix parses calls and subscripts, left to right.
func parsePostfix(p *Cursor) (hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	x, err := parsePrimary(c)
	if err != nil {
		return nil, err
	}
	for {
		if c.Symbol("(") == nil {
			args, err := parseArgs(c)
			if err != nil {
				return nil, err
			}
			x = &hir.CallExpr{Fn: x, Args: args}
			continue
		}
		if c.Symbol("[") == nil {
			index, err := parseExpr(c)
			if err != nil {
				return nil, err
			}
			if err := c.Symbol("]"); err != nil {
				return nil, err
			}
			x = &hir.IndexExpr{X: x, Index: index}
			continue
		}
		break
	}
	c.Finish()
	return x, nil
}

// parseArgs parses call arguments after the opening parenthesis.
func parseArgs(p *Cursor) ([]hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	var args []hir.Expr
	if c.Symbol(")") != nil {
		for {
			arg, err := parseExpr(c)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if c.Symbol(",") != nil {
				break
			}
		}
		if err := c.Symbol(")"); err != nil {
			return nil, err
		}
	}
	c.Finish()
	return args, nil
}

func parsePrimary(c *Cursor) (hir.Expr, error) {
	return firstOf(c,
		parseDebugExpr,
		parseParenExpr,
		parseNumber,
		parseCharLit,
		parseStringLit,
		parseIdentExpr,
	)
}

func parseDebugExpr(c *Cursor) (hir.Expr, error) {
	if err := c.Keyword("expr"); err != nil {
		return nil, err
	}
	return &hir.DebugExpr{}, nil
}

func parseParenExpr(p *Cursor) (hir.Expr, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Symbol("("); err != nil {
		return nil, err
	}
	x, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(")"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.ParenExpr{X: x}, nil
}

func parseNumber(c *Cursor) (hir.Expr, error) {
	text, err := c.Number()
	if err != nil {
		return nil, err
	}
	if isFloat(text) {
		return &hir.FloatLit{Text: text}, nil
	}
	return &hir.IntLit{Text: text}, nil
}

func isFloat(text string) bool {
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		return strings.ContainsAny(text, ".pP")
	}
	return strings.ContainsAny(text, ".eE")
}

func parseCharLit(c *Cursor) (hir.Expr, error) {
	text, err := c.CharLit()
	if err != nil {
		return nil, err
	}
	return &hir.CharLit{Text: text}, nil
}

func parseStringLit(c *Cursor) (hir.Expr, error) {
	text, err := c.StringLit()
	if err != nil {
		return nil, err
	}
	return &hir.StringLit{Text: text}, nil
}

func parseIdentExpr(c *Cursor) (hir.Expr, error) {
	name, err := parseName(c)
	if err != nil {
		return nil, err
	}
	return &hir.IdentExpr{Name: name}, nil
}
