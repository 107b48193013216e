package parser

import "github.com/romirk/sea/c/hir"

// parseBlock parses a braced statement list. Typedefs inside the block go
// out of scope at its closing brace.
func parseBlock(p *Cursor) (*hir.Block, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Symbol("{"); err != nil {
		return nil, err
	}
	scope := c.ctx.scope()
	block := &hir.Block{}
	for c.Symbol("}") != nil {
		s, err := parseStmt(c)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, s)
	}
	c.ctx.endScope(scope)
	c.Finish()
	return block, nil
}

func parseStmt(c *Cursor) (hir.Stmt, error) {
	return firstOf(c,
		parseEmptyStmt,
		parseBlockStmt,
		parseBreakStmt,
		parseContinueStmt,
		parseGotoStmt,
		parseReturnStmt,
		parseIfStmt,
		parseWhileStmt,
		parseDoWhileStmt,
		parseForStmt,
		parseLabeledStmt,
		parseTypeStmt,
		parseDeclStmt,
		parseExprStmt,
	)
}

func parseEmptyStmt(c *Cursor) (hir.Stmt, error) {
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	return &hir.EmptyStmt{}, nil
}

func parseBlockStmt(c *Cursor) (hir.Stmt, error) {
	return parseBlock(c)
}

func parseBreakStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("break"); err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.BreakStmt{}, nil
}

func parseContinueStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("continue"); err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.ContinueStmt{}, nil
}

func parseGotoStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("goto"); err != nil {
		return nil, err
	}
	label, err := parseName(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.GotoStmt{Label: label}, nil
}

func parseReturnStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("return"); err != nil {
		return nil, err
	}
	ret := &hir.ReturnStmt{}
	if c.Symbol(";") != nil {
		x, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if err := c.Symbol(";"); err != nil {
			return nil, err
		}
		ret.X = x
	}
	c.Finish()
	return ret, nil
}

// parseCond parses a parenthesized condition.
func parseCond(p *Cursor) (hir.Expr, error) {
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
	return x, nil
}

// parseIfStmt takes an else greedily, so it belongs to the innermost if.
func parseIfStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("if"); err != nil {
		return nil, err
	}
	cond, err := parseCond(c)
	if err != nil {
		return nil, err
	}
	then, err := parseStmt(c)
	if err != nil {
		return nil, err
	}
	s := &hir.IfStmt{Cond: cond, Then: then}
	if c.Keyword("else") == nil {
		if s.Else, err = parseStmt(c); err != nil {
			return nil, err
		}
	}
	c.Finish()
	return s, nil
}

func parseWhileStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("while"); err != nil {
		return nil, err
	}
	cond, err := parseCond(c)
	if err != nil {
		return nil, err
	}
	body, err := parseStmt(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.WhileStmt{Cond: cond, Body: body}, nil
}

func parseDoWhileStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("do"); err != nil {
		return nil, err
	}
	body, err := parseStmt(c)
	if err != nil {
		return nil, err
	}
	if err := c.Keyword("while"); err != nil {
		return nil, err
	}
	cond, err := parseCond(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.DoWhileStmt{Body: body, Cond: cond}, nil
}

func parseForStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("for"); err != nil {
		return nil, err
	}
	if err := c.Symbol("("); err != nil {
		return nil, err
	}
	var clauses [3]hir.Expr
	for i, end := range []string{";", ";", ")"} {
		if x, err := parseExpr(c); err == nil {
			clauses[i] = x
		}
		if err := c.Symbol(end); err != nil {
			return nil, err
		}
	}
	body, err := parseStmt(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.ForStmt{Init: clauses[0], Cond: clauses[1], Rept: clauses[2], Body: body}, nil
}

func parseLabeledStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	label, err := parseName(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(":"); err != nil {
		return nil, err
	}
	s, err := parseStmt(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.LabeledStmt{Label: label, Stmt: s}, nil
}

func parseTypeStmt(c *Cursor) (hir.Stmt, error) {
	d, err := parseTypeDefn(c)
	if err != nil {
		return nil, err
	}
	return &hir.TypeStmt{Type: d}, nil
}

// parseDeclStmt parses a local declaration. Function prototypes are kept as
// variables of function type; function bodies are rejected.
func parseDeclStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	start := c.Offset()
	if f, err := parseFnDefn(c); err == nil {
		if f.IsDefinition() {
			return nil, c.violate(start, "function definition is not allowed here")
		}
		c.Finish()
		return &hir.DeclStmt{Var: &hir.VarDefn{
			Attrs: f.Attrs,
			Base:  f.Ret,
			Bindings: []hir.InitBinding{{
				Binding: &hir.Function{Inner: f.Result, Params: f.Params, Variadic: f.Variadic},
			}},
		}}, nil
	}
	v, err := parseVarDefn(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.DeclStmt{Var: v}, nil
}

func parseExprStmt(p *Cursor) (hir.Stmt, error) {
	c := p.Delegate()
	defer c.Release()

	x, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.ExprStmt{X: x}, nil
}
