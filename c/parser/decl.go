package parser

import "github.com/romirk/sea/c/hir"

// reserved words never name a declared entity or a variable.
var reserved = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extern": true, "float": true, "for": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true,
	"expr": true,
}

func parseName(p *Cursor) (string, error) {
	c := p.Delegate()
	defer c.Release()

	start := c.Offset()
	name, err := c.Ident()
	if err != nil {
		return "", err
	}
	if reserved[name] {
		return "", c.failAt(start, "identifier")
	}
	c.Finish()
	return name, nil
}

func parseProgram(p *Cursor) (*hir.Program, error) {
	c := p.Delegate()
	defer c.Release()

	prog := &hir.Program{}
	for !c.Done() {
		if c.Symbol(";") == nil {
			continue
		}
		d, err := parseTopDefn(c)
		if err != nil {
			return nil, err
		}
		prog.Decls = append(prog.Decls, d)
	}
	c.Finish()
	return prog, nil
}

func parseTopDefn(c *Cursor) (hir.TopDefn, error) {
	return firstOf(c,
		func(c *Cursor) (hir.TopDefn, error) { return parseFnDefn(c) },
		func(c *Cursor) (hir.TopDefn, error) { return parseVarDefn(c) },
		func(c *Cursor) (hir.TopDefn, error) { return parseTypeDefn(c) },
	)
}

// parseFnDefn parses a function declaration or definition: a declaration
// whose declarator is a function type at the outermost level.
func parseFnDefn(p *Cursor) (*hir.FnDefn, error) {
	c := p.Delegate()
	defer c.Release()

	attrs, base, err := parseSpecifiers(c)
	if err != nil {
		return nil, err
	}
	b, err := parseBinding(c, false)
	if err != nil {
		return nil, err
	}
	fn, ok := hir.Invert(b).(*hir.Function)
	if !ok {
		return nil, c.fail("'('")
	}
	f := &hir.FnDefn{
		Attrs:    attrs,
		Ret:      base,
		Name:     hir.Name(fn.Inner),
		Result:   fn.Inner,
		Params:   fn.Params,
		Variadic: fn.Variadic,
	}
	if c.Symbol(";") != nil {
		if f.Body, err = parseBlock(c); err != nil {
			return nil, err
		}
	}
	c.Finish()
	return f, nil
}

func parseVarDefn(p *Cursor) (*hir.VarDefn, error) {
	c := p.Delegate()
	defer c.Release()

	attrs, base, err := parseSpecifiers(c)
	if err != nil {
		return nil, err
	}
	v := &hir.VarDefn{Attrs: attrs, Base: base}
	for {
		b, err := parseBinding(c, false)
		if err != nil {
			return nil, err
		}
		ib := hir.InitBinding{Binding: hir.Invert(b)}
		if c.Symbol("=") == nil {
			if ib.Init, err = parseExpr(c); err != nil {
				return nil, err
			}
		}
		v.Bindings = append(v.Bindings, ib)
		if c.Symbol(",") != nil {
			break
		}
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	c.Finish()
	return v, nil
}

// parseTypeDefn parses a typedef and brings its names into scope.
func parseTypeDefn(p *Cursor) (*hir.TypeDefn, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Keyword("typedef"); err != nil {
		return nil, err
	}
	d, err := parseDecl(c)
	if err != nil {
		return nil, err
	}
	if err := c.Symbol(";"); err != nil {
		return nil, err
	}
	for _, b := range d.Bindings {
		c.ctx.declareType(hir.Name(b))
	}
	c.Finish()
	return &hir.TypeDefn{Decl: d}, nil
}

func parseDecl(p *Cursor) (*hir.Decl, error) {
	c := p.Delegate()
	defer c.Release()

	attrs, base, err := parseSpecifiers(c)
	if err != nil {
		return nil, err
	}
	d := &hir.Decl{Attrs: attrs, Base: base}
	for {
		b, err := parseBinding(c, false)
		if err != nil {
			return nil, err
		}
		d.Bindings = append(d.Bindings, hir.Invert(b))
		if c.Symbol(",") != nil {
			break
		}
	}
	c.Finish()
	return d, nil
}

// parseMonoDecl parses a declaration of exactly one entity, as in a
// parameter list.
func parseMonoDecl(p *Cursor, anon bool) (*hir.MonoDecl, error) {
	c := p.Delegate()
	defer c.Release()

	attrs, base, err := parseSpecifiers(c)
	if err != nil {
		return nil, err
	}
	b, err := parseBinding(c, anon)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.MonoDecl{Attrs: attrs, Base: base, Binding: hir.Invert(b)}, nil
}

// parseBinding parses a declarator into a source-order tree: prefix '*'
// wraps everything after it, and postfix '[]' and '()' wrap the direct
// declarator before them, innermost first. With anon set the name may be
// omitted.
func parseBinding(p *Cursor, anon bool) (hir.Binding, error) {
	c := p.Delegate()
	defer c.Release()

	var b hir.Binding
	if inner, err := parseParenBinding(c, anon); err == nil {
		b = inner
	} else if e, ok := err.(*Error); ok && e.fatal {
		return nil, err
	} else if c.Symbol("*") == nil {
		inner, err := parseBinding(c, anon)
		if err != nil {
			return nil, err
		}
		c.Finish()
		return &hir.Pointer{Inner: inner}, nil
	} else if name, err := parseName(c); err == nil {
		b = &hir.Ident{Name: name}
	} else if anon {
		b = &hir.Anonymous{}
	} else {
		return nil, err
	}

	for {
		next, err := parseBindingSuffix(c, b)
		if err != nil {
			break
		}
		b = next
	}
	c.Finish()
	return b, nil
}

func parseParenBinding(p *Cursor, anon bool) (hir.Binding, error) {
	c := p.Delegate()
	defer c.Release()

	if err := c.Symbol("("); err != nil {
		return nil, err
	}
	start := c.Offset()
	inner, err := parseBinding(c, anon)
	if err != nil {
		return nil, err
	}
	// "()" after an omitted name is a parameter list, not a grouping.
	if _, ok := inner.(*hir.Anonymous); ok {
		return nil, c.failAt(start, "declarator")
	}
	if err := c.Symbol(")"); err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.Paren{Inner: inner}, nil
}

func parseBindingSuffix(p *Cursor, inner hir.Binding) (hir.Binding, error) {
	c := p.Delegate()
	defer c.Release()

	if c.Symbol("[") == nil {
		a := &hir.Array{Inner: inner}
		if c.Symbol("]") != nil {
			size, err := parseExpr(c)
			if err != nil {
				return nil, err
			}
			if err := c.Symbol("]"); err != nil {
				return nil, err
			}
			a.Size = size
		}
		c.Finish()
		return a, nil
	}
	if err := c.Symbol("("); err != nil {
		return nil, err
	}
	params, variadic, err := parseParams(c)
	if err != nil {
		return nil, err
	}
	c.Finish()
	return &hir.Function{Inner: inner, Params: params, Variadic: variadic}, nil
}

// parseParams parses a parameter list after its opening parenthesis.
// "()" and "(void)" both declare no parameters.
func parseParams(p *Cursor) ([]*hir.MonoDecl, bool, error) {
	c := p.Delegate()
	defer c.Release()

	if c.Symbol(")") == nil || parseVoidParams(c) {
		c.Finish()
		return nil, false, nil
	}
	var params []*hir.MonoDecl
	variadic := false
	for {
		if len(params) > 0 && c.Symbol("...") == nil {
			variadic = true
			break
		}
		d, err := parseMonoDecl(c, true)
		if err != nil {
			return nil, false, err
		}
		params = append(params, d)
		if c.Symbol(",") != nil {
			break
		}
	}
	if err := c.Symbol(")"); err != nil {
		return nil, false, err
	}
	c.Finish()
	return params, variadic, nil
}

func parseVoidParams(p *Cursor) bool {
	c := p.Delegate()
	defer c.Release()

	if c.Keyword("void") != nil || c.Symbol(")") != nil {
		return false
	}
	c.Finish()
	return true
}
