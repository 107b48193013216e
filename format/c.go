package format

import (
	"bytes"
	"io"
	"strings"

	"github.com/romirk/sea/c/hir"
	"github.com/romirk/sea/c/parser"
)

// CPrettyPrinter writes a program back out as C source.
type CPrettyPrinter struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	err         error
}

func NewCPrettyPrinter(w io.Writer) *CPrettyPrinter {
	return &CPrettyPrinter{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
}

func (p *CPrettyPrinter) Encode(prog *hir.Program) error {
	return p.Print(prog)
}

func (p *CPrettyPrinter) Print(prog *hir.Program) error {
	for i, d := range prog.Decls {
		if i > 0 && (isFunctionDefinition(d) || isFunctionDefinition(prog.Decls[i-1])) {
			p.newline()
		}
		p.printTopDefn(d)
	}
	return p.err
}

func isFunctionDefinition(d hir.TopDefn) bool {
	f, ok := d.(*hir.FnDefn)
	return ok && f.IsDefinition()
}

func (p *CPrettyPrinter) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *CPrettyPrinter) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *CPrettyPrinter) newline() {
	p.write("\n")
	p.atLineStart = true
}

func (p *CPrettyPrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.newline()
}

func (p *CPrettyPrinter) printTopDefn(d hir.TopDefn) {
	switch d := d.(type) {
	case *hir.FnDefn:
		p.printFnDefn(d)
	case *hir.VarDefn:
		p.line(varDefnString(d) + ";")
	case *hir.TypeDefn:
		p.line(typeDefnString(d) + ";")
	}
}

func (p *CPrettyPrinter) printFnDefn(f *hir.FnDefn) {
	sig := &hir.Function{Inner: f.Result, Params: f.Params, Variadic: f.Variadic}
	head := declString(f.Attrs, f.Ret, sig)
	if f.Body == nil {
		p.line(head + ";")
		return
	}
	p.writeIndent()
	p.write(head + " ")
	p.printBlock(f.Body)
	p.newline()
}

func (p *CPrettyPrinter) printBlock(b *hir.Block) {
	p.write("{")
	p.newline()
	p.indent++
	for _, s := range b.Stmts {
		p.printStmt(s)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *CPrettyPrinter) printStmt(s hir.Stmt) {
	switch s := s.(type) {
	case *hir.Block:
		p.writeIndent()
		p.printBlock(s)
		p.newline()
	case *hir.EmptyStmt:
		p.line(";")
	case *hir.DeclStmt:
		p.line(varDefnString(s.Var) + ";")
	case *hir.TypeStmt:
		p.line(typeDefnString(s.Type) + ";")
	case *hir.ExprStmt:
		p.line(s.X.String() + ";")
	case *hir.BreakStmt:
		p.line("break;")
	case *hir.ContinueStmt:
		p.line("continue;")
	case *hir.GotoStmt:
		p.line("goto " + s.Label + ";")
	case *hir.ReturnStmt:
		if s.X == nil {
			p.line("return;")
		} else {
			p.line("return " + s.X.String() + ";")
		}
	case *hir.LabeledStmt:
		p.line(s.Label + ":")
		p.printStmt(s.Stmt)
	case *hir.IfStmt:
		p.printIf(s)
	case *hir.WhileStmt:
		p.writeIndent()
		p.write("while (" + s.Cond.String() + ")")
		p.printBody(s.Body)
		p.finishLine()
	case *hir.DoWhileStmt:
		p.writeIndent()
		p.write("do")
		p.printBody(s.Body)
		p.continueLine()
		p.write("while (" + s.Cond.String() + ");")
		p.newline()
	case *hir.ForStmt:
		p.writeIndent()
		p.write("for (" + optExpr(s.Init, "") + ";" + optExpr(s.Cond, " ") + ";" + optExpr(s.Rept, " ") + ")")
		p.printBody(s.Body)
		p.finishLine()
	}
}

func (p *CPrettyPrinter) printIf(s *hir.IfStmt) {
	p.writeIndent()
	p.write("if (" + s.Cond.String() + ")")
	then := s.Then
	// An else-less if as the then branch would capture our else.
	if inner, ok := then.(*hir.IfStmt); ok && inner.Else == nil && s.Else != nil {
		then = &hir.Block{Stmts: []hir.Stmt{inner}}
	}
	p.printBody(then)
	if s.Else == nil {
		p.finishLine()
		return
	}
	p.continueLine()
	p.write("else")
	if elif, ok := s.Else.(*hir.IfStmt); ok {
		p.write(" ")
		p.printIf(elif)
		return
	}
	p.printBody(s.Else)
	p.finishLine()
}

// printBody prints a controlled statement. A block stays on the same line
// and leaves the output after its closing brace; anything else goes on its
// own indented line.
func (p *CPrettyPrinter) printBody(s hir.Stmt) {
	if b, ok := s.(*hir.Block); ok {
		p.write(" ")
		p.printBlock(b)
		return
	}
	p.newline()
	p.indent++
	p.printStmt(s)
	p.indent--
}

func (p *CPrettyPrinter) finishLine() {
	if !p.atLineStart {
		p.newline()
	}
}

// continueLine positions the output for a keyword following a body:
// after a closing brace on the same line, or on a fresh indented line.
func (p *CPrettyPrinter) continueLine() {
	if p.atLineStart {
		p.writeIndent()
	} else {
		p.write(" ")
	}
}

func optExpr(x hir.Expr, lead string) string {
	if x == nil {
		return ""
	}
	return lead + x.String()
}

func specString(attrs hir.Attrs, base hir.Type) string {
	if attrs.IsZero() {
		return base.String()
	}
	return attrs.String() + " " + base.String()
}

func varDefnString(v *hir.VarDefn) string {
	parts := make([]string, len(v.Bindings))
	for i, b := range v.Bindings {
		parts[i] = Declarator(b.Binding)
		if b.Init != nil {
			parts[i] += " = " + b.Init.String()
		}
	}
	return specString(v.Attrs, v.Base) + " " + strings.Join(parts, ", ")
}

func typeDefnString(t *hir.TypeDefn) string {
	parts := make([]string, len(t.Decl.Bindings))
	for i, b := range t.Decl.Bindings {
		parts[i] = Declarator(b)
	}
	return "typedef " + specString(t.Decl.Attrs, t.Decl.Base) + " " + strings.Join(parts, ", ")
}

func declString(attrs hir.Attrs, base hir.Type, b hir.Binding) string {
	d := Declarator(b)
	if d == "" {
		return specString(attrs, base)
	}
	return specString(attrs, base) + " " + d
}

// Declarator renders a type-order binding as C declarator syntax, adding
// the parentheses C needs where a pointer is applied before an array or
// function suffix. Paren nodes beyond those become redundant parentheses
// around the name.
func Declarator(b hir.Binding) string {
	var ctors []hir.Binding
	parens := 0
	leaf := b
walk:
	for {
		switch n := leaf.(type) {
		case *hir.Pointer:
			ctors = append(ctors, n)
			leaf = n.Inner
		case *hir.Array:
			ctors = append(ctors, n)
			leaf = n.Inner
		case *hir.Function:
			ctors = append(ctors, n)
			leaf = n.Inner
		case *hir.Paren:
			parens++
			leaf = n.Inner
		default:
			break walk
		}
	}

	required := 0
	prefixed := false
	for _, c := range ctors {
		if _, ok := c.(*hir.Pointer); ok {
			prefixed = true
			continue
		}
		if prefixed {
			required++
		}
		prefixed = false
	}

	s := hir.Name(leaf)
	for i := required; i < parens; i++ {
		s = "(" + s + ")"
	}
	prefixed = false
	for _, c := range ctors {
		switch c := c.(type) {
		case *hir.Pointer:
			s = "*" + s
			prefixed = true
			continue
		case *hir.Array:
			if prefixed {
				s = "(" + s + ")"
			}
			if c.Size == nil {
				s += "[]"
			} else {
				s += "[" + c.Size.String() + "]"
			}
		case *hir.Function:
			if prefixed {
				s = "(" + s + ")"
			}
			s += "(" + paramsString(c.Params, c.Variadic) + ")"
		}
		prefixed = false
	}
	return s
}

func paramsString(params []*hir.MonoDecl, variadic bool) string {
	parts := make([]string, 0, len(params)+1)
	for _, d := range params {
		parts = append(parts, declString(d.Attrs, d.Base, d.Binding))
	}
	if variadic {
		parts = append(parts, "...")
	}
	if len(parts) == 0 {
		return "void"
	}
	return strings.Join(parts, ", ")
}

// PrettyPrintC parses source and prints it back in canonical layout.
func PrettyPrintC(source []byte, filename string, opts ...parser.Option) ([]byte, error) {
	if filename != "" {
		opts = append(opts, parser.WithFile(filename))
	}
	prog, err := parser.Parse(string(source), opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := NewCPrettyPrinter(&buf).Print(prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
