package format

import (
	"fmt"
	"strings"

	"github.com/romirk/sea/c/hir"
)

// node is a generic view of an HIR tree shared by the tree encoders.
type node struct {
	Field    string
	Kind     string
	Value    string
	Children []*node
}

func kindOf(v any) string {
	name := fmt.Sprintf("%T", v)
	return name[strings.LastIndexByte(name, '.')+1:]
}

func (n *node) add(field string, child *node) {
	if child == nil {
		return
	}
	child.Field = field
	n.Children = append(n.Children, child)
}

func typeNode(attrs hir.Attrs, t hir.Type) *node {
	return &node{Kind: "Type", Value: specString(attrs, t)}
}

func programNode(prog *hir.Program) *node {
	n := &node{Kind: kindOf(prog)}
	for _, d := range prog.Decls {
		n.add("", topDefnNode(d))
	}
	return n
}

func topDefnNode(d hir.TopDefn) *node {
	switch d := d.(type) {
	case *hir.FnDefn:
		n := &node{Kind: kindOf(d), Value: d.Name}
		n.add("ret", typeNode(d.Attrs, d.Ret))
		n.add("result", bindingNode(d.Result))
		for _, p := range d.Params {
			n.add("param", monoDeclNode(p))
		}
		if d.Variadic {
			n.add("", &node{Kind: "Variadic"})
		}
		if d.Body != nil {
			n.add("body", stmtNode(d.Body))
		}
		return n
	case *hir.VarDefn:
		return varDefnNode(d)
	case *hir.TypeDefn:
		n := &node{Kind: kindOf(d)}
		n.add("type", typeNode(d.Decl.Attrs, d.Decl.Base))
		for _, b := range d.Decl.Bindings {
			n.add("binding", bindingNode(b))
		}
		return n
	}
	return nil
}

func varDefnNode(d *hir.VarDefn) *node {
	n := &node{Kind: kindOf(d)}
	n.add("type", typeNode(d.Attrs, d.Base))
	for _, b := range d.Bindings {
		n.add("binding", bindingNode(b.Binding))
		if b.Init != nil {
			n.add("init", exprNode(b.Init))
		}
	}
	return n
}

func monoDeclNode(d *hir.MonoDecl) *node {
	n := &node{Kind: kindOf(d)}
	n.add("type", typeNode(d.Attrs, d.Base))
	n.add("binding", bindingNode(d.Binding))
	return n
}

func bindingNode(b hir.Binding) *node {
	n := &node{Kind: kindOf(b)}
	switch b := b.(type) {
	case *hir.Ident:
		n.Value = b.Name
	case *hir.Pointer:
		n.add("", bindingNode(b.Inner))
	case *hir.Paren:
		n.add("", bindingNode(b.Inner))
	case *hir.Array:
		n.add("", bindingNode(b.Inner))
		if b.Size != nil {
			n.add("size", exprNode(b.Size))
		}
	case *hir.Function:
		n.add("", bindingNode(b.Inner))
		for _, p := range b.Params {
			n.add("param", monoDeclNode(p))
		}
		if b.Variadic {
			n.add("", &node{Kind: "Variadic"})
		}
	}
	return n
}

func stmtNode(s hir.Stmt) *node {
	n := &node{Kind: kindOf(s)}
	switch s := s.(type) {
	case *hir.Block:
		for _, st := range s.Stmts {
			n.add("", stmtNode(st))
		}
	case *hir.DeclStmt:
		n.add("", varDefnNode(s.Var))
	case *hir.TypeStmt:
		n.add("", topDefnNode(s.Type))
	case *hir.ExprStmt:
		n.add("", exprNode(s.X))
	case *hir.IfStmt:
		n.add("cond", exprNode(s.Cond))
		n.add("then", stmtNode(s.Then))
		if s.Else != nil {
			n.add("else", stmtNode(s.Else))
		}
	case *hir.ForStmt:
		if s.Init != nil {
			n.add("init", exprNode(s.Init))
		}
		if s.Cond != nil {
			n.add("cond", exprNode(s.Cond))
		}
		if s.Rept != nil {
			n.add("rept", exprNode(s.Rept))
		}
		n.add("body", stmtNode(s.Body))
	case *hir.WhileStmt:
		n.add("cond", exprNode(s.Cond))
		n.add("body", stmtNode(s.Body))
	case *hir.DoWhileStmt:
		n.add("body", stmtNode(s.Body))
		n.add("cond", exprNode(s.Cond))
	case *hir.ReturnStmt:
		if s.X != nil {
			n.add("", exprNode(s.X))
		}
	case *hir.GotoStmt:
		n.Value = s.Label
	case *hir.LabeledStmt:
		n.Value = s.Label
		n.add("", stmtNode(s.Stmt))
	}
	return n
}

func exprNode(e hir.Expr) *node {
	n := &node{Kind: kindOf(e)}
	switch e := e.(type) {
	case *hir.IdentExpr:
		n.Value = e.Name
	case *hir.IntLit:
		n.Value = e.Text
	case *hir.FloatLit:
		n.Value = e.Text
	case *hir.CharLit:
		n.Value = e.Text
	case *hir.StringLit:
		n.Value = e.Text
	case *hir.BinExpr:
		n.Value = e.Op.String()
		n.add("", exprNode(e.L))
		n.add("", exprNode(e.R))
	case *hir.UnaExpr:
		n.Value = e.Op.String()
		n.add("", exprNode(e.X))
	case *hir.RefExpr:
		n.add("", exprNode(e.X))
	case *hir.AssignExpr:
		n.add("", exprNode(e.L))
		n.add("", exprNode(e.R))
	case *hir.ParenExpr:
		n.add("", exprNode(e.X))
	case *hir.CallExpr:
		n.add("fn", exprNode(e.Fn))
		for _, a := range e.Args {
			n.add("arg", exprNode(a))
		}
	case *hir.IndexExpr:
		n.add("", exprNode(e.X))
		n.add("index", exprNode(e.Index))
	}
	return n
}
