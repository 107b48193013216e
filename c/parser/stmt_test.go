package parser

import (
	"reflect"
	"strings"
	"testing"

	"github.com/romirk/sea/c/hir"
)

func ident(name string) *hir.IdentExpr {
	return &hir.IdentExpr{Name: name}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input string
		want  hir.Stmt
	}{
		{";", &hir.EmptyStmt{}},
		{"{ }", &hir.Block{}},
		{"{ ; ; }", &hir.Block{Stmts: []hir.Stmt{&hir.EmptyStmt{}, &hir.EmptyStmt{}}}},
		{"break;", &hir.BreakStmt{}},
		{"continue ;", &hir.ContinueStmt{}},
		{"goto done;", &hir.GotoStmt{Label: "done"}},
		{"return;", &hir.ReturnStmt{}},
		{"return x;", &hir.ReturnStmt{X: ident("x")}},
		{"done: return;", &hir.LabeledStmt{Label: "done", Stmt: &hir.ReturnStmt{}}},
		{"x;", &hir.ExprStmt{X: ident("x")}},
		{"expr;", &hir.ExprStmt{X: &hir.DebugExpr{}}},
		{"while (x) { }", &hir.WhileStmt{Cond: ident("x"), Body: &hir.Block{}}},
		{"do x; while (y);", &hir.DoWhileStmt{Body: &hir.ExprStmt{X: ident("x")}, Cond: ident("y")}},
		{"for (;;) ;", &hir.ForStmt{Body: &hir.EmptyStmt{}}},
		{"for (i = 0; i < n; i = i + 1) x;", &hir.ForStmt{
			Init: &hir.AssignExpr{L: ident("i"), R: &hir.IntLit{Text: "0"}},
			Cond: &hir.BinExpr{Op: hir.Lt, L: ident("i"), R: ident("n")},
			Rept: &hir.AssignExpr{L: ident("i"), R: &hir.BinExpr{Op: hir.Add, L: ident("i"), R: &hir.IntLit{Text: "1"}}},
			Body: &hir.ExprStmt{X: ident("x")},
		}},
		{"if (c) x; else y;", &hir.IfStmt{
			Cond: ident("c"),
			Then: &hir.ExprStmt{X: ident("x")},
			Else: &hir.ExprStmt{X: ident("y")},
		}},
		{"int x = 1, *y;", &hir.DeclStmt{Var: &hir.VarDefn{
			Base: hir.Type{Kind: hir.Int},
			Bindings: []hir.InitBinding{
				{Binding: &hir.Ident{Name: "x"}, Init: &hir.IntLit{Text: "1"}},
				{Binding: &hir.Pointer{Inner: &hir.Ident{Name: "y"}}},
			},
		}}},
		{"int f(void);", &hir.DeclStmt{Var: &hir.VarDefn{
			Base: hir.Type{Kind: hir.Int},
			Bindings: []hir.InitBinding{
				{Binding: &hir.Function{Inner: &hir.Ident{Name: "f"}}},
			},
		}}},
		{"typedef char byte;", &hir.TypeStmt{Type: &hir.TypeDefn{Decl: &hir.Decl{
			Base:     hir.Type{Kind: hir.Char},
			Bindings: []hir.Binding{&hir.Ident{Name: "byte"}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStmt(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDanglingElse(t *testing.T) {
	s, err := ParseStmt("if (expr) if (expr) x; else y;")
	if err != nil {
		t.Fatal(err)
	}
	outer := s.(*hir.IfStmt)
	if outer.Else != nil {
		t.Errorf("else attached to outer if: %#v", outer.Else)
	}
	inner, ok := outer.Then.(*hir.IfStmt)
	if !ok {
		t.Fatalf("then = %T, want *hir.IfStmt", outer.Then)
	}
	if !reflect.DeepEqual(inner.Else, &hir.ExprStmt{X: ident("y")}) {
		t.Errorf("inner else = %#v", inner.Else)
	}
}

func TestNestedFunctionDefinition(t *testing.T) {
	_, err := Parse("int main() { int f() { return 0; } return f(); }")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "function definition is not allowed here") {
		t.Errorf("error = %v", err)
	}
	pe := err.(*Error)
	if pe.Pos.Line != 1 || pe.Pos.Column != 14 {
		t.Errorf("position = %v, want 1:14", pe.Pos)
	}
}

func TestStatementErrors(t *testing.T) {
	inputs := []string{
		"",
		"if x;",
		"if (x)",
		"while (x;",
		"do x; while (y)",
		"for (;) x;",
		"goto 1;",
		"return",
		"{",
		"x",
		"int;",
		"break",
		"else x;",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if s, err := ParseStmt(input); err == nil {
				t.Errorf("expected error, got %#v", s)
			}
		})
	}
}
