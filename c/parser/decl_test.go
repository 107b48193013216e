package parser

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/romirk/sea/c/hir"
	"gopkg.in/yaml.v3"
)

// shape renders the exact structure of a binding tree.
func shape(b hir.Binding) string {
	switch n := b.(type) {
	case *hir.Ident:
		return "Ident(" + n.Name + ")"
	case *hir.Anonymous:
		return "Anonymous"
	case *hir.Pointer:
		return "Pointer(" + shape(n.Inner) + ")"
	case *hir.Paren:
		return "Paren(" + shape(n.Inner) + ")"
	case *hir.Array:
		if n.Size == nil {
			return "Array(" + shape(n.Inner) + ")"
		}
		return "Array(" + shape(n.Inner) + ", " + n.Size.String() + ")"
	case *hir.Function:
		parts := []string{shape(n.Inner)}
		for _, p := range n.Params {
			parts = append(parts, p.String())
		}
		if n.Variadic {
			parts = append(parts, "...")
		}
		return "Function(" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%T", b)
}

type declaratorCase struct {
	Input string `yaml:"input"`
	Want  string `yaml:"want"`
}

type declaratorFixtures struct {
	Bindings     []declaratorCase `yaml:"bindings"`
	Declarations []declaratorCase `yaml:"declarations"`
}

func loadDeclarators(t *testing.T) declaratorFixtures {
	t.Helper()
	data, err := os.ReadFile("testdata/declarators.yaml")
	if err != nil {
		t.Fatalf("reading fixtures: %v", err)
	}
	var fx declaratorFixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		t.Fatalf("decoding fixtures: %v", err)
	}
	return fx
}

func TestBindingShapes(t *testing.T) {
	for _, tt := range loadDeclarators(t).Bindings {
		t.Run(tt.Input, func(t *testing.T) {
			b, err := ParseBinding(tt.Input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := shape(b); got != tt.Want {
				t.Errorf("got %s, want %s", got, tt.Want)
			}
		})
	}
}

// firstBinding returns the first declarator of a top-level definition in
// type order.
func firstBinding(d hir.TopDefn) hir.Binding {
	switch d := d.(type) {
	case *hir.VarDefn:
		return d.Bindings[0].Binding
	case *hir.FnDefn:
		return &hir.Function{Inner: d.Result, Params: d.Params, Variadic: d.Variadic}
	case *hir.TypeDefn:
		return d.Decl.Bindings[0]
	}
	return nil
}

func TestDeclarationShapes(t *testing.T) {
	for _, tt := range loadDeclarators(t).Declarations {
		t.Run(tt.Input, func(t *testing.T) {
			prog, err := Parse(tt.Input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(prog.Decls) != 1 {
				t.Fatalf("got %d declarations, want 1", len(prog.Decls))
			}
			if got := shape(firstBinding(prog.Decls[0])); got != tt.Want {
				t.Errorf("got %s, want %s", got, tt.Want)
			}
		})
	}
}

func TestPointerToArrayDiffersFromArrayOfPointers(t *testing.T) {
	a, err := Parse("int *a[3];")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("int (*a)[3];")
	if err != nil {
		t.Fatal(err)
	}
	if shape(firstBinding(a.Decls[0])) == shape(firstBinding(b.Decls[0])) {
		t.Error("array of pointers and pointer to array parsed to the same shape")
	}
	if _, ok := firstBinding(a.Decls[0]).(*hir.Array); !ok {
		t.Error("int *a[3] is not an array")
	}
	if _, ok := firstBinding(b.Decls[0]).(*hir.Pointer); !ok {
		t.Error("int (*a)[3] is not a pointer")
	}
}

func TestBindingErrors(t *testing.T) {
	inputs := []string{
		"",
		"*",
		"()",
		"(a",
		"a[",
		"a[3",
		"int",
		"a(int",
		"a(...)",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if b, err := ParseBinding(input); err == nil {
				t.Errorf("expected error, got %s", shape(b))
			}
		})
	}
}

func TestSpecifiers(t *testing.T) {
	tests := []struct {
		input string
		attrs hir.Attrs
		typ   hir.Type
	}{
		{"int x;", hir.Attrs{}, hir.Type{Kind: hir.Int}},
		{"unsigned x;", hir.Attrs{}, hir.Type{Kind: hir.Int, Sign: hir.Unsigned}},
		{"long unsigned x;", hir.Attrs{}, hir.Type{Kind: hir.Long, Sign: hir.Unsigned}},
		{"int long long unsigned x;", hir.Attrs{}, hir.Type{Kind: hir.LongLong, Sign: hir.Unsigned}},
		{"double long x;", hir.Attrs{}, hir.Type{Kind: hir.LongDouble}},
		{"signed char c;", hir.Attrs{}, hir.Type{Kind: hir.Char, Sign: hir.Signed}},
		{"short int s;", hir.Attrs{}, hir.Type{Kind: hir.Short}},
		{"const static short s;", hir.Attrs{Const: true, Static: true}, hir.Type{Kind: hir.Short}},
		{"int const volatile x;", hir.Attrs{Const: true, Volatile: true}, hir.Type{Kind: hir.Int}},
		{"extern float f;", hir.Attrs{Extern: true}, hir.Type{Kind: hir.Float}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			v, ok := prog.Decls[0].(*hir.VarDefn)
			if !ok {
				t.Fatalf("got %T, want *hir.VarDefn", prog.Decls[0])
			}
			if v.Attrs != tt.attrs {
				t.Errorf("attrs = %+v, want %+v", v.Attrs, tt.attrs)
			}
			if v.Base != tt.typ {
				t.Errorf("type = %v, want %v", v.Base, tt.typ)
			}
		})
	}
}

func TestInvalidSpecifiers(t *testing.T) {
	inputs := []string{
		"short char x;",
		"unsigned double d;",
		"long long long x;",
		"signed unsigned x;",
		"const x;",
		"x;",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLookupBuiltinType(t *testing.T) {
	got, ok := LookupBuiltinType("int", "unsigned", "long")
	if !ok || got != (hir.Type{Kind: hir.Long, Sign: hir.Unsigned}) {
		t.Errorf("got %v, %v", got, ok)
	}
	if _, ok := LookupBuiltinType("int", "T"); ok {
		t.Error("accepted a non-keyword")
	}
}

func TestTypedefNames(t *testing.T) {
	prog, err := Parse("typedef int T; T *p;")
	if err != nil {
		t.Fatal(err)
	}
	v, ok := prog.Decls[1].(*hir.VarDefn)
	if !ok {
		t.Fatalf("got %T, want *hir.VarDefn", prog.Decls[1])
	}
	if v.Base != hir.NamedType("T") {
		t.Errorf("base = %v, want T", v.Base)
	}
	if got := shape(v.Bindings[0].Binding); got != "Pointer(Ident(p))" {
		t.Errorf("binding = %s", got)
	}
}

func TestPredeclaredTypeNames(t *testing.T) {
	if _, err := Parse("size_t n;"); err == nil {
		t.Error("expected error without predeclared name")
	}
	prog, err := Parse("size_t n;", WithTypeNames("size_t"))
	if err != nil {
		t.Fatal(err)
	}
	if v := prog.Decls[0].(*hir.VarDefn); v.Base.Name != "size_t" {
		t.Errorf("base = %v", v.Base)
	}
}

func TestTypedefDisambiguatesStatements(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"void f() { a * b; }", []string{"*hir.ExprStmt"}},
		{"void f() { typedef int a; a * b; }", []string{"*hir.TypeStmt", "*hir.DeclStmt"}},
		{"void f() { { typedef int a; } a * b; }", []string{"*hir.Block", "*hir.ExprStmt"}},
		{"typedef int a; void f() { a * b; }", []string{"*hir.DeclStmt"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			f := prog.Decls[len(prog.Decls)-1].(*hir.FnDefn)
			var got []string
			for _, s := range f.Body.Stmts {
				got = append(got, fmt.Sprintf("%T", s))
			}
			if strings.Join(got, " ") != strings.Join(tt.want, " ") {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFunctionDefinitions(t *testing.T) {
	tests := []struct {
		input    string
		name     string
		ret      string
		params   int
		variadic bool
		body     bool
	}{
		{"int main() { return 0; }", "main", "int", 0, false, true},
		{"int main(void);", "main", "int", 0, false, false},
		{"static char *dup(const char *s) { return s; }", "dup", "static char *", 1, false, true},
		{"int printf(const char *fmt, ...);", "printf", "int", 1, true, false},
		{"int (*pick(int n))(int) { return f; }", "pick", "int *(int)", 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			f, ok := prog.Decls[0].(*hir.FnDefn)
			if !ok {
				t.Fatalf("got %T, want *hir.FnDefn", prog.Decls[0])
			}
			if f.Name != tt.name {
				t.Errorf("name = %q, want %q", f.Name, tt.name)
			}
			if got := f.ReturnString(); got != tt.ret {
				t.Errorf("return = %q, want %q", got, tt.ret)
			}
			if len(f.Params) != tt.params {
				t.Errorf("params = %d, want %d", len(f.Params), tt.params)
			}
			if f.Variadic != tt.variadic {
				t.Errorf("variadic = %v, want %v", f.Variadic, tt.variadic)
			}
			if f.IsDefinition() != tt.body {
				t.Errorf("definition = %v, want %v", f.IsDefinition(), tt.body)
			}
		})
	}
}
