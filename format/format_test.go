package format

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/romirk/sea/c/hir"
	"github.com/romirk/sea/c/parser"
)

const sample = `typedef unsigned long size_t;
static const char *names[4], (*pick)(int);
int (*table)[3];
size_t strlen(const char *s);
int printf(const char *fmt, ...);
int main(int argc, char **argv) {
  int i = 0;
  for (;;) { if (i > argc) break; else if (!i) continue; else i = i + 1; }
  while (i) i = i - 1;
  do ; while (0);
  goto end;
end: return argv[0][0] == 'a' && f(&i, *argv);
}
`

const samplePretty = `typedef unsigned long size_t;
static const char *names[4], (*pick)(int);
int (*table)[3];
size_t strlen(const char *s);
int printf(const char *fmt, ...);

int main(int argc, char **argv) {
    int i = 0;
    for (;;) {
        if (i > argc)
            break;
        else if (!i)
            continue;
        else
            i = i + 1;
    }
    while (i)
        i = i - 1;
    do
        ;
    while (0);
    goto end;
    end:
    return argv[0][0] == 'a' && f(&i, *argv);
}
`

func TestPrettyPrintC(t *testing.T) {
	out, err := PrettyPrintC([]byte(sample), "sample.c")
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != samplePretty {
		t.Errorf("got:\n%s\nwant:\n%s", out, samplePretty)
	}
}

func TestPrettyPrintCError(t *testing.T) {
	_, err := PrettyPrintC([]byte("int x = ;"), "bad.c")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "bad.c:1:9:") {
		t.Errorf("error = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	sources := []string{
		sample,
		"int main() { return 0; }",
		"int *a[3]; int (*b)[3]; int ((c)); int *(d); int **(*e)[2][3];",
		"void (*signal(int sig, void (*func)(int)))(int);",
		"int apply(int (*)(int, int), int); char *(*fns[2])(void);",
		"typedef int T; T *f(T a) { T b = a; { typedef char T; T c; } return &b; }",
		"void f() { if (a) if (b) x; else y; if (c) { } else { } }",
		"void f() { while (1) { do { x = -(-y); } while (z); } }",
		"void f() { int g(int); int h(void), k[2]; l: ; goto l; }",
		"extern volatile unsigned long long counter; inline static double half(double x) { return x / 2.0; }",
		"void f() { a = b = c; d = (e + f) * g; h = &*i; j = !~k; }",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			want, err := parser.Parse(src)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			var buf bytes.Buffer
			if err := NewCPrettyPrinter(&buf).Print(want); err != nil {
				t.Fatal(err)
			}
			got, err := parser.Parse(buf.String())
			if err != nil {
				t.Fatalf("reparse: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip changed the tree:\n%s", buf.String())
			}

			var again bytes.Buffer
			if err := NewCPrettyPrinter(&again).Print(got); err != nil {
				t.Fatal(err)
			}
			if again.String() != buf.String() {
				t.Errorf("printing is not stable:\n%s\n---\n%s", buf.String(), again.String())
			}
		})
	}
}

func TestDeclarator(t *testing.T) {
	a := &hir.Ident{Name: "a"}
	three := &hir.IntLit{Text: "3"}
	tests := []struct {
		in   hir.Binding
		want string
	}{
		{a, "a"},
		{&hir.Pointer{Inner: a}, "*a"},
		{&hir.Array{Inner: &hir.Pointer{Inner: a}, Size: three}, "*a[3]"},
		{&hir.Pointer{Inner: &hir.Array{Inner: a, Size: three}}, "(*a)[3]"},
		{&hir.Pointer{Inner: &hir.Function{Inner: a}}, "(*a)(void)"},
		{&hir.Function{Inner: &hir.Pointer{Inner: a}}, "*a(void)"},
		{&hir.Pointer{Inner: &hir.Paren{Inner: a}}, "*(a)"},
		{&hir.Pointer{Inner: &hir.Anonymous{}}, "*"},
		{&hir.Pointer{Inner: &hir.Array{Inner: &hir.Anonymous{}}}, "(*)[]"},
	}
	for _, tt := range tests {
		if got := Declarator(tt.in); got != tt.want {
			t.Errorf("Declarator(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	prog, err := parser.Parse("int (*fp)(char); const char *s[2]; int f(void);")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, d := range Summarize(prog) {
		got = append(got, d.Name+": "+d.Type)
	}
	want := []string{"fp: int (*)(char)", "s: char *[2]", "f: int (void)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDebugEncoder(t *testing.T) {
	prog, err := parser.Parse("int main() { return 0; }")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewDebugEncoder(&buf).Encode(prog); err != nil {
		t.Fatal(err)
	}
	want := `Program
  FnDefn main
    ret: Type int
    result: Ident main
    body: Block
      ReturnStmt
        IntLit 0
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestASTJSONEncoder(t *testing.T) {
	prog, err := parser.Parse("int x = a + 1;")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(prog); err != nil {
		t.Fatal(err)
	}
	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Kind != "program" || len(root.Children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	v := root.Children[0]
	if v.Kind != "var_defn" {
		t.Errorf("kind = %q, want var_defn", v.Kind)
	}
	var kinds []string
	for _, c := range v.Children {
		kinds = append(kinds, c.Field+"="+c.Kind)
	}
	want := []string{"type=type", "binding=ident", "init=bin_expr"}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("children = %v, want %v", kinds, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	prog, err := parser.Parse("static int count; int printf(const char *fmt, ...); typedef long off_t;")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(prog); err != nil {
		t.Fatal(err)
	}
	var decls []Decl
	if err := json.Unmarshal(buf.Bytes(), &decls); err != nil {
		t.Fatal(err)
	}
	want := []Decl{
		{Kind: "variable", Name: "count", Type: "int", Modifiers: []string{"static"}},
		{Kind: "function", Name: "printf", Type: "int (const char *, ...)", Parameters: []Parameter{
			{Name: "fmt", Type: "const char *"},
		}, Variadic: true},
		{Kind: "typedef", Name: "off_t", Type: "long"},
	}
	if !reflect.DeepEqual(decls, want) {
		t.Errorf("got %+v, want %+v", decls, want)
	}
}

func TestLineEncoder(t *testing.T) {
	prog, err := parser.Parse("int main(void) { return 0; } extern int errno; int puts(const char *);")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewLineEncoder(&buf).Encode(prog); err != nil {
		t.Fatal(err)
	}
	want := "function\tmain\tint (void)\t\n" +
		"variable\terrno\tint\textern\n" +
		"prototype\tputs\tint (const char *)\t\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestNewEncoder(t *testing.T) {
	prog, err := parser.Parse("int x;")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range Names {
		var buf bytes.Buffer
		enc, err := NewEncoder(name, &buf)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := enc.Encode(prog); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s wrote nothing", name)
		}
	}
	if _, err := NewEncoder("yaml", &bytes.Buffer{}); err == nil {
		t.Error("expected error for an unknown format")
	}
}
