package hir

import "strings"

// Binding is a declarator: the part of a declaration that names an entity
// and wraps the base type in pointer, array and function modifiers.
//
// A binding tree has exactly one terminal, *Ident or *Anonymous, at its
// leaf.
type Binding interface {
	binding()
	String() string
}

// Ident names the declared entity.
type Ident struct {
	Name string
}

// Anonymous is a terminal without a name, as in unnamed parameters.
type Anonymous struct{}

// Pointer is "pointer to Inner".
type Pointer struct {
	Inner Binding
}

// Array is "array of Inner". A nil Size is an incomplete array.
type Array struct {
	Inner Binding
	Size  Expr
}

// Function is "function returning Inner".
type Function struct {
	Inner    Binding
	Params   []*MonoDecl
	Variadic bool
}

// Paren groups a binding to override the default precedence of postfix
// modifiers over the pointer prefix.
type Paren struct {
	Inner Binding
}

func (*Ident) binding()     {}
func (*Anonymous) binding() {}
func (*Pointer) binding()   {}
func (*Array) binding()     {}
func (*Function) binding()  {}
func (*Paren) binding()     {}

// Terminal returns the leaf of b.
func Terminal(b Binding) Binding {
	for {
		switch n := b.(type) {
		case *Pointer:
			b = n.Inner
		case *Array:
			b = n.Inner
		case *Function:
			b = n.Inner
		case *Paren:
			b = n.Inner
		default:
			return b
		}
	}
}

// Name returns the name declared by b, or "" if b is anonymous.
func Name(b Binding) string {
	if id, ok := Terminal(b).(*Ident); ok {
		return id.Name
	}
	return ""
}

// Invert rewrites a declarator from source order into type order.
//
// In source order prefix '*' binds looser than the postfix '[]' and '()'
// modifiers, so "*a[3]" reads Pointer{Array{a, 3}}. In type order the
// outermost node is the outermost type constructor of the declared entity
// and the terminal stands where the base type goes: "*a[3]" becomes
// Array{Pointer{a}, 3} (array of pointer) while "(*a)[3]" becomes
// Pointer{Array{Paren{a}, 3}} (pointer to array). Paren groupings collapse
// onto the terminal.
func Invert(b Binding) Binding {
	var ctors []Binding
	parens := 0
	for {
		switch n := b.(type) {
		case *Pointer:
			ctors = append(ctors, n)
			b = n.Inner
			continue
		case *Array:
			ctors = append(ctors, n)
			b = n.Inner
			continue
		case *Function:
			ctors = append(ctors, n)
			b = n.Inner
			continue
		case *Paren:
			parens++
			b = n.Inner
			continue
		}
		break
	}

	out := b
	for i := 0; i < parens; i++ {
		out = &Paren{Inner: out}
	}
	for _, c := range ctors {
		switch c := c.(type) {
		case *Pointer:
			out = &Pointer{Inner: out}
		case *Array:
			out = &Array{Inner: out, Size: c.Size}
		case *Function:
			out = &Function{Inner: out, Params: c.Params, Variadic: c.Variadic}
		}
	}
	return out
}

// StripParens returns a copy of b without Paren nodes.
func StripParens(b Binding) Binding {
	switch n := b.(type) {
	case *Pointer:
		return &Pointer{Inner: StripParens(n.Inner)}
	case *Array:
		return &Array{Inner: StripParens(n.Inner), Size: n.Size}
	case *Function:
		return &Function{Inner: StripParens(n.Inner), Params: n.Params, Variadic: n.Variadic}
	case *Paren:
		return StripParens(n.Inner)
	}
	return b
}

// The String methods sketch the tree shape in declarator notation:
// Pointer{x} is "*x", Array{x, n} is "x[n]", Function{x} is "x(...)" and
// Paren{x} is "(x)". The sketch follows the tree, not C syntax.

func (b *Ident) String() string     { return b.Name }
func (b *Anonymous) String() string { return "<anonymous>" }
func (b *Pointer) String() string   { return "*" + b.Inner.String() }
func (b *Paren) String() string     { return "(" + b.Inner.String() + ")" }

func (b *Array) String() string {
	if b.Size == nil {
		return b.Inner.String() + "[]"
	}
	return b.Inner.String() + "[" + b.Size.String() + "]"
}

func (b *Function) String() string {
	return b.Inner.String() + "(" + paramsString(b.Params, b.Variadic) + ")"
}

func paramsString(params []*MonoDecl, variadic bool) string {
	parts := make([]string, 0, len(params)+1)
	for _, p := range params {
		parts = append(parts, p.String())
	}
	if variadic {
		parts = append(parts, "...")
	}
	return strings.Join(parts, ", ")
}
