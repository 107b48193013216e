package hir

import "strings"

func (a Attrs) String() string {
	var words []string
	if a.Static {
		words = append(words, "static")
	}
	if a.Extern {
		words = append(words, "extern")
	}
	if a.Inline {
		words = append(words, "inline")
	}
	if a.Const {
		words = append(words, "const")
	}
	if a.Volatile {
		words = append(words, "volatile")
	}
	return strings.Join(words, " ")
}

func withAttrs(a Attrs, s string) string {
	if a.IsZero() {
		return s
	}
	return a.String() + " " + s
}

func (d *MonoDecl) String() string {
	s := withAttrs(d.Attrs, d.Base.String())
	if _, ok := d.Binding.(*Anonymous); ok {
		return s
	}
	return s + " " + d.Binding.String()
}

func (d *Decl) String() string {
	parts := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		parts[i] = b.String()
	}
	return withAttrs(d.Attrs, d.Base.String()) + " " + strings.Join(parts, ", ")
}

func (d *TypeDefn) String() string {
	return "typedef " + d.Decl.String()
}

func (d *VarDefn) String() string {
	parts := make([]string, len(d.Bindings))
	for i, b := range d.Bindings {
		parts[i] = b.Binding.String()
		if b.Init != nil {
			parts[i] += " = " + b.Init.String()
		}
	}
	return withAttrs(d.Attrs, d.Base.String()) + " " + strings.Join(parts, ", ")
}

// String renders the signature only; bodies are printed by the format
// package.
func (f *FnDefn) String() string {
	return "fn " + f.Name + "(" + paramsString(f.Params, f.Variadic) + ") -> " + f.ReturnString()
}

// ReturnString renders the full return type in sketch notation, with the
// function name removed and groupings dropped.
func (f *FnDefn) ReturnString() string {
	ret := withAttrs(f.Attrs, f.Ret.String())
	if _, ok := f.Result.(*Ident); ok || f.Result == nil {
		return ret
	}
	return ret + " " + replaceTerminal(StripParens(f.Result), &Ident{}).String()
}

// replaceTerminal returns a copy of the modifier chain of b with a new leaf.
func replaceTerminal(b Binding, leaf Binding) Binding {
	switch n := b.(type) {
	case *Pointer:
		return &Pointer{Inner: replaceTerminal(n.Inner, leaf)}
	case *Array:
		return &Array{Inner: replaceTerminal(n.Inner, leaf), Size: n.Size}
	case *Function:
		return &Function{Inner: replaceTerminal(n.Inner, leaf), Params: n.Params, Variadic: n.Variadic}
	case *Paren:
		return &Paren{Inner: replaceTerminal(n.Inner, leaf)}
	}
	return leaf
}
