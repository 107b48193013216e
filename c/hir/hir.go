// Package hir defines the high-level intermediate representation produced by
// the C front end.
//
// The HIR is a plain tree: every node owns its children, nothing is shared,
// and a whole translation unit is held by a single Program. Sum types are
// interfaces closed by an unexported marker method.
package hir

// Program is a C translation unit.
type Program struct {
	Decls []TopDefn
}

// TopDefn is a top-level declaration or definition: *FnDefn, *VarDefn or
// *TypeDefn.
type TopDefn interface {
	topDefn()
}

// Attrs holds the storage-class and qualifier keywords attached to a
// declaration.
type Attrs struct {
	Const    bool
	Volatile bool
	Static   bool
	Extern   bool
	Inline   bool
}

// IsZero reports whether no attribute is set.
func (a Attrs) IsZero() bool {
	return a == Attrs{}
}

// FnDefn is a function declaration or definition.
type FnDefn struct {
	Attrs Attrs

	// Ret is the base return type.
	Ret Type

	Name string

	// Result elaborates the return type beyond Ret. Its terminal is
	// Ident{Name}; for "int *f(void)" it is Pointer{Ident{f}}.
	Result Binding

	Params   []*MonoDecl
	Variadic bool

	// Body is nil for a declaration.
	Body *Block
}

// IsDefinition reports whether the function has a body.
func (f *FnDefn) IsDefinition() bool {
	return f.Body != nil
}

// VarDefn declares one or more variables sharing a base type.
type VarDefn struct {
	Attrs    Attrs
	Base     Type
	Bindings []InitBinding
}

// InitBinding is a declarator with an optional initializer.
type InitBinding struct {
	Binding Binding
	Init    Expr
}

// TypeDefn is a typedef. Its bindings name the aliases.
type TypeDefn struct {
	*Decl
}

// Decl is a base type shared by several bindings.
type Decl struct {
	Attrs    Attrs
	Base     Type
	Bindings []Binding
}

// MonoDecl is a declaration with exactly one binding, as used for
// parameters.
type MonoDecl struct {
	Attrs   Attrs
	Base    Type
	Binding Binding
}

func (*FnDefn) topDefn()   {}
func (*VarDefn) topDefn()  {}
func (*TypeDefn) topDefn() {}
