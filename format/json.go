package format

import (
	"encoding/json"
	"io"

	"github.com/romirk/sea/c/hir"
)

// JSONEncoder writes a summary of the top-level declarations of a program
// as JSON.
type JSONEncoder struct {
	w    io.Writer
	prog *hir.Program
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(prog *hir.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(Summarize(e.prog), "", "  ")
}

// Decl summarizes one declared entity.
type Decl struct {
	Kind       string      `json:"kind"`
	Name       string      `json:"name"`
	Type       string      `json:"type"`
	Modifiers  []string    `json:"modifiers,omitempty"`
	Parameters []Parameter `json:"parameters,omitempty"`
	Variadic   bool        `json:"variadic,omitempty"`
	Defined    bool        `json:"defined,omitempty"`
}

type Parameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

// Summarize lists the entities a program declares at top level, one per
// declared name, in source order.
func Summarize(prog *hir.Program) []Decl {
	result := []Decl{}
	for _, d := range prog.Decls {
		switch d := d.(type) {
		case *hir.FnDefn:
			result = append(result, Decl{
				Kind:       "function",
				Name:       d.Name,
				Type:       TypeString(hir.Attrs{}, d.Ret, fnBinding(d)),
				Modifiers:  modifiers(d.Attrs),
				Parameters: buildParameters(d.Params),
				Variadic:   d.Variadic,
				Defined:    d.IsDefinition(),
			})
		case *hir.VarDefn:
			for _, b := range d.Bindings {
				result = append(result, Decl{
					Kind:      "variable",
					Name:      hir.Name(b.Binding),
					Type:      TypeString(hir.Attrs{}, d.Base, b.Binding),
					Modifiers: modifiers(d.Attrs),
					Defined:   b.Init != nil,
				})
			}
		case *hir.TypeDefn:
			for _, b := range d.Decl.Bindings {
				result = append(result, Decl{
					Kind:      "typedef",
					Name:      hir.Name(b),
					Type:      TypeString(hir.Attrs{}, d.Decl.Base, b),
					Modifiers: modifiers(d.Decl.Attrs),
				})
			}
		}
	}
	return result
}

func buildParameters(params []*hir.MonoDecl) []Parameter {
	result := make([]Parameter, len(params))
	for i, p := range params {
		result[i] = Parameter{
			Name: hir.Name(p.Binding),
			Type: TypeString(p.Attrs, p.Base, p.Binding),
		}
	}
	return result
}

func modifiers(a hir.Attrs) []string {
	var mods []string
	if a.Static {
		mods = append(mods, "static")
	}
	if a.Extern {
		mods = append(mods, "extern")
	}
	if a.Inline {
		mods = append(mods, "inline")
	}
	if a.Const {
		mods = append(mods, "const")
	}
	if a.Volatile {
		mods = append(mods, "volatile")
	}
	return mods
}

func fnBinding(f *hir.FnDefn) hir.Binding {
	return &hir.Function{Inner: f.Result, Params: f.Params, Variadic: f.Variadic}
}

// TypeString renders the type a binding declares as a C type name, with
// the declared name and parameter names left out.
func TypeString(attrs hir.Attrs, base hir.Type, b hir.Binding) string {
	return declString(attrs, base, anonymize(hir.StripParens(b)))
}

func anonymize(b hir.Binding) hir.Binding {
	switch n := b.(type) {
	case *hir.Pointer:
		return &hir.Pointer{Inner: anonymize(n.Inner)}
	case *hir.Array:
		return &hir.Array{Inner: anonymize(n.Inner), Size: n.Size}
	case *hir.Function:
		params := make([]*hir.MonoDecl, len(n.Params))
		for i, p := range n.Params {
			params[i] = &hir.MonoDecl{Attrs: p.Attrs, Base: p.Base, Binding: anonymize(hir.StripParens(p.Binding))}
		}
		return &hir.Function{Inner: anonymize(n.Inner), Params: params, Variadic: n.Variadic}
	}
	return &hir.Anonymous{}
}
