package format

import (
	"encoding/json"
	"io"

	"github.com/iancoleman/strcase"
	"github.com/romirk/sea/c/hir"
)

// ASTJSONEncoder writes the whole HIR tree as JSON. Node kinds are the HIR
// type names in snake case, such as "fn_defn" or "bin_expr".
type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(prog *hir.Program) error {
	text, err := e.MarshalText(prog)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(prog *hir.Program) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(programNode(prog)), "", "  ")
}

type astJSONNode struct {
	Field    string         `json:"field,omitempty"`
	Kind     string         `json:"kind"`
	Value    string         `json:"value,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

func nodeToJSON(n *node) *astJSONNode {
	jn := &astJSONNode{
		Field: n.Field,
		Kind:  strcase.ToSnake(n.Kind),
		Value: n.Value,
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}
