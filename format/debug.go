package format

import (
	"io"
	"strings"

	"github.com/romirk/sea/c/hir"
)

// DebugEncoder writes the HIR as an indented tree, one node per line.
type DebugEncoder struct {
	w io.Writer
}

func NewDebugEncoder(w io.Writer) *DebugEncoder {
	return &DebugEncoder{w: w}
}

func (e *DebugEncoder) Encode(prog *hir.Program) error {
	text, err := e.MarshalText(prog)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *DebugEncoder) MarshalText(prog *hir.Program) ([]byte, error) {
	var sb strings.Builder
	writeNode(&sb, programNode(prog), 0)
	return []byte(sb.String()), nil
}

func writeNode(sb *strings.Builder, n *node, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	if n.Field != "" {
		sb.WriteString(n.Field)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Kind)
	if n.Value != "" {
		sb.WriteString(" ")
		sb.WriteString(n.Value)
	}
	sb.WriteString("\n")
	for _, child := range n.Children {
		writeNode(sb, child, indent+1)
	}
}
