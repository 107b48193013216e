package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/romirk/sea/c/hir"
)

// LineEncoder writes one tab-separated line per declared entity:
// kind, name, type and modifiers.
type LineEncoder struct {
	w    io.Writer
	prog *hir.Program
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(prog *hir.Program) error {
	e.prog = prog
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, d := range Summarize(e.prog) {
		kind := d.Kind
		if kind == "function" && !d.Defined {
			kind = "prototype"
		}
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\n", kind, d.Name, d.Type, strings.Join(d.Modifiers, " "))
	}
	return []byte(sb.String()), nil
}
