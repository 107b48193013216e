package format

import (
	"fmt"
	"io"

	"github.com/romirk/sea/c/hir"
)

type Encoder interface {
	Encode(prog *hir.Program) error
}

// Names lists the encoders NewEncoder knows, default first.
var Names = []string{"debug", "json", "ast", "line", "c"}

// NewEncoder returns the encoder called name writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "debug":
		return NewDebugEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "ast":
		return NewASTJSONEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	case "c":
		return NewCPrettyPrinter(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}
