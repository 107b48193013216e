package codebase

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*LSPServer, *glsp.Context, *[]notification) {
	t.Helper()
	ls := NewLSPServer("test")
	root := t.TempDir()
	if _, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatal(err)
	}
	var sent []notification
	ctx := &glsp.Context{Notify: func(method string, params any) {
		sent = append(sent, notification{method, params})
	}}
	return ls, ctx, &sent
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatal("nothing published")
	}
	n := sent[len(sent)-1]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("method = %s", n.method)
	}
	return n.params.(protocol.PublishDiagnosticsParams)
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	ls, ctx, sent := newTestServer(t)
	uri := pathToURI(filepath.Join(ls.codebase.RootDir(), "a.c"))

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "int x;\nint y = 1 + ;\n"},
	})
	if err != nil {
		t.Fatal(err)
	}
	params := lastDiagnostics(t, *sent)
	if params.URI != uri || len(params.Diagnostics) != 1 {
		t.Fatalf("params = %+v", params)
	}
	d := params.Diagnostics[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 12 || d.Range.End.Character != 13 {
		t.Errorf("range = %+v", d.Range)
	}
	if !strings.HasPrefix(d.Message, "expected ") || !strings.HasSuffix(d.Message, "found ';'") {
		t.Errorf("message = %q", d.Message)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v", d.Severity)
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "int y = 1;"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	params = lastDiagnostics(t, *sent)
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Errorf("diagnostics not cleared: %+v", params.Diagnostics)
	}
}

func TestDiagnosticsForNestedFunction(t *testing.T) {
	c := New(".")
	c.UpdateFile("a.c", []byte("void f() { int g() { } }"))
	f := c.GetFile("a.c")

	ds := diagnostics(f)
	if len(ds) != 1 {
		t.Fatalf("diagnostics = %+v", ds)
	}
	if ds[0].Message != "function definition is not allowed here" {
		t.Errorf("message = %q", ds[0].Message)
	}
	if ds[0].Range.Start.Line != 0 || ds[0].Range.Start.Character != 11 {
		t.Errorf("range = %+v", ds[0].Range)
	}
}

func TestHoverAndCompletion(t *testing.T) {
	ls, ctx, _ := newTestServer(t)
	path := filepath.Join(ls.codebase.RootDir(), "m.c")
	uri := pathToURI(path)
	src := "static int limit;\nint clamp(int v) { return v > limit; }\n"
	ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: src},
	})

	hover, err := ls.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 33},
		},
	})
	if err != nil || hover == nil {
		t.Fatalf("hover = %v, %v", hover, err)
	}
	content := hover.Contents.(protocol.MarkupContent)
	if !strings.Contains(content.Value, "static variable limit: int") || !strings.Contains(content.Value, "m.c") {
		t.Errorf("hover = %q", content.Value)
	}

	result, err := ls.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 6},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	items := result.([]protocol.CompletionItem)
	if len(items) != 1 || items[0].Label != "clamp" || *items[0].Kind != protocol.CompletionItemKindFunction {
		t.Errorf("items = %+v", items)
	}
}

func TestURIs(t *testing.T) {
	path, err := uriToPath("file:///tmp/a%20b/x.c")
	if err != nil || path != filepath.Clean("/tmp/a b/x.c") {
		t.Errorf("uriToPath = %q, %v", path, err)
	}
	if path, _ := uriToPath("untitled:1"); path != "untitled:1" {
		t.Errorf("uriToPath = %q", path)
	}
	if uri := pathToURI("/tmp/a b/x.c"); uri != "file:///tmp/a%20b/x.c" {
		t.Errorf("pathToURI = %q", uri)
	}
}
