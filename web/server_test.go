package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/romirk/sea/c/codebase"
	"github.com/romirk/sea/format"
)

func newTestServer(t *testing.T, cb *codebase.Codebase) *Server {
	t.Helper()
	s, err := NewServer(cb)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestParse(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(s, "POST", "/parse", "", "int main(void) { return 0; }")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var decls []format.Decl
	if err := json.Unmarshal(rec.Body.Bytes(), &decls); err != nil {
		t.Fatal(err)
	}
	if len(decls) != 1 || decls[0].Name != "main" || decls[0].Type != "int (void)" || !decls[0].Defined {
		t.Errorf("decls = %+v", decls)
	}

	rec = do(s, "POST", "/parse?format=line", "", "int x;")
	if rec.Code != http.StatusOK || rec.Body.String() != "variable\tx\tint\t\n" {
		t.Errorf("line = %d %q", rec.Code, rec.Body)
	}

	rec = do(s, "POST", "/parse?format=yaml", "", "int x;")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", rec.Code)
	}
}

func TestParseJSONBody(t *testing.T) {
	s := newTestServer(t, nil)
	body := `{"source": "word w;", "format": "c", "typedefs": ["word"]}`
	rec := do(s, "POST", "/parse", "application/json", body)
	if rec.Code != http.StatusOK || rec.Body.String() != "word w;\n" {
		t.Errorf("got %d %q", rec.Code, rec.Body)
	}

	rec = do(s, "POST", "/parse", "application/json", "{")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid JSON status = %d", rec.Code)
	}
}

func TestParseError(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(s, "POST", "/parse", "", "int x;\nint y = 1 + ;")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	var e errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
		t.Fatal(err)
	}
	if e.Line != 2 || e.Column != 13 || e.Found != "';'" || e.Width != 1 || len(e.Expected) == 0 {
		t.Errorf("error = %+v", e)
	}
	if !strings.HasSuffix(e.Error, "found ';'") {
		t.Errorf("text = %q", e.Error)
	}
}

func TestFmt(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(s, "POST", "/fmt", "", "int   x=1;")
	if rec.Code != http.StatusOK || rec.Body.String() != "int x = 1;\n" {
		t.Errorf("got %d %q", rec.Code, rec.Body)
	}
	rec = do(s, "POST", "/fmt", "", "int x = ;")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestTokens(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(s, "POST", "/tokens", "", "x+=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var tokens []struct {
		Kind   string
		Text   string
		Column int
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &tokens); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range tokens {
		got = append(got, tok.Kind+":"+tok.Text)
	}
	want := "identifier:x punct:+= number:1 eof:"
	if strings.Join(got, " ") != want {
		t.Errorf("tokens = %v, want %s", got, want)
	}
	if tokens[1].Column != 2 {
		t.Errorf("column = %d", tokens[1].Column)
	}
}

func TestGrammarAndIndex(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(s, "GET", "/grammar", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Program") {
		t.Errorf("grammar = %d", rec.Code)
	}

	rec = do(s, "GET", "/", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<option value="json">`) {
		t.Errorf("index = %d %s", rec.Code, rec.Body)
	}

	rec = do(s, "GET", "/static/style.css", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("static = %d", rec.Code)
	}

	if rec := do(s, "GET", "/files", "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("files without codebase = %d", rec.Code)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.c"), []byte("int a(void);"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.c"), []byte("int b = ;"), 0o644); err != nil {
		t.Fatal(err)
	}
	cb := codebase.New(dir)
	if err := cb.ScanAll(); err != nil {
		t.Fatal(err)
	}
	s := newTestServer(t, cb)

	rec := do(s, "GET", "/files", "", "")
	var files []fileSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &files); err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 || files[0].Path != "a.c" || len(files[0].Decls) != 1 || files[0].Error != nil {
		t.Fatalf("files = %+v", files)
	}
	if files[1].Error == nil || files[1].Error.Line != 1 || files[1].Error.Column != 9 {
		t.Errorf("b.c = %+v", files[1])
	}

	rec = do(s, "GET", "/files/b.c", "", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"path":"b.c"`) {
		t.Errorf("file = %d %s", rec.Code, rec.Body)
	}
	if rec := do(s, "GET", "/files/none.c", "", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing file = %d", rec.Code)
	}

	rec = do(s, "GET", "/", "", "")
	if !strings.Contains(rec.Body.String(), "b.c") {
		t.Errorf("index lacks files: %s", rec.Body)
	}
}
