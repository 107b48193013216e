// Package web serves the parser over HTTP: a playground page that parses
// and formats pasted source, and JSON views of a scanned codebase.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/romirk/sea/c/codebase"
	"github.com/romirk/sea/c/parser"
	"github.com/romirk/sea/format"
	"github.com/romirk/sea/grammar"
)

//go:embed static templates
var embeddedFS embed.FS

var log = commonlog.GetLogger("sea.web")

// maxSource bounds request bodies.
const maxSource = 4 << 20

type Server struct {
	codebase   *codebase.Codebase
	opts       []parser.Option
	mux        *http.ServeMux
	templateFS fs.FS
	funcMap    template.FuncMap
}

// NewServer returns a server whose parses use opts. cb may be nil, in which
// case the /files routes report not found.
func NewServer(cb *codebase.Codebase, opts ...parser.Option) (*Server, error) {
	staticFS := overlayFS("web/static", mustSub(embeddedFS, "static"))
	templateFS := overlayFS("web/templates", mustSub(embeddedFS, "templates"))

	s := &Server{
		codebase:   cb,
		opts:       opts,
		mux:        http.NewServeMux(),
		templateFS: templateFS,
		funcMap: template.FuncMap{
			"formats": func() []string { return format.Names },
		},
	}

	if _, err := s.parseTemplates(); err != nil {
		return nil, err
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.mux.HandleFunc("POST /parse", s.handleParse)
	s.mux.HandleFunc("POST /fmt", s.handleFmt)
	s.mux.HandleFunc("POST /tokens", s.handleTokens)
	s.mux.HandleFunc("GET /grammar", s.handleGrammar)
	s.mux.HandleFunc("GET /files", s.handleFiles)
	s.mux.HandleFunc("GET /files/{path...}", s.handleFile)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(s.funcMap).ParseFS(s.templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, err := s.parseTemplates()
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl.ExecuteTemplate(w, name, data)
}

// sourceRequest is the JSON form of a request body. Plain bodies carry
// the source alone and take the format from the query string.
type sourceRequest struct {
	Source   string   `json:"source"`
	Format   string   `json:"format,omitempty"`
	Typedefs []string `json:"typedefs,omitempty"`
}

func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (*sourceRequest, bool) {
	body := http.MaxBytesReader(w, r.Body, maxSource)
	var req sourceRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
	} else {
		data, err := io.ReadAll(body)
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return nil, false
		}
		req.Source = string(data)
		req.Format = r.URL.Query().Get("format")
		req.Typedefs = r.URL.Query()["typedef"]
	}
	if req.Format == "" {
		req.Format = "json"
	}
	return &req, true
}

func (s *Server) options(req *sourceRequest) []parser.Option {
	opts := append([]parser.Option{}, s.opts...)
	if len(req.Typedefs) > 0 {
		opts = append(opts, parser.WithTypeNames(req.Typedefs...))
	}
	return opts
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	enc, err := format.NewEncoder(req.Format, &buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	prog, err := parser.Parse(req.Source, s.options(req)...)
	if err != nil {
		writeParseError(w, err)
		return
	}
	if err := enc.Encode(prog); err != nil {
		http.Error(w, "encode: "+err.Error(), http.StatusInternalServerError)
		return
	}

	switch req.Format {
	case "json", "ast":
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.Write(buf.Bytes())
}

func (s *Server) handleFmt(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	out, err := format.PrettyPrintC([]byte(req.Source), "", s.options(req)...)
	if err != nil {
		writeParseError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(out)
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	tokens, err := grammar.Tokenize([]byte(req.Source), "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	type token struct {
		Kind   string `json:"kind"`
		Text   string `json:"text"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	result := make([]token, 0, len(tokens))
	for _, t := range tokens {
		result = append(result, token{t.Kind, t.Text, t.Pos.Line, t.Pos.Column})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(grammar.Source())
}

type fileSummary struct {
	Path  string         `json:"path"`
	Decls []format.Decl  `json:"decls"`
	Error *errorResponse `json:"error,omitempty"`
}

func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	if s.codebase == nil {
		http.NotFound(w, r)
		return
	}
	files := s.codebase.Files()
	result := make([]fileSummary, 0, len(files))
	for _, f := range files {
		result = append(result, s.summarize(f))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	if s.codebase == nil {
		http.NotFound(w, r)
		return
	}
	name := r.PathValue("path")
	for _, f := range s.codebase.Files() {
		if s.codebase.DisplayName(f.Path) == name {
			writeJSON(w, http.StatusOK, s.summarize(f))
			return
		}
	}
	http.Error(w, "file not found", http.StatusNotFound)
}

func (s *Server) summarize(f *codebase.FileInfo) fileSummary {
	summary := fileSummary{
		Path:  s.codebase.DisplayName(f.Path),
		Decls: f.Decls,
	}
	if summary.Decls == nil {
		summary.Decls = []format.Decl{}
	}
	if f.ParseErr != nil {
		summary.Error = newErrorResponse(f.ParseErr)
	}
	return summary
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var data struct {
		Files []fileSummary
	}
	if s.codebase != nil {
		for _, f := range s.codebase.Files() {
			data.Files = append(data.Files, s.summarize(f))
		}
	}
	s.render(w, "index.html", data)
}

type errorResponse struct {
	Error    string   `json:"error"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Offset   int      `json:"offset"`
	Width    int      `json:"width,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Found    string   `json:"found,omitempty"`
}

func newErrorResponse(err error) *errorResponse {
	var pe *parser.Error
	if !errors.As(err, &pe) {
		return &errorResponse{Error: err.Error()}
	}
	return &errorResponse{
		Error:    pe.Text(),
		Line:     pe.Pos.Line,
		Column:   pe.Pos.Column,
		Offset:   pe.Offset,
		Width:    pe.Width(),
		Expected: pe.Expected,
		Found:    pe.Found,
	}
}

func writeParseError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity, newErrorResponse(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// overlayFS serves files from primaryPath on disk when present, falling
// back to the embedded copy.
type overlayFSType struct {
	primary   fs.FS
	secondary fs.FS
}

func overlayFS(primaryPath string, secondary fs.FS) fs.FS {
	return &overlayFSType{
		primary:   os.DirFS(primaryPath),
		secondary: secondary,
	}
}

func (o *overlayFSType) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.secondary.Open(name)
}
