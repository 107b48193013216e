// Package codebase keeps the parsed state of a tree of C sources and
// serves it over the Language Server Protocol.
package codebase

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/romirk/sea/c/hir"
	"github.com/romirk/sea/c/parser"
	"github.com/romirk/sea/format"
	"github.com/romirk/sea/grammar"
)

var log = commonlog.GetLogger("sea.codebase")

type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	opts    []parser.Option
	files   map[string]*FileInfo
	symbols []Symbol
}

type FileInfo struct {
	Path     string
	Content  []byte
	Program  *hir.Program
	Decls    []format.Decl
	ParseErr error
}

// Symbol is a top-level declaration and the file declaring it.
type Symbol struct {
	format.Decl
	Path string
}

// New creates an empty codebase rooted at rootDir. Every file is parsed
// with opts.
func New(rootDir string, opts ...parser.Option) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		opts:    opts,
		files:   make(map[string]*FileInfo),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// IsSource reports whether path names a C source or header.
func IsSource(path string) bool {
	switch filepath.Ext(path) {
	case ".c", ".h":
		return true
	}
	return false
}

// ScanAll parses every source under the root, skipping hidden directories.
func (c *Codebase) ScanAll() error {
	return filepath.WalkDir(c.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.rootDir {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != c.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSource(path) {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

// ScanFile reads and parses path. Only a read failure is returned; a parse
// failure is kept in the file's ParseErr.
func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and reparses it. A parse failure
// is kept in the file's ParseErr rather than returned.
func (c *Codebase) UpdateFile(path string, content []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.updateFileLocked(path, content)
}

func (c *Codebase) updateFileLocked(path string, content []byte) {
	opts := append(slices.Clip(c.opts), parser.WithFile(c.DisplayName(path)))
	prog, err := parser.Parse(string(content), opts...)

	f := &FileInfo{
		Path:     path,
		Content:  content,
		Program:  prog,
		ParseErr: err,
	}
	if prog != nil {
		f.Decls = format.Summarize(prog)
	}
	if err != nil {
		log.Debugf("%s", err)
	} else {
		log.Debugf("parsed %s: %d declarations", path, len(f.Decls))
	}
	c.files[path] = f
	c.rebuildSymbolsLocked()
}

// DisplayName returns path relative to the root when it lies inside it.
func (c *Codebase) DisplayName(path string) string {
	if rel, err := filepath.Rel(c.rootDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func (c *Codebase) rebuildSymbolsLocked() {
	var all []Symbol
	for _, f := range c.files {
		for _, d := range f.Decls {
			all = append(all, Symbol{Decl: d, Path: f.Path})
		}
	}
	slices.SortFunc(all, func(a, b Symbol) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.Path, b.Path)
	})
	c.symbols = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildSymbolsLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Files returns every known file sorted by path.
func (c *Codebase) Files() []*FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	files := make([]*FileInfo, 0, len(c.files))
	for _, f := range c.files {
		files = append(files, f)
	}
	slices.SortFunc(files, func(a, b *FileInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return files
}

// Failed returns the files that did not parse, sorted by path.
func (c *Codebase) Failed() []*FileInfo {
	var failed []*FileInfo
	for _, f := range c.Files() {
		if f.ParseErr != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Symbols returns every top-level declaration sorted by name.
func (c *Codebase) Symbols() []Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.symbols
}

// FindSymbol looks up a top-level name, preferring a definition over a
// declaration.
func (c *Codebase) FindSymbol(name string) *Symbol {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var found *Symbol
	for i := range c.symbols {
		s := &c.symbols[i]
		if s.Name != name {
			continue
		}
		if found == nil || s.Defined && !found.Defined {
			found = s
		}
	}
	return found
}

type CompletionKind int

const (
	CompletionKindFunction CompletionKind = iota
	CompletionKindVariable
	CompletionKindType
	CompletionKindKeyword
)

type CompletionItem struct {
	Label  string
	Kind   CompletionKind
	Detail string
}

var keywords = sync.OnceValue(func() []string {
	g, err := grammar.Load()
	if err != nil {
		log.Errorf("load grammar: %s", err)
		return nil
	}
	return grammar.Keywords(g)
})

// CompletionsAtPoint offers the top-level names and keywords starting with
// the identifier that ends at column (0-based, in bytes) of line (1-based).
func (c *Codebase) CompletionsAtPoint(path string, line, column int) []CompletionItem {
	f := c.GetFile(path)
	if f == nil {
		return nil
	}
	prefix := wordBefore(f.Content, line, column)

	var items []CompletionItem
	seen := map[string]bool{}
	for _, s := range c.Symbols() {
		if !strings.HasPrefix(s.Name, prefix) || seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		items = append(items, CompletionItem{
			Label:  s.Name,
			Kind:   symbolKind(s.Kind),
			Detail: s.Type,
		})
	}
	for _, kw := range keywords() {
		if strings.HasPrefix(kw, prefix) && !seen[kw] {
			items = append(items, CompletionItem{Label: kw, Kind: CompletionKindKeyword})
		}
	}
	return items
}

func symbolKind(kind string) CompletionKind {
	switch kind {
	case "function":
		return CompletionKindFunction
	case "typedef":
		return CompletionKindType
	}
	return CompletionKindVariable
}

func lineAt(content []byte, line int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

func isWordChar(ch byte) bool {
	return ch == '_' || ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

// wordBefore returns the identifier characters ending at column.
func wordBefore(content []byte, line, column int) string {
	text := lineAt(content, line)
	end := min(max(column, 0), len(text))
	start := end
	for start > 0 && isWordChar(text[start-1]) {
		start--
	}
	return text[start:end]
}

// wordAt returns the identifier containing column.
func wordAt(content []byte, line, column int) string {
	text := lineAt(content, line)
	if column < 0 || column > len(text) {
		return ""
	}
	start, end := column, column
	for start > 0 && isWordChar(text[start-1]) {
		start--
	}
	for end < len(text) && isWordChar(text[end]) {
		end++
	}
	return text[start:end]
}
