package parser

import (
	"slices"
	"strings"

	"github.com/romirk/sea/c/hir"
)

// builtinTypes maps every accepted combination of type specifier keywords,
// in canonical order, to its type. It is the only place built-in types are
// recognized.
var builtinTypes = map[string]hir.Type{
	"void": {Kind: hir.Void},

	"char":          {Kind: hir.Char},
	"signed char":   {Kind: hir.Char, Sign: hir.Signed},
	"unsigned char": {Kind: hir.Char, Sign: hir.Unsigned},

	"short":              {Kind: hir.Short},
	"short int":          {Kind: hir.Short},
	"signed short":       {Kind: hir.Short, Sign: hir.Signed},
	"signed short int":   {Kind: hir.Short, Sign: hir.Signed},
	"unsigned short":     {Kind: hir.Short, Sign: hir.Unsigned},
	"unsigned short int": {Kind: hir.Short, Sign: hir.Unsigned},

	"int":          {Kind: hir.Int},
	"signed":       {Kind: hir.Int, Sign: hir.Signed},
	"signed int":   {Kind: hir.Int, Sign: hir.Signed},
	"unsigned":     {Kind: hir.Int, Sign: hir.Unsigned},
	"unsigned int": {Kind: hir.Int, Sign: hir.Unsigned},

	"long":              {Kind: hir.Long},
	"long int":          {Kind: hir.Long},
	"signed long":       {Kind: hir.Long, Sign: hir.Signed},
	"signed long int":   {Kind: hir.Long, Sign: hir.Signed},
	"unsigned long":     {Kind: hir.Long, Sign: hir.Unsigned},
	"unsigned long int": {Kind: hir.Long, Sign: hir.Unsigned},

	"long long":              {Kind: hir.LongLong},
	"long long int":          {Kind: hir.LongLong},
	"signed long long":       {Kind: hir.LongLong, Sign: hir.Signed},
	"signed long long int":   {Kind: hir.LongLong, Sign: hir.Signed},
	"unsigned long long":     {Kind: hir.LongLong, Sign: hir.Unsigned},
	"unsigned long long int": {Kind: hir.LongLong, Sign: hir.Unsigned},

	"float":       {Kind: hir.Float},
	"double":      {Kind: hir.Double},
	"long double": {Kind: hir.LongDouble},
}

// specifierRank orders type specifier keywords for canonicalization:
// sign, then size, then the base keyword.
var specifierRank = map[string]int{
	"signed":   0,
	"unsigned": 0,
	"short":    1,
	"long":     1,
	"void":     2,
	"char":     2,
	"int":      2,
	"float":    2,
	"double":   2,
}

// LookupBuiltinType resolves type specifier keywords given in any order.
func LookupBuiltinType(words ...string) (hir.Type, bool) {
	words = slices.Clone(words)
	for _, w := range words {
		if _, ok := specifierRank[w]; !ok {
			return hir.Type{}, false
		}
	}
	slices.SortStableFunc(words, func(a, b string) int {
		return specifierRank[a] - specifierRank[b]
	})
	t, ok := builtinTypes[strings.Join(words, " ")]
	return t, ok
}

func setAttr(a *hir.Attrs, word string) bool {
	switch word {
	case "const":
		a.Const = true
	case "volatile":
		a.Volatile = true
	case "static":
		a.Static = true
	case "extern":
		a.Extern = true
	case "inline":
		a.Inline = true
	default:
		return false
	}
	return true
}

// parseSpecifiers parses attributes and type specifiers in any order, or
// attributes and one typedef name.
func parseSpecifiers(p *Cursor) (hir.Attrs, hir.Type, error) {
	c := p.Delegate()
	defer c.Release()

	start := c.Offset()
	var attrs hir.Attrs
	var words []string
	named := ""
	for takeSpecifier(c, &attrs, &words, &named) {
	}

	if named != "" {
		c.Finish()
		return attrs, hir.NamedType(named), nil
	}
	if len(words) == 0 {
		return attrs, hir.Type{}, c.failAt(start, "type specifier")
	}
	t, ok := LookupBuiltinType(words...)
	if !ok {
		return attrs, hir.Type{}, c.failAt(start, "valid type specifier")
	}
	c.Finish()
	return attrs, t, nil
}

func takeSpecifier(p *Cursor, attrs *hir.Attrs, words *[]string, named *string) bool {
	c := p.Delegate()
	defer c.Release()

	if in := c.Input(); in == "" || !isIdentChar(in[0]) || isDigit(in[0]) {
		return false
	}
	word, err := c.Ident()
	if err != nil {
		return false
	}
	switch {
	case setAttr(attrs, word):
	case isSpecifierWord(word) && *named == "":
		*words = append(*words, word)
	case len(*words) == 0 && *named == "" && c.ctx.isTypeName(word):
		*named = word
	default:
		return false
	}
	c.Finish()
	return true
}

func isSpecifierWord(word string) bool {
	_, ok := specifierRank[word]
	return ok
}
