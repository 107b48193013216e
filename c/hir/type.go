package hir

type Kind int

const (
	Void Kind = iota
	Char
	Short
	Int
	Long
	LongLong
	Float
	Double
	LongDouble

	// Named refers to a typedef.
	Named
)

var kindNames = map[Kind]string{
	Void:       "void",
	Char:       "char",
	Short:      "short",
	Int:        "int",
	Long:       "long",
	LongLong:   "long long",
	Float:      "float",
	Double:     "double",
	LongDouble: "long double",
	Named:      "named",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsInteger reports whether values of the kind carry a signedness.
func (k Kind) IsInteger() bool {
	switch k {
	case Char, Short, Int, Long, LongLong:
		return true
	}
	return false
}

// Sign is the explicit signedness of an integer type.
type Sign int

const (
	SignUnspecified Sign = iota
	Signed
	Unsigned
)

// Type is a base type: a built-in kind or a typedef name.
type Type struct {
	Kind Kind
	Sign Sign
	Name string
}

// NamedType returns a reference to the typedef name.
func NamedType(name string) Type {
	return Type{Kind: Named, Name: name}
}

func (t Type) String() string {
	if t.Kind == Named {
		return t.Name
	}
	switch t.Sign {
	case Signed:
		return "signed " + t.Kind.String()
	case Unsigned:
		return "unsigned " + t.Kind.String()
	}
	return t.Kind.String()
}
