package hir

// Block is a braced statement list. A *Block is itself a Stmt.
type Block struct {
	Stmts []Stmt
}

// Stmt is a statement.
type Stmt interface {
	stmt()
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct{}

// DeclStmt declares local variables. It never holds a function body.
type DeclStmt struct {
	Var *VarDefn
}

// TypeStmt is a block-scoped typedef.
type TypeStmt struct {
	Type *TypeDefn
}

type ExprStmt struct {
	X Expr
}

// IfStmt attaches Else, if present, to the nearest unmatched if.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// ForStmt has three optional clauses; nil means omitted.
type ForStmt struct {
	Init Expr
	Cond Expr
	Rept Expr
	Body Stmt
}

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type DoWhileStmt struct {
	Body Stmt
	Cond Expr
}

type BreakStmt struct{}

type ContinueStmt struct{}

// ReturnStmt returns X, which is nil for a bare return.
type ReturnStmt struct {
	X Expr
}

type GotoStmt struct {
	Label string
}

// LabeledStmt marks Stmt as a goto target.
type LabeledStmt struct {
	Label string
	Stmt  Stmt
}

func (*Block) stmt()        {}
func (*EmptyStmt) stmt()    {}
func (*DeclStmt) stmt()     {}
func (*TypeStmt) stmt()     {}
func (*ExprStmt) stmt()     {}
func (*IfStmt) stmt()       {}
func (*ForStmt) stmt()      {}
func (*WhileStmt) stmt()    {}
func (*DoWhileStmt) stmt()  {}
func (*BreakStmt) stmt()    {}
func (*ContinueStmt) stmt() {}
func (*ReturnStmt) stmt()   {}
func (*GotoStmt) stmt()     {}
func (*LabeledStmt) stmt()  {}
