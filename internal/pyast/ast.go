// Package pyast parses Python source into a small typed syntax tree.
//
// Only the shapes needed to find a module's top-level names are modelled:
// function and class definitions, plain assignments, and the expression
// forms that may appear on either side of an assignment. Everything else is
// kept as an opaque OtherStmt or OtherExpr carrying the tree-sitter node type.
package pyast

// Mod is the root of a parsed tree: *Module or *Expression.
type Mod interface {
	mod()
}

// Module is the root Parse produces for a source file.
type Module struct {
	Body    []Stmt
	Version Version
}

// Expression is a bare expression root. Consumers that expect a module
// treat it as having no top-level names.
type Expression struct {
	Body Expr
}

func (*Module) mod()     {}
func (*Expression) mod() {}

// Stmt is a top-level statement.
type Stmt interface {
	stmt()
}

// FunctionDef is a def or async def, decorated or not.
type FunctionDef struct {
	Name string
}

// ClassDef is a class definition, decorated or not.
type ClassDef struct {
	Name string
}

// Assign is a plain assignment. Chained assignments (a = b = v) carry one
// target per name to the left of the value.
type Assign struct {
	Targets []Expr
	Value   Expr
}

// OtherStmt is any statement not modelled above.
type OtherStmt struct {
	Kind string
}

func (*FunctionDef) stmt() {}
func (*ClassDef) stmt()    {}
func (*Assign) stmt()      {}
func (*OtherStmt) stmt()   {}

// Expr is an expression or assignment target.
type Expr interface {
	expr()
}

// Name is a bare identifier.
type Name struct {
	ID string
}

// Tuple is a tuple display or tuple pattern.
type Tuple struct {
	Elts []Expr
}

// List is a list display or list pattern.
type List struct {
	Elts []Expr
}

// StringLiteral is a non-f, non-bytes string with escapes decoded.
type StringLiteral struct {
	Value string
}

// OtherExpr is any expression not modelled above.
type OtherExpr struct {
	Kind string
}

func (*Name) expr()          {}
func (*Tuple) expr()         {}
func (*List) expr()          {}
func (*StringLiteral) expr() {}
func (*OtherExpr) expr()     {}
