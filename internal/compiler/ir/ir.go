package ir

import "github.com/aster-lang/aster/internal/compiler/ast"

// Node is the base interface for every IR node; Origin recovers the
// source span the node was lowered from, for diagnostics.
type Node interface {
	Origin() ast.Span
}

// Expr is an IR expression: same shape as ast.Expr, but every node now
// carries a resolved (or Unknown) Type, filled in by lowering and refined
// by the type checker.
type Expr interface {
	Node
	Type() Type
	SetType(Type)
	exprNode()
}

type exprBase struct {
	Sp  ast.Span
	Typ Type
}

func (e *exprBase) Origin() ast.Span { return e.Sp }
func (e *exprBase) Type() Type {
	if e.Typ == nil {
		return Unknown
	}
	return e.Typ
}
func (e *exprBase) SetType(t Type) { e.Typ = t }
func (e *exprBase) exprNode()      {}

// Name references a bound identifier.
type Name struct {
	exprBase
	Ident string
}

// IntLit, LongLit, DoubleLit, BoolLit, StringLit, NullLit are literal
// expressions; their Type is filled in immediately by lowering (literals
// never need inference).
type IntLit struct {
	exprBase
	Value int
}
type LongLit struct {
	exprBase
	Value int64
}
type DoubleLit struct {
	exprBase
	Value float64
}
type BoolLit struct {
	exprBase
	Value bool
}
type StringLit struct {
	exprBase
	Value string
}
type NullLit struct{ exprBase }

// Call is every call shape the AST can produce (a plain function call,
// a rewritten method call, and a lowered binary/logical/unary operator)
// unified into one node per the operator-call normalization rule: the
// lowerer turns `a + b` into Call{Target: Name("+"), Args: [a, b]}.
type Call struct {
	exprBase
	Target Expr
	Args   []Expr
}

// Construct builds a Data value.
type FieldValue struct {
	Name  string
	Value Expr
}
type Construct struct {
	exprBase
	TypeName string
	Fields   []FieldValue
}

// Ok, Err, Some, None are sum-type constructors.
type Ok struct {
	exprBase
	Value Expr
}
type Err struct {
	exprBase
	Value Expr
}
type Some struct {
	exprBase
	Value Expr
}
type None struct{ exprBase }

// Await waits on an async expression; always carries async effect.
type Await struct {
	exprBase
	Value Expr
}

// ListLit is a list literal.
type ListLit struct {
	exprBase
	Elements []Expr
}

// Lambda is an anonymous function literal, lowered with its own Block.
type Lambda struct {
	exprBase
	Params []Param
	Return Type
	Body   *Block
}

// Param is a lowered function/lambda parameter.
type Param struct {
	Name string
	Typ  Type
}

// Stmt is an IR statement.
type Stmt interface {
	Node
	stmtNode()
}

type stmtBase struct{ Sp ast.Span }

func (s *stmtBase) Origin() ast.Span { return s.Sp }
func (s *stmtBase) stmtNode()        {}

// Block is a sequence of statements. Its span still reflects the
// precision rule inherited from the AST (first/last statement span).
type Block struct {
	stmtBase
	Statements []Stmt
}

type Let struct {
	stmtBase
	Name  string
	Typ   Type
	Value Expr
}
type Set struct {
	stmtBase
	Name  string
	Value Expr
}
type Return struct {
	stmtBase
	Value Expr
}
type If struct {
	stmtBase
	Condition Expr
	Then      *Block
	Else      *Block
}
type Case struct {
	Pattern Pattern
	Body    *Block
}
type Match struct {
	stmtBase
	Value Expr
	Cases []Case
}
type Start struct {
	stmtBase
	Name  string
	Value Expr
}
type Wait struct {
	stmtBase
	Name string
}
type ExprStmt struct {
	stmtBase
	Value Expr
}
type Step struct {
	Name       string
	Body       *Block
	Compensate *Block
}
type Workflow struct {
	stmtBase
	Steps []Step
}

// Pattern mirrors ast.Pattern in the IR, carrying no type of its own;
// pattern typing is derived from the matched value's Type during checking.
type Pattern interface {
	Node
	patternNode()
}

type patternBase struct{ Sp ast.Span }

func (p *patternBase) Origin() ast.Span { return p.Sp }
func (p *patternBase) patternNode()     {}

type PatInt struct {
	patternBase
	Value int
}
type PatName struct {
	patternBase
	Name string
}
type PatWildcard struct{ patternBase }
type PatNull struct{ patternBase }
type PatBool struct {
	patternBase
	Value bool
}
type PatString struct {
	patternBase
	Value string
}
type PatConstructor struct {
	patternBase
	Name string
	Args []Pattern
}

// FuncDecl is a lowered Rule/function declaration, its effect and
// capability metadata carried straight through from the AST for the
// effect/capability/PII checkers to consume.
type FuncDecl struct {
	Name            string
	Params          []Param
	Return          Type
	Body            *Block
	DeclaredEffect  ast.EffectTag
	EffectTags      []ast.EffectTag
	Capabilities    []string
	SensitiveParams []string
	Sp              ast.Span
}

func (f *FuncDecl) Origin() ast.Span { return f.Sp }

// DataDecl and EnumDecl mirror their AST counterparts with resolved
// field types.
type FieldDef struct {
	Name string
	Typ  Type
}
type DataDecl struct {
	Name   string
	Fields []FieldDef
	Sp     ast.Span
}

func (d *DataDecl) Origin() ast.Span { return d.Sp }

type EnumVariant struct {
	Name   string
	Fields []FieldDef
}
type EnumDecl struct {
	Name     string
	Variants []EnumVariant
	Sp       ast.Span
}

func (e *EnumDecl) Origin() ast.Span { return e.Sp }

// TypeAliasDecl and ImportDecl are carried through unchanged; neither
// affects type checking directly beyond name resolution.
type TypeAliasDecl struct {
	Name   string
	Params []string
	Target Type
	Sp     ast.Span
}

func (t *TypeAliasDecl) Origin() ast.Span { return t.Sp }

type ImportDecl struct {
	Path, Alias string
	Sp          ast.Span
}

func (i *ImportDecl) Origin() ast.Span { return i.Sp }

// Decl is any top-level IR declaration.
type Decl interface {
	Node
}

// Module is the root of one lowered source file.
type Module struct {
	Name  string
	Decls []Decl
	Sp    ast.Span
}

func (m *Module) Origin() ast.Span { return m.Sp }
