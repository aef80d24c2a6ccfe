package ast

// FuncDecl is a Rule/function declaration: `Rule name given p1: T1, … produce R: body`.
type FuncDecl struct {
	Name             string
	Params           []Param
	Return           TypeExpr
	Body             *Block
	DeclaredEffect   EffectTag   // lattice join of the header's effect tags; EffectPure if none declared
	EffectTags       []EffectTag // the header's effect tags as written, in order
	Capabilities     []string    // declared capability tags (Http, Sql, Time, …)
	SensitiveParams  []string  // parameter names declared `sensitive`
	Sp               Span
}

func (f *FuncDecl) node()      {}
func (f *FuncDecl) declNode()  {}
func (f *FuncDecl) Span() Span { return f.Sp }

// DataDecl is a struct-shaped `Data` declaration.
type DataDecl struct {
	Name   string
	Fields []FieldDef
	Sp     Span
}

func (d *DataDecl) node()      {}
func (d *DataDecl) declNode()  {}
func (d *DataDecl) Span() Span { return d.Sp }

// EnumVariant is one member of an Enum declaration.
type EnumVariant struct {
	Name   string
	Fields []FieldDef // empty for a unit variant
	Sp     Span
}

// EnumDecl is an `Enum` declaration.
type EnumDecl struct {
	Name     string
	Variants []EnumVariant
	Sp       Span
}

func (e *EnumDecl) node()      {}
func (e *EnumDecl) declNode()  {}
func (e *EnumDecl) Span() Span { return e.Sp }

// ImportDecl is a `use X as Y` declaration.
type ImportDecl struct {
	Path  string
	Alias string
	Sp    Span
}

func (i *ImportDecl) node()      {}
func (i *ImportDecl) declNode()  {}
func (i *ImportDecl) Span() Span { return i.Sp }

// TypeAliasDecl is a named alias for another type, optionally generic.
type TypeAliasDecl struct {
	Name   string
	Params []string // generic parameter names, empty for a non-generic alias
	Target TypeExpr
	Sp     Span
}

func (t *TypeAliasDecl) node()      {}
func (t *TypeAliasDecl) declNode()  {}
func (t *TypeAliasDecl) Span() Span { return t.Sp }
