package ast

// TypeName is a reference to a named type: a primitive, a declared Data
// or Enum type, or a type alias.
type TypeName struct {
	Name string
	Sp   Span
}

func (t *TypeName) node()     {}
func (t *TypeName) typeNode() {}
func (t *TypeName) Span() Span { return t.Sp }

// TypeVar is a generic type parameter, resolved by unification at call
// sites.
type TypeVar struct {
	Name string
	Sp   Span
}

func (t *TypeVar) node()     {}
func (t *TypeVar) typeNode() {}
func (t *TypeVar) Span() Span { return t.Sp }

// TypeApp applies a generic base constructor to argument types, e.g.
// `List<Int>` or `Result<Text, Int>`.
type TypeApp struct {
	Base string
	Args []TypeExpr
	Sp   Span
}

func (t *TypeApp) node()     {}
func (t *TypeApp) typeNode() {}
func (t *TypeApp) Span() Span { return t.Sp }

// MaybeType is `Maybe<T>`.
type MaybeType struct {
	Elem TypeExpr
	Sp   Span
}

func (t *MaybeType) node()     {}
func (t *MaybeType) typeNode() {}
func (t *MaybeType) Span() Span { return t.Sp }

// OptionType is `Option<T>`, subtype-compatible with MaybeType in both
// directions.
type OptionType struct {
	Elem TypeExpr
	Sp   Span
}

func (t *OptionType) node()     {}
func (t *OptionType) typeNode() {}
func (t *OptionType) Span() Span { return t.Sp }

// ResultType is `Result<T, E>`.
type ResultType struct {
	Ok   TypeExpr
	Err  TypeExpr
	Sp   Span
}

func (t *ResultType) node()     {}
func (t *ResultType) typeNode() {}
func (t *ResultType) Span() Span { return t.Sp }

// ListType is `List<T>`.
type ListType struct {
	Elem TypeExpr
	Sp   Span
}

func (t *ListType) node()     {}
func (t *ListType) typeNode() {}
func (t *ListType) Span() Span { return t.Sp }

// MapType is `Map<K, V>`.
type MapType struct {
	Key   TypeExpr
	Value TypeExpr
	Sp    Span
}

func (t *MapType) node()     {}
func (t *MapType) typeNode() {}
func (t *MapType) Span() Span { return t.Sp }

// FuncType is a lambda/function type `(P1, …) -> R`.
type FuncType struct {
	Params []TypeExpr
	Return TypeExpr
	Sp     Span
}

func (t *FuncType) node()     {}
func (t *FuncType) typeNode() {}
func (t *FuncType) Span() Span { return t.Sp }

// PiiType wraps a base type with a declared PII sensitivity level
// (`L1`, `L2`, `L3`).
type PiiType struct {
	Base  TypeExpr
	Level string
	Sp    Span
}

func (t *PiiType) node()     {}
func (t *PiiType) typeNode() {}
func (t *PiiType) Span() Span { return t.Sp }
