// Package ir defines the compiler's core intermediate representation: an
// AST-shaped tree where every expression carries a resolved (or Unknown)
// Type, operator expressions have already been normalized to calls, and
// method-style calls have already been rewritten to their target form by
// the parser. The type checker runs entirely against this representation.
package ir

import (
	"fmt"
	"strings"
)

// Type is the IR's own type representation, distinct from the AST's
// surface TypeExpr syntax tree: it is the thing unification operates on.
type Type interface {
	String() string
	Equals(other Type) bool
}

// Unknown marks a type the lowering pass could not resolve; the type
// checker treats it as compatible with everything to avoid cascading
// errors from a single unresolved name.
type UnknownType struct{}

func (UnknownType) String() string        { return "Unknown" }
func (UnknownType) Equals(other Type) bool {
	_, ok := other.(UnknownType)
	return ok
}

// Unknown is the shared UnknownType value.
var Unknown Type = UnknownType{}

// Primitive is one of the built-in scalar types: Int, Long, Float,
// Double, Text, Bool, DateTime.
type Primitive struct {
	Name string
}

func (p *Primitive) String() string { return p.Name }
func (p *Primitive) Equals(other Type) bool {
	o, ok := other.(*Primitive)
	return ok && o.Name == p.Name
}

var (
	Int      = &Primitive{Name: "Int"}
	Long     = &Primitive{Name: "Long"}
	Float    = &Primitive{Name: "Float"}
	Double   = &Primitive{Name: "Double"}
	Text     = &Primitive{Name: "Text"}
	Bool     = &Primitive{Name: "Bool"}
	DateTime = &Primitive{Name: "DateTime"}
)

// TypeVar is a generic type parameter participating in Hindley-Milner
// style unification. Two TypeVars with the same Name inside one call's
// unification scope must resolve to the same concrete Type.
type TypeVar struct {
	Name string
}

func (t *TypeVar) String() string        { return "'" + t.Name }
func (t *TypeVar) Equals(other Type) bool {
	o, ok := other.(*TypeVar)
	return ok && o.Name == t.Name
}

// ListT is `List<Elem>`.
type ListT struct{ Elem Type }

func (l *ListT) String() string { return fmt.Sprintf("List<%s>", l.Elem.String()) }
func (l *ListT) Equals(other Type) bool {
	o, ok := other.(*ListT)
	return ok && l.Elem.Equals(o.Elem)
}

// MapT is `Map<Key, Value>`.
type MapT struct{ Key, Value Type }

func (m *MapT) String() string {
	return fmt.Sprintf("Map<%s, %s>", m.Key.String(), m.Value.String())
}
func (m *MapT) Equals(other Type) bool {
	o, ok := other.(*MapT)
	return ok && m.Key.Equals(o.Key) && m.Value.Equals(o.Value)
}

// MaybeT and OptionT are subtype-interchangeable: a MaybeT<T> and an
// OptionT<T> with equal element types are mutually assignable, but they
// are distinct Type values so unification can still report exactly
// which family a declaration used.
type MaybeT struct{ Elem Type }

func (m *MaybeT) String() string { return fmt.Sprintf("Maybe<%s>", m.Elem.String()) }
func (m *MaybeT) Equals(other Type) bool {
	switch o := other.(type) {
	case *MaybeT:
		return m.Elem.Equals(o.Elem)
	case *OptionT:
		return m.Elem.Equals(o.Elem)
	}
	return false
}

type OptionT struct{ Elem Type }

func (o *OptionT) String() string { return fmt.Sprintf("Option<%s>", o.Elem.String()) }
func (o *OptionT) Equals(other Type) bool {
	switch other := other.(type) {
	case *OptionT:
		return o.Elem.Equals(other.Elem)
	case *MaybeT:
		return o.Elem.Equals(other.Elem)
	}
	return false
}

// ResultT is `Result<Ok, Err>`.
type ResultT struct{ Ok, Err Type }

func (r *ResultT) String() string {
	return fmt.Sprintf("Result<%s, %s>", r.Ok.String(), r.Err.String())
}
func (r *ResultT) Equals(other Type) bool {
	o, ok := other.(*ResultT)
	return ok && r.Ok.Equals(o.Ok) && r.Err.Equals(o.Err)
}

// FuncT is a lambda/function signature.
type FuncT struct {
	Params []Type
	Return Type
}

func (f *FuncT) String() string {
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.Return.String())
}
func (f *FuncT) Equals(other Type) bool {
	o, ok := other.(*FuncT)
	if !ok || len(f.Params) != len(o.Params) || !f.Return.Equals(o.Return) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equals(o.Params[i]) {
			return false
		}
	}
	return true
}

// DataT and EnumT reference a user-declared Data/Enum type by name.
type DataT struct{ Name string }

func (d *DataT) String() string        { return d.Name }
func (d *DataT) Equals(other Type) bool {
	o, ok := other.(*DataT)
	return ok && o.Name == d.Name
}

type EnumT struct{ Name string }

func (e *EnumT) String() string        { return e.Name }
func (e *EnumT) Equals(other Type) bool {
	o, ok := other.(*EnumT)
	return ok && o.Name == e.Name
}

// AppT is a named type applied to arguments whose base is not one of the
// built-in constructors, in practice a generic type alias reference such
// as `Pair<Int, Text>`. The type checker expands it against the alias
// table; an AppT that survives checking names a type nothing declared.
type AppT struct {
	Base string
	Args []Type
}

func (a *AppT) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s<%s>", a.Base, strings.Join(parts, ", "))
}
func (a *AppT) Equals(other Type) bool {
	o, ok := other.(*AppT)
	if !ok || o.Base != a.Base || len(o.Args) != len(a.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// PiiT wraps a base type with a declared sensitivity level ("L1", "L2",
// "L3"). Level comparison follows the L1 < L2 < L3 total order.
type PiiT struct {
	Base  Type
	Level string
}

func (p *PiiT) String() string        { return fmt.Sprintf("%s@%s", p.Base.String(), p.Level) }
func (p *PiiT) Equals(other Type) bool {
	o, ok := other.(*PiiT)
	return ok && p.Level == o.Level && p.Base.Equals(o.Base)
}

// piiRank orders sensitivity levels for the PII-downgrade invariant:
// assigning a higher-ranked value into a lower-ranked slot without an
// explicit sanitizer is an error.
var piiRank = map[string]int{"L1": 1, "L2": 2, "L3": 3}

// PiiRank returns level's position in the L1 < L2 < L3 order, or 0 for an
// unrecognized level.
func PiiRank(level string) int { return piiRank[level] }

// Compatible is the non-strict equality used during inference: Unknown
// matches anything at any depth, Maybe and Option interchange, and a PiiT
// compares through its base (sensitivity mismatches are the PII flow
// checker's concern, not structural equality's). Strict conformance is
// the Equals method on each Type.
func Compatible(a, b Type) bool {
	if a == nil || b == nil {
		return true
	}
	if _, ok := a.(UnknownType); ok {
		return true
	}
	if _, ok := b.(UnknownType); ok {
		return true
	}

	ap, aPii := a.(*PiiT)
	bp, bPii := b.(*PiiT)
	switch {
	case aPii && bPii:
		return Compatible(ap.Base, bp.Base)
	case aPii:
		return Compatible(ap.Base, b)
	case bPii:
		return Compatible(a, bp.Base)
	}

	switch at := a.(type) {
	case *ListT:
		bt, ok := b.(*ListT)
		return ok && Compatible(at.Elem, bt.Elem)
	case *MapT:
		bt, ok := b.(*MapT)
		return ok && Compatible(at.Key, bt.Key) && Compatible(at.Value, bt.Value)
	case *MaybeT:
		switch bt := b.(type) {
		case *MaybeT:
			return Compatible(at.Elem, bt.Elem)
		case *OptionT:
			return Compatible(at.Elem, bt.Elem)
		}
		return false
	case *OptionT:
		switch bt := b.(type) {
		case *OptionT:
			return Compatible(at.Elem, bt.Elem)
		case *MaybeT:
			return Compatible(at.Elem, bt.Elem)
		}
		return false
	case *ResultT:
		bt, ok := b.(*ResultT)
		return ok && Compatible(at.Ok, bt.Ok) && Compatible(at.Err, bt.Err)
	case *FuncT:
		bt, ok := b.(*FuncT)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		for i := range at.Params {
			if !Compatible(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return Compatible(at.Return, bt.Return)
	case *AppT:
		bt, ok := b.(*AppT)
		if !ok || at.Base != bt.Base || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !Compatible(at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	default:
		return a.Equals(b)
	}
}

// Substitute replaces every TypeVar in t whose name is bound in bind,
// recursing through container types. Unbound variables are left intact.
func Substitute(t Type, bind map[string]Type) Type {
	if t == nil || len(bind) == 0 {
		return t
	}
	switch n := t.(type) {
	case *TypeVar:
		if bound, ok := bind[n.Name]; ok {
			return bound
		}
		return n
	case *DataT:
		// A generic alias parameter that didn't follow the single-letter
		// TypeVar convention lowers to a DataT placeholder; it still
		// substitutes by name inside the alias's target.
		if bound, ok := bind[n.Name]; ok {
			return bound
		}
		return n
	case *ListT:
		return &ListT{Elem: Substitute(n.Elem, bind)}
	case *MapT:
		return &MapT{Key: Substitute(n.Key, bind), Value: Substitute(n.Value, bind)}
	case *MaybeT:
		return &MaybeT{Elem: Substitute(n.Elem, bind)}
	case *OptionT:
		return &OptionT{Elem: Substitute(n.Elem, bind)}
	case *ResultT:
		return &ResultT{Ok: Substitute(n.Ok, bind), Err: Substitute(n.Err, bind)}
	case *FuncT:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = Substitute(p, bind)
		}
		return &FuncT{Params: params, Return: Substitute(n.Return, bind)}
	case *AppT:
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = Substitute(a, bind)
		}
		return &AppT{Base: n.Base, Args: args}
	case *PiiT:
		return &PiiT{Base: Substitute(n.Base, bind), Level: n.Level}
	default:
		return t
	}
}
