package ir

import (
	"fmt"
	"strings"

	"github.com/aster-lang/aster/internal/compiler/ast"
)

// Lower converts a parsed ast.Module into its IR: operator expressions are
// normalized to Call nodes, method-style receivers have already been
// rewritten by the parser, and every declaration not carrying an explicit
// type annotation is given one by the identifier-typed inference
// heuristics below. The returned errors are non-fatal; lowering always
// produces a best-effort tree so later stages keep reporting diagnostics.
func Lower(mod *ast.Module) (*Module, []error) {
	l := &lowerer{dataNames: map[string]bool{}}
	for _, d := range mod.Decls {
		if data, ok := d.(*ast.DataDecl); ok {
			l.dataNames[data.Name] = true
		}
	}
	out := &Module{Name: mod.Name, Sp: mod.Sp}
	for _, d := range mod.Decls {
		out.Decls = append(out.Decls, l.lowerDecl(d))
	}
	return out, l.errors
}

type lowerer struct {
	dataNames map[string]bool // declared Data names, for the generate-prefix heuristic
	errors    []error
}

func (l *lowerer) fail(where string, node ast.Node) {
	l.errors = append(l.errors, fmt.Errorf("ir: lowering found no case for %s at %v", where, node.Span()))
}

func (l *lowerer) lowerDecl(d ast.Decl) Decl {
	switch n := d.(type) {
	case *ast.ImportDecl:
		return &ImportDecl{Path: n.Path, Alias: n.Alias, Sp: n.Sp}
	case *ast.TypeAliasDecl:
		return &TypeAliasDecl{Name: n.Name, Params: n.Params, Target: l.lowerType(n.Target), Sp: n.Sp}
	case *ast.DataDecl:
		return &DataDecl{Name: n.Name, Fields: l.lowerFieldDefs(n.Fields), Sp: n.Sp}
	case *ast.EnumDecl:
		variants := make([]EnumVariant, len(n.Variants))
		for i, v := range n.Variants {
			variants[i] = EnumVariant{Name: v.Name, Fields: l.lowerFieldDefs(v.Fields)}
		}
		return &EnumDecl{Name: n.Name, Variants: variants, Sp: n.Sp}
	case *ast.FuncDecl:
		ret := Type(Unknown)
		if n.Return != nil {
			ret = l.lowerType(n.Return)
		} else if inferred := l.inferReturnFromPrefix(n.Name); inferred != nil {
			ret = inferred
		}
		return &FuncDecl{
			Name:            n.Name,
			Params:          l.lowerParams(n.Params),
			Return:          ret,
			Body:            l.lowerBlock(n.Body),
			DeclaredEffect:  n.DeclaredEffect,
			EffectTags:      n.EffectTags,
			Capabilities:    n.Capabilities,
			SensitiveParams: n.SensitiveParams,
			Sp:              n.Sp,
		}
	default:
		l.fail("declaration", d)
		return nil
	}
}

func (l *lowerer) lowerFieldDefs(fields []ast.FieldDef) []FieldDef {
	out := make([]FieldDef, len(fields))
	for i, f := range fields {
		typ := Type(Unknown)
		if f.Type != nil {
			typ = l.lowerType(f.Type)
		} else if inferred := inferFromSuffix(f.Name); inferred != nil {
			typ = inferred
		}
		out[i] = FieldDef{Name: f.Name, Typ: typ}
	}
	return out
}

func (l *lowerer) lowerParams(params []ast.Param) []Param {
	out := make([]Param, len(params))
	for i, p := range params {
		typ := Type(Unknown)
		if p.Type != nil {
			typ = l.lowerType(p.Type)
		} else if inferred := inferFromSuffix(p.Name); inferred != nil {
			typ = inferred
		}
		out[i] = Param{Name: p.Name, Typ: typ}
	}
	return out
}

func (l *lowerer) lowerBlock(b *ast.Block) *Block {
	if b == nil {
		return nil
	}
	stmts := make([]Stmt, 0, len(b.Statements))
	for _, s := range b.Statements {
		if lowered := l.lowerStmt(s); lowered != nil {
			stmts = append(stmts, lowered)
		}
	}
	return &Block{stmtBase: stmtBase{Sp: b.Sp}, Statements: stmts}
}

func (l *lowerer) lowerStmt(s ast.Stmt) Stmt {
	switch n := s.(type) {
	case *ast.LetStmt:
		typ := Type(Unknown)
		if n.Type != nil {
			typ = l.lowerType(n.Type)
		} else if inferred := inferFromSuffix(n.Name); inferred != nil {
			typ = inferred
		}
		return &Let{stmtBase: stmtBase{Sp: n.Sp}, Name: n.Name, Typ: typ, Value: l.lowerExpr(n.Value)}
	case *ast.SetStmt:
		return &Set{stmtBase: stmtBase{Sp: n.Sp}, Name: n.Name, Value: l.lowerExpr(n.Value)}
	case *ast.ReturnStmt:
		return &Return{stmtBase: stmtBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.IfStmt:
		var elseBlock *Block
		if n.Else != nil {
			elseBlock = l.lowerBlock(n.Else)
		}
		return &If{stmtBase: stmtBase{Sp: n.Sp}, Condition: l.lowerExpr(n.Condition), Then: l.lowerBlock(n.Then), Else: elseBlock}
	case *ast.MatchStmt:
		cases := make([]Case, len(n.Cases))
		for i, c := range n.Cases {
			cases[i] = Case{Pattern: l.lowerPattern(c.Pattern), Body: l.lowerBlock(c.Body)}
		}
		return &Match{stmtBase: stmtBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value), Cases: cases}
	case *ast.ScopeStmt:
		return l.lowerBlock(n.Body)
	case *ast.StartStmt:
		return &Start{stmtBase: stmtBase{Sp: n.Sp}, Name: n.Name, Value: l.lowerExpr(n.Value)}
	case *ast.WaitStmt:
		return &Wait{stmtBase: stmtBase{Sp: n.Sp}, Name: n.Name}
	case *ast.ExprStmt:
		return &ExprStmt{stmtBase: stmtBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.WorkflowStmt:
		steps := make([]Step, len(n.Steps))
		for i, st := range n.Steps {
			var compensate *Block
			if st.Compensate != nil {
				compensate = l.lowerBlock(st.Compensate)
			}
			steps[i] = Step{Name: st.Name, Body: l.lowerBlock(st.Body), Compensate: compensate}
		}
		return &Workflow{stmtBase: stmtBase{Sp: n.Sp}, Steps: steps}
	default:
		l.fail("statement", s)
		return nil
	}
}

func (l *lowerer) lowerPattern(p ast.Pattern) Pattern {
	switch n := p.(type) {
	case *ast.PatInt:
		return &PatInt{patternBase: patternBase{Sp: n.Sp}, Value: n.Value}
	case *ast.PatName:
		return &PatName{patternBase: patternBase{Sp: n.Sp}, Name: n.Name}
	case *ast.PatWildcard:
		return &PatWildcard{patternBase: patternBase{Sp: n.Sp}}
	case *ast.PatNull:
		return &PatNull{patternBase: patternBase{Sp: n.Sp}}
	case *ast.PatBool:
		return &PatBool{patternBase: patternBase{Sp: n.Sp}, Value: n.Value}
	case *ast.PatString:
		return &PatString{patternBase: patternBase{Sp: n.Sp}, Value: n.Value}
	case *ast.PatConstructor:
		args := make([]Pattern, len(n.Args))
		for i, a := range n.Args {
			args[i] = l.lowerPattern(a)
		}
		return &PatConstructor{patternBase: patternBase{Sp: n.Sp}, Name: n.Name, Args: args}
	default:
		l.fail("pattern", p)
		return nil
	}
}

func (l *lowerer) lowerExpr(e ast.Expr) Expr {
	switch n := e.(type) {
	case *ast.NameExpr:
		return &Name{exprBase: exprBase{Sp: n.Sp}, Ident: n.Name}
	case *ast.IntExpr:
		return &IntLit{exprBase: exprBase{Sp: n.Sp, Typ: Int}, Value: n.Value}
	case *ast.LongExpr:
		return &LongLit{exprBase: exprBase{Sp: n.Sp, Typ: Long}, Value: n.Value}
	case *ast.DoubleExpr:
		return &DoubleLit{exprBase: exprBase{Sp: n.Sp, Typ: Double}, Value: n.Value}
	case *ast.BoolExpr:
		return &BoolLit{exprBase: exprBase{Sp: n.Sp, Typ: Bool}, Value: n.Value}
	case *ast.StringExpr:
		return &StringLit{exprBase: exprBase{Sp: n.Sp, Typ: Text}, Value: n.Value}
	case *ast.NullExpr:
		return &NullLit{exprBase: exprBase{Sp: n.Sp}}
	case *ast.BinaryExpr:
		return &Call{
			exprBase: exprBase{Sp: n.Sp},
			Target:   &Name{exprBase: exprBase{Sp: n.Sp}, Ident: n.Operator},
			Args:     []Expr{l.lowerExpr(n.Left), l.lowerExpr(n.Right)},
		}
	case *ast.LogicalExpr:
		return &Call{
			exprBase: exprBase{Sp: n.Sp},
			Target:   &Name{exprBase: exprBase{Sp: n.Sp}, Ident: n.Operator},
			Args:     []Expr{l.lowerExpr(n.Left), l.lowerExpr(n.Right)},
		}
	case *ast.CallExpr:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = l.lowerExpr(a)
		}
		return &Call{exprBase: exprBase{Sp: n.Sp}, Target: l.lowerExpr(n.Callee), Args: args}
	case *ast.LambdaExpr:
		ret := Type(Unknown)
		if n.Return != nil {
			ret = l.lowerType(n.Return)
		}
		return &Lambda{exprBase: exprBase{Sp: n.Sp}, Params: l.lowerParams(n.Params), Return: ret, Body: l.lowerBlock(n.Body)}
	case *ast.ConstructExpr:
		fields := make([]FieldValue, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = FieldValue{Name: f.Name, Value: l.lowerExpr(f.Value)}
		}
		return &Construct{exprBase: exprBase{Sp: n.Sp}, TypeName: n.TypeName, Fields: fields}
	case *ast.OkExpr:
		return &Ok{exprBase: exprBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.ErrExpr:
		return &Err{exprBase: exprBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.SomeExpr:
		return &Some{exprBase: exprBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.NoneExpr:
		return &None{exprBase: exprBase{Sp: n.Sp}}
	case *ast.AwaitExpr:
		return &Await{exprBase: exprBase{Sp: n.Sp}, Value: l.lowerExpr(n.Value)}
	case *ast.ListLiteralExpr:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = l.lowerExpr(el)
		}
		return &ListLit{exprBase: exprBase{Sp: n.Sp}, Elements: elems}
	default:
		l.fail("expression", e)
		return nil
	}
}

func (l *lowerer) lowerType(t ast.TypeExpr) Type {
	switch n := t.(type) {
	case *ast.TypeName:
		if prim := primitiveByName(n.Name); prim != nil {
			return prim
		}
		// A single uppercase letter is a generic type parameter by
		// convention (`given x: T produce T`), not a reference to a
		// declared type.
		if len(n.Name) == 1 && n.Name[0] >= 'A' && n.Name[0] <= 'Z' {
			return &TypeVar{Name: n.Name}
		}
		// An unqualified reference to a user-declared type. Whether it names
		// a Data or an Enum is only known once the type checker's symbol
		// table is consulted; DataT stands in as the named reference and is
		// promoted to EnumT there if the lookup says otherwise.
		return &DataT{Name: n.Name}
	case *ast.TypeVar:
		return &TypeVar{Name: n.Name}
	case *ast.TypeApp:
		args := make([]Type, len(n.Args))
		for i, a := range n.Args {
			args[i] = l.lowerType(a)
		}
		if want, isBuiltin := builtinArity[n.Base]; isBuiltin {
			if len(args) != want {
				l.errors = append(l.errors, fmt.Errorf("ir: %s expects %d type argument(s), found %d at %v", n.Base, want, len(args), n.Sp))
				return Unknown
			}
			switch n.Base {
			case "List":
				return &ListT{Elem: args[0]}
			case "Map":
				return &MapT{Key: args[0], Value: args[1]}
			case "Maybe":
				return &MaybeT{Elem: args[0]}
			case "Option":
				return &OptionT{Elem: args[0]}
			case "Result":
				return &ResultT{Ok: args[0], Err: args[1]}
			}
		}
		// A non-builtin base with arguments is a generic alias (or a
		// reference the checker will flag); keep the arguments so alias
		// expansion can substitute them.
		return &AppT{Base: n.Base, Args: args}
	case *ast.MaybeType:
		return &MaybeT{Elem: l.lowerType(n.Elem)}
	case *ast.OptionType:
		return &OptionT{Elem: l.lowerType(n.Elem)}
	case *ast.ResultType:
		return &ResultT{Ok: l.lowerType(n.Ok), Err: l.lowerType(n.Err)}
	case *ast.ListType:
		return &ListT{Elem: l.lowerType(n.Elem)}
	case *ast.MapType:
		return &MapT{Key: l.lowerType(n.Key), Value: l.lowerType(n.Value)}
	case *ast.FuncType:
		params := make([]Type, len(n.Params))
		for i, p := range n.Params {
			params[i] = l.lowerType(p)
		}
		return &FuncT{Params: params, Return: l.lowerType(n.Return)}
	case *ast.PiiType:
		return &PiiT{Base: l.lowerType(n.Base), Level: n.Level}
	default:
		l.fail("type", t)
		return Unknown
	}
}

// builtinArity fixes the argument count each built-in type constructor
// accepts.
var builtinArity = map[string]int{
	"List":   1,
	"Map":    2,
	"Maybe":  1,
	"Option": 1,
	"Result": 2,
}

func primitiveByName(name string) Type {
	switch name {
	case "Int":
		return Int
	case "Long":
		return Long
	case "Float":
		return Float
	case "Double":
		return Double
	case "Text":
		return Text
	case "Bool":
		return Bool
	case "DateTime":
		return DateTime
	default:
		return nil
	}
}

// inferFromSuffix applies the identifier-typed inference heuristics to a
// name lacking an explicit type annotation: a suffix of Id, Age, At or
// Amount implies its usual type, and a lowercase "is" prefix implies Bool.
// It returns nil when no heuristic matches, leaving the caller's Unknown
// default in place.
func inferFromSuffix(name string) Type {
	switch {
	case strings.HasPrefix(name, "is") && len(name) > 2 && isUpper(name[2]):
		return Bool
	case strings.HasSuffix(name, "Id"):
		return Text
	case strings.HasSuffix(name, "Age"):
		return Int
	case strings.HasSuffix(name, "At"):
		return DateTime
	case strings.HasSuffix(name, "Amount"):
		return Float
	default:
		return nil
	}
}

// inferReturnFromPrefix infers a function's return type from a
// conventional name prefix when no `produce` clause was declared. A
// `generate<Datum>` name produces the declared datum it names when one
// exists, e.g. generateOrder with a `Data Order` declaration in scope.
func (l *lowerer) inferReturnFromPrefix(name string) Type {
	switch {
	case strings.HasPrefix(name, "generate"):
		if datum := name[len("generate"):]; l.dataNames[datum] {
			return &DataT{Name: datum}
		}
		return Text
	case strings.HasPrefix(name, "calculate"):
		return Int
	case strings.HasPrefix(name, "check"), strings.HasPrefix(name, "validate"):
		return Bool
	default:
		return nil
	}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
