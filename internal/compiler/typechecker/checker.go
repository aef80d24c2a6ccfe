// Package typechecker runs the five cooperating checks a lowered module
// must pass: base types, alias/generic unification, the effect lattice,
// capabilities & PII flow, and async start/wait discipline. It walks the
// ir package's tree directly; nothing here re-parses or re-lowers.
package typechecker

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/ir"
)

// SymbolKind classifies what a scope entry names.
type SymbolKind string

const (
	SymbolVariable  SymbolKind = "VARIABLE"
	SymbolParameter SymbolKind = "PARAMETER"
	SymbolFunction  SymbolKind = "FUNCTION"
	SymbolDataType  SymbolKind = "DATA_TYPE"
)

// Symbol is one scope entry: the binding's type plus the bookkeeping the
// checkers consult (mutability for Set, the captured flag for lambda
// closures, the shadowed predecessor for nested re-declarations).
type Symbol struct {
	Name     string
	Type     ir.Type
	Kind     SymbolKind
	Mutable  bool
	Origin   ast.Span
	Captured bool
	Shadowed *Symbol
}

// scope is a chain of lexical blocks mapping a bound name to its symbol.
// A scope opened for a lambda body is flagged as a capture boundary:
// resolving a name through it marks the symbol captured.
type scope struct {
	vars           map[string]*Symbol
	parent         *scope
	lambdaBoundary bool
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]*Symbol), parent: parent}
}

func (s *scope) define(sym *Symbol) {
	if prev, ok := s.find(sym.Name); ok {
		sym.Shadowed = prev
	}
	s.vars[sym.Name] = sym
}

// find walks the chain without capture-marking; shadow detection during
// define must not record a closure capture.
func (s *scope) find(name string) (*Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

func (s *scope) lookup(name string) (*Symbol, bool) {
	crossedLambda := false
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.vars[name]; ok {
			if crossedLambda {
				sym.Captured = true
			}
			return sym, true
		}
		if cur.lambdaBoundary {
			crossedLambda = true
		}
	}
	return nil, false
}

// Checker accumulates the module-level symbol table (every Data, Enum and
// function signature) that individual function bodies are checked against.
type Checker struct {
	functions  map[string]*ir.FuncDecl
	datas      map[string]*ir.DataDecl
	enums      map[string]*ir.EnumDecl
	aliases    map[string]*ir.TypeAliasDecl
	manifest   *Manifest
	effects    *EffectPatterns
	enforcePII bool
	sinks      map[string]bool
	diags      Diagnostics
}

// NewChecker builds a Checker enforcing manifest's capability allow-list.
// A nil manifest allows every capability a rule declares for itself. PII
// flow checking is off until a driver that read ENFORCE_PII=true from its
// environment calls SetEnforcePII(true).
func NewChecker(manifest *Manifest) *Checker {
	return &Checker{
		functions: make(map[string]*ir.FuncDecl),
		datas:     make(map[string]*ir.DataDecl),
		enums:     make(map[string]*ir.EnumDecl),
		aliases: map[string]*ir.TypeAliasDecl{
			// Built-in alias: String is the legacy spelling of Text.
			"String": {Name: "String", Target: ir.Text},
		},
		manifest:   manifest,
		effects:    defaultEffectPatterns(),
		enforcePII: false,
		sinks:      sinkFunctions,
	}
}

// SetEffectPatterns replaces the default qualified-name prefix table used
// to classify an otherwise unknown call's effect, normally with one loaded
// from the driver's ASTER_EFFECT_CONFIG file.
func (c *Checker) SetEffectPatterns(p *EffectPatterns) {
	if p != nil {
		c.effects = p
	}
}

// SetEnforcePII toggles the PII flow checker. When disabled, PII_ASSIGN_
// DOWNGRADE, PII_IMPLICIT_UPLEVEL, PII_SINK_UNSANITIZED and PII_ARG_
// VIOLATION are never raised, matching the driver's ENFORCE_PII /
// ASTER_ENFORCE_PII environment flag.
func (c *Checker) SetEnforcePII(enabled bool) {
	c.enforcePII = enabled
}

// SetSinks replaces the default PII sink function list (stdlib.go's
// sinkFunctions: IO.print and Log.write/info/warn/error) with one loaded from the driver's
// effect configuration, keyed by "Namespace.Name".
func (c *Checker) SetSinks(sinks map[string]bool) {
	c.sinks = sinks
}

// Check runs both passes over mod and returns every diagnostic raised.
func (c *Checker) Check(mod *ir.Module) Diagnostics {
	c.collect(mod)
	for _, d := range mod.Decls {
		if fn, ok := d.(*ir.FuncDecl); ok {
			c.checkFunc(fn)
		}
	}
	return c.diags
}

func (c *Checker) collect(mod *ir.Module) {
	for _, d := range mod.Decls {
		switch n := d.(type) {
		case *ir.FuncDecl:
			c.functions[n.Name] = n
		case *ir.DataDecl:
			c.datas[n.Name] = n
		case *ir.EnumDecl:
			c.enums[n.Name] = n
		case *ir.TypeAliasDecl:
			c.aliases[n.Name] = n
		}
	}
}

// resolveNamed expands type aliases (cycle-safe via a per-lookup visited
// set) and promotes a lowering-time DataT placeholder to EnumT once the
// symbol table shows the name was actually declared as an Enum.
func (c *Checker) resolveNamed(t ir.Type) ir.Type {
	return c.resolveType(t, nil)
}

func (c *Checker) resolveType(t ir.Type, visited map[string]bool) ir.Type {
	switch n := t.(type) {
	case *ir.DataT:
		if alias, ok := c.aliases[n.Name]; ok && len(alias.Params) == 0 {
			if visited[n.Name] {
				return n // alias cycle: short-circuit to the name itself
			}
			return c.resolveType(alias.Target, mark(visited, n.Name))
		}
		if _, isData := c.datas[n.Name]; !isData {
			if _, isEnum := c.enums[n.Name]; isEnum {
				return &ir.EnumT{Name: n.Name}
			}
		}
		return n
	case *ir.AppT:
		alias, ok := c.aliases[n.Base]
		if !ok || len(alias.Params) != len(n.Args) {
			return n
		}
		if visited[n.Base] {
			return n
		}
		next := mark(visited, n.Base)
		bind := make(map[string]ir.Type, len(alias.Params))
		for i, p := range alias.Params {
			bind[p] = c.resolveType(n.Args[i], visited)
		}
		return c.resolveType(ir.Substitute(alias.Target, bind), next)
	case *ir.ListT:
		return &ir.ListT{Elem: c.resolveType(n.Elem, visited)}
	case *ir.MapT:
		return &ir.MapT{Key: c.resolveType(n.Key, visited), Value: c.resolveType(n.Value, visited)}
	case *ir.MaybeT:
		return &ir.MaybeT{Elem: c.resolveType(n.Elem, visited)}
	case *ir.OptionT:
		return &ir.OptionT{Elem: c.resolveType(n.Elem, visited)}
	case *ir.ResultT:
		return &ir.ResultT{Ok: c.resolveType(n.Ok, visited), Err: c.resolveType(n.Err, visited)}
	case *ir.PiiT:
		return &ir.PiiT{Base: c.resolveType(n.Base, visited), Level: n.Level}
	default:
		return t
	}
}

// mark returns a copy of visited with name set, so sibling branches of one
// resolution never see each other's path.
func mark(visited map[string]bool, name string) map[string]bool {
	next := make(map[string]bool, len(visited)+1)
	for k := range visited {
		next[k] = true
	}
	next[name] = true
	return next
}

// funcCtx carries one function body's check state: its scope chain, the
// effect actually observed, the capabilities actually exercised, and the
// async start/wait bookkeeping.
type funcCtx struct {
	checker *Checker
	fn      *ir.FuncDecl
	scope   *scope

	maxEffect string

	pendingStarts map[string]bool
	started       map[string]bool
	waited        map[string]bool

	inWorkflowStep      bool
	captureCapabilities *map[string]bool
}

func (c *Checker) checkFunc(fn *ir.FuncDecl) {
	fx := &funcCtx{
		checker:       c,
		fn:            fn,
		scope:         newScope(nil),
		maxEffect:     "pure",
		pendingStarts: collectStartNames(fn.Body),
		started:       make(map[string]bool),
		waited:        make(map[string]bool),
	}
	for _, p := range fn.Params {
		fx.scope.define(&Symbol{Name: p.Name, Type: p.Typ, Kind: SymbolParameter, Origin: fn.Sp})
	}
	fx.checkBlock(fn.Body)
	fx.finishAsync()
	fx.finishEffect()
}

func (fx *funcCtx) diag(code Code, cat Category, span ast.Span, format string, args ...any) {
	fx.checker.diags.add(code, cat, span, format, args...)
}

func (fx *funcCtx) checkBlock(b *ir.Block) {
	if b == nil {
		return
	}
	for _, s := range b.Statements {
		fx.checkStmt(s)
	}
}

func (fx *funcCtx) checkStmt(s ir.Stmt) {
	switch n := s.(type) {
	case *ir.Block:
		inner := fx.childScope()
		inner.checkBlock(n)
	case *ir.Let:
		t := fx.checkExpr(n.Value)
		declared := fx.checker.resolveNamed(n.Typ)
		if declared != nil && declared != ir.Unknown {
			fx.checkPiiAssign(declared, t, n.Sp)
		} else {
			declared = t
		}
		fx.scope.define(&Symbol{Name: n.Name, Type: declared, Kind: SymbolVariable, Mutable: true, Origin: n.Sp})
	case *ir.Set:
		t := fx.checkExpr(n.Value)
		existing, ok := fx.scope.lookup(n.Name)
		if !ok {
			fx.diag(CodeUndefinedVariable, CategoryScope, n.Sp, "assignment to undeclared variable %q", n.Name)
			return
		}
		fx.checkPiiAssign(existing.Type, t, n.Sp)
	case *ir.Return:
		t := fx.checker.resolveNamed(fx.checkExpr(n.Value))
		want := fx.checker.resolveNamed(fx.fn.Return)
		if _, generic := want.(*ir.TypeVar); !generic && !ir.Compatible(want, t) {
			fx.diag(CodeReturnTypeMismatch, CategoryType, n.Sp, "rule %q returns %s but declares %s", fx.fn.Name, t.String(), want.String())
		}
	case *ir.If:
		fx.checkExpr(n.Condition)
		fx.childScope().checkBlock(n.Then)
		if n.Else != nil {
			fx.childScope().checkBlock(n.Else)
		}
	case *ir.Match:
		fx.checkExpr(n.Value)
		for _, cs := range n.Cases {
			inner := fx.childScope()
			inner.bindPattern(cs.Pattern)
			inner.checkBlock(cs.Body)
		}
	case *ir.Start:
		if fx.started[n.Name] {
			fx.diag(CodeAsyncDuplicateStart, CategoryAsync, n.Sp, "%q was already started", n.Name)
		}
		fx.started[n.Name] = true
		fx.joinEffect("async")
		t := fx.checkExpr(n.Value)
		fx.scope.define(&Symbol{Name: n.Name, Type: t, Kind: SymbolVariable, Origin: n.Sp})
	case *ir.Wait:
		switch {
		case fx.waited[n.Name]:
			fx.diag(CodeAsyncDuplicateWait, CategoryAsync, n.Sp, "%q was already waited on", n.Name)
		case !fx.pendingStarts[n.Name]:
			fx.diag(CodeAsyncWaitNotStarted, CategoryAsync, n.Sp, "%q was never started in this rule", n.Name)
		case !fx.started[n.Name]:
			fx.diag(CodeAsyncWaitBeforeStart, CategoryAsync, n.Sp, "%q is waited on before its Start", n.Name)
		}
		fx.waited[n.Name] = true
	case *ir.ExprStmt:
		fx.checkExpr(n.Value)
	case *ir.Workflow:
		fx.checkWorkflow(n)
	}
}

// childScope returns a funcCtx sharing every tracker except the scope
// chain, which gains one new nested level.
func (fx *funcCtx) childScope() *funcCtx {
	clone := *fx
	clone.scope = newScope(fx.scope)
	return &clone
}

func (fx *funcCtx) bindPattern(p ir.Pattern) {
	switch n := p.(type) {
	case *ir.PatName:
		fx.scope.define(&Symbol{Name: n.Name, Type: ir.Unknown, Kind: SymbolVariable, Origin: n.Origin()})
	case *ir.PatConstructor:
		for _, a := range n.Args {
			fx.bindPattern(a)
		}
	}
}

func collectStartNames(b *ir.Block) map[string]bool {
	names := make(map[string]bool)
	var walkBlock func(*ir.Block)
	var walkStmt func(ir.Stmt)
	walkStmt = func(s ir.Stmt) {
		switch n := s.(type) {
		case *ir.Block:
			walkBlock(n)
		case *ir.Start:
			names[n.Name] = true
		case *ir.If:
			walkBlock(n.Then)
			walkBlock(n.Else)
		case *ir.Match:
			for _, cs := range n.Cases {
				walkBlock(cs.Body)
			}
		case *ir.Workflow:
			for _, step := range n.Steps {
				walkBlock(step.Body)
				walkBlock(step.Compensate)
			}
		}
	}
	walkBlock = func(blk *ir.Block) {
		if blk == nil {
			return
		}
		for _, s := range blk.Statements {
			walkStmt(s)
		}
	}
	walkBlock(b)
	return names
}

func (fx *funcCtx) finishAsync() {
	for name := range fx.started {
		if !fx.waited[name] {
			fx.diag(CodeAsyncStartNotWaited, CategoryAsync, fx.fn.Sp, "%q was started but never waited on", name)
		}
	}
}
