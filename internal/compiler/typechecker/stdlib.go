package typechecker

import "github.com/aster-lang/aster/internal/compiler/ir"

// opSignature is one accepted (operand types -> result type) overload of a
// built-in operator call produced by lowering a BinaryExpr/LogicalExpr.
type opSignature struct {
	left, right ir.Type
	result      ir.Type
}

func numericOpSignatures(result ir.Type) []opSignature {
	return []opSignature{
		{ir.Int, ir.Int, result},
		{ir.Long, ir.Long, result},
		{ir.Float, ir.Float, result},
		{ir.Double, ir.Double, result},
	}
}

func comparisonSignatures() []opSignature {
	sigs := numericOpSignatures(ir.Bool)
	return append(sigs,
		opSignature{ir.Text, ir.Text, ir.Bool},
		opSignature{ir.DateTime, ir.DateTime, ir.Bool},
		opSignature{ir.Bool, ir.Bool, ir.Bool},
	)
}

// builtins maps every operator symbol the lowerer can produce to its
// accepted overloads. "+" additionally accepts Text+Text as concatenation.
var builtins = map[string][]opSignature{
	"+": append(numericOpSignatures(nil), opSignature{ir.Text, ir.Text, ir.Text}),
	"-": numericOpSignatures(nil),
	"*": numericOpSignatures(nil),
	"/": numericOpSignatures(nil),

	"<":  comparisonSignatures(),
	">":  comparisonSignatures(),
	"<=": comparisonSignatures(),
	">=": comparisonSignatures(),
	"==": comparisonSignatures(),
	"!=": comparisonSignatures(),

	"and": {{ir.Bool, ir.Bool, ir.Bool}},
	"or":  {{ir.Bool, ir.Bool, ir.Bool}},
}

// resolveOp finds the overload matching left/right, returning its result
// type and true, or false when no overload matches. A nil overload result
// (the arithmetic family) means the result mirrors the operand type.
func resolveOp(name string, left, right ir.Type) (ir.Type, bool) {
	for _, sig := range builtins[name] {
		if sig.left.Equals(left) && sig.right.Equals(right) {
			if sig.result == nil {
				return left, true
			}
			return sig.result, true
		}
	}
	return nil, false
}

// unaryBuiltins covers the single-operand call forms the lowerer produces
// for `not` and prefix `-` ("negate"). A nil result mirrors the operand.
var unaryBuiltins = map[string]struct {
	operand, result ir.Type
}{
	"not":    {ir.Bool, ir.Bool},
	"negate": {ir.Int, nil},
}

// FunctionParam and Function describe a namespaced standard-library entry
// point (`String.trim`, `Http.get`, …) available to rule bodies without an
// explicit import.
type FunctionParam struct {
	Name string
	Type ir.Type
}

type Function struct {
	Namespace  string
	Name       string
	Parameters []FunctionParam
	ReturnType ir.Type
	Effect     string // "" (pure), "cpu", "io" or "async"
}

func (f *Function) FullName() string {
	if f.Namespace == "" {
		return f.Name
	}
	return f.Namespace + "." + f.Name
}

// stdlib is a small, representative set of namespaced built-ins: enough to
// exercise the capability/effect/PII checkers without claiming to be a
// complete standard library.
var stdlib = map[string]map[string]*Function{
	"Text": {
		"trim":  {Namespace: "Text", Name: "trim", Parameters: []FunctionParam{{"self", ir.Text}}, ReturnType: ir.Text},
		"upper": {Namespace: "Text", Name: "upper", Parameters: []FunctionParam{{"self", ir.Text}}, ReturnType: ir.Text},
		"lower": {Namespace: "Text", Name: "lower", Parameters: []FunctionParam{{"self", ir.Text}}, ReturnType: ir.Text},
	},
	"Math": {
		"round": {Namespace: "Math", Name: "round", Parameters: []FunctionParam{{"value", ir.Double}}, ReturnType: ir.Int, Effect: "cpu"},
		"abs":   {Namespace: "Math", Name: "abs", Parameters: []FunctionParam{{"value", ir.Int}}, ReturnType: ir.Int, Effect: "cpu"},
	},
	"Http": {
		"get":  {Namespace: "Http", Name: "get", Parameters: []FunctionParam{{"url", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
		"post": {Namespace: "Http", Name: "post", Parameters: []FunctionParam{{"url", ir.Text}, {"body", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
	},
	"Sql": {
		"query": {Namespace: "Sql", Name: "query", Parameters: []FunctionParam{{"statement", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
	},
	"Log": {
		// The PII sinks: writing a sensitive value here without sanitizing
		// it first is exactly what PII_SINK_UNSANITIZED exists to catch.
		"write": {Namespace: "Log", Name: "write", Parameters: []FunctionParam{{"message", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
		"info":  {Namespace: "Log", Name: "info", Parameters: []FunctionParam{{"message", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
		"warn":  {Namespace: "Log", Name: "warn", Parameters: []FunctionParam{{"message", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
		"error": {Namespace: "Log", Name: "error", Parameters: []FunctionParam{{"message", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
	},
	"IO": {
		"print": {Namespace: "IO", Name: "print", Parameters: []FunctionParam{{"message", ir.Text}}, ReturnType: ir.Text, Effect: "io"},
	},
	"Time": {
		"now": {Namespace: "Time", Name: "now", ReturnType: ir.DateTime, Effect: "io"},
	},
}

// lookupStdlib resolves a "Namespace.Name" or bare "Name" reference.
func lookupStdlib(qualified string) *Function {
	for ns, fns := range stdlib {
		if fn, ok := fns[qualified]; ok && ns == "" {
			return fn
		}
	}
	parts := splitQualified(qualified)
	if len(parts) != 2 {
		return nil
	}
	ns, ok := stdlib[parts[0]]
	if !ok {
		return nil
	}
	return ns[parts[1]]
}

func splitQualified(name string) []string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return []string{name[:i], name[i+1:]}
		}
	}
	return []string{name}
}

// sinkFunctions names stdlib entry points that are PII sinks: passing an
// unsanitized sensitive value as an argument to one of these trips
// PII_SINK_UNSANITIZED.
var sinkFunctions = map[string]bool{
	"IO.print":  true,
	"Log.write": true,
	"Log.info":  true,
	"Log.warn":  true,
	"Log.error": true,
}
