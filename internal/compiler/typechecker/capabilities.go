package typechecker

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/ir"
)

// Manifest is the capability allow-list a compiled module is checked
// against, loaded from the driver's manifest file. A capability a rule
// declares that the manifest does not grant is still flagged at the
// call site the same way an undeclared one is: capability enforcement is
// "declare AND be granted."
type Manifest struct {
	Allowed map[string]bool
}

func (m *Manifest) permits(capability string) bool {
	if m == nil {
		return true
	}
	return m.Allowed[capability]
}

// recordCapability is called from a stdlib io/async call site. Outside a
// workflow step it raises CAPABILITY_NOT_ALLOWED for anything the rule
// didn't declare (or the manifest doesn't grant); inside a workflow step
// it raises WORKFLOW_UNDECLARED_CAPABILITY instead and records the
// capability into the step's usage set for the compensate-block check.
func (fx *funcCtx) recordCapability(namespace string, call *ir.Call) {
	declared := contains(fx.fn.Capabilities, namespace)
	granted := fx.checker.manifest.permits(namespace)

	if fx.inWorkflowStep {
		if fx.captureCapabilities != nil {
			(*fx.captureCapabilities)[namespace] = true
		}
		if !declared || !granted {
			fx.diag(CodeWorkflowUndeclaredCap, CategoryCapability, call.Sp,
				"workflow step uses capability %q that the rule does not declare", namespace)
		}
		return
	}
	if !declared || !granted {
		fx.diag(CodeCapabilityNotAllowed, CategoryCapability, call.Sp,
			"capability %q is not declared (or not granted) for this rule", namespace)
	}
}

// checkWorkflow checks every step's body with workflow capability rules
// in effect, then checks each step's Compensate block for a capability it
// didn't already exercise in the main body.
func (fx *funcCtx) checkWorkflow(n *ir.Workflow) {
	for _, step := range n.Steps {
		used := make(map[string]bool)
		body := fx.childScope()
		body.inWorkflowStep = true
		body.captureCapabilities = &used
		body.checkBlock(step.Body)

		if step.Compensate != nil {
			compUsed := make(map[string]bool)
			comp := fx.childScope()
			comp.inWorkflowStep = true
			comp.captureCapabilities = &compUsed
			comp.checkBlock(step.Compensate)

			for ns := range compUsed {
				if !used[ns] {
					fx.diag(CodeCompensateNewCapability, CategoryCapability, step.Compensate.Sp,
						"compensate for step %q introduces capability %q not used in the step body", step.Name, ns)
				}
			}
		}
	}
}

// checkPiiAssign compares a PII-sensitive value against the slot it's
// being stored into: storing a higher-ranked value where a lower rank
// was declared silently loses the difference (PII_ASSIGN_DOWNGRADE), and
// storing one into a slot with no declared level at all silently grows
// the set of untracked sensitive data (PII_IMPLICIT_UPLEVEL).
func (fx *funcCtx) checkPiiAssign(declared, value ir.Type, span ast.Span) {
	if !fx.checker.enforcePII {
		return
	}
	declPii, declIsPii := declared.(*ir.PiiT)
	valPii, valIsPii := value.(*ir.PiiT)

	switch {
	case declIsPii && valIsPii:
		if ir.PiiRank(valPii.Level) > ir.PiiRank(declPii.Level) {
			fx.diag(CodePiiAssignDowngrade, CategoryPII, span,
				"assigning %s data into a %s-declared slot downgrades its sensitivity", valPii.Level, declPii.Level)
		}
	case !declIsPii && valIsPii:
		fx.diag(CodePiiImplicitUplevel, CategoryPII, span,
			"sensitive %s value assigned without a declared sensitivity level", valPii.Level)
	}
}
