package typechecker

import "github.com/aster-lang/aster/internal/compiler/ast"

// effectRank orders the effect lattice pure ⊑ cpu ⊑ io ⊑ async.
var effectRank = map[string]int{
	"pure":  0,
	"cpu":   1,
	"io":    2,
	"async": 3,
}

func rankOf(tag string) int {
	if r, ok := effectRank[tag]; ok {
		return r
	}
	return 0
}

// EffectPatterns classifies a qualified call's effect by the namespace of
// its target: a call into an io-listed namespace is an io call even when
// the checker has no signature for it. The ai group is modelled as io
// (a model invocation leaves the process) but keeps its own list so a
// driver can configure it independently.
type EffectPatterns struct {
	IO  map[string]bool
	CPU map[string]bool
	AI  map[string]bool
}

func defaultEffectPatterns() *EffectPatterns {
	return &EffectPatterns{
		IO:  namespaceSet("Http", "Sql", "Files", "Secrets", "Time", "IO", "Log"),
		CPU: namespaceSet("Math"),
		AI:  namespaceSet("Ai"),
	}
}

func namespaceSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// classify returns the effect tag a namespace's calls carry, or "" when
// the namespace appears in no configured list.
func (p *EffectPatterns) classify(namespace string) string {
	switch {
	case p.IO[namespace] || p.AI[namespace]:
		return "io"
	case p.CPU[namespace]:
		return "cpu"
	default:
		return ""
	}
}

// joinEffect raises fx's observed effect to the lattice join of its
// current value and tag; the effect only ever climbs during one check.
func (fx *funcCtx) joinEffect(tag string) {
	if tag == "" {
		return
	}
	if rankOf(tag) > rankOf(fx.maxEffect) {
		fx.maxEffect = tag
	}
}

// finishEffect compares the effect actually observed in the body against
// the rule's declared effect. The missing direction distinguishes io from
// cpu; the redundant direction distinguishes a declaration above the body
// (redundant io / redundant cpu) from a header that lists cpu alongside
// io, where io already covers cpu and the finding is informational only.
func (fx *funcCtx) finishEffect() {
	declared := rankOf(string(fx.fn.DeclaredEffect))
	observed := rankOf(fx.maxEffect)

	switch {
	case observed > declared:
		if observed >= rankOf("io") {
			fx.diag(CodeEffCapMissing, CategoryEffect, fx.fn.Sp,
				"rule %q performs %s but does not declare it", fx.fn.Name, fx.maxEffect)
		} else {
			fx.diag(CodeEffCapMissing, CategoryEffect, fx.fn.Sp,
				"rule %q performs cpu-bound work but declares only %s", fx.fn.Name, fx.fn.DeclaredEffect)
		}
	case observed < declared:
		if declared >= rankOf("io") {
			fx.diag(CodeEffCapSuperfluous, CategoryEffect, fx.fn.Sp,
				"rule %q declares %s but its body never needs more than %s", fx.fn.Name, fx.fn.DeclaredEffect, effectName(observed))
		} else {
			fx.diag(CodeEffCapSuperfluous, CategoryEffect, fx.fn.Sp,
				"rule %q declares cpu but its body is %s", fx.fn.Name, effectName(observed))
		}
	}

	// A header listing cpu next to io (or async) is redundant regardless
	// of what the body does: io already covers cpu on the lattice.
	if hasTag(fx.fn.EffectTags, ast.EffectCPU) &&
		(hasTag(fx.fn.EffectTags, ast.EffectIO) || hasTag(fx.fn.EffectTags, ast.EffectAsync)) {
		fx.checker.diags.addWithSeverity(CodeEffCapSuperfluous, CategoryEffect, SeverityInfo, fx.fn.Sp,
			"rule %q lists cpu alongside io; io already covers cpu", fx.fn.Name)
	}
}

func hasTag(tags []ast.EffectTag, tag ast.EffectTag) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func effectName(rank int) string {
	for name, r := range effectRank {
		if r == rank {
			return name
		}
	}
	return "pure"
}
