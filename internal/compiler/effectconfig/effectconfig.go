// Package effectconfig loads the driver-supplied JSON inputs the type
// checker's effect and capability checks depend on: the effect-prefix
// table, the capability manifest, and the PII enforcement flag. None of
// it is part of the compiler core. A caller that never sets
// ASTER_EFFECT_CONFIG / ASTER_MANIFEST_PATH gets the built-in defaults.
package effectconfig

import (
	"encoding/json"
	"os"

	"github.com/aster-lang/aster/internal/compiler/typechecker"
)

// Patterns lists the qualified-name prefixes that classify an otherwise
// unmatched call's inferred effect.
type Patterns struct {
	IO  []string `json:"io"`
	CPU []string `json:"cpu"`
	AI  []string `json:"ai"`
}

// Config is the unmarshaled shape of an ASTER_EFFECT_CONFIG file:
// `{"patterns":{"io":[...],"cpu":[...],"ai":[...]},"sinks":[...]}`.
type Config struct {
	Patterns Patterns `json:"patterns"`
	Sinks    []string `json:"sinks"`
}

// defaultConfig is the built-in classification: the Http, Sql, Files,
// Secrets, Time, IO and Log namespaces are io; Math is cpu; the sink
// list names the logging and printing builtins (kept in sync with
// typechecker's stdlib table).
func defaultConfig() *Config {
	return &Config{
		Patterns: Patterns{
			IO:  []string{"Http", "Sql", "Files", "Secrets", "Time", "IO", "Log"},
			CPU: []string{"Math"},
			AI:  nil,
		},
		Sinks: []string{"IO.print", "Log.write", "Log.info", "Log.warn", "Log.error"},
	}
}

// Load reads ASTER_EFFECT_CONFIG if set. A missing file or a parse
// failure is a silent fallback to defaultConfig; effect-config errors
// never abort compilation.
func Load() *Config {
	path := os.Getenv("ASTER_EFFECT_CONFIG")
	if path == "" {
		return defaultConfig()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig()
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return defaultConfig()
	}
	return &cfg
}

// MatchesIO reports whether namespace is classified as an io-effect call
// by this config's prefix list. Matching is case-sensitive on the whole
// namespace: the lowered IR already carries namespaces as single
// identifiers, not dotted paths, so prefix matching reduces to a
// membership test.
func (c *Config) MatchesIO(namespace string) bool  { return contains(c.Patterns.IO, namespace) }
func (c *Config) MatchesCPU(namespace string) bool { return contains(c.Patterns.CPU, namespace) }
func (c *Config) MatchesAI(namespace string) bool  { return contains(c.Patterns.AI, namespace) }

// PatternSet returns the configured prefix lists as the table shape
// typechecker.Checker.SetEffectPatterns expects.
func (c *Config) PatternSet() *typechecker.EffectPatterns {
	toSet := func(list []string) map[string]bool {
		set := make(map[string]bool, len(list))
		for _, s := range list {
			set[s] = true
		}
		return set
	}
	return &typechecker.EffectPatterns{
		IO:  toSet(c.Patterns.IO),
		CPU: toSet(c.Patterns.CPU),
		AI:  toSet(c.Patterns.AI),
	}
}

// SinkSet returns the configured sink list as the set shape
// typechecker.Checker.SetSinks expects.
func (c *Config) SinkSet() map[string]bool {
	set := make(map[string]bool, len(c.Sinks))
	for _, s := range c.Sinks {
		set[s] = true
	}
	return set
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// manifestFile is the unmarshaled shape of an ASTER_MANIFEST_PATH file:
// `{"allowed":[...],"denied":[...]}`. denied is accepted for forward
// compatibility with a future explicit-deny mode but is not consulted,
// since the checker's allow-list semantics already treat "absent" as
// denied.
type manifestFile struct {
	Allowed []string `json:"allowed"`
	Denied  []string `json:"denied"`
}

// LoadManifest reads ASTER_MANIFEST_PATH into a typechecker.Manifest,
// loaded once per checker instance. A nil return (unset path, missing
// file, or parse failure) means "allow everything a rule declares for
// itself"; typechecker.Manifest already treats a nil receiver that way.
func LoadManifest() *typechecker.Manifest {
	path := os.Getenv("ASTER_MANIFEST_PATH")
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var mf manifestFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil
	}
	allowed := make(map[string]bool, len(mf.Allowed))
	for _, cap := range mf.Allowed {
		allowed[cap] = true
	}
	return &typechecker.Manifest{Allowed: allowed}
}

// EnforcePII reports whether the PII checker should run: either
// ENFORCE_PII or ASTER_ENFORCE_PII set to "true" enables it, with the
// ASTER_ form taking precedence when both are set. Unset means disabled;
// PII flow checking is opt-in.
func EnforcePII() bool {
	if v, ok := os.LookupEnv("ASTER_ENFORCE_PII"); ok {
		return v == "true"
	}
	return os.Getenv("ENFORCE_PII") == "true"
}
