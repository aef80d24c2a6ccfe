package effectconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aster-lang/aster/internal/compiler/effectconfig"
)

func TestLoad_FallsBackToDefaultsWhenUnset(t *testing.T) {
	os.Unsetenv("ASTER_EFFECT_CONFIG")
	cfg := effectconfig.Load()
	assert.True(t, cfg.MatchesIO("Http"))
	assert.True(t, cfg.MatchesIO("Sql"))
	assert.False(t, cfg.MatchesIO("Text"))
	assert.Contains(t, cfg.SinkSet(), "Log.write")
}

func TestLoad_FallsBackOnMissingFile(t *testing.T) {
	t.Setenv("ASTER_EFFECT_CONFIG", filepath.Join(t.TempDir(), "does-not-exist.json"))
	cfg := effectconfig.Load()
	assert.True(t, cfg.MatchesIO("Http"))
}

func TestLoad_FallsBackOnMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effect.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	t.Setenv("ASTER_EFFECT_CONFIG", path)
	cfg := effectconfig.Load()
	assert.True(t, cfg.MatchesIO("Http"))
}

func TestLoad_OverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "effect.json")
	body := `{"patterns":{"io":["Blob"],"cpu":["Vector"],"ai":["Llm"]},"sinks":["Audit.record"]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("ASTER_EFFECT_CONFIG", path)

	cfg := effectconfig.Load()
	assert.True(t, cfg.MatchesIO("Blob"))
	assert.False(t, cfg.MatchesIO("Http"))
	assert.True(t, cfg.MatchesCPU("Vector"))
	assert.True(t, cfg.MatchesAI("Llm"))
	assert.Contains(t, cfg.SinkSet(), "Audit.record")
}

func TestLoadManifest_NilWhenUnset(t *testing.T) {
	os.Unsetenv("ASTER_MANIFEST_PATH")
	assert.Nil(t, effectconfig.LoadManifest())
}

func TestLoadManifest_NilOnMissingFile(t *testing.T) {
	t.Setenv("ASTER_MANIFEST_PATH", filepath.Join(t.TempDir(), "does-not-exist.json"))
	assert.Nil(t, effectconfig.LoadManifest())
}

func TestLoadManifest_ParsesAllowedList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"allowed":["Http","Sql"],"denied":["Files"]}`), 0o644))
	t.Setenv("ASTER_MANIFEST_PATH", path)

	mf := effectconfig.LoadManifest()
	require.NotNil(t, mf)
	assert.True(t, mf.Allowed["Http"])
	assert.True(t, mf.Allowed["Sql"])
	assert.False(t, mf.Allowed["Files"])
}

func TestEnforcePII_DefaultsOff(t *testing.T) {
	os.Unsetenv("ENFORCE_PII")
	os.Unsetenv("ASTER_ENFORCE_PII")
	assert.False(t, effectconfig.EnforcePII())
}

func TestEnforcePII_EnabledByFlag(t *testing.T) {
	os.Unsetenv("ASTER_ENFORCE_PII")
	t.Setenv("ENFORCE_PII", "true")
	assert.True(t, effectconfig.EnforcePII())
}

func TestEnforcePII_RespectsEnforcePiiFalse(t *testing.T) {
	os.Unsetenv("ASTER_ENFORCE_PII")
	t.Setenv("ENFORCE_PII", "false")
	assert.False(t, effectconfig.EnforcePII())
}

func TestEnforcePII_AsterPrefixTakesPrecedence(t *testing.T) {
	t.Setenv("ENFORCE_PII", "true")
	t.Setenv("ASTER_ENFORCE_PII", "false")
	assert.False(t, effectconfig.EnforcePII())
}
