package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config to be non-nil")
	}
	if cfg.Compiler.DefaultLocale != "en" {
		t.Errorf("expected default locale 'en', got %s", cfg.Compiler.DefaultLocale)
	}
	if cfg.Diagnostics.Format != "text" {
		t.Errorf("expected default diagnostics format 'text', got %s", cfg.Diagnostics.Format)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	configContent := `
project_name: checkout-rules
compiler:
  default_locale: de
  default_vocabularies:
    - billing
    - shipping
diagnostics:
  format: json
`
	os.WriteFile("aster.yml", []byte(configContent), 0644)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}
	if cfg.ProjectName != "checkout-rules" {
		t.Errorf("expected project name 'checkout-rules', got %s", cfg.ProjectName)
	}
	if cfg.Compiler.DefaultLocale != "de" {
		t.Errorf("expected default locale 'de', got %s", cfg.Compiler.DefaultLocale)
	}
	if len(cfg.Compiler.DefaultVocabularies) != 2 {
		t.Errorf("expected 2 default vocabularies, got %d", len(cfg.Compiler.DefaultVocabularies))
	}
	if cfg.Diagnostics.Format != "json" {
		t.Errorf("expected diagnostics format 'json', got %s", cfg.Diagnostics.Format)
	}
}

func TestLoad_RejectsUnknownDiagnosticsFormat(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	os.WriteFile("aster.yml", []byte("diagnostics:\n  format: xml\n"), 0644)

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for an unsupported diagnostics format")
	}
}

func TestInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	if InProject() {
		t.Error("expected InProject to return false in a bare directory")
	}

	os.WriteFile("aster.yml", []byte(""), 0644)
	if !InProject() {
		t.Error("expected InProject to return true once aster.yml exists")
	}
}

func TestGetProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)

	os.WriteFile(filepath.Join(tmpDir, "aster.yml"), []byte(""), 0644)

	subDir := filepath.Join(tmpDir, "src", "deep", "nested")
	os.MkdirAll(subDir, 0755)
	os.Chdir(subDir)

	root, err := GetProjectRoot()
	if err != nil {
		t.Fatalf("expected to find project root, got error: %v", err)
	}

	resolvedRoot, _ := filepath.EvalSymlinks(root)
	resolvedTmpDir, _ := filepath.EvalSymlinks(tmpDir)
	if resolvedRoot != resolvedTmpDir {
		t.Errorf("expected project root to be %s, got %s", resolvedTmpDir, resolvedRoot)
	}
}

func TestGetProjectRootNotInProject(t *testing.T) {
	tmpDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tmpDir)
	defer os.Chdir(oldWd)

	_, err := GetProjectRoot()
	if err == nil {
		t.Error("expected an error when not in an Aster project")
	}
}
