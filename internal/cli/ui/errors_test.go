package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestFormatError(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     ErrorOptions
		contains []string
	}{
		{
			name: "basic error",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "LEXICON NOT FOUND",
				Problem: "Cannot find lexicon 'fr'.",
			},
			contains: []string{
				"❌",
				"LEXICON NOT FOUND",
				"Cannot find lexicon 'fr'.",
			},
		},
		{
			name: "error with suggestions",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "LEXICON NOT FOUND",
				Problem:     "Cannot find lexicon 'de-ch'.",
				Suggestions: []string{"de", "en"},
			},
			contains: []string{
				"Did you mean: de, en?",
			},
		},
		{
			name: "error with help commands",
			opts: ErrorOptions{
				Level:   ErrorLevelError,
				Context: "COMPILE FAILED",
				Problem: "Syntax error in file",
				HelpCommands: []string{
					"Check syntax: aster compile --check",
					"Get help: aster compile --help",
				},
			},
			contains: []string{
				"→ Check syntax: aster compile --check",
				"→ Get help: aster compile --help",
			},
		},
		{
			name: "warning message",
			opts: ErrorOptions{
				Level:   ErrorLevelWarning,
				Problem: "Deprecated keyword used",
			},
			contains: []string{
				"⚠️",
				"Deprecated keyword used",
			},
		},
		{
			name: "info message",
			opts: ErrorOptions{
				Level:   ErrorLevelInfo,
				Problem: "Export completed successfully",
			},
			contains: []string{
				"ℹ️",
				"Export completed successfully",
			},
		},
		{
			name: "error with consequence",
			opts: ErrorOptions{
				Level:       ErrorLevelError,
				Context:     "EXPORT FAILED",
				Problem:     "Checksum write failed",
				Consequence: "The export file may be incomplete",
			},
			contains: []string{
				"Checksum write failed",
				"The export file may be incomplete",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatError(tt.opts)

			for _, expected := range tt.contains {
				if !strings.Contains(result, expected) {
					t.Errorf("FormatError() output missing expected string:\nExpected to contain: %q\nGot: %q", expected, result)
				}
			}
		})
	}
}

func TestLexiconNotFoundError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := LexiconNotFoundError("fr", []string{"en", "de"}, true)

	expected := []string{
		"LEXICON NOT FOUND",
		"Cannot find lexicon 'fr'.",
		"Did you mean: en, de?",
		"See all lexicons: aster introspect list-lexicons",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("LexiconNotFoundError() missing expected string: %q", exp)
		}
	}
}

func TestVocabularyNotFoundError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := VocabularyNotFoundError("billing-v2", []string{"billing", "shipping"}, true)

	expected := []string{
		"VOCABULARY NOT FOUND",
		"Cannot find vocabulary 'billing-v2'.",
		"Did you mean: billing, shipping?",
		"See all vocabularies: aster introspect list-vocabularies",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("VocabularyNotFoundError() missing expected string: %q", exp)
		}
	}
}

func TestCompileError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := CompileError("Syntax error on line 42", []string{"Check indentation", "Verify colons"}, true)

	expected := []string{
		"COMPILE FAILED",
		"Syntax error on line 42",
		"Did you mean: Check indentation, Verify colons?",
		"Get help: aster compile --help",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("CompileError() missing expected string: %q", exp)
		}
	}
}

func TestExportError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ExportError(
		"Failed to write checksum file",
		"The export directory may hold a stale JSON file",
		[]string{"Check disk space"},
		true,
	)

	expected := []string{
		"EXPORT FAILED",
		"Failed to write checksum file",
		"The export directory may hold a stale JSON file",
		"Get help: aster export --help",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ExportError() missing expected string: %q", exp)
		}
	}
}

func TestWriteError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "TEST ERROR",
		Problem: "This is a test",
	}

	WriteError(&buf, opts)

	output := buf.String()
	if !strings.Contains(output, "TEST ERROR") {
		t.Errorf("WriteError() did not write to buffer correctly")
	}
}

func TestFormatSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := FormatSuccess("Build completed", true)

	if !strings.Contains(result, "✓") {
		t.Errorf("FormatSuccess() missing checkmark")
	}
	if !strings.Contains(result, "Build completed") {
		t.Errorf("FormatSuccess() missing message")
	}
}

func TestWriteSuccess(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	WriteSuccess(&buf, "Test success", true)

	output := buf.String()
	if !strings.Contains(output, "✓") {
		t.Errorf("WriteSuccess() missing checkmark")
	}
	if !strings.Contains(output, "Test success") {
		t.Errorf("WriteSuccess() missing message")
	}
}

func TestWarning(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Warning("Deprecated feature", []string{"Use new API"}, true)

	expected := []string{
		"⚠️",
		"Deprecated feature",
		"Did you mean: Use new API?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Warning() missing expected string: %q", exp)
		}
	}
}

func TestInfo(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := Info("Process starting", true)

	expected := []string{
		"ℹ️",
		"Process starting",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("Info() missing expected string: %q", exp)
		}
	}
}

func TestConfigError(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	result := ConfigError("Invalid YAML syntax", []string{"Check indentation"}, true)

	expected := []string{
		"CONFIGURATION ERROR",
		"Invalid YAML syntax",
		"Did you mean: Check indentation?",
	}

	for _, exp := range expected {
		if !strings.Contains(result, exp) {
			t.Errorf("ConfigError() missing expected string: %q", exp)
		}
	}
}
