package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aster-lang/aster/internal/cli/config"
	"github.com/aster-lang/aster/internal/cli/ui"
	"github.com/aster-lang/aster/internal/compiler/effectconfig"
	"github.com/aster-lang/aster/internal/compiler/errors"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/pipeline"
	"github.com/aster-lang/aster/internal/compiler/registry"
	"github.com/aster-lang/aster/internal/logging"
	"github.com/aster-lang/aster/internal/utils"
)

var (
	compileLocale  string
	compileJSON    bool
	compileVerbose bool
)

func init() {
	compileCmd.Flags().StringVar(&compileLocale, "locale", "", "Source locale (defaults to the project's compiler.default_locale)")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "Output diagnostics in JSON format")
	compileCmd.Flags().BoolVar(&compileVerbose, "verbose", false, "Log stage-by-stage pipeline progress")
}

// fileResult pairs a source path with the diagnostics produced for it, so
// compiling a directory can report per-file results in both text and JSON form.
type fileResult struct {
	Path        string           `json:"path"`
	Diagnostics errors.ErrorList `json:"diagnostics"`
}

var compileCmd = &cobra.Command{
	Use:   "compile <file|dir>",
	Short: "Type check rule files and report diagnostics",
	Long:  "Run .aster source files through the canonicalizer, lexer, parser, IR lowerer, and type checker. Given a directory, every .aster file beneath it is compiled.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		paths := []string{target}
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			found, err := utils.FindAsterFiles(target)
			if err != nil {
				return fmt.Errorf("failed to scan %s: %w", target, err)
			}
			paths = found
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		locale := compileLocale
		if locale == "" {
			locale = cfg.Compiler.DefaultLocale
		}

		lexReg := registry.NewLexiconRegistry(nil)
		for _, lex := range lexicon.Builtins() {
			if err := lexReg.Register(lex); err != nil {
				return fmt.Errorf("failed to register built-in lexicons: %w", err)
			}
		}
		sourceLex, ok := lexReg.Get(locale)
		if !ok {
			suggestions := ui.FindSimilar(locale, lexReg.List(), nil)
			fmt.Fprint(os.Stderr, ui.LexiconNotFoundError(locale, suggestions, !shouldColor()))
			return fmt.Errorf("unknown locale %q", locale)
		}
		englishLex, _ := lexReg.Get("en")

		logger := zap.NewNop()
		if compileVerbose {
			logger = logging.New()
		}

		index, err := loadVocabularyIndex(cfg, locale)
		if err != nil {
			return err
		}

		manifest := effectconfig.LoadManifest()
		effects := effectconfig.Load()

		format := cfg.Diagnostics.Format
		if compileJSON {
			format = "json"
		}

		var bar *ui.ProgressBar
		if len(paths) > 1 && format != "json" {
			bar = ui.NewProgressBar(os.Stdout, ui.ProgressBarOptions{
				Total:   len(paths),
				Message: fmt.Sprintf("compiling %d files", len(paths)),
				NoColor: !shouldColor(),
			})
		}

		results := make([]fileResult, 0, len(paths))
		failed := 0
		for _, path := range paths {
			source, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			result := pipeline.Compile(string(source), pipeline.Options{
				Lexicon:    sourceLex,
				English:    englishLex,
				Index:      index,
				Manifest:   manifest,
				Effects:    effects.PatternSet(),
				EnforcePII: effectconfig.EnforcePII(),
				Sinks:      effects.SinkSet(),
				Logger:     logger,
			})

			if result.Diagnostics.HasErrors() {
				failed++
			}
			results = append(results, fileResult{Path: path, Diagnostics: result.Diagnostics})

			if bar != nil {
				bar.Add(1)
			}

			if format != "json" {
				if result.Diagnostics.HasErrors() || result.Diagnostics.HasWarnings() {
					outputDiagnosticsTerminal(path, result.Diagnostics)
				}
				if !result.Diagnostics.HasErrors() {
					ui.WriteSuccess(os.Stdout, fmt.Sprintf("%s compiled cleanly", path), !shouldColor())
				}
			}
		}

		if bar != nil {
			bar.Finish()
		}

		if format == "json" {
			outputDiagnosticsJSON(results)
		}

		if failed > 0 {
			return fmt.Errorf("compilation failed for %d of %d file(s)", failed, len(paths))
		}
		return nil
	},
}

// loadVocabularyIndex builds the identifier-translation index from the
// project's rules/vocabularies/*.json files, merged in the order the
// config's default_vocabularies lists them. No configured vocabularies
// (or no project vocabulary directory) means no identifier translation.
func loadVocabularyIndex(cfg *config.Config, locale string) (*lexicon.IdentifierIndex, error) {
	if len(cfg.Compiler.DefaultVocabularies) == 0 {
		return nil, nil
	}

	vocabReg := registry.NewVocabularyRegistry(nil)
	entries, err := os.ReadDir(filepath.Join("rules", "vocabularies"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan rules/vocabularies: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join("rules", "vocabularies", entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		var doc registry.VocabularyDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := vocabReg.Register(registry.FromDoc(doc)); err != nil {
			return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
		}
	}

	merged, err := vocabReg.Merge("", locale, cfg.Compiler.DefaultVocabularies...)
	if err != nil {
		return nil, err
	}
	return lexicon.BuildIndex(merged), nil
}

func outputDiagnosticsJSON(results []fileResult) {
	success := true
	for _, r := range results {
		if r.Diagnostics.HasErrors() {
			success = false
			break
		}
	}
	output := struct {
		Success bool         `json:"success"`
		Files   []fileResult `json:"files"`
	}{
		Success: success,
		Files:   results,
	}
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}

func outputDiagnosticsTerminal(path string, diags errors.ErrorList) {
	fmt.Fprintf(os.Stderr, "\n%s: %d diagnostic(s)\n\n", path, len(diags))
	for i, d := range diags {
		fmt.Fprint(os.Stderr, d.Format())
		if i < len(diags)-1 {
			fmt.Fprintln(os.Stderr, strings.Repeat("-", 60))
		}
	}
	fmt.Fprintln(os.Stderr)
}

func shouldColor() bool {
	return os.Getenv("NO_COLOR") == ""
}
