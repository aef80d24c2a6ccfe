package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aster-lang/aster/internal/cli/ui"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/registry"
)

var exportOutputDir string

func init() {
	exportCmd.Flags().StringVar(&exportOutputDir, "output", ".", "Directory to write the export files into")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a deterministic JSON export of the registered lexicons and vocabularies",
	Long: `Export produces lexicon.json and vocabulary.json documents, each with a
SHA-256 checksum over its payload. Re-running export against unchanged
registries reproduces identical payloads and checksums; only the
generatedAt timestamp changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lexReg := registry.NewLexiconRegistry(nil)
		for _, lex := range lexicon.Builtins() {
			if err := lexReg.Register(lex); err != nil {
				return err
			}
		}
		vocabReg := registry.NewVocabularyRegistry(nil)

		now := time.Now()

		lexExport, err := lexReg.Export(now)
		if err != nil {
			fmt.Fprint(os.Stderr, ui.ExportError(err.Error(), "No lexicon export was written.", nil, !shouldColor()))
			return err
		}
		vocabExport, err := vocabReg.Export(now)
		if err != nil {
			fmt.Fprint(os.Stderr, ui.ExportError(err.Error(), "No vocabulary export was written.", nil, !shouldColor()))
			return err
		}

		if err := writeJSON(filepath.Join(exportOutputDir, "lexicon.json"), lexExport); err != nil {
			fmt.Fprint(os.Stderr, ui.ExportError(err.Error(), "The export directory may hold a stale lexicon.json.", nil, !shouldColor()))
			return err
		}
		if err := writeJSON(filepath.Join(exportOutputDir, "vocabulary.json"), vocabExport); err != nil {
			fmt.Fprint(os.Stderr, ui.ExportError(err.Error(), "The export directory may hold a stale vocabulary.json.", nil, !shouldColor()))
			return err
		}

		ui.WriteSuccess(os.Stdout, fmt.Sprintf("Exported %d lexicon(s) and %d vocabulary(ies) to %s", len(lexExport.Lexicons), len(vocabExport.Vocabularies), exportOutputDir), !shouldColor())
		fmt.Printf("  lexicon.json checksum:    %s\n", lexExport.Checksum)
		fmt.Printf("  vocabulary.json checksum: %s\n", vocabExport.Checksum)
		return nil
	},
}

func writeJSON(path string, doc any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
