package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aster-lang/aster/internal/cli/ui"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/registry"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

var introspectCmd = &cobra.Command{
	Use:   "introspect",
	Short: "Inspect the compiler's registered kinds, lexicons, and vocabularies",
}

var introspectNoColor bool

func init() {
	introspectCmd.PersistentFlags().BoolVar(&introspectNoColor, "no-color", false, "Disable colored output")
	introspectCmd.AddCommand(listKindsCmd)
	introspectCmd.AddCommand(listLexiconsCmd)
	introspectCmd.AddCommand(listVocabulariesCmd)
}

var listKindsCmd = &cobra.Command{
	Use:   "list-kinds",
	Short: "List every semantic token kind, grouped by category",
	Run: func(cmd *cobra.Command, args []string) {
		categories := tokenkind.Categories()
		names := make([]string, 0, len(categories))
		for c := range categories {
			names = append(names, string(c))
		}
		sort.Strings(names)

		for _, name := range names {
			section := ui.NewSection(os.Stdout, name, introspectNoColor)
			kinds := categories[tokenkind.Category(name)]
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
			for _, k := range kinds {
				section.AddLine(string(k))
			}
			section.Render()
		}
	},
}

var listLexiconsCmd = &cobra.Command{
	Use:   "list-lexicons",
	Short: "List every registered lexicon with its completeness status",
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.NewLexiconRegistry(nil)
		for _, lex := range lexicon.Builtins() {
			if err := reg.Register(lex); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return
			}
		}

		table := ui.NewTable(os.Stdout, []string{"ID", "NAME", "DIRECTION", "WARNINGS"}, &ui.TableOptions{NoColor: introspectNoColor})
		for _, id := range reg.List() {
			lex, _ := reg.Get(id)
			warnings := lex.CompletenessWarnings()
			table.AddRow(lex.ID, lex.Name, string(lex.Direction), fmt.Sprintf("%d", len(warnings)))
		}
		table.Render()
	},
}

var listVocabulariesCmd = &cobra.Command{
	Use:   "list-vocabularies",
	Short: "List every registered domain vocabulary",
	Run: func(cmd *cobra.Command, args []string) {
		reg := registry.NewVocabularyRegistry(nil)
		ids := reg.List()
		if len(ids) == 0 {
			ui.WriteError(os.Stdout, ui.ErrorOptions{
				Level:   ui.ErrorLevelInfo,
				Problem: "No domain vocabularies registered. Place vocabulary JSON files under rules/vocabularies and re-run.",
				NoColor: introspectNoColor,
			})
			return
		}
		list := ui.NewList(os.Stdout, ui.ListOptions{NoColor: introspectNoColor})
		for _, id := range ids {
			list.AddItem(id)
		}
		list.Render()
	},
}
