package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/aster-lang/aster/internal/cli/ui"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	utilstrings "github.com/aster-lang/aster/internal/util/strings"
)

//go:embed templates/*
var templatesFS embed.FS

var newCmdLocale string

func init() {
	newCmd.Flags().StringVar(&newCmdLocale, "locale", "", "Default source locale (skips the interactive picker when set)")
}

var newCmd = &cobra.Command{
	Use:   "new [project-name]",
	Short: "Create a new Aster project",
	Long:  "Create a new Aster project with a rules/ directory, sample rule, and aster.yml config",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var projectName string
		if len(args) == 1 {
			projectName = args[0]
		} else {
			prompt := &survey.Input{Message: "Project name:"}
			if err := survey.AskOne(prompt, &projectName, survey.WithValidator(survey.Required)); err != nil {
				return err
			}
		}
		if err := validateProjectName(projectName); err != nil {
			return err
		}

		locales := make([]string, 0, len(lexicon.Builtins()))
		for _, lex := range lexicon.Builtins() {
			locales = append(locales, lex.ID)
		}
		locale := newCmdLocale
		if locale == "" {
			locale = locales[0]
			selectPrompt := &survey.Select{
				Message: "Default source locale:",
				Options: locales,
				Default: locale,
			}
			if err := survey.AskOne(selectPrompt, &locale); err != nil {
				return err
			}
		}

		projectPath := filepath.Join(".", projectName)
		if _, err := os.Stat(projectPath); err == nil {
			return fmt.Errorf("directory %s already exists", projectName)
		}

		dirs := []string{
			projectPath,
			filepath.Join(projectPath, "rules"),
			filepath.Join(projectPath, "rules", "vocabularies"),
			filepath.Join(projectPath, "build"),
		}
		for _, dir := range dirs {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}

		ruleData := struct{ ProjectName string }{ProjectName: utilstrings.ToPascalCase(projectName)}
		configData := struct {
			ProjectName   string
			DefaultLocale string
		}{
			ProjectName:   projectName,
			DefaultLocale: locale,
		}

		if err := renderTemplate("templates/rule.aster.tmpl", filepath.Join(projectPath, "rules", "main.aster"), ruleData); err != nil {
			return err
		}
		if err := renderTemplate("templates/gitignore.tmpl", filepath.Join(projectPath, ".gitignore"), nil); err != nil {
			return err
		}
		if err := renderTemplate("templates/config.tmpl", filepath.Join(projectPath, "aster.yml"), configData); err != nil {
			return err
		}

		readmePath := filepath.Join(projectPath, "README.md")
		readmeContent := fmt.Sprintf(`# %s

An Aster rules project.

## Getting Started

1. Compile a rule file:
   `+"```bash"+`
   aster compile rules/main.aster
   `+"```"+`

2. Export the registered lexicons and vocabularies:
   `+"```bash"+`
   aster export
   `+"```"+`

## Project Structure

- `+"`rules/`"+` - Aster source files (`+"`.aster`"+`)
- `+"`rules/vocabularies/`"+` - Domain vocabulary JSON documents
- `+"`build/`"+` - Compiled output (auto-generated)
- `+"`aster.yml`"+` - Project configuration
`, projectName)
		if err := os.WriteFile(readmePath, []byte(readmeContent), 0644); err != nil {
			return fmt.Errorf("failed to create README: %w", err)
		}

		ui.WriteSuccess(os.Stdout, fmt.Sprintf("Created project: %s", projectName), false)
		fmt.Println("\nGet started:")
		fmt.Printf("  cd %s\n", projectName)
		fmt.Println("  aster compile rules/main.aster")
		fmt.Println()

		return nil
	},
}

func renderTemplate(tmplPath, destPath string, data any) error {
	tmplContent, err := templatesFS.ReadFile(tmplPath)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", tmplPath, err)
	}
	tmpl, err := template.New(filepath.Base(tmplPath)).Parse(string(tmplContent))
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", tmplPath, err)
	}
	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", tmplPath, err)
	}
	return nil
}

func validateProjectName(name string) error {
	if name == "" || strings.TrimSpace(name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if strings.Contains(name, "..") {
		return fmt.Errorf("project name cannot contain '..'")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("project name cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("project name cannot start with '.'")
	}
	return nil
}
