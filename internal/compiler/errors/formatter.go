package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	dimColor     = color.New(color.Faint)
)

func severityColor(s Severity) *color.Color {
	switch s {
	case SeverityWarning:
		return warningColor
	case SeverityInfo:
		return infoColor
	default:
		return errorColor
	}
}

// FormatError renders e for terminal output, colorized by severity.
func FormatError(e *CompilerError) string {
	var b strings.Builder

	file := e.Span.File
	if file == "" {
		file = "<source>"
	}
	sc := severityColor(e.Severity)
	fmt.Fprintf(&b, "%s %s:%d:%d [%s]\n",
		sc.Sprint(strings.ToUpper(string(e.Severity))), file, e.Span.Start.Line, e.Span.Start.Col, e.Code)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Expected != "" || e.Actual != "" {
		b.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", e.Expected)
		}
		if e.Actual != "" {
			fmt.Fprintf(&b, "  Actual:   %s\n", e.Actual)
		}
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  %s %s\n", dimColor.Sprint("suggestion:"), e.Suggestion)
	}
	return b.String()
}

// FormatErrorList renders every error in el with a summary header.
func FormatErrorList(el ErrorList) string {
	if len(el) == 0 {
		return "no errors"
	}
	var b strings.Builder
	errs, warnings, info := el.Counts()
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d info\n\n", errs, warnings, info)
	for i, e := range el {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Format())
	}
	return b.String()
}

// FormatCompact renders e as a single line, for grep-friendly output.
func FormatCompact(e *CompilerError) string {
	file := e.Span.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s [%s]", file, e.Span.Start.Line, e.Span.Start.Col, e.Severity, e.Message, e.Code)
}
