// Package pipeline wires the five compiler stages (canonicalizer,
// indentation lexer, parser, IR lowerer, type checker) into the single
// Compile entry point a driver calls. It is the one place that knows
// the stage order; nothing about that order belongs in any individual
// stage package.
package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/canon"
	"github.com/aster-lang/aster/internal/compiler/errors"
	"github.com/aster-lang/aster/internal/compiler/ir"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/lexicon"
	"github.com/aster-lang/aster/internal/compiler/parser"
	"github.com/aster-lang/aster/internal/compiler/typechecker"
)

// Options configures a single Compile call. Lexicon is the locale
// source was authored in; English is always required because every
// stage past the canonicalizer works against English keyword surface
// forms. A nil Logger is replaced with a no-op logger.
type Options struct {
	Lexicon    *lexicon.Lexicon
	English    *lexicon.Lexicon
	Index      *lexicon.IdentifierIndex
	Transformers map[string]func(string) string // named canonicalization handlers, from registry plugin discovery
	Manifest     *typechecker.Manifest
	Effects      *typechecker.EffectPatterns
	EnforcePII bool
	Sinks      map[string]bool
	Logger     *zap.Logger
}

// Result carries every artifact a driver might want out of a
// successful (or partially successful) compile: the lowered module
// when lowering ran at all, and the unified diagnostics list.
type Result struct {
	Module      *ir.Module
	Diagnostics errors.ErrorList
}

// Compile runs source through all five stages in order, stopping early
// at the first stage that produces blocking errors: there is no value
// in indentation-lexing text the canonicalizer rejected, or type
// checking a module the parser never built. Each stage's errors are
// still collected into one ErrorList; a driver sees them uniformly
// regardless of which stage raised them.
func Compile(source string, opts Options) Result {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.New().String()))

	logger.Debug("stage start", zap.String("stage", "canonicalizer"))
	canonicalizer := canon.New(opts.Lexicon, opts.Index)
	if opts.Transformers != nil {
		canonicalizer.SetHandlers(opts.Transformers)
	}
	canonical, err := canonicalizer.Canonicalize(source)
	if err != nil {
		logger.Debug("stage error", zap.String("stage", "canonicalizer"), zap.Error(err))
		return Result{Diagnostics: errors.ErrorList{errors.New("PARSE_ERROR", ast.Span{}, err.Error())}}
	}
	logger.Debug("stage end", zap.String("stage", "canonicalizer"), zap.Int("length", len(canonical)))

	logger.Debug("stage start", zap.String("stage", "lexer"))
	tokens, lexErrs := lexer.New(canonical, opts.English).ScanTokens()
	logger.Debug("stage end", zap.String("stage", "lexer"), zap.Int("tokenCount", len(tokens)), zap.Int("errorCount", len(lexErrs)))
	if len(lexErrs) > 0 {
		return Result{Diagnostics: errors.FromLexErrors(lexErrs)}
	}

	logger.Debug("stage start", zap.String("stage", "parser"))
	mod, parseErrs := parser.New(tokens).Parse()
	logger.Debug("stage end", zap.String("stage", "parser"), zap.Int("errorCount", len(parseErrs)))
	if len(parseErrs) > 0 {
		return Result{Diagnostics: errors.FromParseErrors(parseErrs)}
	}

	logger.Debug("stage start", zap.String("stage", "ir-lowerer"))
	lowered, lowerErrs := ir.Lower(mod)
	logger.Debug("stage end", zap.String("stage", "ir-lowerer"), zap.Int("errorCount", len(lowerErrs)))
	if len(lowerErrs) > 0 {
		list := make(errors.ErrorList, len(lowerErrs))
		for i, e := range lowerErrs {
			list[i] = errors.New("PARSE_ERROR", ast.Span{}, e.Error())
		}
		return Result{Diagnostics: list}
	}

	logger.Debug("stage start", zap.String("stage", "typechecker"))
	checker := typechecker.NewChecker(opts.Manifest)
	checker.SetEffectPatterns(opts.Effects)
	checker.SetEnforcePII(opts.EnforcePII)
	if opts.Sinks != nil {
		checker.SetSinks(opts.Sinks)
	}
	diags := checker.Check(lowered)
	logger.Debug("stage end", zap.String("stage", "typechecker"), zap.Int("diagnosticCount", len(diags)))

	return Result{Module: lowered, Diagnostics: errors.FromDiagnostics(diags)}
}
