// Package parser implements the recursive-descent parser that turns a
// token stream into an AST, assuming the grammar's English canonical
// keywords. It uses panic-mode error recovery to keep producing
// diagnostics past the first syntax error.
package parser

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// Parser transforms a stream of tokens into a Module AST.
type Parser struct {
	tokens  []lexer.Token
	current int
	errors  []*ParseError
}

// New creates a new parser for the given token stream. The stream is
// expected to already carry synthetic INDENT/DEDENT tokens from the
// indentation lexer.
func New(tokens []lexer.Token) *Parser {
	return &Parser{
		tokens: tokens,
		errors: make([]*ParseError, 0),
	}
}

// Parse parses the token stream and returns the Module AST along with any
// syntax errors accumulated during recovery.
func (p *Parser) Parse() (*ast.Module, []*ParseError) {
	mod := &ast.Module{}

	p.skipNewlines()
	if p.checkKeyword(tokenkind.KindModule) {
		start := p.advance()
		var name lexer.Token
		if p.check(lexer.TOKEN_TYPE_IDENT) || p.check(lexer.TOKEN_IDENT) {
			name = p.advance()
		} else {
			p.error(p.peek(), "expected a module name", lexer.TOKEN_TYPE_IDENT, lexer.TOKEN_IDENT)
			name = lexer.Token{Type: lexer.TOKEN_ERROR}
		}
		mod.Name = name.Lexeme
		mod.Sp = ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(name)}
		p.consumeStatementEnd()
	}
	p.skipNewlines()

	for !p.isAtEnd() {
		if decl := p.parseDecl(); decl != nil {
			mod.Decls = append(mod.Decls, decl)
		}
		p.skipNewlines()
	}

	return mod, p.errors
}

// parseDecl dispatches on the current keyword to parse one top-level
// declaration, recovering to the next declaration boundary on error.
func (p *Parser) parseDecl() ast.Decl {
	switch {
	case p.checkKeyword(tokenkind.KindUse):
		return p.parseImportDecl()
	case p.checkKeyword(tokenkind.KindData):
		return p.parseDataDecl()
	case p.checkKeyword(tokenkind.KindEnum):
		return p.parseEnumDecl()
	case p.checkKeyword(tokenkind.KindTypeAlias):
		return p.parseTypeAliasDecl()
	case p.checkKeyword(tokenkind.KindRule):
		return p.parseFuncDecl()
	default:
		p.error(p.peek(), "expected a declaration")
		p.synchronize()
		return nil
	}
}

// parseImportDecl parses `use Path as Alias.`.
func (p *Parser) parseImportDecl() ast.Decl {
	start := p.advance()
	path := p.consume(lexer.TOKEN_TYPE_IDENT, "expected an import path")
	alias := path.Lexeme
	if p.matchKeyword(tokenkind.KindAs) {
		aliasTok := p.consume(lexer.TOKEN_TYPE_IDENT, "expected an alias after 'as'")
		alias = aliasTok.Lexeme
	}
	end := p.previous()
	p.consumeStatementEnd()
	return &ast.ImportDecl{
		Path:  path.Lexeme,
		Alias: alias,
		Sp:    ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)},
	}
}

// parseDataDecl parses `Data Name:` followed by an indented field list.
func (p *Parser) parseDataDecl() ast.Decl {
	start := p.advance()
	name := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a data type name")

	decl := &ast.DataDecl{Name: name.Lexeme}
	end := name
	if p.match(lexer.TOKEN_COLON) {
		fields, last := p.parseFieldBlock()
		decl.Fields = fields
		if last.Type != lexer.TOKEN_EOF {
			end = last
		}
	}
	decl.Sp = ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}
	return decl
}

// parseFieldBlock parses an indented `name: Type` list, one per line,
// until the matching DEDENT.
func (p *Parser) parseFieldBlock() ([]ast.FieldDef, lexer.Token) {
	p.match(lexer.TOKEN_NEWLINE)
	if !p.match(lexer.TOKEN_INDENT) {
		return nil, p.previous()
	}

	var fields []ast.FieldDef
	last := p.previous()
	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		p.matchKeyword(tokenkind.KindHas)
		nameTok := p.consume(lexer.TOKEN_IDENT, "expected a field name")
		p.consume(lexer.TOKEN_COLON, "expected ':' after field name")
		typ := p.parseType()
		fields = append(fields, ast.FieldDef{
			Name: nameTok.Lexeme,
			Type: typ,
			Sp:   ast.Span{Start: ast.TokenPosition(nameTok), End: typ.Span().End},
		})
		last = p.previous()
		if !p.check(lexer.TOKEN_DEDENT) {
			p.match(lexer.TOKEN_COMMA)
		}
	}
	p.consume(lexer.TOKEN_DEDENT, "expected a dedent to close the field block")
	return fields, last
}

// parseEnumDecl parses `Enum Name:` followed by an indented variant list,
// each variant optionally carrying its own field block.
func (p *Parser) parseEnumDecl() ast.Decl {
	start := p.advance()
	name := p.consume(lexer.TOKEN_TYPE_IDENT, "expected an enum type name")

	decl := &ast.EnumDecl{Name: name.Lexeme}
	end := name
	if p.match(lexer.TOKEN_COLON) {
		p.match(lexer.TOKEN_NEWLINE)
		if p.match(lexer.TOKEN_INDENT) {
			for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
				if p.match(lexer.TOKEN_NEWLINE) {
					continue
				}
				variantTok := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a variant name")
				variant := ast.EnumVariant{Name: variantTok.Lexeme, Sp: ast.Span{Start: ast.TokenPosition(variantTok), End: ast.TokenPosition(variantTok)}}
				if p.check(lexer.TOKEN_COLON) {
					p.advance()
					fields, last := p.parseFieldBlock()
					variant.Fields = fields
					variant.Sp.End = ast.TokenPosition(last)
				}
				decl.Variants = append(decl.Variants, variant)
				end = p.previous()
			}
			p.consume(lexer.TOKEN_DEDENT, "expected a dedent to close the enum body")
		}
	}
	decl.Sp = ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}
	return decl
}

// parseTypeAliasDecl parses `type Name = Target.` or a generic
// `type Name<T, U> = Target.`.
func (p *Parser) parseTypeAliasDecl() ast.Decl {
	start := p.advance()
	name := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a type alias name")

	var params []string
	if p.match(lexer.TOKEN_LESS) {
		for {
			param := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a generic parameter name")
			params = append(params, param.Lexeme)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.consume(lexer.TOKEN_GREATER, "expected '>' after generic parameters")
	}
	p.consume(lexer.TOKEN_EQUAL, "expected '=' in type alias")
	target := p.parseType()
	p.consumeStatementEnd()

	return &ast.TypeAliasDecl{
		Name:   name.Lexeme,
		Params: params,
		Target: target,
		Sp:     ast.Span{Start: ast.TokenPosition(start), End: target.Span().End},
	}
}

// parseFuncDecl parses a Rule declaration:
//
//	Rule name given p1: T1, p2: T2 produce R performs Cap1, Cap2 effect io:
//	    body
func (p *Parser) parseFuncDecl() ast.Decl {
	start := p.advance()
	p.matchKeyword(tokenkind.KindTo)
	name := p.consume(lexer.TOKEN_IDENT, "expected a rule name")

	decl := &ast.FuncDecl{Name: name.Lexeme, DeclaredEffect: ast.EffectPure}

	if p.matchKeyword(tokenkind.KindGiven) || p.matchKeyword(tokenkind.KindWith) {
		decl.Params, decl.SensitiveParams = p.parseParamList()
	}
	if p.matchKeyword(tokenkind.KindProduce) {
		decl.Return = p.parseType()
	}
	if p.matchKeyword(tokenkind.KindPerforms) {
		for {
			cap := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a capability name")
			decl.Capabilities = append(decl.Capabilities, cap.Lexeme)
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	for {
		eff, ok := p.matchEffectTag()
		if !ok {
			break
		}
		decl.EffectTags = append(decl.EffectTags, eff)
		if effectRank(eff) > effectRank(decl.DeclaredEffect) {
			decl.DeclaredEffect = eff
		}
		p.match(lexer.TOKEN_COMMA)
	}

	p.consume(lexer.TOKEN_COLON, "expected ':' to start the rule body")
	decl.Body = p.parseBlock()

	end := decl.Body.Span().End
	decl.Sp = ast.Span{Start: ast.TokenPosition(start), End: end}
	return decl
}

// parseParamList parses a comma-separated `name: Type` list, each
// optionally preceded by `sensitive`.
func (p *Parser) parseParamList() ([]ast.Param, []string) {
	var params []ast.Param
	var sensitive []string
	for {
		isSensitive := p.matchKeyword(tokenkind.KindSensitive)
		nameTok := p.consume(lexer.TOKEN_IDENT, "expected a parameter name")
		p.consume(lexer.TOKEN_COLON, "expected ':' after parameter name")
		typ := p.parseType()
		params = append(params, ast.Param{
			Name: nameTok.Lexeme,
			Type: typ,
			Sp:   ast.Span{Start: ast.TokenPosition(nameTok), End: typ.Span().End},
		})
		if isSensitive {
			sensitive = append(sensitive, nameTok.Lexeme)
		}
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return params, sensitive
}

// effectRank orders the effect lattice for the header-join computation.
func effectRank(e ast.EffectTag) int {
	switch e {
	case ast.EffectCPU:
		return 1
	case ast.EffectIO:
		return 2
	case ast.EffectAsync:
		return 3
	default:
		return 0
	}
}

// matchEffectTag consumes a declared effect keyword if present.
func (p *Parser) matchEffectTag() (ast.EffectTag, bool) {
	if p.isAtEnd() || p.peek().Type != lexer.TOKEN_KEYWORD {
		return "", false
	}
	switch p.peek().Kind {
	case tokenkind.KindPure:
		p.advance()
		return ast.EffectPure, true
	case tokenkind.KindCPU:
		p.advance()
		return ast.EffectCPU, true
	case tokenkind.KindIO:
		p.advance()
		return ast.EffectIO, true
	case tokenkind.KindAsync:
		p.advance()
		return ast.EffectAsync, true
	default:
		return "", false
	}
}

// consumeStatementEnd consumes the '.' or NEWLINE that terminates a
// single-line statement, tolerating EOF.
func (p *Parser) consumeStatementEnd() {
	if p.match(lexer.TOKEN_DOT) {
		p.match(lexer.TOKEN_NEWLINE)
		return
	}
	p.match(lexer.TOKEN_NEWLINE)
}

// skipNewlines consumes any run of blank-line NEWLINE tokens between
// declarations.
func (p *Parser) skipNewlines() {
	for p.match(lexer.TOKEN_NEWLINE) {
	}
}

// Token stream navigation.

func (p *Parser) peek() lexer.Token {
	if len(p.tokens) == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	if p.current >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	if len(p.tokens) == 0 || p.current == 0 {
		return lexer.Token{Type: lexer.TOKEN_EOF}
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

// checkNext reports whether the token after the current one has type t.
func (p *Parser) checkNext(t lexer.TokenType) bool {
	if p.current+1 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.current+1].Type == t
}

// checkKeyword returns true if the current token is TOKEN_KEYWORD carrying
// the given semantic kind.
func (p *Parser) checkKeyword(k tokenkind.Kind) bool {
	return p.check(lexer.TOKEN_KEYWORD) && p.peek().Kind == k
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// matchKeyword advances and returns true if the current token is the given
// semantic keyword.
func (p *Parser) matchKeyword(k tokenkind.Kind) bool {
	if p.checkKeyword(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(t lexer.TokenType, message string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.error(p.peek(), message, t)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) consumeKeyword(k tokenkind.Kind, message string) lexer.Token {
	if p.checkKeyword(k) {
		return p.advance()
	}
	p.error(p.peek(), message)
	return lexer.Token{Type: lexer.TOKEN_ERROR}
}

func (p *Parser) isAtEnd() bool {
	return p.current >= len(p.tokens) || p.tokens[p.current].Type == lexer.TOKEN_EOF
}

// error records a parse error without altering parser position.
func (p *Parser) error(token lexer.Token, message string, expected ...lexer.TokenType) {
	p.errors = append(p.errors, newParseError(message, token, expected...))
}

// synchronize implements panic-mode recovery, skipping tokens until a
// plausible declaration boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.check(lexer.TOKEN_KEYWORD) {
			switch p.peek().Kind {
			case tokenkind.KindRule, tokenkind.KindData, tokenkind.KindEnum,
				tokenkind.KindUse, tokenkind.KindTypeAlias, tokenkind.KindModule:
				return
			}
		}
		p.advance()
	}
}

// synchronizeToStatement recovers to the next statement boundary inside a
// block, used by statement-level parse errors.
func (p *Parser) synchronizeToStatement() {
	p.advance()
	for !p.isAtEnd() {
		if p.check(lexer.TOKEN_NEWLINE) || p.check(lexer.TOKEN_DEDENT) {
			return
		}
		p.advance()
	}
}
