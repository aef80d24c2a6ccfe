package parser

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// parseBlock parses an indented statement list: NEWLINE INDENT stmt+ DEDENT.
// Per the block-span-precision rule, the returned Block's span is computed
// from its first and last statement, never from the INDENT/DEDENT tokens
// themselves.
func (p *Parser) parseBlock() *ast.Block {
	open := p.peek()
	p.match(lexer.TOKEN_NEWLINE)
	if !p.consumeOK(lexer.TOKEN_INDENT, "expected an indented block") {
		return ast.NewBlock(nil, ast.Span{Start: ast.TokenPosition(open), End: ast.TokenPosition(open)})
	}

	var stmts []ast.Stmt
	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(lexer.TOKEN_DEDENT, "expected a dedent to close the block")

	return ast.NewBlock(stmts, ast.Span{Start: ast.TokenPosition(open), End: ast.TokenPosition(open)})
}

// consumeOK is like consume but returns whether the token was present
// instead of a placeholder error token, without recording a duplicate
// error when the caller already falls back gracefully.
func (p *Parser) consumeOK(t lexer.TokenType, message string) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	p.error(p.peek(), message, t)
	return false
}

// parseStatement dispatches on the current token to parse one statement,
// recovering to the next statement boundary on error.
func (p *Parser) parseStatement() ast.Stmt {
	stmt := p.parseStatementInner()
	if stmt == nil {
		p.synchronizeToStatement()
	}
	return stmt
}

func (p *Parser) parseStatementInner() ast.Stmt {
	switch {
	case p.checkKeyword(tokenkind.KindLet):
		return p.parseLetStmt()
	case p.checkKeyword(tokenkind.KindSet):
		return p.parseSetStmt()
	case p.checkKeyword(tokenkind.KindReturn):
		return p.parseReturnStmt()
	case p.checkKeyword(tokenkind.KindIf):
		return p.parseIfStmt()
	case p.checkKeyword(tokenkind.KindMatch):
		return p.parseMatchStmt()
	case p.checkKeyword(tokenkind.KindStart):
		return p.parseStartStmt()
	case p.checkKeyword(tokenkind.KindWait):
		return p.parseWaitStmt()
	case p.checkKeyword(tokenkind.KindWorkflow):
		return p.parseWorkflowStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt parses `Let name: Type be expr.` or `Let name be expr.`.
func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.advance()
	name := p.consume(lexer.TOKEN_IDENT, "expected a name after 'Let'")

	var typ ast.TypeExpr
	if p.match(lexer.TOKEN_COLON) {
		typ = p.parseType()
	}
	p.consumeKeyword(tokenkind.KindBe, "expected 'be' in let statement")
	value := p.parseExpr()
	p.consumeStatementEnd()

	return &ast.LetStmt{
		Name:  name.Lexeme,
		Type:  typ,
		Value: value,
		Sp:    ast.Span{Start: ast.TokenPosition(start), End: exprEnd(value, name)},
	}
}

// parseSetStmt parses `Set name to expr.`.
func (p *Parser) parseSetStmt() ast.Stmt {
	start := p.advance()
	name := p.consume(lexer.TOKEN_IDENT, "expected a name after 'Set'")
	p.matchKeyword(tokenkind.KindTo)
	value := p.parseExpr()
	p.consumeStatementEnd()

	return &ast.SetStmt{
		Name:  name.Lexeme,
		Value: value,
		Sp:    ast.Span{Start: ast.TokenPosition(start), End: exprEnd(value, name)},
	}
}

// parseReturnStmt parses `Return expr.`.
func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.advance()
	value := p.parseExpr()
	p.consumeStatementEnd()
	return &ast.ReturnStmt{Value: value, Sp: ast.Span{Start: ast.TokenPosition(start), End: exprEnd(value, start)}}
}

// parseIfStmt parses `If cond: block` with an optional `Otherwise: block`.
func (p *Parser) parseIfStmt() ast.Stmt {
	start := p.advance()
	cond := p.parseExpr()
	p.consume(lexer.TOKEN_COLON, "expected ':' after if condition")
	then := p.parseBlock()

	stmt := &ast.IfStmt{Condition: cond, Then: then}
	end := then.Span().End
	p.skipNewlines()
	if p.matchKeyword(tokenkind.KindOtherwise) {
		p.consume(lexer.TOKEN_COLON, "expected ':' after 'Otherwise'")
		stmt.Else = p.parseBlock()
		end = stmt.Else.Span().End
	}
	stmt.Sp = ast.Span{Start: ast.TokenPosition(start), End: end}
	return stmt
}

// parseMatchStmt parses `Match expr: (When pattern: block)+`.
func (p *Parser) parseMatchStmt() ast.Stmt {
	start := p.advance()
	value := p.parseExpr()
	p.consume(lexer.TOKEN_COLON, "expected ':' after match subject")
	p.match(lexer.TOKEN_NEWLINE)
	p.consume(lexer.TOKEN_INDENT, "expected an indented list of 'When' clauses")

	stmt := &ast.MatchStmt{Value: value}
	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		whenStart := p.consumeKeyword(tokenkind.KindWhen, "expected 'When'")
		pattern := p.parsePattern()
		p.consume(lexer.TOKEN_COLON, "expected ':' after match pattern")
		body := p.parseBlock()
		stmt.Cases = append(stmt.Cases, &ast.CaseClause{
			Pattern: pattern,
			Body:    body,
			Sp:      ast.Span{Start: ast.TokenPosition(whenStart), End: body.Span().End},
		})
	}
	end := p.peek()
	p.consume(lexer.TOKEN_DEDENT, "expected a dedent to close the match")
	stmt.Sp = ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}
	return stmt
}

// parseStartStmt parses `Start name with expr.`, launching an async task.
func (p *Parser) parseStartStmt() ast.Stmt {
	start := p.advance()
	name := p.consume(lexer.TOKEN_IDENT, "expected a binding name after 'Start'")
	p.matchKeyword(tokenkind.KindWith)
	value := p.parseExpr()
	p.consumeStatementEnd()
	return &ast.StartStmt{
		Name:  name.Lexeme,
		Value: value,
		Sp:    ast.Span{Start: ast.TokenPosition(start), End: exprEnd(value, name)},
	}
}

// parseWaitStmt parses `Wait for name.`.
func (p *Parser) parseWaitStmt() ast.Stmt {
	start := p.advance()
	p.matchKeyword(tokenkind.KindFor)
	name := p.consume(lexer.TOKEN_IDENT, "expected a binding name after 'Wait for'")
	p.consumeStatementEnd()
	return &ast.WaitStmt{Name: name.Lexeme, Sp: ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(name)}}
}

// parseWorkflowStmt parses `Workflow:` followed by an indented list of
// `Step name:` blocks, each with an optional `Compensate:` sub-block.
func (p *Parser) parseWorkflowStmt() ast.Stmt {
	start := p.advance()
	p.consume(lexer.TOKEN_COLON, "expected ':' after 'Workflow'")
	p.match(lexer.TOKEN_NEWLINE)
	p.consume(lexer.TOKEN_INDENT, "expected an indented list of 'Step' blocks")

	stmt := &ast.WorkflowStmt{}
	for !p.check(lexer.TOKEN_DEDENT) && !p.isAtEnd() {
		if p.match(lexer.TOKEN_NEWLINE) {
			continue
		}
		stepStart := p.consumeKeyword(tokenkind.KindStep, "expected 'Step'")
		name := p.consume(lexer.TOKEN_IDENT, "expected a step name")
		p.consume(lexer.TOKEN_COLON, "expected ':' after step name")
		body := p.parseBlock()

		step := &ast.StepStmt{Name: name.Lexeme, Body: body}
		end := body.Span().End
		p.skipNewlines()
		if p.matchKeyword(tokenkind.KindCompensate) {
			p.consume(lexer.TOKEN_COLON, "expected ':' after 'Compensate'")
			step.Compensate = p.parseBlock()
			end = step.Compensate.Span().End
		}
		step.Sp = ast.Span{Start: ast.TokenPosition(stepStart), End: end}
		stmt.Steps = append(stmt.Steps, step)
	}
	end := p.peek()
	p.consume(lexer.TOKEN_DEDENT, "expected a dedent to close the workflow")
	stmt.Sp = ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}
	return stmt
}

// parseExprStmt parses a bare expression evaluated for its side effect.
func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.peek()
	value := p.parseExpr()
	if value == nil {
		return nil
	}
	p.consumeStatementEnd()
	return &ast.ExprStmt{Value: value, Sp: ast.Span{Start: ast.TokenPosition(start), End: value.Span().End}}
}

// exprEnd returns e's end position, falling back to fallback's position
// when e is nil (already-recorded parse error).
func exprEnd(e ast.Expr, fallback lexer.Token) ast.Position {
	if e == nil {
		return ast.TokenPosition(fallback)
	}
	return e.Span().End
}

// parsePattern parses one match-arm pattern.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.peek()
	switch {
	case tok.Type == lexer.TOKEN_INT:
		p.advance()
		return &ast.PatInt{Value: tok.Literal.(int), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_STRING:
		p.advance()
		return &ast.PatString{Value: tok.Literal.(string), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_BOOL:
		p.advance()
		return &ast.PatBool{Value: tok.Literal.(bool), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_NULL:
		p.advance()
		return &ast.PatNull{Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_IDENT && tok.Lexeme == "_":
		p.advance()
		return &ast.PatWildcard{Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_TYPE_IDENT:
		return p.parseConstructorPattern()
	case tok.Type == lexer.TOKEN_IDENT:
		p.advance()
		return &ast.PatName{Name: tok.Lexeme, Sp: spanOf(tok)}
	default:
		p.error(tok, "expected a pattern")
		p.advance()
		return &ast.PatWildcard{Sp: spanOf(tok)}
	}
}

// parseConstructorPattern parses `Name`, `Name(arg, …)`, or a sum-type
// constructor such as `Some(name)`.
func (p *Parser) parseConstructorPattern() ast.Pattern {
	start := p.advance()
	pat := &ast.PatConstructor{Name: start.Lexeme, Sp: spanOf(start)}
	if p.match(lexer.TOKEN_LPAREN) {
		if !p.check(lexer.TOKEN_RPAREN) {
			for {
				pat.Args = append(pat.Args, p.parsePattern())
				if !p.match(lexer.TOKEN_COMMA) {
					break
				}
			}
		}
		end := p.consume(lexer.TOKEN_RPAREN, "expected ')' to close constructor pattern")
		pat.Sp.End = ast.TokenPosition(end)
	}
	return pat
}

func spanOf(t lexer.Token) ast.Span {
	pos := ast.TokenPosition(t)
	return ast.Span{Start: pos, End: pos}
}

// parseType parses a type annotation.
func (p *Parser) parseType() ast.TypeExpr {
	tok := p.peek()
	switch {
	case p.checkKeyword(tokenkind.KindList):
		return p.parseGenericType("List", func(args []ast.TypeExpr, sp ast.Span) ast.TypeExpr {
			if len(args) == 1 {
				return &ast.ListType{Elem: args[0], Sp: sp}
			}
			return &ast.TypeApp{Base: "List", Args: args, Sp: sp}
		})
	case p.checkKeyword(tokenkind.KindMap):
		return p.parseGenericType("Map", func(args []ast.TypeExpr, sp ast.Span) ast.TypeExpr {
			if len(args) == 2 {
				return &ast.MapType{Key: args[0], Value: args[1], Sp: sp}
			}
			return &ast.TypeApp{Base: "Map", Args: args, Sp: sp}
		})
	case p.checkKeyword(tokenkind.KindMaybe):
		return p.parseGenericType("Maybe", func(args []ast.TypeExpr, sp ast.Span) ast.TypeExpr {
			if len(args) == 1 {
				return &ast.MaybeType{Elem: args[0], Sp: sp}
			}
			return &ast.TypeApp{Base: "Maybe", Args: args, Sp: sp}
		})
	case p.checkKeyword(tokenkind.KindOption):
		return p.parseGenericType("Option", func(args []ast.TypeExpr, sp ast.Span) ast.TypeExpr {
			if len(args) == 1 {
				return &ast.OptionType{Elem: args[0], Sp: sp}
			}
			return &ast.TypeApp{Base: "Option", Args: args, Sp: sp}
		})
	case p.checkKeyword(tokenkind.KindResult):
		return p.parseGenericType("Result", func(args []ast.TypeExpr, sp ast.Span) ast.TypeExpr {
			if len(args) == 2 {
				return &ast.ResultType{Ok: args[0], Err: args[1], Sp: sp}
			}
			return &ast.TypeApp{Base: "Result", Args: args, Sp: sp}
		})
	case tok.Type == lexer.TOKEN_LPAREN:
		return p.parseFuncType()
	case tok.Type == lexer.TOKEN_KEYWORD && tokenkind.CategoryOf(tok.Kind) == tokenkind.CategoryPrimitiveType:
		// Primitive type names (Int, Text, DateTime, …) lex as keywords,
		// not TYPE_IDENTs.
		p.advance()
		return p.maybeParsePiiLevel(&ast.TypeName{Name: tok.Lexeme, Sp: spanOf(tok)})
	case tok.Type == lexer.TOKEN_TYPE_IDENT:
		p.advance()
		base := &ast.TypeName{Name: tok.Lexeme, Sp: spanOf(tok)}
		return p.maybeParsePiiLevel(p.maybeParseGenericArgs(base, tok))
	case tok.Type == lexer.TOKEN_IDENT:
		p.advance()
		return &ast.TypeVar{Name: tok.Lexeme, Sp: spanOf(tok)}
	default:
		p.error(tok, "expected a type")
		p.advance()
		return &ast.TypeName{Name: "Unknown", Sp: spanOf(tok)}
	}
}

// parseGenericType parses `Base<Arg, …>` for a builtin type constructor.
func (p *Parser) parseGenericType(base string, build func([]ast.TypeExpr, ast.Span) ast.TypeExpr) ast.TypeExpr {
	start := p.advance()
	var args []ast.TypeExpr
	if p.match(lexer.TOKEN_LESS) {
		for {
			args = append(args, p.parseType())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		end := p.consume(lexer.TOKEN_GREATER, "expected '>' to close generic type arguments")
		return build(args, ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)})
	}
	return build(args, spanOf(start))
}

// maybeParseGenericArgs parses an optional `<Arg, …>` suffix on a named
// type reference.
func (p *Parser) maybeParseGenericArgs(base *ast.TypeName, start lexer.Token) ast.TypeExpr {
	if !p.match(lexer.TOKEN_LESS) {
		return base
	}
	var args []ast.TypeExpr
	for {
		args = append(args, p.parseType())
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	end := p.consume(lexer.TOKEN_GREATER, "expected '>' to close generic type arguments")
	return &ast.TypeApp{Base: base.Name, Args: args, Sp: ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}}
}

// maybeParsePiiLevel parses an optional `sensitive L1`/`L2`/`L3`
// sensitivity suffix on a type.
func (p *Parser) maybeParsePiiLevel(base ast.TypeExpr) ast.TypeExpr {
	if !p.checkKeyword(tokenkind.KindSensitive) {
		return base
	}
	start := p.advance()
	level := p.consume(lexer.TOKEN_TYPE_IDENT, "expected a sensitivity level")
	return &ast.PiiType{Base: base, Level: level.Lexeme, Sp: ast.Span{Start: base.Span().Start, End: ast.TokenPosition(start)}}
}

// parseFuncType parses a lambda type `(P1, P2) -> R`.
func (p *Parser) parseFuncType() ast.TypeExpr {
	start := p.advance()
	var params []ast.TypeExpr
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			params = append(params, p.parseType())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')' to close function type parameters")
	p.consume(lexer.TOKEN_MINUS, "expected '->' in function type")
	p.consume(lexer.TOKEN_GREATER, "expected '->' in function type")
	ret := p.parseType()
	return &ast.FuncType{Params: params, Return: ret, Sp: ast.Span{Start: ast.TokenPosition(start), End: ret.Span().End}}
}
