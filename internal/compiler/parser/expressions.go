package parser

import (
	"github.com/aster-lang/aster/internal/compiler/ast"
	"github.com/aster-lang/aster/internal/compiler/lexer"
	"github.com/aster-lang/aster/internal/compiler/tokenkind"
)

// Expression grammar, lowest to highest precedence:
//
//	expr        → logicalOr
//	logicalOr   → logicalAnd ( "or" logicalAnd )*
//	logicalAnd  → comparison ( "and" comparison )*
//	comparison  → term ( ( "<" | ">" | "<=" | ">=" | "==" | "!=" | lessThan | greaterThan | equalsTo ) term )*
//	term        → factor ( ( "+" | "-" | plus | minus ) factor )*
//	factor      → unary ( ( "*" | "/" | times | dividedBy ) unary )*
//	unary       → ( "not" | "-" | "!" ) unary | await
//	await       → "Wait" "for" unary | postfix
//	postfix     → primary ( call | methodCall | fieldAccess )*
//	primary     → literal | construct | lambda | list | "(" expr ")" | qualifiedName

// parseExpr is the entry point for expression parsing.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Expr {
	expr := p.parseLogicalAnd()
	if expr == nil {
		return nil
	}
	for p.checkKeyword(tokenkind.KindOr) {
		op := p.advance()
		right := p.parseLogicalAnd()
		if right == nil {
			return expr
		}
		expr = &ast.LogicalExpr{Left: expr, Operator: "or", Right: right, Sp: spanBetween(expr, right, op)}
	}
	return expr
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	expr := p.parseComparison()
	if expr == nil {
		return nil
	}
	for p.checkKeyword(tokenkind.KindAnd) {
		op := p.advance()
		right := p.parseComparison()
		if right == nil {
			return expr
		}
		expr = &ast.LogicalExpr{Left: expr, Operator: "and", Right: right, Sp: spanBetween(expr, right, op)}
	}
	return expr
}

func (p *Parser) parseComparison() ast.Expr {
	expr := p.parseTerm()
	if expr == nil {
		return nil
	}
	for {
		var opName string
		switch {
		case p.match(lexer.TOKEN_LESS):
			opName = "<"
		case p.match(lexer.TOKEN_GREATER):
			opName = ">"
		case p.match(lexer.TOKEN_LESS_EQUAL):
			opName = "<="
		case p.match(lexer.TOKEN_GREATER_EQUAL):
			opName = ">="
		case p.match(lexer.TOKEN_EQUAL):
			opName = "=="
		case p.match(lexer.TOKEN_BANG_EQUAL):
			opName = "!="
		case p.checkKeyword(tokenkind.KindLessThan), p.checkKeyword(tokenkind.KindUnder):
			p.advance()
			opName = "<"
		case p.checkKeyword(tokenkind.KindGreaterThan), p.checkKeyword(tokenkind.KindOver):
			p.advance()
			opName = ">"
		case p.checkKeyword(tokenkind.KindEqualsTo):
			p.advance()
			opName = "=="
		default:
			return expr
		}
		op := p.previous()
		right := p.parseTerm()
		if right == nil {
			return expr
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: opName, Right: right, Sp: spanBetween(expr, right, op)}
	}
}

func (p *Parser) parseTerm() ast.Expr {
	expr := p.parseFactor()
	if expr == nil {
		return nil
	}
	for {
		var opName string
		switch {
		case p.match(lexer.TOKEN_PLUS):
			opName = "+"
		case p.match(lexer.TOKEN_MINUS):
			opName = "-"
		case p.checkKeyword(tokenkind.KindPlus):
			p.advance()
			opName = "+"
		case p.checkKeyword(tokenkind.KindMinus):
			p.advance()
			opName = "-"
		default:
			return expr
		}
		op := p.previous()
		right := p.parseFactor()
		if right == nil {
			return expr
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: opName, Right: right, Sp: spanBetween(expr, right, op)}
	}
}

func (p *Parser) parseFactor() ast.Expr {
	expr := p.parseUnary()
	if expr == nil {
		return nil
	}
	for {
		var opName string
		switch {
		case p.match(lexer.TOKEN_STAR):
			opName = "*"
		case p.match(lexer.TOKEN_SLASH):
			opName = "/"
		case p.checkKeyword(tokenkind.KindTimes):
			p.advance()
			opName = "*"
		case p.checkKeyword(tokenkind.KindDividedBy):
			p.advance()
			opName = "/"
		default:
			return expr
		}
		op := p.previous()
		right := p.parseUnary()
		if right == nil {
			return expr
		}
		expr = &ast.BinaryExpr{Left: expr, Operator: opName, Right: right, Sp: spanBetween(expr, right, op)}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.checkKeyword(tokenkind.KindNot) || p.check(lexer.TOKEN_BANG) {
		op := p.advance()
		right := p.parseUnary()
		return &ast.CallExpr{
			Callee: &ast.NameExpr{Name: "not", Sp: spanOf(op)},
			Args:   []ast.Expr{right},
			Sp:     ast.Span{Start: ast.TokenPosition(op), End: exprEndOr(right, op)},
		}
	}
	if p.match(lexer.TOKEN_MINUS) {
		op := p.previous()
		right := p.parseUnary()
		return &ast.CallExpr{
			Callee: &ast.NameExpr{Name: "negate", Sp: spanOf(op)},
			Args:   []ast.Expr{right},
			Sp:     ast.Span{Start: ast.TokenPosition(op), End: exprEndOr(right, op)},
		}
	}
	return p.parseAwait()
}

// parseAwait parses `Wait for expr` used in expression position (distinct
// from the statement-level WaitStmt, which waits on a name bound by Start).
func (p *Parser) parseAwait() ast.Expr {
	if p.checkKeyword(tokenkind.KindWait) {
		start := p.advance()
		p.matchKeyword(tokenkind.KindFor)
		value := p.parsePostfix()
		return &ast.AwaitExpr{Value: value, Sp: ast.Span{Start: ast.TokenPosition(start), End: exprEndOr(value, start)}}
	}
	return p.parsePostfix()
}

// parsePostfix parses call suffixes and dotted field/method access,
// including method-style receiver rewriting: `r.m(a, b)` is parsed into
// the same CallExpr shape as `m(r, a, b)`, with r prepended to Args. A
// bare name followed by `with` is the positional call form `f with a, b`;
// it consumes the rest of the expression, so no further postfix applies.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	if name, isName := expr.(*ast.NameExpr); isName && p.checkKeyword(tokenkind.KindWith) {
		p.advance()
		var args []ast.Expr
		for {
			args = append(args, p.parseExpr())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
		end := name.Span().End
		if len(args) > 0 && args[len(args)-1] != nil {
			end = args[len(args)-1].Span().End
		}
		return &ast.CallExpr{
			Callee: name,
			Args:   args,
			Sp:     ast.Span{Start: name.Span().Start, End: end},
		}
	}
	for {
		switch {
		case p.check(lexer.TOKEN_DOT) && p.checkNext(lexer.TOKEN_IDENT):
			p.advance()
			name := p.consume(lexer.TOKEN_IDENT, "expected a field or method name after '.'")
			if p.check(lexer.TOKEN_LPAREN) {
				args := p.parseCallArgs()
				args = append([]ast.Expr{expr}, args...)
				end := p.previous()
				expr = &ast.CallExpr{
					Callee: &ast.NameExpr{Name: name.Lexeme, Sp: spanOf(name)},
					Args:   args,
					Sp:     ast.Span{Start: expr.Span().Start, End: ast.TokenPosition(end)},
				}
			} else {
				expr = &ast.CallExpr{
					Callee: &ast.NameExpr{Name: "field", Sp: spanOf(name)},
					Args:   []ast.Expr{expr, &ast.StringExpr{Value: name.Lexeme, Sp: spanOf(name)}},
					Sp:     ast.Span{Start: expr.Span().Start, End: ast.TokenPosition(name)},
				}
			}
		case p.check(lexer.TOKEN_LPAREN):
			args := p.parseCallArgs()
			end := p.previous()
			expr = &ast.CallExpr{Callee: expr, Args: args, Sp: ast.Span{Start: expr.Span().Start, End: ast.TokenPosition(end)}}
		default:
			return expr
		}
	}
}

// parseCallArgs parses a parenthesized argument list.
func (p *Parser) parseCallArgs() []ast.Expr {
	p.consume(lexer.TOKEN_LPAREN, "expected '(' to start an argument list")
	var args []ast.Expr
	if !p.check(lexer.TOKEN_RPAREN) {
		for {
			args = append(args, p.parseExpr())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	p.consume(lexer.TOKEN_RPAREN, "expected ')' to close argument list")
	return args
}

// parseFieldInits parses `field = expr, …` used by record construction
// (`T with field = expr, …`), preserving field names.
func (p *Parser) parseFieldInits() []ast.FieldInit {
	var fields []ast.FieldInit
	for {
		name := p.consume(lexer.TOKEN_IDENT, "expected a field name")
		p.consume(lexer.TOKEN_EQUAL, "expected '=' after field name")
		value := p.parseExpr()
		fields = append(fields, ast.FieldInit{
			Name:  name.Lexeme,
			Value: value,
			Sp:    ast.Span{Start: ast.TokenPosition(name), End: exprEndOr(value, name)},
		})
		if !p.match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return fields
}

// parsePrimary parses literals, constructors, lambdas, list literals,
// parenthesized expressions, and qualified/simple names, including the
// `with`-style record construction form.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Type == lexer.TOKEN_INT:
		p.advance()
		return &ast.IntExpr{Value: tok.Literal.(int), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_LONG:
		p.advance()
		return &ast.LongExpr{Value: tok.Literal.(int64), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_FLOAT:
		p.advance()
		return &ast.DoubleExpr{Value: tok.Literal.(float64), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_STRING:
		p.advance()
		return &ast.StringExpr{Value: tok.Literal.(string), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_BOOL:
		p.advance()
		return &ast.BoolExpr{Value: tok.Literal.(bool), Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_NULL:
		p.advance()
		return &ast.NullExpr{Sp: spanOf(tok)}
	case prefixOperatorName(tok.Type) != "" && p.checkNext(lexer.TOKEN_LPAREN):
		// Prefix-applied operator call: `<(x, y)`, `+(a, b, c)`.
		p.advance()
		args := p.parseCallArgs()
		end := p.previous()
		return &ast.CallExpr{
			Callee: &ast.NameExpr{Name: prefixOperatorName(tok.Type), Sp: spanOf(tok)},
			Args:   args,
			Sp:     ast.Span{Start: ast.TokenPosition(tok), End: ast.TokenPosition(end)},
		}
	case tok.Type == lexer.TOKEN_LBRACKET:
		return p.parseListLiteral()
	case tok.Type == lexer.TOKEN_LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.consume(lexer.TOKEN_RPAREN, "expected ')' to close parenthesized expression")
		return inner
	case p.checkKeyword(tokenkind.KindOk):
		return p.parseUnaryConstructor(func(v ast.Expr, sp ast.Span) ast.Expr { return &ast.OkExpr{Value: v, Sp: sp} })
	case p.checkKeyword(tokenkind.KindErr):
		return p.parseUnaryConstructor(func(v ast.Expr, sp ast.Span) ast.Expr { return &ast.ErrExpr{Value: v, Sp: sp} })
	case p.checkKeyword(tokenkind.KindSome):
		return p.parseUnaryConstructor(func(v ast.Expr, sp ast.Span) ast.Expr { return &ast.SomeExpr{Value: v, Sp: sp} })
	case p.checkKeyword(tokenkind.KindNone):
		start := p.advance()
		sp := spanOf(start)
		if p.match(lexer.TOKEN_LPAREN) {
			end := p.consume(lexer.TOKEN_RPAREN, "expected ')' to close 'None()'")
			sp.End = ast.TokenPosition(end)
		}
		return &ast.NoneExpr{Sp: sp}
	case p.checkKeyword(tokenkind.KindFunc):
		return p.parseLambda()
	case tok.Type == lexer.TOKEN_KEYWORD && tokenkind.CategoryOf(tok.Kind) == tokenkind.CategoryPrimitiveType:
		// A primitive type name in expression position is a stdlib
		// namespace reference (`Text.trim(s)`); postfix handles the rest.
		p.advance()
		return &ast.NameExpr{Name: tok.Lexeme, Sp: spanOf(tok)}
	case tok.Type == lexer.TOKEN_TYPE_IDENT:
		return p.parseTypeIdentPrimary()
	case tok.Type == lexer.TOKEN_IDENT:
		p.advance()
		return &ast.NameExpr{Name: tok.Lexeme, Sp: spanOf(tok)}
	default:
		p.error(tok, "expected an expression")
		p.advance()
		return nil
	}
}

// parseUnaryConstructor parses a single-argument sum-type constructor
// such as `Ok(expr)`.
func (p *Parser) parseUnaryConstructor(build func(ast.Expr, ast.Span) ast.Expr) ast.Expr {
	start := p.advance()
	p.consume(lexer.TOKEN_LPAREN, "expected '(' after constructor")
	value := p.parseExpr()
	end := p.consume(lexer.TOKEN_RPAREN, "expected ')' to close constructor")
	return build(value, ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)})
}

// parseTypeIdentPrimary parses everything that can start with a
// TYPE_IDENT: a plain name reference (qualified access and calls are
// handled by parsePostfix once this returns), or a record construction
// (`Order with id = x, total = y`).
func (p *Parser) parseTypeIdentPrimary() ast.Expr {
	start := p.advance()
	if p.checkKeyword(tokenkind.KindWith) {
		p.advance()
		fields := p.parseFieldInits()
		sp := ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(start)}
		if len(fields) > 0 {
			sp.End = fields[len(fields)-1].Sp.End
		}
		return &ast.ConstructExpr{TypeName: start.Lexeme, Fields: fields, Sp: sp}
	}
	return &ast.NameExpr{Name: start.Lexeme, Sp: spanOf(start)}
}

// parseListLiteral parses `[e1, e2, …]`.
func (p *Parser) parseListLiteral() ast.Expr {
	start := p.advance()
	var elems []ast.Expr
	if !p.check(lexer.TOKEN_RBRACKET) {
		for {
			elems = append(elems, p.parseExpr())
			if !p.match(lexer.TOKEN_COMMA) {
				break
			}
		}
	}
	end := p.consume(lexer.TOKEN_RBRACKET, "expected ']' to close list literal")
	return &ast.ListLiteralExpr{Elements: elems, Sp: ast.Span{Start: ast.TokenPosition(start), End: ast.TokenPosition(end)}}
}

// parseLambda parses `function with p1: T1, p2: T2 produce R: body` as an
// expression-position lambda.
func (p *Parser) parseLambda() ast.Expr {
	start := p.advance()
	lambda := &ast.LambdaExpr{}
	if p.matchKeyword(tokenkind.KindWith) {
		lambda.Params, _ = p.parseParamList()
	}
	if p.matchKeyword(tokenkind.KindProduce) {
		lambda.Return = p.parseType()
	}
	p.consume(lexer.TOKEN_COLON, "expected ':' to start the lambda body")
	lambda.Body = p.parseBlock()
	lambda.Sp = ast.Span{Start: ast.TokenPosition(start), End: lambda.Body.Span().End}
	return lambda
}

// prefixOperatorName maps an operator token to the call-target name its
// prefix-applied form uses, or "" for tokens with no prefix form.
func prefixOperatorName(t lexer.TokenType) string {
	switch t {
	case lexer.TOKEN_PLUS:
		return "+"
	case lexer.TOKEN_MINUS:
		return "-"
	case lexer.TOKEN_STAR:
		return "*"
	case lexer.TOKEN_SLASH:
		return "/"
	case lexer.TOKEN_LESS:
		return "<"
	case lexer.TOKEN_GREATER:
		return ">"
	case lexer.TOKEN_LESS_EQUAL:
		return "<="
	case lexer.TOKEN_GREATER_EQUAL:
		return ">="
	case lexer.TOKEN_EQUAL:
		return "=="
	case lexer.TOKEN_BANG_EQUAL:
		return "!="
	default:
		return ""
	}
}

func exprEndOr(e ast.Expr, fallback lexer.Token) ast.Position {
	if e == nil {
		return ast.TokenPosition(fallback)
	}
	return e.Span().End
}

func spanBetween(left, right ast.Expr, opFallback lexer.Token) ast.Span {
	if left != nil {
		return ast.Span{Start: left.Span().Start, End: exprEndOr(right, opFallback)}
	}
	return ast.Span{Start: ast.TokenPosition(opFallback), End: exprEndOr(right, opFallback)}
}
