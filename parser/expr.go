package parser

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

// errorExpr is the placeholder node returned on an unrecoverable
// expression-parse failure, so callers higher up the recursion can
// keep returning a well-typed ast.Expression instead of nil.
func errorExpr(pos token.Position) ast.Expression {
	return &ast.Identifier{Name: "<error>", Pos: pos}
}

// ParseExpression parses a single expression, entering at the lowest
// precedence level (logical or).
func (p *Parser) ParseExpression() ast.Expression {
	return p.parseOr()
}

// parseOr: level 1, `or`, left-associative.
func (p *Parser) parseOr() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseAnd()
	for p.at(token.Or) {
		pos := p.current().Position
		p.advance()
		right := p.parseAnd()
		left = &ast.Binary{Op: ast.LogicalOr, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseAnd: level 2, `and`, left-associative.
func (p *Parser) parseAnd() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseNot()
	for p.at(token.And) {
		pos := p.current().Position
		p.advance()
		right := p.parseNot()
		left = &ast.Binary{Op: ast.LogicalAnd, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseNot: level 3, prefix `not`, right-associative. A leading `not`
// here takes the whole comparison below it as its operand, so
// `not x = y` negates the comparison rather than the identifier. `not`
// also appears at level 8 with the other prefix operators for the
// tight-binding positions (`x = not y`).
func (p *Parser) parseNot() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	if p.at(token.Not) {
		pos := p.current().Position
		p.advance()
		return &ast.Unary{Op: ast.UnaryNot, Operand: p.parseNot(), Pos: pos}
	}
	return p.parseEquality()
}

// parseEquality: level 4, `= ≠`, non-associative in the grammar but
// implemented as a left-to-right chain — a second occurrence nests the
// first comparison as the left operand of the next, so the checker sees
// a boolean compared with the right operand.
func (p *Parser) parseEquality() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseRelational()
	for p.at(token.Equal) || p.at(token.NotEqual) {
		op := ast.Equal
		if p.at(token.NotEqual) {
			op = ast.NotEqual
		}
		pos := p.current().Position
		p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseRelational: level 5, `< ≦ > ≧`.
func (p *Parser) parseRelational() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseAdditive()
	for p.at(token.Less) || p.at(token.LessEqual) || p.at(token.Greater) || p.at(token.GreaterEqual) {
		var op ast.BinaryOp
		switch p.current().Kind {
		case token.Less:
			op = ast.Less
		case token.LessEqual:
			op = ast.LessEqual
		case token.Greater:
			op = ast.Greater
		default:
			op = ast.GreaterEqual
		}
		pos := p.current().Position
		p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseAdditive: level 6, `+ -`, left-associative.
func (p *Parser) parseAdditive() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseMultiplicative()
	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.Add
		if p.at(token.Minus) {
			op = ast.Subtract
		}
		pos := p.current().Position
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseMultiplicative: level 7, `* / %`, left-associative.
func (p *Parser) parseMultiplicative() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	left := p.parseUnary()
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		var op ast.BinaryOp
		switch p.current().Kind {
		case token.Star:
			op = ast.Multiply
		case token.Slash:
			op = ast.Divide
		default:
			op = ast.Modulo
		}
		pos := p.current().Position
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op, Left: left, Right: right, Pos: pos}
	}
	return left
}

// parseUnary: level 8, prefix `+ - not`, right-associative.
func (p *Parser) parseUnary() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	switch p.current().Kind {
	case token.Plus:
		pos := p.current().Position
		p.advance()
		return &ast.Unary{Op: ast.UnaryPlus, Operand: p.parseUnary(), Pos: pos}
	case token.Minus:
		pos := p.current().Position
		p.advance()
		return &ast.Unary{Op: ast.UnaryMinus, Operand: p.parseUnary(), Pos: pos}
	case token.Not:
		pos := p.current().Position
		p.advance()
		return &ast.Unary{Op: ast.UnaryNot, Operand: p.parseUnary(), Pos: pos}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix: level 9, call/index/field, left-associative chaining.
func (p *Parser) parsePostfix() ast.Expression {
	if !p.enterDepth() {
		defer p.exitDepth()
		return errorExpr(p.current().Position)
	}
	defer p.exitDepth()

	expr := p.parsePrimary()
	for {
		switch p.current().Kind {
		case token.LParen:
			expr = p.parseCallSuffix(expr)
		case token.LBracket:
			expr = p.parseIndexSuffix(expr)
		case token.Dot:
			expr = p.parseFieldSuffix(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallSuffix(target ast.Expression) ast.Expression {
	pos := target.Position()
	name, ok := target.(*ast.Identifier)
	if !ok {
		p.errorUnexpected("function call target")
	}
	p.advance() // '('

	var args []ast.Expression
	if !p.at(token.RParen) {
		for {
			args = append(args, p.ParseExpression())
			if p.at(token.Comma) {
				p.advance()
				if p.at(token.RParen) {
					// trailing comma: tolerated, diagnostic emitted
					p.report(diagnostic.NewUnexpectedToken(p.current().Position, "argument", "')'"))
					break
				}
				continue
			}
			break
		}
	}
	p.expect(token.RParen, "function call")

	callName := ""
	if name != nil {
		callName = name.Name
	}
	return &ast.FunctionCall{Name: callName, Arguments: args, Pos: pos}
}

func (p *Parser) parseIndexSuffix(target ast.Expression) ast.Expression {
	pos := target.Position()
	p.advance() // '['
	var indices []ast.Expression
	indices = append(indices, p.ParseExpression())
	for p.at(token.Comma) {
		p.advance()
		indices = append(indices, p.ParseExpression())
	}
	p.expect(token.RBracket, "array index")
	return &ast.ArrayAccess{Array: target, Indices: indices, Pos: pos}
}

func (p *Parser) parseFieldSuffix(target ast.Expression) ast.Expression {
	pos := target.Position()
	p.advance() // '.'
	nameTok, ok := p.expect(token.Identifier, "field access")
	if !ok {
		return &ast.FieldAccess{Record: target, Field: "<error>", Pos: pos}
	}
	return &ast.FieldAccess{Record: target, Field: nameTok.Lexeme, Pos: pos}
}

// parsePrimary: level 10, atoms.
func (p *Parser) parsePrimary() ast.Expression {
	tok := p.current()
	switch tok.Kind {
	case token.IntegerLiteral:
		p.advance()
		return &ast.Literal{Value: parseIntegerLiteral(tok.Lexeme), Pos: tok.Position}
	case token.RealLiteral:
		p.advance()
		return &ast.Literal{Value: parseRealLiteral(tok.Lexeme), Pos: tok.Position}
	case token.StringLiteral:
		p.advance()
		return &ast.Literal{Value: ast.StringValue(tok.Lexeme), Pos: tok.Position}
	case token.CharacterLiteral:
		p.advance()
		r := rune(0)
		for _, c := range tok.Lexeme {
			r = c
			break
		}
		return &ast.Literal{Value: ast.CharacterValue(r), Pos: tok.Position}
	case token.True:
		p.advance()
		return &ast.Literal{Value: ast.BooleanValue(true), Pos: tok.Position}
	case token.False:
		p.advance()
		return &ast.Literal{Value: ast.BooleanValue(false), Pos: tok.Position}
	case token.Identifier:
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme, Pos: tok.Position}
	case token.LParen:
		p.advance()
		inner := p.ParseExpression()
		p.expect(token.RParen, "parenthesized expression")
		// Grouping is transparent: the inner expression is returned
		// directly, with no wrapping node.
		return inner
	default:
		p.errorUnexpected("expression")
		pos := tok.Position
		if tok.Kind != token.EOF {
			p.advance()
		}
		return errorExpr(pos)
	}
}
