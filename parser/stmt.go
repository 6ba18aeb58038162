package parser

import (
	"github.com/felangkit/felangkit/ast"
	"github.com/felangkit/felangkit/diagnostic"
	"github.com/felangkit/felangkit/token"
)

// ParseStatements parses as many well-formed statements as possible
// from the token stream, resynchronizing at the next statement
// boundary after each unrecoverable error. It never returns both an
// empty statement list and an empty diagnostic list for non-empty
// input.
func (p *Parser) ParseStatements() []ast.Statement {
	var stmts []ast.Statement
	for !p.at(token.EOF) {
		before := len(p.diagnostics)
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.diagnostics) > before {
			p.resynchronize()
		}
	}
	return stmts
}

// resynchronize consumes tokens until a statement boundary: newline,
// semicolon, a statement-introducing keyword, an "end ..." token, or
// EOF.
func (p *Parser) resynchronize() {
	for !p.at(token.EOF) {
		switch p.current().Kind {
		case token.Newline, token.Semicolon:
			p.advance()
			return
		case token.Var, token.Const, token.If, token.While, token.For,
			token.Function, token.Procedure, token.Return, token.Break,
			token.EndIf, token.EndWhile, token.EndFor, token.EndFunction, token.EndProcedure:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.current().Kind {
	case token.Var:
		return p.parseVariableDeclaration()
	case token.Const:
		return p.parseConstantDeclaration()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Function:
		return p.parseFunctionDeclaration()
	case token.Procedure:
		return p.parseProcedureDeclaration()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		pos := p.advance().Position
		return &ast.BreakStatement{Pos: pos}
	case token.Newline, token.Semicolon:
		p.advance()
		return nil
	default:
		return p.parseAssignmentOrExpressionStatement()
	}
}

// parseBlockUntil parses statements until the current token is one of
// the given terminator kinds (or EOF), without consuming the
// terminator.
func (p *Parser) parseBlockUntil(terminators ...token.Kind) []ast.Statement {
	var stmts []ast.Statement
	for !p.at(token.EOF) && !p.atAny(terminators...) {
		before := len(p.diagnostics)
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		if len(p.diagnostics) > before {
			p.resynchronizeWithin(terminators...)
		}
	}
	return stmts
}

func (p *Parser) resynchronizeWithin(terminators ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(terminators...) {
		if p.at(token.Newline) || p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) parseVariableDeclaration() ast.Statement {
	pos := p.advance().Position // Var
	nameTok, _ := p.expect(token.Identifier, "variable declaration")
	p.expect(token.Colon, "variable declaration")
	typ := p.parseTypeExpr()

	var init ast.Expression
	if p.at(token.Arrow) {
		p.advance()
		init = p.ParseExpression()
	}
	return &ast.VariableDeclaration{Name: nameTok.Lexeme, Type: typ, Initializer: init, Pos: pos}
}

func (p *Parser) parseConstantDeclaration() ast.Statement {
	pos := p.advance().Position // Const
	nameTok, _ := p.expect(token.Identifier, "constant declaration")
	p.expect(token.Colon, "constant declaration")
	typ := p.parseTypeExpr()
	p.expect(token.Arrow, "constant declaration")
	init := p.ParseExpression()
	return &ast.ConstantDeclaration{Name: nameTok.Lexeme, Type: typ, Initializer: init, Pos: pos}
}

func (p *Parser) parseIf() ast.Statement {
	pos := p.advance().Position // if
	cond := p.ParseExpression()
	p.expect(token.Then, "if statement")
	p.skipNewlines()
	then := p.parseBlockUntil(token.Else, token.EndIf)

	var elseBlock []ast.Statement
	if p.at(token.Else) {
		p.advance()
		p.skipNewlines()
		elseBlock = p.parseBlockUntil(token.EndIf)
	}
	p.expect(token.EndIf, "if statement")
	return &ast.IfStatement{Condition: cond, Then: then, Else: elseBlock, Pos: pos}
}

func (p *Parser) parseWhile() ast.Statement {
	pos := p.advance().Position // while
	cond := p.ParseExpression()
	p.expect(token.Do, "while statement")
	p.skipNewlines()
	body := p.parseBlockUntil(token.EndWhile)
	p.expect(token.EndWhile, "while statement")
	return &ast.WhileStatement{Condition: cond, Body: body, Pos: pos}
}

func (p *Parser) parseFor() ast.Statement {
	pos := p.advance().Position // for
	nameTok, _ := p.expect(token.Identifier, "for statement")

	if p.at(token.In) {
		p.advance()
		iterable := p.ParseExpression()
		p.expect(token.Do, "for-each statement")
		p.skipNewlines()
		body := p.parseBlockUntil(token.EndFor)
		p.expect(token.EndFor, "for-each statement")
		return &ast.ForEachStatement{Variable: nameTok.Lexeme, Iterable: iterable, Body: body, Pos: pos}
	}

	p.expect(token.Arrow, "for statement")
	start := p.ParseExpression()
	p.expect(token.To, "for statement")
	end := p.ParseExpression()

	var step ast.Expression
	if p.at(token.Step) {
		p.advance()
		step = p.ParseExpression()
	}
	p.expect(token.Do, "for statement")
	p.skipNewlines()
	body := p.parseBlockUntil(token.EndFor)
	p.expect(token.EndFor, "for statement")
	return &ast.ForRangeStatement{Variable: nameTok.Lexeme, Start: start, End: end, Step: step, Body: body, Pos: pos}
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	pos := p.advance().Position // function
	nameTok, _ := p.expect(token.Identifier, "function declaration")
	params := p.parseParameterList()
	p.expect(token.Colon, "function declaration")
	returnType := p.parseTypeExpr()
	p.skipNewlines()

	locals := p.parseLocalSection()
	body := p.parseBlockUntil(token.EndFunction)
	p.expect(token.EndFunction, "function declaration")
	return &ast.FunctionDeclaration{
		Name: nameTok.Lexeme, Parameters: params, ReturnType: returnType,
		Locals: locals, Body: body, Pos: pos,
	}
}

func (p *Parser) parseProcedureDeclaration() ast.Statement {
	pos := p.advance().Position // procedure
	nameTok, _ := p.expect(token.Identifier, "procedure declaration")
	params := p.parseParameterList()
	p.skipNewlines()

	locals := p.parseLocalSection()
	body := p.parseBlockUntil(token.EndProcedure)
	p.expect(token.EndProcedure, "procedure declaration")
	return &ast.ProcedureDeclaration{Name: nameTok.Lexeme, Parameters: params, Locals: locals, Body: body, Pos: pos}
}

func (p *Parser) parseParameterList() []ast.Parameter {
	p.expect(token.LParen, "parameter list")
	var params []ast.Parameter
	if !p.at(token.RParen) {
		for {
			nameTok, _ := p.expect(token.Identifier, "parameter")
			p.expect(token.Colon, "parameter")
			typ := p.parseTypeExpr()
			params = append(params, ast.Parameter{Name: nameTok.Lexeme, Type: typ, Pos: nameTok.Position})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(token.RParen, "parameter list")
	return params
}

// parseLocalSection consumes leading `変数` declarations that appear
// before the first non-declaration statement in a function/procedure
// body, collecting them as Locals distinct from the Body statements.
func (p *Parser) parseLocalSection() []*ast.VariableDeclaration {
	var locals []*ast.VariableDeclaration
	for p.at(token.Var) {
		decl := p.parseVariableDeclaration().(*ast.VariableDeclaration)
		locals = append(locals, decl)
		p.skipNewlines()
	}
	return locals
}

func (p *Parser) parseReturn() ast.Statement {
	pos := p.advance().Position // return
	if p.at(token.Newline) || p.at(token.Semicolon) || p.at(token.EndFunction) || p.at(token.EndProcedure) || p.at(token.EOF) {
		return &ast.ReturnStatement{Pos: pos}
	}
	value := p.ParseExpression()
	return &ast.ReturnStatement{Value: value, Pos: pos}
}

func (p *Parser) parseAssignmentOrExpressionStatement() ast.Statement {
	pos := p.current().Position
	expr := p.ParseExpression()

	if p.at(token.Arrow) {
		p.advance()
		value := p.ParseExpression()
		return &ast.Assignment{Target: expr, Value: value, Pos: pos}
	}
	return &ast.ExpressionStatement{Expr: expr, Pos: pos}
}

// parseTypeExpr parses the type syntax accepted after ':' — a
// primitive keyword, `array of T` with optional dimensions, or
// `record NAME`.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.current()
	switch tok.Kind {
	case token.IntegerType, token.RealType, token.CharacterType, token.StringType, token.BooleanType:
		p.advance()
		return &ast.PrimitiveTypeExpr{Kind: tok.Kind, Pos: tok.Position}
	case token.ArrayType:
		p.advance()
		p.expect(token.OfKeyword, "array type")

		var dims []int
		if p.at(token.LBracket) {
			p.advance()
			for {
				if !p.at(token.IntegerLiteral) {
					break
				}
				n := int(parseIntegerLiteral(p.current().Lexeme))
				dims = append(dims, n)
				p.advance()
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			p.expect(token.RBracket, "array type dimensions")
		}

		elem := p.parseTypeExpr()
		return &ast.ArrayTypeExpr{Element: elem, Dimensions: dims, Pos: tok.Position}
	case token.RecordType:
		p.advance()
		nameTok, _ := p.expect(token.Identifier, "record type")
		return &ast.RecordTypeExpr{Name: nameTok.Lexeme, Pos: tok.Position}
	default:
		p.report(diagnostic.NewUnexpectedToken(tok.Position, "type", p.describeCurrent()))
		if tok.Kind != token.EOF {
			p.advance()
		}
		return &ast.PrimitiveTypeExpr{Kind: token.IntegerType, Pos: tok.Position}
	}
}
