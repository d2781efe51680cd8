package parser

import (
	"go.creack.net/benglang/ast"
	"go.creack.net/benglang/lexer"
)

// declaration is the recovery point: a bailout raised anywhere below it
// discards the rest of the statement and returns nil.
func (p *parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	if p.match(lexer.TokVar) {
		return p.varDeclaration()
	}
	return p.statement()
}

func (p *parser) statement() ast.Stmt {
	switch {
	case p.match(lexer.TokFor):
		return p.forStatement()
	case p.match(lexer.TokIf):
		return p.ifStatement()
	case p.match(lexer.TokPrint):
		return p.printStatement()
	case p.match(lexer.TokWhile):
		return p.whileStatement()
	case p.match(lexer.TokLeftBrace):
		return ast.BlockStmt{Stmts: p.block()}
	}

	return p.expressionStatement()
}

// forStatement desugars
//
//	jokhon (init; cond; incr) body
//
// into
//
//	{ init; jotokhon (cond) { body incr; } }
func (p *parser) forStatement() ast.Stmt {
	p.expect(lexer.TokLeftParen, "Expect '(' after 'jokhon'.")

	var initializer ast.Stmt
	switch {
	case p.match(lexer.TokSemicolon):
	case p.match(lexer.TokVar):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var condition ast.Expr
	if !p.check(lexer.TokSemicolon) {
		condition = p.expression()
	}
	p.expect(lexer.TokSemicolon, "Expect ';' after loop condition.")

	var increment ast.Expr
	if !p.check(lexer.TokRightParen) {
		increment = p.expression()
	}
	p.expect(lexer.TokRightParen, "Expect ')' after for clauses.")

	body := p.statement()

	if increment != nil {
		body = ast.BlockStmt{Stmts: []ast.Stmt{body, ast.ExpressionStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = ast.LiteralExpr{Value: true}
	}
	body = ast.WhileStmt{Condition: condition, Body: body}
	if initializer != nil {
		body = ast.BlockStmt{Stmts: []ast.Stmt{initializer, body}}
	}

	return body
}

func (p *parser) whileStatement() ast.Stmt {
	p.expect(lexer.TokLeftParen, "Expect '(' after 'jotokhon'.")
	condition := p.expression()
	p.expect(lexer.TokRightParen, "Expect ')' after condition.")
	body := p.statement()

	return ast.WhileStmt{Condition: condition, Body: body}
}

// ifStatement binds a following else to the innermost if.
func (p *parser) ifStatement() ast.Stmt {
	p.expect(lexer.TokLeftParen, "Expect '(' after 'jodi'.")
	condition := p.expression()
	p.expect(lexer.TokRightParen, "Expect ')' after if condition.")

	stmt := ast.IfStmt{Condition: condition, Then: p.statement()}
	if p.match(lexer.TokElse) {
		stmt.Else = p.statement()
	}

	return stmt
}

func (p *parser) printStatement() ast.Stmt {
	value := p.expression()
	p.expect(lexer.TokSemicolon, "Expect ';' after value.")
	return ast.PrintStmt{Expression: value}
}

func (p *parser) varDeclaration() ast.Stmt {
	name := p.expect(lexer.TokIdentifier, "Expect variable name.")

	var initializer ast.Expr
	if p.match(lexer.TokEqual) {
		initializer = p.expression()
	}

	p.expect(lexer.TokSemicolon, "Expect ';' after variable declaration.")
	return ast.VarStmt{Name: name, Initializer: initializer}
}

func (p *parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.expect(lexer.TokSemicolon, "Expect ';' after expression.")
	return ast.ExpressionStmt{Expression: expr}
}

func (p *parser) block() []ast.Stmt {
	stmts := []ast.Stmt{}

	for !p.check(lexer.TokRightBrace) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	p.expect(lexer.TokRightBrace, "Expect '}' after block.")
	return stmts
}
