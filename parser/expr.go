package parser

import (
	"go.creack.net/benglang/ast"
	"go.creack.net/benglang/lexer"
)

func (p *parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative and only accepts a bare variable as target.
func (p *parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(lexer.TokEqual) {
		equals := p.previous()
		value := p.assignment()

		if variable, ok := expr.(ast.VariableExpr); ok {
			return ast.AssignExpr{Name: variable.Name, Value: value}
		}

		// Not fatal: the statement is still well formed.
		p.errorAt(equals, "Invalid assignment target.")
	}

	return expr
}

func (p *parser) or() ast.Expr {
	expr := p.and()

	for p.match(lexer.TokOr) {
		operator := p.previous()
		right := p.and()
		expr = ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) and() ast.Expr {
	expr := p.equality()

	for p.match(lexer.TokAnd) {
		operator := p.previous()
		right := p.equality()
		expr = ast.LogicalExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

// binary parses one left-associative level: operand (op operand)*.
func (p *parser) binary(operand func() ast.Expr, ops []lexer.TokenType) ast.Expr {
	expr := operand()

	for p.match(ops...) {
		operator := p.previous()
		right := operand()
		expr = ast.BinaryExpr{Left: expr, Operator: operator, Right: right}
	}

	return expr
}

func (p *parser) equality() ast.Expr {
	return p.binary(p.comparison, equalityOps)
}

func (p *parser) comparison() ast.Expr {
	return p.binary(p.term, comparisonOps)
}

func (p *parser) term() ast.Expr {
	return p.binary(p.factor, termOps)
}

func (p *parser) factor() ast.Expr {
	return p.binary(p.unary, factorOps)
}

func (p *parser) unary() ast.Expr {
	if p.match(unaryOps...) {
		operator := p.previous()
		right := p.unary()
		return ast.UnaryExpr{Operator: operator, Right: right}
	}

	return p.call()
}

func (p *parser) call() ast.Expr {
	expr := p.primary()

	for p.match(lexer.TokLeftParen) {
		expr = p.finishCall(expr)
	}

	return expr
}

func (p *parser) finishCall(callee ast.Expr) ast.Expr {
	arguments := []ast.Expr{}
	if !p.check(lexer.TokRightParen) {
		for {
			if len(arguments) >= MaxArguments {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			arguments = append(arguments, p.expression())
			if !p.match(lexer.TokComma) {
				break
			}
		}
	}

	paren := p.expect(lexer.TokRightParen, "Expect ')' after arguments.")

	return ast.CallExpr{Callee: callee, Paren: paren, Arguments: arguments}
}

func (p *parser) primary() ast.Expr {
	switch {
	case p.match(lexer.TokFalse):
		return ast.LiteralExpr{Value: false}
	case p.match(lexer.TokTrue):
		return ast.LiteralExpr{Value: true}
	case p.match(lexer.TokNil):
		return ast.LiteralExpr{Value: nil}
	case p.match(lexer.TokNumber, lexer.TokString):
		return ast.LiteralExpr{Value: p.previous().Literal}
	case p.match(lexer.TokIdentifier):
		return ast.VariableExpr{Name: p.previous()}
	case p.match(lexer.TokLeftParen):
		expr := p.expression()
		p.expect(lexer.TokRightParen, "Expect ')' after expression.")
		return ast.GroupingExpr{Expression: expr}
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}
