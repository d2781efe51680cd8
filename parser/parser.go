// Package parser builds the benglang syntax tree from a token sequence.
package parser

import (
	"go.creack.net/benglang/ast"
	"go.creack.net/benglang/lexer"
)

// MaxArguments is the largest argument count a call may have.
const MaxArguments = 255

// Reporter receives syntax errors. Error is used for errors without a
// meaningful token, ErrorAt attaches the offending token.
type Reporter interface {
	lexer.ErrorReporter
	ErrorAt(tok lexer.Token, message string)
}

// bailout unwinds the current declaration after a fatal syntax error.
// It is only ever recovered by (*parser).declaration.
type bailout struct{}

type parser struct {
	tokens  []lexer.Token
	current int

	errs Reporter
}

func newParser(tokens []lexer.Token, errs Reporter) *parser {
	if n := len(tokens); n == 0 || tokens[n-1].Type != lexer.TokEOF {
		line := 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], lexer.Token{Type: lexer.TokEOF, Line: line})
	}
	return &parser{
		tokens: tokens,
		errs:   errs,
	}
}

// Parse turns tokens into top-level statements. Statements that failed to
// parse are reported to errs and left out of the result, parsing resumes
// at the next statement boundary.
func Parse(tokens []lexer.Token, errs Reporter) []ast.Stmt {
	p := newParser(tokens, errs)

	stmts := []ast.Stmt{}
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// ParseSource scans and parses source, reporting every error to errs.
func ParseSource(source string, errs Reporter) ast.Program {
	return ast.Program{Stmts: Parse(lexer.Scan(source, errs), errs)}
}

func (p *parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == lexer.TokEOF
}

func (p *parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *parser) check(kind lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == kind
}

// match consumes the current token if it is one of kinds.
func (p *parser) match(kinds ...lexer.TokenType) bool {
	if p.isAtEnd() || !p.peek().Type.IsOneOf(kinds...) {
		return false
	}
	p.advance()
	return true
}

// expect consumes the current token if it is of the expected type,
// otherwise it reports message and bails out of the current declaration.
func (p *parser) expect(kind lexer.TokenType, message string) lexer.Token {
	if p.check(kind) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

func (p *parser) errorAt(tok lexer.Token, message string) bailout {
	if p.errs != nil {
		p.errs.ErrorAt(tok, message)
	}
	return bailout{}
}

// synchronize discards tokens until a likely statement boundary.
func (p *parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == lexer.TokSemicolon {
			return
		}
		if p.peek().Type.IsOneOf(syncAnchors...) {
			return
		}
		p.advance()
	}
}
