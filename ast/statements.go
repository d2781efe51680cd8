package ast

import (
	"go.creack.net/benglang/lexer"
)

type ExpressionStmt struct {
	Expression Expr
}

func (e ExpressionStmt) Dump() string { return dumpStmt(e) }

func (e ExpressionStmt) format(p *printer) {
	p.WriteString(e.Expression.Dump())
	p.WriteByte(';')
}

type PrintStmt struct {
	Expression Expr
}

func (s PrintStmt) Dump() string { return dumpStmt(s) }

func (s PrintStmt) format(p *printer) {
	p.WriteString(lexer.Spelling(lexer.TokPrint))
	p.WriteByte(' ')
	p.WriteString(s.Expression.Dump())
	p.WriteByte(';')
}

// VarStmt declares a variable. Initializer is nil when absent.
type VarStmt struct {
	Name        lexer.Token
	Initializer Expr
}

func (v VarStmt) Dump() string { return dumpStmt(v) }

func (v VarStmt) format(p *printer) {
	p.WriteString(lexer.Spelling(lexer.TokVar))
	p.WriteByte(' ')
	p.WriteString(v.Name.Value)
	if v.Initializer != nil {
		p.WriteString(" = ")
		p.WriteString(v.Initializer.Dump())
	}
	p.WriteByte(';')
}

type BlockStmt struct {
	Stmts []Stmt
}

func (b BlockStmt) Dump() string { return dumpStmt(b) }

func (b BlockStmt) format(p *printer) {
	if len(b.Stmts) == 0 {
		p.WriteString("{}")
		return
	}
	p.WriteByte('{')
	p.depth++
	for _, stmt := range b.Stmts {
		p.newline()
		stmt.format(p)
	}
	p.depth--
	p.newline()
	p.WriteByte('}')
}

// IfStmt is a conditional. Else is nil when there is no else branch.
type IfStmt struct {
	Condition Expr
	Then      Stmt
	Else      Stmt
}

func (i IfStmt) Dump() string { return dumpStmt(i) }

func (i IfStmt) format(p *printer) {
	p.WriteString(lexer.Spelling(lexer.TokIf))
	p.WriteString(" (")
	p.WriteString(i.Condition.Dump())
	p.WriteString(") ")
	i.Then.format(p)
	if i.Else != nil {
		p.WriteByte(' ')
		p.WriteString(lexer.Spelling(lexer.TokElse))
		p.WriteByte(' ')
		i.Else.format(p)
	}
}

// WhileStmt is the only loop construct; "for" loops are rewritten into it.
type WhileStmt struct {
	Condition Expr
	Body      Stmt
}

func (w WhileStmt) Dump() string { return dumpStmt(w) }

func (w WhileStmt) format(p *printer) {
	p.WriteString(lexer.Spelling(lexer.TokWhile))
	p.WriteString(" (")
	p.WriteString(w.Condition.Dump())
	p.WriteString(") ")
	w.Body.format(p)
}
