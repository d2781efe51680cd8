// Package ast declares the syntax tree produced by the parser.
//
// Expressions and statements are closed sets: every variant is declared in this
// package and consumers are expected to use exhaustive type switches over them.
// Nodes are values and are never modified once built.
package ast

import "strings"

// Expr is any expression node.
type Expr interface {
	Dump() string
	expr()
}

// Stmt is any statement node.
type Stmt interface {
	Dump() string
	format(p *printer)
}

// Program represents the top-level statement sequence of a source unit.
type Program struct {
	Stmts []Stmt
}

// Dump renders the program back to source, one top-level statement per line.
// Parsing the output yields a structurally identical program.
func (p Program) Dump() string {
	pr := &printer{}
	for _, stmt := range p.Stmts {
		stmt.format(pr)
		pr.WriteByte('\n')
	}
	return pr.String()
}

// printer renders statements with tab indentation for nested blocks.
type printer struct {
	strings.Builder
	depth int
}

func (p *printer) newline() {
	p.WriteByte('\n')
	for range p.depth {
		p.WriteByte('\t')
	}
}

func dumpStmt(s Stmt) string {
	p := &printer{}
	s.format(p)
	return p.String()
}
