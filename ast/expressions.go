package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.creack.net/benglang/lexer"
)

// infLiteral is the shortest digit string exceeding math.MaxFloat64.
var infLiteral = "1" + strings.Repeat("0", 309)

// LiteralExpr holds nil, a bool, a float64 or a string.
type LiteralExpr struct {
	Value any
}

func (LiteralExpr) expr() {}

func (l LiteralExpr) Dump() string {
	switch v := l.Value.(type) {
	case nil:
		return lexer.Spelling(lexer.TokNil)
	case bool:
		if v {
			return lexer.Spelling(lexer.TokTrue)
		}
		return lexer.Spelling(lexer.TokFalse)
	case float64:
		if math.IsInf(v, 1) {
			// Literals too large for a float64 scan as +Inf; this parses back to it.
			return infLiteral
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return `"` + v + `"`
	default:
		return fmt.Sprintf("%v", v)
	}
}

type VariableExpr struct {
	Name lexer.Token
}

func (VariableExpr) expr() {}

func (v VariableExpr) Dump() string { return v.Name.Value }

type AssignExpr struct {
	Name  lexer.Token
	Value Expr
}

func (AssignExpr) expr() {}

func (a AssignExpr) Dump() string {
	return fmt.Sprintf("%s = %s", a.Name.Value, a.Value.Dump())
}

// LogicalExpr is a short-circuiting "and" or "or".
type LogicalExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (LogicalExpr) expr() {}

func (l LogicalExpr) Dump() string {
	return fmt.Sprintf("%s %s %s", l.Left.Dump(), l.Operator.Value, l.Right.Dump())
}

type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (BinaryExpr) expr() {}

func (b BinaryExpr) Dump() string {
	return fmt.Sprintf("%s %s %s", b.Left.Dump(), b.Operator.Value, b.Right.Dump())
}

type UnaryExpr struct {
	Operator lexer.Token
	Right    Expr
}

func (UnaryExpr) expr() {}

func (u UnaryExpr) Dump() string {
	return u.Operator.Value + u.Right.Dump()
}

// CallExpr keeps the closing parenthesis to locate runtime errors.
type CallExpr struct {
	Callee    Expr
	Paren     lexer.Token
	Arguments []Expr
}

func (CallExpr) expr() {}

func (c CallExpr) Dump() string {
	args := make([]string, 0, len(c.Arguments))
	for _, arg := range c.Arguments {
		args = append(args, arg.Dump())
	}
	return fmt.Sprintf("%s(%s)", c.Callee.Dump(), strings.Join(args, ", "))
}

type GroupingExpr struct {
	Expression Expr
}

func (GroupingExpr) expr() {}

func (g GroupingExpr) Dump() string {
	return "(" + g.Expression.Dump() + ")"
}
