package parser

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/benglang/ast"
	"go.creack.net/benglang/diag"
	"go.creack.net/benglang/lexer"
)

func parse(t *testing.T, input string) ([]ast.Stmt, *diag.Handler) {
	t.Helper()

	h := diag.NewHandler(nil)
	stmts := Parse(lexer.Scan(input, h), h)
	return stmts, h
}

func parseValid(t *testing.T, input string) []ast.Stmt {
	t.Helper()

	stmts, h := parse(t, input)
	require.NoError(t, h.Err(), "parse %q", input)
	return stmts
}

func messages(h *diag.Handler) []string {
	var out []string
	for _, d := range h.Diagnostics() {
		out = append(out, d.Error())
	}
	return out
}

// lisp renders a node as a parenthesized prefix form, ignoring token positions.
func lisp(node any) string {
	join := func(head string, parts ...any) string {
		out := "(" + head
		for _, part := range parts {
			out += " " + lisp(part)
		}
		return out + ")"
	}

	switch n := node.(type) {
	case nil:
		return "<nil>"
	case ast.LiteralExpr:
		return n.Dump()
	case ast.VariableExpr:
		return n.Name.Value
	case ast.AssignExpr:
		return join("= "+n.Name.Value, n.Value)
	case ast.LogicalExpr:
		return join(n.Operator.Value, n.Left, n.Right)
	case ast.BinaryExpr:
		return join(n.Operator.Value, n.Left, n.Right)
	case ast.UnaryExpr:
		return join(n.Operator.Value, n.Right)
	case ast.CallExpr:
		parts := []any{n.Callee}
		for _, arg := range n.Arguments {
			parts = append(parts, arg)
		}
		return join("call", parts...)
	case ast.GroupingExpr:
		return join("group", n.Expression)
	case ast.ExpressionStmt:
		return join("expr", n.Expression)
	case ast.PrintStmt:
		return join("print", n.Expression)
	case ast.VarStmt:
		if n.Initializer == nil {
			return "(var " + n.Name.Value + ")"
		}
		return join("var "+n.Name.Value, n.Initializer)
	case ast.BlockStmt:
		parts := make([]any, 0, len(n.Stmts))
		for _, stmt := range n.Stmts {
			parts = append(parts, stmt)
		}
		return join("block", parts...)
	case ast.IfStmt:
		if n.Else == nil {
			return join("if", n.Condition, n.Then)
		}
		return join("if", n.Condition, n.Then, n.Else)
	case ast.WhileStmt:
		return join("while", n.Condition, n.Body)
	}
	return fmt.Sprintf("<unknown %T>", node)
}

func lispAll(stmts []ast.Stmt) []string {
	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, lisp(stmt))
	}
	return out
}

func tok(tt lexer.TokenType, value string) lexer.Token {
	return lexer.Token{Type: tt, Value: value, Line: 1}
}

func TestParserPrecedence(t *testing.T) {
	stmts := parseValid(t, "1 + 2 * 3;")

	expected := []ast.Stmt{
		ast.ExpressionStmt{
			Expression: ast.BinaryExpr{
				Left:     ast.LiteralExpr{Value: 1.0},
				Operator: tok(lexer.TokPlus, "+"),
				Right: ast.BinaryExpr{
					Left:     ast.LiteralExpr{Value: 2.0},
					Operator: tok(lexer.TokStar, "*"),
					Right:    ast.LiteralExpr{Value: 3.0},
				},
			},
		},
	}
	if !assert.Equal(t, expected, stmts) {
		t.Logf("diff: %s", strings.Join(pretty.Diff(expected, stmts), "\n"))
	}
}

func TestParserExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "1 - 2 - 3;", expected: "(expr (- (- 1 2) 3))"},
		{input: "(1 + 2) * 3;", expected: "(expr (* (group (+ 1 2)) 3))"},
		{input: "8 / 4 * 2;", expected: "(expr (* (/ 8 4) 2))"},
		{input: "1 < 2 == thik;", expected: "(expr (== (< 1 2) thik))"},
		{input: "a >= b != c <= d;", expected: "(expr (!= (>= a b) (<= c d)))"},
		{input: "a or b and c;", expected: "(expr (or a (and b c)))"},
		{input: "a and b or c and d;", expected: "(expr (or (and a b) (and c d)))"},
		{input: "a == b and c;", expected: "(expr (and (== a b) c))"},
		{input: "!!thik;", expected: "(expr (! (! thik)))"},
		{input: "- -1;", expected: "(expr (- (- 1)))"},
		{input: "-a * b;", expected: "(expr (* (- a) b))"},
		{input: "a = b = 3;", expected: "(expr (= a (= b 3)))"},
		{input: "a = b or c;", expected: "(expr (= a (or b c)))"},
		{input: "f();", expected: "(expr (call f))"},
		{input: "f(1, \"two\", nil)(bhul);", expected: "(expr (call (call f 1 \"two\" nil) bhul))"},
		{input: "-f(1);", expected: "(expr (- (call f 1)))"},
		{input: "f(a = 1);", expected: "(expr (call f (= a 1)))"},
		{input: "2.5 * x;", expected: "(expr (* 2.5 x))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmts := parseValid(t, tt.input)
			require.Len(t, stmts, 1)
			assert.Equal(t, tt.expected, lisp(stmts[0]))
		})
	}
}

func TestParserStatements(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "print",
			input:    `lekho "hello";`,
			expected: []string{`(print "hello")`},
		},
		{
			name:     "var without initializer",
			input:    "dhoro a;",
			expected: []string{"(var a)"},
		},
		{
			name:     "var with initializer",
			input:    "dhoro a = 1 + 2;",
			expected: []string{"(var a (+ 1 2))"},
		},
		{
			name:     "block",
			input:    "{ dhoro a = 1; { lekho a; } }",
			expected: []string{"(block (var a 1) (block (print a)))"},
		},
		{
			name:     "empty block",
			input:    "{}",
			expected: []string{"(block)"},
		},
		{
			name:     "while",
			input:    "jotokhon (a < 3) a = a + 1;",
			expected: []string{"(while (< a 3) (expr (= a (+ a 1))))"},
		},
		{
			name:     "if without else",
			input:    "jodi (a) lekho 1; lekho 2;",
			expected: []string{"(if a (print 1))", "(print 2)"},
		},
		{
			name:     "if with else",
			input:    "jodi (thik) lekho 1; nahole lekho 2;",
			expected: []string{"(if thik (print 1) (print 2))"},
		},
		{
			name:     "dangling else binds to the nearest if",
			input:    "jodi (a) jodi (b) lekho 1; nahole lekho 2;",
			expected: []string{"(if a (if b (print 1) (print 2)))"},
		},
		{
			name:     "else if chain",
			input:    "jodi (a) lekho 1; nahole jodi (b) lekho 2; nahole lekho 3;",
			expected: []string{"(if a (print 1) (if b (print 2) (print 3)))"},
		},
		{
			name:     "top level count",
			input:    "dhoro a = 1;\nlekho a;\na = 2;\n{ lekho a; }",
			expected: []string{"(var a 1)", "(print a)", "(expr (= a 2))", "(block (print a))"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, lispAll(parseValid(t, tt.input)))
		})
	}
}

func TestParserIfElseAttached(t *testing.T) {
	stmts := parseValid(t, "jodi (thik) lekho 1; nahole lekho 2;")
	require.Len(t, stmts, 1)

	ifStmt, ok := stmts[0].(ast.IfStmt)
	require.True(t, ok, "expected IfStmt, got %T", stmts[0])
	assert.Equal(t, ast.LiteralExpr{Value: true}, ifStmt.Condition)
	assert.Equal(t, ast.PrintStmt{Expression: ast.LiteralExpr{Value: 1.0}}, ifStmt.Then)
	assert.Equal(t, ast.PrintStmt{Expression: ast.LiteralExpr{Value: 2.0}}, ifStmt.Else)
}

func TestParserForDesugaring(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "all clauses",
			input:    "jokhon (dhoro i = 0; i < 3; i = i + 1) lekho i;",
			expected: "(block (var i 0) (while (< i 3) (block (print i) (expr (= i (+ i 1))))))",
		},
		{
			name:     "expression initializer",
			input:    "jokhon (i = 0; i < 3;) lekho i;",
			expected: "(block (expr (= i 0)) (while (< i 3) (print i)))",
		},
		{
			name:     "no clauses",
			input:    "jokhon (;;) lekho 1;",
			expected: "(while thik (print 1))",
		},
		{
			name:     "increment only",
			input:    "jokhon (;; i = i + 1) { lekho i; }",
			expected: "(while thik (block (block (print i)) (expr (= i (+ i 1)))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := parseValid(t, tt.input)
			require.Len(t, stmts, 1)
			assert.Equal(t, tt.expected, lisp(stmts[0]))
		})
	}

	// Structural check of the first case.
	stmts := parseValid(t, "jokhon (dhoro i = 0; i < 3; i = i + 1) lekho i;")
	block, ok := stmts[0].(ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	assert.IsType(t, ast.VarStmt{}, block.Stmts[0])
	loop, ok := block.Stmts[1].(ast.WhileStmt)
	require.True(t, ok)
	body, ok := loop.Body.(ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, body.Stmts, 2)
	assert.IsType(t, ast.PrintStmt{}, body.Stmts[0])
	assert.IsType(t, ast.ExpressionStmt{}, body.Stmts[1])
}

func TestParserErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		errors   []string
	}{
		{
			name:   "expect expression",
			input:  "lekho ;",
			errors: []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:     "invalid assignment target is not fatal",
			input:    "a + b = c;\nlekho 1;",
			expected: []string{"(expr (+ a b))", "(print 1)"},
			errors:   []string{"[line 1] Error at '=': Invalid assignment target."},
		},
		{
			name:     "grouping is not an assignment target",
			input:    "(a) = 1;",
			expected: []string{"(expr (group a))"},
			errors:   []string{"[line 1] Error at '=': Invalid assignment target."},
		},
		{
			name:     "missing semicolon discards up to the next boundary",
			input:    "lekho 1;\nlekho 2\nlekho 3;\nlekho 4;",
			expected: []string{"(print 1)", "(print 4)"},
			errors:   []string{"[line 3] Error at 'lekho': Expect ';' after value."},
		},
		{
			name:   "missing semicolon before the next statement loses both",
			input:  "lekho 1\nlekho 2;",
			errors: []string{"[line 2] Error at 'lekho': Expect ';' after value."},
		},
		{
			name:     "recovery after semicolon",
			input:    "lekho (1;\ndhoro x = 2;",
			expected: []string{"(var x 2)"},
			errors:   []string{"[line 1] Error at ';': Expect ')' after expression."},
		},
		{
			name:     "recovery at a statement keyword",
			input:    "lekho 1 +\njotokhon (thik) lekho 2;",
			expected: []string{"(print 2)"},
			errors:   []string{"[line 2] Error at 'jotokhon': Expect expression."},
		},
		{
			name:   "missing variable name",
			input:  "dhoro 1 = 2;",
			errors: []string{"[line 1] Error at '1': Expect variable name."},
		},
		{
			name:   "missing closing brace",
			input:  "{ lekho 1;",
			errors: []string{"[line 1] Error at end: Expect '}' after block."},
		},
		{
			name:     "error inside a block keeps the block",
			input:    "{ lekho ; lekho 2; }",
			expected: []string{"(block (print 2))"},
			errors:   []string{"[line 1] Error at ';': Expect expression."},
		},
		{
			name:     "if without parenthesis resumes at the next keyword",
			input:    "jodi thik lekho 1;",
			expected: []string{"(print 1)"},
			errors:   []string{"[line 1] Error at 'thik': Expect '(' after 'jodi'."},
		},
		{
			name:   "unclosed call",
			input:  "f(1, 2;",
			errors: []string{"[line 1] Error at ';': Expect ')' after arguments."},
		},
		{
			name:     "reserved keywords without a statement rule",
			input:    "return 1;\nkormo f;\nlekho 3;",
			expected: []string{"(print 3)"},
			errors: []string{
				"[line 1] Error at 'return': Expect expression.",
				"[line 2] Error at 'kormo': Expect expression.",
			},
		},
		{
			name:     "lexical and syntax errors are collected together",
			input:    "dhoro a = @1;\nlekho \"open",
			expected: []string{"(var a 1)"},
			errors: []string{
				"[line 1] Error: Unexpected character.",
				"[line 2] Error: Unterminated string.",
				"[line 2] Error at end: Expect expression.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, h := parse(t, tt.input)
			expected := tt.expected
			if expected == nil {
				expected = []string{}
			}
			assert.Equal(t, expected, lispAll(stmts))
			assert.Equal(t, tt.errors, messages(h))
		})
	}
}

func callSource(n int) string {
	args := make([]string, n)
	for i := range args {
		args[i] = "a"
	}
	return "f(" + strings.Join(args, ", ") + ");"
}

func TestParserArgumentLimit(t *testing.T) {
	stmts, h := parse(t, callSource(MaxArguments))
	require.NoError(t, h.Err())
	require.Len(t, stmts, 1)
	call := stmts[0].(ast.ExpressionStmt).Expression.(ast.CallExpr)
	assert.Len(t, call.Arguments, MaxArguments)
	assert.Equal(t, lexer.TokRightParen, call.Paren.Type)

	stmts, h = parse(t, callSource(MaxArguments+1))
	assert.Equal(t, []string{"[line 1] Error at 'a': Can't have more than 255 arguments."}, messages(h))
	require.Len(t, stmts, 1)
	call = stmts[0].(ast.ExpressionStmt).Expression.(ast.CallExpr)
	assert.Len(t, call.Arguments, MaxArguments+1)
}

func TestParserWithoutEOF(t *testing.T) {
	assert.Empty(t, Parse(nil, nil))

	tokens := []lexer.Token{
		{Type: lexer.TokPrint, Value: "lekho", Line: 2},
		{Type: lexer.TokNumber, Value: "1", Literal: 1.0, Line: 2},
	}
	h := diag.NewHandler(nil)
	assert.Empty(t, Parse(tokens, h))
	assert.Equal(t, []string{"[line 2] Error at end: Expect ';' after value."}, messages(h))
	assert.Len(t, tokens, 2, "input must not be modified")
}

func TestParserNilReporter(t *testing.T) {
	stmts := Parse(lexer.Scan("lekho ; lekho 1;", nil), nil)
	assert.Equal(t, []string{"(print 1)"}, lispAll(stmts))
}

func TestParserLines(t *testing.T) {
	stmts := parseValid(t, "dhoro a\n=\n1;\n\nlekho a;")
	require.Len(t, stmts, 2)
	assert.Equal(t, 1, stmts[0].(ast.VarStmt).Name.Line)
	assert.Equal(t, 5, stmts[1].(ast.PrintStmt).Expression.(ast.VariableExpr).Name.Line)
}

const roundTripSource = `// Every construct of the grammar.
dhoro a = 1;
dhoro b;
dhoro s = "multi
line";
a = b = (a + 2) * -3 / 4 - !thik;
lekho a == b or a != b and a <= 2 or a >= 3 or a < 1 or a > 0;
{
	dhoro inner = nil;
	{ lekho bhul; lekho s; }
	{}
}
jodi (a) lekho 1; nahole jodi (b) { lekho 2; } nahole lekho 3;
jodi (a) jodi (b) lekho 4; nahole lekho 5;
jotokhon (a < 10) a = a + 1;
jokhon (dhoro i = 0; i < 3; i = i + 1) { lekho i; }
jokhon (;;) lekho f(1, g(2)(3), "x");
clock();
`

func TestParserRoundTrip(t *testing.T) {
	stmts := parseValid(t, roundTripSource)
	require.Len(t, stmts, 12)

	dumped := ast.Program{Stmts: stmts}.Dump()
	reparsed := parseValid(t, dumped)

	if !assert.Equal(t, lispAll(stmts), lispAll(reparsed)) {
		t.Logf("dump:\n%s", dumped)
	}
	assert.Equal(t, dumped, ast.Program{Stmts: reparsed}.Dump(), "printing is a fixed point")
}

func TestParserRoundTripOverflowingNumber(t *testing.T) {
	stmts := parseValid(t, "lekho 1"+strings.Repeat("0", 400)+";")
	require.Len(t, stmts, 1)
	require.Equal(t, ast.LiteralExpr{Value: math.Inf(1)}, stmts[0].(ast.PrintStmt).Expression)

	dumped := ast.Program{Stmts: stmts}.Dump()
	reparsed := parseValid(t, dumped)
	assert.Equal(t, lispAll(stmts), lispAll(reparsed))
	assert.Equal(t, ast.LiteralExpr{Value: math.Inf(1)}, reparsed[0].(ast.PrintStmt).Expression)
}

func TestParseSource(t *testing.T) {
	h := diag.NewHandler(nil)
	prog := ParseSource("lekho 1 + 2;", h)
	require.NoError(t, h.Err())
	assert.Equal(t, "lekho 1 + 2;\n", prog.Dump())
}
