package parser

import (
	"go.creack.net/benglang/lexer"
)

// Operator sets of the left-associative binary precedence levels, lowest first.
var (
	equalityOps   = []lexer.TokenType{lexer.TokBangEqual, lexer.TokEqualEqual}
	comparisonOps = []lexer.TokenType{lexer.TokGreater, lexer.TokGreaterEqual, lexer.TokLess, lexer.TokLessEqual}
	termOps       = []lexer.TokenType{lexer.TokMinus, lexer.TokPlus}
	factorOps     = []lexer.TokenType{lexer.TokSlash, lexer.TokStar}
	unaryOps      = []lexer.TokenType{lexer.TokBang, lexer.TokMinus}
)

// syncAnchors are the tokens that start a statement. Recovery stops in front of them.
// class, kormo and return have no statement rules yet but are kept as anchors.
var syncAnchors = []lexer.TokenType{
	lexer.TokClass,
	lexer.TokFun,
	lexer.TokVar,
	lexer.TokFor,
	lexer.TokIf,
	lexer.TokWhile,
	lexer.TokPrint,
	lexer.TokReturn,
}
