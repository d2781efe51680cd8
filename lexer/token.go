package lexer

import (
	"fmt"
	"slices"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	// Single-character tokens.
	TokLeftParen TokenType = iota
	TokRightParen
	TokLeftBrace
	TokRightBrace
	TokComma
	TokDot
	TokMinus
	TokPlus
	TokSemicolon
	TokSlash
	TokStar

	// One or two character tokens.
	TokBang
	TokBangEqual
	TokEqual
	TokEqualEqual
	TokGreater
	TokGreaterEqual
	TokLess
	TokLessEqual

	// Literals.
	TokIdentifier
	TokString
	TokNumber

	// Keywords.
	TokAnd
	TokClass
	TokElse
	TokFalse
	TokFun
	TokFor
	TokIf
	TokNil
	TokOr
	TokPrint
	TokReturn
	TokSuper
	TokThis
	TokTrue
	TokVar
	TokWhile

	TokEOF

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	if s, ok := tokenTypeStrings[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokLeftParen:  "LEFT_PAREN",
	TokRightParen: "RIGHT_PAREN",
	TokLeftBrace:  "LEFT_BRACE",
	TokRightBrace: "RIGHT_BRACE",
	TokComma:      "COMMA",
	TokDot:        "DOT",
	TokMinus:      "MINUS",
	TokPlus:       "PLUS",
	TokSemicolon:  "SEMICOLON",
	TokSlash:      "SLASH",
	TokStar:       "STAR",

	TokBang:         "BANG",
	TokBangEqual:    "BANG_EQUAL",
	TokEqual:        "EQUAL",
	TokEqualEqual:   "EQUAL_EQUAL",
	TokGreater:      "GREATER",
	TokGreaterEqual: "GREATER_EQUAL",
	TokLess:         "LESS",
	TokLessEqual:    "LESS_EQUAL",

	TokIdentifier: "IDENTIFIER",
	TokString:     "STRING",
	TokNumber:     "NUMBER",

	TokAnd:    "AND",
	TokClass:  "CLASS",
	TokElse:   "ELSE",
	TokFalse:  "FALSE",
	TokFun:    "FUN",
	TokFor:    "FOR",
	TokIf:     "IF",
	TokNil:    "NIL",
	TokOr:     "OR",
	TokPrint:  "PRINT",
	TokReturn: "RETURN",
	TokSuper:  "SUPER",
	TokThis:   "THIS",
	TokTrue:   "TRUE",
	TokVar:    "VAR",
	TokWhile:  "WHILE",

	TokEOF: "EOF",
}

// keywords maps reserved spellings to their token type.
// Never written after package initialization.
var keywords = map[string]TokenType{
	"and":      TokAnd,
	"class":    TokClass,
	"nahole":   TokElse,
	"bhul":     TokFalse,
	"jokhon":   TokFor,
	"kormo":    TokFun,
	"jodi":     TokIf,
	"nil":      TokNil,
	"or":       TokOr,
	"lekho":    TokPrint,
	"return":   TokReturn,
	"super":    TokSuper,
	"this":     TokThis,
	"thik":     TokTrue,
	"dhoro":    TokVar,
	"jotokhon": TokWhile,
}

var spellings = func() map[TokenType]string {
	m := make(map[TokenType]string, len(keywords))
	for word, tt := range keywords {
		m[tt] = word
	}
	return m
}()

// LookupKeyword returns the keyword type for the given text, if it is reserved.
func LookupKeyword(text string) (TokenType, bool) {
	tt, ok := keywords[text]
	return tt, ok
}

// Spelling returns the reserved word for a keyword token type.
func Spelling(tt TokenType) string {
	return spellings[tt]
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Value   string // Raw source text.
	Literal any    // float64 for numbers, string for strings, nil otherwise.
	Line    int
}

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case len(t.Value) > 16:
		return fmt.Sprintf("%s[%d]: %.16q", t.Type, t.Line, t.Value)
	}
	return fmt.Sprintf("%s[%d]: %q", t.Type, t.Line, t.Value)
}
