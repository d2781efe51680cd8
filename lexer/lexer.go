// Package lexer provides the scanner for the benglang language.
package lexer

import (
	"unicode/utf8"
)

// ErrorReporter receives lexical errors. Reporting never stops the scan.
type ErrorReporter interface {
	Error(line int, message string)
}

type Lexer struct {
	input string

	tokens []Token

	pos   int // Current position in input.
	start int // Position of the start of the current token.
	line  int // Current line in input.

	errs ErrorReporter
}

// New creates a new Lexer for the given input.
func New(input string, errs ErrorReporter) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		errs:  errs,
	}
}

// Scan is a shorthand for New(input, errs).Tokens().
func Scan(input string, errs ErrorReporter) []Token {
	return New(input, errs).Tokens()
}

// Tokens runs the lexer over the whole input. The result always ends with a TokEOF token.
func (l *Lexer) Tokens() []Token {
	if l.tokens != nil {
		return l.tokens
	}
	l.tokens = []Token{}
	for state := lexText; state != nil; {
		state = state(l)
	}
	return l.tokens
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) next() rune {
	if l.atEOF() {
		return 0
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *Lexer) peek() rune {
	if l.atEOF() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

func (l *Lexer) peekNext() rune {
	if l.atEOF() {
		return 0
	}
	_, n := utf8.DecodeRuneInString(l.input[l.pos:])
	if l.pos+n >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos+n:])
	return r
}

// accept consumes the next rune if it is the expected one.
func (l *Lexer) accept(expected rune) bool {
	if l.atEOF() || l.peek() != expected {
		return false
	}
	l.next()
	return true
}

func (l *Lexer) acceptRun(valid func(rune) bool) {
	for !l.atEOF() && valid(l.peek()) {
		l.next()
	}
}

func (l *Lexer) emitLiteral(tt TokenType, literal any) stateFn {
	l.tokens = append(l.tokens, Token{
		Type:    tt,
		Value:   l.input[l.start:l.pos],
		Literal: literal,
		Line:    l.line,
	})
	return lexText
}

func (l *Lexer) emit(tt TokenType) stateFn {
	return l.emitLiteral(tt, nil)
}

func (l *Lexer) errorf(message string) stateFn {
	if l.errs != nil {
		l.errs.Error(l.line, message)
	}
	return lexText
}
