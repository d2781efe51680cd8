package lexer

import "strconv"

type stateFn func(*Lexer) stateFn

// List of runes that just advance one and emit a token.
var singles = map[rune]TokenType{
	'(': TokLeftParen,
	')': TokRightParen,
	'{': TokLeftBrace,
	'}': TokRightBrace,
	',': TokComma,
	'.': TokDot,
	'-': TokMinus,
	'+': TokPlus,
	';': TokSemicolon,
	'*': TokStar,
}

// Runes that form a two-character operator when followed by '='.
var doubles = map[rune][2]TokenType{
	'!': {TokBang, TokBangEqual},
	'=': {TokEqual, TokEqualEqual},
	'<': {TokLess, TokLessEqual},
	'>': {TokGreater, TokGreaterEqual},
}

func lexText(l *Lexer) stateFn {
	if l.atEOF() {
		l.tokens = append(l.tokens, Token{Type: TokEOF, Line: l.line})
		return nil
	}

	l.start = l.pos
	switch r := l.next(); {
	case r == ' ' || r == '\r' || r == '\t' || r == '\n':
		return lexText
	case r == '/':
		if l.accept('/') {
			return lexComment
		}
		return l.emit(TokSlash)
	case r == '"':
		return lexString
	case isDigit(r):
		return lexNumber
	case isAlpha(r):
		return lexIdentifier
	default:
		if tok, ok := singles[r]; ok {
			return l.emit(tok)
		}
		if pair, ok := doubles[r]; ok {
			if l.accept('=') {
				return l.emit(pair[1])
			}
			return l.emit(pair[0])
		}
		return l.errorf("Unexpected character.")
	}
}

// lexComment skips up to, but not including, the end of line.
func lexComment(l *Lexer) stateFn {
	l.acceptRun(func(r rune) bool { return r != '\n' })
	return lexText
}

func lexString(l *Lexer) stateFn {
	l.acceptRun(func(r rune) bool { return r != '"' })
	if l.atEOF() {
		return l.errorf("Unterminated string.")
	}
	l.next() // Closing quote.

	// Trim the surrounding quotes.
	value := l.input[l.start+1 : l.pos-1]
	return l.emitLiteral(TokString, value)
}

func lexNumber(l *Lexer) stateFn {
	l.acceptRun(isDigit)

	// The dot belongs to the number only when a digit follows.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.next()
		l.acceptRun(isDigit)
	}

	// Digits only: the one possible error is ErrRange, which still yields ±Inf.
	number, _ := strconv.ParseFloat(l.input[l.start:l.pos], 64)
	return l.emitLiteral(TokNumber, number)
}

func lexIdentifier(l *Lexer) stateFn {
	l.acceptRun(isAlphaNumeric)
	if tt, ok := LookupKeyword(l.input[l.start:l.pos]); ok {
		return l.emit(tt)
	}
	return l.emit(TokIdentifier)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
