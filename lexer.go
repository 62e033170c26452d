// lexer.go — hand-written scanner for Lox source text.
package lox

import (
	"fmt"
	"strconv"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota
	ILLEGAL

	// Punctuation
	LPAREN    // "("
	RPAREN    // ")"
	LBRACE    // "{"
	RBRACE    // "}"
	COMMA     // ","
	DOT       // "."
	SEMICOLON // ";"

	// Operators
	PLUS
	MINUS
	STAR
	SLASH
	BANG       // "!"
	ASSIGN     // "="
	EQ         // "=="
	NEQ        // "!="
	LESS       // "<"
	LESS_EQ    // "<="
	GREATER    // ">"
	GREATER_EQ // ">="

	// Literals & identifiers
	ID
	STRING
	NUMBER

	// Keywords
	AND
	CLASS
	ELSE
	FALSE
	FOR
	FUN
	IF
	NIL
	OR
	PRINT
	RETURN
	SUPER
	THIS
	TRUE
	VAR
	WHILE
)

// Token is a lexical token with optional literal value.
type Token struct {
	Type    TokenType
	Lexeme  string      // raw text slice
	Literal interface{} // parsed value for literals (float64 or string)
	Line    int         // 1-based
	Col     int         // 0-based
}

var keywords = map[string]TokenType{
	"and":    AND,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// Lexer scans a Lox source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

// Scan tokenizes the entire source, ending with an EOF token.
// On the first lexical error it stops and returns a *LexError.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		l.skipWhitespaceAndComments()
		if l.isAtEnd() {
			break
		}
		l.start = l.cur
		l.tokStartLine = l.line
		l.tokStartCol = l.col
		if err := l.scanToken(); err != nil {
			return nil, err
		}
	}
	l.start = l.cur
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.addToken(EOF, nil)
	return l.tokens, nil
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	idx := l.cur + n
	if idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

// matchByte consumes the next byte iff it equals want.
func (l *Lexer) matchByte(want byte) bool {
	if ch, ok := l.peek(); ok && ch == want {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) addToken(tt TokenType, lit interface{}) Token {
	lex := l.src[l.start:l.cur]
	tok := Token{
		Type:    tt,
		Lexeme:  lex,
		Literal: lit,
		Line:    l.tokStartLine,
		Col:     l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
		case '/':
			next, ok := l.peekN(1)
			if !ok {
				return
			}
			switch next {
			case '/':
				for {
					ch, ok := l.peek()
					if !ok || ch == '\n' {
						break
					}
					l.advance()
				}
			case '*':
				l.advance() // '/'
				l.advance() // '*'
				for !l.isAtEnd() {
					ch, _ := l.advance()
					if ch == '*' {
						if n, ok := l.peek(); ok && n == '/' {
							l.advance()
							break
						}
					}
				}
			default:
				return
			}
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }
func isAlphaNum(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

func (l *Lexer) scanToken() error {
	ch, _ := l.advance()
	switch ch {
	case '(':
		l.addToken(LPAREN, nil)
	case ')':
		l.addToken(RPAREN, nil)
	case '{':
		l.addToken(LBRACE, nil)
	case '}':
		l.addToken(RBRACE, nil)
	case ',':
		l.addToken(COMMA, nil)
	case '.':
		l.addToken(DOT, nil)
	case ';':
		l.addToken(SEMICOLON, nil)
	case '+':
		l.addToken(PLUS, nil)
	case '-':
		l.addToken(MINUS, nil)
	case '*':
		l.addToken(STAR, nil)
	case '/':
		l.addToken(SLASH, nil)
	case '!':
		if l.matchByte('=') {
			l.addToken(NEQ, nil)
		} else {
			l.addToken(BANG, nil)
		}
	case '=':
		if l.matchByte('=') {
			l.addToken(EQ, nil)
		} else {
			l.addToken(ASSIGN, nil)
		}
	case '<':
		if l.matchByte('=') {
			l.addToken(LESS_EQ, nil)
		} else {
			l.addToken(LESS, nil)
		}
	case '>':
		if l.matchByte('=') {
			l.addToken(GREATER_EQ, nil)
		} else {
			l.addToken(GREATER, nil)
		}
	case '"':
		return l.scanString()
	default:
		switch {
		case isDigit(ch):
			return l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
		default:
			return l.err(fmt.Sprintf("unexpected character %q", string(ch)))
		}
	}
	return nil
}

// scanString consumes a double-quoted string literal. Lox strings have no
// escape sequences; newlines inside the literal are kept verbatim.
func (l *Lexer) scanString() error {
	for {
		ch, ok := l.advance()
		if !ok {
			return l.err("unterminated string")
		}
		if ch == '"' {
			break
		}
	}
	val := l.src[l.start+1 : l.cur-1]
	l.addToken(STRING, val)
	return nil
}

// scanNumber consumes an integer or decimal literal. All Lox numbers are
// double-precision floats.
func (l *Lexer) scanNumber() error {
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			break
		}
		l.advance()
	}
	// fractional part only when a digit follows the dot
	if ch, ok := l.peek(); ok && ch == '.' {
		if next, ok := l.peekN(1); ok && isDigit(next) {
			l.advance()
			for {
				ch, ok := l.peek()
				if !ok || !isDigit(ch) {
					break
				}
				l.advance()
			}
		}
	}
	lit := l.src[l.start:l.cur]
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return l.err(fmt.Sprintf("malformed number %q", lit))
	}
	l.addToken(NUMBER, f)
	return nil
}

func (l *Lexer) scanIdentifier() {
	for {
		ch, ok := l.peek()
		if !ok || !isAlphaNum(ch) {
			break
		}
		l.advance()
	}
	word := l.src[l.start:l.cur]
	if kw, ok := keywords[word]; ok {
		switch kw {
		case TRUE:
			l.addToken(kw, true)
		case FALSE:
			l.addToken(kw, false)
		default:
			l.addToken(kw, nil)
		}
		return
	}
	l.addToken(ID, nil)
}
