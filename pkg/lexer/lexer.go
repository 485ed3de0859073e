// Package lexer scans a WHERE clause into the token stream pkg/whereeval's
// parser consumes. Structured after a classic Peek/Next scanner: callers
// pull one token.Item at a time and may look one token ahead.
package lexer

import "github.com/arjunc/tinysql/pkg/token"

// Lexer tokenizes a single expression string.
type Lexer struct {
	input  string
	pos    int
	item   token.Item
	peeked bool
}

// New returns a Lexer scanning input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token, consuming it.
func (l *Lexer) Next() token.Item {
	if l.peeked {
		l.peeked = false
		return l.item
	}
	l.item = l.scan()
	return l.item
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() token.Item {
	if !l.peeked {
		l.item = l.scan()
		l.peeked = true
	}
	return l.item
}

func (l *Lexer) scan() token.Item {
	l.skipWhitespace()
	start := l.pos

	if l.pos >= len(l.input) {
		return token.Item{Kind: token.EOF, Pos: token.Pos(start)}
	}

	ch := l.input[l.pos]
	switch {
	case ch == '(':
		l.pos++
		return l.item1(token.LPAREN, start)
	case ch == ')':
		l.pos++
		return l.item1(token.RPAREN, start)
	case ch == '=':
		l.pos++
		return l.item1(token.EQ, start)
	case ch == '<':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return token.Item{Kind: token.LTE, Text: "<=", Pos: token.Pos(start)}
		}
		if l.peekByte() == '>' {
			l.pos++
			return token.Item{Kind: token.NEQ, Text: "<>", Pos: token.Pos(start)}
		}
		return l.item1(token.LT, start)
	case ch == '>':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return token.Item{Kind: token.GTE, Text: ">=", Pos: token.Pos(start)}
		}
		return l.item1(token.GT, start)
	case ch == '!':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return token.Item{Kind: token.NEQ, Text: "!=", Pos: token.Pos(start)}
		}
		return token.Item{Kind: token.ILLEGAL, Text: "!", Pos: token.Pos(start)}
	case ch == '\'':
		return l.scanString(start)
	case isDigit(ch):
		return l.scanNumber(start)
	case isIdentStart(ch):
		return l.scanIdent(start)
	default:
		l.pos++
		return token.Item{Kind: token.ILLEGAL, Text: string(ch), Pos: token.Pos(start)}
	}
}

func (l *Lexer) item1(k token.Kind, start int) token.Item {
	return token.Item{Kind: k, Text: l.input[start:l.pos], Pos: token.Pos(start)}
}

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) scanString(start int) token.Item {
	l.pos++ // opening quote
	for l.pos < len(l.input) && l.input[l.pos] != '\'' {
		l.pos++
	}
	if l.pos >= len(l.input) {
		return token.Item{Kind: token.ILLEGAL, Text: l.input[start:l.pos], Pos: token.Pos(start)}
	}
	text := l.input[start+1 : l.pos]
	l.pos++ // closing quote
	return token.Item{Kind: token.STRING, Text: text, Pos: token.Pos(start)}
}

func (l *Lexer) scanNumber(start int) token.Item {
	isFloat := false
	for l.pos < len(l.input) && (isDigit(l.input[l.pos]) || l.input[l.pos] == '.') {
		if l.input[l.pos] == '.' {
			isFloat = true
		}
		l.pos++
	}
	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return token.Item{Kind: kind, Text: l.input[start:l.pos], Pos: token.Pos(start)}
}

func (l *Lexer) scanIdent(start int) token.Item {
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]
	return token.Item{Kind: token.Lookup(text), Text: text, Pos: token.Pos(start)}
}

func isSpace(c byte) bool      { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentPart(c byte) bool  { return isIdentStart(c) || isDigit(c) }
