package lexer

import (
	"testing"

	"github.com/arjunc/tinysql/pkg/token"
)

func collect(input string) []token.Item {
	l := New(input)
	var items []token.Item
	for {
		it := l.Next()
		items = append(items, it)
		if it.Kind == token.EOF {
			return items
		}
	}
}

func TestLexerScansOperators(t *testing.T) {
	items := collect("= <> < <= > >= !=")
	want := []token.Kind{token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE, token.NEQ, token.EOF}
	if len(items) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(items), len(want))
	}
	for i, k := range want {
		if items[i].Kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, items[i].Kind, k)
		}
	}
}

func TestLexerScansLiteralsAndKeywords(t *testing.T) {
	items := collect("age = 30 AND name = 'bob' OR active = TRUE")
	var kinds []token.Kind
	for _, it := range items {
		kinds = append(kinds, it.Kind)
	}
	want := []token.Kind{
		token.IDENT, token.EQ, token.INT, token.AND,
		token.IDENT, token.EQ, token.STRING, token.OR,
		token.IDENT, token.EQ, token.TRUE, token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(kinds), kinds, len(want))
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("token %d: kind = %v, want %v", i, kinds[i], k)
		}
	}
}

func TestLexerScansFloatAndParens(t *testing.T) {
	items := collect("(price <= 9.99)")
	want := []token.Kind{token.LPAREN, token.IDENT, token.LTE, token.FLOAT, token.RPAREN, token.EOF}
	for i, k := range want {
		if items[i].Kind != k {
			t.Fatalf("token %d: kind = %v, want %v", i, items[i].Kind, k)
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	l := New("age = 1")
	peeked := l.Peek()
	next := l.Next()
	if peeked.Kind != next.Kind || peeked.Text != next.Text {
		t.Fatalf("Peek() = %+v did not match following Next() = %+v", peeked, next)
	}
}

func TestLexerUnterminatedStringIsIllegal(t *testing.T) {
	items := collect("name = 'oops")
	last := items[len(items)-2] // before EOF
	if last.Kind != token.ILLEGAL {
		t.Fatalf("expected ILLEGAL for unterminated string, got %v", last.Kind)
	}
}

func TestTokenLookupIsCaseInsensitive(t *testing.T) {
	if token.Lookup("AND") != token.AND || token.Lookup("and") != token.AND {
		t.Error("expected AND lookup to be case-insensitive")
	}
	if token.Lookup("columnname") != token.IDENT {
		t.Error("expected non-keyword to resolve as IDENT")
	}
}

func TestTokenKindString(t *testing.T) {
	if token.EQ.String() != "=" {
		t.Errorf("EQ.String() = %q, want =", token.EQ.String())
	}
	if token.Kind(999).String() != "?" {
		t.Errorf("unknown kind String() = %q, want ?", token.Kind(999).String())
	}
}
