package sqlerr

import (
	"errors"
	"testing"
)

func TestErrorMessageIncludesObject(t *testing.T) {
	err := NoTable("users")
	if err.Kind != UnknownTable {
		t.Fatalf("Kind = %v, want UnknownTable", err.Kind)
	}
	if got := err.Error(); got != `UnknownTable: users: table does not exist` {
		t.Fatalf("Error() = %q", got)
	}
}

func TestErrorMessageWithoutObject(t *testing.T) {
	err := Syntax("garbage")
	if err.Object != "" {
		t.Fatalf("expected no object, got %q", err.Object)
	}
	if got := err.Error(); got != `SyntaxError: could not parse "garbage"` {
		t.Fatalf("Error() = %q", got)
	}
}

func TestIOUnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := IO(cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}
