package whereeval

import (
	"testing"

	"github.com/arjunc/tinysql/pkg/catalog"
	"github.com/arjunc/tinysql/pkg/value"
)

func row(kv map[string]value.Value) catalog.Row { return catalog.Row(kv) }

func TestCompile(t *testing.T) {
	tests := []struct {
		name   string
		clause string
		row    catalog.Row
		want   bool
	}{
		{"empty clause matches everything", "", row(map[string]value.Value{"age": value.Int(5)}), true},
		{"simple equality", "age = 30", row(map[string]value.Value{"age": value.Int(30)}), true},
		{"simple inequality", "age = 30", row(map[string]value.Value{"age": value.Int(31)}), false},
		{"and", "age > 18 AND age < 65", row(map[string]value.Value{"age": value.Int(30)}), true},
		{"or", "age < 18 OR age > 65", row(map[string]value.Value{"age": value.Int(70)}), true},
		{"case-insensitive column", "AGE = 30", row(map[string]value.Value{"age": value.Int(30)}), true},
		{"null excludes equality", "age = 30", row(map[string]value.Value{"age": value.NullValue}), false},
		{"text equality", "name = 'bob'", row(map[string]value.Value{"name": value.Str("bob")}), true},
		{"unknown column excludes row", "missing = 1", row(map[string]value.Value{"age": value.Int(1)}), false},
		{"unparseable clause excludes row", "age = = 1", row(map[string]value.Value{"age": value.Int(1)}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := Compile(tt.clause)
			var got bool
			if pred == nil {
				got = true
			} else {
				got = pred(tt.row)
			}
			if got != tt.want {
				t.Errorf("Compile(%q)(row) = %v, want %v", tt.clause, got, tt.want)
			}
		})
	}
}

func TestCompileComparisonOperators(t *testing.T) {
	r := row(map[string]value.Value{"n": value.Int(10)})
	tests := map[string]bool{
		"n < 20":  true,
		"n <= 10": true,
		"n > 20":  false,
		"n >= 10": true,
		"n <> 10": false,
	}
	for clause, want := range tests {
		if got := Compile(clause)(r); got != want {
			t.Errorf("Compile(%q)(row) = %v, want %v", clause, got, want)
		}
	}
}
