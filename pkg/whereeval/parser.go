package whereeval

import (
	"fmt"

	"github.com/arjunc/tinysql/pkg/lexer"
	"github.com/arjunc/tinysql/pkg/token"
	"github.com/arjunc/tinysql/pkg/value"
)

// Parser is a recursive-descent parser over the restricted WHERE grammar.
type Parser struct {
	lx  *lexer.Lexer
	cur token.Item
}

// New returns a Parser scanning input.
func New(input string) *Parser {
	p := &Parser{lx: lexer.New(input)}
	p.advance()
	return p
}

// Parse parses the full input as one WHERE expression. A non-nil error
// means the clause could not be parsed; callers should treat that as "row
// excluded", not propagate the error.
func (p *Parser) Parse() (Expr, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != token.EOF {
		return nil, fmt.Errorf("unexpected token %q", p.cur.Text)
	}
	return expr, nil
}

func (p *Parser) advance() { p.cur = p.lx.Next() }

func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.OR {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: LogicalOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.Kind == token.AND {
		p.advance()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &LogicalExpr{Op: LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseTerm handles a parenthesized sub-expression or a single comparison.
func (p *Parser) parseTerm() (Expr, error) {
	if p.cur.Kind == token.LPAREN {
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Kind != token.RPAREN {
			return nil, fmt.Errorf("expected ')', got %q", p.cur.Text)
		}
		p.advance()
		return inner, nil
	}
	return p.parseComparison()
}

// parseComparison handles "operand op operand" and a bare boolean literal
// (so that a WHERE clause like "TRUE" parses, though the grammar's primary
// use is "column op literal").
func (p *Parser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op, ok := compareOpFor(p.cur.Kind)
	if !ok {
		if lit, isLit := left.(*Literal); isLit && lit.Value.Kind == value.Bool {
			return left, nil
		}
		return nil, fmt.Errorf("expected comparison operator, got %q", p.cur.Text)
	}
	p.advance()
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &CompareExpr{Op: op, Left: left, Right: right}, nil
}

func compareOpFor(k token.Kind) (CompareOp, bool) {
	switch k {
	case token.EQ:
		return Eq, true
	case token.NEQ:
		return Neq, true
	case token.LT:
		return Lt, true
	case token.LTE:
		return Lte, true
	case token.GT:
		return Gt, true
	case token.GTE:
		return Gte, true
	default:
		return 0, false
	}
}

// parseOperand parses a column reference or a literal.
func (p *Parser) parseOperand() (Expr, error) {
	switch p.cur.Kind {
	case token.IDENT:
		name := p.cur.Text
		p.advance()
		return &ColumnRef{Name: name}, nil
	case token.INT:
		text := p.cur.Text
		p.advance()
		return &Literal{Value: value.ParseLiteral(text)}, nil
	case token.FLOAT:
		text := p.cur.Text
		p.advance()
		return &Literal{Value: value.ParseLiteral(text)}, nil
	case token.STRING:
		text := p.cur.Text
		p.advance()
		return &Literal{Value: value.Str(text)}, nil
	case token.TRUE:
		p.advance()
		return &Literal{Value: value.Boolean(true)}, nil
	case token.FALSE:
		p.advance()
		return &Literal{Value: value.Boolean(false)}, nil
	case token.NULLKW:
		p.advance()
		return &Literal{Value: value.NullValue}, nil
	default:
		return nil, fmt.Errorf("unexpected token %q", p.cur.Text)
	}
}
