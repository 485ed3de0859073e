// Package whereeval implements tinysql's WHERE evaluator: a hand-written
// recursive-descent parser and tree-walking evaluator over the restricted
// grammar
//
//	expr := literal | column op literal | expr AND expr | expr OR expr | (expr)
//	op   := = | <> | < | <= | > | >=
//
// This exists so the engine never calls a host "eval" on untrusted text:
// every clause is tokenized, parsed into the small Expr tree below, and
// walked by eval.
package whereeval

import "github.com/arjunc/tinysql/pkg/value"

// Expr is a node in a parsed WHERE clause.
type Expr interface{ exprNode() }

// Literal is a constant value.
type Literal struct{ Value value.Value }

// ColumnRef names a column; resolved against the current row at eval time.
type ColumnRef struct{ Name string }

// CompareExpr is "operand op operand" for op in {=, <>, <, <=, >, >=}.
type CompareExpr struct {
	Op          CompareOp
	Left, Right Expr
}

// LogicalExpr is "left AND right" or "left OR right".
type LogicalExpr struct {
	Op          LogicalOp
	Left, Right Expr
}

func (*Literal) exprNode()      {}
func (*ColumnRef) exprNode()    {}
func (*CompareExpr) exprNode()  {}
func (*LogicalExpr) exprNode()  {}

// CompareOp names a comparison operator.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Lte
	Gt
	Gte
)

// LogicalOp names a boolean connective.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)
