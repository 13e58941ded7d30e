// Package condition parses and evaluates the boolean expressions that gate
// document requirements. An expression compares fixed applicant attributes
// against literals with === / !== and combines comparisons with && or ||;
// mixing the two operators at one nesting level requires parentheses.
//
// Expressions parse once into a typed AST. Evaluation is a pure function of
// (expression, profile); the Evaluator memoizes ASTs because the same
// expression is evaluated against many applicants.
package condition

// Op is a comparison operator.
type Op string

const (
	OpEqual    Op = "==="
	OpNotEqual Op = "!=="
)

// LogicalOp joins terms of a logical expression.
type LogicalOp string

const (
	OpAnd LogicalOp = "&&"
	OpOr  LogicalOp = "||"
)

// LiteralKind tags literal values in comparisons.
type LiteralKind int

const (
	LiteralString LiteralKind = iota
	LiteralBool
)

// Literal is the right-hand side of a comparison.
type Literal struct {
	Kind LiteralKind
	Str  string
	Bool bool
}

// Expr is a parsed condition node.
type Expr interface {
	isExpr()
}

// Comparison is a single <field> <op> <literal> atom.
type Comparison struct {
	Field string
	Op    Op
	Lit   Literal
}

func (*Comparison) isExpr() {}

// Logical joins two or more terms with a single operator. The parser never
// produces a Logical with fewer than two terms or with mixed operators.
type Logical struct {
	Op    LogicalOp
	Terms []Expr
}

func (*Logical) isExpr() {}
