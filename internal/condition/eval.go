package condition

import (
	"sync"

	"visapath/internal/profile"
)

// Evaluator evaluates condition expressions against applicant snapshots.
// Parsed ASTs are memoized per distinct expression string; parse failures are
// memoized too since an expression that fails once fails forever.
//
// Safe for concurrent use.
type Evaluator struct {
	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	expr Expr
	err  error
}

func NewEvaluator() *Evaluator {
	return &Evaluator{cache: make(map[string]cacheEntry)}
}

// Evaluate parses (or recalls) the expression and evaluates it against the
// profile. Pure function of (expression, profile).
//
// Errors: *Error with KindInvalidExpression, KindUnknownField, or
// KindTypeMismatch. Callers on the resolution path treat all three as
// fail-open; the authoring path refuses writes on KindInvalidExpression.
func (e *Evaluator) Evaluate(expression string, applicant profile.Applicant) (bool, error) {
	ast, err := e.parse(expression)
	if err != nil {
		return false, err
	}
	return eval(ast, applicant)
}

func (e *Evaluator) parse(expression string) (Expr, error) {
	e.mu.RLock()
	entry, ok := e.cache[expression]
	e.mu.RUnlock()
	if ok {
		return entry.expr, entry.err
	}

	expr, err := Parse(expression)

	e.mu.Lock()
	// Another goroutine may have parsed the same expression; the result is
	// identical either way.
	e.cache[expression] = cacheEntry{expr: expr, err: err}
	e.mu.Unlock()

	return expr, err
}

// CacheSize reports the number of memoized expressions.
func (e *Evaluator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}

func eval(expr Expr, applicant profile.Applicant) (bool, error) {
	switch node := expr.(type) {
	case *Comparison:
		return evalComparison(node, applicant)
	case *Logical:
		return evalLogical(node, applicant)
	default:
		return false, newError(KindInvalidExpression, "unsupported expression node")
	}
}

func evalLogical(node *Logical, applicant profile.Applicant) (bool, error) {
	for _, term := range node.Terms {
		verdict, err := eval(term, applicant)
		if err != nil {
			return false, err
		}
		if node.Op == OpAnd && !verdict {
			return false, nil
		}
		if node.Op == OpOr && verdict {
			return true, nil
		}
	}
	return node.Op == OpAnd, nil
}

func evalComparison(node *Comparison, applicant profile.Applicant) (bool, error) {
	value, ok := applicant.Attribute(node.Field)
	if !ok {
		return false, newError(KindUnknownField, "field %q is not part of the applicant vocabulary", node.Field)
	}

	var equal bool
	switch node.Lit.Kind {
	case LiteralBool:
		if value.Kind != profile.KindBool {
			return false, newError(KindTypeMismatch, "field %q is not boolean; compare it against a quoted string", node.Field)
		}
		equal = value.Bool == node.Lit.Bool
	case LiteralString:
		if value.Kind != profile.KindString {
			return false, newError(KindTypeMismatch, "field %q is boolean; compare it against true or false", node.Field)
		}
		// Exact, case-sensitive match.
		equal = value.Str == node.Lit.Str
	}

	if node.Op == OpNotEqual {
		return !equal, nil
	}
	return equal, nil
}
