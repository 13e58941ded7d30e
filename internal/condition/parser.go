package condition

type parser struct {
	tokens []token
	pos    int
}

// Parse compiles an expression into its AST. It fails with
// KindInvalidExpression on any syntax violation, including mixed && / || at
// the same nesting level: the authoring syntax only documents fully
// parenthesized mixed expressions, so ambiguous precedence is rejected rather
// than silently resolved.
//
// Parse does not touch the attribute vocabulary; unknown fields and type
// mismatches are evaluation-time concerns.
func Parse(input string) (Expr, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokenEOF {
		return nil, newError(KindInvalidExpression, "unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return expr, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokenEOF {
		p.pos++
	}
	return t
}

// parseExpression parses term (op term)* where op must be uniformly && or ||.
func (p *parser) parseExpression() (Expr, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokenAnd && t.kind != tokenOr {
		return first, nil
	}

	joiner := t.kind
	op := OpAnd
	if joiner == tokenOr {
		op = OpOr
	}
	terms := []Expr{first}
	for {
		t = p.peek()
		if t.kind != tokenAnd && t.kind != tokenOr {
			break
		}
		if t.kind != joiner {
			return nil, newError(KindInvalidExpression,
				"mixed && and || at position %d; parenthesize to disambiguate", t.pos)
		}
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return &Logical{Op: op, Terms: terms}, nil
}

// parseTerm parses an atom or a parenthesized expression.
func (p *parser) parseTerm() (Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokenLParen:
		p.next()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, newError(KindInvalidExpression, "missing closing parenthesis at position %d", closing.pos)
		}
		return inner, nil
	case tokenIdent:
		return p.parseComparison()
	default:
		return nil, newError(KindInvalidExpression, "expected field or ( at position %d", t.pos)
	}
}

// parseComparison parses <field> <op> <literal>.
func (p *parser) parseComparison() (Expr, error) {
	field := p.next()

	opTok := p.next()
	var op Op
	switch opTok.kind {
	case tokenOpEqual:
		op = OpEqual
	case tokenOpNotEqual:
		op = OpNotEqual
	default:
		return nil, newError(KindInvalidExpression, "expected === or !== after %q", field.text)
	}

	litTok := p.next()
	var lit Literal
	switch litTok.kind {
	case tokenString:
		lit = Literal{Kind: LiteralString, Str: litTok.text}
	case tokenBool:
		lit = Literal{Kind: LiteralBool, Bool: litTok.text == "true"}
	default:
		return nil, newError(KindInvalidExpression, "expected literal after %q %s", field.text, op)
	}

	return &Comparison{Field: field.text, Op: op, Lit: lit}, nil
}
