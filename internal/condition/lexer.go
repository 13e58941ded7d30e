package condition

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokenIdent tokenKind = iota
	tokenString
	tokenBool
	tokenOpEqual
	tokenOpNotEqual
	tokenAnd
	tokenOr
	tokenLParen
	tokenRParen
	tokenEOF
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex tokenizes an expression. String literals accept single or double quotes
// since authored rule sets use both.
func lex(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case r == '\'' || r == '"':
			quote := r
			j := i + 1
			for j < len(runes) && runes[j] != quote {
				j++
			}
			if j >= len(runes) {
				return nil, newError(KindInvalidExpression, "unterminated string literal at position %d", i)
			}
			tokens = append(tokens, token{kind: tokenString, text: string(runes[i+1 : j]), pos: i})
			i = j + 1
		case r == '=':
			if strings.HasPrefix(string(runes[i:]), "===") {
				tokens = append(tokens, token{kind: tokenOpEqual, text: "===", pos: i})
				i += 3
			} else {
				return nil, newError(KindInvalidExpression, "unsupported operator at position %d (only === and !== are allowed)", i)
			}
		case r == '!':
			if strings.HasPrefix(string(runes[i:]), "!==") {
				tokens = append(tokens, token{kind: tokenOpNotEqual, text: "!==", pos: i})
				i += 3
			} else {
				return nil, newError(KindInvalidExpression, "unsupported operator at position %d (only === and !== are allowed)", i)
			}
		case r == '&':
			if strings.HasPrefix(string(runes[i:]), "&&") {
				tokens = append(tokens, token{kind: tokenAnd, text: "&&", pos: i})
				i += 2
			} else {
				return nil, newError(KindInvalidExpression, "single & at position %d", i)
			}
		case r == '|':
			if strings.HasPrefix(string(runes[i:]), "||") {
				tokens = append(tokens, token{kind: tokenOr, text: "||", pos: i})
				i += 2
			} else {
				return nil, newError(KindInvalidExpression, "single | at position %d", i)
			}
		case isIdentStart(r):
			j := i
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			text := string(runes[i:j])
			switch text {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, text: text, pos: i})
			default:
				tokens = append(tokens, token{kind: tokenIdent, text: text, pos: i})
			}
			i = j
		default:
			return nil, newError(KindInvalidExpression, "unexpected character %q at position %d", string(r), i)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(runes)})
	return tokens, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// isIdentPart allows dots so dotted field paths (riskScore.level) lex as one
// identifier.
func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}
