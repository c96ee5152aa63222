package blaze

import (
	"strings"
)

// precedence is the shunting-yard operator precedence table: NOT binds
// tightest (it is unary), AND binds tighter than OR.
var precedence = map[string]int{
	"NOT": 3,
	"AND": 2,
	"OR":  1,
}

const (
	tokenAnd    = "AND"
	tokenOr     = "OR"
	tokenNot    = "NOT"
	tokenLParen = "("
	tokenRParen = ")"
)

func isOperator(tok string) bool {
	_, ok := precedence[tok]
	return ok
}

// lexBooleanQuery splits a boolean query string into term and operator
// tokens, padding parentheses with spaces so they always split cleanly from
// adjacent words.
func lexBooleanQuery(query string) []string {
	padded := strings.NewReplacer("(", " ( ", ")", " ) ").Replace(query)
	return strings.Fields(padded)
}

// toPostfix runs Dijkstra's shunting-yard algorithm over tokens, producing
// a postfix (reverse-Polish) token sequence ready for stack evaluation.
// NOT is treated as right-associative so "NOT NOT a" parses as "NOT (NOT a)".
func toPostfix(tokens []string) ([]string, error) {
	var output []string
	var ops []string

	for _, tok := range tokens {
		switch {
		case tok == tokenLParen:
			ops = append(ops, tok)
		case tok == tokenRParen:
			found := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top == tokenLParen {
					found = true
					break
				}
				output = append(output, top)
			}
			if !found {
				return nil, ErrMalformedQuery
			}
		case isOperator(tok):
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top == tokenLParen {
					break
				}
				if tok == tokenNot {
					// right-associative: only pop strictly higher precedence
					if precedence[top] <= precedence[tok] {
						break
					}
				} else if precedence[top] < precedence[tok] {
					break
				}
				output = append(output, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		default:
			output = append(output, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top == tokenLParen {
			return nil, ErrMalformedQuery
		}
		output = append(output, top)
	}

	return output, nil
}

// evalPostfix evaluates a postfix token sequence over document-id sets,
// resolving each non-operator token to the set of documents containing
// that (preprocessed) term.
func (e *Engine) evalPostfix(postfix []string) (docIDSet, error) {
	var stack []docIDSet

	pop := func() (docIDSet, error) {
		if len(stack) == 0 {
			return docIDSet{}, ErrMalformedQuery
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return top, nil
	}

	for _, tok := range postfix {
		switch tok {
		case tokenAnd, tokenOr:
			b, err := pop()
			if err != nil {
				return docIDSet{}, err
			}
			a, err := pop()
			if err != nil {
				return docIDSet{}, err
			}
			if tok == tokenAnd {
				stack = append(stack, setAnd(a, b))
			} else {
				stack = append(stack, setOr(a, b))
			}
		case tokenNot:
			a, err := pop()
			if err != nil {
				return docIDSet{}, err
			}
			stack = append(stack, e.setNot(a))
		default:
			set, err := e.termDocSet(normalizeBooleanTerm(e.preprocessor, tok))
			if err != nil {
				return docIDSet{}, err
			}
			stack = append(stack, set)
		}
	}

	if len(stack) != 1 {
		return docIDSet{}, ErrMalformedQuery
	}
	return stack[0], nil
}

// normalizeBooleanTerm runs a single boolean-query word through the same
// tokenize/stem pipeline documents were indexed with, so operands match
// vocabulary entries. A word that stems to nothing (pure punctuation)
// normalizes to the empty string, which never matches any term.
func normalizeBooleanTerm(p Preprocessor, word string) string {
	tokens := p.TokenizeAndStem(word)
	if len(tokens) == 0 {
		return ""
	}
	return tokens[0]
}

// QueryBoolean evaluates a boolean expression of terms combined with AND,
// OR and NOT (with parentheses for grouping) and returns the matching
// document ids in ascending order. A malformed expression (unbalanced
// parentheses, a missing operand, a stray operator) returns
// ErrMalformedQuery rather than panicking.
func (e *Engine) QueryBoolean(query string) ([]uint32, error) {
	tokens := lexBooleanQuery(query)
	if len(tokens) == 0 {
		return nil, ErrEmptyQuery
	}

	postfix, err := toPostfix(tokens)
	if err != nil {
		return nil, err
	}

	result, err := e.evalPostfix(postfix)
	if err != nil {
		return nil, err
	}

	return result.ToSlice(), nil
}
