// Package calc implements the restricted arithmetic evaluator behind the
// calculator intent. The accepted grammar is exactly what the evaluator can
// execute: numbers, the constants pi and e, + - * / % **, unary signs, and
// parentheses. Anything else is rejected while parsing, before evaluation.
package calc

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokPercent
	tokPow
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokName:
		return "name"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokSlash:
		return "'/'"
	case tokPercent:
		return "'%'"
	case tokPow:
		return "'**'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown"
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lex splits src into tokens. It only knows the characters the grammar uses.
func lex(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			end := scanNumber(src, i)
			toks = append(toks, token{kind: tokNumber, text: src[i:end], pos: i})
			i = end
		case isNameStart(c):
			end := i
			for end < len(src) && (isNameStart(src[end]) || isDigit(src[end])) {
				end++
			}
			toks = append(toks, token{kind: tokName, text: src[i:end], pos: i})
			i = end
		case c == '*' && strings.HasPrefix(src[i:], "**"):
			toks = append(toks, token{kind: tokPow, text: "**", pos: i})
			i += 2
		default:
			kind, ok := singleCharTokens[c]
			if !ok {
				return nil, fmt.Errorf("%w: unexpected character %q at position %d", ErrSyntax, rune(c), i)
			}
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

var singleCharTokens = map[byte]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'%': tokPercent,
	'(': tokLParen,
	')': tokRParen,
}

// scanNumber returns the end offset of the numeric literal starting at i.
// Accepts 12, 1.5, .5, 3., 1e3, 2.5E-4.
func scanNumber(src string, i int) int {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		// "2e" or "2e+" is not an exponent; leave the letter for the name scanner
		if j < len(src) && isDigit(src[j]) {
			for j < len(src) && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
