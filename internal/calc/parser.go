package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Sentinel errors. Callers match them with errors.Is.
var (
	ErrSyntax           = errors.New("invalid expression")
	ErrUnknownName      = errors.New("unknown name")
	ErrCallNotSupported = errors.New("function calls are not supported")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrOutOfRange       = errors.New("result out of range")
)

// Op is a unary or binary operator.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpNeg
	OpPos
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "**",
	OpNeg: "-",
	OpPos: "+",
}

func (o Op) String() string {
	if int(o) < len(opSymbols) {
		return opSymbols[o]
	}
	return "?"
}

// Node is an expression tree node. The set of implementations is closed.
type Node interface {
	node()
}

// Number is a numeric literal.
type Number struct{ Value float64 }

// Constant is a resolved named constant (pi or e).
type Constant struct {
	Name  string
	Value float64
}

// Unary applies OpNeg or OpPos to X.
type Unary struct {
	Op Op
	X  Node
}

// Binary applies an arithmetic Op to Left and Right.
type Binary struct {
	Op          Op
	Left, Right Node
}

func (Number) node()   {}
func (Constant) node() {}
func (Unary) node()    {}
func (Binary) node()   {}

// constants are the only names an expression may reference.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// =============================================================================
// RECURSIVE DESCENT
// =============================================================================
//
//	expr    := term (('+'|'-') term)*
//	term    := unary (('*'|'/'|'%') unary)*
//	unary   := ('+'|'-') unary | power
//	power   := primary ('**' unary)?
//	primary := NUMBER | NAME | '(' expr ')'

type parser struct {
	toks []token
	pos  int
}

// Parse builds an expression tree from src.
func Parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, unexpected(t)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		var op Op
		switch p.peek().kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		case tokPercent:
			op = OpMod
		default:
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: op, Left: left, Right: right}
	}
}

func (p *parser) unary() (Node, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpNeg, X: x}, nil
	case tokPlus:
		p.next()
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: OpPos, X: x}, nil
	}
	return p.power()
}

// power binds tighter than a unary sign on its left (-2**2 == -4) and
// accepts a signed exponent on its right (2**-1 == 0.5).
func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return Binary{Op: OpPow, Left: base, Right: exp}, nil
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number %q", ErrSyntax, t.text)
		}
		return Number{Value: v}, nil
	case tokName:
		if p.peek().kind == tokLParen {
			return nil, fmt.Errorf("%w: %s(...)", ErrCallNotSupported, t.text)
		}
		v, ok := constants[t.text]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownName, t.text)
		}
		return Constant{Name: t.text, Value: v}, nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, unexpected(closing)
		}
		return n, nil
	}
	return nil, unexpected(t)
}

func unexpected(t token) error {
	if t.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %s %q at position %d", ErrSyntax, t.kind, t.text, t.pos)
}
