package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Eval parses and evaluates src. Nothing is computed unless the whole input parses.
func Eval(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Evaluate(n)
}

// Evaluate interprets an expression tree.
func Evaluate(n Node) (float64, error) {
	v, err := evaluate(n)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrOutOfRange
	}
	return v, nil
}

func evaluate(n Node) (float64, error) {
	switch n := n.(type) {
	case Number:
		return n.Value, nil
	case Constant:
		return n.Value, nil
	case Unary:
		x, err := evaluate(n.X)
		if err != nil {
			return 0, err
		}
		if n.Op == OpNeg {
			return -x, nil
		}
		return x, nil
	case Binary:
		l, err := evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		return apply(n.Op, l, r)
	}
	return 0, fmt.Errorf("%w: node %T", ErrSyntax, n)
}

func apply(op Op, l, r float64) (float64, error) {
	switch op {
	case OpAdd:
		return l + r, nil
	case OpSub:
		return l - r, nil
	case OpMul:
		return l * r, nil
	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	case OpMod:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		// Floored modulo: the result takes the sign of the divisor.
		m := math.Mod(l, r)
		if m != 0 && (m < 0) != (r < 0) {
			m += r
		}
		return m, nil
	case OpPow:
		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero
		}
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("%w: operator %s", ErrSyntax, op)
}

// Format renders a result the way the calculator reply shows it:
// integral values without a fraction, everything else in shortest form.
func Format(v float64) string {
	if v == 0 {
		return "0" // also folds -0
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
