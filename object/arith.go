package object

import (
	"fmt"
	"math"
	"math/big"
)

type fixedInt interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Arithmetic applies one of + - * / % to two numeric values of the same kind.
// Integer results wrap on overflow; integer division and remainder by zero
// fail with ErrDivisionByZero. Operands of differing kinds, or any
// non-numeric operand, fail with ErrOperandMismatch and leave the policy
// for that case to the caller.
func Arithmetic(op string, left, right Value) (Value, error) {
	switch op {
	case "+", "-", "*", "/", "%":
	default:
		return NULL, fmt.Errorf("%w: %q", ErrUnknownOperator, op)
	}
	if !left.kind.IsNumeric() || left.kind != right.kind {
		return NULL, fmt.Errorf("%w: cannot apply %s to %s and %s", ErrOperandMismatch, op, left.kind, right.kind)
	}

	switch left.kind {
	case I8:
		return wrapInt(op, int8(left.lo), int8(right.lo), Int8)
	case I16:
		return wrapInt(op, int16(left.lo), int16(right.lo), Int16)
	case I32:
		return wrapInt(op, int32(left.lo), int32(right.lo), Int32)
	case I64:
		return wrapInt(op, int64(left.lo), int64(right.lo), Int64)
	case U8:
		return wrapInt(op, uint8(left.lo), uint8(right.lo), Uint8)
	case U16:
		return wrapInt(op, uint16(left.lo), uint16(right.lo), Uint16)
	case U32:
		return wrapInt(op, uint32(left.lo), uint32(right.lo), Uint32)
	case U64:
		return wrapInt(op, left.lo, right.lo, Uint64)
	case I128, U128:
		return bigArithmetic(op, left, right)
	case F32:
		l, _ := left.Float()
		r, _ := right.Float()
		return Float32(floatOp(op, float32(l), float32(r))), nil
	default: // F64
		l, _ := left.Float()
		r, _ := right.Float()
		return Float64(floatOp(op, l, r)), nil
	}
}

func wrapInt[T fixedInt](op string, l, r T, mk func(T) Value) (Value, error) {
	switch op {
	case "+":
		return mk(l + r), nil
	case "-":
		return mk(l - r), nil
	case "*":
		return mk(l * r), nil
	}
	if r == 0 {
		return NULL, ErrDivisionByZero
	}
	if op == "/" {
		return mk(l / r), nil
	}
	return mk(l % r), nil
}

func floatOp[T float32 | float64](op string, l, r T) T {
	switch op {
	case "+":
		return l + r
	case "-":
		return l - r
	case "*":
		return l * r
	case "/":
		return l / r
	}
	return T(math.Mod(float64(l), float64(r)))
}

// bigArithmetic computes 128-bit results exactly and reduces them modulo 2^128.
// Quo and Rem truncate toward zero, matching the fixed-width kinds.
func bigArithmetic(op string, left, right Value) (Value, error) {
	l, _ := left.Int()
	r, _ := right.Int()
	out := new(big.Int)
	switch op {
	case "+":
		out.Add(l, r)
	case "-":
		out.Sub(l, r)
	case "*":
		out.Mul(l, r)
	case "/", "%":
		if r.Sign() == 0 {
			return NULL, ErrDivisionByZero
		}
		if op == "/" {
			out.Quo(l, r)
		} else {
			out.Rem(l, r)
		}
	}
	return fromBig(left.kind, out), nil
}
