package object

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidCast     = errors.New("invalid cast")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrOperandMismatch = errors.New("operand mismatch")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrUnknownOperator = errors.New("unknown operator")
)

var (
	two64  = new(big.Int).Lsh(big.NewInt(1), 64)
	two128 = new(big.Int).Lsh(big.NewInt(1), 128)
	mask64 = new(big.Int).Sub(two64, big.NewInt(1))
)

// bounds holds the inclusive range of every integer kind.
var bounds [numKinds]struct{ min, max *big.Int }

// castFunc converts a value of one numeric kind into another.
type castFunc func(Value) (Value, error)

// castTable[from][to] is the conversion between two numeric kinds.
// Entries for non-numeric kinds are nil.
var castTable [numKinds][numKinds]castFunc

func init() {
	for _, k := range NumericKinds() {
		if !k.IsInteger() {
			continue
		}
		bits := uint(k.Bits())
		if k.IsSigned() {
			limit := new(big.Int).Lsh(big.NewInt(1), bits-1)
			bounds[k].min = new(big.Int).Neg(limit)
			bounds[k].max = new(big.Int).Sub(limit, big.NewInt(1))
		} else {
			bounds[k].min = new(big.Int)
			bounds[k].max = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
		}
	}

	for _, from := range NumericKinds() {
		for _, to := range NumericKinds() {
			castTable[from][to] = newCast(from, to)
		}
	}
}

func newCast(from, to Kind) castFunc {
	switch {
	case from == to:
		return func(v Value) (Value, error) { return v, nil }
	case from.IsInteger() && to.IsInteger():
		return intToInt(to)
	case from.IsInteger():
		return intToFloat(to)
	case to.IsFloat():
		return floatToFloat(to)
	default:
		return floatToInt(to)
	}
}

// intToInt accepts the source only when it lies inside the range of to.
func intToInt(to Kind) castFunc {
	return func(v Value) (Value, error) {
		n, _ := v.Int()
		if n.Cmp(bounds[to].min) < 0 || n.Cmp(bounds[to].max) > 0 {
			return NULL, fmt.Errorf("%w: %s %s does not fit in %s [%s, %s]",
				ErrOutOfRange, v.kind, n, to, bounds[to].min, bounds[to].max)
		}
		return fromBig(to, n), nil
	}
}

// intToFloat rounds to the nearest representable float and never fails.
func intToFloat(to Kind) castFunc {
	return func(v Value) (Value, error) {
		n, _ := v.Int()
		f := new(big.Float).SetInt(n)
		if to == F32 {
			f32, _ := f.Float32()
			return Float32(f32), nil
		}
		f64, _ := f.Float64()
		return Float64(f64), nil
	}
}

func floatToFloat(to Kind) castFunc {
	return func(v Value) (Value, error) {
		f, _ := v.Float()
		if to == F32 {
			return Float32(float32(f)), nil
		}
		return Float64(f), nil
	}
}

// floatToInt always fails: a float never converts implicitly to an integer kind.
func floatToInt(to Kind) castFunc {
	return func(v Value) (Value, error) {
		return NULL, fmt.Errorf("%w: cannot convert %s %s to %s", ErrInvalidCast, v.kind, v.Inspect(), to)
	}
}

// fromBig builds a value of the integer kind k from n, which must lie in
// k's range. For the 128-bit kinds n is reduced modulo 2^128, which is also
// how 128-bit arithmetic wraps.
func fromBig(k Kind, n *big.Int) Value {
	switch k {
	case I8:
		return Int8(int8(n.Int64()))
	case I16:
		return Int16(int16(n.Int64()))
	case I32:
		return Int32(int32(n.Int64()))
	case I64:
		return Int64(n.Int64())
	case U8:
		return Uint8(uint8(n.Uint64()))
	case U16:
		return Uint16(uint16(n.Uint64()))
	case U32:
		return Uint32(uint32(n.Uint64()))
	case U64:
		return Uint64(n.Uint64())
	case I128, U128:
		r := new(big.Int).Mod(n, two128)
		lo := new(big.Int).And(r, mask64).Uint64()
		hi := new(big.Int).Rsh(r, 64).Uint64()
		return Value{kind: k, hi: hi, lo: lo}
	}
	panic(fmt.Sprintf("fromBig: %s is not an integer kind", k))
}

// Int128FromBig returns n as an i128, failing when it does not fit.
func Int128FromBig(n *big.Int) (Value, error) {
	return fromBigChecked(I128, n)
}

// Uint128FromBig returns n as a u128, failing when it does not fit.
func Uint128FromBig(n *big.Int) (Value, error) {
	return fromBigChecked(U128, n)
}

func fromBigChecked(k Kind, n *big.Int) (Value, error) {
	if n.Cmp(bounds[k].min) < 0 || n.Cmp(bounds[k].max) > 0 {
		return NULL, fmt.Errorf("%w: %s does not fit in %s", ErrOutOfRange, n, k)
	}
	return fromBig(k, n), nil
}

// HasCast reports whether the conversion table has an entry for the pair.
func HasCast(from, to Kind) bool {
	if from < 0 || int(from) >= numKinds || to < 0 || int(to) >= numKinds {
		return false
	}
	return castTable[from][to] != nil
}

// Cast converts v to the numeric kind to. Conversions between integer kinds
// fail with ErrOutOfRange when the value does not fit; conversions into a
// float kind never fail; float to integer and any non-numeric operand fail
// with ErrInvalidCast.
func Cast(v Value, to Kind) (Value, error) {
	if !HasCast(v.kind, to) {
		return NULL, fmt.Errorf("%w: cannot convert %s to %s", ErrInvalidCast, v.kind, to)
	}
	return castTable[v.kind][to](v)
}

// Coerce enforces a declared type on v. A value already of kind to passes
// unchanged, numeric kinds go through Cast, and char, str and bool demand
// an exact match.
func Coerce(v Value, to Kind) (Value, error) {
	if v.kind == to {
		return v, nil
	}
	if to.IsNumeric() {
		return Cast(v, to)
	}
	return NULL, fmt.Errorf("%w: expected %s, got %s", ErrTypeMismatch, to, v.kind)
}

// MinMax returns the inclusive range of an integer kind.
func MinMax(k Kind) (lo, hi *big.Int, ok bool) {
	if !k.IsInteger() {
		return nil, nil, false
	}
	return new(big.Int).Set(bounds[k].min), new(big.Int).Set(bounds[k].max), true
}
