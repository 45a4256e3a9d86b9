// Package object defines jarlang's runtime values: a closed set of sixteen
// scalar kinds, the checked conversions between the numeric kinds, and the
// arithmetic the evaluator applies to them.
package object

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is a tagged scalar. The payload layout depends on the kind:
//
//	i8..i64       lo holds the value sign-extended to 64 bits
//	u8..u64       lo holds the value zero-extended to 64 bits
//	i128, u128    hi and lo hold the two's complement words
//	f32, f64      lo holds the IEEE 754 bits of the float64 widening
//	char          lo holds the rune
//	bool          lo is 0 or 1
//	str           s holds the text
//
// Values are immutable and compared by value; copying a Value copies its payload.
type Value struct {
	kind Kind
	hi   uint64
	lo   uint64
	s    string
}

// NULL is the null value. It is also the zero Value.
var NULL = Value{}

var (
	TRUE  = Value{kind: Bool, lo: 1}
	FALSE = Value{kind: Bool}
)

func Int8(v int8) Value       { return Value{kind: I8, lo: uint64(int64(v))} }
func Int16(v int16) Value     { return Value{kind: I16, lo: uint64(int64(v))} }
func Int32(v int32) Value     { return Value{kind: I32, lo: uint64(int64(v))} }
func Int64(v int64) Value     { return Value{kind: I64, lo: uint64(v)} }
func Uint8(v uint8) Value     { return Value{kind: U8, lo: uint64(v)} }
func Uint16(v uint16) Value   { return Value{kind: U16, lo: uint64(v)} }
func Uint32(v uint32) Value   { return Value{kind: U32, lo: uint64(v)} }
func Uint64(v uint64) Value   { return Value{kind: U64, lo: v} }
func Float32(v float32) Value { return Value{kind: F32, lo: math.Float64bits(float64(v))} }
func Float64(v float64) Value { return Value{kind: F64, lo: math.Float64bits(v)} }
func String(v string) Value   { return Value{kind: Str, s: v} }
func Character(v rune) Value  { return Value{kind: Char, lo: uint64(v)} }

// Int128 builds an i128 from its high and low words.
func Int128(hi int64, lo uint64) Value { return Value{kind: I128, hi: uint64(hi), lo: lo} }

// Uint128 builds a u128 from its high and low words.
func Uint128(hi, lo uint64) Value { return Value{kind: U128, hi: hi, lo: lo} }

func Boolean(v bool) Value {
	if v {
		return TRUE
	}
	return FALSE
}

func (v Value) Kind() Kind { return v.kind }

// Equal reports whether v and other have the same kind and payload.
func (v Value) Equal(other Value) bool { return v == other }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Int returns the value of an integer kind as a big integer.
// ok is false for every other kind.
func (v Value) Int() (n *big.Int, ok bool) {
	switch {
	case v.kind.IsSigned() && v.kind != I128:
		return big.NewInt(int64(v.lo)), true
	case v.kind.IsUnsigned() && v.kind != U128:
		return new(big.Int).SetUint64(v.lo), true
	case v.kind == I128 || v.kind == U128:
		n := new(big.Int).SetUint64(v.hi)
		n.Lsh(n, 64)
		n.Or(n, new(big.Int).SetUint64(v.lo))
		if v.kind == I128 && v.hi>>63 == 1 {
			n.Sub(n, two128)
		}
		return n, true
	}
	return nil, false
}

// Float returns the value of a floating point kind. ok is false for every other kind.
func (v Value) Float() (f float64, ok bool) {
	if !v.kind.IsFloat() {
		return 0, false
	}
	return math.Float64frombits(v.lo), true
}

// Str returns the text of a str value.
func (v Value) Str() (string, bool) { return v.s, v.kind == Str }

// Char returns the rune of a char value.
func (v Value) Char() (rune, bool) { return rune(v.lo), v.kind == Char }

// Bool returns the truth of a bool value.
func (v Value) Bool() (b bool, ok bool) { return v.lo == 1, v.kind == Bool }

// Words returns the raw high and low payload words. It is meaningful for
// the integer kinds only.
func (v Value) Words() (hi, lo uint64) { return v.hi, v.lo }

// Inspect renders the value the way the drivers print it.
func (v Value) Inspect() string {
	switch {
	case v.kind.IsInteger():
		n, _ := v.Int()
		return n.String()
	case v.kind == F32:
		return formatFloat(math.Float64frombits(v.lo), 32)
	case v.kind == F64:
		return formatFloat(math.Float64frombits(v.lo), 64)
	case v.kind == Str:
		return strconv.Quote(v.s)
	case v.kind == Char:
		return strconv.QuoteRune(rune(v.lo))
	case v.kind == Bool:
		return strconv.FormatBool(v.lo == 1)
	}
	return "null"
}

func (v Value) String() string {
	return v.Inspect() + " (" + v.kind.String() + ")"
}

// formatFloat always shows a fractional part so that floats and integers
// print differently.
func formatFloat(f float64, bitSize int) string {
	s := strconv.FormatFloat(f, 'g', -1, bitSize)
	if strings.ContainsAny(s, ".eEnN") { // n and N cover Inf and NaN
		return s
	}
	return s + ".0"
}
