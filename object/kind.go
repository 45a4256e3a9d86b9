package object

import "fmt"

// Kind is the runtime tag of a Value.
type Kind int

// The zero Kind is Null so that the zero Value is the null value.
const (
	Null Kind = iota
	I8
	I16
	I32
	I64
	I128
	U8
	U16
	U32
	U64
	U128
	F32
	F64
	Str
	Char
	Bool

	numKinds = int(iota)
)

var kindNames = [numKinds]string{
	Null: "null",
	I8:   "i8",
	I16:  "i16",
	I32:  "i32",
	I64:  "i64",
	I128: "i128",
	U8:   "u8",
	U16:  "u16",
	U32:  "u32",
	U64:  "u64",
	U128: "u128",
	F32:  "f32",
	F64:  "f64",
	Str:  "str",
	Char: "char",
	Bool: "bool",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= numKinds {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a type annotation such as "u16" or "str" to its Kind.
// "null" is not an annotation and is rejected.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name && Kind(k) != Null {
			return Kind(k), true
		}
	}
	return Null, false
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, numKinds)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// NumericKinds returns the twelve integer and floating point kinds.
func NumericKinds() []Kind {
	return []Kind{I8, I16, I32, I64, I128, U8, U16, U32, U64, U128, F32, F64}
}

func (k Kind) IsSigned() bool   { return I8 <= k && k <= I128 }
func (k Kind) IsUnsigned() bool { return U8 <= k && k <= U128 }
func (k Kind) IsInteger() bool  { return I8 <= k && k <= U128 }
func (k Kind) IsFloat() bool    { return k == F32 || k == F64 }
func (k Kind) IsNumeric() bool  { return k.IsInteger() || k.IsFloat() }

// Bits returns the payload width of a numeric kind, or 0.
func (k Kind) Bits() int {
	switch k {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	case I128, U128:
		return 128
	}
	return 0
}
