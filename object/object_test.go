package object

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Null, "null"},
		{I8, "i8"},
		{I128, "i128"},
		{U64, "u64"},
		{F32, "f32"},
		{Str, "str"},
		{Char, "char"},
		{Bool, "bool"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if k == Null {
			if ok {
				t.Errorf("ParseKind(%q) should fail", k)
			}
			continue
		}
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %s, %v", k, got, ok)
		}
	}
	if _, ok := ParseKind("int"); ok {
		t.Error("ParseKind(\"int\") should fail")
	}
}

func TestCastTable_Complete(t *testing.T) {
	for _, from := range Kinds() {
		for _, to := range Kinds() {
			want := from.IsNumeric() && to.IsNumeric()
			if got := HasCast(from, to); got != want {
				t.Errorf("HasCast(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
	if len(NumericKinds()) != 12 {
		t.Errorf("len(NumericKinds()) = %d, want 12", len(NumericKinds()))
	}
}

func mustInt(t *testing.T, v Value) *big.Int {
	t.Helper()
	n, ok := v.Int()
	if !ok {
		t.Fatalf("%s is not an integer", v)
	}
	return n
}

// sampleInt returns a value of kind k holding n, which must fit.
func sampleInt(t *testing.T, k Kind, n *big.Int) Value {
	t.Helper()
	v, err := Cast(fromBig(I128, n), k)
	if k == U128 && n.Sign() >= 0 {
		v, err = Uint128FromBig(n)
	}
	if err != nil {
		t.Fatalf("building %s %s: %v", k, n, err)
	}
	return v
}

func TestCast_WideningPreservesValue(t *testing.T) {
	for _, from := range NumericKinds() {
		for _, to := range NumericKinds() {
			if !from.IsInteger() || !to.IsInteger() || from.IsSigned() != to.IsSigned() || from.Bits() > to.Bits() {
				continue
			}
			lo, hi, _ := MinMax(from)
			for _, n := range []*big.Int{lo, hi, big.NewInt(0), big.NewInt(1)} {
				src := sampleInt(t, from, n)
				got, err := Cast(src, to)
				if err != nil {
					t.Errorf("Cast(%s, %s) failed: %v", src, to, err)
					continue
				}
				if got.Kind() != to {
					t.Errorf("Cast(%s, %s).Kind() = %s", src, to, got.Kind())
				}
				if mustInt(t, got).Cmp(n) != 0 {
					t.Errorf("Cast(%s, %s) = %s, want %s", src, to, got, n)
				}
			}
		}
	}
}

func TestCast_OutOfRangeFails(t *testing.T) {
	// i128 and u128 cover every value any integer kind can hold, so values
	// just outside a kind's range are always representable as a source.
	for _, to := range NumericKinds() {
		if !to.IsInteger() {
			continue
		}
		lo, hi, _ := MinMax(to)
		below := new(big.Int).Sub(lo, big.NewInt(1))
		above := new(big.Int).Add(hi, big.NewInt(1))

		var sources []Value
		if to != I128 {
			if v, err := Int128FromBig(below); err == nil {
				sources = append(sources, v)
			}
		}
		if to != U128 {
			if v, err := Uint128FromBig(above); err == nil {
				sources = append(sources, v)
			}
		}
		if to == U128 {
			sources = append(sources, Int64(-1))
		}
		if to == I128 {
			sources = append(sources, Uint128(math.MaxUint64, math.MaxUint64))
		}
		if len(sources) == 0 {
			t.Fatalf("no out of range sources for %s", to)
		}

		for _, src := range sources {
			got, err := Cast(src, to)
			if !errors.Is(err, ErrOutOfRange) {
				t.Errorf("Cast(%s, %s) = %s, %v; want ErrOutOfRange", src, to, got, err)
			}
		}
	}
}

func TestCast(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		to      Kind
		want    Value
		wantErr error
	}{
		{name: "i32 to i8", in: Int32(-128), to: I8, want: Int8(-128)},
		{name: "i32 too big for i8", in: Int32(200), to: I8, wantErr: ErrOutOfRange},
		{name: "i32 to u8", in: Int32(200), to: U8, want: Uint8(200)},
		{name: "negative to unsigned", in: Int32(-1), to: U64, wantErr: ErrOutOfRange},
		{name: "u64 max to i64", in: Uint64(math.MaxUint64), to: I64, wantErr: ErrOutOfRange},
		{name: "u64 max to i128", in: Uint64(math.MaxUint64), to: I128, want: Int128(0, math.MaxUint64)},
		{name: "negative i64 to i128", in: Int64(-2), to: I128, want: Int128(-1, math.MaxUint64-1)},
		{name: "i128 to u128", in: Int128(0, 5), to: U128, want: Uint128(0, 5)},
		{name: "i32 to f32", in: Int32(3), to: F32, want: Float32(3)},
		{name: "u128 max to f64", in: Uint128(math.MaxUint64, math.MaxUint64), to: F64, want: Float64(math.Ldexp(1, 128))},
		{name: "f32 to f64", in: Float32(1.5), to: F64, want: Float64(1.5)},
		{name: "f64 to f32 loses precision", in: Float64(0.1), to: F32, want: Float32(0.1)},
		{name: "f64 beyond f32", in: Float64(1e300), to: F32, want: Float32(float32(math.Inf(1)))},
		{name: "f32 to i32", in: Float32(2), to: I32, wantErr: ErrInvalidCast},
		{name: "str to i32", in: String("1"), to: I32, wantErr: ErrInvalidCast},
		{name: "i32 to bool", in: Int32(1), to: Bool, wantErr: ErrInvalidCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cast(tt.in, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Cast() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Cast() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Cast() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		in      Value
		to      Kind
		want    Value
		wantErr error
	}{
		{name: "exact numeric", in: Int32(7), to: I32, want: Int32(7)},
		{name: "numeric cast", in: Int32(7), to: U16, want: Uint16(7)},
		{name: "numeric overflow", in: Int32(200), to: I8, wantErr: ErrOutOfRange},
		{name: "exact str", in: String("a"), to: Str, want: String("a")},
		{name: "exact char", in: Character('x'), to: Char, want: Character('x')},
		{name: "exact bool", in: TRUE, to: Bool, want: TRUE},
		{name: "int to bool", in: Int32(1), to: Bool, wantErr: ErrTypeMismatch},
		{name: "char to str", in: Character('x'), to: Str, wantErr: ErrTypeMismatch},
		{name: "null to char", in: NULL, to: Char, wantErr: ErrTypeMismatch},
		{name: "null to i32", in: NULL, to: I32, wantErr: ErrInvalidCast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.in, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Coerce() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Coerce() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	minI128, _ := new(big.Int).SetString("-170141183460469231731687303715884105728", 10)
	i128Min, _ := Int128FromBig(minI128)

	tests := []struct {
		name    string
		op      string
		left    Value
		right   Value
		want    Value
		wantErr error
	}{
		{name: "i32 add", op: "+", left: Int32(1), right: Int32(2), want: Int32(3)},
		{name: "i32 sub", op: "-", left: Int32(1), right: Int32(2), want: Int32(-1)},
		{name: "i32 mul", op: "*", left: Int32(6), right: Int32(7), want: Int32(42)},
		{name: "i32 div truncates", op: "/", left: Int32(-7), right: Int32(2), want: Int32(-3)},
		{name: "i32 rem", op: "%", left: Int32(-7), right: Int32(2), want: Int32(-1)},
		{name: "i8 wraps", op: "+", left: Int8(127), right: Int8(1), want: Int8(-128)},
		{name: "u8 wraps", op: "-", left: Uint8(0), right: Uint8(1), want: Uint8(255)},
		{name: "u64 mul", op: "*", left: Uint64(1 << 32), right: Uint64(2), want: Uint64(1 << 33)},
		{name: "i128 carry", op: "+", left: Int128(0, math.MaxUint64), right: Int128(0, 1), want: Int128(1, 0)},
		{name: "i128 negative", op: "-", left: Int128(0, 0), right: Int128(0, 1), want: Int128(-1, math.MaxUint64)},
		{name: "i128 wraps", op: "-", left: i128Min, right: Int128(0, 1), want: Int128(math.MaxInt64, math.MaxUint64)},
		{name: "u128 wraps", op: "+", left: Uint128(math.MaxUint64, math.MaxUint64), right: Uint128(0, 1), want: Uint128(0, 0)},
		{name: "u128 div", op: "/", left: Uint128(1, 0), right: Uint128(0, 2), want: Uint128(0, 1<<63)},
		{name: "i128 rem", op: "%", left: Int128(-1, math.MaxUint64-6), right: Int128(0, 2), want: Int128(-1, math.MaxUint64)},
		{name: "f32 add", op: "+", left: Float32(1.5), right: Float32(2.25), want: Float32(3.75)},
		{name: "f64 rem", op: "%", left: Float64(7.5), right: Float64(2), want: Float64(1.5)},
		{name: "f64 div by zero", op: "/", left: Float64(1), right: Float64(0), want: Float64(math.Inf(1))},
		{name: "int div by zero", op: "/", left: Int32(1), right: Int32(0), wantErr: ErrDivisionByZero},
		{name: "int rem by zero", op: "%", left: Uint16(1), right: Uint16(0), wantErr: ErrDivisionByZero},
		{name: "i128 div by zero", op: "/", left: Int128(0, 1), right: Int128(0, 0), wantErr: ErrDivisionByZero},
		{name: "mixed kinds", op: "+", left: Int32(1), right: Float32(2), wantErr: ErrOperandMismatch},
		{name: "mixed widths", op: "+", left: Int32(1), right: Int64(2), wantErr: ErrOperandMismatch},
		{name: "non numeric", op: "+", left: String("a"), right: String("b"), wantErr: ErrOperandMismatch},
		{name: "bools", op: "*", left: TRUE, right: FALSE, wantErr: ErrOperandMismatch},
		{name: "unknown operator", op: "^", left: Int32(1), right: Int32(1), wantErr: ErrUnknownOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Arithmetic(tt.op, tt.left, tt.right)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Arithmetic() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Arithmetic() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Arithmetic() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValue_Inspect(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{NULL, "null"},
		{Value{}, "null"},
		{TRUE, "true"},
		{Boolean(false), "false"},
		{Int8(-5), "-5"},
		{Uint64(math.MaxUint64), "18446744073709551615"},
		{Int128(-1, math.MaxUint64), "-1"},
		{Uint128(1, 0), "18446744073709551616"},
		{Float32(2), "2.0"},
		{Float64(2.5), "2.5"},
		{Float64(1e21), "1e+21"},
		{Float64(math.NaN()), "NaN"},
		{Float32(float32(math.Inf(-1))), "-Inf"},
		{String("hi"), `"hi"`},
		{Character('z'), `'z'`},
	}
	for _, tt := range tests {
		if got := tt.in.Inspect(); got != tt.want {
			t.Errorf("Inspect() = %q, want %q", got, tt.want)
		}
	}
	if got, want := Int32(3).String(), "3 (i32)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestValue_Accessors(t *testing.T) {
	if s, ok := String("x").Str(); !ok || s != "x" {
		t.Errorf("Str() = %q, %v", s, ok)
	}
	if _, ok := Int32(1).Str(); ok {
		t.Error("Int32.Str() should not be ok")
	}
	if r, ok := Character('q').Char(); !ok || r != 'q' {
		t.Errorf("Char() = %q, %v", r, ok)
	}
	if b, ok := TRUE.Bool(); !ok || !b {
		t.Errorf("Bool() = %v, %v", b, ok)
	}
	if f, ok := Float32(0.5).Float(); !ok || f != 0.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if _, ok := String("x").Int(); ok {
		t.Error("String.Int() should not be ok")
	}
	if !NULL.IsNull() || Int32(0).IsNull() {
		t.Error("IsNull() mismatch")
	}

	// values are copied, so an arithmetic result never aliases its inputs
	a := Int128(0, 1)
	b, _ := Arithmetic("+", a, a)
	if hi, lo := a.Words(); hi != 0 || lo != 1 {
		t.Errorf("operand modified: %d %d", hi, lo)
	}
	if hi, lo := b.Words(); hi != 0 || lo != 2 {
		t.Errorf("result = %d %d", hi, lo)
	}
}
