package abitype

import (
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifiers(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{Uint(8), "t_uint8"},
		{Int(256), "t_int256"},
		{Address(), "t_address"},
		{Bool{}, "t_bool"},
		{BytesN(4), "t_bytes4"},
		{Enum{Name: "Color", ID: 7, Members: 3}, "t_enum$_Color_$7"},
		{Contract{Name: "Token", ID: 2}, "t_contract$_Token_$2"},
		{FixedPoint{Bits: 128, Fractional: 18, Signed: true}, "t_fixed128x18"},
		{FixedPoint{Bits: 64, Fractional: 2}, "t_ufixed64x2"},
		{Function{External: true}, "t_function_external"},
		{Function{}, "t_function_internal"},
		{Rational(-5, 1), "t_rational_minus_5_by_1"},
		{Rational(2, 4), "t_rational_1_by_2"},
		{StaticArray(Uint(8), 3, LocationMemory), "t_array$_t_uint8_$3_memory"},
		{DynamicArray(Bool{}, LocationStorage), "t_array$_t_bool_$dyn_storage"},
		{Bytes(LocationCallData), "t_bytes_calldata"},
		{String(LocationMemory), "t_string_memory"},
		{Struct{Name: "Point", ID: 4, Location: LocationMemory}, "t_struct$_Point_$4_memory"},
		{Tuple{Components: []Type{Uint(8), Bool{}}}, "t_tuple$_t_uint8_$_t_bool_$"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.typ.Identifier())
		})
	}
}

func TestStringLiteralIdentifier(t *testing.T) {
	// keccak256("") is a well-known constant.
	assert.Equal(t,
		"t_stringliteral_c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Literal("").Identifier())
	assert.NotEqual(t, Literal("a").Identifier(), Literal("b").Identifier())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Uint(8), Uint(8)))
	assert.False(t, Equal(Uint(8), Int(8)))
	assert.False(t, Equal(Uint(160), Address()))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Bool{}, nil))
}

func TestEncodedSizes(t *testing.T) {
	tests := []struct {
		name    string
		typ     Type
		size    int
		stack   int
		dynamic bool
		value   bool
	}{
		{"uint8", Uint(8), 32, 1, false, true},
		{"bool", Bool{}, 32, 1, false, true},
		{"bytes4", BytesN(4), 32, 1, false, true},
		{"static array", StaticArray(Uint(8), 3, LocationMemory), 96, 1, false, false},
		{"dynamic memory array", DynamicArray(Uint(8), LocationMemory), 32, 1, true, false},
		{"calldata bytes", Bytes(LocationCallData), 32, 2, true, false},
		{"struct", Struct{Name: "P", Members: []Type{Uint(8), Bool{}}, Location: LocationMemory}, 64, 1, false, false},
		{"external function", Function{External: true}, 32, 2, false, true},
		{"internal function", Function{}, 0, 1, false, true},
		{"rational", Rational(1, 1), 0, 1, false, true},
		{"literal", Literal("x"), 0, 0, false, false},
		{"oversized array saturates", StaticArray(Uint(8), 1<<60, LocationMemory), math.MaxInt, 1, false, false},
		{"oversized struct saturates", Struct{Name: "Big", Members: []Type{StaticArray(Uint(8), 1<<60, LocationMemory), Bool{}}, Location: LocationMemory}, math.MaxInt, 1, false, false},
		{"tuple", Tuple{Components: []Type{Uint(8), Function{External: true}}}, 0, 3, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.size, tc.typ.CalldataEncodedSize(), "size")
			assert.Equal(t, tc.stack, tc.typ.SizeOnStack(), "stack")
			assert.Equal(t, tc.dynamic, tc.typ.IsDynamicallySized(), "dynamic")
			assert.Equal(t, tc.value, tc.typ.IsValueType(), "value type")
		})
	}
}

func TestDataLocation(t *testing.T) {
	s := Struct{Name: "S", Location: LocationStorage}
	assert.True(t, s.DataStoredIn(LocationStorage))
	assert.False(t, s.DataStoredIn(LocationMemory))
	assert.False(t, Uint(256).DataStoredIn(LocationStorage))
}

func TestRationalMobileType(t *testing.T) {
	tests := []struct {
		num  string
		want Type
	}{
		{"0", Uint(8)},
		{"255", Uint(8)},
		{"256", Uint(16)},
		{"-1", Int(8)},
		{"-128", Int(8)},
		{"-129", Int(16)},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", Uint(256)},
	}

	for _, tc := range tests {
		t.Run(tc.num, func(t *testing.T) {
			r, ok := new(big.Rat).SetString(tc.num)
			require.True(t, ok)
			got := RationalNumber{Value: r}.MobileType()
			require.NotNil(t, got)
			assert.Equal(t, tc.want.Identifier(), got.Identifier())
		})
	}

	t.Run("too large", func(t *testing.T) {
		r, _ := new(big.Rat).SetString("1" + strings.Repeat("0", 80))
		assert.Nil(t, RationalNumber{Value: r}.MobileType())
	})

	t.Run("fractional", func(t *testing.T) {
		r := Rational(1, 3)
		assert.True(t, r.IsFractional())
		assert.Nil(t, r.MobileType())
	})
}

func TestStringLiteralMobileType(t *testing.T) {
	assert.Equal(t, "t_string_memory", Literal("abc").MobileType().Identifier())
}
