package abitype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/abigen/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"uint8", "t_uint8"},
		{"uint", "t_uint256"},
		{"int", "t_int256"},
		{"int24", "t_int24"},
		{"address", "t_address"},
		{"bool", "t_bool"},
		{"byte", "t_bytes1"},
		{"bytes32", "t_bytes32"},
		{"bytes", "t_bytes_memory"},
		{"string calldata", "t_string_calldata"},
		{"fixed128x18", "t_fixed128x18"},
		{"ufixed8x1", "t_ufixed8x1"},
		{"function", "t_function_internal"},
		{"function external", "t_function_external"},
		{"enum:Color:3#7", "t_enum$_Color_$7"},
		{"enum:Color:3", "t_enum$_Color_$0"},
		{"contract:Token#2", "t_contract$_Token_$2"},
		{"rational:-5", "t_rational_minus_5_by_1"},
		{"rational:6/4", "t_rational_3_by_2"},
		{"uint8[3]", "t_array$_t_uint8_$3_memory"},
		{"uint8[] storage", "t_array$_t_uint8_$dyn_storage"},
		{"bool[2][]", "t_array$_t_array$_t_bool_$2_memory_$dyn_memory"},
		{"struct:Point#4(uint8, uint8)", "t_struct$_Point_$4_memory"},
		{"struct:S#1(uint256) storage", "t_struct$_S_$1_storage"},
		{"(uint8,bool)", "t_tuple$_t_uint8_$_t_bool_$"},
		{"  uint16  ", "t_uint16"},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Identifier())
		})
	}
}

func TestParseEnumMembers(t *testing.T) {
	got, err := Parse("enum:E:5")
	require.NoError(t, err)
	e, ok := got.(Enum)
	require.True(t, ok)
	assert.Equal(t, 5, e.Members)
}

func TestParseLiteral(t *testing.T) {
	got, err := Parse(`literal:"a\"b"`)
	require.NoError(t, err)
	assert.Equal(t, Literal(`a"b`).Identifier(), got.Identifier())
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"uint7",
		"uint512",
		"bytes33",
		"bytes0",
		"fixed12",
		"enum:E:0",
		"enum:E",
		"uint8 storage",
		"uint8[",
		"(uint8",
		"frob",
		"uint8 uint8",
		`literal:"open`,
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.Equal(t, errors.KindInvalidInput, errors.KindOf(err))
		})
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList([]string{"uint8", "bool"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, CategoryBool, got[1].Category())

	_, err = ParseList([]string{"uint8", "nope"})
	assert.Error(t, err)
}
