package yul

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
)

func TestPrintFunction(t *testing.T) {
	f := Func("cleanup_assert_t_bool", []string{"value"}, "cleaned",
		Assign("cleaned", Call("iszero", Call("iszero", Ident("value")))),
	)

	want := "function cleanup_assert_t_bool(value) -> cleaned {\n" +
		"    cleaned := iszero(iszero(value))\n" +
		"}\n"
	assert.Equal(t, want, Print(f))
}

func TestPrintSwitch(t *testing.T) {
	f := Func("check", []string{"value"}, "cleaned",
		&Switch{
			Expr: Call("lt", Ident("value"), Num(3)),
			Cases: []Case{
				{Value: Num(0), Body: NewBlock(Do("revert", Num(0), Num(0)))},
			},
			Default: NewBlock(),
		},
		Assign("cleaned", Ident("value")),
	)

	want := "function check(value) -> cleaned {\n" +
		"    switch lt(value, 3)\n" +
		"    case 0 {\n" +
		"        revert(0, 0)\n" +
		"    }\n" +
		"    default { }\n" +
		"    cleaned := value\n" +
		"}\n"
	assert.Equal(t, want, Print(f))
}

func TestPrintStatements(t *testing.T) {
	stmts := []Statement{
		Let("dynFree", Call("add", Ident("$headStart"), Num(64))),
		&VariableDeclaration{Names: []string{"a", "b"}},
		Assign("$value0", Ident("dynFree")),
	}

	want := "let dynFree := add($headStart, 64)\n" +
		"let a, b\n" +
		"$value0 := dynFree\n"
	assert.Equal(t, want, PrintStatements(stmts))
}

func TestLiterals(t *testing.T) {
	mask := new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 8), 1)
	assert.Equal(t, "0xff", Hex(mask).Value)
	assert.Equal(t, "255", Dec(mask).Value)
	assert.Equal(t, "0x0", Hex(new(uint256.Int)).Value)
	assert.Equal(t, "42", Num(42).Value)
}

func TestEmpty(t *testing.T) {
	var nilDef *FunctionDefinition
	assert.True(t, nilDef.Empty())
	assert.True(t, Func("f", nil, "r").Empty())
	assert.True(t, Func("", nil, "r", Assign("r", Num(1))).Empty())
	assert.False(t, Func("f", nil, "r", Assign("r", Num(1))).Empty())
}

func TestPrintNoReturns(t *testing.T) {
	f := &FunctionDefinition{Name: "g", Body: NewBlock(Do("invalid"))}
	assert.Equal(t, "function g() {\n    invalid()\n}\n", Print(f))
}
