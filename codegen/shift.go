package codegen

import (
	"strconv"

	"github.com/holiman/uint256"

	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

func pow2(n int) *uint256.Int {
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(n))
}

func checkShift(n int) error {
	if n < 0 || n >= 256 {
		return errors.New(errors.PhaseShift, errors.KindInternal).
			Value(n).
			Detail("shift by %d bits", n).
			Build()
	}
	return nil
}

// ShiftLeft returns shift_left_<n>, a logical left shift by n bits.
func (g *Generator) ShiftLeft(n int) (string, error) {
	if err := checkShift(n); err != nil {
		return "", err
	}
	name := "shift_left_" + strconv.Itoa(n)
	return g.request("shift", name, func() (*yul.FunctionDefinition, error) {
		return yul.Func(name, []string{"value"}, "newValue",
			yul.Assign("newValue", yul.Call("mul", yul.Ident("value"), yul.Dec(pow2(n)))),
		), nil
	})
}

// ShiftRight returns shift_right_<n>_<signed|unsigned>.
func (g *Generator) ShiftRight(n int, signed bool) (string, error) {
	if err := checkShift(n); err != nil {
		return "", err
	}
	op, suffix := "div", "_unsigned"
	if signed {
		op, suffix = "sdiv", "_signed"
	}
	name := "shift_right_" + strconv.Itoa(n) + suffix
	return g.request("shift", name, func() (*yul.FunctionDefinition, error) {
		return yul.Func(name, []string{"value"}, "newValue",
			yul.Assign("newValue", yul.Call(op, yul.Ident("value"), yul.Dec(pow2(n)))),
		), nil
	})
}
