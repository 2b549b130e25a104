package codegen

import (
	"github.com/holiman/uint256"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// Cleanup returns the procedure cleaned := f(value) that maps any word to
// the canonical representation of t. revertOnFailure only matters for enums,
// which abort with revert(0, 0) instead of invalid() when it is set.
func (g *Generator) Cleanup(t abitype.Type, revertOnFailure bool) (string, error) {
	mode := "assert"
	if _, isEnum := t.(abitype.Enum); isEnum && revertOnFailure {
		mode = "revert"
	} else {
		revertOnFailure = false
	}
	name := "cleanup_" + mode + "_" + t.Identifier()

	return g.request("cleanup", name, func() (*yul.FunctionDefinition, error) {
		body, err := g.cleanupBody(t, revertOnFailure)
		if err != nil {
			return nil, err
		}
		return yul.Func(name, []string{"value"}, "cleaned", body...), nil
	})
}

func (g *Generator) cleanupBody(t abitype.Type, revertOnFailure bool) ([]yul.Statement, error) {
	value := yul.Ident("value")
	assign := func(e yul.Expression) []yul.Statement {
		return []yul.Statement{yul.Assign("cleaned", e)}
	}

	switch typ := t.(type) {
	case abitype.Integer:
		if err := checkIntegerBits(errors.PhaseCleanup, typ); err != nil {
			return nil, err
		}
		switch {
		case typ.Bits == 256:
			return assign(value), nil
		case typ.Signed:
			return assign(yul.Call("signextend", yul.Num(uint64(typ.Bits/8-1)), value)), nil
		default:
			return assign(yul.Call("and", value, yul.Hex(lowMask(typ.Bits)))), nil
		}

	case abitype.RationalNumber:
		return assign(value), nil

	case abitype.Bool:
		return assign(yul.Call("iszero", yul.Call("iszero", value))), nil

	case abitype.FixedBytes:
		if typ.Bytes < 0 || typ.Bytes > 32 {
			return nil, errors.Internal(errors.PhaseCleanup, "bytes%d out of range", typ.Bytes)
		}
		switch typ.Bytes {
		case 32:
			return assign(value), nil
		case 0:
			return assign(yul.Num(0)), nil
		default:
			return assign(yul.Call("and", value, yul.Hex(highMask(8*typ.Bytes)))), nil
		}

	case abitype.Contract:
		addr, err := g.Cleanup(abitype.Address(), false)
		if err != nil {
			return nil, err
		}
		return assign(yul.Call(addr, value)), nil

	case abitype.Enum:
		if typ.Members <= 0 {
			return nil, errors.New(errors.PhaseCleanup, errors.KindInternal).
				From(typ.Identifier()).
				Detail("enum without members").
				Build()
		}
		abort := yul.Do("invalid")
		if revertOnFailure {
			abort = yul.Do("revert", yul.Num(0), yul.Num(0))
		}
		return []yul.Statement{
			&yul.Switch{
				Expr:  yul.Call("lt", value, yul.Num(uint64(typ.Members))),
				Cases: []yul.Case{{Value: yul.Num(0), Body: yul.NewBlock(abort)}},
			},
			yul.Assign("cleaned", value),
		}, nil

	case abitype.FixedPoint:
		return nil, errors.Unimplemented(errors.PhaseCleanup, "fixed point types", typ.Identifier())

	case abitype.Array, abitype.Struct:
		return nil, errors.New(errors.PhaseCleanup, errors.KindInternal).
			From(t.Identifier()).
			Detail("cleanup requested for %s", t.Category()).
			Build()
	}

	return nil, errors.New(errors.PhaseCleanup, errors.KindInternal).
		From(t.Identifier()).
		Detail("no cleanup for category %s", t.Category()).
		Build()
}

func checkIntegerBits(phase errors.Phase, t abitype.Integer) error {
	if t.Bits < 8 || t.Bits > 256 || t.Bits%8 != 0 {
		return errors.New(phase, errors.KindInternal).
			From(t.Identifier()).
			Detail("invalid integer width %d", t.Bits).
			Build()
	}
	return nil
}

// lowMask is 2^bits - 1.
func lowMask(bits int) *uint256.Int {
	return new(uint256.Int).SubUint64(pow2(bits), 1)
}

// highMask keeps the top bits of a word.
func highMask(bits int) *uint256.Int {
	return new(uint256.Int).Not(lowMask(256 - bits))
}
