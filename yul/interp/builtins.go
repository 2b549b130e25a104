package interp

import (
	"github.com/holiman/uint256"

	"github.com/wippyai/abigen/errors"
)

type builtin struct {
	fn    func(m *Machine, args []*uint256.Int) ([]*uint256.Int, error)
	arity int
}

func one(v *uint256.Int) ([]*uint256.Int, error) {
	return []*uint256.Int{v}, nil
}

func boolWord(b bool) *uint256.Int {
	if b {
		return uint256.NewInt(1)
	}
	return new(uint256.Int)
}

func binary(op func(z, x, y *uint256.Int) *uint256.Int) builtin {
	return builtin{arity: 2, fn: func(_ *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
		return one(op(new(uint256.Int), a[0], a[1]))
	}}
}

func compare(op func(x, y *uint256.Int) bool) builtin {
	return builtin{arity: 2, fn: func(_ *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
		return one(boolWord(op(a[0], a[1])))
	}}
}

// shift builds shl/shr/sar; the shift amount is the first argument.
func shift(op func(z, x *uint256.Int, n uint) *uint256.Int, overflow func(x *uint256.Int) *uint256.Int) builtin {
	return builtin{arity: 2, fn: func(_ *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
		if !a[0].LtUint64(256) {
			return one(overflow(a[1]))
		}
		return one(op(new(uint256.Int), a[1], uint(a[0].Uint64())))
	}}
}

func zero(_ *uint256.Int) *uint256.Int { return new(uint256.Int) }

func signFill(x *uint256.Int) *uint256.Int {
	if x.Sign() < 0 {
		return new(uint256.Int).SetAllOne()
	}
	return new(uint256.Int)
}

func offset(m *Machine, w *uint256.Int) (uint64, error) {
	if !w.IsUint64() || w.Uint64() > MaxMemory {
		return 0, errors.New(errors.PhaseEval, errors.KindOutOfBounds).
			Function(m.current()).
			Path("memory").
			Detail("offset %s out of range", w.Hex()).
			Build()
	}
	return w.Uint64(), nil
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"add":  binary((*uint256.Int).Add),
		"sub":  binary((*uint256.Int).Sub),
		"mul":  binary((*uint256.Int).Mul),
		"div":  binary((*uint256.Int).Div),
		"sdiv": binary((*uint256.Int).SDiv),
		"mod":  binary((*uint256.Int).Mod),
		"and":  binary((*uint256.Int).And),
		"or":   binary((*uint256.Int).Or),
		"xor":  binary((*uint256.Int).Xor),
		"signextend": binary(func(z, b, x *uint256.Int) *uint256.Int {
			return z.ExtendSign(x, b)
		}),
		"not": {arity: 1, fn: func(_ *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
			return one(new(uint256.Int).Not(a[0]))
		}},
		"iszero": {arity: 1, fn: func(_ *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
			return one(boolWord(a[0].IsZero()))
		}},
		"eq":  compare((*uint256.Int).Eq),
		"lt":  compare((*uint256.Int).Lt),
		"gt":  compare((*uint256.Int).Gt),
		"slt": compare((*uint256.Int).Slt),
		"sgt": compare((*uint256.Int).Sgt),
		"shl": shift((*uint256.Int).Lsh, zero),
		"shr": shift((*uint256.Int).Rsh, zero),
		"sar": shift((*uint256.Int).SRsh, signFill),
		"mstore": {arity: 2, fn: func(m *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
			off, err := offset(m, a[0])
			if err != nil {
				return nil, err
			}
			return nil, m.mem.WriteWord(off, a[1].Bytes32())
		}},
		"mload": {arity: 1, fn: func(m *Machine, a []*uint256.Int) ([]*uint256.Int, error) {
			off, err := offset(m, a[0])
			if err != nil {
				return nil, err
			}
			w, err := m.mem.ReadWord(off)
			if err != nil {
				return nil, err
			}
			return one(new(uint256.Int).SetBytes32(w[:]))
		}},
		"revert": {arity: 2, fn: func(m *Machine, _ []*uint256.Int) ([]*uint256.Int, error) {
			return nil, errors.Revert(m.current())
		}},
		"invalid": {arity: 0, fn: func(m *Machine, _ []*uint256.Int) ([]*uint256.Int, error) {
			return nil, errors.InvalidOpcode(m.current())
		}},
	}
}
