package codegen

import (
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/abigen/yul"
	"github.com/wippyai/abigen/yul/interp"
)

// machine drains g into a fresh evaluator.
func machine(t *testing.T, g *Generator) *interp.Machine {
	t.Helper()
	var defs []*yul.FunctionDefinition
	for _, f := range g.Flush() {
		defs = append(defs, f.Def)
	}
	m, err := interp.New(defs)
	require.NoError(t, err)
	return m
}

// hexWord parses a 0x-prefixed word; leading zero digits are allowed.
func hexWord(t *testing.T, s string) *uint256.Int {
	t.Helper()
	digits := strings.TrimLeft(strings.TrimPrefix(s, "0x"), "0")
	if digits == "" {
		return new(uint256.Int)
	}
	w, err := uint256.FromHex("0x" + digits)
	require.NoError(t, err)
	return w
}

func allOnes() *uint256.Int { return new(uint256.Int).SetAllOne() }

// samples is a fixed spread of words covering sign bits and byte patterns.
func samples(t *testing.T) []*uint256.Int {
	t.Helper()
	out := []*uint256.Int{
		uint256.NewInt(0),
		uint256.NewInt(1),
		uint256.NewInt(0x7f),
		uint256.NewInt(0x80),
		uint256.NewInt(0xff),
		uint256.NewInt(300),
		uint256.NewInt(0xffff),
		allOnes(),
		hexWord(t, "0x8000000000000000000000000000000000000000000000000000000000000000"),
		hexWord(t, "0x1122334455667788990011223344556677889900112233445566778899001122"),
		hexWord(t, "0xfedcba9876543210fedcba9876543210fedcba9876543210fedcba9876543210"),
	}
	for bits := 8; bits < 256; bits += 40 {
		out = append(out, pow2(bits), lowMask(bits), new(uint256.Int).AddUint64(pow2(bits), 1))
	}
	return out
}
