package codegen

import (
	"strconv"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// Names bound by the code that splices a tuple encoder.
const (
	HeadStartVar   = "$headStart"
	ValueVarPrefix = "$value"
)

// ValueVar returns the name of the stack slot holding value i.
func ValueVar(i int) string {
	return ValueVarPrefix + strconv.Itoa(i)
}

// EncodeTuple returns inline code that ABI-encodes the values $value0 ..
// $value<n-1> of the given types as targets into the head starting at
// $headStart. Afterwards $value0 holds the end of the encoded data.
func (g *Generator) EncodeTuple(given, targets []abitype.Type, library bool) (*yul.Block, error) {
	if len(given) == 0 {
		return nil, errors.Internal(errors.PhaseEncode, "empty tuple")
	}
	if len(given) != len(targets) {
		return nil, errors.Internal(errors.PhaseEncode, "%d values for %d target types", len(given), len(targets))
	}

	info, err := g.layout.Calculate(targets)
	if err != nil {
		return nil, err
	}

	headStart := yul.Ident(HeadStartVar)
	block := yul.NewBlock(
		yul.Let("dynFree", yul.Call("add", headStart, yul.Num(uint64(info.HeadSize)))),
	)
	for i, t := range given {
		if t.SizeOnStack() != 1 {
			return nil, errors.Unimplemented(errors.PhaseEncode,
				"value occupying "+strconv.Itoa(t.SizeOnStack())+" stack slots", t.Identifier(), targets[i].Identifier())
		}
		enc, err := g.EncodingFunction(t, targets[i], library)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, yul.Assign("dynFree", yul.Call(enc,
			yul.Ident(ValueVar(i)),
			headStart,
			yul.Call("add", headStart, yul.Num(uint64(info.Offsets[i]))),
			yul.Ident("dynFree"),
		)))
	}
	block.Statements = append(block.Statements, yul.Assign(ValueVar(0), yul.Ident("dynFree")))
	return block, nil
}

// TupleEncoder is EncodeTuple rendered as text.
func (g *Generator) TupleEncoder(given, targets []abitype.Type, library bool) (string, error) {
	block, err := g.EncodeTuple(given, targets, library)
	if err != nil {
		return "", err
	}
	return yul.PrintStatements(block.Statements), nil
}
