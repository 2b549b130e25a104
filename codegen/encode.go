package codegen

import (
	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// EncodingFunction returns the procedure newDyn := f(value, headStart,
// headPos, dyn) that stores value of type given as target into the head slot
// at headPos. Only statically sized targets are supported, so newDyn is
// always dyn.
func (g *Generator) EncodingFunction(given, target abitype.Type, library bool) (string, error) {
	name := "abi_encode_" + given.Identifier() + "_to_" + target.Identifier()
	if library {
		name += "_lib"
	}

	unimplemented := func(detail string) error {
		e := errors.Unimplemented(errors.PhaseEncode, detail, given.Identifier(), target.Identifier())
		e.Function = name
		return e
	}
	internal := func(format string, args ...any) error {
		return errors.New(errors.PhaseEncode, errors.KindInternal).
			Function(name).
			From(given.Identifier()).
			To(target.Identifier()).
			Detail(format, args...).
			Build()
	}

	return g.request("encode", name, func() (*yul.FunctionDefinition, error) {
		if target.IsDynamicallySized() {
			return nil, unimplemented("dynamically sized target")
		}
		if given.SizeOnStack() != 1 {
			return nil, unimplemented("value occupying multiple stack slots")
		}

		var stored yul.Expression
		value := yul.Ident("value")
		inStorage := given.DataStoredIn(abitype.LocationStorage)

		switch {
		case inStorage && target.IsValueType():
			if !library {
				return nil, internal("storage reference outside library call")
			}
			if !abitype.Equal(target, abitype.Uint(256)) {
				return nil, internal("storage reference encoded as %s", target)
			}
			stored = value

		case inStorage, given.DataStoredIn(abitype.LocationCallData),
			given.Category() == abitype.CategoryStringLiteral,
			given.Category() == abitype.CategoryFunction:
			return nil, unimplemented("source value needs materialization")

		case target.Category() == abitype.CategoryArray, target.Category() == abitype.CategoryStruct:
			return nil, unimplemented(target.Category().String() + " target")

		default:
			if !target.IsValueType() || target.CalldataEncodedSize() != abitype.WordSize {
				return nil, internal("target is not a single-word value type")
			}
			var fn string
			var err error
			if abitype.Equal(given, target) {
				fn, err = g.Cleanup(given, false)
			} else {
				fn, err = g.Conversion(given, target)
			}
			if err != nil {
				return nil, err
			}
			stored = yul.Call(fn, value)
		}

		return &yul.FunctionDefinition{
			Name:    name,
			Params:  []string{"value", "headStart", "headPos", "dyn"},
			Returns: []string{"newDyn"},
			Body: yul.NewBlock(
				yul.Assign("newDyn", yul.Ident("dyn")),
				yul.Do("mstore", yul.Ident("headPos"), stored),
			),
		}, nil
	})
}
