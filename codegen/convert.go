package codegen

import (
	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// Conversion returns the procedure converted := f(value) that turns a clean
// value of from into a clean value of to.
func (g *Generator) Conversion(from, to abitype.Type) (string, error) {
	name := "convert_" + from.Identifier() + "_to_" + to.Identifier()

	return g.request("convert", name, func() (*yul.FunctionDefinition, error) {
		expr, err := g.conversionExpr(from, to, yul.Ident("value"))
		if err != nil {
			return nil, err
		}
		return yul.Func(name, []string{"value"}, "converted", yul.Assign("converted", expr)), nil
	})
}

func (g *Generator) conversionExpr(from, to abitype.Type, value yul.Expression) (yul.Expression, error) {
	unimplemented := func(detail string) error {
		return errors.Unimplemented(errors.PhaseConvert, detail, from.Identifier(), to.Identifier())
	}
	internal := func(format string, args ...any) error {
		return errors.New(errors.PhaseConvert, errors.KindInternal).
			From(from.Identifier()).
			To(to.Identifier()).
			Detail(format, args...).
			Build()
	}
	cleanWith := func(t abitype.Type) (yul.Expression, error) {
		fn, err := g.Cleanup(t, false)
		if err != nil {
			return nil, err
		}
		return yul.Call(fn, value), nil
	}

	switch src := from.(type) {
	case abitype.Integer, abitype.RationalNumber, abitype.Contract:
		if r, ok := src.(abitype.RationalNumber); ok && r.IsFractional() {
			return nil, unimplemented("fractional literal conversion")
		}
		switch dst := to.(type) {
		case abitype.FixedBytes:
			if from.Category() == abitype.CategoryContract {
				return nil, internal("contract to fixed bytes")
			}
			if dst.Bytes <= 0 || dst.Bytes > 32 {
				return nil, internal("bytes%d out of range", dst.Bytes)
			}
			shift, err := g.ShiftLeft(256 - 8*dst.Bytes)
			if err != nil {
				return nil, err
			}
			cleaned, err := cleanWith(from)
			if err != nil {
				return nil, err
			}
			return yul.Call(shift, cleaned), nil

		case abitype.Enum:
			mobile := from.MobileType()
			if mobile == nil {
				return nil, internal("source has no integer form")
			}
			inner, err := g.Cleanup(mobile, false)
			if err != nil {
				return nil, err
			}
			outer, err := g.Cleanup(dst, false)
			if err != nil {
				return nil, err
			}
			return yul.Call(outer, yul.Call(inner, value)), nil

		case abitype.FixedPoint:
			return nil, unimplemented("fixed point conversion")

		case abitype.Integer, abitype.Contract:
			if _, ok := src.(abitype.RationalNumber); ok {
				return cleanWith(to)
			}
			fromInt, toInt := asInteger(from), asInteger(to)
			if toInt.Bits > fromInt.Bits {
				return cleanWith(fromInt)
			}
			return cleanWith(toInt)
		}
		return nil, internal("no conversion from %s to %s", from.Category(), to.Category())

	case abitype.Bool:
		if !abitype.Equal(from, to) {
			return nil, internal("bool converts only to itself")
		}
		return cleanWith(from)

	case abitype.FixedPoint:
		return nil, unimplemented("fixed point conversion")

	case abitype.Array, abitype.Struct, abitype.Function, abitype.Tuple:
		return nil, unimplemented(from.Category().String() + " conversion")

	case abitype.FixedBytes:
		switch dst := to.(type) {
		case abitype.Integer:
			if src.Bytes <= 0 || src.Bytes > 32 {
				return nil, internal("bytes%d out of range", src.Bytes)
			}
			shift, err := g.ShiftRight(256-8*src.Bytes, false)
			if err != nil {
				return nil, err
			}
			conv, err := g.Conversion(abitype.Uint(8*src.Bytes), dst)
			if err != nil {
				return nil, err
			}
			return yul.Call(conv, yul.Call(shift, value)), nil

		case abitype.FixedBytes:
			if dst.Bytes < src.Bytes {
				return nil, internal("narrowing bytes%d to bytes%d", src.Bytes, dst.Bytes)
			}
			return cleanWith(from)
		}
		return nil, internal("no conversion from fixed bytes to %s", to.Category())

	case abitype.Enum:
		switch to.(type) {
		case abitype.Integer:
			return cleanWith(from)
		case abitype.Enum:
			if abitype.Equal(from, to) {
				return cleanWith(from)
			}
		}
		return nil, internal("no conversion from enum to %s", to.Category())
	}

	return nil, internal("no conversion from %s", from.Category())
}

// asInteger views an integer or contract type as an integer; contracts are
// 160-bit addresses.
func asInteger(t abitype.Type) abitype.Integer {
	if i, ok := t.(abitype.Integer); ok {
		return i
	}
	return abitype.Address()
}
