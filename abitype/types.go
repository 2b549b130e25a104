package abitype

import (
	"encoding/hex"
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/sha3"
)

// WordSize is the size of one VM word and of one ABI head slot, in bytes.
const WordSize = 32

// AddressBits is the width of an address.
const AddressBits = 160

// Type is the query interface the generator consumes. The set of
// implementations is closed; every synthesizer switches over it exhaustively.
type Type interface {
	Category() Category
	// Identifier is stable and unique per distinct type. Generated procedure
	// names are built from it.
	Identifier() string
	// String is the source-level spelling.
	String() string
	IsValueType() bool
	IsDynamicallySized() bool
	// CalldataEncodedSize is the head size in bytes, 0 when the type has no
	// ABI encoding.
	CalldataEncodedSize() int
	SizeOnStack() int
	DataStoredIn(loc Location) bool
	// MobileType is the type a literal collapses to, nil if there is none.
	MobileType() Type

	sealed()
}

// Equal reports whether a and b denote the same type.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Identifier() == b.Identifier()
}

// identifierList wraps ids the way nested identifiers are written: $_a_$_b_$.
func identifierList(ids ...string) string {
	return "$_" + strings.Join(ids, "_$_") + "_$"
}

// value provides the defaults shared by single-word value types.
type value struct{}

func (value) IsValueType() bool            { return true }
func (value) IsDynamicallySized() bool     { return false }
func (value) CalldataEncodedSize() int     { return WordSize }
func (value) SizeOnStack() int             { return 1 }
func (value) DataStoredIn(_ Location) bool { return false }
func (value) sealed()                      {}

// Integer is uintN / intN, and address when Address is set.
type Integer struct {
	value
	Bits    int
	Signed  bool
	Address bool
}

// Uint returns the unsigned integer type of the given width.
func Uint(bits int) Integer { return Integer{Bits: bits} }

// Int returns the signed integer type of the given width.
func Int(bits int) Integer { return Integer{Bits: bits, Signed: true} }

// Address returns the 160-bit address type.
func Address() Integer { return Integer{Bits: AddressBits, Address: true} }

func (Integer) Category() Category { return CategoryInteger }

func (t Integer) Identifier() string { return "t_" + t.String() }

func (t Integer) String() string {
	switch {
	case t.Address:
		return "address"
	case t.Signed:
		return "int" + strconv.Itoa(t.Bits)
	default:
		return "uint" + strconv.Itoa(t.Bits)
	}
}

func (t Integer) MobileType() Type { return t }

// Bool is the boolean type.
type Bool struct{ value }

func (Bool) Category() Category { return CategoryBool }
func (Bool) Identifier() string { return "t_bool" }
func (Bool) String() string     { return "bool" }
func (t Bool) MobileType() Type { return t }

// FixedBytes is bytesN, left-aligned in its word.
type FixedBytes struct {
	value
	Bytes int
}

// BytesN returns the fixed-size byte array type of n bytes.
func BytesN(n int) FixedBytes { return FixedBytes{Bytes: n} }

func (FixedBytes) Category() Category   { return CategoryFixedBytes }
func (t FixedBytes) Identifier() string { return "t_" + t.String() }
func (t FixedBytes) String() string     { return "bytes" + strconv.Itoa(t.Bytes) }
func (t FixedBytes) MobileType() Type   { return t }

// Enum is a user-defined enumeration. ID is the declaration id assigned
// upstream and keeps same-named enums apart.
type Enum struct {
	value
	Name    string
	ID      int
	Members int
}

func (Enum) Category() Category { return CategoryEnum }

func (t Enum) Identifier() string {
	return "t_enum" + identifierList(t.Name) + strconv.Itoa(t.ID)
}

func (t Enum) String() string   { return "enum " + t.Name }
func (t Enum) MobileType() Type { return t }

// Contract is a reference to a deployed contract, passed as an address.
type Contract struct {
	value
	Name string
	ID   int
}

func (Contract) Category() Category { return CategoryContract }

func (t Contract) Identifier() string {
	return "t_contract" + identifierList(t.Name) + strconv.Itoa(t.ID)
}

func (t Contract) String() string   { return "contract " + t.Name }
func (t Contract) MobileType() Type { return t }

// FixedPoint is fixedMxN / ufixedMxN.
type FixedPoint struct {
	value
	Bits       int
	Fractional int
	Signed     bool
}

func (FixedPoint) Category() Category   { return CategoryFixedPoint }
func (t FixedPoint) Identifier() string { return "t_" + t.String() }

func (t FixedPoint) String() string {
	prefix := "ufixed"
	if t.Signed {
		prefix = "fixed"
	}
	return prefix + strconv.Itoa(t.Bits) + "x" + strconv.Itoa(t.Fractional)
}

func (t FixedPoint) MobileType() Type { return t }

// Function is a function value. External functions occupy two stack slots
// (address and selector).
type Function struct {
	value
	External bool
}

func (Function) Category() Category { return CategoryFunction }

func (t Function) Identifier() string { return "t_function_" + t.kind() }
func (t Function) String() string     { return "function " + t.kind() }
func (t Function) MobileType() Type   { return t }

func (t Function) kind() string {
	if t.External {
		return "external"
	}
	return "internal"
}

func (t Function) SizeOnStack() int {
	if t.External {
		return 2
	}
	return 1
}

func (t Function) CalldataEncodedSize() int {
	if t.External {
		return WordSize
	}
	return 0
}

// RationalNumber is the type of a number literal.
type RationalNumber struct {
	value
	Value *big.Rat
}

// Rational returns the literal type of num/den.
func Rational(num, den int64) RationalNumber {
	return RationalNumber{Value: big.NewRat(num, den)}
}

func (RationalNumber) Category() Category { return CategoryRationalNumber }

// CalldataEncodedSize is zero: literals are never an encoding target.
func (RationalNumber) CalldataEncodedSize() int { return 0 }

// IsFractional reports whether the literal is not an integer.
func (t RationalNumber) IsFractional() bool {
	return !t.rat().IsInt()
}

func (t RationalNumber) rat() *big.Rat {
	if t.Value == nil {
		return new(big.Rat)
	}
	return t.Value
}

func (t RationalNumber) Identifier() string {
	r := t.rat()
	num := r.Num()
	sign := ""
	if num.Sign() < 0 {
		sign = "minus_"
		num = new(big.Int).Neg(num)
	}
	return "t_rational_" + sign + num.String() + "_by_" + r.Denom().String()
}

func (t RationalNumber) String() string {
	return "rational_const " + t.rat().RatString()
}

// MobileType is the smallest integer type holding the value, nil for
// fractional literals and for values that do not fit 256 bits.
func (t RationalNumber) MobileType() Type {
	r := t.rat()
	if !r.IsInt() {
		return nil
	}
	num := r.Num()
	signed := num.Sign() < 0
	var bits int
	if signed {
		v := new(big.Int).Neg(num)
		v.Sub(v, big.NewInt(1))
		bits = v.BitLen() + 1
	} else {
		bits = num.BitLen()
	}
	bits = (bits + 7) / 8 * 8
	if bits == 0 {
		bits = 8
	}
	if bits > 256 {
		return nil
	}
	return Integer{Bits: bits, Signed: signed}
}

// StringLiteral is the type of a string literal.
type StringLiteral struct {
	Value string
}

// Literal returns the literal type for s.
func Literal(s string) StringLiteral { return StringLiteral{Value: s} }

func (StringLiteral) Category() Category           { return CategoryStringLiteral }
func (StringLiteral) IsValueType() bool            { return false }
func (StringLiteral) IsDynamicallySized() bool     { return false }
func (StringLiteral) CalldataEncodedSize() int     { return 0 }
func (StringLiteral) SizeOnStack() int             { return 0 }
func (StringLiteral) DataStoredIn(_ Location) bool { return false }
func (StringLiteral) sealed()                      {}

func (t StringLiteral) Identifier() string {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(t.Value))
	return "t_stringliteral_" + hex.EncodeToString(h.Sum(nil))
}

func (t StringLiteral) String() string {
	return "literal_string " + strconv.Quote(t.Value)
}

func (t StringLiteral) MobileType() Type {
	return String(LocationMemory)
}

// ArrayKind distinguishes bytes and string from ordinary arrays.
type ArrayKind uint8

const (
	ArrayOrdinary ArrayKind = iota
	ArrayBytes
	ArrayString
)

// Array is T[k], T[], bytes or string.
type Array struct {
	Base     Type
	Length   int
	Dynamic  bool
	Kind     ArrayKind
	Location Location
}

// StaticArray returns base[length] at loc.
func StaticArray(base Type, length int, loc Location) Array {
	return Array{Base: base, Length: length, Location: loc}
}

// DynamicArray returns base[] at loc.
func DynamicArray(base Type, loc Location) Array {
	return Array{Base: base, Dynamic: true, Location: loc}
}

// Bytes returns the dynamic bytes type at loc.
func Bytes(loc Location) Array {
	return Array{Base: BytesN(1), Dynamic: true, Kind: ArrayBytes, Location: loc}
}

// String returns the dynamic string type at loc.
func String(loc Location) Array {
	return Array{Base: BytesN(1), Dynamic: true, Kind: ArrayString, Location: loc}
}

func (Array) Category() Category { return CategoryArray }
func (Array) IsValueType() bool  { return false }
func (Array) sealed()            {}

func (t Array) IsDynamicallySized() bool {
	return t.Dynamic || t.Kind != ArrayOrdinary
}

func (t Array) CalldataEncodedSize() int {
	if t.IsDynamicallySized() || t.Base == nil {
		return WordSize
	}
	return mulSize(t.Length, t.Base.CalldataEncodedSize())
}

func (t Array) SizeOnStack() int {
	if t.Location == LocationCallData && t.IsDynamicallySized() {
		return 2
	}
	return 1
}

func (t Array) DataStoredIn(loc Location) bool { return t.Location == loc }
func (t Array) MobileType() Type               { return t }

func (t Array) Identifier() string {
	var b strings.Builder
	switch t.Kind {
	case ArrayBytes:
		b.WriteString("t_bytes")
	case ArrayString:
		b.WriteString("t_string")
	default:
		b.WriteString("t_array")
		b.WriteString(identifierList(baseIdentifier(t.Base)))
		if t.Dynamic {
			b.WriteString("dyn")
		} else {
			b.WriteString(strconv.Itoa(t.Length))
		}
	}
	if t.Location != LocationNone {
		b.WriteByte('_')
		b.WriteString(t.Location.String())
	}
	return b.String()
}

func (t Array) String() string {
	var s string
	switch t.Kind {
	case ArrayBytes:
		s = "bytes"
	case ArrayString:
		s = "string"
	default:
		s = baseString(t.Base) + "["
		if !t.Dynamic {
			s += strconv.Itoa(t.Length)
		}
		s += "]"
	}
	if t.Location != LocationNone {
		s += " " + t.Location.String()
	}
	return s
}

// Struct is a user-defined struct.
type Struct struct {
	Name     string
	ID       int
	Members  []Type
	Location Location
}

func (Struct) Category() Category { return CategoryStruct }
func (Struct) IsValueType() bool  { return false }
func (Struct) SizeOnStack() int   { return 1 }
func (Struct) sealed()            {}

func (t Struct) IsDynamicallySized() bool {
	for _, m := range t.Members {
		if m.IsDynamicallySized() {
			return true
		}
	}
	return false
}

func (t Struct) CalldataEncodedSize() int {
	if t.IsDynamicallySized() {
		return WordSize
	}
	size := 0
	for _, m := range t.Members {
		size = addSize(size, m.CalldataEncodedSize())
	}
	return size
}

// mulSize and addSize saturate at math.MaxInt so oversized aggregates stay
// visible as too large instead of wrapping.
func mulSize(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	if n > math.MaxInt/size {
		return math.MaxInt
	}
	return n * size
}

func addSize(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func (t Struct) DataStoredIn(loc Location) bool { return t.Location == loc }
func (t Struct) MobileType() Type               { return t }

func (t Struct) Identifier() string {
	id := "t_struct" + identifierList(t.Name) + strconv.Itoa(t.ID)
	if t.Location != LocationNone {
		id += "_" + t.Location.String()
	}
	return id
}

func (t Struct) String() string {
	s := "struct " + t.Name
	if t.Location != LocationNone {
		s += " " + t.Location.String()
	}
	return s
}

// Tuple is the type of a parenthesized expression list.
type Tuple struct {
	Components []Type
}

func (Tuple) Category() Category           { return CategoryTuple }
func (Tuple) IsValueType() bool            { return false }
func (Tuple) IsDynamicallySized() bool     { return false }
func (Tuple) CalldataEncodedSize() int     { return 0 }
func (Tuple) DataStoredIn(_ Location) bool { return false }
func (Tuple) sealed()                      {}
func (t Tuple) MobileType() Type           { return t }

func (t Tuple) SizeOnStack() int {
	n := 0
	for _, c := range t.Components {
		if c != nil {
			n += c.SizeOnStack()
		}
	}
	return n
}

func (t Tuple) Identifier() string {
	ids := make([]string, len(t.Components))
	for i, c := range t.Components {
		ids[i] = baseIdentifier(c)
	}
	return "t_tuple" + identifierList(ids...)
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Components))
	for i, c := range t.Components {
		parts[i] = baseString(c)
	}
	return "tuple(" + strings.Join(parts, ",") + ")"
}

func baseIdentifier(t Type) string {
	if t == nil {
		return "t_empty"
	}
	return t.Identifier()
}

func baseString(t Type) string {
	if t == nil {
		return ""
	}
	return t.String()
}
