package abitype

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/wippyai/abigen/errors"
)

// Parse reads a type from its textual form. The grammar is the source-level
// spelling for elementary types plus tagged forms for user-defined ones:
//
//	uint8 int256 uint int address bool byte bytes4 bytes string
//	fixed128x18 ufixed64x2 function function external
//	enum:Color:3#7 contract:Token#2 struct:Point#4(uint8,uint8)
//	rational:-5 rational:1/3 literal:"abc" (uint8,bool)
//	uint8[3] uint8[] bytes memory struct:S#1(uint256) storage
//
// Reference types without a location keyword live in memory.
func Parse(s string) (Type, error) {
	p := &parser{src: s}
	t, err := p.parseType()
	if err == nil {
		p.skipSpace()
		if !p.eof() {
			err = p.errorf("unexpected %q", p.src[p.pos:])
		}
	}
	if err != nil {
		return nil, errors.ParseFailed(fmt.Sprintf("type %q", s), err)
	}
	return t, nil
}

// MustParse is Parse for static inputs; it panics on error.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseList parses every string in order.
func ParseList(items []string) ([]Type, error) {
	out := make([]Type, 0, len(items))
	for _, item := range items {
		t, err := Parse(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (p *parser) word() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() && isWordByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) number() (int, error) {
	w := p.word()
	n, err := strconv.Atoi(w)
	if err != nil {
		return 0, p.errorf("expected number, got %q", w)
	}
	return n, nil
}

// optionalID reads "#<n>", returning 0 when absent.
func (p *parser) optionalID() (int, error) {
	p.skipSpace()
	if p.peek() != '#' {
		return 0, nil
	}
	p.pos++
	return p.number()
}

func (p *parser) parseType() (Type, error) {
	t, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if p.peek() != '[' {
			break
		}
		p.pos++
		p.skipSpace()
		if p.peek() == ']' {
			p.pos++
			t = DynamicArray(t, LocationMemory)
			continue
		}
		n, err := p.number()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		t = StaticArray(t, n, LocationMemory)
	}
	return p.parseLocation(t)
}

func (p *parser) parseLocation(t Type) (Type, error) {
	save := p.pos
	w := p.word()
	loc, ok := ParseLocation(w)
	if !ok {
		p.pos = save
		return t, nil
	}
	switch v := t.(type) {
	case Array:
		v.Location = loc
		return v, nil
	case Struct:
		v.Location = loc
		return v, nil
	default:
		return nil, p.errorf("data location %q on value type %s", w, t)
	}
}

func (p *parser) parsePrimary() (Type, error) {
	p.skipSpace()
	if p.peek() == '(' {
		p.pos++
		comps, err := p.parseTypeList(')')
		if err != nil {
			return nil, err
		}
		return Tuple{Components: comps}, nil
	}

	w := p.word()
	switch {
	case w == "":
		return nil, p.errorf("expected type")
	case w == "bool":
		return Bool{}, nil
	case w == "address":
		return Address(), nil
	case w == "byte":
		return BytesN(1), nil
	case w == "bytes":
		return Bytes(LocationMemory), nil
	case w == "string":
		return String(LocationMemory), nil
	case w == "uint":
		return Uint(256), nil
	case w == "int":
		return Int(256), nil
	case w == "function":
		return p.parseFunction()
	case w == "enum":
		return p.parseEnum()
	case w == "contract":
		return p.parseContract()
	case w == "struct":
		return p.parseStruct()
	case w == "rational":
		return p.parseRational()
	case w == "literal":
		return p.parseLiteral()
	case strings.HasPrefix(w, "uint"):
		return p.parseInteger(w[4:], false)
	case strings.HasPrefix(w, "int"):
		return p.parseInteger(w[3:], true)
	case strings.HasPrefix(w, "bytes"):
		n, err := strconv.Atoi(w[5:])
		if err != nil || n < 1 || n > 32 {
			return nil, p.errorf("invalid fixed bytes type %q", w)
		}
		return BytesN(n), nil
	case strings.HasPrefix(w, "ufixed"):
		return p.parseFixed(w[6:], false)
	case strings.HasPrefix(w, "fixed"):
		return p.parseFixed(w[5:], true)
	}
	return nil, p.errorf("unknown type %q", w)
}

func (p *parser) parseTypeList(closing byte) ([]Type, error) {
	var out []Type
	p.skipSpace()
	if p.peek() == closing {
		p.pos++
		return out, nil
	}
	for {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case closing:
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("expected ',' or %q", closing)
		}
	}
}

func (p *parser) parseInteger(digits string, signed bool) (Type, error) {
	bits, err := strconv.Atoi(digits)
	if err != nil || bits < 8 || bits > 256 || bits%8 != 0 {
		return nil, p.errorf("invalid integer width %q", digits)
	}
	return Integer{Bits: bits, Signed: signed}, nil
}

func (p *parser) parseFixed(dims string, signed bool) (Type, error) {
	m, n, ok := strings.Cut(dims, "x")
	if !ok {
		return nil, p.errorf("invalid fixed point type %q", dims)
	}
	bits, err1 := strconv.Atoi(m)
	frac, err2 := strconv.Atoi(n)
	if err1 != nil || err2 != nil || bits < 8 || bits > 256 || bits%8 != 0 || frac < 0 || frac > 80 {
		return nil, p.errorf("invalid fixed point type %q", dims)
	}
	return FixedPoint{Bits: bits, Fractional: frac, Signed: signed}, nil
}

func (p *parser) parseFunction() (Type, error) {
	save := p.pos
	switch p.word() {
	case "external":
		return Function{External: true}, nil
	case "internal":
		return Function{}, nil
	}
	p.pos = save
	return Function{}, nil
}

func (p *parser) parseEnum() (Type, error) {
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	name := p.word()
	if name == "" {
		return nil, p.errorf("enum name expected")
	}
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	members, err := p.number()
	if err != nil {
		return nil, err
	}
	if members <= 0 {
		return nil, p.errorf("enum %s has no members", name)
	}
	id, err := p.optionalID()
	if err != nil {
		return nil, err
	}
	return Enum{Name: name, ID: id, Members: members}, nil
}

func (p *parser) parseContract() (Type, error) {
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	name := p.word()
	if name == "" {
		return nil, p.errorf("contract name expected")
	}
	id, err := p.optionalID()
	if err != nil {
		return nil, err
	}
	return Contract{Name: name, ID: id}, nil
}

func (p *parser) parseStruct() (Type, error) {
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	name := p.word()
	if name == "" {
		return nil, p.errorf("struct name expected")
	}
	id, err := p.optionalID()
	if err != nil {
		return nil, err
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	members, err := p.parseTypeList(')')
	if err != nil {
		return nil, err
	}
	return Struct{Name: name, ID: id, Members: members, Location: LocationMemory}, nil
}

func (p *parser) parseRational() (Type, error) {
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	p.skipSpace()
	start := p.pos
	for !p.eof() && strings.IndexByte("-0123456789/", p.src[p.pos]) >= 0 {
		p.pos++
	}
	r, ok := new(big.Rat).SetString(p.src[start:p.pos])
	if !ok {
		return nil, p.errorf("invalid rational %q", p.src[start:p.pos])
	}
	return RationalNumber{Value: r}, nil
}

func (p *parser) parseLiteral() (Type, error) {
	if err := p.expect(':'); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() != '"' {
		return nil, p.errorf("expected quoted string")
	}
	start := p.pos
	p.pos++
	for !p.eof() && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.eof() {
		return nil, p.errorf("unterminated string")
	}
	p.pos++
	s, err := strconv.Unquote(p.src[start:p.pos])
	if err != nil {
		return nil, p.errorf("invalid string literal: %v", err)
	}
	return Literal(s), nil
}
