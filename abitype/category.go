package abitype

// Category is the type category tag the synthesizers dispatch on.
type Category uint8

const (
	CategoryInteger Category = iota
	CategoryBool
	CategoryFixedBytes
	CategoryEnum
	CategoryContract
	CategoryArray
	CategoryStruct
	CategoryFixedPoint
	CategoryFunction
	CategoryRationalNumber
	CategoryStringLiteral
	CategoryTuple
)

var categoryNames = [...]string{
	CategoryInteger:        "integer",
	CategoryBool:           "bool",
	CategoryFixedBytes:     "fixed_bytes",
	CategoryEnum:           "enum",
	CategoryContract:       "contract",
	CategoryArray:          "array",
	CategoryStruct:         "struct",
	CategoryFixedPoint:     "fixed_point",
	CategoryFunction:       "function",
	CategoryRationalNumber: "rational_number",
	CategoryStringLiteral:  "string_literal",
	CategoryTuple:          "tuple",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Location is where a reference type's data lives.
type Location uint8

const (
	LocationNone Location = iota
	LocationStorage
	LocationMemory
	LocationCallData
)

var locationNames = [...]string{
	LocationNone:     "",
	LocationStorage:  "storage",
	LocationMemory:   "memory",
	LocationCallData: "calldata",
}

func (l Location) String() string {
	if int(l) < len(locationNames) {
		return locationNames[l]
	}
	return "unknown"
}

// ParseLocation maps a location keyword to its Location.
func ParseLocation(s string) (Location, bool) {
	switch s {
	case "storage":
		return LocationStorage, true
	case "memory":
		return LocationMemory, true
	case "calldata":
		return LocationCallData, true
	}
	return LocationNone, false
}
