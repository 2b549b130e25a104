// Package abitype is the type query interface consumed by the generator.
//
// Every category of the source language has its own variant implementing
// Type, so the synthesizers in codegen can switch over a closed set:
//
//	Category        Variant          Identifier example
//	──────────────────────────────────────────────────────────────
//	integer         Integer          t_uint8, t_int256, t_address
//	bool            Bool             t_bool
//	fixed bytes     FixedBytes       t_bytes4
//	enum            Enum             t_enum$_Color_$7
//	contract        Contract         t_contract$_Token_$2
//	array           Array            t_array$_t_uint8_$3_memory, t_bytes_storage
//	struct          Struct           t_struct$_Point_$4_memory
//	fixed point     FixedPoint       t_fixed128x18
//	function        Function         t_function_external
//	rational        RationalNumber   t_rational_minus_5_by_1
//	string literal  StringLiteral    t_stringliteral_<keccak256 hex>
//	tuple           Tuple            t_tuple$_t_uint8_$_t_bool_$
//
// Identifiers are stable and unique per distinct type; two types are Equal
// exactly when their identifiers match.
//
// Parse reads the textual form used by the CLI and build manifests.
package abitype
