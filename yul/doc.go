// Package yul is a small structured builder for the code the generator emits.
//
// Procedures are assembled as trees of Statement and Expression nodes and
// rendered by Print; nothing is stitched from string templates. The same
// trees are executed by package interp, so what the tests run is exactly
// what the printer writes.
//
//	f := yul.Func("cleanup_assert_t_bool", []string{"value"}, "cleaned",
//		yul.Assign("cleaned", yul.Call("iszero", yul.Call("iszero", yul.Ident("value")))),
//	)
//	fmt.Print(yul.Print(f))
//
// Output:
//
//	function cleanup_assert_t_bool(value) -> cleaned {
//	    cleaned := iszero(iszero(value))
//	}
package yul
