// Package codegen synthesizes ABI helper procedures on demand.
//
// A Generator owns a pool of named procedures. Cleanup, Conversion,
// EncodingFunction, ShiftLeft and ShiftRight each return the name of a
// procedure, generating it (and everything it calls) the first time the
// name is requested. TupleEncoder is the entry point for encoding: it
// returns inline code that calls one encoding procedure per value.
//
// The inline code and the pool are separate outputs. After a top-level
// request the caller drains the pool with Flush or RequestedFunctions and
// emits every procedure once, anywhere visible to the inline code:
//
//	g := codegen.New()
//	code, err := g.TupleEncoder(given, targets, false)
//	if err != nil {
//		return err
//	}
//	helpers := g.RequestedFunctions()
//	if err := g.Close(); err != nil {
//		return err
//	}
//
// Procedure names are a pure function of the request:
//
//	cleanup_assert_<type>            cleanup_revert_<enum type>
//	convert_<from>_to_<to>           abi_encode_<from>_to_<to>[_lib]
//	shift_left_<n>                   shift_right_<n>_<signed|unsigned>
//
// Failures are returned as *errors.Error with KindUnimplemented for
// recognized but unsupported requests and KindInternal for requests the type
// checker should have ruled out.
package codegen
