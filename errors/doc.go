// Package errors provides structured error types for the abigen generator.
//
// Errors are categorized by Phase (which synthesizer or tool raised it) and
// Kind (error category). Two kinds matter to callers of the generator:
//
//   - KindUnimplemented: the requested type/operation combination is valid
//     in principle but not supported (dynamic encoding, fixed point, arrays).
//   - KindInternal: the request should have been ruled out upstream by the
//     type checker. Always a defect in the caller.
//
// KindRevert and KindInvalidOpcode are only produced when generated code is
// executed by the evaluator and aborts.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindUnimplemented).
//		From("t_array$_t_uint8_$dyn_memory").
//		To("t_uint256").
//		Detail("array conversion not implemented").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unimplemented(errors.PhaseCleanup, "fixed point types not implemented", id)
//	err := errors.Internal(errors.PhaseCleanup, "struct cleanup requested")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
