// Package abigen generates ABI helper procedures for a 256-bit word VM.
//
// The generator produces, on demand, three families of Yul procedures:
// cleanup (normalize a word to the canonical bit pattern of a type),
// conversion (move a value between types while keeping it clean), and ABI
// encoding (store one value into a head slot). Every procedure is created at
// most once per generator and referenced by a deterministic name.
//
// # Architecture Overview
//
//	abigen/             Root package with the Memory interface
//	├── abitype/        Type query interface and type-string parser
//	├── codegen/        Synthesizers, function registry, tuple encoder
//	├── layout/         ABI head layout calculation
//	├── yul/            Structured code builder and printer
//	│   └── interp/     Evaluator for generated code
//	├── errors/         Structured error types for debugging
//	├── internal/       Manifest loading, build driver, artifacts
//	└── cmd/abigen/     Command line front end
//
// # Quick Start
//
// Generate a tuple encoder and the helpers it needs:
//
//	g := codegen.New()
//	defer g.Close()
//
//	code, err := g.TupleEncoder(
//	    []abitype.Type{abitype.Uint(8), abitype.Bool{}},
//	    []abitype.Type{abitype.Uint(8), abitype.Bool{}},
//	    false,
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(code)
//	fmt.Println(g.RequestedFunctions())
//
// # Head Layout
//
// Every supported target occupies one 32-byte head slot:
//
//	Target            Head size   Cleanup
//	──────────────────────────────────────────────────────
//	uintN / intN      32          mask / signextend
//	address           32          mask to 160 bits
//	bool              32          iszero(iszero(x))
//	bytesN            32          mask to the top N bytes
//	enum              32          range check, abort outside
//	contract          32          address cleanup
//
// Dynamically sized targets, arrays and structs are reported as
// unimplemented.
//
// # Thread Safety
//
// A Generator is NOT safe for concurrent use. Use one generator per
// compilation unit; the build driver runs units in parallel that way.
package abigen
