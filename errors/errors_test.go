package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:    PhaseConvert,
				Kind:     KindUnimplemented,
				Function: "convert_t_array$_t_uint8_$dyn_memory_to_t_uint256",
				Path:     []string{"unit", "0"},
				From:     "t_array$_t_uint8_$dyn_memory",
				To:       "t_uint256",
				Detail:   "array conversion not implemented",
			},
			contains: []string{"[convert]", "unimplemented", "in convert_", "unit.0", "t_array$_t_uint8_$dyn_memory -> t_uint256", "array conversion"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseCleanup,
				Kind:  KindInternal,
			},
			contains: []string{"[cleanup]", "internal"},
		},
		{
			name: "source only",
			err: &Error{
				Phase:  PhaseCleanup,
				Kind:   KindUnimplemented,
				From:   "t_fixed128x18",
				Detail: "fixed point",
			},
			contains: []string{": t_fixed128x18 - fixed point"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseConfig,
				Kind:   KindInvalidInput,
				Detail: "bad manifest",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[config]", "invalid_input", "bad manifest", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseBuild,
		Kind:  KindInternal,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindUnimplemented,
		From:  "t_string_memory",
	}

	if !err.Is(&Error{Phase: PhaseEncode, Kind: KindUnimplemented}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseConvert, Kind: KindUnimplemented}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindInternal}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseEncode, Kind: KindUnimplemented}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseConvert, KindInternal).
		Path("values", "1").
		From("t_bool").
		To("t_uint8").
		Function("convert_t_bool_to_t_uint8").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "bool", "uint8").
		Build()

	if err.Phase != PhaseConvert {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseConvert)
	}
	if err.Kind != KindInternal {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInternal)
	}
	if len(err.Path) != 2 || err.Path[0] != "values" || err.Path[1] != "1" {
		t.Errorf("Path = %v, want [values 1]", err.Path)
	}
	if err.From != "t_bool" || err.To != "t_uint8" {
		t.Errorf("From=%v To=%v", err.From, err.To)
	}
	if err.Function != "convert_t_bool_to_t_uint8" {
		t.Errorf("Function = %v", err.Function)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected bool, got uint8" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("Unimplemented", func(t *testing.T) {
		err := Unimplemented(PhaseConvert, "tuple conversion not implemented", "t_tuple$_t_uint8_$", "t_uint8")
		if err.Kind != KindUnimplemented {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnimplemented)
		}
		if err.From != "t_tuple$_t_uint8_$" || err.To != "t_uint8" {
			t.Errorf("From=%v To=%v", err.From, err.To)
		}
	})

	t.Run("Internal", func(t *testing.T) {
		err := Internal(PhaseCleanup, "cleanup of %s requested", "t_struct$_S_$1_memory")
		if err.Kind != KindInternal {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInternal)
		}
		if !strings.Contains(err.Detail, "t_struct$_S_$1_memory") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseLayout, 1<<40, "uint32")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
	})

	t.Run("Revert", func(t *testing.T) {
		err := Revert("cleanup_revert_t_enum$_E_$1")
		if err.Kind != KindRevert || err.Phase != PhaseEval {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
	})

	t.Run("InvalidOpcode", func(t *testing.T) {
		err := InvalidOpcode("cleanup_assert_t_enum$_E_$1")
		if err.Kind != KindInvalidOpcode {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidOpcode)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseEval, []string{"memory"}, 10, 5)
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})
}

func TestPredicates(t *testing.T) {
	wrapped := fmt.Errorf("unit a: %w", Unimplemented(PhaseEncode, "dynamic target"))
	if !IsUnimplemented(wrapped) {
		t.Error("IsUnimplemented should see through fmt wrapping")
	}
	if IsInternal(wrapped) {
		t.Error("IsInternal should be false for unimplemented")
	}
	if !IsInternal(Internal(PhaseRegistry, "empty body")) {
		t.Error("IsInternal should be true")
	}
	if !IsAbort(Revert("f")) || !IsAbort(InvalidOpcode("f")) {
		t.Error("IsAbort should match revert and invalid")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf plain error should be empty")
	}
}
