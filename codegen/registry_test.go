package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

func stub(name string) *yul.FunctionDefinition {
	return yul.Func(name, []string{"value"}, "out", yul.Assign("out", yul.Ident("value")))
}

func TestRegistryCreatesOnce(t *testing.T) {
	r := newRegistry(zap.NewNop())
	calls := 0
	create := func() (*yul.FunctionDefinition, error) {
		calls++
		return stub("f"), nil
	}

	for i := 0; i < 3; i++ {
		name, err := r.requestOrCreate("test", "f", create)
		require.NoError(t, err)
		assert.Equal(t, "f", name)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, r.len())
	assert.Equal(t, 2, r.hits)
}

func TestRegistryNestedRequests(t *testing.T) {
	r := newRegistry(zap.NewNop())

	_, err := r.requestOrCreate("test", "outer", func() (*yul.FunctionDefinition, error) {
		if _, err := r.requestOrCreate("test", "inner", func() (*yul.FunctionDefinition, error) {
			return stub("inner"), nil
		}); err != nil {
			return nil, err
		}
		return stub("outer"), nil
	})
	require.NoError(t, err)

	defs := r.flush()
	require.Len(t, defs, 2)
	assert.Equal(t, "inner", defs[0].Name)
	assert.Equal(t, "outer", defs[1].Name)
	assert.Equal(t, 0, r.len())
}

func TestRegistrySelfRequest(t *testing.T) {
	r := newRegistry(zap.NewNop())

	var create creator
	create = func() (*yul.FunctionDefinition, error) {
		if _, err := r.requestOrCreate("test", "loop", create); err != nil {
			return nil, err
		}
		return stub("loop"), nil
	}

	_, err := r.requestOrCreate("test", "loop", create)
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))
	assert.Contains(t, err.Error(), "loop")
	assert.Equal(t, 0, r.len())
	assert.False(t, r.inProgress.Contains("loop"))
}

func TestRegistryRejectsBadBodies(t *testing.T) {
	r := newRegistry(zap.NewNop())

	t.Run("empty body", func(t *testing.T) {
		_, err := r.requestOrCreate("test", "empty", func() (*yul.FunctionDefinition, error) {
			return yul.Func("empty", []string{"value"}, "out"), nil
		})
		assert.True(t, errors.IsInternal(err))
	})

	t.Run("wrong name", func(t *testing.T) {
		_, err := r.requestOrCreate("test", "a", func() (*yul.FunctionDefinition, error) {
			return stub("b"), nil
		})
		assert.True(t, errors.IsInternal(err))
	})

	t.Run("creator error", func(t *testing.T) {
		want := errors.Unimplemented(errors.PhaseConvert, "nope")
		_, err := r.requestOrCreate("test", "c", func() (*yul.FunctionDefinition, error) {
			return nil, want
		})
		assert.ErrorIs(t, err, want)
	})

	assert.Equal(t, 0, r.len())
}

func TestFlushAndClose(t *testing.T) {
	g := New()

	_, err := g.Cleanup(abitype.Bool{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, g.Pending())

	err = g.Close()
	require.Error(t, err)
	assert.True(t, errors.IsInternal(err))

	funcs := g.Flush()
	require.Len(t, funcs, 1)
	assert.Equal(t, "cleanup_assert_t_bool", funcs[0].Name)
	assert.Equal(t, yul.Print(funcs[0].Def), funcs[0].Code)

	assert.Empty(t, g.Flush())
	assert.NoError(t, g.Close())
}

func TestRequestedFunctions(t *testing.T) {
	g := New()
	defer func() { assert.NoError(t, g.Close()) }()

	_, err := g.Conversion(abitype.BytesN(2), abitype.Uint(32))
	require.NoError(t, err)

	text := g.RequestedFunctions()
	assert.Contains(t, text, "function convert_t_bytes2_to_t_uint32(value) -> converted {")
	assert.Contains(t, text, "function convert_t_uint16_to_t_uint32(value) -> converted {")
	assert.Contains(t, text, "function shift_right_240_unsigned(value) -> newValue {")
	assert.Contains(t, text, "function cleanup_assert_t_uint16(value) -> cleaned {")
	assert.Less(t, strings.Index(text, "cleanup_assert_t_uint16(value)"), strings.Index(text, "function convert_t_bytes2"))
	assert.Equal(t, 0, g.Pending())
}

func TestDeterminism(t *testing.T) {
	run := func() string {
		g := New()
		_, err := g.TupleEncoder(
			[]abitype.Type{abitype.Int(8), abitype.BytesN(4), abitype.Rational(7, 1)},
			[]abitype.Type{abitype.Int(256), abitype.BytesN(8), abitype.Uint(16)},
			false,
		)
		require.NoError(t, err)
		out := g.RequestedFunctions()
		require.NoError(t, g.Close())
		return out
	}
	assert.Equal(t, run(), run())
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := New(WithLogger(zap.New(core)))

	_, err := g.Cleanup(abitype.Uint(8), false)
	require.NoError(t, err)
	_, err = g.Cleanup(abitype.Uint(8), false)
	require.NoError(t, err)

	synth := logs.FilterMessage("synthesized").All()
	require.Len(t, synth, 1)
	assert.Equal(t, "cleanup_assert_t_uint8", synth[0].ContextMap()["name"])
	assert.Equal(t, "cleanup", synth[0].ContextMap()["kind"])
	assert.Equal(t, 1, logs.FilterMessage("registry hit").Len())

	require.Error(t, g.Close())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())

	g.Flush()
	flush := logs.FilterMessage("flush").All()
	require.Len(t, flush, 1)
	assert.Equal(t, int64(1), flush[0].ContextMap()["count"])
}
