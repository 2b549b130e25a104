package driver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/internal/artifact"
	"github.com/wippyai/abigen/internal/manifest"
)

func unit(name string, given, target []string, library bool) manifest.Unit {
	g, err := abitype.ParseList(given)
	if err != nil {
		panic(err)
	}
	tg, err := abitype.ParseList(target)
	if err != nil {
		panic(err)
	}
	return manifest.Unit{Name: name, Given: g, Target: tg, Library: library}
}

func testManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Units: []manifest.Unit{
			unit("a", []string{"uint8", "bool"}, []string{"uint8", "bool"}, false),
			unit("b", []string{"uint8"}, []string{"uint8"}, false),
			unit("c", []string{"int8"}, []string{"int256"}, false),
			unit("d", []string{"bytes4"}, []string{"bytes8"}, true),
		},
	}
}

func TestBuild(t *testing.T) {
	for _, jobs := range []int{1, 4} {
		units, err := Build(context.Background(), testManifest(), jobs)
		require.NoError(t, err)
		require.Len(t, units, 4)

		names := []string{}
		for _, u := range units {
			names = append(names, u.Name)
		}
		assert.Equal(t, []string{"a", "b", "c", "d"}, names)
		assert.Contains(t, units[0].Inline, "add($headStart, 64)")
		assert.Equal(t, []string{"uint8", "bool"}, units[0].Given)
		assert.True(t, units[3].Library)
		assert.Contains(t, units[3].Inline, "abi_encode_t_bytes4_to_t_bytes8_lib")
	}
}

func TestBuildUnitFailure(t *testing.T) {
	m := testManifest()
	m.Units = append(m.Units, unit("dyn", []string{"string"}, []string{"string"}, false))

	_, err := Build(context.Background(), m, 2)
	require.Error(t, err)
	assert.True(t, errors.IsUnimplemented(err))
	assert.Contains(t, err.Error(), "unit.dyn")
}

func TestBuildCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, testManifest(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildUnitFlushesEverything(t *testing.T) {
	u := unit("c", []string{"bytes2"}, []string{"uint32"}, false)
	res, err := BuildUnit(u, zap.NewNop())
	require.NoError(t, err)

	var names []string
	for _, f := range res.Functions {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{
		"abi_encode_t_bytes2_to_t_uint32",
		"cleanup_assert_t_uint16",
		"convert_t_bytes2_to_t_uint32",
		"convert_t_uint16_to_t_uint32",
		"shift_right_240_unsigned",
	}, names)
}

func TestRenderDeduplicates(t *testing.T) {
	units, err := Build(context.Background(), testManifest(), 2)
	require.NoError(t, err)

	text, err := Render(units)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(text, "function cleanup_assert_t_uint8(value)"))
	assert.Equal(t, 1, strings.Count(text, "function abi_encode_t_uint8_to_t_uint8("))
	assert.Contains(t, text, "// a: (uint8, bool) -> (uint8, bool)\n{\n    let dynFree := add($headStart, 64)\n")
	assert.Less(t, strings.Index(text, "// d:"), strings.Index(text, "function "))
}

func TestHelpersConflict(t *testing.T) {
	units := []artifact.Unit{
		{Name: "x", Functions: []artifact.Function{{Name: "f", Code: "one"}}},
		{Name: "y", Functions: []artifact.Function{{Name: "f", Code: "two"}}},
	}
	_, err := Helpers(units)
	assert.True(t, errors.IsInternal(err))
}
