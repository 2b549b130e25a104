// Package driver generates every unit of a manifest in parallel.
package driver

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/abigen/codegen"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/internal/artifact"
	"github.com/wippyai/abigen/internal/manifest"
)

// Build generates all units of m. Each unit gets its own generator, so units
// run concurrently with at most jobs in flight; jobs <= 0 falls back to the
// manifest setting and then to GOMAXPROCS. Results keep manifest order.
func Build(ctx context.Context, m *manifest.Manifest, jobs int) ([]artifact.Unit, error) {
	if jobs <= 0 {
		jobs = m.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(m.Units) == 0 {
		return nil, nil
	}

	log := codegen.Logger()
	log.Info("build started", zap.Int("units", len(m.Units)), zap.Int("jobs", jobs))

	// indices are unique per goroutine, no lock needed
	results := make([]artifact.Unit, len(m.Units))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(m.Units)))

	for i, u := range m.Units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			res, err := BuildUnit(u, log.With(zap.String("unit", u.Name)))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Info("build finished", zap.Int("units", len(results)))
	return results, nil
}

// BuildUnit generates a single unit with a fresh generator.
func BuildUnit(u manifest.Unit, log *zap.Logger) (artifact.Unit, error) {
	gen := codegen.New(codegen.WithLogger(log))

	inline, err := gen.TupleEncoder(u.Given, u.Target, u.Library)
	funcs := gen.Flush()
	if cerr := gen.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return artifact.Unit{}, errors.New(errors.PhaseBuild, errors.KindOf(err)).
			Path("unit", u.Name).
			Cause(err).
			Build()
	}

	out := artifact.Unit{
		Name:      u.Name,
		Inline:    inline,
		Given:     manifest.TypeNames(u.Given),
		Target:    manifest.TypeNames(u.Target),
		Library:   u.Library,
		Functions: make([]artifact.Function, len(funcs)),
	}
	for i, f := range funcs {
		out.Functions[i] = artifact.Function{Name: f.Name, Code: f.Code}
	}
	log.Debug("unit generated", zap.Int("functions", len(funcs)))
	return out, nil
}

// Helpers merges the procedures of all units, dropping duplicates by name.
// Two units never disagree on a body since names determine bodies; a
// disagreement is reported as an internal error.
func Helpers(units []artifact.Unit) ([]artifact.Function, error) {
	byName := make(map[string]string)
	for _, u := range units {
		for _, f := range u.Functions {
			if prev, ok := byName[f.Name]; ok && prev != f.Code {
				return nil, errors.New(errors.PhaseBuild, errors.KindInternal).
					Function(f.Name).
					Path("unit", u.Name).
					Detail("conflicting bodies").
					Build()
			}
			byName[f.Name] = f.Code
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]artifact.Function, len(names))
	for i, name := range names {
		out[i] = artifact.Function{Name: name, Code: byName[name]}
	}
	return out, nil
}

// Render writes all units as one text: the inline code of every unit in a
// labelled block, followed by each helper procedure once.
func Render(units []artifact.Unit) (string, error) {
	helpers, err := Helpers(units)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, u := range units {
		b.WriteString("// ")
		b.WriteString(u.Name)
		b.WriteString(": (")
		b.WriteString(strings.Join(u.Given, ", "))
		b.WriteString(") -> (")
		b.WriteString(strings.Join(u.Target, ", "))
		b.WriteString(")\n{\n")
		for _, line := range strings.SplitAfter(u.Inline, "\n") {
			if line == "" {
				continue
			}
			b.WriteString("    ")
			b.WriteString(line)
		}
		b.WriteString("}\n\n")
	}
	for i, f := range helpers {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Code)
	}
	return b.String(), nil
}
