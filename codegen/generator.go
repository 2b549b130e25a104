package codegen

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/layout"
	"github.com/wippyai/abigen/yul"
)

// Function is one generated procedure, ready to emit.
type Function struct {
	Def  *yul.FunctionDefinition
	Name string
	Code string
}

// Generator owns the procedure pool of one compilation unit.
// Not safe for concurrent use.
type Generator struct {
	log    *zap.Logger
	reg    *registry
	layout *layout.Calculator
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger overrides the package logger for one generator.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a generator with an empty pool.
func New(opts ...Option) *Generator {
	g := &Generator{
		log:    Logger(),
		layout: layout.NewCalculator(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reg = newRegistry(g.log)
	return g
}

// Pending returns the number of procedures generated since the last flush.
func (g *Generator) Pending() int {
	return g.reg.len()
}

// Flush returns every procedure generated since the last flush, sorted by
// name, and empties the pool.
func (g *Generator) Flush() []Function {
	defs := g.reg.flush()
	out := make([]Function, len(defs))
	for i, d := range defs {
		out[i] = Function{Name: d.Name, Code: yul.Print(d), Def: d}
	}
	g.log.Debug("flush", zap.Int("count", len(out)))
	return out
}

// RequestedFunctions flushes the pool and returns all bodies as one text.
func (g *Generator) RequestedFunctions() string {
	var b strings.Builder
	for _, f := range g.Flush() {
		b.WriteString(f.Code)
	}
	return b.String()
}

// Close releases the generator. Closing with unflushed procedures is a
// contract violation: they would never be emitted.
func (g *Generator) Close() error {
	if n := g.reg.len(); n > 0 {
		g.log.Warn("generator closed with unflushed functions", zap.Int("count", n))
		return errors.Internal(errors.PhaseRegistry, "%d unflushed functions", n)
	}
	return nil
}

func (g *Generator) request(kind, name string, create creator) (string, error) {
	return g.reg.requestOrCreate(kind, name, create)
}
