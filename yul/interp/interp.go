package interp

import (
	"strings"

	"github.com/holiman/uint256"

	abigen "github.com/wippyai/abigen"
	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// MaxCallDepth bounds nested procedure calls.
const MaxCallDepth = 256

// Machine executes generated procedures and inline code.
// It is not safe for concurrent use.
type Machine struct {
	mem   abigen.Memory
	funcs map[string]*yul.FunctionDefinition
	stack []string // names of active procedures, innermost last
}

// Option configures a Machine.
type Option func(*Machine)

// WithMemory makes the machine write into mem instead of a fresh LinearMemory.
func WithMemory(mem abigen.Memory) Option {
	return func(m *Machine) { m.mem = mem }
}

// New returns a machine that knows the given procedures.
func New(defs []*yul.FunctionDefinition, opts ...Option) (*Machine, error) {
	m := &Machine{
		funcs: make(map[string]*yul.FunctionDefinition, len(defs)),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.mem == nil {
		m.mem = NewLinearMemory()
	}
	for _, d := range defs {
		if err := m.Define(d); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Define adds a procedure. Redefining a name with a different body is an error.
func (m *Machine) Define(d *yul.FunctionDefinition) error {
	if d == nil || d.Name == "" {
		return errors.InvalidInput(errors.PhaseEval, "procedure without a name")
	}
	if prev, ok := m.funcs[d.Name]; ok && yul.Print(prev) != yul.Print(d) {
		return errors.New(errors.PhaseEval, errors.KindInvalidInput).
			Function(d.Name).
			Detail("conflicting definitions").
			Build()
	}
	m.funcs[d.Name] = d
	return nil
}

// Memory returns the memory generated code writes into.
func (m *Machine) Memory() abigen.Memory {
	return m.mem
}

// Call runs the named procedure and returns its results in declaration order.
func (m *Machine) Call(name string, args ...*uint256.Int) ([]*uint256.Int, error) {
	return m.call(name, args)
}

// Call1 runs a single-result procedure.
func (m *Machine) Call1(name string, args ...*uint256.Int) (*uint256.Int, error) {
	out, err := m.call(name, args)
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, errors.New(errors.PhaseEval, errors.KindInvalidInput).
			Function(name).
			Detail("expected one result, got %d", len(out)).
			Build()
	}
	return out[0], nil
}

// Exec runs inline statements with env as the variable scope. Variables
// declared by the statements are added to env.
func (m *Machine) Exec(stmts []yul.Statement, env map[string]*uint256.Int) error {
	f := &frame{vars: env}
	if f.vars == nil {
		f.vars = make(map[string]*uint256.Int)
	}
	for _, s := range stmts {
		if err := m.exec(f, s); err != nil {
			return err
		}
	}
	return nil
}

type frame struct {
	vars map[string]*uint256.Int
}

func (m *Machine) current() string {
	if len(m.stack) == 0 {
		return ""
	}
	return m.stack[len(m.stack)-1]
}

func (m *Machine) fail(format string, args ...any) error {
	return errors.New(errors.PhaseEval, errors.KindInvalidInput).
		Function(m.current()).
		Detail(format, args...).
		Build()
}

func (m *Machine) call(name string, args []*uint256.Int) ([]*uint256.Int, error) {
	def, ok := m.funcs[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseEval, "function", name)
	}
	if len(args) != len(def.Params) {
		return nil, m.fail("%s expects %d arguments, got %d", name, len(def.Params), len(args))
	}
	if len(m.stack) >= MaxCallDepth {
		return nil, errors.New(errors.PhaseEval, errors.KindOverflow).
			Function(name).
			Detail("call depth %d exceeded", MaxCallDepth).
			Build()
	}
	m.stack = append(m.stack, name)
	defer func() { m.stack = m.stack[:len(m.stack)-1] }()

	f := &frame{vars: make(map[string]*uint256.Int, len(def.Params)+len(def.Returns))}
	for i, p := range def.Params {
		f.vars[p] = new(uint256.Int).Set(args[i])
	}
	for _, r := range def.Returns {
		f.vars[r] = new(uint256.Int)
	}
	if def.Body != nil {
		for _, s := range def.Body.Statements {
			if err := m.exec(f, s); err != nil {
				return nil, err
			}
		}
	}
	out := make([]*uint256.Int, len(def.Returns))
	for i, r := range def.Returns {
		out[i] = f.vars[r]
	}
	return out, nil
}

func (m *Machine) exec(f *frame, s yul.Statement) error {
	switch v := s.(type) {
	case *yul.Block:
		for _, inner := range v.Statements {
			if err := m.exec(f, inner); err != nil {
				return err
			}
		}
		return nil
	case *yul.VariableDeclaration:
		if v.Value == nil {
			for _, n := range v.Names {
				f.vars[n] = new(uint256.Int)
			}
			return nil
		}
		return m.bind(f, v.Names, v.Value, false)
	case *yul.Assignment:
		return m.bind(f, v.Names, v.Value, true)
	case *yul.ExpressionStatement:
		vals, err := m.evalMulti(f, v.Expr)
		if err != nil {
			return err
		}
		if len(vals) != 0 {
			return m.fail("expression statement discards %d values", len(vals))
		}
		return nil
	case *yul.Switch:
		return m.execSwitch(f, v)
	case *yul.FunctionDefinition:
		return m.Define(v)
	}
	return m.fail("unsupported statement %T", s)
}

func (m *Machine) bind(f *frame, names []string, value yul.Expression, mustExist bool) error {
	vals, err := m.evalMulti(f, value)
	if err != nil {
		return err
	}
	if len(vals) != len(names) {
		return m.fail("%d values assigned to %d variables", len(vals), len(names))
	}
	for i, n := range names {
		if _, ok := f.vars[n]; mustExist && !ok {
			return m.fail("assignment to undeclared variable %s", n)
		}
		f.vars[n] = vals[i]
	}
	return nil
}

func (m *Machine) execSwitch(f *frame, s *yul.Switch) error {
	sel, err := m.eval(f, s.Expr)
	if err != nil {
		return err
	}
	for _, c := range s.Cases {
		lit, err := parseLiteral(c.Value.Value)
		if err != nil {
			return m.fail("case literal %q: %v", c.Value.Value, err)
		}
		if sel.Eq(lit) {
			return m.exec(f, c.Body)
		}
	}
	if s.Default != nil {
		return m.exec(f, s.Default)
	}
	return nil
}

func (m *Machine) eval(f *frame, e yul.Expression) (*uint256.Int, error) {
	vals, err := m.evalMulti(f, e)
	if err != nil {
		return nil, err
	}
	if len(vals) != 1 {
		return nil, m.fail("expression yields %d values, expected 1", len(vals))
	}
	return vals[0], nil
}

func (m *Machine) evalMulti(f *frame, e yul.Expression) ([]*uint256.Int, error) {
	switch v := e.(type) {
	case *yul.Identifier:
		val, ok := f.vars[v.Name]
		if !ok {
			return nil, m.fail("undefined variable %s", v.Name)
		}
		return []*uint256.Int{new(uint256.Int).Set(val)}, nil
	case *yul.Literal:
		lit, err := parseLiteral(v.Value)
		if err != nil {
			return nil, m.fail("literal %q: %v", v.Value, err)
		}
		return []*uint256.Int{lit}, nil
	case *yul.FunctionCall:
		// arguments are evaluated right to left
		args := make([]*uint256.Int, len(v.Args))
		for i := len(v.Args) - 1; i >= 0; i-- {
			a, err := m.eval(f, v.Args[i])
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		if b, ok := builtins[v.Name]; ok {
			if len(args) != b.arity {
				return nil, m.fail("builtin %s expects %d arguments, got %d", v.Name, b.arity, len(args))
			}
			return b.fn(m, args)
		}
		return m.call(v.Name, args)
	}
	return nil, m.fail("unsupported expression %T", e)
}

func parseLiteral(s string) (*uint256.Int, error) {
	if strings.HasPrefix(s, "0x") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}
