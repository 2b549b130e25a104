package codegen

import (
	"sort"

	"github.com/hashicorp/go-set/v3"
	"go.uber.org/zap"

	"github.com/wippyai/abigen/errors"
	"github.com/wippyai/abigen/yul"
)

// creator synthesizes the body of one procedure. It may request other
// procedures from the same registry.
type creator func() (*yul.FunctionDefinition, error)

// registry memoizes generated procedures by name.
type registry struct {
	log        *zap.Logger
	funcs      map[string]*yul.FunctionDefinition
	inProgress *set.Set[string]
	hits       int
}

func newRegistry(log *zap.Logger) *registry {
	return &registry{
		log:        log,
		funcs:      make(map[string]*yul.FunctionDefinition),
		inProgress: set.New[string](8),
	}
}

// requestOrCreate returns name, calling create first if name is unknown.
// The body is inserted only after create returns; a request for a name that
// is still being created is reported instead of recursing.
func (r *registry) requestOrCreate(kind, name string, create creator) (string, error) {
	if _, ok := r.funcs[name]; ok {
		r.hits++
		r.log.Debug("registry hit", zap.String("name", name))
		return name, nil
	}
	if r.inProgress.Contains(name) {
		return "", errors.New(errors.PhaseRegistry, errors.KindInternal).
			Function(name).
			Detail("procedure requested while it is being created").
			Build()
	}

	r.inProgress.Insert(name)
	def, err := create()
	r.inProgress.Remove(name)
	if err != nil {
		return "", err
	}

	if def.Empty() {
		return "", errors.New(errors.PhaseRegistry, errors.KindInternal).
			Function(name).
			Detail("empty body").
			Build()
	}
	if def.Name != name {
		return "", errors.New(errors.PhaseRegistry, errors.KindInternal).
			Function(name).
			Detail("creator produced %q", def.Name).
			Build()
	}

	r.funcs[name] = def
	r.log.Debug("synthesized", zap.String("name", name), zap.String("kind", kind))
	return name, nil
}

func (r *registry) len() int {
	return len(r.funcs)
}

// flush drains the registry, returning the definitions sorted by name.
func (r *registry) flush() []*yul.FunctionDefinition {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*yul.FunctionDefinition, len(names))
	for i, name := range names {
		defs[i] = r.funcs[name]
	}
	r.funcs = make(map[string]*yul.FunctionDefinition)
	return defs
}
