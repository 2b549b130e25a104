// Package manifest loads abigen.toml build manifests.
package manifest

import (
	"os"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
)

// FileName is the conventional manifest name.
const FileName = "abigen.toml"

// Format selects how build output is written.
type Format string

const (
	FormatYul     Format = "yul"
	FormatMsgpack Format = "msgpack"
)

// Manifest is a validated build manifest.
type Manifest struct {
	Path   string
	Output Output
	Units  []Unit
	Jobs   int // 0 means one job per CPU
	Level  zapcore.Level
}

// Output says where the generated code goes.
type Output struct {
	Format Format
	Path   string // empty means stdout
}

// Unit is one tuple encoder to generate.
type Unit struct {
	Name    string
	Given   []abitype.Type
	Target  []abitype.Type
	Library bool
}

type fileConfig struct {
	Output outputConfig `toml:"output"`
	Log    logConfig    `toml:"log"`
	Build  buildConfig  `toml:"build"`
	Units  []unitConfig `toml:"unit"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Path   string `toml:"path"`
}

type logConfig struct {
	Level string `toml:"level"`
}

type buildConfig struct {
	Jobs int64 `toml:"jobs"`
}

type unitConfig struct {
	Name    string   `toml:"name"`
	Given   []string `toml:"given"`
	Target  []string `toml:"target"`
	Library bool     `toml:"library"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
	}
	return Parse(path, data)
}

// Parse validates manifest text. path is only used in errors.
func Parse(path string, data []byte) (*Manifest, error) {
	var cfg fileConfig
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, invalid(path, "failed to parse TOML").Cause(err).Build()
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, invalid(path, "unknown key %s", undecoded[0].String()).Build()
	}
	if !meta.IsDefined("unit") || len(cfg.Units) == 0 {
		return nil, invalid(path, "missing [[unit]]").Build()
	}

	m := &Manifest{
		Path:   path,
		Output: Output{Format: FormatYul, Path: strings.TrimSpace(cfg.Output.Path)},
		Level:  zapcore.InfoLevel,
	}

	if meta.IsDefined("output", "format") {
		switch f := Format(strings.TrimSpace(cfg.Output.Format)); f {
		case FormatYul, FormatMsgpack:
			m.Output.Format = f
		default:
			return nil, invalid(path, "[output].format must be %q or %q, got %q", FormatYul, FormatMsgpack, cfg.Output.Format).Build()
		}
	}

	if meta.IsDefined("log", "level") {
		lvl, err := zapcore.ParseLevel(cfg.Log.Level)
		if err != nil {
			return nil, invalid(path, "[log].level").Cause(err).Build()
		}
		m.Level = lvl
	}

	if meta.IsDefined("build", "jobs") {
		if cfg.Build.Jobs < 0 {
			return nil, invalid(path, "[build].jobs must not be negative").Build()
		}
		jobs, err := safecast.Conv[int](cfg.Build.Jobs)
		if err != nil {
			return nil, errors.Overflow(errors.PhaseConfig, cfg.Build.Jobs, "int")
		}
		m.Jobs = jobs
	}

	seen := make(map[string]bool, len(cfg.Units))
	for i, uc := range cfg.Units {
		u, err := parseUnit(path, i, uc)
		if err != nil {
			return nil, err
		}
		if seen[u.Name] {
			return nil, invalid(path, "duplicate unit %q", u.Name).Build()
		}
		seen[u.Name] = true
		m.Units = append(m.Units, u)
	}
	return m, nil
}

func parseUnit(path string, i int, uc unitConfig) (Unit, error) {
	name := strings.TrimSpace(uc.Name)
	if name == "" {
		return Unit{}, invalid(path, "[[unit]] #%d: missing name", i+1).Build()
	}
	if len(uc.Given) == 0 {
		return Unit{}, invalid(path, "unit %q: missing given", name).Build()
	}
	targets := uc.Target
	if len(targets) == 0 {
		targets = uc.Given
	}
	if len(targets) != len(uc.Given) {
		return Unit{}, invalid(path, "unit %q: %d given types for %d targets", name, len(uc.Given), len(targets)).Build()
	}

	given, err := abitype.ParseList(uc.Given)
	if err != nil {
		return Unit{}, invalid(path, "unit %q: given", name).Cause(err).Build()
	}
	target, err := abitype.ParseList(targets)
	if err != nil {
		return Unit{}, invalid(path, "unit %q: target", name).Cause(err).Build()
	}
	return Unit{Name: name, Given: given, Target: target, Library: uc.Library}, nil
}

func invalid(path, format string, args ...any) *errors.Builder {
	return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Path(path).
		Detail(format, args...)
}

// TypeNames returns the source-level spelling of each type.
func TypeNames(types []abitype.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

// Summary is a one-line description of u.
func (u Unit) Summary() string {
	var b strings.Builder
	b.WriteString(u.Name)
	b.WriteString(" (")
	b.WriteString(strings.Join(TypeNames(u.Given), ", "))
	b.WriteString(")")
	if u.Library {
		b.WriteString(" lib")
	}
	b.WriteString(" [")
	b.WriteString(strconv.Itoa(len(u.Given)))
	b.WriteString(" values]")
	return b.String()
}
