// Package artifact serializes generated procedure pools with msgpack.
package artifact

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/wippyai/abigen/errors"
)

// Magic identifies a pool file.
const Magic = "abigen-pool"

// Current schema version - increment when Pool format changes
const SchemaVersion uint16 = 1

// Function is one emitted procedure.
type Function struct {
	Name string `msgpack:"name"`
	Code string `msgpack:"code"`
}

// Unit is the result of generating one tuple encoder.
type Unit struct {
	Name      string     `msgpack:"name"`
	Inline    string     `msgpack:"inline"`
	Given     []string   `msgpack:"given"`
	Target    []string   `msgpack:"target"`
	Functions []Function `msgpack:"functions"`
	Library   bool       `msgpack:"library"`
}

// Pool is the on-disk form of a build.
type Pool struct {
	Magic  string `msgpack:"magic"`
	Units  []Unit `msgpack:"units"`
	Schema uint16 `msgpack:"schema"`
}

// Write encodes units to w.
func Write(w io.Writer, units []Unit) error {
	enc := msgpack.NewEncoder(w)
	pool := Pool{Magic: Magic, Schema: SchemaVersion, Units: units}
	if err := enc.Encode(&pool); err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "encode pool")
	}
	return nil
}

// Read decodes a pool written by Write.
func Read(r io.Reader) ([]Unit, error) {
	var pool Pool
	if err := msgpack.NewDecoder(bufio.NewReader(r)).Decode(&pool); err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindInvalidInput, err, "decode pool")
	}
	if pool.Magic != Magic {
		return nil, errors.InvalidInput(errors.PhaseBuild, "not an abigen pool")
	}
	if pool.Schema != SchemaVersion {
		return nil, errors.New(errors.PhaseBuild, errors.KindInvalidInput).
			Value(pool.Schema).
			Detail("pool schema %d, want %d", pool.Schema, SchemaVersion).
			Build()
	}
	return pool.Units, nil
}

// WriteFile writes units to path through a temporary file and a rename, so
// readers never see a partial pool.
func WriteFile(path string, units []Unit) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "create "+dir)
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "create temp file")
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	bw := bufio.NewWriter(f)
	if err = Write(bw, units); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "write "+f.Name())
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "close "+f.Name())
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return errors.Wrap(errors.PhaseBuild, errors.KindInternal, err, "rename to "+path)
	}
	return nil
}

// ReadFile reads a pool file.
func ReadFile(path string) ([]Unit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseBuild, errors.KindNotFound, err, "open "+path)
	}
	defer f.Close()
	return Read(f)
}
