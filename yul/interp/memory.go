package interp

import (
	abigen "github.com/wippyai/abigen"
	"github.com/wippyai/abigen/errors"
)

// MaxMemory bounds how far generated code may write.
const MaxMemory = 1 << 24

// LinearMemory is a growable zero-initialized byte memory.
type LinearMemory struct {
	data []byte
}

var (
	_ abigen.Memory      = (*LinearMemory)(nil)
	_ abigen.MemorySizer = (*LinearMemory)(nil)
)

// NewLinearMemory returns an empty memory.
func NewLinearMemory() *LinearMemory {
	return &LinearMemory{}
}

func (m *LinearMemory) grow(offset, length uint64) error {
	end := offset + length
	if end < offset || end > MaxMemory {
		return errors.New(errors.PhaseEval, errors.KindOutOfBounds).
			Path("memory").
			Value(offset).
			Detail("access [%d, %d+%d) beyond %d bytes", offset, offset, length, MaxMemory).
			Build()
	}
	if end > uint64(len(m.data)) {
		// memory expands in whole words
		words := (end + 31) / 32
		grown := make([]byte, words*32)
		copy(grown, m.data)
		m.data = grown
	}
	return nil
}

func (m *LinearMemory) Read(offset uint64, length uint64) ([]byte, error) {
	if err := m.grow(offset, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[offset:offset+length])
	return out, nil
}

func (m *LinearMemory) Write(offset uint64, data []byte) error {
	if err := m.grow(offset, uint64(len(data))); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

func (m *LinearMemory) ReadWord(offset uint64) ([32]byte, error) {
	var w [32]byte
	if err := m.grow(offset, 32); err != nil {
		return w, err
	}
	copy(w[:], m.data[offset:offset+32])
	return w, nil
}

func (m *LinearMemory) WriteWord(offset uint64, word [32]byte) error {
	if err := m.grow(offset, 32); err != nil {
		return err
	}
	copy(m.data[offset:], word[:])
	return nil
}

// Size returns the current memory size in bytes.
func (m *LinearMemory) Size() uint64 {
	return uint64(len(m.data))
}
