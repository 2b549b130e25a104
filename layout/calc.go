package layout

import (
	"fortio.org/safecast"

	"github.com/wippyai/abigen/abitype"
	"github.com/wippyai/abigen/errors"
)

// Info describes the head of an encoded tuple.
type Info struct {
	Offsets  []uint32 // head position of each target, relative to the head start
	HeadSize uint32
}

// Calculator computes head layouts. Sizes are cached per type identifier.
// It is not safe for concurrent use.
type Calculator struct {
	cache map[string]uint32
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[string]uint32),
	}
}

// Size returns the head size of a single target.
func (c *Calculator) Size(t abitype.Type) (uint32, error) {
	id := t.Identifier()
	if cached, ok := c.cache[id]; ok {
		return cached, nil
	}

	raw := t.CalldataEncodedSize()
	if raw <= 0 {
		return 0, errors.New(errors.PhaseLayout, errors.KindInternal).
			To(id).
			Detail("target has head size %d", raw).
			Build()
	}
	size, err := safecast.Conv[uint32](raw)
	if err != nil {
		return 0, errors.Overflow(errors.PhaseLayout, raw, "uint32")
	}

	c.cache[id] = size
	return size, nil
}

// Calculate lays out targets back to back.
func (c *Calculator) Calculate(targets []abitype.Type) (Info, error) {
	info := Info{Offsets: make([]uint32, len(targets))}
	offset := uint32(0)

	for i, t := range targets {
		size, err := c.Size(t)
		if err != nil {
			return Info{}, err
		}
		info.Offsets[i] = offset

		next := offset + size
		if next < offset {
			return Info{}, errors.Overflow(errors.PhaseLayout, uint64(offset)+uint64(size), "uint32")
		}
		offset = next
	}

	info.HeadSize = offset
	return info, nil
}
