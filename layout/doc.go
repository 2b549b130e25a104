// Package layout computes ABI head layouts for encoding targets.
//
// Every target occupies CalldataEncodedSize bytes of the head; the offset of
// target i is the sum of the sizes of targets 0..i-1.
//
// # Usage
//
//	c := layout.NewCalculator()
//	info, err := c.Calculate(targets)
//	// info.HeadSize, info.Offsets available
package layout
