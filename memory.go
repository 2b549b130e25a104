package abigen

// Memory represents the byte-addressed memory generated code writes into
type Memory interface {
	Read(offset uint64, length uint64) ([]byte, error)
	Write(offset uint64, data []byte) error
	// ReadWord and WriteWord move one big-endian 32-byte word.
	ReadWord(offset uint64) ([32]byte, error)
	WriteWord(offset uint64, word [32]byte) error
}

// MemorySizer provides the current size of memory in bytes.
type MemorySizer interface {
	Size() uint64
}
