package x86_64

// byteBuffer is a minimal growable byte vector used internally by the
// emitter and linker. It is not part of the package's public contract;
// callers get a plain []byte back from Sequence.
type byteBuffer struct {
	data []byte
}

func newByteBuffer(capHint int) *byteBuffer {
	return &byteBuffer{data: make([]byte, 0, capHint)}
}

func (b *byteBuffer) writeByte(v byte) {
	b.data = append(b.data, v)
}

func (b *byteBuffer) write(vs ...byte) {
	b.data = append(b.data, vs...)
}

func (b *byteBuffer) writeUint16(v uint16) {
	b.data = append(b.data, byte(v), byte(v>>8))
}

func (b *byteBuffer) writeUint32(v uint32) {
	b.data = append(b.data, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (b *byteBuffer) writeUint64(v uint64) {
	b.data = append(b.data,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func (b *byteBuffer) len() int {
	return len(b.data)
}

// patchAt overwrites width little-endian bytes at offset with v. Used by
// the linker's pass 2 to back-patch relative displacements.
func (b *byteBuffer) patchAt(offset, width int, v int64) {
	u := uint64(v)
	for i := 0; i < width; i++ {
		b.data[offset+i] = byte(u >> (8 * uint(i)))
	}
}
