package wire

import (
	"encoding/binary"
	"io"
)

// writeRaw writes buf (a tag byte, or a payload already packed in
// little-endian order by the put* helpers below) to w, failing with an
// [IOError] if w does not accept the full buffer.
func writeRaw(w io.Writer, buf []byte) error {
	n, err := w.Write(buf)
	if err == nil && n != len(buf) {
		err = io.ErrShortWrite
	}
	return ioErr("write", err)
}

// readRaw reads exactly len(buf) bytes from r, failing with an [IOError] on
// a short read. Partial reads are never silently truncated.
func readRaw(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	return ioErr("read", err)
}

func putU8(buf []byte, x uint8)   { buf[0] = x }
func getU8(buf []byte) uint8      { return buf[0] }
func putU16(buf []byte, x uint16) { binary.LittleEndian.PutUint16(buf, x) }
func getU16(buf []byte) uint16    { return binary.LittleEndian.Uint16(buf) }
func putU32(buf []byte, x uint32) { binary.LittleEndian.PutUint32(buf, x) }
func getU32(buf []byte) uint32    { return binary.LittleEndian.Uint32(buf) }
