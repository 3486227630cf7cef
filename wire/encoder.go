package wire

import (
	"bufio"
	"io"
)

const defaultBufSize = 4096

// Option configures the internal buffer size used by [NewEncoder] or
// [NewDecoder]. The zero value of Option leaves the default in place.
type Option struct{ bufSize int }

// WithBufferSize sets the size of the buffered I/O NewEncoder/NewDecoder
// wraps their underlying reader or writer in. It is rarely needed — the
// default matches bufio's own default — but is useful when encoding or
// decoding many small objects back to back against a slow underlying
// [io.Writer]/[io.Reader], where a larger buffer reduces syscall count.
func WithBufferSize(n int) Option { return Option{bufSize: n} }

func bufSizeOf(opts []Option) int {
	size := defaultBufSize
	for _, o := range opts {
		if o.bufSize > 0 {
			size = o.bufSize
		}
	}
	return size
}

// Encoder writes a stream of tagged primitives and BEGIN/END brackets to an
// underlying [io.Writer]: every value written through Encoder is preceded
// by its one-byte kind tag.
//
// Encoder holds no retryable state: per the concurrency model, an I/O error
// leaves the stream at the sink truncated, and the encoder offers no resume.
type Encoder struct {
	w   *bufio.Writer
	buf [16]byte
}

// NewEncoder returns an Encoder that writes to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: bufio.NewWriterSize(w, bufSizeOf(opts))}
}

// Reset discards any buffered, unwritten data and configures the Encoder to
// write to w instead, letting a caller reuse the same Encoder (and its
// internal buffer) across a sequence of independent streams rather than
// allocating a fresh one each time.
func (e *Encoder) Reset(w io.Writer) {
	e.w.Reset(w)
}

// Flush writes any buffered data to the underlying writer. Callers that need
// every byte to have reached the sink (e.g. before closing it) should call
// Flush once they are done writing.
func (e *Encoder) Flush() error {
	return ioErr("write", e.w.Flush())
}

func (e *Encoder) tag(k Kind) error {
	return writeRaw(e.w, []byte{byte(k)})
}

// Begin writes a BEGIN tag, opening a composite value.
func (e *Encoder) Begin() error { return e.tag(KindBegin) }

// End writes an END tag, closing the innermost open composite value.
func (e *Encoder) End() error { return e.tag(KindEnd) }

// WriteU8 writes a tagged 8-bit unsigned integer.
func (e *Encoder) WriteU8(x uint8) error {
	if err := e.tag(KindU8); err != nil {
		return err
	}
	putU8(e.buf[:1], x)
	return writeRaw(e.w, e.buf[:1])
}

// WriteU16 writes a tagged 16-bit unsigned integer.
func (e *Encoder) WriteU16(x uint16) error {
	if err := e.tag(KindU16); err != nil {
		return err
	}
	putU16(e.buf[:2], x)
	return writeRaw(e.w, e.buf[:2])
}

// WriteU32 writes a tagged 32-bit unsigned integer.
func (e *Encoder) WriteU32(x uint32) error {
	if err := e.tag(KindU32); err != nil {
		return err
	}
	putU32(e.buf[:4], x)
	return writeRaw(e.w, e.buf[:4])
}

// WriteU128 writes a tagged 128-bit unsigned integer.
func (e *Encoder) WriteU128(x U128) error {
	if err := e.tag(KindU128); err != nil {
		return err
	}
	putU128(e.buf[:16], x)
	return writeRaw(e.w, e.buf[:16])
}

// WriteString is a contract placeholder: the wire format does not pin a
// bit-exact string encoding (there is no string tag among the [Kind]
// constants), so WriteString always fails with [ErrNotImplemented] rather
// than guessing one.
func (e *Encoder) WriteString(string) error {
	return ErrNotImplemented
}

// WriteValue writes x using the tagged encoding appropriate for its Kind.
// BEGIN and END ignore the payload fields of x.
func (e *Encoder) WriteValue(x Value) error {
	switch x.Kind {
	case KindBegin:
		return e.Begin()
	case KindEnd:
		return e.End()
	case KindU8:
		return e.WriteU8(x.U8)
	case KindU16:
		return e.WriteU16(x.U16)
	case KindU32:
		return e.WriteU32(x.U32)
	case KindU128:
		return e.WriteU128(x.U128)
	default:
		return ErrTagMismatch
	}
}
