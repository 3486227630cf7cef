package wire

import (
	"bufio"
	"io"
)

// Decoder reads a stream of tagged primitives and BEGIN/END brackets from an
// underlying [io.Reader]. It implements skip-to-end, the sole
// forward-compatibility mechanism in the format.
type Decoder struct {
	r   *bufio.Reader
	buf [16]byte
}

// NewDecoder returns a Decoder that reads from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, bufSizeOf(opts))}
}

// Reset discards any buffered, unread data and configures the Decoder to
// read from r instead, letting a caller reuse the same Decoder (and its
// internal buffer) across a sequence of independent streams rather than
// allocating a fresh one each time.
func (d *Decoder) Reset(r io.Reader) {
	d.r.Reset(r)
}

// AtEOF reports whether the underlying reader is exhausted at the current
// position, without consuming any bytes. It is used to detect the end of a
// stream of top-level frames when reading a sequence of them back to back.
func (d *Decoder) AtEOF() (bool, error) {
	_, err := d.r.Peek(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, ioErr("read", err)
	}
	return false, nil
}

func (d *Decoder) readTag() (Kind, error) {
	if err := readRaw(d.r, d.buf[:1]); err != nil {
		return 0, err
	}
	return Kind(d.buf[0]), nil
}

func (d *Decoder) expect(want Kind) error {
	got, err := d.readTag()
	if err != nil {
		return err
	}
	if got != want {
		return ErrTagMismatch
	}
	return nil
}

// Begin reads a BEGIN tag, opening a composite value. It fails with
// [ErrTagMismatch] if the next tag is not BEGIN.
func (d *Decoder) Begin() error { return d.expect(KindBegin) }

// End implements skip-to-end: it reads and discards tags until it reaches
// the END matching the currently-open composite value, recursing into any
// nested BEGIN it encounters along the way. This is what lets a reader
// finished with the fields it understands still land exactly on the next
// sibling value, regardless of how many additional fields a newer writer
// appended.
func (d *Decoder) End() error {
	for {
		v, err := d.ReadValue()
		if err != nil {
			return err
		}
		switch v.Kind {
		case KindEnd:
			return nil
		case KindBegin:
			if err := d.End(); err != nil {
				return err
			}
		}
	}
}

// ReadU8 reads a tagged 8-bit unsigned integer, failing with
// [ErrTagMismatch] if the next tag is not U8.
func (d *Decoder) ReadU8() (uint8, error) {
	if err := d.expect(KindU8); err != nil {
		return 0, err
	}
	if err := readRaw(d.r, d.buf[:1]); err != nil {
		return 0, err
	}
	return getU8(d.buf[:1]), nil
}

// ReadU16 reads a tagged 16-bit unsigned integer, failing with
// [ErrTagMismatch] if the next tag is not U16.
func (d *Decoder) ReadU16() (uint16, error) {
	if err := d.expect(KindU16); err != nil {
		return 0, err
	}
	if err := readRaw(d.r, d.buf[:2]); err != nil {
		return 0, err
	}
	return getU16(d.buf[:2]), nil
}

// ReadU32 reads a tagged 32-bit unsigned integer, failing with
// [ErrTagMismatch] if the next tag is not U32.
func (d *Decoder) ReadU32() (uint32, error) {
	if err := d.expect(KindU32); err != nil {
		return 0, err
	}
	if err := readRaw(d.r, d.buf[:4]); err != nil {
		return 0, err
	}
	return getU32(d.buf[:4]), nil
}

// ReadU128 reads a tagged 128-bit unsigned integer, failing with
// [ErrTagMismatch] if the next tag is not U128.
func (d *Decoder) ReadU128() (U128, error) {
	if err := d.expect(KindU128); err != nil {
		return U128{}, err
	}
	if err := readRaw(d.r, d.buf[:16]); err != nil {
		return U128{}, err
	}
	return getU128(d.buf[:16]), nil
}

// ReadString is a contract placeholder; see [Encoder.WriteString].
func (d *Decoder) ReadString() (string, error) {
	return "", ErrNotImplemented
}

// ReadValue reads one tagged primitive and returns it as a [Value]. Reading
// a BEGIN or END tag this way does not recurse or validate nesting — it
// simply reports which bracket was seen. It is the building block
// [Decoder.End] uses to discard fields, and is also exported for a caller
// that wants to inspect a value's kind before deciding how to handle it.
func (d *Decoder) ReadValue() (Value, error) {
	k, err := d.readTag()
	if err != nil {
		return Value{}, err
	}
	switch k {
	case KindBegin, KindEnd:
		return Value{Kind: k}, nil
	case KindU8:
		if err := readRaw(d.r, d.buf[:1]); err != nil {
			return Value{}, err
		}
		return Value{Kind: k, U8: getU8(d.buf[:1])}, nil
	case KindU16:
		if err := readRaw(d.r, d.buf[:2]); err != nil {
			return Value{}, err
		}
		return Value{Kind: k, U16: getU16(d.buf[:2])}, nil
	case KindU32:
		if err := readRaw(d.r, d.buf[:4]); err != nil {
			return Value{}, err
		}
		return Value{Kind: k, U32: getU32(d.buf[:4])}, nil
	case KindU128:
		if err := readRaw(d.r, d.buf[:16]); err != nil {
			return Value{}, err
		}
		return Value{Kind: k, U128: getU128(d.buf[:16])}, nil
	default:
		return Value{}, ErrTagMismatch
	}
}
