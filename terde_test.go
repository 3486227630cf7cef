package terde_test

import (
	"bytes"
	"errors"
	"testing"

	terde "github.com/u1roh/terde-go"
	"github.com/u1roh/terde-go/wire"
)

// dVal is the type used by scenario S2 of the specification: fields
// a:u32, b:u16, c:u8 at version 1; version 0 has only a and b.
type dVal struct {
	A uint32
	B uint16
	C uint8
}

func (d dVal) serialize(w *wire.Encoder) error {
	if err := w.WriteU32(d.A); err != nil {
		return err
	}
	if err := w.WriteU16(d.B); err != nil {
		return err
	}
	return w.WriteU8(d.C)
}

// serializeV0 emits only the fields that existed in version 0, simulating a
// stream written by an older encoder.
func (d dVal) serializeV0(w *wire.Encoder) error {
	if err := w.WriteU32(d.A); err != nil {
		return err
	}
	return w.WriteU16(d.B)
}

func deserializeDVal(r *wire.Decoder, version uint16) (dVal, error) {
	var d dVal
	var err error
	if d.A, err = r.ReadU32(); err != nil {
		return d, err
	}
	if d.B, err = r.ReadU16(); err != nil {
		return d, err
	}
	if version == 0 {
		// version 0 never had field C; leave it at its zero value.
		return d, nil
	}
	if d.C, err = r.ReadU8(); err != nil {
		return d, err
	}
	return d, nil
}

// TestObjectRoundTrip is scenario S2's first half: a value encoded and
// decoded at the same version must round-trip exactly.
func TestObjectRoundTrip(t *testing.T) {
	want := dVal{A: 321, B: 654, C: 111}
	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := terde.WriteObject(enc, 1, want.serialize); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := wire.NewDecoder(&buf)
	got, err := terde.ReadObject(dec, deserializeDVal)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// TestBackwardCompatibility is scenario S2's second half: a version-0 stream
// (missing field C) decoded by the version-1-aware deserializeDVal must
// produce C's zero value, and skip-to-end must consume cleanly (there is
// nothing trailing to skip here, but the decoder must not error on the
// version mismatch between what the body knows and what was written).
func TestBackwardCompatibility(t *testing.T) {
	legacy := dVal{A: 123, B: 456}
	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := terde.WriteObject(enc, 0, legacy.serializeV0); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := wire.NewDecoder(&buf)
	got, err := terde.ReadObject(dec, deserializeDVal)
	if err != nil {
		t.Fatal(err)
	}
	want := dVal{A: 123, B: 456, C: 0}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// TestForwardCompatibilityTrailingFields exercises the general forward
// compatibility property: a writer that emits a newer version with an extra
// trailing field must still decode cleanly against a reader that only knows
// the older version's fields, via skip-to-end.
func TestForwardCompatibilityTrailingFields(t *testing.T) {
	type wide struct {
		A uint32
		B uint16
	}
	writeWide := func(w *wire.Encoder) error {
		if err := w.WriteU32(7); err != nil {
			return err
		}
		if err := w.WriteU16(8); err != nil {
			return err
		}
		return w.WriteU8(9) // a field the old reader doesn't know about
	}
	readNarrow := func(r *wire.Decoder, version uint16) (wide, error) {
		var v wide
		var err error
		if v.A, err = r.ReadU32(); err != nil {
			return v, err
		}
		v.B, err = r.ReadU16()
		return v, err
	}

	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := terde.WriteObject(enc, 2, writeWide); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := wire.NewDecoder(&buf)
	got, err := terde.ReadObject(dec, readNarrow)
	if err != nil {
		t.Fatalf("ReadObject: %v", err)
	}
	if got.A != 7 || got.B != 8 {
		t.Fatalf("got %+v", got)
	}
}

// TestBackwardIncompatibleRemovalFails documents the expected failure mode
// when a reader tries to read more fields than were actually written: the
// next tag read does not match and ErrTagMismatch surfaces.
func TestBackwardIncompatibleRemovalFails(t *testing.T) {
	writeNarrow := func(w *wire.Encoder) error {
		return w.WriteU32(1)
	}
	readWide := func(r *wire.Decoder, version uint16) (int, error) {
		if _, err := r.ReadU32(); err != nil {
			return 0, err
		}
		// The writer never wrote this field.
		_, err := r.ReadU16()
		return 0, err
	}

	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := terde.WriteObject(enc, 0, writeNarrow); err != nil {
		t.Fatal(err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatal(err)
	}

	dec := wire.NewDecoder(&buf)
	if _, err := terde.ReadObject(dec, readWide); !errors.Is(err, wire.ErrTagMismatch) {
		t.Fatalf("ReadObject error = %v, want ErrTagMismatch", err)
	}
}

func TestNewTypeKeyIsRandom(t *testing.T) {
	a := terde.NewTypeKey()
	b := terde.NewTypeKey()
	if a == b {
		t.Fatal("NewTypeKey produced the same key twice")
	}
}
