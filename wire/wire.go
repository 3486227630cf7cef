// Package wire implements the tagged primitive codec that underlies the
// terde-go object-serialization format: every value written to the stream is
// preceded by a one-byte kind tag, so that a decoder which does not recognize
// a field can still skip over it.
//
// The [Encoder] and [Decoder] types read and write a stream of tagged
// primitives plus the BEGIN/END brackets used to delimit composite values.
// This package deals only with the syntactic layer (tags, fixed-width
// primitives, and skip-to-end over BEGIN/END nesting in [Decoder.End]); the
// object-envelope framing (version numbers, skip-to-end after a body) is
// built on top of it by the root terde package, and the DAG/identity layer
// is built on top of that by the dag package.
package wire

import "strconv"

// Kind identifies the tag byte preceding every value on the wire. The numeric
// values below are part of the wire format and must not change; each
// fixed-width payload follows its tag in little-endian byte order.
type Kind byte

const (
	KindBegin Kind = 0
	KindEnd   Kind = 1
	KindU8    Kind = 2
	KindU16   Kind = 3
	KindU32   Kind = 4
	KindU128  Kind = 5
)

// String returns a human-readable name for k, or a numeric fallback for an
// unrecognized byte.
func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "BEGIN"
	case KindEnd:
		return "END"
	case KindU8:
		return "U8"
	case KindU16:
		return "U16"
	case KindU32:
		return "U32"
	case KindU128:
		return "U128"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged union of one primitive value read off the wire. It is
// produced by [Decoder.ReadValue], which is the building block used by
// skip-to-end to discard fields a reader does not understand.
type Value struct {
	Kind Kind
	U8   uint8
	U16  uint16
	U32  uint32
	U128 U128
}
