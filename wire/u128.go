package wire

import (
	"encoding/binary"

	"github.com/google/uuid"
	"lukechampine.com/uint128"
)

// U128 is the wire's 128-bit primitive type. It is used both as an ordinary
// tagged value and, by the dag package, as the stable type key that
// identifies a registered node type. We reuse lukechampine.com/uint128
// rather than hand-rolling 128-bit arithmetic on a [16]byte: it already
// provides correct, tested Add/Cmp/String behavior that a type key or a
// general-purpose u128 value may need once application code starts doing
// arithmetic or comparisons on it. Uint128 exposes its value as two u64 limbs
// (Lo, Hi), which we pack/unpack directly rather than going through the
// library's big-endian Bytes()/FromBytes() helpers, since the wire format
// fixes little-endian byte order (see the [Kind] constants).
type U128 = uint128.Uint128

// putU128 writes x into buf[:16] in the wire's fixed little-endian byte
// order. buf must have length >= 16.
func putU128(buf []byte, x U128) {
	binary.LittleEndian.PutUint64(buf[0:8], x.Lo)
	binary.LittleEndian.PutUint64(buf[8:16], x.Hi)
}

// getU128 reads a little-endian 128-bit value from buf[:16].
func getU128(buf []byte) U128 {
	return uint128.New(
		binary.LittleEndian.Uint64(buf[0:8]),
		binary.LittleEndian.Uint64(buf[8:16]),
	)
}

// U128FromUUIDBytes reinterprets a UUID's 16 bytes as a U128, treating the
// UUID's own big-endian byte layout as the most significant end. This is
// exposed here (rather than in the root terde package) so that any package
// minting type keys from a UUID shares one conversion.
func U128FromUUIDBytes(id uuid.UUID) U128 {
	return uint128.New(
		binary.BigEndian.Uint64(id[8:16]),
		binary.BigEndian.Uint64(id[0:8]),
	)
}
