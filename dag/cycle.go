package dag

import (
	"encoding/binary"
	"fmt"

	terde "github.com/u1roh/terde-go"
	"github.com/zeebo/xxh3"
)

// CycleError is returned by [Writer] methods when cycle detection is
// enabled (see [WithCycleDetection]) and a node's Dependencies form a cycle
// — something the wire format itself has no way to express, since every
// node must be fully emitted (dependencies-first) before the id that
// references it exists.
//
// Fingerprint is a 64-bit digest of the offending node's type key and
// identity, computed with github.com/zeebo/xxh3; it is meant for log lines
// and diagnostics, not for programmatic comparison against a specific node.
type CycleError struct {
	Fingerprint uint64
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dag: cycle detected at node %016x", e.Fingerprint)
}

// fingerprint hashes a node's type key together with its identity key (the
// pointer value the writer's identity table uses) into a single 64-bit
// value for diagnostics. It is not part of the wire format.
func fingerprint(key terde.TypeKey, identity uintptr) uint64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], key.Lo)
	binary.LittleEndian.PutUint64(buf[8:16], key.Hi)
	binary.LittleEndian.PutUint64(buf[16:24], uint64(identity))
	return xxh3.Hash(buf[:])
}
