// Package terdetest collects the test-tooling conventions used across
// terde-go's own test suites and is also usable by downstream packages that
// define their own serializable types: a generic round-trip assertion and a
// stable content fingerprint for golden fixtures.
package terdetest

import (
	"bytes"
	"testing"

	terde "github.com/u1roh/terde-go"
	"github.com/u1roh/terde-go/wire"
	"github.com/zeebo/xxh3"
)

// RoundTrip encodes want at version using body, decodes it back with
// deserialize, and fails t if the result does not equal want. It is the
// generic shape behind most of this repo's object-level tests (terde_test.go
// TestObjectRoundTrip and its siblings), factored out for reuse by anyone
// defining their own terde-encodable type.
func RoundTrip[T comparable](t *testing.T, version uint16, want T, body terde.Body, deserialize terde.Deserialize[T]) {
	t.Helper()

	var buf bytes.Buffer
	enc := wire.NewEncoder(&buf)
	if err := terde.WriteObject(enc, version, body); err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	if err := enc.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	dec := wire.NewDecoder(&buf)
	got, err := terde.ReadObject(dec, deserialize)
	if err != nil {
		t.Fatalf("ReadObject: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// Fingerprint computes a stable 64-bit content hash of an encoded stream,
// suitable for recording a golden fixture's expected checksum without
// committing the fixture's raw bytes to a human-readable diff. It uses
// github.com/zeebo/xxh3 rather than a stdlib hash: xxh3 is already part of
// this repo's dependency graph (dag.WithCycleDetection's diagnostics), and
// it's a fast non-cryptographic content hash, which is all a fixture
// checksum needs.
func Fingerprint(data []byte) uint64 {
	return xxh3.Hash(data)
}
