// Package dag implements the reference/DAG layer and the type registry that
// sit on top of packages [github.com/u1roh/terde-go] and
// [github.com/u1roh/terde-go/wire]: pointer-identity tracking on encode, a
// dense id assigned in allocation order, post-order emission of a node's
// dependencies before the node itself, and — on decode — an id table and a
// type-key-keyed registry of deserializers that reconstruct sharing exactly
// as it was on the writer side.
package dag

import terde "github.com/u1roh/terde-go"

// Node is the capability a type must expose to participate as a shared,
// identity-tracked node in a DAG: a value that knows its type key and how to
// serialize itself. A Node implementation must be backed by a pointer type
// (e.g. *MyNode implementing Node): the writer's identity table keys on the
// address that pointer holds, not on any value comparison, since two distinct
// nodes can easily compare equal by value while two references to the same
// shared node must always collapse to one. Passing a non-pointer struct type
// is a programming error: the writer's identity lookup
// (reflect.Value.Pointer) panics on it.
type Node interface {
	// TypeKey returns the stable 128-bit key for this node's concrete type.
	// All values of a type must return the same key.
	TypeKey() terde.TypeKey
	// Version returns the schema version this node will be encoded with.
	Version() uint16
	// Dependencies returns this node's outgoing graph edges: the nodes that
	// must be emitted before this one. An empty slice means a leaf node.
	Dependencies() []Node
	// Serialize writes this node's own fields (not its dependencies' — those
	// are handled by the writer's post-order traversal) using w. Use
	// [Writer.WriteRef] to emit a reference to a dependency.
	Serialize(w *Writer) error
}
