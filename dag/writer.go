package dag

import (
	"io"
	"reflect"

	terde "github.com/u1roh/terde-go"
	"github.com/u1roh/terde-go/wire"
)

// Option configures a [Writer].
type Option func(*Writer)

// WithCycleDetection enables cycle detection during traversal. It costs a
// second map tracking the nodes currently being visited, so it is opt-in:
// most call sites build their graphs bottom-up (children constructed before
// their parents) and simply cannot produce a cycle.
func WithCycleDetection() Option {
	return func(w *Writer) { w.visiting = map[uintptr]bool{} }
}

// Writer serializes an object graph with shared nodes, assigning each
// distinct node a dense id in post-order (dependencies-first) traversal
// order and emitting it exactly once. A node already seen in a previous
// call to [Writer.WriteObject] on the same Writer is recognized by identity
// and not re-emitted: this is what lets a caller hand the writer a forest of
// trees sharing common subgraphs and get a single, deduplicated stream.
type Writer struct {
	enc      *wire.Encoder
	ids      map[uintptr]uint32
	nextID   uint32
	visiting map[uintptr]bool // non-nil iff cycle detection is enabled
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer, opts ...Option) *Writer {
	wr := &Writer{enc: wire.NewEncoder(w), ids: map[uintptr]uint32{}}
	for _, opt := range opts {
		opt(wr)
	}
	return wr
}

// Flush flushes the underlying encoder.
func (w *Writer) Flush() error { return w.enc.Flush() }

// identity returns the address backing node's concrete pointer, which the
// identity table uses as node's key. Per the [Node] contract, node's
// concrete type must be a pointer.
func identity(node Node) uintptr {
	return reflect.ValueOf(node).Pointer()
}

// WriteObject writes root as a top-level DAG frame: BEGIN, id, type key, the
// root's object envelope, END. Any of root's dependencies not already
// present in this Writer's identity table are emitted first, recursively, in
// post-order, so that a reference a node writes via [Writer.WriteRef] always
// names an id that already exists by the time it appears on the wire.
//
// WriteObject may be called more than once on the same Writer: later calls
// reuse ids already assigned to shared nodes and only emit what's new,
// so multiple roots sharing common subgraphs still produce one stream with
// every distinct node written exactly once.
func (w *Writer) WriteObject(root Node) error {
	return w.writeNode(root)
}

func (w *Writer) writeNode(n Node) error {
	key := identity(n)
	if _, ok := w.ids[key]; ok {
		return nil
	}

	if w.visiting != nil {
		if w.visiting[key] {
			return &CycleError{Fingerprint: fingerprint(n.TypeKey(), key)}
		}
		w.visiting[key] = true
		defer delete(w.visiting, key)
	}

	for _, dep := range n.Dependencies() {
		if err := w.writeNode(dep); err != nil {
			return err
		}
	}

	id := w.nextID
	w.nextID++
	w.ids[key] = id

	if err := w.enc.Begin(); err != nil {
		return err
	}
	if err := w.enc.WriteU32(id); err != nil {
		return err
	}
	if err := w.enc.WriteU128(n.TypeKey()); err != nil {
		return err
	}
	if err := terde.WriteObject(w.enc, n.Version(), func(wr *wire.Encoder) error {
		return n.Serialize(w)
	}); err != nil {
		return err
	}
	return w.enc.End()
}

// WriteRef writes a reference to child, which must already have been
// emitted — either because it is one of the current node's declared
// Dependencies (guaranteed emitted first by WriteObject's post-order
// traversal), or because it was written by an earlier WriteObject call on
// this Writer. Passing any other node is a programming error and reports
// [ErrObjNotFound].
func (w *Writer) WriteRef(child Node) error {
	id, ok := w.ids[identity(child)]
	if !ok {
		return ErrObjNotFound
	}
	return w.enc.WriteU32(id)
}

// The following primitive passthroughs let a [Node.Serialize] method write
// its own plain fields through the same Writer it uses for WriteRef, without
// reaching into an unexported encoder field.

// WriteU8 writes a tagged 8-bit unsigned integer.
func (w *Writer) WriteU8(x uint8) error { return w.enc.WriteU8(x) }

// WriteU16 writes a tagged 16-bit unsigned integer.
func (w *Writer) WriteU16(x uint16) error { return w.enc.WriteU16(x) }

// WriteU32 writes a tagged 32-bit unsigned integer.
func (w *Writer) WriteU32(x uint32) error { return w.enc.WriteU32(x) }

// WriteU128 writes a tagged 128-bit unsigned integer.
func (w *Writer) WriteU128(x wire.U128) error { return w.enc.WriteU128(x) }
