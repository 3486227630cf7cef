// Command gen-golden writes golden fixture files for the wire, terde and dag
// encodings into the -out directory and logs each one's size and xxh3
// fingerprint. It is run by hand (no go:generate directive invokes it, and
// no test reads the fixtures) and is never built into the library itself.
package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	terde "github.com/u1roh/terde-go"
	"github.com/u1roh/terde-go/dag"
	"github.com/u1roh/terde-go/terdetest"
	"github.com/u1roh/terde-go/wire"
)

var flOut = flag.String("out", "testdata", "directory to write golden fixtures into")

// fixtureLeaf and fixturePair mirror the types dag_test.go uses for
// TestSharedChildPreservesIdentity; they exist here only so this tool can
// produce a real, loadable shared_leaf_dag.golden fixture rather than a
// hand-assembled byte literal.
var fixtureLeafTypeKey = terde.TypeKey{Lo: 0x1, Hi: 0x0}
var fixturePairTypeKey = terde.TypeKey{Lo: 0x2, Hi: 0x0}

type fixtureLeaf struct{ Value uint32 }

func (l *fixtureLeaf) TypeKey() terde.TypeKey   { return fixtureLeafTypeKey }
func (l *fixtureLeaf) Version() uint16          { return 1 }
func (l *fixtureLeaf) Dependencies() []dag.Node { return nil }
func (l *fixtureLeaf) Serialize(w *dag.Writer) error {
	return w.WriteU32(l.Value)
}

type fixturePair struct{ A, B *fixtureLeaf }

func (p *fixturePair) TypeKey() terde.TypeKey   { return fixturePairTypeKey }
func (p *fixturePair) Version() uint16          { return 1 }
func (p *fixturePair) Dependencies() []dag.Node { return []dag.Node{p.A, p.B} }
func (p *fixturePair) Serialize(w *dag.Writer) error {
	if err := w.WriteRef(p.A); err != nil {
		return err
	}
	return w.WriteRef(p.B)
}

func main() {
	flag.Parse()
	logger := log.NewLogfmtLogger(os.Stderr)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if err := os.MkdirAll(*flOut, 0o755); err != nil {
		level.Error(logger).Log("msg", "creating output directory", "err", err)
		os.Exit(1)
	}

	write := func(name string, data []byte) {
		path := filepath.Join(*flOut, name+".golden")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			level.Error(logger).Log("msg", "writing fixture", "fixture", name, "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log(
			"msg", "wrote fixture",
			"fixture", name,
			"bytes", len(data),
			"fingerprint", terdetest.Fingerprint(data),
		)
	}

	// u32_scalar: a single tagged primitive, scenario S1's wire bytes.
	func() {
		var buf bytes.Buffer
		enc := wire.NewEncoder(&buf)
		if err := enc.WriteU32(0x01020304); err != nil {
			level.Error(logger).Log("msg", "encoding u32_scalar", "err", err)
			os.Exit(1)
		}
		if err := enc.Flush(); err != nil {
			level.Error(logger).Log("msg", "flushing u32_scalar", "err", err)
			os.Exit(1)
		}
		write("u32_scalar", buf.Bytes())
	}()

	// object_v1: a versioned object envelope with three fields.
	func() {
		var buf bytes.Buffer
		enc := wire.NewEncoder(&buf)
		err := terde.WriteObject(enc, 1, func(w *wire.Encoder) error {
			if err := w.WriteU32(321); err != nil {
				return err
			}
			if err := w.WriteU16(654); err != nil {
				return err
			}
			return w.WriteU8(111)
		})
		if err != nil {
			level.Error(logger).Log("msg", "encoding object_v1", "err", err)
			os.Exit(1)
		}
		if err := enc.Flush(); err != nil {
			level.Error(logger).Log("msg", "flushing object_v1", "err", err)
			os.Exit(1)
		}
		write("object_v1", buf.Bytes())
	}()

	// shared_leaf_dag: two references to the same leaf, the DAG layer's
	// identity-preservation fixture.
	func() {
		shared := &fixtureLeaf{Value: 42}
		root := &fixturePair{A: shared, B: shared}

		var buf bytes.Buffer
		w := dag.NewWriter(&buf)
		if err := w.WriteObject(root); err != nil {
			level.Error(logger).Log("msg", "encoding shared_leaf_dag", "err", err)
			os.Exit(1)
		}
		if err := w.Flush(); err != nil {
			level.Error(logger).Log("msg", "flushing shared_leaf_dag", "err", err)
			os.Exit(1)
		}
		write("shared_leaf_dag", buf.Bytes())
	}()
}
