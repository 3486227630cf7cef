package terdetest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/u1roh/terde-go/terdetest"
	"github.com/u1roh/terde-go/wire"
)

type point struct {
	X, Y uint32
}

func (p point) serialize(w *wire.Encoder) error {
	if err := w.WriteU32(p.X); err != nil {
		return err
	}
	return w.WriteU32(p.Y)
}

func deserializePoint(r *wire.Decoder, version uint16) (point, error) {
	var p point
	var err error
	if p.X, err = r.ReadU32(); err != nil {
		return p, err
	}
	p.Y, err = r.ReadU32()
	return p, err
}

func TestRoundTrip(t *testing.T) {
	want := point{X: 3, Y: 4}
	terdetest.RoundTrip(t, 1, want, want.serialize, deserializePoint)
}

func TestFingerprintDeterministic(t *testing.T) {
	data := []byte{byte(wire.KindU32), 1, 2, 3, 4}

	a := terdetest.Fingerprint(data)
	b := terdetest.Fingerprint(data)
	assert.Equal(t, a, b, "Fingerprint must be deterministic")

	other := terdetest.Fingerprint([]byte{byte(wire.KindU32), 1, 2, 3, 5})
	assert.NotEqual(t, a, other, "Fingerprint collided on distinct inputs")
}
