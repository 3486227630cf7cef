package wire

import (
	"fmt"
	"io"
)

// flakyReader implements [io.Reader] by producing bytes and injected errors
// from a fixed script, used to exercise how the decoder reacts to a
// transient failure from its underlying reader.
type flakyReader struct {
	data []any // byte, int, or error values, consumed in order
}

func (r *flakyReader) Read(p []byte) (n int, err error) {
	for n < len(p) && len(r.data) > 0 && err == nil {
		switch v := r.data[0].(type) {
		case byte:
			p[n] = v
			n++
		case int:
			p[n] = byte(v)
			n++
		case error:
			err = v
		default:
			panic(fmt.Sprintf("flakyReader: invalid data value %v", v))
		}
		r.data = r.data[1:]
	}
	if len(r.data) == 0 && err == nil {
		err = io.EOF
	}
	return n, err
}
