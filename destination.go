package jpegli

import (
	"bufio"
	"io"
)

// Destination is the abstract output sink described in spec.md §1/§4.8:
// init before SOI, writes in between, terminate after EOI.
type Destination interface {
	InitDestination() error
	WriteBytes([]byte) error
	TermDestination() error
}

// writerDestination adapts any io.Writer into a Destination, buffering
// writes the way the source's next_output_byte/free_in_buffer contract
// implies without exposing that buffer management to callers.
type writerDestination struct {
	w   *bufio.Writer
	err error
}

// NewDestination wraps w as a Destination suitable for CompressionContext.
func NewDestination(w io.Writer) Destination {
	return &writerDestination{w: bufio.NewWriterSize(w, 32<<10)}
}

func (d *writerDestination) InitDestination() error { return nil }

func (d *writerDestination) WriteBytes(b []byte) error {
	if d.err != nil {
		return d.err
	}
	_, d.err = d.w.Write(b)
	return d.err
}

func (d *writerDestination) TermDestination() error {
	if d.err != nil {
		return d.err
	}
	return d.w.Flush()
}
