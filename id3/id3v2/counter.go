package id3v2

import "io"

// byteCounter is implemented by both the plain pass-through counting
// reader and unsyncReader, so the tag reader can track how many bytes of
// the declared tag payload have been consumed from the underlying stream
// regardless of whether unsynchronisation is in effect.
type byteCounter interface {
	io.Reader
	BytesConsumed() int64
}

// countingReader is the no-op byteCounter used when the tag-level unsync
// flag is clear: every byte read from the underlying stream is delivered
// unchanged, but still counted.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) BytesConsumed() int64 { return c.n }
