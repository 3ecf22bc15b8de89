package id3v2

import "io"

// unsyncReader reverses the ID3v2 unsynchronisation transform: the byte
// pair 0xFF 0x00 in the underlying stream is collapsed to a single 0xFF.
// All other bytes, including an 0xFF not followed by 0x00, pass through
// untouched.
//
// It tracks bytes consumed from the underlying stream (not the
// consumer-visible count) via BytesConsumed, because the outer tag reader
// needs that number to know when the declared tag size has been
// exhausted: the filtered count undercounts whenever an escape byte is
// dropped.
//
// unsyncReader is single-threaded and non-reentrant.
type unsyncReader struct {
	r        io.Reader
	consumed int64

	have    bool // pending holds a byte read from r but not yet delivered
	pending byte
}

func newUnsyncReader(r io.Reader) *unsyncReader {
	return &unsyncReader{r: r}
}

// BytesConsumed returns the number of bytes read from the underlying
// stream so far, which is always >= the number of bytes handed to the
// caller via Read/ReadByte.
func (u *unsyncReader) BytesConsumed() int64 { return u.consumed }

func (u *unsyncReader) readRaw() (byte, error) {
	if u.have {
		b := u.pending
		u.have = false
		return b, nil
	}
	var buf [1]byte
	n, err := io.ReadFull(u.r, buf[:])
	if n == 1 {
		u.consumed++
	}
	if err != nil {
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		return 0, err
	}
	return buf[0], nil
}

// ReadByte returns the next de-filtered byte.
func (u *unsyncReader) ReadByte() (byte, error) {
	b, err := u.readRaw()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return b, nil
	}

	next, err := u.readRaw()
	if err != nil {
		// 0xFF was the last byte of the stream: emit it as-is, the
		// caller's next read will see the same EOF.
		if err == io.EOF {
			return 0xFF, nil
		}
		return 0, err
	}
	if next == 0x00 {
		// escape sequence: drop the 0x00, emit the single 0xFF.
		return 0xFF, nil
	}
	// not an escape sequence: emit 0xFF now, push next back for later.
	u.pending, u.have = next, true
	return 0xFF, nil
}

// Read implements io.Reader over the de-filtered byte stream.
func (u *unsyncReader) Read(p []byte) (int, error) {
	for i := range p {
		b, err := u.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}
