package id3v2

import (
	"encoding/hex"
	"io"

	"github.com/pkg/errors"
)

const headerSize = 10

// header is the 10-byte ID3v2 header, parsed but not yet size-validated.
type header struct {
	major    byte
	revision byte
	flags    byte
	size     int // payload size, not counting this 10-byte header
}

// Header-flag bits, by major version.
const (
	flagUnsync         = 1 << 7 // all versions
	flagV22Compression = 1 << 6 // v2.2 only
	flagExtendedHeader = 1 << 6 // v2.3/v2.4
	flagExperimental   = 1 << 5 // v2.3/v2.4
	flagFooterPresent  = 1 << 4 // v2.4 only
)

var magic = [3]byte{'I', 'D', '3'}

// parseHeader reads and validates the fixed 10-byte ID3v2 header from r.
// It returns ErrUnsupportedVersion for a major version this package
// doesn't implement and ErrInvalidSize if the size field isn't sync-safe;
// both abandon the tag.
func parseHeader(r io.Reader) (*header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] {
		return nil, errBadMagic
	}

	h := &header{major: buf[3], revision: buf[4], flags: buf[5]}

	switch h.major {
	case 2, 3, 4:
	default:
		return nil, ErrUnsupportedVersion
	}

	var sizeBytes [4]byte
	copy(sizeBytes[:], buf[6:10])
	size, ok := decodeSyncSafe32(sizeBytes)
	if !ok {
		return nil, ErrInvalidSize
	}
	h.size = size

	if h.major == 2 && h.flags&flagV22Compression != 0 {
		return nil, ErrCompressedTag
	}

	return h, nil
}

func (h *header) unsyncSet() bool       { return h.flags&flagUnsync != 0 }
func (h *header) extendedPresent() bool { return h.major >= 3 && h.flags&flagExtendedHeader != 0 }
func (h *header) experimental() bool    { return h.major >= 3 && h.flags&flagExperimental != 0 }
func (h *header) footerPresent() bool   { return h.major == 4 && h.flags&flagFooterPresent != 0 }

// extendedHeader carries the fields this package records for diagnostics;
// none of them are verified.
type extendedHeader struct {
	size      int
	padSize   int  // v2.3 only
	flagBytes byte // v2.4 only, expected to be 1
	isUpdate  bool
	crc32Hex  string
	hasCRC    bool
	restrict  byte
	hasRestr  bool
}

// readExtendedHeaderV23 consumes the v2.3 extended header: 4-byte
// big-endian (NOT sync-safe) size, 2-byte flags, 4-byte padding size, and
// if the CRC flag (bit 15 of the flags) is set, a 4-byte CRC.
func readExtendedHeaderV23(r io.Reader) (*extendedHeader, error) {
	const crcFlag = 1 << 15

	var buf [10]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	eh := &extendedHeader{size: beUint32(buf[0:4])}
	flags := beUint16(buf[4:6])
	eh.padSize = beUint32(buf[6:10])

	if flags&crcFlag != 0 {
		var crc [4]byte
		if _, err := io.ReadFull(r, crc[:]); err != nil {
			return nil, err
		}
		eh.hasCRC = true
		eh.crc32Hex = hex.EncodeToString(crc[:])
	}
	return eh, nil
}

// readExtendedHeaderV24 consumes the v2.4 extended header: 4-byte
// sync-safe size, a number-of-flag-bytes byte (expected to be 1), and one
// flag byte followed by its length-prefixed sub-fields.
func readExtendedHeaderV24(r io.Reader) (*extendedHeader, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	size, ok := decodeSyncSafe32(buf)
	if !ok {
		return nil, ErrInvalidSize
	}
	eh := &extendedHeader{size: size}

	var nFlagBytes [1]byte
	if _, err := io.ReadFull(r, nFlagBytes[:]); err != nil {
		return nil, err
	}
	// nFlagBytes[0] != 1 is a soft anomaly: recorded for the caller to
	// warn about, while this function reads the single flag byte v2.4
	// defines regardless.
	eh.flagBytes = nFlagBytes[0]

	var flagByte [1]byte
	if _, err := io.ReadFull(r, flagByte[:]); err != nil {
		return nil, err
	}

	const (
		extV24TagIsUpdate = 1 << 6
		extV24CRCPresent  = 1 << 5
		extV24Restrict    = 1 << 4
	)

	if flagByte[0]&extV24TagIsUpdate != 0 {
		if _, err := readSubfield(r, 0); err != nil {
			return nil, err
		}
		eh.isUpdate = true
	}
	if flagByte[0]&extV24CRCPresent != 0 {
		data, err := readSubfield(r, 5)
		if err != nil {
			return nil, err
		}
		var crc5 [5]byte
		copy(crc5[:], data)
		eh.hasCRC = true
		eh.crc32Hex = hex.EncodeToString(uint32ToBytes(uint32(decodeSyncSafe35(crc5))))
	}
	if flagByte[0]&extV24Restrict != 0 {
		data, err := readSubfield(r, 1)
		if err != nil {
			return nil, err
		}
		eh.hasRestr = true
		eh.restrict = data[0]
	}

	return eh, nil
}

// readSubfield reads a v2.4 extended-header sub-field: a one-byte length
// prefix followed by that many bytes. A length other than want leaves the
// rest of the extended header unlocatable, so it is rejected rather than
// guessed at.
func readSubfield(r io.Reader, want int) ([]byte, error) {
	var lenByte [1]byte
	if _, err := io.ReadFull(r, lenByte[:]); err != nil {
		return nil, err
	}
	n := int(lenByte[0])
	if n != want {
		return nil, errors.Wrapf(errBadExtendedHeader, "sub-field length %d, want %d", n, want)
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func beUint16(b []byte) int { return int(b[0])<<8 | int(b[1]) }
func beUint32(b []byte) int {
	return int(b[0])<<24 | int(b[1])<<16 | int(b[2])<<8 | int(b[3])
}

func uint32ToBytes(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
