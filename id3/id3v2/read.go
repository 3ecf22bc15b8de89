package id3v2

import (
	"io"

	"github.com/pkg/errors"
)

// ReadV2 reads one ID3v2 tag from the start of r. It returns (nil, nil)
// for a stream that does not begin with the ID3 magic, declares a
// revision or feature this package cannot read, or is truncated before
// the declared tag size is exhausted; an absent tag is not an error.
// I/O failures other than EOF are returned as-is.
//
// The returned Tag's Warnings field accumulates every soft and
// recoverable anomaly encountered while reading; ReadV2 itself never
// logs.
func ReadV2(r io.Reader) (*Tag, error) {
	hdr, err := parseHeader(r)
	if err != nil {
		return nil, absorbAbsent(err)
	}

	tag := &Tag{
		Major:    int(hdr.major),
		Revision: int(hdr.revision),
		Size:     hdr.size,
		Flags: TagFlags{
			UnsyncUsed:    hdr.unsyncSet(),
			Experimental:  hdr.experimental(),
			FooterPresent: hdr.footerPresent(),
		},
	}

	var src byteCounter
	if hdr.unsyncSet() {
		src = newUnsyncReader(r)
	} else {
		src = &countingReader{r: r}
	}

	startConsumed := src.BytesConsumed()

	if hdr.extendedPresent() {
		if hdr.major == 3 {
			eh, err := readExtendedHeaderV23(src)
			if err != nil {
				// A truncated or otherwise unreadable extended header
				// leaves the frame boundary unrecoverable: abandon the tag.
				return nil, absorbAbsent(err)
			}
			tag.Flags.ExtendedHeaderSize = eh.size
			if eh.hasCRC {
				tag.Flags.CRC32Hex = eh.crc32Hex
			}
		} else if hdr.major == 4 {
			eh, err := readExtendedHeaderV24(src)
			if err != nil {
				return nil, absorbAbsent(err)
			}
			tag.Flags.ExtendedHeaderSize = eh.size
			tag.Flags.TagIsUpdate = eh.isUpdate
			if eh.flagBytes != 1 {
				tag.warn("extended header declares %d flag bytes, want 1", eh.flagBytes)
			}
			if eh.hasCRC {
				tag.Flags.CRC32Hex = eh.crc32Hex
			}
			if eh.hasRestr {
				tag.warn("extended header declares restrictions 0x%02x, not enforced", eh.restrict)
			}
		}
	}

	if err := readFrames(tag, src, startConsumed); err != nil {
		return nil, absorbAbsent(err)
	}

	if err := skipRemaining(src, tag, startConsumed); err != nil {
		return nil, absorbAbsent(err)
	}

	return tag, nil
}

// absorbAbsent maps every "no usable tag here" condition (bad magic, an
// unrecognised major version, whole-tag compression, a non-sync-safe
// size, truncation) to the absent-tag result: a nil error. A genuine I/O
// failure passes through so the caller can distinguish a broken source
// from an untagged one.
func absorbAbsent(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, errBadMagic), errors.Is(err, ErrUnsupportedVersion),
		errors.Is(err, ErrInvalidSize), errors.Is(err, ErrCompressedTag),
		errors.Is(err, ErrTruncated), errors.Is(err, errBadExtendedHeader):
		return nil
	}
	return err
}
