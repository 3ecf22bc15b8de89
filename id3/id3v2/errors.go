package id3v2

import "github.com/pkg/errors"

// Sentinel errors for the tag-level failure kinds. Any of these means
// the tag as a whole was abandoned; ReadV2 translates each of them into
// an absent-tag result, so none of them reaches ReadV2's caller.
var (
	// ErrInvalidSize is returned when a sync-safe size field has a byte
	// with its high bit set.
	ErrInvalidSize = errors.New("id3v2: invalid sync-safe size")
	// ErrUnsupportedVersion is returned for an ID3 major version this
	// package does not know how to read.
	ErrUnsupportedVersion = errors.New("id3v2: unsupported major version")
	// ErrCompressedTag is returned for a v2.2 tag with the whole-tag
	// compression flag set, which has no defined layout to read past.
	ErrCompressedTag = errors.New("id3v2: whole-tag compression is not supported")
	// ErrTruncated is returned when EOF is reached before the declared tag
	// size is exhausted.
	ErrTruncated = errors.New("id3v2: truncated tag")

	errBadMagic          = errors.New("id3v2: missing ID3 magic")
	errBadExtendedHeader = errors.New("id3v2: malformed extended header")
)

// MalformedFrameError reports a single frame that could not be decoded.
// The tag reader drops the frame, appends the error's text to
// Tag.Warnings, and continues from the next frame position. The tag
// reader fills in ID and Reason only; Offset is left at zero.
type MalformedFrameError struct {
	ID     string
	Offset int
	Reason error
}

func (e *MalformedFrameError) Error() string {
	return errors.Wrapf(e.Reason, "id3v2: malformed frame %q at offset %d", e.ID, e.Offset).Error()
}

func (e *MalformedFrameError) Unwrap() error { return e.Reason }

// ErrUnsupportedEncoding is wrapped into a MalformedFrameError whenever a
// text encoding byte is outside {0,1,2,3} for the active revision.
var ErrUnsupportedEncoding = errors.New("id3v2: unsupported text encoding byte")

// ErrMalformedBOM is wrapped into a MalformedFrameError when an
// encoding-1 (UTF-16 with BOM) string does not begin with a recognised
// byte-order mark.
var ErrMalformedBOM = errors.New("id3v2: malformed UTF-16 byte-order mark")
