package id3v2

import "fmt"

// TagFlags carries the tag-level flags and extended-header summary
// fields.
type TagFlags struct {
	UnsyncUsed         bool
	Experimental       bool
	FooterPresent      bool
	ExtendedHeaderSize int
	TagIsUpdate        bool
	CRC32Hex           string
}

// Tag is the parsed result of reading one ID3v2 tag. Callers must treat
// it as read-only once ReadV2 returns it.
type Tag struct {
	Major    int // 2, 3, or 4
	Revision int
	Size     int // declared payload size, from the header
	Flags    TagFlags
	Frames   []*Frame

	// Warnings accumulates every soft diagnostic: a skipped unknown
	// identifier, an out-of-range restriction code, an unsupported
	// feature flag, a dropped malformed frame. This package never logs on
	// the caller's behalf; it is up to the caller (e.g. cmd/cuetag) to do
	// something with these.
	Warnings []string
}

// FramesOf returns every frame of the given kind, in source order.
func (t *Tag) FramesOf(k Kind) []*Frame {
	var out []*Frame
	for _, f := range t.Frames {
		if f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}

// First returns the first frame of the given kind, or nil.
func (t *Tag) First(k Kind) *Frame {
	for _, f := range t.Frames {
		if f.Kind == k {
			return f
		}
	}
	return nil
}

// Text returns the first decoded string of the first frame of the given
// kind, for any kind whose payload is a TextFrame, UserTextFrame,
// URLFrame, or UserURLFrame. It returns "" if no such frame exists.
func (t *Tag) Text(k Kind) string {
	f := t.First(k)
	if f == nil {
		return ""
	}
	switch p := f.Payload.(type) {
	case TextFrame:
		return p.Text
	case UserTextFrame:
		return p.Value
	case URLFrame:
		return p.URL
	case UserURLFrame:
		return p.URL
	default:
		return ""
	}
}

func (t *Tag) warn(format string, args ...interface{}) {
	t.Warnings = append(t.Warnings, fmt.Sprintf(format, args...))
}
