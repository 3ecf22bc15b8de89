package id3v2

import (
	"bytes"
	"io"
	"testing"
)

func TestReadV2_MinimalV23TextFrame(t *testing.T) {
	data := []byte("ID3\x03\x00\x00\x00\x00\x00\x0CTIT2\x00\x00\x00\x02\x00\x00\x00X")
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatalf("got nil tag")
	}
	if tag.Major != 3 || tag.Size != 12 {
		t.Fatalf("Major=%d Size=%d, want Major=3 Size=12", tag.Major, tag.Size)
	}
	if len(tag.Frames) != 1 {
		t.Fatalf("got %d frames, want 1: %+v", len(tag.Frames), tag.Frames)
	}
	f := tag.Frames[0]
	if f.Kind != KindTitle {
		t.Fatalf("Kind = %v, want KindTitle", f.Kind)
	}
	tf, ok := f.Payload.(TextFrame)
	if !ok || tf.Text != "X" {
		t.Fatalf("Payload = %+v, want TextFrame{Text: X}", f.Payload)
	}
	if f.TotalFrameSize != 12 {
		t.Fatalf("TotalFrameSize = %d, want 12 (10-byte header + 2-byte body)", f.TotalFrameSize)
	}
}

func TestReadV2_V24UTF8Text(t *testing.T) {
	data := []byte("ID3\x04\x00\x00\x00\x00\x00\x0CTIT2\x00\x00\x00\x02\x00\x00\x03X")
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil || len(tag.Frames) != 1 {
		t.Fatalf("got %+v", tag)
	}
	tf := tag.Frames[0].Payload.(TextFrame)
	if tf.Text != "X" {
		t.Fatalf("Text = %q, want X", tf.Text)
	}
}

// TestReadV2_UnsyncedUTF16Body reads a v2.3 tag whose unsync flag is set:
// the UTF-16 BOM's 0xFF is escaped as 0xFF 0x00 on the wire, the declared
// tag size (18) counts the escaped stream, and the frame body size (7)
// counts the de-filtered bytes.
func TestReadV2_UnsyncedUTF16Body(t *testing.T) {
	data := []byte{
		'I', 'D', '3', 0x03, 0x00, 0x80, 0x00, 0x00, 0x00, 0x12,
		'T', 'I', 'T', '2', 0x00, 0x00, 0x00, 0x07, 0x00, 0x00,
		0x01, 0xFF, 0x00, 0xFE, 0x58, 0x00, 0x00, 0x00,
	}
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatalf("got nil tag")
	}
	if !tag.Flags.UnsyncUsed {
		t.Fatalf("Flags.UnsyncUsed = false, want true")
	}
	if len(tag.Frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(tag.Frames))
	}
	tf := tag.Frames[0].Payload.(TextFrame)
	if tf.Text != "X" {
		t.Fatalf("Text = %q, want X", tf.Text)
	}
}

// An invalid sync-safe size byte (bit 7 set) means no usable tag, not an
// error.
func TestReadV2_InvalidSizeIsAbsent(t *testing.T) {
	data := []byte{'I', 'D', '3', 0x03, 0x00, 0x00, 0x80, 0x00, 0x00, 0x00}
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v, want nil", err)
	}
	if tag != nil {
		t.Fatalf("got tag %+v, want nil (AbsentTag)", tag)
	}
}

func TestReadV2_NoMagicIsAbsent(t *testing.T) {
	tag, err := ReadV2(bytes.NewReader([]byte("not an id3 tag at all")))
	if err != nil || tag != nil {
		t.Fatalf("got tag=%v err=%v, want nil, nil", tag, err)
	}
}

func TestReadV2_UnsupportedMajorVersionIsAbsent(t *testing.T) {
	data := []byte("ID3\x05\x00\x00\x00\x00\x00\x00")
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil || tag != nil {
		t.Fatalf("got tag=%v err=%v, want nil, nil", tag, err)
	}
}

func TestReadV2_V22WholeTagCompressionIsAbsent(t *testing.T) {
	data := []byte("ID3\x02\x00\x40\x00\x00\x00\x00")
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil || tag != nil {
		t.Fatalf("got tag=%v err=%v, want nil, nil", tag, err)
	}
}

// A frame identifier in the version's discard-when-altered set always
// reports PreserveOnFileAlter=false, even if the wire flag bit says
// otherwise.
func TestReadV2_DiscardOnAlterOverride(t *testing.T) {
	// TENC frame, v2.3, with flags 0x4000 (preserve-on-file-alter bit set).
	body := append([]byte{encISO8859_1}, "LAME\x00"...)
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.WriteByte(3)
	buf.WriteByte(0)
	buf.WriteByte(0) // header flags
	size := 10 + len(body)
	sizeBytes := encodeSyncSafe32(size)
	buf.Write(sizeBytes[:])
	buf.WriteString("TENC")
	bodySizeBytes := [4]byte{byte(len(body) >> 24), byte(len(body) >> 16), byte(len(body) >> 8), byte(len(body))}
	buf.Write(bodySizeBytes[:])
	buf.WriteByte(0x40) // preserve-on-file-alter bit (bit 14)
	buf.WriteByte(0x00)
	buf.Write(body)

	tag, err := ReadV2(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil || len(tag.Frames) != 1 {
		t.Fatalf("got %+v", tag)
	}
	if tag.Frames[0].Flags.PreserveOnFileAlter {
		t.Fatalf("PreserveOnFileAlter = true, want false (TENC is in the v2.3 discard-on-alter set)")
	}
}

// Once an all-zero identifier is hit, no further frames are emitted and
// the remaining declared bytes are consumed as padding, not an error.
func TestReadV2_Padding(t *testing.T) {
	body := append([]byte{encISO8859_1}, "X\x00"...)
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.WriteByte(3)
	buf.WriteByte(0)
	buf.WriteByte(0)
	frameTotal := 10 + len(body)
	padding := 20
	size := encodeSyncSafe32(frameTotal + padding)
	buf.Write(size[:])
	buf.WriteString("TIT2")
	bodySizeBytes := [4]byte{0, 0, 0, byte(len(body))}
	buf.Write(bodySizeBytes[:])
	buf.WriteByte(0)
	buf.WriteByte(0)
	buf.Write(body)
	buf.Write(make([]byte, padding))

	tag, err := ReadV2(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil || len(tag.Frames) != 1 {
		t.Fatalf("got %+v", tag)
	}
}

// This package's truncation policy: a tag hitting EOF before its declared
// size yields no tag at all, never a partial one.
func TestReadV2_TruncatedIsAbsent(t *testing.T) {
	data := []byte("ID3\x03\x00\x00\x00\x00\x00\x0CTIT2\x00\x00\x00\x01\x00\x00\x00")
	// declared size 12 but only 11 payload bytes follow the header; the
	// stream ends one byte short.
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v, want nil per this package's truncation policy", err)
	}
	if tag != nil {
		t.Fatalf("got tag %+v, want nil", tag)
	}
}

// Frame total size accounting matches the header+body formula, and
// summed frame sizes plus padding equal the declared tag size.
func TestReadV2_SizeInvariant(t *testing.T) {
	data := []byte("ID3\x03\x00\x00\x00\x00\x00\x0CTIT2\x00\x00\x00\x02\x00\x00\x00X")
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil || tag == nil {
		t.Fatalf("got tag=%v err=%v", tag, err)
	}
	var sum int
	for _, f := range tag.Frames {
		if f.TotalFrameSize != headerSizeFor(tag.Major)+bodySizeOf(f) {
			t.Fatalf("frame %q: TotalFrameSize=%d inconsistent with header+body", f.ID, f.TotalFrameSize)
		}
		sum += f.TotalFrameSize
	}
	if sum != tag.Size {
		t.Fatalf("sum(TotalFrameSize)=%d, want declared size %d (no padding in this fixture)", sum, tag.Size)
	}
}

func headerSizeFor(major int) int {
	if major == 2 {
		return 6
	}
	return 10
}

func bodySizeOf(f *Frame) int {
	return f.TotalFrameSize - headerSizeFor(3) // fixture is always v2.3/2.4 width here
}

func TestKindString(t *testing.T) {
	if KindTitle.String() != "title" {
		t.Fatalf("got %q", KindTitle.String())
	}
	if Kind(9999).String() != "kind(?)" {
		t.Fatalf("got %q for unknown kind", Kind(9999).String())
	}
}

func TestTagTextAccessor(t *testing.T) {
	tag := &Tag{Frames: []*Frame{
		{Kind: KindTitle, Payload: TextFrame{Text: "My Title"}},
	}}
	if got := tag.Text(KindTitle); got != "My Title" {
		t.Fatalf("Text(KindTitle) = %q, want %q", got, "My Title")
	}
	if got := tag.Text(KindAlbum); got != "" {
		t.Fatalf("Text(KindAlbum) = %q, want empty", got)
	}
}

func TestTagFramesOfAndFirst(t *testing.T) {
	tag := &Tag{Frames: []*Frame{
		{Kind: KindComment, Payload: CommentFrame{Text: "a"}},
		{Kind: KindComment, Payload: CommentFrame{Text: "b"}},
		{Kind: KindTitle, Payload: TextFrame{Text: "t"}},
	}}
	comments := tag.FramesOf(KindComment)
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if tag.First(KindTitle) == nil {
		t.Fatalf("First(KindTitle) = nil")
	}
	if tag.First(KindGenre) != nil {
		t.Fatalf("First(KindGenre) = non-nil, want nil")
	}
}

// A v2.2 tag uses the 6-byte frame header with a 3-byte identifier and
// 3-byte big-endian size; "TT2" normalises to TIT2.
func TestReadV2_V22Frame(t *testing.T) {
	data := []byte{
		'I', 'D', '3', 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08,
		'T', 'T', '2', 0x00, 0x00, 0x02,
		0x00, 'X',
	}
	tag, err := ReadV2(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil || len(tag.Frames) != 1 {
		t.Fatalf("got %+v", tag)
	}
	f := tag.Frames[0]
	if f.Kind != KindTitle || f.ID != "TIT2" {
		t.Fatalf("Kind=%v ID=%q, want KindTitle TIT2", f.Kind, f.ID)
	}
	if f.TotalFrameSize != 8 {
		t.Fatalf("TotalFrameSize = %d, want 8 (6-byte header + 2-byte body)", f.TotalFrameSize)
	}
	if tf := f.Payload.(TextFrame); tf.Text != "X" {
		t.Fatalf("Text = %q, want X", tf.Text)
	}
}

// The v2.3 extended header's CRC is recorded as hex but never verified.
func TestReadV2_V23ExtendedHeaderCRC(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.WriteByte(3)
	buf.WriteByte(0)
	buf.WriteByte(0x40) // extended header present
	size := encodeSyncSafe32(14 + 12)
	buf.Write(size[:])
	// Extended header: size 10, flags with CRC bit, padding size 0, CRC.
	buf.Write([]byte{0x00, 0x00, 0x00, 0x0A, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00})
	buf.Write([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	buf.WriteString("TIT2")
	buf.Write([]byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00})
	buf.WriteByte(0x00)
	buf.WriteString("X")

	tag, err := ReadV2(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatalf("got nil tag")
	}
	if tag.Flags.ExtendedHeaderSize != 10 {
		t.Fatalf("ExtendedHeaderSize = %d, want 10", tag.Flags.ExtendedHeaderSize)
	}
	if tag.Flags.CRC32Hex != "deadbeef" {
		t.Fatalf("CRC32Hex = %q, want deadbeef", tag.Flags.CRC32Hex)
	}
	if len(tag.Frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(tag.Frames))
	}
}

// The v2.4 extended header's tag-is-update sub-field has length zero and
// sets the corresponding tag flag.
func TestReadV2_V24ExtendedHeaderTagIsUpdate(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.WriteByte(4)
	buf.WriteByte(0)
	buf.WriteByte(0x40)
	size := encodeSyncSafe32(7 + 12)
	buf.Write(size[:])
	// Extended header: sync-safe size 6, one flag byte, tag-is-update set,
	// then the sub-field's zero length.
	ehSize := encodeSyncSafe32(6)
	buf.Write(ehSize[:])
	buf.WriteByte(0x01)
	buf.WriteByte(0x40)
	buf.WriteByte(0x00)
	buf.WriteString("TIT2")
	bodySize := encodeSyncSafe32(2)
	buf.Write(bodySize[:])
	buf.Write([]byte{0x00, 0x00})
	buf.WriteByte(0x03)
	buf.WriteString("X")

	tag, err := ReadV2(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatalf("got nil tag")
	}
	if !tag.Flags.TagIsUpdate {
		t.Fatalf("TagIsUpdate = false, want true")
	}
	if len(tag.Frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(tag.Frames))
	}
	if tf := tag.Frames[0].Payload.(TextFrame); tf.Text != "X" {
		t.Fatalf("Text = %q, want X", tf.Text)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrClosedPipe }

// A genuine I/O failure is not the same thing as an absent tag.
func TestReadV2_IOErrorPropagates(t *testing.T) {
	tag, err := ReadV2(failingReader{})
	if err == nil {
		t.Fatalf("expected the underlying read error to propagate")
	}
	if tag != nil {
		t.Fatalf("got tag %+v alongside an error", tag)
	}
}

// An IPLS frame is only defined through v2.3; in a v2.4 tag the
// identifier is skipped like any other unknown frame.
func TestReadV2_IPLSSkippedInV24(t *testing.T) {
	body := append([]byte{encISO8859_1}, "engineer\x00Jane"...)
	var buf bytes.Buffer
	buf.WriteString("ID3")
	buf.WriteByte(4)
	buf.WriteByte(0)
	buf.WriteByte(0)
	size := encodeSyncSafe32(10 + len(body))
	buf.Write(size[:])
	buf.WriteString("IPLS")
	bodySize := encodeSyncSafe32(len(body))
	buf.Write(bodySize[:])
	buf.Write([]byte{0x00, 0x00})
	buf.Write(body)

	tag, err := ReadV2(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tag == nil {
		t.Fatalf("got nil tag")
	}
	if len(tag.Frames) != 0 {
		t.Fatalf("got %d frames, want 0 (IPLS is not a v2.4 frame)", len(tag.Frames))
	}
	if len(tag.Warnings) == 0 {
		t.Fatalf("expected a skipped-identifier warning")
	}
}
