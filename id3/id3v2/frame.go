package id3v2

import "encoding/hex"

// FrameFlags carries the flags common to every frame. EncryptionMethod
// and GroupID are -1 when absent.
type FrameFlags struct {
	PreserveOnTagAlter  bool
	PreserveOnFileAlter bool
	ReadOnly            bool
	CompressionUsed     bool
	UnsyncUsed          bool
	DataLengthIndicator bool
	EncryptionMethod    int
	GroupID             int
}

// Frame is one decoded ID3v2 frame: the fields common to every kind
// (Kind, ID, TotalFrameSize, Flags) plus a kind-specific Payload.
// TotalFrameSize counts both the frame header and the body.
type Frame struct {
	Kind           Kind
	ID             string // wire identifier; v2.2 identifiers listed in v22Equiv are normalised to 4 characters, others keep their 3
	TotalFrameSize int
	Flags          FrameFlags
	Payload        FramePayload
}

// FramePayload is implemented by every concrete per-kind payload type.
type FramePayload interface {
	isFramePayload()
}

// TextFrame is the payload of any ordinary text-information frame. Texts
// holds every null-separated string a v2.4 body may contain; Text is
// always Texts[0] for convenience.
type TextFrame struct {
	Encoding byte
	Text     string
	Texts    []string
}

func (TextFrame) isFramePayload() {}

// UserTextFrame is the payload of TXXX / v2.2 "TXX".
type UserTextFrame struct {
	Encoding    byte
	Description string
	Value       string
}

func (UserTextFrame) isFramePayload() {}

// URLFrame is the payload of a plain W??? link frame: an ISO-8859-1 URL
// with no leading encoding byte.
type URLFrame struct {
	URL string
}

func (URLFrame) isFramePayload() {}

// UserURLFrame is the payload of WXXX / v2.2 "WXX".
type UserURLFrame struct {
	Encoding    byte
	Description string
	URL         string
}

func (UserURLFrame) isFramePayload() {}

// CommentFrame is the payload of COMM / v2.2 "COM" (also reused for
// unsynchronised-lyrics-shaped frames, which share this layout).
type CommentFrame struct {
	Encoding    byte
	Language    [3]byte
	Description string
	Text        string
}

func (CommentFrame) isFramePayload() {}

// UFIDFrame is the payload of UFID / v2.2 "UFI".
type UFIDFrame struct {
	Owner      string
	Identifier []byte
}

func (UFIDFrame) isFramePayload() {}

// MCDIFrame is the payload of MCDI / v2.2 "MCI": opaque binary, rendered
// for display as lower-case hex.
type MCDIFrame struct {
	Data []byte
}

func (MCDIFrame) isFramePayload() {}

// HexString renders the music-CD identifier as lower-case hex.
func (f MCDIFrame) HexString() string { return hex.EncodeToString(f.Data) }

// PictureFrame is the payload of APIC / v2.2 "PIC". FormatOrMIME holds the
// 3-character v2.2 image-format code or the v2.3/v2.4 null-terminated MIME
// type, whichever the source revision used.
type PictureFrame struct {
	Encoding     byte
	FormatOrMIME string
	PictureType  byte
	Description  string
	Data         []byte
}

func (PictureFrame) isFramePayload() {}

// IPLSFrame is the payload of IPLS / v2.2 "IPL": a sequence of
// null-separated strings, alternating involvement and involvee.
type IPLSFrame struct {
	Encoding byte
	Values   []string
}

func (IPLSFrame) isFramePayload() {}

// PodcastFrame is the payload of the iTunes PCST / v2.2 "PCS" marker: an
// opaque body.
type PodcastFrame struct {
	Data []byte
}

func (PodcastFrame) isFramePayload() {}
