// Package id3v1 reads the 128-byte ID3v1/ID3v1.1 trailer found at the end
// of many MP3 files.
package id3v1

import (
	"io"

	"github.com/DigitalMediaServer/cuelib/genre"
)

// Size is the fixed length of an ID3v1 record.
const Size = 128

// Tag is a decoded ID3v1 or ID3v1.1 record.
type Tag struct {
	Title      string
	Artist     string
	Album      string
	Year       string // four ASCII digits, not parsed: some taggers write garbage here
	Comment    string
	Track      int  // 0 if this is a plain v1.0 record with no track number
	HasTrack   bool
	GenreIndex int // index into genre.Table; -1 if out of range
	Genre      string
}

// Read seeks to the final 128 bytes of r and decodes them as an ID3v1
// record. It returns (nil, nil) if the trailer's "TAG" marker is absent
// rather than an error, matching id3v2.ReadV2.
func Read(r io.ReadSeeker) (*Tag, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if size < Size {
		return nil, nil
	}
	if _, err := r.Seek(-Size, io.SeekEnd); err != nil {
		return nil, err
	}

	buf := make([]byte, Size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	if string(buf[:3]) != "TAG" {
		return nil, nil
	}

	title := buf[3:33]
	artist := buf[33:63]
	album := buf[63:93]
	year := buf[93:97]
	comment := buf[97:127] // 30 bytes: record indices 97..126
	genreByte := buf[127]

	t := &Tag{
		Title:  trimField(title),
		Artist: trimField(artist),
		Album:  trimField(album),
		Year:   string(year),
	}

	// v1.1: record byte 125 (comment[28]) is zero and byte 126
	// (comment[29]) is non-zero, meaning the last two comment bytes hold
	// a track number instead of comment text.
	if comment[28] == 0x00 && comment[29] != 0x00 {
		t.Comment = trimField(comment[:28])
		t.Track = int(comment[29])
		t.HasTrack = true
	} else {
		t.Comment = trimField(comment)
	}

	t.GenreIndex = int(genreByte)
	if name, ok := genre.ByIndex(t.GenreIndex); ok {
		t.Genre = name
	} else {
		t.GenreIndex = -1
	}

	return t, nil
}

// trimField strips trailing NUL and space padding and decodes the
// remainder as ISO-8859-1, which is a direct byte-to-rune widening.
func trimField(b []byte) string {
	end := len(b)
	for end > 0 && (b[end-1] == 0x00 || b[end-1] == ' ') {
		end--
	}
	b = b[:end]
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
