// Package genre holds the classic ID3v1 genre table and normalises it
// against the free-text genre conventions ID3v2 grew on top of it.
package genre

import (
	"strconv"
	"strings"
)

// Table is the 80-entry (plus Winamp extensions) ID3v1 genre list, indexed
// by the single genre byte a v1 tag carries. It is shared verbatim by
// id3/id3v1, which has no other source for genre names.
var Table = []string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient", "Trip-Hop",
	"Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical", "Instrumental", "Acid",
	"House", "Game", "Sound Clip", "Gospel", "Noise", "Alternative Rock", "Bass",
	"Soul", "Punk", "Space", "Meditative", "Instrumental Pop", "Instrumental Rock",
	"Ethnic", "Gothic", "Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta", "Top 40",
	"Christian Rap", "Pop/Funk", "Jungle", "Native US", "Cabaret", "New Wave",
	"Psychadelic", "Rave", "Showtunes", "Trailer", "Lo-Fi", "Tribal", "Acid Punk",
	"Acid Jazz", "Polka", "Retro", "Musical", "Rock & Roll", "Hard Rock", "Folk",
	"Folk-Rock", "National Folk", "Swing", "Fast Fusion", "Bebop", "Latin",
	"Revival", "Celtic", "Bluegrass", "Avantgarde", "Gothic Rock",
	"Progressive Rock", "Psychedelic Rock", "Symphonic Rock", "Slow Rock",
	"Big Band", "Chorus", "Easy Listening", "Acoustic", "Humour", "Speech",
	"Chanson", "Opera", "Chamber Music", "Sonata", "Symphony", "Booty Bass",
	"Primus", "Porn Groove", "Satire", "Slow Jam", "Club", "Tango", "Samba",
	"Folklore", "Ballad", "Power Ballad", "Rhytmic Soul", "Freestyle", "Duet",
	"Punk Rock", "Drum Solo", "Acapella", "Euro-House", "Dance Hall", "Goa",
	"Drum & Bass",
}

// ByIndex returns the table entry at i, and false if i is out of range.
func ByIndex(i int) (string, bool) {
	if i < 0 || i >= len(Table) {
		return "", false
	}
	return Table[i], true
}

// Entry is one normalised genre value: a canonical name plus, if the value
// traces back to the ID3v1 numeric table, the index it came from.
type Entry struct {
	Name  string
	Index int // -1 if this genre has no ID3v1 table index
}

// Normalize parses an ID3v2.3/ID3v2.4 TCON/"TCO" value, which may be a
// bare genre name, a parenthesised ID3v1 index such as "(4)", a
// parenthesised index followed by a free-text refinement such as
// "(4)Eurodisco", or the special non-numeric codes "(RX)" (remix) and
// "(CR)" (cover), possibly chained ("(4)(6)Additional text").
func Normalize(raw string) Entry {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Entry{Index: -1}
	}
	if raw[0] != '(' {
		return Entry{Name: raw, Index: -1}
	}

	var codes []string
	rest := raw
	for strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			break
		}
		codes = append(codes, rest[1:end])
		rest = rest[end+1:]
	}
	rest = strings.TrimSpace(rest)

	for _, code := range codes {
		switch code {
		case "RX":
			if rest == "" {
				return Entry{Name: "Remix", Index: -1}
			}
		case "CR":
			if rest == "" {
				return Entry{Name: "Cover", Index: -1}
			}
		default:
			if n, err := strconv.Atoi(code); err == nil {
				if name, ok := ByIndex(n); ok {
					if rest != "" {
						return Entry{Name: rest, Index: n}
					}
					return Entry{Name: name, Index: n}
				}
			}
		}
	}
	if rest != "" {
		return Entry{Name: rest, Index: -1}
	}
	return Entry{Name: raw, Index: -1}
}
