package id3v2

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Text-encoding byte values.
const (
	encISO8859_1 = 0x00
	encUTF16BOM  = 0x01
	encUTF16BE   = 0x02 // v2.4 only
	encUTF8      = 0x03 // v2.4 only
)

// nullWidth returns the width in bytes of the null terminator for the
// given text encoding: 1 for single-byte encodings, 2 for UTF-16
// variants, aligned on a 2-byte boundary.
func nullWidth(enc byte) (int, bool) {
	switch enc {
	case encISO8859_1, encUTF8:
		return 1, true
	case encUTF16BOM, encUTF16BE:
		return 2, true
	default:
		return 0, false
	}
}

// validEncoding reports whether enc is legal for the given major version:
// v2.2/v2.3 only define ISO-8859-1 and UTF-16-with-BOM; v2.4 adds
// UTF-16BE and UTF-8.
func validEncoding(major byte, enc byte) bool {
	switch enc {
	case encISO8859_1, encUTF16BOM:
		return true
	case encUTF16BE, encUTF8:
		return major >= 4
	default:
		return false
	}
}

// splitTerminated splits data at the first occurrence of the
// encoding-appropriate null terminator, returning the field bytes (without
// the terminator) and the remainder. If no terminator is found, the whole
// of data is the field and found is false.
func splitTerminated(enc byte, data []byte) (field, rest []byte, found bool) {
	width, ok := nullWidth(enc)
	if !ok {
		return data, nil, false
	}
	if width == 1 {
		if i := bytes.IndexByte(data, 0x00); i >= 0 {
			return data[:i], data[i+1:], true
		}
		return data, nil, false
	}
	// 2-byte terminator, aligned on 2-byte boundaries.
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0x00 && data[i+1] == 0x00 {
			return data[:i], data[i+2:], true
		}
	}
	return data, nil, false
}

// splitMultiple splits a v2.4 multi-string text-frame body into its
// null-separated components, dropping any trailing empty string produced
// by a final terminator.
func splitMultiple(enc byte, data []byte) [][]byte {
	var out [][]byte
	rest := data
	for {
		field, r, found := splitTerminated(enc, rest)
		out = append(out, field)
		if !found {
			break
		}
		rest = r
		if len(rest) == 0 {
			break
		}
	}
	return out
}

// decodeString decodes data (with no terminator bytes in it) under the
// given text encoding. BOM-sniffing UTF-16 and fixed-endian UTF-16BE are
// two separate code paths (decodeUTF16BOM, decodeUTF16BE) to avoid "is
// this BOM or data?" ambiguity on an empty string.
func decodeString(enc byte, data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}
	switch enc {
	case encISO8859_1:
		return decodeISO8859_1(data)
	case encUTF16BOM:
		return decodeUTF16BOM(data)
	case encUTF16BE:
		return decodeUTF16BE(data)
	case encUTF8:
		return string(data), nil
	default:
		return "", ErrUnsupportedEncoding
	}
}

func decodeISO8859_1(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func decodeUTF16BOM(data []byte) (string, error) {
	if len(data) < 2 {
		return "", ErrMalformedBOM
	}
	switch {
	case data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(unicode.LittleEndian, data[2:])
	case data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(unicode.BigEndian, data[2:])
	default:
		return "", ErrMalformedBOM
	}
}

func decodeUTF16BE(data []byte) (string, error) {
	return decodeUTF16(unicode.BigEndian, data)
}

func decodeUTF16(endian unicode.Endianness, data []byte) (string, error) {
	dec := unicode.UTF16(endian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
