package id3v2

import "github.com/pkg/errors"

// decodeText decodes an ordinary text frame: an encoding byte followed by
// one string (v2.2/v2.3) or multiple null-separated strings (v2.4, only
// the first of which is required but all of which are preserved).
func decodeText(major byte, body []byte) (TextFrame, error) {
	enc := body[0]
	if !validEncoding(major, enc) {
		return TextFrame{}, ErrUnsupportedEncoding
	}
	rest := body[1:]

	if major >= 4 {
		parts := splitMultiple(enc, rest)
		texts := make([]string, len(parts))
		for i, p := range parts {
			s, err := decodeString(enc, p)
			if err != nil {
				return TextFrame{}, err
			}
			texts[i] = s
		}
		if len(texts) == 0 {
			texts = []string{""}
		}
		return TextFrame{Encoding: enc, Text: texts[0], Texts: texts}, nil
	}

	field, _, _ := splitTerminated(enc, rest)
	s, err := decodeString(enc, field)
	if err != nil {
		return TextFrame{}, err
	}
	return TextFrame{Encoding: enc, Text: s, Texts: []string{s}}, nil
}

// decodeUserText implements TXXX / v2.2 "TXX": encoding byte, description,
// value.
func decodeUserText(body []byte) (UserTextFrame, error) {
	enc := body[0]
	if !validEncoding(4, enc) { // checked against the v2.4 rules whatever the tag's revision, so encodings 2 and 3 are accepted in v2.2/v2.3 too
		return UserTextFrame{}, ErrUnsupportedEncoding
	}
	rest := body[1:]

	descField, after, _ := splitTerminated(enc, rest)
	desc, err := decodeString(enc, descField)
	if err != nil {
		return UserTextFrame{}, err
	}

	valField, _, _ := splitTerminated(enc, after)
	val, err := decodeString(enc, valField)
	if err != nil {
		return UserTextFrame{}, err
	}
	return UserTextFrame{Encoding: enc, Description: desc, Value: val}, nil
}

// decodeURL implements a plain W??? link frame: an ISO-8859-1 URL with no
// leading encoding byte, read until a null or end of body.
func decodeURL(body []byte) (URLFrame, error) {
	field, _, _ := splitTerminated(encISO8859_1, body)
	s, err := decodeString(encISO8859_1, field)
	if err != nil {
		return URLFrame{}, err
	}
	return URLFrame{URL: s}, nil
}

// decodeUserURL implements WXXX / v2.2 "WXX": encoding byte, description
// in that encoding, then an ISO-8859-1 URL.
func decodeUserURL(body []byte) (UserURLFrame, error) {
	enc := body[0]
	if !validEncoding(4, enc) {
		return UserURLFrame{}, ErrUnsupportedEncoding
	}
	rest := body[1:]

	descField, after, _ := splitTerminated(enc, rest)
	desc, err := decodeString(enc, descField)
	if err != nil {
		return UserURLFrame{}, err
	}

	urlField, _, _ := splitTerminated(encISO8859_1, after)
	url, err := decodeString(encISO8859_1, urlField)
	if err != nil {
		return UserURLFrame{}, err
	}
	return UserURLFrame{Encoding: enc, Description: desc, URL: url}, nil
}

// decodeComment implements COMM / v2.2 "COM": encoding byte, 3-byte
// language code, short description, text running to the end of the body.
func decodeComment(body []byte) (CommentFrame, error) {
	if len(body) < 4 {
		return CommentFrame{}, errors.New("id3v2: comment frame shorter than its fixed header")
	}
	enc := body[0]
	if !validEncoding(4, enc) {
		return CommentFrame{}, ErrUnsupportedEncoding
	}
	var lang [3]byte
	copy(lang[:], body[1:4])
	rest := body[4:]

	descField, after, _ := splitTerminated(enc, rest)
	desc, err := decodeString(enc, descField)
	if err != nil {
		return CommentFrame{}, err
	}
	text, err := decodeString(enc, after)
	if err != nil {
		return CommentFrame{}, err
	}
	return CommentFrame{Encoding: enc, Language: lang, Description: desc, Text: text}, nil
}

// decodeUFID implements UFID / v2.2 "UFI": owner (ISO-8859-1,
// null-terminated) followed by the raw identifier.
func decodeUFID(body []byte) (UFIDFrame, error) {
	ownerField, rest, found := splitTerminated(encISO8859_1, body)
	if !found {
		return UFIDFrame{}, errors.New("id3v2: UFID frame missing owner terminator")
	}
	owner, err := decodeString(encISO8859_1, ownerField)
	if err != nil {
		return UFIDFrame{}, err
	}
	id := make([]byte, len(rest))
	copy(id, rest)
	return UFIDFrame{Owner: owner, Identifier: id}, nil
}

// decodeMCDI implements MCDI / v2.2 "MCI": opaque bytes.
func decodeMCDI(body []byte) (MCDIFrame, error) {
	data := make([]byte, len(body))
	copy(data, body)
	return MCDIFrame{Data: data}, nil
}

// decodePicture implements APIC / v2.2 "PIC": encoding byte, a 3-byte
// image-format code (v2.2) or null-terminated MIME type (v2.3/v2.4), a
// picture-type byte, a description, and the raw image bytes.
func decodePicture(major byte, body []byte) (PictureFrame, error) {
	enc := body[0]
	if !validEncoding(major, enc) {
		return PictureFrame{}, ErrUnsupportedEncoding
	}
	rest := body[1:]

	var formatOrMIME string
	if major == 2 {
		if len(rest) < 3 {
			return PictureFrame{}, errors.New("id3v2: v2.2 picture frame missing image-format code")
		}
		formatOrMIME = string(rest[:3])
		rest = rest[3:]
	} else {
		mimeField, after, found := splitTerminated(encISO8859_1, rest)
		if !found {
			return PictureFrame{}, errors.New("id3v2: picture frame missing MIME terminator")
		}
		s, err := decodeString(encISO8859_1, mimeField)
		if err != nil {
			return PictureFrame{}, err
		}
		formatOrMIME = s
		rest = after
	}

	if len(rest) < 1 {
		return PictureFrame{}, errors.New("id3v2: picture frame missing picture-type byte")
	}
	pictureType := rest[0]
	rest = rest[1:]

	descField, after, _ := splitTerminated(enc, rest)
	desc, err := decodeString(enc, descField)
	if err != nil {
		return PictureFrame{}, err
	}

	data := make([]byte, len(after))
	copy(data, after)

	return PictureFrame{
		Encoding:     enc,
		FormatOrMIME: formatOrMIME,
		PictureType:  pictureType,
		Description:  desc,
		Data:         data,
	}, nil
}

// decodeIPLS implements IPLS / v2.2 "IPL": encoding byte, then
// null-separated strings.
func decodeIPLS(body []byte) (IPLSFrame, error) {
	enc := body[0]
	if !validEncoding(4, enc) {
		return IPLSFrame{}, ErrUnsupportedEncoding
	}
	parts := splitMultiple(enc, body[1:])
	values := make([]string, len(parts))
	for i, p := range parts {
		s, err := decodeString(enc, p)
		if err != nil {
			return IPLSFrame{}, err
		}
		values[i] = s
	}
	return IPLSFrame{Encoding: enc, Values: values}, nil
}

// decodePodcast implements the iTunes PCST / v2.2 "PCS" marker: an opaque
// body.
func decodePodcast(body []byte) (PodcastFrame, error) {
	data := make([]byte, len(body))
	copy(data, body)
	return PodcastFrame{Data: data}, nil
}
