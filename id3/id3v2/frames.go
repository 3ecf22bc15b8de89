package id3v2

import "io"

// frameHeaderSize and frameIDLen give the per-revision wire layout: v2.2
// has a 6-byte header with a 3-byte identifier; v2.3/v2.4 have a 10-byte
// header with a 4-byte identifier.
func frameHeaderSize(major byte) int {
	if major == 2 {
		return 6
	}
	return 10
}

func frameIDLen(major byte) int {
	if major == 2 {
		return 3
	}
	return 4
}

func readN(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func allZero(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return false
		}
	}
	return true
}

// frameFlagsV23 decodes the v2.3 frame-status/format flag bits.
func frameFlagsV23(raw uint16) FrameFlags {
	return FrameFlags{
		PreserveOnTagAlter:  raw&(1<<15) != 0,
		PreserveOnFileAlter: raw&(1<<14) != 0,
		ReadOnly:            raw&(1<<13) != 0,
		CompressionUsed:     raw&(1<<7) != 0,
		UnsyncUsed:          false, // no frame-level unsync bit before v2.4
		EncryptionMethod:    -1,
		GroupID:             -1,
	}
}

// frameFlagsV24 decodes the v2.4 frame-status/format flag bits, which sit
// at different positions than their v2.3 counterparts.
func frameFlagsV24(raw uint16) FrameFlags {
	return FrameFlags{
		PreserveOnTagAlter:  raw&(1<<14) != 0,
		PreserveOnFileAlter: raw&(1<<13) != 0,
		ReadOnly:            raw&(1<<12) != 0,
		CompressionUsed:     raw&(1<<3) != 0,
		UnsyncUsed:          raw&(1<<1) != 0,
		DataLengthIndicator: raw&(1<<0) != 0,
		EncryptionMethod:    -1,
		GroupID:             -1,
	}
}

const (
	v23FlagEncryption = 1 << 6
	v23FlagGroup      = 1 << 5
	v24FlagGroup      = 1 << 6
	v24FlagEncryption = 1 << 2
)

// displayID normalises a wire identifier to its 4-character form, using
// v22Equiv for v2.2's 3-character identifiers so one set of decoders
// serves all three revisions.
func displayID(major byte, id string) string {
	if major != 2 {
		return id
	}
	if full, ok := v22Equiv[id]; ok {
		return full
	}
	return id
}

// decodeFrameBody dispatches a frame's (sub-field-stripped) body to its
// decoder by wire identifier, normalised via displayID. skip is true for
// an identifier this package does not recognise and that doesn't fall
// under the T*/W* fallback rule.
func decodeFrameBody(major byte, wireID string, body []byte) (kind Kind, payload FramePayload, skip bool, err error) {
	switch wireID {
	case "UFID":
		p, err := decodeUFID(body)
		return KindUFID, p, false, err
	case "COMM":
		p, err := decodeComment(body)
		return KindComment, p, false, err
	case "APIC":
		p, err := decodePicture(major, body)
		return KindAttachedPicture, p, false, err
	case "IPLS":
		// v2.4 replaced IPLS with the TIPL/TMCL text frames; an IPLS in a
		// v2.4 tag falls through to the skip rule below.
		if major < 4 {
			p, err := decodeIPLS(body)
			return KindIPLS, p, false, err
		}
	case "MCDI":
		p, err := decodeMCDI(body)
		return KindMCDI, p, false, err
	case "PCST":
		p, err := decodePodcast(body)
		return KindITunesPodcast, p, false, err
	case "TXXX":
		p, err := decodeUserText(body)
		return KindUserDefinedText, p, false, err
	case "WXXX":
		p, err := decodeUserURL(body)
		return KindUserDefinedURL, p, false, err
	}

	if isWFEDTextOverride(wireID) {
		p, err := decodeText(major, body)
		return KindUserDefinedText, p, false, err
	}

	textTable := textKindsV23
	urlTable := urlKindsV23
	if major >= 4 {
		textTable = textKindsV24
		urlTable = urlKindsV24
	}
	if k, ok := textTable[wireID]; ok {
		p, err := decodeText(major, body)
		return k, p, false, err
	}
	if k, ok := urlTable[wireID]; ok {
		p, err := decodeURL(body)
		return k, p, false, err
	}

	if len(wireID) > 0 && wireID[0] == 'T' {
		p, err := decodeText(major, body)
		return KindUserDefinedText, p, false, err
	}
	if len(wireID) > 0 && wireID[0] == 'W' {
		p, err := decodeURL(body)
		return KindUserDefinedURL, p, false, err
	}
	return KindUnknown, nil, true, nil
}

// frameReadResult is the outcome of attempting to read one frame off the
// stream.
type frameReadResult struct {
	frame    *Frame // nil if this slot produced no frame (padding, skip, or a recoverable failure)
	consumed int    // bytes consumed from the declared tag payload (headerSize + bodySize)
	padding  bool   // true if the all-zero identifier sentinel was hit
}

// readOneFrame reads a single frame header and body from src and decodes
// it. A non-nil error is always fatal to the whole tag; recoverable
// anomalies (an unrecognised identifier, a single malformed frame) are
// recorded on tag.Warnings and reported via a nil Frame in the result
// instead.
func readOneFrame(tag *Tag, src io.Reader, major byte) (frameReadResult, error) {
	idLen := frameIDLen(major)

	idBytes, err := readN(src, idLen)
	if err != nil {
		return frameReadResult{}, err
	}
	if allZero(idBytes) {
		return frameReadResult{padding: true, consumed: idLen}, nil
	}
	id := string(idBytes)

	var bodySize int
	if major == 2 {
		sizeBytes, err := readN(src, 3)
		if err != nil {
			return frameReadResult{}, err
		}
		bodySize = int(sizeBytes[0])<<16 | int(sizeBytes[1])<<8 | int(sizeBytes[2])
	} else {
		sizeBytes, err := readN(src, 4)
		if err != nil {
			return frameReadResult{}, err
		}
		if major == 4 {
			var arr [4]byte
			copy(arr[:], sizeBytes)
			v, ok := decodeSyncSafe32(arr)
			if !ok {
				return frameReadResult{}, ErrInvalidSize
			}
			bodySize = v
		} else {
			bodySize = beUint32(sizeBytes)
		}
	}

	var flags FrameFlags
	var rawFlags uint16
	if major >= 3 {
		flagBytes, err := readN(src, 2)
		if err != nil {
			return frameReadResult{}, err
		}
		rawFlags = uint16(flagBytes[0])<<8 | uint16(flagBytes[1])
		if major == 3 {
			flags = frameFlagsV23(rawFlags)
		} else {
			flags = frameFlagsV24(rawFlags)
		}
	} else {
		flags = FrameFlags{EncryptionMethod: -1, GroupID: -1}
	}

	wireID := displayID(major, id)
	headerSz := frameHeaderSize(major)
	totalSize := headerSz + bodySize

	if major == 3 && discardOnAlterV23[wireID] {
		flags.PreserveOnFileAlter = false
	} else if major == 4 && discardOnAlterV24[wireID] {
		flags.PreserveOnFileAlter = false
	}

	body, err := readN(src, bodySize)
	if err != nil {
		return frameReadResult{}, err
	}

	// Strip the v2.3/v2.4 sub-fields carried inside the body, which the
	// body-size field includes.
	if major == 3 {
		if flags.CompressionUsed {
			if len(body) < 4 {
				tag.warn("frame %q: compression flag set but body too short for decompressed-size field", wireID)
			} else {
				body = body[4:] // decompressed size, big-endian, not sync-safe; recorded nowhere further
			}
		}
		if rawFlags&v23FlagEncryption != 0 {
			if len(body) < 1 {
				tag.warn("frame %q: encryption flag set but body too short for method byte", wireID)
			} else {
				flags.EncryptionMethod = int(body[0])
				body = body[1:]
			}
		}
		if rawFlags&v23FlagGroup != 0 {
			if len(body) < 1 {
				tag.warn("frame %q: group flag set but body too short for group-id byte", wireID)
			} else {
				flags.GroupID = int(body[0])
				body = body[1:]
			}
		}
	} else if major == 4 {
		if rawFlags&v24FlagGroup != 0 {
			if len(body) < 1 {
				tag.warn("frame %q: group flag set but body too short for group-id byte", wireID)
			} else {
				flags.GroupID = int(body[0])
				body = body[1:]
			}
		}
		if rawFlags&v24FlagEncryption != 0 {
			if len(body) < 1 {
				tag.warn("frame %q: encryption flag set but body too short for method byte", wireID)
			} else {
				flags.EncryptionMethod = int(body[0])
				body = body[1:]
			}
		}
		if flags.DataLengthIndicator {
			if len(body) < 4 {
				tag.warn("frame %q: data-length-indicator flag set but body too short", wireID)
			} else {
				var arr [4]byte
				copy(arr[:], body[:4])
				body = body[4:] // the indicator itself is diagnostic-only; the raw body follows undecoded
				_, _ = decodeSyncSafe32(arr)
			}
		}
	}

	if len(body) == 0 {
		// A zero-length body is strictly illegal but recoverable: drop the
		// frame and keep reading from the next header position.
		tag.warn("frame %q: empty body, dropped", wireID)
		return frameReadResult{consumed: totalSize}, nil
	}

	kind, payload, skip, decodeErr := decodeFrameBody(major, wireID, body)
	if decodeErr != nil {
		tag.Warnings = append(tag.Warnings, (&MalformedFrameError{ID: wireID, Reason: decodeErr}).Error())
		return frameReadResult{consumed: totalSize}, nil
	}
	if skip {
		tag.warn("frame %q: unrecognised identifier, skipped", wireID)
		return frameReadResult{consumed: totalSize}, nil
	}

	f := &Frame{
		Kind:           kind,
		ID:             wireID,
		TotalFrameSize: totalSize,
		Flags:          flags,
		Payload:        payload,
	}
	return frameReadResult{frame: f, consumed: totalSize}, nil
}

// readFrames drives readOneFrame in a loop until the declared tag payload
// is exhausted, fewer bytes remain than a frame header needs, or padding
// is reached. src must already be positioned right after any extended
// header.
func readFrames(tag *Tag, src byteCounter, startConsumed int64) error {
	hdrSz := frameHeaderSize(byte(tag.Major))

	for {
		remaining := int64(tag.Size) - (src.BytesConsumed() - startConsumed)
		if remaining < int64(hdrSz) {
			break
		}

		result, err := readOneFrame(tag, src, byte(tag.Major))
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return ErrTruncated
			}
			return err
		}
		if result.padding {
			break
		}
		if result.frame != nil {
			tag.Frames = append(tag.Frames, result.frame)
		}
	}
	return nil
}

// skipRemaining discards whatever is left of the declared tag payload
// (padding, or bytes orphaned by a stream that undercounted) so the
// underlying source is positioned exactly after the tag for a subsequent
// reader (e.g. the cutter locating the first audio frame).
func skipRemaining(src byteCounter, tag *Tag, startConsumed int64) error {
	remaining := int64(tag.Size) - (src.BytesConsumed() - startConsumed)
	if remaining <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, src, remaining)
	if err == io.EOF {
		return ErrTruncated
	}
	return err
}
