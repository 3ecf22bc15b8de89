// Package id3probe sniffs which ID3 tag versions are present in a
// seekable byte source without fully decoding any of them.
package id3probe

import "io"

// Version identifies one detectable ID3 revision.
type Version int

const (
	V2r0 Version = iota // ID3v2.2
	V2r3                // ID3v2.3
	V2r4                // ID3v2.4
	V1r0                // ID3v1, no track number present (or ambiguous with v1.1)
	V1r1                // ID3v1.1, track number present
)

func (v Version) String() string {
	switch v {
	case V2r0:
		return "2.2"
	case V2r3:
		return "2.3"
	case V2r4:
		return "2.4"
	case V1r0:
		return "1.0"
	case V1r1:
		return "1.1"
	default:
		return "?"
	}
}

// Result is one detected version, with V1Ambiguous set when a trailing
// v1 tag's track-number bytes don't clearly indicate v1.0 or v1.1 (both
// bytes 125 and 126 are zero).
type Result struct {
	Version     Version
	V1Ambiguous bool
}

// Probe reads the leading 4 bytes for an ID3v2 header and, if the source
// is long enough, the trailing 3+2 bytes for an ID3v1 marker, returning
// every marker found with v2 first. Finding no marker at all is not an
// error; the result is simply empty.
func Probe(r io.ReadSeeker) ([]Result, error) {
	var results []Result

	if v2, ok, err := probeV2(r); err != nil {
		return nil, err
	} else if ok {
		results = append(results, Result{Version: v2})
	}

	length, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if length >= 128 {
		if v1, ok, err := probeV1(r, length); err != nil {
			return nil, err
		} else if ok {
			results = append(results, v1)
		}
	}

	return results, nil
}

// GetVersion returns the single highest-priority version present (v2
// before v1), and false if neither marker is found.
func GetVersion(r io.ReadSeeker) (Result, bool, error) {
	results, err := Probe(r)
	if err != nil {
		return Result{}, false, err
	}
	if len(results) == 0 {
		return Result{}, false, nil
	}
	return results[0], true, nil
}

func probeV2(r io.ReadSeeker) (Version, bool, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, false, err
	}
	var buf [4]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n != 4 || string(buf[:3]) != "ID3" {
		return 0, false, nil
	}
	switch buf[3] {
	case 0:
		return V2r0, true, nil
	case 3:
		return V2r3, true, nil
	case 4:
		return V2r4, true, nil
	default:
		return 0, false, nil
	}
}

func probeV1(r io.ReadSeeker, length int64) (Result, bool, error) {
	if _, err := r.Seek(length-128, io.SeekStart); err != nil {
		return Result{}, false, err
	}
	var marker [3]byte
	if _, err := io.ReadFull(r, marker[:]); err != nil {
		return Result{}, false, err
	}
	if string(marker[:]) != "TAG" {
		return Result{}, false, nil
	}

	if _, err := r.Seek(length-3, io.SeekStart); err != nil {
		return Result{}, false, err
	}
	var tail [2]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return Result{}, false, err
	}

	switch {
	case tail[0] == 0 && tail[1] != 0:
		return Result{Version: V1r1}, true, nil
	case tail[0] == 0 && tail[1] == 0:
		return Result{Version: V1r0, V1Ambiguous: true}, true, nil
	default:
		// "TAG" is present but bytes 125..126 match neither pattern: no
		// v1 marker is reported.
		return Result{}, false, nil
	}
}
