package id3probe

import (
	"bytes"
	"testing"
)

type seekBuf struct {
	*bytes.Reader
}

func newSeekBuf(data []byte) *seekBuf {
	return &seekBuf{bytes.NewReader(data)}
}

func v1Trailer(tail2, tail1 byte) []byte {
	buf := make([]byte, 128)
	copy(buf, "TAG")
	buf[125] = tail2
	buf[126] = tail1
	return buf
}

func TestProbe_V2Only(t *testing.T) {
	data := append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 200)...)
	r, ok, err := GetVersion(newSeekBuf(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || r.Version != V2r3 {
		t.Fatalf("got r=%+v ok=%v, want V2r3", r, ok)
	}
}

func TestProbe_V1r1(t *testing.T) {
	data := v1Trailer(0x00, 0x05)
	r, ok, err := GetVersion(newSeekBuf(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || r.Version != V1r1 || r.V1Ambiguous {
		t.Fatalf("got r=%+v ok=%v, want V1r1 unambiguous", r, ok)
	}
}

func TestProbe_V1Ambiguous(t *testing.T) {
	data := v1Trailer(0x00, 0x00)
	r, ok, err := GetVersion(newSeekBuf(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || r.Version != V1r0 || !r.V1Ambiguous {
		t.Fatalf("got r=%+v ok=%v, want V1r0 ambiguous", r, ok)
	}
}

func TestProbe_V1NonZeroNonTrack(t *testing.T) {
	// Neither byte zero: matches neither the v1.1 nor the ambiguous
	// pattern, so no v1 marker is reported.
	data := v1Trailer(0x41, 0x42)
	r, ok, err := GetVersion(newSeekBuf(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("got r=%+v ok=%v, want no v1 marker", r, ok)
	}
}

func TestProbe_NoMarkerAtAll(t *testing.T) {
	data := make([]byte, 200)
	results, err := Probe(newSeekBuf(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %+v, want no results", results)
	}
}

// When both an ID3v2 header and a trailing v1 tag are present, GetVersion
// returns v2 and Probe returns both with v2 first.
func TestProbe_PrefersV2(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ID3\x03\x00\x00\x00\x00\x00\x00")
	buf.Write(make([]byte, 100))
	buf.Write(v1Trailer(0x00, 0x03))

	results, err := Probe(newSeekBuf(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Version != V2r3 {
		t.Fatalf("results[0] = %+v, want V2r3 first", results[0])
	}
	if results[1].Version != V1r1 {
		t.Fatalf("results[1] = %+v, want V1r1 second", results[1])
	}

	r, ok, err := GetVersion(newSeekBuf(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || r.Version != V2r3 {
		t.Fatalf("GetVersion = %+v ok=%v, want V2r3", r, ok)
	}
}

func TestVersionString(t *testing.T) {
	cases := map[Version]string{V2r0: "2.2", V2r3: "2.3", V2r4: "2.4", V1r0: "1.0", V1r1: "1.1"}
	for v, want := range cases {
		if got := v.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", int(v), got, want)
		}
	}
}
