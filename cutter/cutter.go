// Package cutter splits one audio file into per-track files along the
// boundaries described by a cue sheet, snapping every cut to an MPEG
// frame boundary so no cut lands mid-frame.
package cutter

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	mp3 "github.com/llehouerou/go-mp3"
	"ktkr.us/pkg/fmtutil"

	"github.com/DigitalMediaServer/cuelib/cue"
)

// TrackCut is one planned output file: a byte range of the source file,
// snapped to the nearest MPEG frame boundary at or before the cue sheet's
// requested start.
type TrackCut struct {
	Number     int
	Title      string
	Performer  string
	StartByte  int64
	EndByte    int64 // exclusive; -1 means "to end of file"
	StartFrame cue.Index
}

// Plan is the full set of cuts for one FILE block of a cue sheet, plus
// the source's sample rate and decoded duration reported by go-mp3, used
// for display.
type Plan struct {
	SourcePath string
	SampleRate int
	Duration   time.Duration
	TotalBytes int64
	Cuts       []TrackCut
}

// bytesPerSecondEstimate is a first-pass estimate of the audio's average
// byte rate, used only to translate a cue sheet's MM:SS:FF timestamp into
// an approximate byte offset before nearestBoundaryAtOrBefore snaps it to a real
// frame start. It is intentionally approximate: CBR files make it exact,
// VBR files only need it to land within one frame's search window.
func bytesPerSecondEstimate(totalBytes int64, totalSeconds float64) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	return float64(totalBytes) / totalSeconds
}

// BuildPlan computes cut points for every track in f, given the
// already-opened source file src and its total size.
func BuildPlan(f cue.File, src io.ReadSeeker, size int64) (*Plan, error) {
	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return nil, fmt.Errorf("cutter: opening %q as MPEG audio: %w", f.Name, err)
	}
	sampleRate := dec.SampleRate()
	duration := dec.Duration()
	bps := bytesPerSecondEstimate(size, duration.Seconds())

	boundaries, err := scanFrameBoundaries(src, size)
	if err != nil {
		return nil, fmt.Errorf("cutter: scanning %q for MPEG frame boundaries: %w", f.Name, err)
	}
	if len(boundaries) == 0 {
		return nil, fmt.Errorf("cutter: %q contains no recognisable MPEG frames", f.Name)
	}

	plan := &Plan{
		SourcePath: f.Name,
		SampleRate: sampleRate,
		Duration:   duration,
		TotalBytes: size,
	}

	for i, t := range f.Tracks {
		var start cue.Index
		for _, idx := range t.Indexes {
			if idx.Number == 1 {
				start = idx
				break
			}
		}
		estByte := int64(bps * float64(start.FrameCount()) / cue.FramesPerSecond)
		startByte := nearestBoundaryAtOrBefore(boundaries, estByte)

		endByte := int64(-1)
		if i+1 < len(f.Tracks) {
			var next cue.Index
			for _, idx := range f.Tracks[i+1].Indexes {
				if idx.Number == 1 {
					next = idx
					break
				}
			}
			estNext := int64(bps * float64(next.FrameCount()) / cue.FramesPerSecond)
			endByte = nearestBoundaryAtOrBefore(boundaries, estNext)
		}

		plan.Cuts = append(plan.Cuts, TrackCut{
			Number:     t.Number,
			Title:      t.Title,
			Performer:  t.Performer,
			StartByte:  startByte,
			EndByte:    endByte,
			StartFrame: start,
		})
	}

	return plan, nil
}

// StartTime returns the cut's cue-sheet start as a wall-clock offset.
func (c TrackCut) StartTime() time.Duration {
	return time.Duration(c.StartFrame.FrameCount()) * time.Second / cue.FramesPerSecond
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s: %d cuts over %s", p.SourcePath, len(p.Cuts), fmtutil.HMS(p.Duration))
}

// nearestBoundaryAtOrBefore returns the greatest value in boundaries that
// is <= target, so the computed start is never placed inside the
// preceding frame. When every boundary lies after target it returns
// boundaries[0].
func nearestBoundaryAtOrBefore(boundaries []int64, target int64) int64 {
	best := boundaries[0]
	for _, b := range boundaries {
		if b > target {
			break
		}
		best = b
	}
	return best
}

// mpegSyncByte0 is the first byte of the 11-bit MPEG audio sync word
// (0xFFE..0xFFF) that opens every frame header.
const mpegSyncByte0 = 0xFF

var bitrateTableV1L3 = [16]int{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0}
var sampleRateTableV1 = [4]int{44100, 48000, 32000, 0}

// frameSize computes an MPEG-1 Layer III frame's byte length from its
// header fields, the standard formula `144000*bitrate/sampleRate +
// padding`. Headers outside this module's supported profile (anything
// other than MPEG-1 Layer III) make frameSize return 0, which the scanner
// treats as "not a real frame header, keep searching".
func frameSize(header [4]byte) int {
	if header[0] != mpegSyncByte0 || header[1]&0xE0 != 0xE0 {
		return 0
	}
	versionBits := (header[1] >> 3) & 0x3
	layerBits := (header[1] >> 1) & 0x3
	if versionBits != 0x3 || layerBits != 0x1 { // MPEG-1, Layer III
		return 0
	}
	bitrateIdx := (header[2] >> 4) & 0xF
	sampleRateIdx := (header[2] >> 2) & 0x3
	padding := (header[2] >> 1) & 0x1

	bitrate := bitrateTableV1L3[bitrateIdx]
	sampleRate := sampleRateTableV1[sampleRateIdx]
	if bitrate == 0 || sampleRate == 0 {
		return 0
	}
	size := 144000*bitrate/sampleRate + int(padding)
	return size
}

// scanFrameBoundaries walks src from the start, looking for valid MPEG
// frame headers, building the list of byte offsets the cutter is allowed
// to cut at. Each offset that parses as a header is recorded and the scan
// jumps ahead by that header's declared size; the bytes at the jump
// target are not required to form another valid header.
func scanFrameBoundaries(src io.ReadSeeker, size int64) ([]int64, error) {
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(src, buf); err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}

	var boundaries []int64
	for i := 0; i+4 <= len(buf); {
		var hdr [4]byte
		copy(hdr[:], buf[i:i+4])
		n := frameSize(hdr)
		if n <= 0 {
			i++
			continue
		}
		boundaries = append(boundaries, int64(i))
		i += n
	}
	return boundaries, nil
}

// Cut executes plan against the already-open source file, writing one
// output file per track via outputPath.
func Cut(ctx context.Context, src io.ReaderAt, plan *Plan, outputPath func(TrackCut) string) error {
	for _, c := range plan.Cuts {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := c.EndByte
		if end < 0 {
			end = plan.TotalBytes
		}

		out, err := os.Create(outputPath(c))
		if err != nil {
			return fmt.Errorf("cutter: creating output for track %d: %w", c.Number, err)
		}
		err = copyRange(out, src, c.StartByte, end)
		closeErr := out.Close()
		if err != nil {
			return fmt.Errorf("cutter: writing track %d: %w", c.Number, err)
		}
		if closeErr != nil {
			return fmt.Errorf("cutter: closing output for track %d: %w", c.Number, closeErr)
		}
	}
	return nil
}

func copyRange(w io.Writer, src io.ReaderAt, start, end int64) error {
	remaining := end - start
	buf := make([]byte, 1<<15)
	off := start
	for remaining > 0 {
		n := int64(len(buf))
		if remaining < n {
			n = remaining
		}
		read, err := src.ReadAt(buf[:n], off)
		if read > 0 {
			if _, werr := w.Write(buf[:read]); werr != nil {
				return werr
			}
			off += int64(read)
			remaining -= int64(read)
		}
		if err != nil {
			if err == io.EOF && remaining == 0 {
				break
			}
			return err
		}
	}
	return nil
}
