// Package cue parses CD cue sheets: the FILE/TRACK/INDEX command
// structure used to describe how one or more audio files are divided into
// tracks.
package cue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FramesPerSecond is the CD redbook sector rate used by INDEX timestamps.
const FramesPerSecond = 75

// Index is one INDEX command: a number (0 is the pre-gap, 1 the track
// start) and an MM:SS:FF timestamp.
type Index struct {
	Number int
	Minute int
	Second int
	Frame  int
}

// FrameCount returns the timestamp as a single CD-frame offset,
// 75*60*MM + 75*SS + FF.
func (i Index) FrameCount() int {
	return FramesPerSecond*60*i.Minute + FramesPerSecond*i.Second + i.Frame
}

// IndexFromFrameCount is the inverse of FrameCount, used by the
// round-trip tests.
func IndexFromFrameCount(number, frames int) Index {
	mm := frames / (FramesPerSecond * 60)
	frames -= mm * FramesPerSecond * 60
	ss := frames / FramesPerSecond
	ff := frames - ss*FramesPerSecond
	return Index{Number: number, Minute: mm, Second: ss, Frame: ff}
}

// Track is one TRACK command and the commands nested under it.
type Track struct {
	Number     int
	Type       string // e.g. "AUDIO"
	Title      string
	Performer  string
	Songwriter string
	Indexes    []Index
}

// File is one FILE command and the tracks nested under it.
type File struct {
	Name   string
	Type   string // e.g. "WAVE", "MP3"
	Tracks []Track
}

// Sheet is a fully parsed cue sheet: an ordered list of FILE blocks, plus
// any disc-level TITLE/PERFORMER/SONGWRITER/CATALOG commands that
// preceded the first FILE.
type Sheet struct {
	Title      string
	Performer  string
	Songwriter string
	Catalog    string
	Files      []File

	// Warnings accumulates unrecognised commands, which are skipped
	// rather than treated as errors, mirroring id3v2.Tag.Warnings.
	Warnings []string
}

// Parse reads a complete cue sheet from r.
func Parse(r io.Reader) (*Sheet, error) {
	p := &parser{sheet: &Sheet{}}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.lineNo++
		if err := p.line(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p.sheet, nil
}

type parser struct {
	sheet    *Sheet
	lineNo   int
	curFile  *File
	curTrack *Track
}

func (p *parser) line(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" {
		return nil
	}
	cmd, args := splitCommand(line)
	switch strings.ToUpper(cmd) {
	case "REM":
		// Free-form disc notes; not surfaced as structured data.
	case "CATALOG":
		p.sheet.Catalog = args
	case "TITLE":
		p.setTitle(args)
	case "PERFORMER":
		p.setPerformer(args)
	case "SONGWRITER":
		p.setSongwriter(args)
	case "FILE":
		name, typ := splitQuotedAndTrailer(args)
		p.sheet.Files = append(p.sheet.Files, File{Name: name, Type: typ})
		p.curFile = &p.sheet.Files[len(p.sheet.Files)-1]
		p.curTrack = nil
	case "TRACK":
		if p.curFile == nil {
			return fmt.Errorf("cue: line %d: TRACK before any FILE", p.lineNo)
		}
		num, typ, err := parseTrackHeader(args)
		if err != nil {
			return fmt.Errorf("cue: line %d: %w", p.lineNo, err)
		}
		p.curFile.Tracks = append(p.curFile.Tracks, Track{Number: num, Type: typ})
		p.curTrack = &p.curFile.Tracks[len(p.curFile.Tracks)-1]
	case "INDEX":
		if p.curTrack == nil {
			return fmt.Errorf("cue: line %d: INDEX before any TRACK", p.lineNo)
		}
		idx, err := parseIndex(args)
		if err != nil {
			return fmt.Errorf("cue: line %d: %w", p.lineNo, err)
		}
		p.curTrack.Indexes = append(p.curTrack.Indexes, idx)
	default:
		p.sheet.Warnings = append(p.sheet.Warnings, fmt.Sprintf("line %d: unrecognised command %q, skipped", p.lineNo, cmd))
	}
	return nil
}

func (p *parser) setTitle(args string) {
	v, _ := unquote(args)
	if p.curTrack != nil {
		p.curTrack.Title = v
	} else {
		p.sheet.Title = v
	}
}

func (p *parser) setPerformer(args string) {
	v, _ := unquote(args)
	if p.curTrack != nil {
		p.curTrack.Performer = v
	} else {
		p.sheet.Performer = v
	}
}

func (p *parser) setSongwriter(args string) {
	v, _ := unquote(args)
	if p.curTrack != nil {
		p.curTrack.Songwriter = v
	} else {
		p.sheet.Songwriter = v
	}
}

// splitCommand splits a line into its leading command keyword and the
// remainder, the way the ID3 frame dispatcher splits a wire identifier
// from its body: one fixed-width (here, whitespace-delimited) field read
// first, then the rest handled by a command-specific parser.
func splitCommand(line string) (cmd, rest string) {
	i := strings.IndexAny(line, " \t")
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i+1:])
}

// unquote strips a pair of double quotes from s if present; otherwise
// returns s unchanged. ok reports whether quotes were found.
func unquote(s string) (value string, ok bool) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return s, false
}

// splitQuotedAndTrailer splits a FILE command's argument into its quoted
// (or bare) filename and the trailing type token.
func splitQuotedAndTrailer(args string) (name, typ string) {
	if len(args) > 0 && args[0] == '"' {
		end := strings.IndexByte(args[1:], '"')
		if end >= 0 {
			name = args[1 : end+1]
			typ = strings.TrimSpace(args[end+2:])
			return
		}
	}
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func parseTrackHeader(args string) (num int, typ string, err error) {
	fields := strings.Fields(args)
	if len(fields) < 1 {
		return 0, "", fmt.Errorf("missing track number")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, "", fmt.Errorf("invalid track number %q: %w", fields[0], err)
	}
	if len(fields) > 1 {
		typ = fields[1]
	}
	return n, typ, nil
}

func parseIndex(args string) (Index, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return Index{}, fmt.Errorf("expected \"<number> <MM:SS:FF>\", got %q", args)
	}
	num, err := strconv.Atoi(fields[0])
	if err != nil {
		return Index{}, fmt.Errorf("invalid index number %q: %w", fields[0], err)
	}
	parts := strings.Split(fields[1], ":")
	if len(parts) != 3 {
		return Index{}, fmt.Errorf("invalid timestamp %q, want MM:SS:FF", fields[1])
	}
	mm, err1 := strconv.Atoi(parts[0])
	ss, err2 := strconv.Atoi(parts[1])
	ff, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return Index{}, fmt.Errorf("invalid timestamp %q, want MM:SS:FF", fields[1])
	}
	return Index{Number: num, Minute: mm, Second: ss, Frame: ff}, nil
}
