// Command cuetag dumps ID3 tags and splits an audio file along the track
// boundaries described by a cue sheet.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"ktkr.us/pkg/fmtutil"

	"github.com/DigitalMediaServer/cuelib/config"
	"github.com/DigitalMediaServer/cuelib/cue"
	"github.com/DigitalMediaServer/cuelib/cutter"
	"github.com/DigitalMediaServer/cuelib/id3/id3v1"
	"github.com/DigitalMediaServer/cuelib/id3/id3v2"
)

const (
	exitOK         = 0
	exitUsageError = 1
	exitParseError = 2
)

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		usage()
		return exitUsageError
	}

	switch args[0] {
	case "tag":
		return runTag(args[1:])
	case "cut":
		return runCut(args[1:])
	default:
		usage()
		return exitUsageError
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cuetag tag <audio file>")
	fmt.Fprintln(os.Stderr, "       cuetag cut -cue <cue file> [-config <config file>] [-out <dir>] <audio file>")
}

func runTag(args []string) int {
	fs := flag.NewFlagSet("tag", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if fs.NArg() != 1 {
		usage()
		return exitUsageError
	}

	path := fs.Arg(0)
	f, err := os.Open(path)
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	defer f.Close()

	versionColor := color.New(color.FgCyan, color.Bold)
	warnColor := color.New(color.FgYellow)

	v2, err := id3v2.ReadV2(f)
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	if v2 != nil {
		versionColor.Printf("ID3v2.%d.%d\n", v2.Major, v2.Revision)
		for _, fr := range v2.Frames {
			printFrame(fr)
		}
		for _, w := range v2.Warnings {
			warnColor.Printf("warning: %s\n", w)
		}
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		log.Print(err)
		return exitParseError
	}
	v1, err := id3v1.Read(f)
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	if v1 != nil {
		versionColor.Println("ID3v1")
		log.Printf("Title:   %q", v1.Title)
		log.Printf("Artist:  %q", v1.Artist)
		log.Printf("Album:   %q", v1.Album)
		log.Printf("Year:    %s", v1.Year)
		log.Printf("Comment: %q", v1.Comment)
		if v1.HasTrack {
			log.Printf("Track:   %d", v1.Track)
		}
		log.Printf("Genre:   %s", v1.Genre)
	}

	if v2 == nil && v1 == nil {
		log.Print("no ID3 tag found")
	}
	return exitOK
}

func printFrame(f *id3v2.Frame) {
	switch p := f.Payload.(type) {
	case id3v2.TextFrame:
		log.Printf("%-8s %s: %q", f.ID, f.Kind, p.Text)
	case id3v2.UserTextFrame:
		log.Printf("%-8s %s: %q = %q", f.ID, f.Kind, p.Description, p.Value)
	case id3v2.URLFrame:
		log.Printf("%-8s %s: %s", f.ID, f.Kind, p.URL)
	case id3v2.UserURLFrame:
		log.Printf("%-8s %s: %q = %s", f.ID, f.Kind, p.Description, p.URL)
	case id3v2.CommentFrame:
		log.Printf("%-8s comment [%s]: %q", f.ID, p.Language[:], p.Text)
	case id3v2.PictureFrame:
		log.Printf("%-8s picture: %s, %d bytes", f.ID, p.FormatOrMIME, len(p.Data))
	default:
		log.Printf("%-8s %s", f.ID, f.Kind)
	}
}

func runCut(args []string) int {
	fs := flag.NewFlagSet("cut", flag.ContinueOnError)
	cuePath := fs.String("cue", "", "cue sheet path (required)")
	configPath := fs.String("config", "", "pipeline configuration YAML path")
	outDir := fs.String("out", ".", "output directory")
	if err := fs.Parse(args); err != nil {
		return exitUsageError
	}
	if *cuePath == "" || fs.NArg() != 1 {
		usage()
		return exitUsageError
	}
	audioPath := fs.Arg(0)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Print(err)
			return exitParseError
		}
		cfg = loaded
	}

	cueFile, err := os.Open(*cuePath)
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	sheet, err := cue.Parse(cueFile)
	cueFile.Close()
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	for _, w := range sheet.Warnings {
		log.Printf("cue warning: %s", w)
	}
	if len(sheet.Files) == 0 {
		log.Print("cue sheet declares no FILE blocks")
		return exitParseError
	}

	audio, err := os.Open(audioPath)
	if err != nil {
		log.Print(err)
		return exitParseError
	}
	defer audio.Close()
	info, err := audio.Stat()
	if err != nil {
		log.Print(err)
		return exitParseError
	}

	plan, err := cutter.BuildPlan(sheet.Files[0], audio, info.Size())
	if err != nil {
		log.Print(err)
		return exitParseError
	}

	log.Printf("%d Hz, %s total", plan.SampleRate, fmtutil.HMS(plan.Duration))

	err = cutter.Cut(context.Background(), audio, plan, func(c cutter.TrackCut) string {
		title := c.Title
		if title == "" {
			title = "Track " + strconv.Itoa(c.Number)
		}
		name := cfg.OutputTemplate
		name = strings.ReplaceAll(name, "{track}", fmt.Sprintf("%02d", c.Number))
		name = strings.ReplaceAll(name, "{title}", sanitizeFilename(title))
		return filepath.Join(*outDir, name)
	})
	if err != nil {
		log.Print(err)
		return exitParseError
	}

	for _, c := range plan.Cuts {
		log.Printf("track %02d: %q at %s, bytes %d..%d", c.Number, c.Title, fmtutil.HMS(c.StartTime()), c.StartByte, c.EndByte)
	}

	return exitOK
}

func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, s)
}
