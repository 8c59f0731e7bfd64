/*
NAME
  photocheck is a command line tool that runs the photosensitivity
  analysis core over a directory of sequentially-named, already-decoded
  frame images and reports a JSON AnalysisResult.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is the photocheck command.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/photosense/analyser"
	"github.com/ausocean/photosense/config"
	"github.com/ausocean/photosense/internal/report"
	"github.com/ausocean/utils/logging"
)

// Logging configuration, mirroring cmd/rv and cmd/looper.
const (
	logPath      = "photocheck.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

const pkg = "photocheck: "

func main() {
	dir := flag.String("dir", "", "directory of sequentially-named decoded BGR frame images")
	fps := flag.Uint("fps", 25, "nominal stream frame rate")
	pattern := flag.Bool("pattern", true, "enable stripe-pattern detection")
	byTime := flag.Bool("by-time", false, "use timestamp-based sliding windows instead of fixed-fps")
	resize := flag.Float64("resize", 0, "optional pre-analysis resize proportion, e.g. 0.5; 0 disables resizing")
	out := flag.String("out", "result.json", "path to write the JSON AnalysisResult")
	plotPath := flag.String("plot", "", "optional path to write an SVG transition-activity plot")
	verbosity := flag.Int("verbosity", int(logging.Info), "logging verbosity (-1=Debug, 0=Info, 1=Warning, 2=Error, 5=Fatal)")
	flag.Parse()

	if *dir == "" {
		fmt.Fprintln(os.Stderr, pkg+"-dir is required")
		os.Exit(2)
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(int8(*verbosity), fileLog, false)
	log.Info("starting photocheck", "dir", *dir)

	frames, width, height, err := loadFrames(*dir)
	if err != nil {
		log.Fatal(pkg+"could not load frames", "error", err.Error())
	}
	log.Info("loaded frames", "count", len(frames), "width", width, "height", height)

	vars := map[string]string{
		config.KeyFrameRate:      strconv.FormatUint(uint64(*fps), 10),
		config.KeyAnalyseByTime:  strconv.FormatBool(*byTime),
		config.KeyPatternEnabled: strconv.FormatBool(*pattern),
	}
	if *resize > 0 {
		vars[config.KeyFrameResizeEnabled] = "true"
		vars[config.KeyFrameResizeProportion] = strconv.FormatFloat(*resize, 'f', -1, 64)
	}

	cfg := config.Config{Logger: log}
	cfg.Update(vars)
	if err := cfg.Validate(); err != nil {
		log.Fatal(pkg+"invalid configuration", "error", err.Error())
	}

	a, err := analyser.New(cfg, width, height)
	if err != nil {
		log.Fatal(pkg+"could not create analyser", "error", err.Error())
	}

	records := make([]analyser.FrameRecord, 0, len(frames))
	for i, pixels := range frames {
		frame := analyser.Frame{
			Index:       uint32(i),
			TimestampMs: int64(i) * 1000 / int64(*fps),
			Width:       width,
			Height:      height,
			Pixels:      pixels,
		}
		rec, err := a.ProcessFrame(frame)
		if err != nil {
			log.Fatal(pkg+"could not process frame", "frame", i, "error", err.Error())
		}
		records = append(records, rec)
	}

	result := a.Finalize()
	log.Info("analysis complete", "overall", result.OverallResult.String(), "frames", result.TotalFrames)

	if err := writeJSON(*out, result); err != nil {
		log.Error(pkg+"could not write result", "error", err.Error())
	}

	if *plotPath != "" {
		if err := report.TransitionPlot(records, *plotPath); err != nil {
			log.Error(pkg+"could not write plot", "error", err.Error())
		}
	}
}

// loadFrames reads every image file in dir, sorted by filename, and returns
// each as a raw BGR byte slice. All frames must share the first frame's
// dimensions.
func loadFrames(dir string) (frames [][]byte, width, height int, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, 0, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for i, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			return nil, 0, 0, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, 0, 0, fmt.Errorf("photocheck: decoding %s: %w", name, err)
		}

		bounds := img.Bounds()
		w, h := bounds.Dx(), bounds.Dy()
		if i == 0 {
			width, height = w, h
		} else if w != width || h != height {
			return nil, 0, 0, fmt.Errorf("photocheck: %s is %dx%d, want %dx%d", name, w, h, width, height)
		}

		frames = append(frames, imageToBGR(img, width, height))
	}
	return frames, width, height, nil
}

// imageToBGR converts an image.Image into a row-major, 8-bit BGR byte slice.
func imageToBGR(img image.Image, width, height int) []byte {
	bounds := img.Bounds()
	out := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		rowOff := y * width * 3
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := rowOff + x*3
			out[off+0] = byte(b >> 8)
			out[off+1] = byte(g >> 8)
			out[off+2] = byte(r >> 8)
		}
	}
	return out
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
