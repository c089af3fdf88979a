// Package config holds runtime configuration: defaults, viper-backed
// construction from CLI flags, and validation. Defaults match the legacy
// mf tool for parity.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [Default] and
// [FromViper] before being passed (by pointer) to packages that need it,
// and is read-only from then on. Per-file decisions (e.g. resetting a codec
// to copy when it already matches the source) are derived downstream and
// never written back here.
type Config struct {
	// Input selection (exactly one of the two).
	InputFile string
	InputDir  string

	// Optional alternate output root. Empty means transcode in place.
	OutputDir string

	// Target codecs, "copy" = no change.
	VideoCodec    string
	AudioCodec    string
	SubtitleCodec string

	// Target container extension with leading dot (".mp4"), empty = no change.
	Container string

	// Quality knob, 0 = lossless/unset. Lower is higher quality.
	Quality int

	// Target audio channel count, 0 = unset. Only 2 and 6 are remapped.
	AudioChannels int

	// Language stripping.
	Strip     bool
	AudioLang string
	SubsLang  string

	// Keep the original file after a successful encode.
	NoReplace bool

	// Hardware acceleration. Default on; --no-hwaccel clears it.
	UseHardware bool

	// Forced source bit depth, 0 = detect from probe. Valid: 8, 10.
	ForcedDepth int

	// Execution.
	Workers    int           // Default: 4. Minimum 1.
	JobTimeout time.Duration // Per-job deadline, 0 = none.
	ErrorLog   string        // Default: "transcode-errors.log".

	// Modes.
	ProbeOnly bool
	DryRun    bool
	Quiet     bool
	Verbose   bool
	ColorMode ColorMode
}

// Default returns a Config with all defaults matching the legacy mf tool.
func Default() Config {
	return Config{
		VideoCodec:    "copy",
		AudioCodec:    "copy",
		SubtitleCodec: "copy",
		AudioLang:     "en",
		SubsLang:      "en",
		UseHardware:   true,
		Workers:       4,
		ErrorLog:      "transcode-errors.log",
		ColorMode:     ColorAuto,
	}
}

// NormalizeContainer canonicalizes a container argument to a lowercase
// extension with leading dot ("mp4" and ".MP4" both become ".mp4").
// Empty input stays empty (no container change).
func NormalizeContainer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	return s
}

// Validate checks input selection, numeric ranges, and enum fields.
// InputFile must be an existing regular file and InputDir an existing
// directory; exactly one of the two must be set (probe mode included —
// it still needs files to probe). Workers below 1 are clamped to 1.
func (c *Config) Validate() error {
	if c.InputFile == "" && c.InputDir == "" {
		return errors.New("must specify --file or --dir")
	}
	if c.InputFile != "" && c.InputDir != "" {
		return errors.New("--file and --dir are mutually exclusive")
	}
	if c.InputFile != "" {
		fi, err := os.Stat(c.InputFile)
		if err != nil {
			return fmt.Errorf("--file %q: %w", c.InputFile, err)
		}
		if fi.IsDir() {
			return fmt.Errorf("--file %q is a directory", c.InputFile)
		}
	}
	if c.InputDir != "" {
		fi, err := os.Stat(c.InputDir)
		if err != nil {
			return fmt.Errorf("--dir %q: %w", c.InputDir, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("--dir %q is not a directory", c.InputDir)
		}
	}

	if c.Quality < 0 {
		return fmt.Errorf("quality must be >= 0 (got %d)", c.Quality)
	}
	if c.AudioChannels < 0 {
		return fmt.Errorf("audio channels must be >= 0 (got %d)", c.AudioChannels)
	}
	switch c.ForcedDepth {
	case 0, 8, 10:
		// valid
	default:
		return fmt.Errorf("forced bit depth must be 8 or 10 (got %d)", c.ForcedDepth)
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always, or never)", c.ColorMode)
	}

	if c.Workers < 1 {
		c.Workers = 1
	}
	return nil
}
