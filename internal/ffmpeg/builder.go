// Package ffmpeg builds and runs the ffmpeg command line for a single
// conversion job.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/boxkutter/media-fixer/internal/hwaccel"
	"github.com/boxkutter/media-fixer/internal/planner"
)

// Plan carries everything the builder needs for one invocation. It is a
// fully resolved description: stream selection, codecs, and the hardware
// decision have already been made by the time a Plan exists.
type Plan struct {
	Input  string
	Output string

	// Video.
	VideoCodec    string // Concrete encoder name, or "copy".
	Quality       int    // Used only when the encoder is quality controllable.
	Hardware      hwaccel.Plan
	EncodingVideo bool // False when VideoCodec is "copy".

	// Audio.
	AudioCodec    string // Encoder name, "copy", or "" when audio is stripped.
	AudioChannels int    // 0 = keep source layout.

	// Stream selection. Maps lists the absolute input stream indices to
	// keep, in catalog order. SubtitleCodecs holds one entry per kept
	// subtitle stream, in the same relative order.
	Maps           []int
	SubtitleCodecs []string
}

// Build constructs the complete argument slice, starting with the "ffmpeg"
// binary name. Section order is fixed: globals, input, video, audio, maps,
// per-stream subtitle codecs, output. Build never mutates the plan, so
// calling it twice yields identical slices.
func Build(p *Plan) []string {
	args := make([]string, 0, 48)

	// --- Globals ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error")
	if p.EncodingVideo && p.Hardware.Backend == hwaccel.BackendVAAPI {
		args = append(args,
			"-init_hw_device", "vaapi=va:"+hwaccel.DefaultVAAPIDevice,
			"-filter_hw_device", "va",
		)
	}

	// --- Input ---
	args = append(args, "-i", p.Input)

	// --- Video ---
	args = appendVideo(args, p)

	// --- Audio ---
	args = appendAudio(args, p)

	// --- Stream maps ---
	for _, idx := range p.Maps {
		args = append(args, "-map", fmt.Sprintf("0:%d", idx))
	}

	// --- Per-stream subtitle codecs ---
	// The ordinal is the subtitle's position among kept subtitle streams,
	// which is what ffmpeg's output-stream specifier counts.
	for ordinal, codec := range p.SubtitleCodecs {
		args = append(args, fmt.Sprintf("-c:s:%d", ordinal), codec)
	}

	// --- Output ---
	args = append(args, p.Output)
	return args
}

// appendVideo adds the video codec section. Hardware plans choose between
// an input pixel format flag (NVENC) and a filter-based upload (VAAPI);
// software plans get a conversion filter only when the selector asked for
// one.
func appendVideo(args []string, p *Plan) []string {
	if !p.EncodingVideo {
		return append(args, "-c:v", "copy")
	}

	args = append(args, "-c:v", p.VideoCodec)

	switch p.Hardware.Backend {
	case hwaccel.BackendNVENC:
		if p.Hardware.PixelFormat != "" {
			args = append(args, "-pix_fmt", p.Hardware.PixelFormat)
		}
		args = append(args, "-cq", strconv.Itoa(p.Quality))
	case hwaccel.BackendVAAPI:
		pix := p.Hardware.PixelFormat
		if pix == "" {
			pix = "nv12"
		}
		args = append(args, "-vf", "format="+pix+",hwupload")
		args = append(args, "-qp", strconv.Itoa(p.Quality))
	default:
		if p.Hardware.Convert && p.Hardware.PixelFormat != "" {
			args = append(args, "-vf", "format="+p.Hardware.PixelFormat)
		}
		if planner.QualityControllable(p.VideoCodec) {
			args = append(args, "-crf", strconv.Itoa(p.Quality))
		}
	}
	return args
}

// appendAudio adds the audio codec section. A channel count is emitted only
// for the layouts ffmpeg downmixes cleanly, stereo and 5.1.
func appendAudio(args []string, p *Plan) []string {
	if p.AudioCodec == "" {
		return append(args, "-an")
	}
	args = append(args, "-c:a", p.AudioCodec)
	if p.AudioCodec != "copy" && (p.AudioChannels == 2 || p.AudioChannels == 6) {
		args = append(args, "-ac", strconv.Itoa(p.AudioChannels))
	}
	return args
}
