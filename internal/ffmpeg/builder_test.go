package ffmpeg

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/boxkutter/media-fixer/internal/hwaccel"
)

func countToken(args []string, token string) int {
	n := 0
	for _, a := range args {
		if a == token {
			n++
		}
	}
	return n
}

func indexOf(args []string, token string) int {
	for i, a := range args {
		if a == token {
			return i
		}
	}
	return -1
}

func TestBuild_CopyPlan(t *testing.T) {
	p := &Plan{
		Input:      "/in/movie.mkv",
		Output:     "/in/_tmp_movie.mp4",
		VideoCodec: "copy",
		AudioCodec: "copy",
		Maps:       []int{0, 1},
	}
	args := Build(p)

	if args[0] != "ffmpeg" {
		t.Fatalf("args[0] = %q, want ffmpeg", args[0])
	}
	if args[len(args)-1] != p.Output {
		t.Errorf("last token = %q, want output path", args[len(args)-1])
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-c:v copy") {
		t.Errorf("missing video copy: %s", joined)
	}
	if !strings.Contains(joined, "-c:a copy") {
		t.Errorf("missing audio copy: %s", joined)
	}
}

func TestBuild_MapCountMatchesKeptStreams(t *testing.T) {
	p := &Plan{
		Input:          "in.mkv",
		Output:         "out.mkv",
		VideoCodec:     "copy",
		AudioCodec:     "copy",
		Maps:           []int{0, 1, 3, 4},
		SubtitleCodecs: []string{"copy", "copy"},
	}
	args := Build(p)

	if got := countToken(args, "-map"); got != len(p.Maps) {
		t.Errorf("got %d -map directives, want %d", got, len(p.Maps))
	}

	// Maps must appear in kept-stream order.
	var mapped []string
	for i, a := range args {
		if a == "-map" {
			mapped = append(mapped, args[i+1])
		}
	}
	want := []string{"0:0", "0:1", "0:3", "0:4"}
	if !reflect.DeepEqual(mapped, want) {
		t.Errorf("map order = %v, want %v", mapped, want)
	}
}

func TestBuild_SubtitleOrdinals(t *testing.T) {
	p := &Plan{
		Input:          "in.mkv",
		Output:         "out.mp4",
		VideoCodec:     "copy",
		AudioCodec:     "copy",
		Maps:           []int{0, 1, 3, 5},
		SubtitleCodecs: []string{"mov_text", "copy", "mov_text"},
	}
	args := Build(p)
	joined := strings.Join(args, " ")

	// One override per kept subtitle, ordinal-contiguous from zero.
	for i, codec := range []string{"mov_text", "copy", "mov_text"} {
		want := fmt.Sprintf("-c:s:%d %s", i, codec)
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %s", want, joined)
		}
	}
	if strings.Contains(joined, "-c:s:3") {
		t.Errorf("unexpected fourth subtitle override: %s", joined)
	}
}

func TestBuild_Ordering(t *testing.T) {
	p := &Plan{
		Input:          "in.mkv",
		Output:         "out.mp4",
		EncodingVideo:  true,
		VideoCodec:     "libx264",
		Quality:        22,
		AudioCodec:     "aac",
		AudioChannels:  2,
		Maps:           []int{0, 1, 2},
		SubtitleCodecs: []string{"mov_text"},
	}
	args := Build(p)

	iInput := indexOf(args, "-i")
	iVideo := indexOf(args, "-c:v")
	iAudio := indexOf(args, "-c:a")
	iMap := indexOf(args, "-map")
	iSub := indexOf(args, "-c:s:0")
	iOut := len(args) - 1

	if !(iInput < iVideo && iVideo < iAudio && iAudio < iMap && iMap < iSub && iSub < iOut) {
		t.Errorf("section order wrong: input=%d video=%d audio=%d map=%d sub=%d out=%d\nargs: %v",
			iInput, iVideo, iAudio, iMap, iSub, iOut, args)
	}
	if args[iOut] != "out.mp4" {
		t.Errorf("destination not last: %q", args[iOut])
	}
}

func TestBuild_Idempotent(t *testing.T) {
	p := &Plan{
		Input:          "in.mkv",
		Output:         "out.mkv",
		EncodingVideo:  true,
		VideoCodec:     "libx265",
		Quality:        20,
		AudioCodec:     "copy",
		Maps:           []int{0, 1},
		SubtitleCodecs: []string{"copy"},
	}
	first := Build(p)
	second := Build(p)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build not idempotent:\n%v\n%v", first, second)
	}
}

func TestBuild_QualityFlagPerBackend(t *testing.T) {
	cases := []struct {
		name     string
		hardware hwaccel.Plan
		codec    string
		wantFlag string
		notFlags []string
	}{
		{"software crf", hwaccel.Plan{Backend: hwaccel.BackendNone}, "libx264", "-crf", []string{"-cq", "-qp"}},
		{"nvenc cq", hwaccel.Plan{Backend: hwaccel.BackendNVENC, PixelFormat: "yuv420p"}, "h264_nvenc", "-cq", []string{"-crf", "-qp"}},
		{"vaapi qp", hwaccel.Plan{Backend: hwaccel.BackendVAAPI, PixelFormat: "nv12"}, "h264_vaapi", "-qp", []string{"-crf", "-cq"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &Plan{
				Input:         "in.mkv",
				Output:        "out.mkv",
				EncodingVideo: true,
				VideoCodec:    tc.codec,
				Quality:       24,
				Hardware:      tc.hardware,
				AudioCodec:    "copy",
				Maps:          []int{0},
			}
			args := Build(p)
			if indexOf(args, tc.wantFlag) < 0 {
				t.Errorf("missing %s: %v", tc.wantFlag, args)
			}
			for _, f := range tc.notFlags {
				if indexOf(args, f) >= 0 {
					t.Errorf("unexpected %s: %v", f, args)
				}
			}
		})
	}
}

func TestBuild_VAAPIGlobals(t *testing.T) {
	p := &Plan{
		Input:         "in.mkv",
		Output:        "out.mkv",
		EncodingVideo: true,
		VideoCodec:    "hevc_vaapi",
		Hardware:      hwaccel.Plan{Backend: hwaccel.BackendVAAPI, PixelFormat: "p010le"},
		AudioCodec:    "copy",
		Maps:          []int{0},
	}
	args := Build(p)
	joined := strings.Join(args, " ")

	iInit := indexOf(args, "-init_hw_device")
	iInput := indexOf(args, "-i")
	if iInit < 0 || iInit > iInput {
		t.Errorf("-init_hw_device must precede -i: %v", args)
	}
	if !strings.Contains(joined, "format=p010le,hwupload") {
		t.Errorf("missing hwupload filter: %s", joined)
	}
}

func TestBuild_SoftwareFormatConversion(t *testing.T) {
	p := &Plan{
		Input:         "in.mkv",
		Output:        "out.mkv",
		EncodingVideo: true,
		VideoCodec:    "libx264",
		Hardware:      hwaccel.Plan{Backend: hwaccel.BackendNone, PixelFormat: "yuv420p", Convert: true},
		AudioCodec:    "copy",
		Maps:          []int{0},
	}
	args := Build(p)
	if !strings.Contains(strings.Join(args, " "), "-vf format=yuv420p") {
		t.Errorf("missing conversion filter: %v", args)
	}
}

func TestBuild_AudioChannels(t *testing.T) {
	cases := []struct {
		channels int
		wantAC   bool
	}{
		{0, false},
		{2, true},
		{6, true},
		{5, false}, // unrecognized count is a no-op
		{8, false},
	}
	for _, tc := range cases {
		p := &Plan{
			Input:         "in.mkv",
			Output:        "out.mkv",
			VideoCodec:    "copy",
			AudioCodec:    "aac",
			AudioChannels: tc.channels,
			Maps:          []int{0, 1},
		}
		args := Build(p)
		got := indexOf(args, "-ac") >= 0
		if got != tc.wantAC {
			t.Errorf("channels=%d: -ac present=%v, want %v", tc.channels, got, tc.wantAC)
		}
	}
}

func TestBuild_AudioChannelsIgnoredOnCopy(t *testing.T) {
	p := &Plan{
		Input:         "in.mkv",
		Output:        "out.mkv",
		VideoCodec:    "copy",
		AudioCodec:    "copy",
		AudioChannels: 2,
		Maps:          []int{0, 1},
	}
	if args := Build(p); indexOf(args, "-ac") >= 0 {
		t.Errorf("-ac must not apply to copied audio: %v", args)
	}
}

func TestBuild_StrippedAudio(t *testing.T) {
	p := &Plan{
		Input:      "in.mkv",
		Output:     "out.mkv",
		VideoCodec: "copy",
		AudioCodec: "",
		Maps:       []int{0},
	}
	args := Build(p)
	if indexOf(args, "-an") < 0 {
		t.Errorf("missing -an for stripped audio: %v", args)
	}
	if indexOf(args, "-c:a") >= 0 {
		t.Errorf("unexpected -c:a for stripped audio: %v", args)
	}
}
