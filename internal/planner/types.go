package planner

import "github.com/boxkutter/media-fixer/internal/config"

// Target is the user's transcode intent for a run. It is constructed once
// from configuration and read-only thereafter; per-file adjustments (implicit
// copy) are derived into fresh values by [Derive], never written back.
type Target struct {
	VideoCodec    string // "copy" or codec name.
	AudioCodec    string
	SubtitleCodec string
	Container     string // Dotted extension, empty = no change.
	Quality       int    // 0 = lossless/unset.
	AudioChannels int    // 0 = unset.
	Strip         bool
	AudioLang     string
	SubsLang      string
	UseHardware   bool
	ForcedDepth   int // 0 = detect; otherwise 8 or 10.
}

// NewTarget builds the run-wide Target from configuration.
func NewTarget(cfg *config.Config) Target {
	return Target{
		VideoCodec:    cfg.VideoCodec,
		AudioCodec:    cfg.AudioCodec,
		SubtitleCodec: cfg.SubtitleCodec,
		Container:     cfg.Container,
		Quality:       cfg.Quality,
		AudioChannels: cfg.AudioChannels,
		Strip:         cfg.Strip,
		AudioLang:     cfg.AudioLang,
		SubsLang:      cfg.SubsLang,
		UseHardware:   cfg.UseHardware,
		ForcedDepth:   cfg.ForcedDepth,
	}
}

// Resolution is the output of the compatibility resolver: the ordered set of
// kept streams (defines -map order) and, for kept subtitles, the output codec
// keyed by the subtitle's ordinal among kept subtitles (0-based, in catalog
// order). The ordinal — not the original stream index — is what the encoder's
// per-subtitle-stream codec flag references.
type Resolution struct {
	KeptIndices    []int
	SubtitleCodecs []string
}

// KeptSubtitles returns the number of kept subtitle streams.
func (r Resolution) KeptSubtitles() int { return len(r.SubtitleCodecs) }
