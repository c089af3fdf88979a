package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/boxkutter/media-fixer/internal/config"
	"github.com/boxkutter/media-fixer/internal/ffmpeg"
	"github.com/boxkutter/media-fixer/internal/hwaccel"
	"github.com/boxkutter/media-fixer/internal/planner"
	"github.com/boxkutter/media-fixer/internal/probe"
)

// compileJob turns one file that needs work into a runnable Job: resolve
// the kept-stream set, pick the hardware plan when video is re-encoded,
// and freeze the encoder arguments.
func compileJob(
	ctx context.Context,
	cfg *config.Config,
	d planner.Target,
	catalog probe.Catalog,
	sel *hwaccel.Selector,
	source string,
) (*Job, error) {
	sourceExt := strings.ToLower(filepath.Ext(source))
	res := planner.Resolve(d, catalog, sourceExt)

	plan := ffmpeg.Plan{
		Input:          source,
		VideoCodec:     "copy",
		AudioChannels:  d.AudioChannels,
		Maps:           res.KeptIndices,
		SubtitleCodecs: res.SubtitleCodecs,
	}
	if hasKeptAudio(catalog, res.KeptIndices) {
		plan.AudioCodec = d.AudioCodec
	}

	var warning string
	if d.VideoCodec != "copy" && catalog.Has(probe.KindVideo) {
		depth := d.ForcedDepth
		if depth == 0 {
			depth = catalog.First(probe.KindVideo).BitDepth()
		}
		hw := sel.Select(ctx, d.VideoCodec, depth)
		plan.EncodingVideo = true
		plan.VideoCodec = hw.Encoder
		plan.Hardware = hw
		plan.Quality = d.Quality
		warning = hw.Warning
	}

	tmp, err := tempDestination(cfg, source)
	if err != nil {
		return nil, err
	}
	plan.Output = tmp

	return &Job{
		Source:   source,
		TempDest: tmp,
		Args:     ffmpeg.Build(&plan),
		Warning:  warning,
	}, nil
}

// hasKeptAudio reports whether any kept stream index is an audio stream.
func hasKeptAudio(catalog probe.Catalog, kept []int) bool {
	for _, s := range catalog {
		if s.Kind != probe.KindAudio {
			continue
		}
		for _, idx := range kept {
			if idx == s.Index {
				return true
			}
		}
	}
	return false
}
