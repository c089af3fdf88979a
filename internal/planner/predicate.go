package planner

import (
	"github.com/boxkutter/media-fixer/internal/probe"
)

// Derive computes the per-file effective target: a copy of the run-wide
// Target with codecs demoted to "copy" when the source stream already uses
// the requested codec (evaluated independently for video and audio). The
// shared Target is never mutated; each file gets a fresh derivation.
func Derive(t Target, catalog probe.Catalog) Target {
	d := t

	if v := catalog.First(probe.KindVideo); v != nil && d.VideoCodec != "copy" && SameCodec(d.VideoCodec, v.Codec) {
		d.VideoCodec = "copy"
	}
	if a := catalog.First(probe.KindAudio); a != nil && d.AudioCodec != "copy" && SameCodec(d.AudioCodec, a.Codec) {
		d.AudioCodec = "copy"
	}

	return d
}

// NeedsTranscode reports whether a file needs a job at all. Every condition
// is evaluated against the derived (per-file) target; any one suffices:
// a non-copy video codec with a video stream present, a non-copy audio codec
// with audio present, a non-copy subtitle codec with subtitles present, an
// explicit container differing from the source extension, a quality setting,
// an audio channel target, or language stripping. A file matching none is
// left untouched and reported as not needing work.
func NeedsTranscode(d Target, catalog probe.Catalog, sourceExt string) bool {
	switch {
	case d.VideoCodec != "copy" && catalog.Has(probe.KindVideo):
		return true
	case d.AudioCodec != "copy" && catalog.Has(probe.KindAudio):
		return true
	case d.SubtitleCodec != "copy" && catalog.Has(probe.KindSubtitle):
		return true
	case d.Container != "" && d.Container != sourceExt:
		return true
	case d.Quality > 0:
		return true
	case d.AudioChannels > 0:
		return true
	case d.Strip:
		return true
	default:
		return false
	}
}
