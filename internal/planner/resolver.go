// Package planner holds the pure per-file decision logic: stream keep/drop
// resolution, codec family normalization, and the needs-transcode predicate.
// Nothing in this package touches the filesystem or spawns processes.
package planner

import (
	"github.com/boxkutter/media-fixer/internal/probe"
)

// Text-based subtitle codecs that MP4 can carry after conversion to mov_text.
var mp4TextSubs = map[string]bool{
	"subrip":   true,
	"srt":      true,
	"ass":      true,
	"ssa":      true,
	"mov_text": true,
}

// Subtitle codecs WebM accepts, all re-encoded to webvtt.
var webmSubs = map[string]bool{
	"webvtt": true,
	"srt":    true,
	"subrip": true,
}

// Resolve applies language stripping and container compatibility rules to the
// catalog, in order, and returns the kept-stream set. sourceExt is the
// source file's dotted lowercase extension.
//
// Rules, per stream:
//   - Audio/subtitle streams whose language does not match the configured
//     strip language are dropped. Video is never dropped by language.
//   - Kept subtitles are negotiated against the target container:
//     same container (or no container change) → copy; .mkv → copy;
//     .mp4 → text codecs become mov_text, image-based or unknown dropped;
//     .webm → webvtt/srt/subrip become webvtt, everything else dropped;
//     .avi and unrecognized containers carry no embedded subtitles → drop.
//   - Surviving video and audio are always kept; their codecs are decided
//     by the hardware selector and plan builder, not here.
//   - Data/attachment streams are not mapped.
//
// If stripping removes every audio or video stream the resolution still
// proceeds; a resulting encoder failure is reported as a job failure.
func Resolve(t Target, catalog probe.Catalog, sourceExt string) Resolution {
	var r Resolution

	for _, s := range catalog {
		switch s.Kind {
		case probe.KindVideo:
			r.KeptIndices = append(r.KeptIndices, s.Index)

		case probe.KindAudio:
			if t.Strip && !LangMatches(t.AudioLang, s.Language) {
				continue
			}
			r.KeptIndices = append(r.KeptIndices, s.Index)

		case probe.KindSubtitle:
			if t.Strip && !LangMatches(t.SubsLang, s.Language) {
				continue
			}
			codec, keep := subtitleCodecFor(t.Container, sourceExt, s.Codec)
			if !keep {
				continue
			}
			r.KeptIndices = append(r.KeptIndices, s.Index)
			r.SubtitleCodecs = append(r.SubtitleCodecs, codec)

		case probe.KindOther:
			// Data and attachment streams are never mapped.
		}
	}

	return r
}

// subtitleCodecFor returns the output codec for one subtitle stream and
// whether the stream survives the container change at all.
func subtitleCodecFor(targetExt, sourceExt, srcCodec string) (string, bool) {
	if targetExt == "" || targetExt == sourceExt {
		// No container change: no codec negotiation.
		return "copy", true
	}

	switch targetExt {
	case ".mkv":
		// Matroska carries everything verbatim.
		return "copy", true
	case ".mp4":
		if mp4TextSubs[srcCodec] {
			return "mov_text", true
		}
		return "", false
	case ".webm":
		if webmSubs[srcCodec] {
			return "webvtt", true
		}
		return "", false
	default:
		// .avi and anything unrecognized: no reliable embedded-subtitle
		// support. New containers must be added here, not defaulted.
		return "", false
	}
}
