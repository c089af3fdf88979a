package probe

import "strings"

// Kind classifies a stream. The set is closed; the resolver switches over
// it exhaustively so a new kind fails review rather than falling through.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindSubtitle
	KindOther
)

// String returns the ffprobe codec_type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "other"
	}
}

// Stream holds the parsed properties of a single elementary stream.
// Immutable after the probe; owned by the compiling call.
type Stream struct {
	Index       int
	Kind        Kind
	Codec       string
	Language    string // Lowercase tag; "und" when missing.
	PixelFormat string // Video streams only; empty otherwise.
}

// BitDepth returns the stream's sample bit depth (8, 10, or 12) derived
// from its pixel format name. Formats without an explicit depth suffix
// (yuv420p, nv12, ...) are 8-bit; yuv410p's "10" names chroma subsampling,
// not depth, so only suffixed depth markers count.
func (s Stream) BitDepth() int {
	pf := strings.ToLower(s.PixelFormat)
	switch {
	case strings.Contains(pf, "12le"), strings.Contains(pf, "12be"):
		return 12
	case strings.Contains(pf, "10le"), strings.Contains(pf, "10be"), pf == "p010":
		return 10
	default:
		return 8
	}
}

// Catalog is the ordered stream list for one file, in probe order.
type Catalog []Stream

// First returns the first stream of the given kind, or nil.
func (c Catalog) First(kind Kind) *Stream {
	for i := range c {
		if c[i].Kind == kind {
			return &c[i]
		}
	}
	return nil
}

// Has reports whether the catalog contains at least one stream of the kind.
func (c Catalog) Has(kind Kind) bool { return c.First(kind) != nil }

// Count returns the number of streams of the given kind.
func (c Catalog) Count(kind Kind) int {
	n := 0
	for i := range c {
		if c[i].Kind == kind {
			n++
		}
	}
	return n
}
