// Package probe provides ffprobe-based media inspection and typed stream
// catalogs. A single JSON call per file yields everything the planner needs.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Probe runs a single ffprobe JSON call against path and returns the parsed
// catalog. A missing tool, non-zero exit, or unparseable output all return
// an error; callers treat any of them as "cannot transcode this file" and
// fail the corresponding job rather than silently skipping it.
func Probe(ctx context.Context, path string) (Catalog, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_streams",
		"-of", "json",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Catalog.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (Catalog, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	catalog := make(Catalog, 0, len(raw.Streams))
	for i := range raw.Streams {
		catalog = append(catalog, convertStream(&raw.Streams[i]))
	}
	return catalog, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	PixFmt    string            `json:"pix_fmt"`
	Tags      map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func convertStream(s *ffprobeStream) Stream {
	lang := "und"
	if tag, ok := s.Tags["language"]; ok && tag != "" {
		lang = strings.ToLower(tag)
	}

	return Stream{
		Index:       s.Index,
		Kind:        kindOf(s.CodecType),
		Codec:       strings.ToLower(s.CodecName),
		Language:    lang,
		PixelFormat: s.PixFmt,
	}
}

func kindOf(codecType string) Kind {
	switch codecType {
	case "video":
		return KindVideo
	case "audio":
		return KindAudio
	case "subtitle":
		return KindSubtitle
	default:
		return KindOther
	}
}
