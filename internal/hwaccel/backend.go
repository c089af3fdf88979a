// Package hwaccel selects the encoding backend for video re-encodes:
// NVENC when present and working, VAAPI as the next candidate, software
// otherwise. Capability probing (self-test encodes, supported pixel
// formats) is cached for the process lifetime since GPU presence is static
// for a run.
package hwaccel

import "github.com/boxkutter/media-fixer/internal/planner"

// Backend identifies the encoding execution context.
type Backend int

const (
	BackendNone  Backend = iota // Software encoding.
	BackendNVENC                // NVIDIA NVENC.
	BackendVAAPI                // VA-API (Intel/AMD).
)

// String returns a short label for logs.
func (b Backend) String() string {
	switch b {
	case BackendNVENC:
		return "nvenc"
	case BackendVAAPI:
		return "vaapi"
	default:
		return "software"
	}
}

// DefaultVAAPIDevice is the render node used for VA-API device
// initialization and self-tests.
const DefaultVAAPIDevice = "/dev/dri/renderD128"

// encoderFor maps a codec family to the backend's encoder name, or "" when
// the backend has no encoder for the family.
func encoderFor(b Backend, family string) string {
	switch b {
	case BackendNVENC:
		switch family {
		case planner.FamilyH264:
			return "h264_nvenc"
		case planner.FamilyHEVC:
			return "hevc_nvenc"
		case planner.FamilyAV1:
			return "av1_nvenc"
		}
	case BackendVAAPI:
		switch family {
		case planner.FamilyH264:
			return "h264_vaapi"
		case planner.FamilyHEVC:
			return "hevc_vaapi"
		case planner.FamilyAV1:
			return "av1_vaapi"
		}
	}
	return ""
}

// Plan is the per-job hardware decision: the backend, the concrete encoder,
// and the negotiated pixel format. Derived fresh for every job; only the
// capability cache behind it is shared.
type Plan struct {
	Backend     Backend
	Encoder     string
	PixelFormat string // Empty = no explicit format selection.
	Convert     bool   // Insert an explicit software format conversion.
	Warning     string // Non-empty when the source bit depth was downgraded.
}
