package planner

// Codec families. User-facing codec arguments ("h265") and ffprobe codec
// names ("hevc") both normalize into a family so the two can be compared
// and mapped to concrete encoders.
const (
	FamilyH264 = "h264"
	FamilyHEVC = "hevc"
	FamilyAV1  = "av1"
)

// FamilyOf maps a codec name or encoder argument to its family, or ""
// when the name belongs to no known family.
func FamilyOf(codec string) string {
	switch codec {
	case "h264", "x264", "libx264", "avc", "h264_nvenc", "h264_vaapi":
		return FamilyH264
	case "h265", "x265", "libx265", "hevc", "hevc_nvenc", "hevc_vaapi":
		return FamilyHEVC
	case "av1", "libsvtav1", "libaom-av1", "av1_nvenc", "av1_vaapi":
		return FamilyAV1
	default:
		return ""
	}
}

// SoftwareEncoder returns the software encoder for a requested video codec.
// Unfamiliar names are passed through verbatim and left to ffmpeg's own
// validation.
func SoftwareEncoder(codec string) string {
	switch FamilyOf(codec) {
	case FamilyH264:
		return "libx264"
	case FamilyHEVC:
		return "libx265"
	case FamilyAV1:
		return "libsvtav1"
	default:
		return codec
	}
}

// QualityControllable reports whether an encoder accepts the constant-quality
// knob (-crf for software, -cq/-qp for hardware). Encoders outside the known
// families ignore the quality setting rather than receiving a flag ffmpeg
// would reject.
func QualityControllable(encoder string) bool {
	return FamilyOf(encoder) != ""
}

// SameCodec reports whether a requested target codec and a probed source
// codec refer to the same encoding, used for the implicit-copy rule.
func SameCodec(target, source string) bool {
	if target == source {
		return true
	}
	tf, sf := FamilyOf(target), FamilyOf(source)
	return tf != "" && tf == sf
}
