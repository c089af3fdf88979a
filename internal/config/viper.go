package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Viper key names, shared between flag registration in cmd and [FromViper].
// Flags are bound to these keys so MEDIAFIXER_* environment variables can
// override them.
const (
	KeyFile          = "file"
	KeyDir           = "dir"
	KeyOutput        = "output"
	KeyContainer     = "container"
	KeyVideoCodec    = "video-codec"
	KeyAudioCodec    = "audio-codec"
	KeySubtitleCodec = "subtitle-codec"
	KeyQuality       = "quality"
	KeyAudioChannels = "audio-channels"
	KeyStrip         = "strip"
	KeyAudioLang     = "audio-lang"
	KeySubsLang      = "subs-lang"
	KeyNoReplace     = "no-replace"
	KeyNoHwaccel     = "no-hwaccel"
	KeyForceDepth    = "force-depth"
	KeyWorkers       = "workers"
	KeyTimeout       = "timeout"
	KeyLogfile       = "logfile"
	KeyProbe         = "probe"
	KeyDryRun        = "dry-run"
	KeyQuiet         = "quiet"
	KeyVerbose       = "verbose"
	KeyColor         = "color"
)

// FromViper builds a Config from the bound flag/env values in v. Codec
// names are lowercased, the container argument is normalized to a dotted
// extension, and empty codec values fall back to "copy". The result must
// still pass [Config.Validate].
func FromViper(v *viper.Viper) Config {
	cfg := Default()

	// Flag binding normally supplies these, but when keys are absent the
	// built-in defaults must survive.
	v.SetDefault(KeyVideoCodec, cfg.VideoCodec)
	v.SetDefault(KeyAudioCodec, cfg.AudioCodec)
	v.SetDefault(KeySubtitleCodec, cfg.SubtitleCodec)
	v.SetDefault(KeyAudioLang, cfg.AudioLang)
	v.SetDefault(KeySubsLang, cfg.SubsLang)
	v.SetDefault(KeyWorkers, cfg.Workers)

	cfg.InputFile = v.GetString(KeyFile)
	cfg.InputDir = v.GetString(KeyDir)
	cfg.OutputDir = v.GetString(KeyOutput)
	cfg.Container = NormalizeContainer(v.GetString(KeyContainer))
	cfg.VideoCodec = normalizeCodec(v.GetString(KeyVideoCodec))
	cfg.AudioCodec = normalizeCodec(v.GetString(KeyAudioCodec))
	cfg.SubtitleCodec = normalizeCodec(v.GetString(KeySubtitleCodec))
	cfg.Quality = v.GetInt(KeyQuality)
	cfg.AudioChannels = v.GetInt(KeyAudioChannels)
	cfg.Strip = v.GetBool(KeyStrip)
	cfg.AudioLang = strings.ToLower(v.GetString(KeyAudioLang))
	cfg.SubsLang = strings.ToLower(v.GetString(KeySubsLang))
	cfg.NoReplace = v.GetBool(KeyNoReplace)
	cfg.UseHardware = !v.GetBool(KeyNoHwaccel)
	cfg.ForcedDepth = v.GetInt(KeyForceDepth)
	cfg.Workers = v.GetInt(KeyWorkers)
	cfg.JobTimeout = v.GetDuration(KeyTimeout)
	if lf := v.GetString(KeyLogfile); lf != "" {
		cfg.ErrorLog = lf
	}
	cfg.ProbeOnly = v.GetBool(KeyProbe)
	cfg.DryRun = v.GetBool(KeyDryRun)
	cfg.Quiet = v.GetBool(KeyQuiet)
	cfg.Verbose = v.GetBool(KeyVerbose)
	if cm := v.GetString(KeyColor); cm != "" {
		cfg.ColorMode = ColorMode(strings.ToLower(cm))
	}

	return cfg
}

// normalizeCodec lowercases a codec argument; empty means "copy".
func normalizeCodec(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "copy"
	}
	return s
}
