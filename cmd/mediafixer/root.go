package main

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/boxkutter/media-fixer/internal/config"
	"github.com/boxkutter/media-fixer/internal/logging"
	"github.com/boxkutter/media-fixer/internal/pipeline"
)

// envPrefix makes every flag overridable via environment, e.g.
// MEDIAFIXER_WORKERS=8 or MEDIAFIXER_NO_HWACCEL=1.
const envPrefix = "MEDIAFIXER"

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "mediafixer",
		Short: "Batch media transcoder built on ffmpeg",
		Long: `mediafixer probes media files, decides per file whether re-encoding,
remuxing, or stream stripping is needed, and runs the required ffmpeg
jobs concurrently. Files are written to a temp name first and swapped
into place only after a successful encode.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd, v)
		},
	}

	registerFlags(cmd, v)
	return cmd
}

// registerFlags declares the CLI surface and binds each flag into viper so
// environment variables serve as fallbacks.
func registerFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.Flags()

	f.StringP(config.KeyFile, "f", "", "Single file to convert")
	f.StringP(config.KeyDir, "d", "", "Root folder to scan recursively")
	f.StringP(config.KeyOutput, "o", "", "Write converted files under this directory instead of in place")
	f.StringP(config.KeyContainer, "c", "", "Target container, e.g. mp4 mkv webm")
	f.StringP(config.KeyVideoCodec, "v", "copy", "Target video codec, e.g. h264 h265 av1")
	f.StringP(config.KeyAudioCodec, "a", "copy", "Target audio codec, e.g. aac ac3 opus")
	f.StringP(config.KeySubtitleCodec, "s", "copy", "Target subtitle codec, e.g. srt mov_text")
	f.IntP(config.KeyQuality, "q", 0, "Target quality (CRF scale, lower is better; 0 = lossless)")
	f.Int(config.KeyAudioChannels, 0, "Target audio channel count (2 or 6)")
	f.Bool(config.KeyStrip, false, "Keep only streams in the configured languages")
	f.String(config.KeyAudioLang, "en", "Audio language to keep with --strip")
	f.String(config.KeySubsLang, "en", "Subtitle language to keep with --strip")
	f.Bool(config.KeyNoReplace, false, "Keep source files instead of replacing them")
	f.Bool(config.KeyNoHwaccel, false, "Disable hardware-accelerated encoding")
	f.Int(config.KeyForceDepth, 0, "Treat sources as this bit depth (8 or 10) instead of detecting")
	f.IntP(config.KeyWorkers, "w", 4, "Concurrent conversion workers")
	f.Duration(config.KeyTimeout, 0, "Per-file conversion timeout, e.g. 2h (0 = none)")
	f.String(config.KeyLogfile, "transcode-errors.log", "Error log file")
	f.Bool(config.KeyProbe, false, "Show stream info only, convert nothing")
	f.Bool(config.KeyDryRun, false, "Report what would be converted without running ffmpeg")
	f.Bool(config.KeyQuiet, false, "Suppress the progress bar")
	f.Bool(config.KeyVerbose, false, "Show debug output and ffmpeg's own log")
	f.String(config.KeyColor, "auto", "Color output: auto, always, or never")

	cobra.CheckErr(v.BindPFlags(f))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	cfg := config.FromViper(v)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := checkTools(cfg.ProbeOnly); err != nil {
		return err
	}

	log := logging.NewLogger(&cfg)
	stats, err := pipeline.Run(cmd.Context(), &cfg, log)
	if err != nil {
		return err
	}
	if stats.AllFailed() {
		return errors.New("all conversions failed, see error log")
	}
	return nil
}

// checkTools fails fast when the external binaries are missing. Probe-only
// runs need just ffprobe.
func checkTools(probeOnly bool) error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return errors.New("ffprobe not found in PATH")
	}
	if probeOnly {
		return nil
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return errors.New("ffmpeg not found in PATH")
	}
	return nil
}
