package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := Default()
	cfg.InputDir = dir
	return cfg
}

func TestValidate_RequiresInput(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with neither --file nor --dir")
	}
}

func TestValidate_MutuallyExclusiveInputs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mkv")
	if err := os.WriteFile(file, []byte{}, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.InputFile = file
	cfg.InputDir = dir
	if err := cfg.Validate(); err == nil {
		t.Error("expected error with both --file and --dir")
	}
}

func TestValidate_InputMustExist(t *testing.T) {
	cfg := Default()
	cfg.InputFile = "/nonexistent/movie.mkv"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing file")
	}

	cfg = Default()
	cfg.InputDir = "/nonexistent/library"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestValidate_FileIsNotDir(t *testing.T) {
	cfg := Default()
	cfg.InputFile = t.TempDir()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when --file points at a directory")
	}
}

func TestValidate_ForcedDepth(t *testing.T) {
	for _, depth := range []int{0, 8, 10} {
		cfg := validConfig(t)
		cfg.ForcedDepth = depth
		if err := cfg.Validate(); err != nil {
			t.Errorf("depth %d: unexpected error: %v", depth, err)
		}
	}
	for _, depth := range []int{1, 9, 12, 16} {
		cfg := validConfig(t)
		cfg.ForcedDepth = depth
		if err := cfg.Validate(); err == nil {
			t.Errorf("depth %d: expected error", depth)
		}
	}
}

func TestValidate_ClampsWorkers(t *testing.T) {
	cfg := validConfig(t)
	cfg.Workers = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}

	cfg = validConfig(t)
	cfg.Workers = -3
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
}

func TestValidate_ColorMode(t *testing.T) {
	cfg := validConfig(t)
	cfg.ColorMode = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for invalid color mode")
	}
}

func TestNormalizeContainer(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"mp4", ".mp4"},
		{".mp4", ".mp4"},
		{"MKV", ".mkv"},
		{" webm ", ".webm"},
	}
	for _, tc := range cases {
		if got := NormalizeContainer(tc.in); got != tc.want {
			t.Errorf("NormalizeContainer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set(KeyDir, "/media")
	v.Set(KeyContainer, "MP4")
	v.Set(KeyVideoCodec, "H265")
	v.Set(KeyAudioCodec, "")
	v.Set(KeyQuality, 22)
	v.Set(KeyStrip, true)
	v.Set(KeyAudioLang, "EN")
	v.Set(KeyNoHwaccel, true)
	v.Set(KeyWorkers, 8)
	v.Set(KeyTimeout, "90m")

	cfg := FromViper(v)

	if cfg.InputDir != "/media" {
		t.Errorf("InputDir = %q", cfg.InputDir)
	}
	if cfg.Container != ".mp4" {
		t.Errorf("Container = %q, want .mp4", cfg.Container)
	}
	if cfg.VideoCodec != "h265" {
		t.Errorf("VideoCodec = %q, want h265", cfg.VideoCodec)
	}
	if cfg.AudioCodec != "copy" {
		t.Errorf("empty audio codec should fall back to copy, got %q", cfg.AudioCodec)
	}
	if cfg.Quality != 22 {
		t.Errorf("Quality = %d", cfg.Quality)
	}
	if !cfg.Strip || cfg.AudioLang != "en" {
		t.Errorf("Strip/AudioLang = %v/%q", cfg.Strip, cfg.AudioLang)
	}
	if cfg.UseHardware {
		t.Error("UseHardware should be false with no-hwaccel set")
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.JobTimeout != 90*time.Minute {
		t.Errorf("JobTimeout = %v", cfg.JobTimeout)
	}
	// Unset keys keep defaults.
	if cfg.ErrorLog != "transcode-errors.log" {
		t.Errorf("ErrorLog = %q", cfg.ErrorLog)
	}
	if cfg.SubsLang != "en" {
		t.Errorf("SubsLang = %q", cfg.SubsLang)
	}
}
