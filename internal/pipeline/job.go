package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/boxkutter/media-fixer/internal/config"
)

// TempPrefix marks in-progress output files. Discovery skips files carrying
// it, and finalization strips it to produce the clean destination name.
const TempPrefix = "_tmp_"

// Job is one compiled conversion: the source file, the temp output path the
// encoder writes to, and the frozen argument list.
type Job struct {
	Source   string
	TempDest string
	Args     []string
	Warning  string // Bit-depth downgrade note from hardware negotiation.
}

// tempDestination computes the temp output path for a source file: the
// final filename with the temp prefix, in the source's directory or the
// mirrored location under the output root, with the container extension
// swapped when a container change is requested.
func tempDestination(cfg *config.Config, source string) (string, error) {
	dir := filepath.Dir(source)
	if cfg.OutputDir != "" {
		if cfg.InputDir != "" {
			rel, err := filepath.Rel(cfg.InputDir, source)
			if err != nil {
				return "", fmt.Errorf("output path for %s: %w", source, err)
			}
			dir = filepath.Join(cfg.OutputDir, filepath.Dir(rel))
		} else {
			dir = cfg.OutputDir
		}
	}

	out := filepath.Join(dir, TempPrefix+filepath.Base(source))
	if cfg.Container != "" {
		out = strings.TrimSuffix(out, filepath.Ext(out)) + cfg.Container
	}
	return out, nil
}

// CleanDestination strips the temp prefix from a temp path's filename,
// yielding the final destination path.
func CleanDestination(tempDest string) string {
	dir, base := filepath.Split(tempDest)
	return filepath.Join(dir, strings.TrimPrefix(base, TempPrefix))
}

// Finalize moves a successfully written temp file into place and returns
// the clean destination path. With noReplace the original source is kept
// and the temp file is simply renamed. Otherwise the original is deleted
// first and the temp file renamed after; a rename failure in that order
// is unrecoverable for the source, so the error says so.
func Finalize(job *Job, noReplace bool) (string, error) {
	clean := CleanDestination(job.TempDest)

	if noReplace {
		if err := os.Rename(job.TempDest, clean); err != nil {
			return "", err
		}
		return clean, nil
	}

	if _, err := os.Stat(job.Source); err == nil {
		if err := os.Remove(job.Source); err != nil {
			return "", fmt.Errorf("removing original: %w", err)
		}
	}
	if err := os.Rename(job.TempDest, clean); err != nil {
		return "", fmt.Errorf("original removed but temp rename failed, output stranded at %s: %w", job.TempDest, err)
	}
	return clean, nil
}
