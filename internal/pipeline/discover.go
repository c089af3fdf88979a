package pipeline

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/boxkutter/media-fixer/internal/config"
)

// Supported media file extensions (lowercase, with leading dot).
var mediaExtensions = map[string]bool{
	".mp4":  true,
	".mkv":  true,
	".avi":  true,
	".mov":  true,
	".flv":  true,
	".wmv":  true,
	".webm": true,
}

// Discover returns the media files a run operates on. In single-file mode
// the file must carry a media extension; in directory mode the tree is
// walked recursively. Leftover temp files from an interrupted earlier run
// are skipped so they are never used as sources. Paths are sorted for
// deterministic processing order.
func Discover(cfg *config.Config) ([]string, error) {
	if cfg.InputFile != "" {
		if !mediaExtensions[strings.ToLower(filepath.Ext(cfg.InputFile))] {
			return nil, nil
		}
		return []string{cfg.InputFile}, nil
	}

	var files []string
	err := filepath.WalkDir(cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), TempPrefix) {
			return nil
		}
		if mediaExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
