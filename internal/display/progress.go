package display

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/boxkutter/media-fixer/internal/term"
)

// Progress wraps the batch progress bar. A nil receiver is valid and does
// nothing, so quiet and non-terminal runs skip the bar without callers
// branching.
type Progress struct {
	bar *progressbar.ProgressBar
}

// NewProgress returns a bar over total jobs, or nil when quiet is set or
// stderr is not a terminal.
func NewProgress(total int, quiet bool) *Progress {
	if quiet || !term.IsTerminal(os.Stderr) {
		return nil
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "=", SaucerHead: ">", SaucerPadding: " ",
			BarStart: "[", BarEnd: "]",
		}),
	)
	return &Progress{bar: bar}
}

// Step advances the bar by one completed job.
func (p *Progress) Step() {
	if p == nil {
		return
	}
	_ = p.bar.Add(1)
}

// Finish clears the bar.
func (p *Progress) Finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
