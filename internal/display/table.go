package display

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/boxkutter/media-fixer/internal/probe"
)

// CatalogTable renders a file's stream catalog as a table for probe-only
// runs.
func CatalogTable(path string, cat probe.Catalog) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle(path)
	tw.AppendHeader(table.Row{"#", "Type", "Codec", "Language", "Pixel Format"})

	for _, s := range cat {
		pix := s.PixelFormat
		if s.Kind == probe.KindVideo && pix != "" {
			pix += " (" + strconv.Itoa(s.BitDepth()) + "-bit)"
		}
		tw.AppendRow(table.Row{s.Index, s.Kind.String(), s.Codec, s.Language, pix})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// SummaryTable renders the end-of-run counters.
func SummaryTable(converted, skipped, failed int, sizeDelta int64) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Converted", "Skipped", "Failed", "Size Change"})

	delta := "-"
	if converted > 0 {
		delta = FormatBytesWithSign(sizeDelta)
	}
	tw.AppendRow(table.Row{converted, skipped, failed, delta})
	return tw.Render()
}
