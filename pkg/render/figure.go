package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// SaveFigure stacks plots vertically into one PNG of the given size
func SaveFigure(path string, plots []*plot.Plot, width, height vg.Length) error {
	if path == "" {
		return missing("figure", "path")
	}
	if len(plots) == 0 {
		return missing("figure", "plots")
	}
	if width <= 0 || height <= 0 {
		return invalid("figure", "size", fmt.Sprintf("%vx%v", width, height))
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)

	table := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		if p == nil {
			return missing("figure", fmt.Sprintf("plots[%d]", i))
		}
		table[i] = []*plot.Plot{p}
	}

	canvases := plot.Align(table, draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter * 4,
	}, dc)
	for i := range table {
		table[i][0].Draw(canvases[i][0])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SaveFigure sizes the figure from the renderer config: one panel height per
// plot at the configured width.
func (r *Renderer) SaveFigure(path string, plots ...*plot.Plot) error {
	width := vg.Length(r.config.WidthIn) * vg.Inch
	height := vg.Length(r.config.PanelHeightIn) * vg.Inch * vg.Length(len(plots))

	if err := SaveFigure(path, plots, width, height); err != nil {
		return err
	}

	r.logger.Info("Figure saved", logging.Fields{
		"path":   path,
		"panels": len(plots),
	})
	return nil
}
