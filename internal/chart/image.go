package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportProfile writes the drop profile to an image file. Format is
// taken from the file extension (png, svg, pdf).
func ExportProfile(data ProfileData, filename string) error {
	if len(data.Sizes) == 0 || len(data.Sizes) != len(data.Percents) {
		return fmt.Errorf("profile needs matching size and percent series, got %d/%d", len(data.Sizes), len(data.Percents))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".svg", ".pdf":
	default:
		return fmt.Errorf("unsupported export format %q (use png, svg or pdf)", ext)
	}

	p := plot.New()
	p.Title.Text = "Voltage Drop vs Conductor Size"
	p.X.Label.Text = "Conductor size (mm²)"
	p.Y.Label.Text = "Voltage drop (% of nominal)"

	profile := make(plotter.XYs, len(data.Sizes))
	for i := range data.Sizes {
		profile[i] = plotter.XY{X: data.Sizes[i], Y: data.Percents[i]}
	}

	profileLine, err := plotter.NewLine(profile)
	if err != nil {
		return err
	}
	profileLine.LineStyle.Width = vg.Points(2)
	profileLine.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	p.Add(profileLine)
	p.Legend.Add("drop %", profileLine)

	// Class limit line
	limitLine, err := plotter.NewLine(plotter.XYs{
		{X: data.Sizes[0], Y: data.Limit},
		{X: data.Sizes[len(data.Sizes)-1], Y: data.Limit},
	})
	if err != nil {
		return err
	}
	limitLine.LineStyle.Width = vg.Points(1.5)
	limitLine.LineStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	limitLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(limitLine)
	p.Legend.Add(fmt.Sprintf("%.1f%% limit (%s)", data.Limit, data.Class), limitLine)

	// Mark the selected size
	if data.Selected > 0 {
		for i := range data.Sizes {
			if data.Sizes[i] != data.Selected {
				continue
			}
			selected, err := plotter.NewScatter(plotter.XYs{{X: data.Sizes[i], Y: data.Percents[i]}})
			if err != nil {
				return err
			}
			selected.GlyphStyle.Color = color.RGBA{R: 0, G: 128, B: 0, A: 255}
			selected.GlyphStyle.Radius = vg.Points(5)
			selected.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(selected)
			p.Legend.Add(fmt.Sprintf("selected %g mm²", data.Selected), selected)
			break
		}
	}

	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
