package charts

import (
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"catalogstats/internal/config"
)

// Style holds every visual setting of a chart run. Each Renderer carries
// its own Style; nothing is configured globally.
type Style struct {
	Width          vg.Length
	Height         vg.Length
	HeatmapWidth   vg.Length
	TitleFontSize  vg.Length
	LabelFontSize  vg.Length
	AnnotationSize vg.Length
	LineColor      color.Color
	BarPalette     string
	HeatmapPalette string
	TopCategories  int
}

// DefaultStyle returns the reference look: 10x6 inch figures, a 15x6 inch
// heatmap, bold 20pt titles and 14pt axis labels.
func DefaultStyle() Style {
	return Style{
		Width:          10 * vg.Inch,
		Height:         6 * vg.Inch,
		HeatmapWidth:   15 * vg.Inch,
		TitleFontSize:  vg.Points(20),
		LabelFontSize:  vg.Points(14),
		AnnotationSize: vg.Points(11),
		LineColor:      color.RGBA{B: 255, A: 255},
		BarPalette:     "YlGnBu",
		HeatmapPalette: "Blues",
		TopCategories:  10,
	}
}

// StyleFromConfig builds a Style from chart configuration. Sizes are in
// inches and font sizes in points.
func StyleFromConfig(cfg config.ChartsConfig) Style {
	s := DefaultStyle()
	if cfg.Width > 0 {
		s.Width = vg.Length(cfg.Width) * vg.Inch
	}
	if cfg.Height > 0 {
		s.Height = vg.Length(cfg.Height) * vg.Inch
	}
	if cfg.HeatmapWidth > 0 {
		s.HeatmapWidth = vg.Length(cfg.HeatmapWidth) * vg.Inch
	}
	if cfg.TitleFontSize > 0 {
		s.TitleFontSize = vg.Points(cfg.TitleFontSize)
	}
	if cfg.LabelFontSize > 0 {
		s.LabelFontSize = vg.Points(cfg.LabelFontSize)
	}
	if cfg.TopCategories > 0 {
		s.TopCategories = cfg.TopCategories
	}
	return s
}

// newPlot creates a plot with the title and axis labels in this style.
func (s Style) newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()

	p.Title.Text = title
	p.Title.TextStyle.Font.Size = s.TitleFontSize
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(8)

	p.X.Label.Text = xLabel
	p.X.Label.TextStyle.Font.Size = s.LabelFontSize
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = s.LabelFontSize

	return p
}
