package charts

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"catalogstats/internal/errors"
	"catalogstats/internal/infrastructure"
	"catalogstats/pkg/contracts/domain"
)

// Chart names used in logs, errors and metrics
const (
	ChartRelational  = "relational"
	ChartCategorical = "categorical"
	ChartStatistical = "statistical"
)

// Default output files
const (
	DefaultRelationalFile  = "relational_plot.png"
	DefaultCategoricalFile = "categorical_plot.png"
	DefaultStatisticalFile = "statistical_plot.png"
)

// brewerColors is the largest class count of the sequential brewer palettes.
const brewerColors = 9

// Renderer draws the catalog charts into an output directory.
type Renderer struct {
	logger    *slog.Logger
	outputDir string
	style     Style
}

// NewRenderer creates a renderer writing into outputDir with the given style
func NewRenderer(logger *slog.Logger, outputDir string, style Style) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{
		logger:    infrastructure.WithComponent(logger, "charts"),
		outputDir: outputDir,
		style:     style,
	}
}

// Style returns the renderer's style
func (r *Renderer) Style() Style {
	return r.style
}

// RenderRelational draws titles added per year as a line with point markers.
// It returns the written path, or "" when there is nothing to draw.
func (r *Renderer) RenderRelational(ctx context.Context, counts []domain.YearCount, file string) (string, error) {
	if len(counts) == 0 {
		r.skip(ctx, ChartRelational, "no year_added values")
		return "", nil
	}

	p := r.style.newPlot("Evolution of Movies Added by Year", "Year Added", "Number of Movies Added")

	xys := make(plotter.XYs, len(counts))
	ticks := make([]plot.Tick, len(counts))
	for i, c := range counts {
		xys[i].X = float64(c.Year)
		xys[i].Y = float64(c.Count)
		ticks[i] = plot.Tick{Value: float64(c.Year), Label: strconv.Itoa(c.Year)}
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return "", errors.NewRenderError(ChartRelational, err)
	}
	line.Color = r.style.LineColor
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = r.style.LineColor
	points.Radius = vg.Points(4)

	p.Add(plotter.NewGrid(), line, points)
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return r.save(ctx, ChartRelational, p, r.style.Width, r.style.Height, file)
}

// RenderCategorical draws the most frequent countries as horizontal bars,
// the most frequent at the top.
func (r *Renderer) RenderCategorical(ctx context.Context, counts []domain.CountryCount, file string) (string, error) {
	if len(counts) == 0 {
		r.skip(ctx, ChartCategorical, "no country values")
		return "", nil
	}

	title := fmt.Sprintf("Top %d Countries with the Most Movies", len(counts))
	p := r.style.newPlot(title, "Number of Movies", "Country")

	colors, err := paletteColors(r.style.BarPalette)
	if err != nil {
		return "", errors.NewRenderError(ChartCategorical, err)
	}

	n := len(counts)
	names := make([]string, n)
	for i, c := range counts {
		// Bar 0 is drawn at the bottom, so the ranking is reversed.
		pos := n - 1 - i
		names[pos] = c.Country

		bar, err := plotter.NewBarChart(plotter.Values{float64(c.Count)}, vg.Points(20))
		if err != nil {
			return "", errors.NewRenderError(ChartCategorical, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.LineStyle.Width = 0
		bar.Color = colors[len(colors)-1-(i*len(colors))/n]
		p.Add(bar)
	}
	p.NominalY(names...)
	p.Add(plotter.NewGrid())

	return r.save(ctx, ChartCategorical, p, r.style.Width, r.style.Height, file)
}

// RenderStatistical draws the correlation matrix as an annotated heatmap.
func (r *Renderer) RenderStatistical(ctx context.Context, m domain.CorrelationMatrix, file string) (string, error) {
	if m.Len() == 0 {
		r.skip(ctx, ChartStatistical, "no numeric columns")
		return "", nil
	}

	p := r.style.newPlot("Correlation Heatmap of Numeric Variables", "", "")

	pal, err := brewer.GetPalette(brewer.TypeAny, r.style.HeatmapPalette, brewerColors)
	if err != nil {
		return "", errors.NewRenderError(ChartStatistical, err)
	}

	grid := correlationGrid{m: m}
	heat := plotter.NewHeatMap(grid, pal)
	heat.NaN = color.Gray{Y: 220}
	p.Add(heat)

	labels, err := plotter.NewLabels(grid.annotations())
	if err != nil {
		return "", errors.NewRenderError(ChartStatistical, err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = r.style.AnnotationSize
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(labels)

	p.NominalX(m.Columns...)
	p.NominalY(grid.rowNames()...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	return r.save(ctx, ChartStatistical, p, r.style.HeatmapWidth, r.style.Height, file)
}

func (r *Renderer) save(ctx context.Context, chart string, p *plot.Plot, width, height vg.Length, file string) (string, error) {
	path := file
	if !filepath.IsAbs(path) && r.outputDir != "" {
		path = filepath.Join(r.outputDir, file)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.NewRenderError(chart, err).WithContext("path", path)
	}
	if err := p.Save(width, height, path); err != nil {
		return "", errors.NewRenderError(chart, err).WithContext("path", path)
	}

	r.logger.InfoContext(ctx, "Chart rendered",
		slog.String("chart", chart),
		slog.String("path", path))
	return path, nil
}

func (r *Renderer) skip(ctx context.Context, chart, reason string) {
	r.logger.InfoContext(ctx, "Skipping chart",
		slog.String("chart", chart),
		slog.String("reason", reason))
}

// paletteColors returns the colors of a brewer palette, lightest first.
func paletteColors(name string) ([]color.Color, error) {
	pal, err := brewer.GetPalette(brewer.TypeAny, name, brewerColors)
	if err != nil {
		return nil, err
	}
	return pal.Colors(), nil
}
