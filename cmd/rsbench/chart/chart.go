// Package chart renders sweep results as grouped bar charts.
package chart

import (
	"fmt"
	"strconv"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/utils"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

type Options struct {
	Title    string
	XLabel   string
	YLabel   string
	Filename string
}

type Renderer interface {
	// Render draws result and returns the path of the written file.
	Render(result *entities.SweepResult, opts Options) (string, error)
}

// BarChart draws one bar group per size and one bar per label inside a group.
// The image format follows the file extension (png, svg, pdf...).
type BarChart struct {
	OutputDir   string
	Width       vg.Length
	Height      vg.Length
	MaxBarWidth vg.Length
}

func NewBarChart(outputDir string) *BarChart {
	return &BarChart{
		OutputDir:   outputDir,
		Width:       8 * vg.Inch,
		Height:      5 * vg.Inch,
		MaxBarWidth: vg.Points(20),
	}
}

func (c *BarChart) Render(result *entities.SweepResult, opts Options) (string, error) {
	if err := result.Validate(); err != nil {
		return "", fmt.Errorf("Refusing to render an incomplete sweep: %w", err)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Add(plotter.NewGrid())

	count := len(result.Labels)
	width := c.barWidth(len(result.Sizes), count)
	for i, label := range result.Labels {
		bars, err := plotter.NewBarChart(plotter.Values(result.Series[label]), width)
		if err != nil {
			return "", fmt.Errorf("Error creating the bars of %s: %w", label, err)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(count-1)/2) * width

		p.Add(bars)
		p.Legend.Add(label, bars)
	}
	p.Legend.Top = true
	p.NominalX(lo.Map(result.Sizes, func(size int, _ int) string {
		return strconv.Itoa(size)
	})...)

	path, err := utils.ResolveArtifactPath(c.OutputDir, lo.Ternary(opts.Filename != "", opts.Filename, "out.png"))
	if err != nil {
		return "", err
	}
	if err := p.Save(c.Width, c.Height, path); err != nil {
		return "", fmt.Errorf("Error saving the chart %s: %w", path, err)
	}

	return path, nil
}

func (c *BarChart) barWidth(groups int, bars int) vg.Length {
	// Leave about a third of the plot width for gaps between groups
	available := c.Width * 2 / 3
	return lo.Min([]vg.Length{c.MaxBarWidth, available / vg.Length(groups*bars)})
}
