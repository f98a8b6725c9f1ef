// Package render draws sounding swaths: map views of one pressure level and
// vertical cross-sections along the swath track.
package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rtm0/nucaps/internal/levels"
	"github.com/rtm0/nucaps/internal/nucaps"
)

// Extent clamps a map view to a geographic box in degrees.
type Extent struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// extentPad widens auto-computed map bounds so edge footprints are not
// drawn on the frame.
const extentPad = 2.0

// Map renders the given variable at one pressure level as a lon/lat scatter
// colored by value and writes it to path as PNG. A nil extent derives the
// bounds from the swath's own footprint locations. Profiles with missing
// values at the level are dropped.
func Map(s *nucaps.Swath, variable string, level int, ext *Extent, path string) error {
	rows, err := s.Var(variable)
	if err != nil {
		return err
	}
	if level < 0 || level >= len(s.Pressure) {
		return fmt.Errorf("level %d out of range (0..%d)", level, len(s.Pressure)-1)
	}

	var pts XYs
	var vals []float64
	for i, row := range rows {
		v := row[level]
		if nucaps.IsMissing(v) {
			continue
		}
		pts = append(pts, XY{X: s.Longitude[i], Y: s.Latitude[i]})
		vals = append(vals, v)
	}
	if len(pts) == 0 {
		return fmt.Errorf("%s has no valid values at level %d", variable, level)
	}

	lo, hi := floats.Min(vals), floats.Max(vals)
	if lo == hi {
		hi = lo + 1 // flat field, any palette spread will do
	}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c, err := cm.At(vals[i])
		if err != nil {
			c = color.Black
		}
		return draw.GlyphStyle{
			Color:  c,
			Radius: vg.Points(2),
			Shape:  draw.CircleGlyph{},
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s at %.0fmb", variable, s.Pressure[level])
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(sc)

	if ext == nil {
		ext = &Extent{
			MinLon: floats.Min(s.Longitude) - extentPad,
			MaxLon: floats.Max(s.Longitude) + extentPad,
			MinLat: floats.Min(s.Latitude) - extentPad,
			MaxLat: floats.Max(s.Latitude) + extentPad,
		}
	}
	p.X.Min, p.X.Max = ext.MinLon, ext.MaxLon
	p.Y.Min, p.Y.Max = ext.MinLat, ext.MaxLat

	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}

// CrossSection renders the given variable as a profile×level heatmap along
// the swath track, pressure increasing downward, and writes it to path as
// PNG. The field-of-regard coordinate is broadcast against the variable
// grid so both axes line up cell for cell.
func CrossSection(s *nucaps.Swath, variable string, path string) error {
	rows, err := s.Var(variable)
	if err != nil {
		return err
	}
	forGrid, err := levels.Broadcast(s.FOR, len(s.Pressure), s.Len())
	if err != nil {
		return fmt.Errorf("%s cross-section: %w", variable, err)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			if nucaps.IsMissing(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return fmt.Errorf("%s has no valid values", variable)
	}
	if lo == hi {
		hi = lo + 1 // flat field, any palette spread will do
	}

	g := &sectionGrid{track: forGrid, pressure: s.Pressure, values: rows}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(lo)
	cm.SetMax(hi)
	h := plotter.NewHeatMap(g, cm.Palette(255))

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s cross-section", variable)
	p.X.Label.Text = "Field of Regard"
	p.Y.Label.Text = "Pressure (mb)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(h)

	return p.Save(7*vg.Inch, 4*vg.Inch, path)
}

// sectionGrid adapts a swath variable to plotter.GridXYZ. Columns follow
// the along-track field-of-regard coordinate, rows the pressure levels.
type sectionGrid struct {
	track    [][]int
	pressure []float64
	values   [][]float64
}

func (g *sectionGrid) Dims() (c, r int) {
	return len(g.track), len(g.pressure)
}

func (g *sectionGrid) X(c int) float64 {
	return float64(g.track[c][0])
}

func (g *sectionGrid) Y(r int) float64 {
	return g.pressure[r]
}

func (g *sectionGrid) Z(c, r int) float64 {
	v := g.values[c][r]
	if nucaps.IsMissing(v) {
		return math.NaN()
	}
	return v
}
