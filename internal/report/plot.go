/*
NAME
  plot.go

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package report renders diagnostic plots of an analysed stream's per-frame
// transition activity, for the cmd/photocheck -plot mode. It is never
// imported by the core packages themselves; it exists purely to help a
// human operator eyeball why a clip failed.
package report

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ausocean/photosense/analyser"
)

// TransitionPlot renders three time series over the frame index: the
// luminance and red-saturation W1 transition counts, and the pattern area
// percentage, saving the result as an SVG at path.
func TransitionPlot(records []analyser.FrameRecord, path string) error {
	p := plot.New()
	p.Title.Text = "Transition activity"
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "count / percent"

	lum := make(plotter.XYs, len(records))
	red := make(plotter.XYs, len(records))
	pat := make(plotter.XYs, len(records))
	for i, r := range records {
		lum[i].X, lum[i].Y = float64(i), float64(r.LuminanceTransitions)
		red[i].X, red[i].Y = float64(i), float64(r.RedTransitions)
		pat[i].X, pat[i].Y = float64(i), r.PatternAreaPercent*100
	}

	lumLine, err := plotter.NewLine(lum)
	if err != nil {
		return errors.Wrap(err, "report: luminance line")
	}
	lumLine.Color = plotter.DefaultLineStyle.Color

	redLine, err := plotter.NewLine(red)
	if err != nil {
		return errors.Wrap(err, "report: red-saturation line")
	}

	patLine, err := plotter.NewLine(pat)
	if err != nil {
		return errors.Wrap(err, "report: pattern-area line")
	}

	p.Add(lumLine, redLine, patLine)
	p.Legend.Add("luminance transitions", lumLine)
	p.Legend.Add("red transitions", redLine)
	p.Legend.Add("pattern area %", patLine)

	if err := p.Save(10*vg.Inch, 5*vg.Inch, path); err != nil {
		return errors.Wrap(err, "report: save plot")
	}
	return nil
}
