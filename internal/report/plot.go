// plot.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package report

import (
	"errors"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/keiran-rowell/hartee-fock/internal/calc"
)

// PlotScan draws the energy against the bond distance and saves it to
// path; the format follows the file extension (png, svg, pdf, ...).
// Points that did not converge are drawn in red.
func PlotScan(points []calc.Point, title, path string) error {
	if len(points) == 0 {
		return errors.New("report: no points to plot")
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "R (bohr)"
	p.Y.Label.Text = "E (hartree)"
	p.Add(plotter.NewGrid())

	all := make(plotter.XYs, len(points))
	var bad plotter.XYs
	for i, pt := range points {
		all[i].X = pt.Distance
		all[i].Y = pt.Energy
		if !pt.Converged {
			bad = append(bad, all[i])
		}
	}
	line, err := plotter.NewLine(all)
	if err != nil {
		return err
	}
	s, err := plotter.NewScatter(all)
	if err != nil {
		return err
	}
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, s)
	if len(bad) > 0 {
		sb, err := plotter.NewScatter(bad)
		if err != nil {
			return err
		}
		sb.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
		sb.GlyphStyle.Shape = draw.CrossGlyph{}
		p.Add(sb)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
