// calc.go --  This file is part of goHF project.
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
// Package calc connects molecules, basis sets and the SCF engine.
package calc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/keiran-rowell/hartee-fock/internal/basis"
	"github.com/keiran-rowell/hartee-fock/internal/molecule"
	"github.com/keiran-rowell/hartee-fock/internal/scf"
)

// ErrBadScan is returned for an empty or non-finite distance range.
var ErrBadScan = errors.New("calc: invalid scan range")

// NewEngine places the basis functions of set on mol and prepares an SCF
// engine for it.
func NewEngine(mol *molecule.Molecule, set *basis.Set, opts scf.Options) (*scf.Engine, error) {
	if mol.Electrons()%2 != 0 {
		return nil, fmt.Errorf("%w: %d electrons", scf.ErrOddElectronCount, mol.Electrons())
	}
	funcs, err := set.Functions(mol)
	if err != nil {
		return nil, err
	}
	return scf.NewEngine(scf.Problem{
		Basis:     funcs,
		Nuclei:    mol.Nuclei(),
		Electrons: mol.Electrons(),
	}, opts)
}

// Run performs a single-point RHF calculation. A run that does not converge
// returns its last result together with the error.
func Run(mol *molecule.Molecule, set *basis.Set, opts scf.Options) (*scf.Engine, *scf.Result, error) {
	eng, err := NewEngine(mol, set, opts)
	if err != nil {
		return nil, nil, err
	}
	res, err := eng.Run()
	return eng, res, err
}

// Point is one geometry of a bond-distance scan.
type Point struct {
	Distance   float64
	Energy     float64
	Iterations int
	Converged  bool
}

// Distances returns start, start+step, ... up to and including stop.
func Distances(start, stop, step float64) ([]float64, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %g..%g step %g", ErrBadScan, start, stop, step)
		}
	}
	if start <= 0 || step <= 0 || stop < start {
		return nil, fmt.Errorf("%w: %g..%g step %g", ErrBadScan, start, stop, step)
	}
	n := int(math.Floor((stop-start)/step+1e-9)) + 1
	res := make([]float64, n)
	for i := range res {
		res[i] = start + float64(i)*step
	}
	return res, nil
}

// Scan computes the RHF energy of the diatomic a-b with the given charge
// at every distance (Bohr). Geometries run concurrently, at most limit at
// a time (limit < 1 means no limit). Non-converged points are kept with
// Converged false; any other error stops the scan. The points come back
// in the order of distances.
func Scan(ctx context.Context, a, b string, charge int, distances []float64, set *basis.Set, opts scf.Options, limit int) ([]Point, error) {
	if len(distances) == 0 {
		return nil, fmt.Errorf("%w: no distances", ErrBadScan)
	}
	logger := opts.Logger
	opts.Logger = nil

	points := make([]Point, len(distances))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, r := range distances {
		i, r := i, r
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mol, err := molecule.Diatomic(a, b, r)
			if err != nil {
				return err
			}
			mol.Charge = charge
			_, res, err := Run(mol, set, opts)
			var nc *scf.NonConvergenceError
			if err != nil && !errors.As(err, &nc) {
				return fmt.Errorf("R = %g: %w", r, err)
			}
			points[i] = Point{Distance: r, Energy: res.Energy, Iterations: res.Iterations, Converged: res.Converged}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if logger != nil {
		for _, p := range points {
			logScanPoint(logger, p)
		}
	}
	return points, nil
}

func logScanPoint(l *log.Logger, p Point) {
	if !p.Converged {
		l.Println("Warning! R = ", p.Distance, " not converged after ", p.Iterations, " steps, E = ", p.Energy)
		return
	}
	l.Println("R = ", p.Distance, " bohr, E = ", p.Energy, " a.u., ", p.Iterations, " steps")
}
