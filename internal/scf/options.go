// options.go --  This file is part of goHF project.
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
package scf

import (
	"fmt"
	"io"
	"log"
)

const (
	DefaultThreshold     = 1e-9
	DefaultMaxIterations = 50
	DefaultEigenFloor    = 1e-15
	DefaultDIISSize      = 6
)

// Options control one SCF run. Zero values are replaced by the defaults.
type Options struct {
	// Threshold is the energy change, in Hartree, below which the run is converged.
	Threshold float64

	// MaxIterations bounds the number of Fock builds.
	MaxIterations int

	// EigenFloor clips small overlap eigenvalues before inversion.
	EigenFloor float64

	// Workers is the number of goroutines for integral and G builds;
	// zero means GOMAXPROCS.
	Workers int

	// DIIS enables Fock matrix extrapolation over the last DIISSize iterations.
	DIIS     bool
	DIISSize int

	// Logger receives the per-iteration report. Nil discards it.
	Logger *log.Logger
}

// DefaultOptions returns the options used by H2Energy.
func DefaultOptions() Options {
	return Options{
		Threshold:     DefaultThreshold,
		MaxIterations: DefaultMaxIterations,
		EigenFloor:    DefaultEigenFloor,
		DIISSize:      DefaultDIISSize,
	}
}

func (o Options) withDefaults() (Options, error) {
	if o.Threshold < 0 || o.MaxIterations < 0 || o.EigenFloor < 0 || o.DIISSize < 0 {
		return o, fmt.Errorf("%w: %+v", ErrInvalidOptions, o)
	}
	if o.Threshold == 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.EigenFloor == 0 {
		o.EigenFloor = DefaultEigenFloor
	}
	if o.DIISSize == 0 {
		o.DIISSize = DefaultDIISSize
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	return o, nil
}
