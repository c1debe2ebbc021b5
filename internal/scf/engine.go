// engine.go --  This file is part of goHF project.
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
	"log"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/keiran-rowell/hartee-fock/internal/integrals"
)

// Status is the state of an SCF run.
type Status int

const (
	StatusInitialize Status = iota
	StatusIterate
	StatusConverged
	StatusMaxIterExceeded
)

func (s Status) String() string {
	switch s {
	case StatusInitialize:
		return "initialize"
	case StatusIterate:
		return "iterate"
	case StatusConverged:
		return "converged"
	case StatusMaxIterExceeded:
		return "max iterations exceeded"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Problem is the input of an RHF calculation: the basis functions, the
// nuclei they see and the number of electrons.
type Problem struct {
	Basis     []*integrals.ContractedGaussian
	Nuclei    []integrals.Nucleus
	Electrons int
}

// Engine owns the integrals of one geometry. It is not safe for
// concurrent use; independent runs need independent engines.
type Engine struct {
	opts      Options
	log       *log.Logger
	nBasis    int
	occupied  int
	electrons int
	one       *integrals.OneElectron
	h         *mat.Dense
	eri       *integrals.ERI
	x         *mat.Dense
	nuclear   float64
}

// NewEngine checks the electron count and then computes every quantity
// that does not depend on the density: S, T, V, the ERI tensor, the core
// Hamiltonian, the nuclear repulsion and the orthogonalizer.
func NewEngine(p Problem, opts Options) (*Engine, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	switch {
	case p.Electrons < 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidElectronCount, p.Electrons)
	case p.Electrons%2 != 0:
		return nil, fmt.Errorf("%w: %d electrons", ErrOddElectronCount, p.Electrons)
	case len(p.Basis) == 0:
		return nil, integrals.ErrNoBasis
	case p.Electrons/2 > len(p.Basis):
		return nil, fmt.Errorf("%w: %d electrons, %d basis functions", ErrTooManyElectrons, p.Electrons, len(p.Basis))
	}

	e := &Engine{
		opts:      opts,
		log:       opts.Logger,
		nBasis:    len(p.Basis),
		occupied:  p.Electrons / 2,
		electrons: p.Electrons,
	}
	if e.nuclear, err = integrals.NuclearRepulsion(p.Nuclei); err != nil {
		return nil, err
	}
	if e.one, err = integrals.BuildOneElectron(p.Basis, p.Nuclei, opts.Workers); err != nil {
		return nil, err
	}
	e.h = e.one.Core()
	if e.eri, err = integrals.BuildERI(p.Basis, opts.Workers); err != nil {
		return nil, err
	}
	if e.x, err = Orthogonalizer(e.one.S, opts.EigenFloor); err != nil {
		return nil, err
	}
	return e, nil
}

// Overlap returns the overlap matrix S.
func (e *Engine) Overlap() *mat.Dense { return e.one.S }
func (e *Engine) OneElectron() *integrals.OneElectron { return e.one }
func (e *Engine) Core() *mat.Dense { return e.h }
func (e *Engine) ERI() *integrals.ERI { return e.eri }
func (e *Engine) Orthogonalizer() *mat.Dense { return e.x }
func (e *Engine) NuclearRepulsion() float64 { return e.nuclear }
func (e *Engine) Occupied() int { return e.occupied }
func (e *Engine) NBasis() int { return e.nBasis }

// Iteration is the outcome of one Fock build and diagonalization.
type Iteration struct {
	// Energy is the total energy, Electronic plus nuclear repulsion.
	Energy     float64
	Electronic float64

	OrbitalEnergies []float64
	Coefficients    *mat.Dense
	Fock            *mat.Dense

	// Density is the new density formed from the occupied orbitals.
	Density *mat.Dense

	// DIISError is the RMS commutator residual, zero without DIIS.
	DIISError float64
}

// Step performs one SCF iteration from density d. It does not touch the
// engine, so the density is threaded explicitly from call to call.
func (e *Engine) Step(d *mat.Dense) (*Iteration, error) {
	return e.step(d, nil)
}

func (e *Engine) step(d *mat.Dense, dm *diis) (*Iteration, error) {
	g, err := BuildG(e.eri, d, e.opts.Workers)
	if err != nil {
		return nil, err
	}
	f := BuildFock(e.h, g)
	it := &Iteration{Fock: f}

	fDiag := f
	if dm != nil && mat.Norm(d, 1) > 0 {
		it.DIISError = dm.push(f, d, e.one.S, e.x)
		if fx, ok := dm.extrapolate(); ok {
			fDiag = fx
		}
	}

	var tmp, fPrime mat.Dense
	tmp.Mul(e.x.T(), fDiag)
	fPrime.Mul(&tmp, e.x)

	eps, cPrime, err := diagonalize(&fPrime)
	if err != nil {
		return nil, err
	}
	var c mat.Dense
	c.Mul(e.x, cPrime)

	it.OrbitalEnergies = eps
	it.Coefficients = &c
	it.Density = Density(&c, e.occupied)
	it.Electronic = ElectronicEnergy(it.Density, e.h, f)
	it.Energy = it.Electronic + e.nuclear
	return it, nil
}

// Record is the per-iteration history entry of a run.
type Record struct {
	Iteration int
	Energy    float64
	Delta     float64
	DIISError float64
}

// Result is the final state of a run.
type Result struct {
	Status     Status
	Converged  bool
	Iterations int

	Energy     float64
	Electronic float64
	Nuclear    float64

	OrbitalEnergies []float64
	Coefficients    *mat.Dense
	Density         *mat.Dense

	// ElectronCount is trace(D S).
	ElectronCount float64

	History []Record
}

type state struct {
	status        Status
	iteration     int
	previous      float64
	threshold     float64
	maxIterations int
}

// Run iterates from the zero density (core Hamiltonian guess) until the
// energy change drops below the threshold. When the iteration budget runs
// out the last result is returned together with a *NonConvergenceError.
func (e *Engine) Run() (*Result, error) {
	st := state{
		status:        StatusInitialize,
		threshold:     e.opts.Threshold,
		maxIterations: e.opts.MaxIterations,
	}
	var dm *diis
	if e.opts.DIIS {
		dm = newDIIS(e.opts.DIISSize)
	}

	e.log.Println("SCF: ", e.nBasis, " basis functions, ", e.electrons, " electrons, ", e.occupied, " occupied orbitals.")
	e.log.Println("Nuclei Repulsion Energy: ", e.nuclear, " a.u.")

	d := mat.NewDense(e.nBasis, e.nBasis, nil)
	res := &Result{Nuclear: e.nuclear}
	var last *Iteration
	delta := math.Inf(1)
	st.status = StatusIterate
	for st.iteration < st.maxIterations {
		st.iteration++
		it, err := e.step(d, dm)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", st.iteration, err)
		}
		last = it
		delta = math.Abs(it.Energy - st.previous)
		res.History = append(res.History, Record{st.iteration, it.Energy, delta, it.DIISError})
		if dm != nil {
			e.log.Println("Iteration ", st.iteration, ". Energy = ", it.Energy, ", dE = ", delta, ", dRMS = ", it.DIISError)
		} else {
			e.log.Println("Iteration ", st.iteration, ". Energy = ", it.Energy, ", dE = ", delta)
		}

		if delta < st.threshold {
			st.status = StatusConverged
			e.log.Println("SCF converged after step ", st.iteration)
			break
		}
		st.previous = it.Energy
		d = it.Density
	}

	e.fill(res, last, st)
	if st.status != StatusConverged {
		res.Status = StatusMaxIterExceeded
		e.log.Println("Warning! SCF NOT converged after step ", st.iteration)
		return res, &NonConvergenceError{Iterations: st.iteration, Energy: last.Energy, Delta: delta}
	}
	e.log.Println("Final total energy = ", res.Energy, " a.u.")
	return res, nil
}

func (e *Engine) fill(res *Result, it *Iteration, st state) {
	res.Status = st.status
	res.Converged = st.status == StatusConverged
	res.Iterations = st.iteration
	res.Energy = it.Energy
	res.Electronic = it.Electronic
	res.OrbitalEnergies = it.OrbitalEnergies
	res.Coefficients = it.Coefficients
	res.Density = it.Density
	res.ElectronCount = ElectronCount(it.Density, e.one.S)
}
