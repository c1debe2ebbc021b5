// main.go --  This file is part of goHF project.
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
// Command gohf runs closed-shell Hartree-Fock calculations from a goHF
// input file and writes the report next to it with the .out extension.
//
//	gohf [-config gohf.yaml] h2.inp
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/keiran-rowell/hartee-fock/internal/basis"
	"github.com/keiran-rowell/hartee-fock/internal/calc"
	"github.com/keiran-rowell/hartee-fock/internal/config"
	"github.com/keiran-rowell/hartee-fock/internal/integrals"
	"github.com/keiran-rowell/hartee-fock/internal/molecule"
	"github.com/keiran-rowell/hartee-fock/internal/report"
	"github.com/keiran-rowell/hartee-fock/internal/scf"
	"github.com/keiran-rowell/hartee-fock/internal/store"
)

var (
	WarningLogger *log.Logger
	InfoLogger    *log.Logger
	ErrorLogger   *log.Logger
	OutputLogger  *log.Logger
)

func initLog(fname string) (io.Closer, error) {
	file, err := os.OpenFile(fname, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	setLoggers(file)
	return file, nil
}

func setLoggers(w io.Writer) {
	InfoLogger = log.New(w, "INFO: ", log.Ldate|log.Ltime)
	WarningLogger = log.New(w, "WARNING: ", log.Ldate|log.Ltime)
	ErrorLogger = log.New(w, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
	OutputLogger = log.New(w, "", 0)
}

func appInfo() {
	OutputLogger.Print("\n              __  __  ____      |\n             /\\ \\/\\ \\/\\  __\\    |" +
		" goHF: restricted Hartree-Fock\n   __     ___\\ \\ \\_\\ \\ \\ \\_/    | s-type Gaussian basis sets\n" +
		" /'_ `\\  / __`\\ \\  _  \\ \\  _\\   |" +
		"\n/\\ \\L\\ \\/\\ \\L\\ \\ \\ \\ \\ \\ \\/   |" +
		"\n\\ \\____ \\ \\____/\\ \\_\\ \\_\\ \\_\\   | HF stands for Himicheskaya Fizika\n \\/___L\\" +
		" \\/___/  \\/_/\\/_/\\/_/   | Have Fun!!!\n   /\\____/                      |\n   \\_/__/                       |\n\n" + "\n")
}

func printOutputDelimiter() {
	OutputLogger.Println(report.Delimiter)
}

func main() {
	cfgPath := flag.String("config", "", "YAML configuration file (default: $"+config.EnvConfigPath+" or ./"+config.ConfigFileName+")")
	workers := flag.Int("workers", 0, "goroutines for integral and Fock builds, overrides config and nprocs")
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatal("No input file.")
	}
	inpFname := flag.Arg(0)
	outFname := strings.TrimSuffix(inpFname, filepath.Ext(inpFname)) + ".out"
	fmt.Println("Output file: ", outFname)

	out, err := initLog(outFname)
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	InfoLogger.Println("Starting goHF...")
	appInfo()
	if err := run(ctx, inpFname, *cfgPath, *workers, os.Stdout); err != nil {
		ErrorLogger.Println(err)
		fmt.Fprintln(os.Stderr, "goHF failed: ", err)
		out.Close()
		os.Exit(1)
	}
	memDebug()
	InfoLogger.Println("Exiting goHF...")
	fmt.Println("goHF done.")
}

func run(ctx context.Context, inpFname, cfgPath string, workers int, stdout io.Writer) error {
	OutputLogger.Println("Input file content:")
	printOutputDelimiter()
	inpData, err := ReadFileLines(inpFname)
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}
	for _, l := range inpData {
		OutputLogger.Println(l)
	}
	printOutputDelimiter()

	inp, err := processInput(inpData, OutputLogger, filepath.Dir(inpFname))
	if err != nil {
		return err
	}
	enuc, err := inp.Mol.NucNuc()
	if err != nil {
		return err
	}
	OutputLogger.Println("Nuclei Repulsion Energy: ", enuc, " a.u.")
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if err := inp.apply(cfg); err != nil {
		return err
	}
	if inp.Nprocs > 0 {
		runtime.GOMAXPROCS(inp.Nprocs)
	}
	if workers > 0 {
		cfg.SCF.Workers = workers
	}
	set, err := cfg.LoadBasis()
	if err != nil {
		return err
	}
	OutputLogger.Println("Basis set: ", set.Name, " (", set.Description, ")")
	var elems []string
	for _, z := range set.ElementList() {
		symb, err := molecule.Symbol(z)
		if err != nil {
			return err
		}
		elems = append(elems, symb)
	}
	OutputLogger.Println("Basis set elements: ", strings.Join(elems, " "))
	if set.Skipped > 0 {
		WarningLogger.Println(set.Skipped, " contractions with l > 0 ignored in basis ", set.Name)
	}

	var db *store.Store
	if cfg.Output.Database != "" {
		if db, err = store.Open(cfg.Output.Database); err != nil {
			return err
		}
		defer db.Close()
	}

	opts := cfg.Options()
	opts.Logger = OutputLogger
	if cfg.Scan.Enabled() {
		return runScan(ctx, inp.Mol, set, cfg, opts, db, stdout)
	}
	return runSingle(ctx, inp.Mol, set, cfg, opts, db, stdout)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, _, err := config.LoadFromPath(path)
		return cfg, err
	}
	cfg, found, err := config.Load()
	if err != nil {
		return nil, err
	}
	if found != "" {
		InfoLogger.Println("Using configuration ", found)
	}
	return cfg, nil
}

func label(mol *molecule.Molecule) string {
	symbols := make([]string, len(mol.Atoms))
	for i, a := range mol.Atoms {
		symbols[i] = a.Symbol
	}
	res := strings.Join(symbols, "-")
	if mol.Charge != 0 {
		res += fmt.Sprintf(" (%+d)", mol.Charge)
	}
	return res
}

func runSingle(ctx context.Context, mol *molecule.Molecule, set *basis.Set, cfg *config.Config, opts scf.Options, db *store.Store, stdout io.Writer) error {
	eng, res, err := calc.Run(mol, set, opts)
	var nc *scf.NonConvergenceError
	if err != nil && !errors.As(err, &nc) {
		return err
	}
	if nc != nil {
		WarningLogger.Println(nc)
	}

	n := eng.NBasis()
	OutputLogger.Println(n, " basis functions, ", eng.ERI().Len(), " two-electron integrals (",
		humanize.Bytes(uint64(8*eng.ERI().Len())), ", ", humanize.Comma(int64(n*(n+1)/2*(n*(n+1)/2+1)/2)), " unique)")
	funcs, err := set.Functions(mol)
	if err != nil {
		return err
	}
	if err := writeReport(OutputLogger.Writer(), funcs, eng, res); err != nil {
		return err
	}
	OutputLogger.Println("Electron count trace(DS): ", res.ElectronCount)
	OutputLogger.Println("Final total energy = ", res.Energy, " a.u.")
	printOutputDelimiter()
	fmt.Fprintln(stdout, "Final total energy = ", res.Energy, " a.u.")

	if cfg.Output.ERIDump != "" {
		if err := report.DumpERI(cfg.Output.ERIDump, eng.ERI()); err != nil {
			return err
		}
		OutputLogger.Println("Two-electron integrals written to ", cfg.Output.ERIDump)
	}
	if db != nil {
		dist := 0.0
		if len(mol.Atoms) == 2 {
			dist = mol.Distance(0, 1)
		}
		run := store.NewRun(label(mol), set.Name, dist, res)
		if err := db.SaveRun(ctx, run); err != nil {
			return err
		}
		OutputLogger.Println("Run stored with id ", run.ID)
	}
	if nc != nil {
		return nc
	}
	return nil
}

// writeReport prints the basis, the one-electron matrices, the density and
// the orbitals of a single-point run.
func writeReport(w io.Writer, funcs []*integrals.ContractedGaussian, eng *scf.Engine, res *scf.Result) error {
	delim := func() error {
		_, err := fmt.Fprintln(w, report.Delimiter)
		return err
	}
	one := eng.OneElectron()
	steps := []func() error{
		delim,
		func() error { return report.WriteBasis(w, funcs) },
		delim,
		func() error { return report.WriteMatrix(w, "Overlap matrix S", one.S) },
		func() error { return report.WriteMatrix(w, "Kinetic energy matrix T", one.T) },
		func() error { return report.WriteMatrix(w, "Nuclear attraction matrix V", one.V) },
		func() error { return report.WriteMatrix(w, "Core Hamiltonian H", eng.Core()) },
		func() error { return report.WriteMatrix(w, "Density matrix D", res.Density) },
		delim,
		func() error { return report.WriteOrbitals(w, res.OrbitalEnergies, res.Coefficients, eng.Occupied()) },
		delim,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func runScan(ctx context.Context, mol *molecule.Molecule, set *basis.Set, cfg *config.Config, opts scf.Options, db *store.Store, stdout io.Writer) error {
	if len(mol.Atoms) != 2 {
		return fmt.Errorf("%w: scan needs a diatomic molecule, got %d atoms", errInput, len(mol.Atoms))
	}
	distances, err := calc.Distances(cfg.Scan.Start, cfg.Scan.Stop, cfg.Scan.Step)
	if err != nil {
		return err
	}
	OutputLogger.Println("Bond scan: ", len(distances), " points from ", cfg.Scan.Start, " to ", cfg.Scan.Stop, " bohr.")
	printOutputDelimiter()

	a, b := mol.Atoms[0].Symbol, mol.Atoms[1].Symbol
	points, err := calc.Scan(ctx, a, b, mol.Charge, distances, set, opts, runtime.GOMAXPROCS(0))
	if err != nil {
		return err
	}
	printOutputDelimiter()

	best := points[0]
	for _, p := range points {
		fmt.Fprintf(stdout, "%10.4f %18.10f\n", p.Distance, p.Energy)
		if p.Converged && (!best.Converged || p.Energy < best.Energy) {
			best = p
		}
	}
	OutputLogger.Println("Lowest energy ", best.Energy, " a.u. at R = ", best.Distance, " bohr")

	if cfg.Output.Plot != "" {
		title := label(mol) + " " + set.Name
		if err := report.PlotScan(points, title, cfg.Output.Plot); err != nil {
			return err
		}
		OutputLogger.Println("Dissociation curve written to ", cfg.Output.Plot)
	}
	if db != nil {
		for _, p := range points {
			run := &store.Run{
				Molecule:   label(mol),
				Basis:      set.Name,
				Distance:   p.Distance,
				Energy:     p.Energy,
				Iterations: p.Iterations,
				Converged:  p.Converged,
			}
			if err := db.SaveRun(ctx, run); err != nil {
				return err
			}
		}
		OutputLogger.Println(len(points), " runs stored in ", cfg.Output.Database)
	}
	return nil
}

func memDebug() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	InfoLogger.Println("Alloc: ", humanize.Bytes(memStats.Alloc),
		", TotalAlloc: ", humanize.Bytes(memStats.TotalAlloc),
		", HeapAlloc: ", humanize.Bytes(memStats.HeapAlloc),
		", HeapSys: ", humanize.Bytes(memStats.HeapSys))
}
