// input.go --  This file is part of goHF project.
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
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/keiran-rowell/hartee-fock/internal/config"
	"github.com/keiran-rowell/hartee-fock/internal/molecule"
)

var errInput = errors.New("input")

// Input is the content of a goHF input file:
//
//	Atoms angstrom
//	H 0.0 0.0 0.0
//	H 0.0 0.0 0.74
//	end
//	Basis
//	6-31g
//	end
//	charge 0
//	nprocs 4
//	diis
//	scan 1.0 3.0 0.1
//
// Atoms may be replaced by "xyz <file>". Coordinates in the Atoms block
// are Angstrom unless the block header says bohr. The Basis block holds
// an embedded basis name or the path of a basis file.
type Input struct {
	Mol    *molecule.Molecule
	Basis  string
	Nprocs int
	DIIS   bool
	Scan   *config.ScanConfig
}

// ReadFileLines returns the lines of a text file.
func ReadFileLines(fname string) ([]string, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var result []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		result = append(result, scanner.Text())
	}
	return result, scanner.Err()
}

func processInput(data []string, out *log.Logger, dir string) (*Input, error) {
	inp := &Input{}
	charge := 0
	for i := 0; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) == 0 || strings.HasPrefix(words[0], "#") {
			continue
		}
		switch strings.ToLower(words[0]) {
		case "atoms":
			end, err := findBlockEnd(i, data, "Atoms")
			if err != nil {
				return nil, err
			}
			out.Print("Parsing input. Atoms block found at lines ", i+1, " -- ", end+1, ".")
			scale := 1 / molecule.ABohr
			if len(words) > 1 {
				switch strings.ToLower(words[1]) {
				case "bohr", "au":
					scale = 1
				case "angstrom", "ang":
				default:
					return nil, fmt.Errorf("%w: line %d: unknown units %q", errInput, i+1, words[1])
				}
			}
			mol, err := addAtoms(data[i+1:end], scale, i+2)
			if err != nil {
				return nil, err
			}
			inp.Mol = mol
			i = end
		case "xyz":
			if len(words) < 2 {
				return nil, fmt.Errorf("%w: line %d: xyz needs a file name", errInput, i+1)
			}
			mol, err := readXYZFile(resolve(dir, words[1]))
			if err != nil {
				return nil, err
			}
			out.Print("Parsing input. Geometry read from ", words[1], ".")
			inp.Mol = mol
		case "basis":
			end, err := findBlockEnd(i, data, "Basis")
			if err != nil {
				return nil, err
			}
			if end != i+2 {
				return nil, fmt.Errorf("%w: line %d: Basis block must hold one line", errInput, i+1)
			}
			inp.Basis = strings.TrimSpace(data[i+1])
			if _, err := os.Stat(resolve(dir, inp.Basis)); err == nil {
				inp.Basis = resolve(dir, inp.Basis)
			}
			out.Print("Parsing input. Basis block found. ", inp.Basis)
			i = end
		case "nprocs":
			n, err := intArg(words, i)
			if err != nil {
				return nil, err
			}
			if n < 1 {
				return nil, fmt.Errorf("%w: line %d: nprocs %d", errInput, i+1, n)
			}
			inp.Nprocs = n
			out.Print("Parsing input. Number of threads set to ", n, ".")
		case "charge":
			n, err := intArg(words, i)
			if err != nil {
				return nil, err
			}
			charge = n
		case "diis":
			inp.DIIS = true
		case "scan":
			if len(words) < 4 {
				return nil, fmt.Errorf("%w: line %d: scan needs start, stop and step", errInput, i+1)
			}
			var v [3]float64
			for k := range v {
				f, err := strconv.ParseFloat(words[k+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %v", errInput, i+1, err)
				}
				v[k] = f
			}
			inp.Scan = &config.ScanConfig{Start: v[0], Stop: v[1], Step: v[2]}
		default:
			return nil, fmt.Errorf("%w: line %d: unknown keyword %q", errInput, i+1, words[0])
		}
	}
	if inp.Mol == nil {
		return nil, fmt.Errorf("%w: no Atoms found", errInput)
	}
	inp.Mol.Charge = charge
	if inp.Basis == "" {
		out.Println("Parsing input. No Basis found. Using configured basis.")
	}
	return inp, nil
}

func findBlockEnd(n int, data []string, bname string) (int, error) {
	for i := n + 1; i < len(data); i++ {
		words := strings.Fields(data[i])
		if len(words) > 0 && strings.ToLower(words[0]) == "end" {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: no end of block %s", errInput, bname)
}

func addAtoms(lines []string, scale float64, first int) (*molecule.Molecule, error) {
	mol := &molecule.Molecule{}
	for k, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		at, err := molecule.ParseAtomLine(line, scale)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", errInput, first+k, err)
		}
		mol.Atoms = append(mol.Atoms, at)
	}
	if len(mol.Atoms) == 0 {
		return nil, fmt.Errorf("%w: empty Atoms block", errInput)
	}
	return mol, nil
}

func readXYZFile(path string) (*molecule.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return molecule.ReadXYZ(f)
}

func intArg(words []string, i int) (int, error) {
	if len(words) < 2 {
		return 0, fmt.Errorf("%w: line %d: %s needs a value", errInput, i+1, words[0])
	}
	n, err := strconv.Atoi(words[1])
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %v", errInput, i+1, err)
	}
	return n, nil
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

// apply merges the input file settings into the configuration.
func (inp *Input) apply(cfg *config.Config) error {
	if inp.Basis != "" {
		if _, err := os.Stat(inp.Basis); err == nil {
			cfg.Basis.Path = inp.Basis
		} else {
			cfg.Basis = config.BasisConfig{Name: inp.Basis}
		}
	}
	if inp.Nprocs > 0 {
		cfg.SCF.Workers = inp.Nprocs
	}
	if inp.DIIS {
		cfg.SCF.DIIS = true
	}
	if inp.Scan != nil {
		cfg.Scan = *inp.Scan
	}
	return cfg.Validate()
}
