// config.go --  This file is part of goHF project.
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
// Package config reads the YAML run configuration.
//
// Config file locations (priority order):
//  1. $GOHF_CONFIG
//  2. ./gohf.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/keiran-rowell/hartee-fock/internal/basis"
	"github.com/keiran-rowell/hartee-fock/internal/scf"
)

const (
	// EnvConfigPath is the environment variable for an explicit config path
	EnvConfigPath = "GOHF_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "gohf.yaml"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	SCF    SCFConfig    `yaml:"scf"`
	Basis  BasisConfig  `yaml:"basis"`
	Output OutputConfig `yaml:"output"`
	Scan   ScanConfig   `yaml:"scan,omitempty"`
}

type SCFConfig struct {
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	MaxIterations        int     `yaml:"max_iterations"`
	EigenvalueFloor      float64 `yaml:"eigenvalue_floor"`
	Workers              int     `yaml:"workers"`
	DIIS                 bool    `yaml:"diis"`
	DIISSize             int     `yaml:"diis_size"`
}

// BasisConfig names an embedded basis set, or a file when Path is set.
type BasisConfig struct {
	Name string `yaml:"name"`
	Path string `yaml:"path,omitempty"`
}

// OutputConfig lists optional artifacts; empty paths disable them.
type OutputConfig struct {
	Database string `yaml:"database,omitempty"`
	Plot     string `yaml:"plot,omitempty"`
	ERIDump  string `yaml:"eri_dump,omitempty"`
}

// ScanConfig is a bond-distance range in Bohr. A zero step disables the scan.
type ScanConfig struct {
	Start float64 `yaml:"start,omitempty"`
	Stop  float64 `yaml:"stop,omitempty"`
	Step  float64 `yaml:"step,omitempty"`
}

// Enabled reports whether a scan was requested.
func (s ScanConfig) Enabled() bool {
	return s.Step != 0 || s.Start != 0 || s.Stop != 0
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" {
		if fileExists(path) {
			return path
		}
	}
	if fileExists(ConfigFileName) {
		if abs, err := filepath.Abs(ConfigFileName); err == nil {
			return abs
		}
		return ConfigFileName
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func DefaultConfig() *Config {
	return &Config{
		SCF: SCFConfig{
			ConvergenceThreshold: scf.DefaultThreshold,
			MaxIterations:        scf.DefaultMaxIterations,
			EigenvalueFloor:      scf.DefaultEigenFloor,
			DIISSize:             scf.DefaultDIISSize,
		},
		Basis: BasisConfig{Name: "sto-3g"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.SCF.ConvergenceThreshold == 0 {
		c.SCF.ConvergenceThreshold = scf.DefaultThreshold
	}
	if c.SCF.MaxIterations == 0 {
		c.SCF.MaxIterations = scf.DefaultMaxIterations
	}
	if c.SCF.EigenvalueFloor == 0 {
		c.SCF.EigenvalueFloor = scf.DefaultEigenFloor
	}
	if c.SCF.DIISSize == 0 {
		c.SCF.DIISSize = scf.DefaultDIISSize
	}
	if c.Basis.Name == "" && c.Basis.Path == "" {
		c.Basis.Name = "sto-3g"
	}
}

// Validate checks the values that the defaults cannot repair.
func (c *Config) Validate() error {
	switch {
	case c.SCF.ConvergenceThreshold <= 0:
		return fmt.Errorf("%w: scf.convergence_threshold %g", ErrInvalid, c.SCF.ConvergenceThreshold)
	case c.SCF.MaxIterations < 1:
		return fmt.Errorf("%w: scf.max_iterations %d", ErrInvalid, c.SCF.MaxIterations)
	case c.SCF.EigenvalueFloor <= 0:
		return fmt.Errorf("%w: scf.eigenvalue_floor %g", ErrInvalid, c.SCF.EigenvalueFloor)
	case c.SCF.DIISSize < 2:
		return fmt.Errorf("%w: scf.diis_size %d", ErrInvalid, c.SCF.DIISSize)
	case c.SCF.Workers < 0:
		return fmt.Errorf("%w: scf.workers %d", ErrInvalid, c.SCF.Workers)
	}
	if c.Scan.Enabled() {
		s := c.Scan
		if s.Step <= 0 || s.Start <= 0 || s.Stop < s.Start {
			return fmt.Errorf("%w: scan %g..%g step %g", ErrInvalid, s.Start, s.Stop, s.Step)
		}
	}
	return nil
}

// Options converts the scf section into engine options.
func (c *Config) Options() scf.Options {
	return scf.Options{
		Threshold:     c.SCF.ConvergenceThreshold,
		MaxIterations: c.SCF.MaxIterations,
		EigenFloor:    c.SCF.EigenvalueFloor,
		Workers:       c.SCF.Workers,
		DIIS:          c.SCF.DIIS,
		DIISSize:      c.SCF.DIISSize,
	}
}

// LoadBasis reads basis.path if set, otherwise the embedded basis.name.
func (c *Config) LoadBasis() (*basis.Set, error) {
	if c.Basis.Path != "" {
		return basis.LoadFile(c.Basis.Path)
	}
	return basis.Load(c.Basis.Name)
}
