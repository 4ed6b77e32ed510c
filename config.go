package sparse

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// PartitionMode selects how Factor addresses the columns it updates.
type PartitionMode int

const (
	PartitionDefault PartitionMode = iota // use the configured mode
	PartitionDirect
	PartitionIndirect
	PartitionAuto
)

var partitionNames = map[PartitionMode]string{
	PartitionDefault:  "default",
	PartitionDirect:   "direct",
	PartitionIndirect: "indirect",
	PartitionAuto:     "auto",
}

func (p PartitionMode) String() string {
	if name, ok := partitionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PartitionMode(%d)", int(p))
}

func (p PartitionMode) MarshalText() ([]byte, error) {
	name, ok := partitionNames[p]
	if !ok {
		return nil, fmt.Errorf("%w: unknown partition mode %d", ErrInvalidConfiguration, int(p))
	}
	return []byte(name), nil
}

func (p *PartitionMode) UnmarshalText(text []byte) error {
	for mode, name := range partitionNames {
		if strings.EqualFold(string(text), name) {
			*p = mode
			return nil
		}
	}
	return fmt.Errorf("%w: unknown partition mode %q", ErrInvalidConfiguration, text)
}

// Configuration holds the pivoting and factoring options of a solver.
type Configuration struct {
	AbsolutePivotThreshold float64 `toml:"absolute_pivot_threshold"`
	RelativePivotThreshold float64 `toml:"relative_pivot_threshold"`

	// SearchReduction excludes that many trailing indices from the pivot
	// search. They are eliminated last, on the diagonal they already have.
	SearchReduction int `toml:"search_reduction"`

	// Degeneracy leaves that many trailing unknowns out of the factorization.
	// Solve takes their values from the solution vector it is given.
	Degeneracy int `toml:"degeneracy"`

	TiesMultiplier   int           `toml:"ties_multiplier"`
	DiagonalPivoting bool          `toml:"diagonal_pivoting"`
	Partition        PartitionMode `toml:"partition"`

	// Complex makes the solver factor complex values. Only the sparse solver
	// supports it.
	Complex bool `toml:"complex"`

	// Annotate is 0 for silence, 1 to log small pivots and 2 to log every
	// elimination step.
	Annotate     int `toml:"annotate"`
	PrinterWidth int `toml:"printer_width"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		AbsolutePivotThreshold: 1e-13,
		RelativePivotThreshold: 1e-3,
		TiesMultiplier:         5,
		DiagonalPivoting:       true,
		Partition:              PartitionAuto,
		PrinterWidth:           80,
	}
}

// LoadConfiguration reads a TOML file over the defaults.
func LoadConfiguration(path string) (Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Configuration{}, err
	}
	config, err := ParseConfiguration(string(data))
	if err != nil {
		return Configuration{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// ParseConfiguration decodes TOML text over the defaults. Unknown keys are
// rejected.
func ParseConfiguration(data string) (Configuration, error) {
	config := DefaultConfiguration()
	md, err := toml.Decode(data, &config)
	if err != nil {
		return Configuration{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Configuration{}, fmt.Errorf("%w: unknown key %q", ErrInvalidConfiguration, undecoded[0].String())
	}
	if err := config.Validate(); err != nil {
		return Configuration{}, err
	}
	return config, nil
}

func (c Configuration) Validate() error {
	switch {
	case c.RelativePivotThreshold <= 0 || c.RelativePivotThreshold > 1:
		return fmt.Errorf("%w: relative pivot threshold %g outside (0, 1]", ErrInvalidConfiguration, c.RelativePivotThreshold)
	case c.AbsolutePivotThreshold < 0:
		return fmt.Errorf("%w: negative absolute pivot threshold %g", ErrInvalidConfiguration, c.AbsolutePivotThreshold)
	case c.SearchReduction < 0:
		return fmt.Errorf("%w: negative search reduction %d", ErrInvalidConfiguration, c.SearchReduction)
	case c.Degeneracy < 0:
		return fmt.Errorf("%w: negative degeneracy %d", ErrInvalidConfiguration, c.Degeneracy)
	case c.TiesMultiplier < 1:
		return fmt.Errorf("%w: ties multiplier %d below 1", ErrInvalidConfiguration, c.TiesMultiplier)
	case c.Annotate < 0 || c.Annotate > 2:
		return fmt.Errorf("%w: annotate level %d", ErrInvalidConfiguration, c.Annotate)
	}
	if _, ok := partitionNames[c.Partition]; !ok || c.Partition == PartitionDefault {
		return fmt.Errorf("%w: partition mode %s", ErrInvalidConfiguration, c.Partition)
	}
	return nil
}
