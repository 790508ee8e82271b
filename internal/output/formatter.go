package output

import (
	"fmt"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// RunFormatter renders a single deterministic run.
// Implementations should be pure (no side effects besides deterministic
// formatting).
type RunFormatter interface {
	Name() string
	FormatRun(result *domain.RunResult) ([]byte, error)
}

// EnsembleFormatter renders a Monte Carlo ensemble.
type EnsembleFormatter interface {
	Name() string
	FormatEnsemble(ensemble *domain.Ensemble) ([]byte, error)
}

var runFormatters = []RunFormatter{
	ConsoleFormatter{},
	CSVYearlyExporter{},
	JSONFormatter{},
}

var ensembleFormatters = []EnsembleFormatter{
	ConsoleFormatter{},
	CSVEnsembleExporter{},
	JSONFormatter{},
}

// GetRunFormatter fetches a registered run formatter by name.
func GetRunFormatter(name string) (RunFormatter, error) {
	for _, f := range runFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}

// GetEnsembleFormatter fetches a registered ensemble formatter by name.
func GetEnsembleFormatter(name string) (EnsembleFormatter, error) {
	for _, f := range ensembleFormatters {
		if f.Name() == name {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q", name)
}
