package output

import (
	"encoding/json"

	"github.com/rvbgo/rentvsbuy/internal/domain"
)

// JSONFormatter marshals results for machine consumption.
type JSONFormatter struct{}

func (JSONFormatter) Name() string { return "json" }

func (JSONFormatter) FormatRun(result *domain.RunResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

func (JSONFormatter) FormatEnsemble(ensemble *domain.Ensemble) ([]byte, error) {
	return json.MarshalIndent(ensemble, "", "  ")
}
