package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/quadlab/internal/quad"
)

type ExportData struct {
	ID        string    `json:"id"`
	Rule      string    `json:"rule"`
	Integrand string    `json:"integrand"`
	Steps     []float64 `json:"steps"`
	Estimates []float64 `json:"estimates"`
	TimesS    []float64 `json:"times_s"`
	Points    []int     `json:"points"`
	Reference float64   `json:"reference,omitempty"`
	HasRef    bool      `json:"has_reference"`
}

func exportData(id string, meta *SweepMetadata, trials []quad.Trial) ExportData {
	result := &quad.Result{Trials: trials}
	data := ExportData{
		ID:        id,
		Rule:      meta.Rule,
		Integrand: meta.Integrand,
		Steps:     result.Steps(),
		Estimates: result.Estimates(),
		TimesS:    result.TimesSeconds(),
		Points:    make([]int, len(trials)),
		Reference: meta.Reference,
		HasRef:    meta.HasRef,
	}
	for i, t := range trials {
		data.Points[i] = t.Points
	}
	return data
}

func ExportJSON(w io.Writer, id string, meta *SweepMetadata, trials []quad.Trial) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData(id, meta, trials))
}

func ExportJSONStdout(id string, meta *SweepMetadata, trials []quad.Trial) error {
	return ExportJSON(os.Stdout, id, meta, trials)
}
