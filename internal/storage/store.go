package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/quadlab/internal/quad"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SweepMetadata struct {
	ID        string    `json:"id"`
	Rule      string    `json:"rule"`
	Integrand string    `json:"integrand"`
	Timestamp time.Time `json:"timestamp"`
	Start     float64   `json:"start"`
	Stop      float64   `json:"stop"`
	Step      float64   `json:"step"`
	Halvings  int       `json:"halvings"`
	Reference float64   `json:"reference,omitempty"`
	HasRef    bool      `json:"has_reference"`
}

func (s *Store) Save(cfg quad.Config, result *quad.Result) (string, error) {
	sweepID := fmt.Sprintf("%s_%d", result.Rule, time.Now().Unix())
	sweepDir := filepath.Join(s.baseDir, sweepID)

	if err := os.MkdirAll(sweepDir, 0755); err != nil {
		return "", err
	}

	meta := SweepMetadata{
		ID:        sweepID,
		Rule:      result.Rule,
		Integrand: result.Integrand,
		Timestamp: time.Now(),
		Start:     cfg.Start,
		Stop:      cfg.Stop,
		Step:      cfg.Step,
		Halvings:  cfg.Halvings,
		Reference: result.Reference,
		HasRef:    result.HasRef,
	}

	metaPath := filepath.Join(sweepDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(sweepDir, "trials.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"step", "points", "estimate", "time_s"}); err != nil {
		return "", err
	}

	for _, trial := range result.Trials {
		row := []string{
			strconv.FormatFloat(trial.Step, 'g', -1, 64),
			strconv.Itoa(trial.Points),
			strconv.FormatFloat(trial.Estimate, 'f', 6, 64),
			strconv.FormatFloat(trial.Elapsed.Seconds(), 'f', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return sweepID, nil
}

func (s *Store) List() ([]SweepMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SweepMetadata{}, nil
		}
		return nil, err
	}

	sweeps := make([]SweepMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta SweepMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		sweeps = append(sweeps, meta)
	}

	return sweeps, nil
}

func (s *Store) Load(sweepID string) (*SweepMetadata, error) {
	metaPath := filepath.Join(s.baseDir, sweepID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta SweepMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadTrials(sweepID string) ([]quad.Trial, error) {
	csvPath := filepath.Join(s.baseDir, sweepID, "trials.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []quad.Trial{}, nil
	}

	trials := make([]quad.Trial, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}

		step, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		points, err := strconv.Atoi(record[1])
		if err != nil {
			continue
		}
		estimate, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		seconds, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}

		trials = append(trials, quad.Trial{
			Step:     step,
			Points:   points,
			Estimate: estimate,
			Elapsed:  time.Duration(seconds * float64(time.Second)),
		})
	}

	return trials, nil
}
