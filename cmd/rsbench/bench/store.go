package bench

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Store writes sweep artifacts under OutputDir.
type Store struct {
	OutputDir string
}

func (s *Store) SaveJSON(result *entities.SweepResult, name string) (string, error) {
	path, err := utils.ResolveArtifactPath(s.OutputDir, name)
	if err != nil {
		return "", err
	}

	file, err := utils.PrepareOutFile(path)
	if err != nil {
		return "", fmt.Errorf("Error preparing the result file %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return "", fmt.Errorf("Error marshalling the sweep result: %w", err)
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("Error closing the result file %s: %w", path, err)
	}
	return path, nil
}

func (s *Store) LoadJSON(name string) (*entities.SweepResult, error) {
	path, err := utils.ResolveArtifactPath(s.OutputDir, name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Error reading the result file %s: %w", path, err)
	}

	var result entities.SweepResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("Error unmarshalling the result file %s: %w", path, err)
	}
	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("Invalid result file %s: %w", path, err)
	}

	return &result, nil
}

func (s *Store) SaveMetrics(gatherer prometheus.Gatherer, name string) (string, error) {
	path, err := utils.ResolveArtifactPath(s.OutputDir, name)
	if err != nil {
		return "", err
	}

	if err := prometheus.WriteToTextfile(path, gatherer); err != nil {
		return "", fmt.Errorf("Error writing the metrics file %s: %w", path, err)
	}
	return path, nil
}
