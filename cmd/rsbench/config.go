package main

import (
	"fmt"
	"os"

	"github.com/darkyzhou/rsbench/cmd/rsbench/bench"
	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/execute"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// loadConfig builds the run configuration from the optional run file, falling
// back to the built-in scenarios. A non-empty sampler overrides the file.
func loadConfig(runFile string, sampler string) (*entities.RsbenchConfig, error) {
	config := bench.DefaultConfig(bench.DefaultSampler)

	if runFile != "" {
		data, err := os.ReadFile(runFile)
		if err != nil {
			return nil, fmt.Errorf("Error reading the run file %s: %w", runFile, err)
		}

		var payload map[string]interface{}
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("Error unmarshalling the run file: %w", err)
		}

		// Keys missing from the file keep their defaults
		config.Scenarios = nil
		if err := mapstructure.Decode(payload, config); err != nil {
			return nil, fmt.Errorf("Error decoding the run file: %w", err)
		}
		if len(config.Scenarios) == 0 {
			config.Scenarios = bench.DefaultScenarios()
		}
	}

	if sampler != "" {
		config.Sampler = sampler
	}

	if err := execute.NewValidator().Struct(config); err != nil {
		return nil, fmt.Errorf("Invalid config: %w", err)
	}

	return config, nil
}
