package bench

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/execute"
	"github.com/samber/lo"
)

const (
	DefaultSampler   = "rsampling"
	DefaultOutputDir = "images"
)

// SampleParams is the parameter schema shared by all strategies. Program is
// only referenced by the sampler pipeline.
type SampleParams struct {
	N       int    `mapstructure:"n" validate:"gt=0"`
	K       int    `mapstructure:"k" validate:"gt=0"`
	Program string `mapstructure:"program,omitempty" validate:"omitempty,shellword"`
}

func DefaultScenarios() []*entities.ScenarioConfig {
	large := []int{1000000, 10000000, 50000000, 100000000}

	return []*entities.ScenarioConfig{
		{
			Name:       "bm1",
			Title:      "Random subset ({k} from N) via sort -R, shuf and {sampler}",
			SampleSize: 16,
			Sizes:      []int{10, 100, 1000, 10000, 20000, 30000, 40000, 50000},
			Strategies: []string{entities.STRATEGY_SAMPLER, entities.STRATEGY_SORT, entities.STRATEGY_SHUF},
		},
		{
			Name:       "bm2",
			Title:      "Random subset ({k} from N) via shuf and {sampler}",
			SampleSize: 16,
			Sizes:      large,
			Strategies: []string{entities.STRATEGY_SAMPLER, entities.STRATEGY_SHUF},
		},
		{
			Name:       "bm3",
			Title:      "Random subset ({k} from N) via shuf and {sampler}",
			SampleSize: 100000,
			Sizes:      large,
			Strategies: []string{entities.STRATEGY_SAMPLER, entities.STRATEGY_SHUF},
			Discard:    true,
		},
	}
}

func DefaultConfig(sampler string) *entities.RsbenchConfig {
	return &entities.RsbenchConfig{
		Sampler:   sampler,
		Shell:     execute.DefaultShell,
		OutputDir: DefaultOutputDir,
		Scenarios: DefaultScenarios(),
	}
}

// StrategyFor returns the strategy of the given kind drawing k items. The
// external utilities run without pipefail because head and shuf may close the
// pipe before seq is done writing.
func StrategyFor(kind string, sampler string, k int, discard bool) (Strategy, error) {
	var (
		label    string
		program  string
		pipeline *execute.Pipeline
		options  execute.Options
	)

	switch kind {
	case entities.STRATEGY_SAMPLER:
		if lo.Contains([]string{entities.STRATEGY_SORT, entities.STRATEGY_SHUF}, sampler) {
			return Strategy{}, fmt.Errorf("Sampler %s collides with a baseline label", sampler)
		}
		label = sampler
		program = lo.Ternary(strings.Contains(sampler, "/"), sampler, "./"+sampler)
		pipeline = execute.Command("seq", "{n}").Pipe("{program}", "-n", "{k}")
	case entities.STRATEGY_SORT:
		label = entities.STRATEGY_SORT
		pipeline = execute.Command("seq", "{n}").Pipe("sort", "-R").Pipe("head", "-n", "{k}")
		options.DisablePipefail = true
	case entities.STRATEGY_SHUF:
		label = entities.STRATEGY_SHUF
		pipeline = execute.Command("seq", "{n}").Pipe("shuf", "-n", "{k}")
		options.DisablePipefail = true
	default:
		return Strategy{}, fmt.Errorf("Unknown strategy: %s", kind)
	}

	if discard {
		pipeline.RedirectTo("/dev/null")
	}

	template, err := pipeline.Template()
	if err != nil {
		return Strategy{}, fmt.Errorf("Error rendering the %s pipeline: %w", kind, err)
	}

	return Strategy{
		Label: label,
		Build: func(size int) (*Trial, error) {
			params, err := execute.ParamsFrom(SampleParams{N: size, K: k, Program: program})
			if err != nil {
				return nil, err
			}
			return &Trial{
				Template: template,
				Params:   params,
				Options:  options,
			}, nil
		},
	}, nil
}

func StrategiesFor(scenario *entities.ScenarioConfig, sampler string) ([]Strategy, error) {
	strategies := make([]Strategy, 0, len(scenario.Strategies))
	for _, kind := range scenario.Strategies {
		strategy, err := StrategyFor(kind, sampler, scenario.SampleSize, scenario.Discard)
		if err != nil {
			return nil, fmt.Errorf("Error preparing scenario %s: %w", scenario.Name, err)
		}
		strategies = append(strategies, strategy)
	}
	return strategies, nil
}

// ResolveTitle fills {sampler} and {k} in the chart title of a scenario.
func ResolveTitle(scenario *entities.ScenarioConfig, sampler string) (string, error) {
	title := lo.Ternary(scenario.Title != "", scenario.Title, scenario.Name)
	return execute.Substitute(title, execute.Params{
		"sampler": sampler,
		"k":       scenario.SampleSize,
	})
}

// ArtifactName is the file name stem shared by the chart and the data of a
// scenario, e.g. bm1-rsampling.
func ArtifactName(scenario *entities.ScenarioConfig, sampler string) string {
	return fmt.Sprintf("%s-%s", scenario.Name, filepath.Base(sampler))
}
