package bench

import (
	"context"
	"os/exec"
	"testing"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/execute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrategyFor(t *testing.T) {
	tests := []struct {
		kind            string
		sampler         string
		discard         bool
		label           string
		template        string
		disablePipefail bool
	}{
		{
			kind:     entities.STRATEGY_SAMPLER,
			sampler:  "rsampling",
			label:    "rsampling",
			template: "seq {n} | {program} -n {k}",
		},
		{
			kind:            entities.STRATEGY_SORT,
			sampler:         "rsampling",
			label:           "sort",
			template:        "seq {n} | sort -R | head -n {k}",
			disablePipefail: true,
		},
		{
			kind:            entities.STRATEGY_SHUF,
			sampler:         "rsampling",
			discard:         true,
			label:           "shuf",
			template:        "seq {n} | shuf -n {k} > /dev/null",
			disablePipefail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			strategy, err := StrategyFor(tt.kind, tt.sampler, 16, tt.discard)
			require.NoError(t, err)
			assert.Equal(t, tt.label, strategy.Label)

			trial, err := strategy.Build(1000)
			require.NoError(t, err)
			assert.Equal(t, tt.template, trial.Template)
			assert.Equal(t, tt.disablePipefail, trial.Options.DisablePipefail)
			assert.Equal(t, 1000, trial.Params["n"])
			assert.Equal(t, 16, trial.Params["k"])

			names, err := execute.Placeholders(trial.Template)
			require.NoError(t, err)
			for _, name := range names {
				assert.Contains(t, trial.Params, name)
			}
		})
	}
}

func TestStrategyForSamplerPath(t *testing.T) {
	strategy, err := StrategyFor(entities.STRATEGY_SAMPLER, "rsampling", 16, false)
	require.NoError(t, err)
	trial, err := strategy.Build(10)
	require.NoError(t, err)
	assert.Equal(t, "./rsampling", trial.Params["program"])

	strategy, err = StrategyFor(entities.STRATEGY_SAMPLER, "/usr/local/bin/rsampling", 16, false)
	require.NoError(t, err)
	trial, err = strategy.Build(10)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/rsampling", trial.Params["program"])

	strategy, err = StrategyFor(entities.STRATEGY_SAMPLER, "rsampling; reboot", 16, false)
	require.NoError(t, err)
	_, err = strategy.Build(10)
	assert.ErrorContains(t, err, "shellword")
}

func TestStrategyForUnknownKind(t *testing.T) {
	_, err := StrategyFor("quicksort", "rsampling", 16, false)
	assert.ErrorContains(t, err, "Unknown strategy")
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := DefaultConfig(DefaultSampler)
	require.NoError(t, execute.NewValidator().Struct(config))

	require.Len(t, config.Scenarios, 3)
	assert.Equal(t, []string{"bm1", "bm2", "bm3"}, []string{config.Scenarios[0].Name, config.Scenarios[1].Name, config.Scenarios[2].Name})
	assert.True(t, config.Scenarios[2].Discard)
	assert.Equal(t, 100000, config.Scenarios[2].SampleSize)

	strategies, err := StrategiesFor(config.Scenarios[0], config.Sampler)
	require.NoError(t, err)
	assert.Len(t, strategies, 3)
}

func TestResolveTitle(t *testing.T) {
	scenario := DefaultScenarios()[0]

	title, err := ResolveTitle(scenario, "rsampling")
	require.NoError(t, err)
	assert.Equal(t, "Random subset (16 from N) via sort -R, shuf and rsampling", title)

	title, err = ResolveTitle(&entities.ScenarioConfig{Name: "custom"}, "rsampling")
	require.NoError(t, err)
	assert.Equal(t, "custom", title)
}

func TestArtifactName(t *testing.T) {
	scenario := DefaultScenarios()[1]
	assert.Equal(t, "bm2-rsampling", ArtifactName(scenario, "rsampling"))
	assert.Equal(t, "bm2-rsampling", ArtifactName(scenario, "./bin/rsampling"))
	assert.Equal(t, "bm2-bin", ArtifactName(scenario, "bin/"))
}

func TestStrategyForRejectsBaselineSamplerName(t *testing.T) {
	for _, sampler := range []string{"sort", "shuf"} {
		_, err := StrategyFor(entities.STRATEGY_SAMPLER, sampler, 16, false)
		assert.ErrorContains(t, err, "collides")
	}

	strategy, err := StrategyFor(entities.STRATEGY_SAMPLER, "./shuf", 16, false)
	require.NoError(t, err)
	assert.Equal(t, "./shuf", strategy.Label)
}

func TestExternalStrategiesSweep(t *testing.T) {
	for _, tool := range []string{"seq", "sort", "head", "shuf"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s is not available", tool)
		}
	}
	runner := newTestRunner(t)

	scenario := &entities.ScenarioConfig{
		Name:       "external",
		SampleSize: 4,
		Sizes:      []int{10, 100},
		Strategies: []string{entities.STRATEGY_SORT, entities.STRATEGY_SHUF},
		Discard:    true,
	}
	strategies, err := StrategiesFor(scenario, DefaultSampler)
	require.NoError(t, err)

	result, err := runner.RunSweep(context.Background(), scenario.Name, scenario.Sizes, strategies)
	require.NoError(t, err)
	assert.Len(t, result.Series["sort"], 2)
	assert.Len(t, result.Series["shuf"], 2)
}
