package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/darkyzhou/rsbench/cmd/rsbench/bench"
	"github.com/darkyzhou/rsbench/cmd/rsbench/chart"
	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/execute"
	"github.com/darkyzhou/rsbench/cmd/rsbench/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if os.Getenv("RSBENCH_DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func newRootCommand(logger logrus.FieldLogger) *cobra.Command {
	return &cobra.Command{
		Use:           "rsbench [sampler]",
		Short:         "Compare sort -R, shuf and a reservoir sampler on growing inputs",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sampler string
			if len(args) > 0 {
				sampler = args[0]
			}

			config, err := loadConfig(os.Getenv("RSBENCH_FILE"), sampler)
			if err != nil {
				return err
			}

			return run(cmd.Context(), logger, config)
		},
	}
}

func run(ctx context.Context, logger logrus.FieldLogger, config *entities.RsbenchConfig) error {
	executor := execute.NewExecutor(logger)
	executor.Shell = config.Shell
	executor.Stdout = os.Stdout
	executor.Stderr = os.Stderr

	recorder := bench.NewMetricsRecorder()
	runner := bench.NewRunner(executor, logger)
	runner.Observers = append(runner.Observers, recorder)

	var (
		renderer chart.Renderer = chart.NewBarChart(config.OutputDir)
		store                   = &bench.Store{OutputDir: config.OutputDir}
	)

	for _, scenario := range config.Scenarios {
		strategies, err := bench.StrategiesFor(scenario, config.Sampler)
		if err != nil {
			return err
		}

		result, err := runner.RunSweep(ctx, scenario.Name, scenario.Sizes, strategies)
		if err != nil {
			return fmt.Errorf("Error running scenario %s: %w", scenario.Name, err)
		}

		title, err := bench.ResolveTitle(scenario, config.Sampler)
		if err != nil {
			return fmt.Errorf("Error resolving the title of scenario %s: %w", scenario.Name, err)
		}

		name := bench.ArtifactName(scenario, config.Sampler)
		chartPath, err := renderer.Render(result, chart.Options{
			Title:    title,
			XLabel:   "N",
			YLabel:   "time (s)",
			Filename: name + ".png",
		})
		if err != nil {
			return fmt.Errorf("Error rendering scenario %s: %w", scenario.Name, err)
		}

		dataPath, err := store.SaveJSON(result, name+".json")
		if err != nil {
			return fmt.Errorf("Error saving scenario %s: %w", scenario.Name, err)
		}

		logger.WithFields(logrus.Fields{
			"scenario": scenario.Name,
			"chart":    chartPath,
			"data":     dataPath,
		}).Info("Scenario finished")
	}

	metricsName := bench.ArtifactName(&entities.ScenarioConfig{Name: "rsbench"}, config.Sampler) + ".prom"
	metricsPath, err := store.SaveMetrics(recorder.Registry, metricsName)
	if err != nil {
		return err
	}
	logger.WithField("metrics", metricsPath).Info("Benchmark finished")

	return nil
}

func main() {
	logger := newLogger()
	entry := logger.WithField("run", utils.RsbenchInstanceId)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		entry.Warn("Killing the running trial due to rsbench shutting down")
		cancel()
	}()

	if err := newRootCommand(entry).ExecuteContext(ctx); err != nil {
		entry.WithError(err).Fatal("Error running the benchmark")
	}
}
