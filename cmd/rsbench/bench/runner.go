package bench

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/darkyzhou/rsbench/cmd/rsbench/entities"
	"github.com/darkyzhou/rsbench/cmd/rsbench/execute"
	"github.com/darkyzhou/rsbench/cmd/rsbench/timer"
	"github.com/darkyzhou/rsbench/cmd/rsbench/utils"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Trial is one concrete command to time.
type Trial struct {
	Template string
	Params   execute.Params
	Options  execute.Options
	// Keeps the temporary output file the executor creates when Params has no
	// output entry. By default the runner removes it after timing.
	KeepOutput bool
}

// Strategy builds the trial of one labeled contender for a given input size.
type Strategy struct {
	Label string
	Build func(size int) (*Trial, error)
}

// Observer is notified of every measurement right after it is recorded.
type Observer interface {
	Observe(scenario string, measurement entities.Measurement)
}

// TrialError aborts a sweep. Err is the build, template or execution error.
type TrialError struct {
	Label   string
	Size    int
	Elapsed time.Duration
	Err     error
}

func (e *TrialError) Error() string {
	return fmt.Sprintf("Trial %s with N=%d failed after %s: %v", e.Label, e.Size, e.Elapsed, e.Err)
}

func (e *TrialError) Unwrap() error {
	return e.Err
}

type Runner struct {
	Executor  *execute.Executor
	Logger    logrus.FieldLogger
	Observers []Observer
}

func NewRunner(executor *execute.Executor, logger logrus.FieldLogger) *Runner {
	return &Runner{
		Executor: executor,
		Logger:   logger,
	}
}

// RunSweep times every strategy once per size, sizes in order and strategies
// in order within a size. The first failing trial aborts the sweep and no
// partial result is returned.
func (r *Runner) RunSweep(ctx context.Context, name string, sizes []int, strategies []Strategy) (*entities.SweepResult, error) {
	if len(sizes) == 0 {
		return nil, errors.New("No sizes to sweep")
	}
	if invalid := lo.Filter(sizes, func(size int, _ int) bool { return size <= 0 }); len(invalid) > 0 {
		return nil, fmt.Errorf("Sizes must be positive, got %v", invalid)
	}

	labels := lo.Map(strategies, func(strategy Strategy, _ int) string { return strategy.Label })
	if len(labels) == 0 {
		return nil, errors.New("No strategies to run")
	}
	if duplicates := lo.FindDuplicates(labels); len(duplicates) > 0 {
		return nil, fmt.Errorf("Duplicate strategy labels: %v", duplicates)
	}

	logger := r.logger().WithField("scenario", name)
	result := entities.NewSweepResult(name, sizes, labels)

	for _, size := range sizes {
		for _, strategy := range strategies {
			measurement, err := r.runTrial(ctx, logger, strategy, size)
			if err != nil {
				return nil, err
			}

			result.Record(*measurement)
			for _, observer := range r.Observers {
				observer.Observe(name, *measurement)
			}
		}
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("Error completing the sweep %s: %w", name, err)
	}

	return result, nil
}

func (r *Runner) runTrial(ctx context.Context, logger logrus.FieldLogger, strategy Strategy, size int) (*entities.Measurement, error) {
	trialLogger := logger.WithFields(logrus.Fields{
		"label": strategy.Label,
		"size":  size,
	})

	trial, err := strategy.Build(size)
	if err != nil {
		return nil, &TrialError{
			Label: strategy.Label,
			Size:  size,
			Err:   fmt.Errorf("Error building the command: %w", err),
		}
	}

	var output string
	elapsed, err := timer.Measure(func() error {
		var err error
		output, err = r.Executor.Execute(ctx, trial.Template, trial.Params, trial.Options)
		return err
	})
	if err != nil {
		var execErr *execute.ExecutionError
		if errors.As(err, &execErr) {
			r.cleanupOutput(trialLogger, trial, execErr.Output)
		}
		return nil, &TrialError{
			Label:   strategy.Label,
			Size:    size,
			Elapsed: elapsed,
			Err:     err,
		}
	}

	r.cleanupOutput(trialLogger, trial, output)

	trialLogger.Infof("%s took %.6fs", strategy.Label, elapsed.Seconds())

	return &entities.Measurement{
		Label:   strategy.Label,
		Size:    size,
		Elapsed: elapsed,
		Seconds: elapsed.Seconds(),
	}, nil
}

// cleanupOutput removes the output file the executor synthesized for trial.
// Caller supplied paths are never touched.
func (r *Runner) cleanupOutput(logger logrus.FieldLogger, trial *Trial, output string) {
	if _, supplied := trial.Params[execute.OutputKey]; supplied || trial.KeepOutput {
		return
	}
	if output == "" || !utils.FileExists(output) {
		return
	}
	if err := os.Remove(output); err != nil {
		logger.WithError(err).Warn("Failed to remove the temporary output file")
	}
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger == nil {
		return logrus.StandardLogger()
	}
	return r.Logger
}
