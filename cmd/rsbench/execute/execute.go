package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/darkyzhou/rsbench/cmd/rsbench/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

const (
	DefaultShell = "/bin/bash"

	// OutputKey is filled with a fresh temporary file path when the caller
	// does not supply it.
	OutputKey = "output"
)

// Params maps placeholder names to values. Values are stringified with fmt.
type Params map[string]interface{}

type Options struct {
	// Skips collapsing whitespace runs into single spaces.
	PreserveWhitespace bool
	// Runs the command as-is, so only the exit status of the last pipeline
	// stage is observed.
	DisablePipefail bool
	// Nonzero exit codes that count as success, with the reason to log.
	IgnoreMap map[int]string
	// Overrides the executor's shell for this call.
	Shell string
}

type Executor struct {
	Logger  logrus.FieldLogger
	Shell   string
	TempDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

func NewExecutor(logger logrus.FieldLogger) *Executor {
	return &Executor{
		Logger: logger,
		Shell:  DefaultShell,
	}
}

// Execute fills template with params, runs it through the shell and returns
// the value of the output parameter.
func (e *Executor) Execute(ctx context.Context, template string, params Params, opts Options) (string, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return "", err
	}

	// Report missing placeholders before anything touches the disk
	for _, s := range segments {
		if _, ok := params[s.text]; s.placeholder && !ok && s.text != OutputKey {
			return "", &TemplateError{Template: template, Key: s.text}
		}
	}

	resolved := make(Params, len(params)+1)
	for key, value := range params {
		resolved[key] = value
	}
	_, supplied := resolved[OutputKey]
	if !supplied {
		path, err := utils.CreateTempOutput(e.TempDir)
		if err != nil {
			return "", err
		}
		resolved[OutputKey] = path
	}
	output := fmt.Sprint(resolved[OutputKey])

	// The caller never sees the path on these branches, so a synthesized file
	// is ours to remove
	discard := func() {
		if !supplied {
			e.removeOutput(output)
		}
	}

	command, err := render(template, segments, resolved)
	if err != nil {
		discard()
		return "", err
	}
	if !opts.PreserveWhitespace {
		command = normalizeWhitespace(command)
	}
	if !opts.DisablePipefail {
		command = fmt.Sprintf("(set -o pipefail && %s)", command)
	}

	shell := e.resolveShell(opts)
	logger := e.logger()
	logger.WithField("shell", shell).Debug(command)

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	// Pipeline stages share the shell's process group, so cancellation takes
	// them down together with the shell
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return unix.Kill(-cmd.Process.Pid, unix.SIGKILL)
	}

	err = cmd.Run()
	if err == nil {
		return output, nil
	}

	if ctx.Err() != nil {
		discard()
		return "", fmt.Errorf("Cancelled while executing the command: %w", ctx.Err())
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		discard()
		return "", fmt.Errorf("Error starting the shell %s: %w", shell, err)
	}

	report := makeExitReport(exitErr.ProcessState)
	if reason, ok := opts.IgnoreMap[report.ExitCode]; ok {
		logger.WithField("exit_code", report.ExitCode).Infof("Ignoring error via ignore map: %s", reason)
		return output, nil
	}

	logger.WithFields(logrus.Fields{
		"exit_code": report.ExitCode,
		"status":    report.Status,
	}).Errorf("%s: %d", command, report.ExitCode)

	return "", &ExecutionError{
		Command:  command,
		Output:   output,
		ExitCode: report.ExitCode,
		Status:   report.Status,
		Signal:   report.Signal,
	}
}

func (e *Executor) resolveShell(opts Options) string {
	if opts.Shell != "" {
		return opts.Shell
	}
	if e.Shell != "" {
		return e.Shell
	}
	return DefaultShell
}

func (e *Executor) removeOutput(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		e.logger().WithError(err).Warnf("Failed to remove the temporary output file %s", path)
	}
}

func (e *Executor) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return logrus.StandardLogger()
	}
	return e.Logger
}
