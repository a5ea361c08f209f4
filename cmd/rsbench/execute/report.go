package execute

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

const (
	STATUS_NORMAL           = "NORMAL"
	STATUS_RUNTIME_ERROR    = "RUNTIME_ERROR"
	STATUS_SIGNAL_TERMINATE = "SIGNAL_TERMINATE"
	STATUS_UNKNOWN          = "UNKNOWN"
)

// ExecutionError is returned when the shell exits with a nonzero status that
// is not listed in the ignore map.
type ExecutionError struct {
	Command string
	// Resolved output path, whether supplied or synthesized. A synthesized
	// file is left on disk for the caller to inspect or remove.
	Output   string
	ExitCode int
	Status   string
	Signal   string
}

func (e *ExecutionError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("%s exitcode: %d (%s)", e.Command, e.ExitCode, e.Signal)
	}
	return fmt.Sprintf("%s exitcode: %d", e.Command, e.ExitCode)
}

type exitReport struct {
	Status   string
	ExitCode int
	Signal   string
}

func makeExitReport(state *os.ProcessState) *exitReport {
	report := &exitReport{
		Status:   STATUS_UNKNOWN,
		ExitCode: -1,
	}
	if state == nil {
		return report
	}

	status, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		report.ExitCode = state.ExitCode()
		return report
	}

	switch true {
	case status.Exited():
		report.ExitCode = status.ExitStatus()
		if report.ExitCode == 0 {
			report.Status = STATUS_NORMAL
		} else {
			report.Status = STATUS_RUNTIME_ERROR
		}
	case status.Signaled():
		sig := status.Signal()
		// Same convention as the shell uses for $?
		report.ExitCode = int(sig) + 128
		report.Signal = unix.SignalName(sig)
		report.Status = STATUS_SIGNAL_TERMINATE
	}

	return report
}
