// Package procwatch locates the monitored db-sync process and extracts its
// resource samples. Discovery never caches: the process may restart between
// ticks, so callers re-locate before every extraction.
package procwatch

import (
	"errors"

	"github.com/shirou/gopsutil/v3/process"
)

var (
	ErrNotFound    = errors.New("process not found")
	ErrScan        = errors.New("process scan error")
	ErrUnavailable = errors.New("metrics unavailable")
)

// Target is a located process. It is valid for the tick it was located in;
// the next tick locates again.
type Target struct {
	PID     int32
	Cmdline string

	proc *process.Process
}

// NewTarget builds a target for a known pid.
func NewTarget(pid int32) (*Target, error) {
	proc, err := process.NewProcess(pid)
	if err != nil {
		return nil, ErrNotFound
	}

	cmdline, err := proc.Cmdline()
	if err != nil {
		cmdline = ""
	}

	return &Target{PID: pid, Cmdline: cmdline, proc: proc}, nil
}
