package procwatch

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// Locator finds the monitored process by command-line substring.
type Locator struct {
	needle string
}

func NewLocator(needle string) *Locator {
	return &Locator{needle: needle}
}

// Locate scans the process table and returns the first process whose command
// line contains the needle. Processes that vanish mid-scan are skipped, as is
// the locator's own process, whose arguments may carry the needle. No match
// is ErrNotFound, an expected state while the monitored process is down.
func (l *Locator) Locate(ctx context.Context) (*Target, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScan, err)
	}

	self := int32(os.Getpid())
	for _, p := range procs {
		if p.Pid == self {
			continue
		}

		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil || cmdline == "" {
			continue
		}

		if strings.Contains(cmdline, l.needle) {
			return &Target{PID: p.Pid, Cmdline: cmdline, proc: p}, nil
		}
	}

	return nil, ErrNotFound
}
