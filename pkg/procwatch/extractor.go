package procwatch

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/syncscope/syncscope/sample"
)

const (
	bytesPerMB = 1024 * 1024
	kbPerMB    = 1024
)

// Extractor builds memory and CPU samples for a located target. CPU percent
// is the busy-time delta against the previous observation of the same pid,
// so the first reading after startup or a process restart carries none.
type Extractor struct {
	mu       sync.Mutex
	lastPID  int32
	lastBusy float64
	lastSeen time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Memory extracts a memory sample in MB. RSS and VMS are always present on a
// success; the smaps-derived readings (uss, pss, swap) and shared need the
// permissions the kernel demands for /proc/<pid>/smaps and stay nil without
// them.
func (e *Extractor) Memory(ctx context.Context, t *Target) (sample.Memory, error) {
	info, err := t.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return sample.Memory{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	m := sample.Memory{
		RSS: sample.Ptr(float64(info.RSS) / bytesPerMB),
		VMS: sample.Ptr(float64(info.VMS) / bytesPerMB),
	}

	if ex, err := t.proc.MemoryInfoExWithContext(ctx); err == nil {
		m.Shared = sample.Ptr(float64(ex.Shared) / bytesPerMB)
	}

	// Grouped smaps values are reported in kB.
	if maps, err := t.proc.MemoryMapsWithContext(ctx, true); err == nil && maps != nil && len(*maps) > 0 {
		grouped := (*maps)[0]
		m.USS = sample.Ptr(float64(grouped.PrivateClean+grouped.PrivateDirty) / kbPerMB)
		m.PSS = sample.Ptr(float64(grouped.Pss) / kbPerMB)
		m.Swap = sample.Ptr(float64(grouped.Swap) / kbPerMB)
	}

	return m, nil
}

// CPU extracts a CPU sample. Cumulative times are seconds since process
// start; Percent covers the interval since the previous observation and can
// exceed 100 on multicore hosts.
func (e *Extractor) CPU(ctx context.Context, t *Target) (sample.CPU, error) {
	now := time.Now()

	times, err := t.proc.TimesWithContext(ctx)
	if err != nil {
		return sample.CPU{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	c := sample.CPU{
		UserTime:   sample.Ptr(times.User),
		SystemTime: sample.Ptr(times.System),
		IOWait:     sample.Ptr(times.Iowait),
	}

	if cu, cs, ok := readChildrenTimes(t.PID); ok {
		c.ChildrenUser = sample.Ptr(cu)
		c.ChildrenSystem = sample.Ptr(cs)
	}

	if switches, err := t.proc.NumCtxSwitchesWithContext(ctx); err == nil {
		c.CtxSwitches = sample.Ptr(switches.Voluntary + switches.Involuntary)
	}

	busy := times.User + times.System

	e.mu.Lock()
	if e.lastPID == t.PID && !e.lastSeen.IsZero() {
		delta := busy - e.lastBusy
		// Pid reuse can run the counter backwards; such a tick stays nil.
		if elapsed := now.Sub(e.lastSeen).Seconds(); elapsed > 0 && delta >= 0 {
			c.Percent = sample.Ptr(delta / elapsed * 100)
		}
	}
	e.lastPID = t.PID
	e.lastBusy = busy
	e.lastSeen = now
	e.mu.Unlock()

	return c, nil
}

// Prime seeds the percent baseline so the first loop tick can report one.
func (e *Extractor) Prime(ctx context.Context, t *Target) error {
	times, err := t.proc.TimesWithContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	e.mu.Lock()
	e.lastPID = t.PID
	e.lastBusy = times.User + times.System
	e.lastSeen = time.Now()
	e.mu.Unlock()

	return nil
}

// readChildrenTimes pulls cutime and cstime out of /proc/<pid>/stat. The
// times of reaped children are not exposed by the portable process API.
func readChildrenTimes(pid int32) (cutime, cstime float64, ok bool) {
	if runtime.GOOS != "linux" {
		return 0, 0, false
	}

	b, err := os.ReadFile(fmt.Sprintf("/proc/%d/stat", pid))
	if err != nil {
		return 0, 0, false
	}
	s := string(b)
	rp := strings.LastIndexByte(s, ')')
	if rp < 0 {
		return 0, 0, false
	}
	fields := strings.Fields(s[rp+2:])
	if len(fields) < 15 {
		return 0, 0, false
	}

	const hz = 100.0
	cu, _ := strconv.ParseUint(fields[13], 10, 64)
	cs, _ := strconv.ParseUint(fields[14], 10, 64)

	return float64(cu) / hz, float64(cs) / hz, true
}
