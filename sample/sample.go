// Package sample holds the observations collected for a monitored db-sync
// process. Optional readings are pointers: a platform that withholds a value
// yields nil, never zero.
package sample

import "time"

// Memory is one memory observation, sizes in MB.
type Memory struct {
	Key     int64    `json:"key" db:"key"`
	RSS     *float64 `json:"rss,omitempty" db:"rss"`
	VMS     *float64 `json:"vms,omitempty" db:"vms"`
	USS     *float64 `json:"uss,omitempty" db:"uss"`
	PSS     *float64 `json:"pss,omitempty" db:"pss"`
	Swap    *float64 `json:"swap,omitempty" db:"swap"`
	Shared  *float64 `json:"shared,omitempty" db:"shared"`
	Version string   `json:"version" db:"version"`
}

// CPU is one CPU observation. Percent is nil until the extractor has a
// previous reading of the same process to diff against.
type CPU struct {
	Key            int64    `json:"key" db:"key"`
	Percent        *float64 `json:"cpu_percent,omitempty" db:"cpu_percent"`
	UserTime       *float64 `json:"user_time,omitempty" db:"user_time"`
	SystemTime     *float64 `json:"system_time,omitempty" db:"system_time"`
	ChildrenUser   *float64 `json:"children_user,omitempty" db:"children_user"`
	ChildrenSystem *float64 `json:"children_system,omitempty" db:"children_system"`
	IOWait         *float64 `json:"iowait,omitempty" db:"iowait"`
	CtxSwitches    *int64   `json:"ctx_switches,omitempty" db:"ctx_switches"`
	Version        string   `json:"version" db:"version"`
}

// VersionRecord marks which software version was being observed at a point
// in wall-clock time.
type VersionRecord struct {
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Version   string    `json:"version" db:"version"`
}

// Point is one plotted observation of an assembled series.
type Point struct {
	Key   int64   `json:"key"`
	Value float64 `json:"value"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
