// Package scheduler talks to the Slurm command line tools. Every call runs
// exactly one external command and returns once it has exited.
package scheduler

import "time"

// State is the scheduler's job state string. Only the two states the menu
// reacts to are named; anything else squeue reports is kept verbatim.
type State string

const (
	StateRunning State = "RUNNING"
	StatePending State = "PENDING"
)

func (s State) IsRunning() bool {
	return s == StateRunning || s == "R"
}

func (s State) IsPending() bool {
	return s == StatePending || s == "PD"
}

// Job is one row of the listing command at fetch time. Times and memory are
// kept as the scheduler formats them.
type Job struct {
	ID       string `json:"job_id" yaml:"job_id"`
	Owner    string `json:"owner" yaml:"owner"`
	State    State  `json:"state" yaml:"state"`
	TimeUsed string `json:"time_used" yaml:"time_used"`
	TimeLeft string `json:"time_left" yaml:"time_left"`
	Nodes    int    `json:"nodes" yaml:"nodes"`
	Memory   string `json:"memory" yaml:"memory"`
	CPUs     int    `json:"cpus" yaml:"cpus"`
}

// IDSet is the set of job ids of one snapshot.
type IDSet map[string]struct{}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Snapshot is the full result of one listing call. It replaces the previous
// snapshot wholesale.
type Snapshot struct {
	Jobs      []Job         `json:"jobs" yaml:"jobs"`
	Skipped   []*ParseError `json:"-" yaml:"-"`
	FetchedAt time.Time     `json:"fetched_at" yaml:"fetched_at"`
}

func (s Snapshot) IDs() IDSet {
	ids := make(IDSet, len(s.Jobs))
	for _, job := range s.Jobs {
		ids[job.ID] = struct{}{}
	}
	return ids
}
