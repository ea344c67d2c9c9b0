package pipeline

import (
	"fmt"

	"github.com/saylorsolutions/pixveil/pkg/masklog"
)

type Status int

const (
	StatusDone Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage records the outcome of one pipeline stage.
type Stage struct {
	Name   string
	Status Status
	Detail string // skip reason or error text, empty when done
}

// Check records the outcome of one verification comparison.
type Check struct {
	Name   string
	Ran    bool
	Passed bool
	Detail string
}

// Report accumulates per-stage outcomes and verification results for one
// pipeline run.
type Report struct {
	Stages []Stage
	Checks []Check

	// Preview holds the offset and first triplets parsed from the reference
	// rotated-raster log, when that artifact was readable.
	PreviewOffset   int
	PreviewTriplets []masklog.Triplet
}

func (r *Report) done(name string) {
	r.Stages = append(r.Stages, Stage{Name: name, Status: StatusDone})
}

func (r *Report) skip(name, reason string) {
	r.Stages = append(r.Stages, Stage{Name: name, Status: StatusSkipped, Detail: reason})
}

func (r *Report) fail(name string, err error) {
	r.Stages = append(r.Stages, Stage{Name: name, Status: StatusFailed, Detail: err.Error()})
}

func (r *Report) check(name string, ran, passed bool, detail string) {
	r.Checks = append(r.Checks, Check{Name: name, Ran: ran, Passed: passed, Detail: detail})
}

// AllPassed reports whether every verification check ran and passed.
func (r *Report) AllPassed() bool {
	if len(r.Checks) == 0 {
		return false
	}
	for _, c := range r.Checks {
		if !c.Ran || !c.Passed {
			return false
		}
	}
	return true
}

// Lines renders one human-readable status line per stage, then one pass/fail
// line per verification check.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Stages)+len(r.Checks))
	for _, s := range r.Stages {
		line := fmt.Sprintf("%-28s %s", s.Name, s.Status)
		if s.Detail != "" {
			line += ": " + s.Detail
		}
		lines = append(lines, line)
	}
	for _, c := range r.Checks {
		var verdict string
		switch {
		case !c.Ran:
			verdict = "NOT RUN"
		case c.Passed:
			verdict = "PASS"
		default:
			verdict = "FAIL"
		}
		line := fmt.Sprintf("%-28s %s", c.Name, verdict)
		if c.Detail != "" {
			line += ": " + c.Detail
		}
		lines = append(lines, line)
	}
	return lines
}
