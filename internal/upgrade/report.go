package upgrade

import (
	"strings"

	"github.com/Abeautifulsnow/pipu/internal/pip"
)

// Report partitions attempted upgrades by outcome. Names are recorded in
// completion order; every attempted package lands in exactly one list.
type Report struct {
	Successes []string
	Failures  []string
}

func (r *Report) add(outcome pip.Outcome) {
	if outcome.Succeeded {
		r.Successes = append(r.Successes, outcome.Name)
	} else {
		r.Failures = append(r.Failures, outcome.Name)
	}
}

// Attempted returns how many upgrades were attempted.
func (r Report) Attempted() int { return len(r.Successes) + len(r.Failures) }

// Empty reports whether no upgrade was attempted.
func (r Report) Empty() bool { return r.Attempted() == 0 }

// Summary is the displayable projection of a Report.
type Summary struct {
	SucceededCount int
	FailedCount    int
	SucceededNames string
	FailedNames    string
}

// Summarize renders counts and ", "-joined name lists for each partition.
// Pure: identical reports yield identical summaries.
func Summarize(report Report) Summary {
	return Summary{
		SucceededCount: len(report.Successes),
		FailedCount:    len(report.Failures),
		SucceededNames: strings.Join(report.Successes, ", "),
		FailedNames:    strings.Join(report.Failures, ", "),
	}
}
