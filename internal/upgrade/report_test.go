package upgrade

import (
	"testing"

	"github.com/Abeautifulsnow/pipu/internal/pip"
)

func TestSummarizeJoinsNames(t *testing.T) {
	report := Report{
		Successes: []string{"requests", "urllib3"},
		Failures:  []string{"numpy"},
	}

	summary := Summarize(report)
	if summary.SucceededCount != 2 || summary.FailedCount != 1 {
		t.Fatalf("summary counts = %d/%d, want 2/1", summary.SucceededCount, summary.FailedCount)
	}
	if summary.SucceededNames != "requests, urllib3" {
		t.Fatalf("SucceededNames = %q", summary.SucceededNames)
	}
	if summary.FailedNames != "numpy" {
		t.Fatalf("FailedNames = %q", summary.FailedNames)
	}
}

func TestSummarizeIsIdempotent(t *testing.T) {
	report := Report{Successes: []string{"a"}, Failures: []string{"b", "c"}}
	if Summarize(report) != Summarize(report) {
		t.Fatal("summaries of the same report differ")
	}
}

func TestReportAddClassifiesByFlag(t *testing.T) {
	var report Report
	report.add(pip.Outcome{Name: "ok", Succeeded: true})
	report.add(pip.Outcome{Name: "bad", Succeeded: false})

	if report.Attempted() != 2 || report.Empty() {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Successes) != 1 || report.Successes[0] != "ok" {
		t.Fatalf("successes = %v", report.Successes)
	}
	if len(report.Failures) != 1 || report.Failures[0] != "bad" {
		t.Fatalf("failures = %v", report.Failures)
	}
}

func TestSummarizeEmptyPartitions(t *testing.T) {
	summary := Summarize(Report{Successes: []string{"only"}})
	if summary.FailedCount != 0 || summary.FailedNames != "" {
		t.Fatalf("summary = %+v, want empty failure partition", summary)
	}
}
