// Package upgrade drives upgrade attempts across an outdated set and
// aggregates the per-package outcomes into a report.
package upgrade

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Abeautifulsnow/pipu/internal/pip"
)

// Mode selects how upgrade attempts are scheduled.
type Mode int

const (
	// Sequential runs one attempt at a time in listing order.
	Sequential Mode = iota
	// Concurrent dispatches every attempt at once, then joins them all.
	Concurrent
)

func (m Mode) String() string {
	if m == Concurrent {
		return "concurrent"
	}
	return "sequential"
}

// Executor runs a single upgrade attempt. *pip.Upgrader satisfies it.
type Executor interface {
	Upgrade(ctx context.Context, pkg pip.Package) (pip.Outcome, error)
}

// Orchestrator runs every record of an outdated set to completion and
// classifies each outcome. Once started there is no cancellation: a failed
// attempt never stops the batch.
type Orchestrator struct {
	executor Executor
	mode     Mode
	log      *zap.Logger
}

// NewOrchestrator returns an Orchestrator scheduling attempts per mode.
func NewOrchestrator(executor Executor, mode Mode, log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{executor: executor, mode: mode, log: log}
}

// Run upgrades every record in packages and reports the partition of
// attempted names into successes and failures. An empty set returns an empty
// Report without invoking the executor. An executor fault aborts the run:
// sequential mode stops at the faulting record, concurrent mode joins the
// attempts already in flight first; either way the partial report is dropped
// and the fault propagates.
func (o *Orchestrator) Run(ctx context.Context, packages []pip.Package) (Report, error) {
	if len(packages) == 0 {
		return Report{}, nil
	}

	o.log.Debug("starting upgrades",
		zap.Int("count", len(packages)),
		zap.Stringer("mode", o.mode),
	)

	if o.mode == Concurrent {
		return o.runConcurrent(ctx, packages)
	}
	return o.runSequential(ctx, packages)
}

func (o *Orchestrator) runSequential(ctx context.Context, packages []pip.Package) (Report, error) {
	var report Report
	for _, pkg := range packages {
		outcome, err := o.executor.Upgrade(ctx, pkg)
		if err != nil {
			return Report{}, err
		}
		report.add(outcome)
	}
	return report, nil
}

// runConcurrent collects outcomes through a channel buffered to the batch
// size, so the Report is only ever mutated here after the join barrier.
func (o *Orchestrator) runConcurrent(ctx context.Context, packages []pip.Package) (Report, error) {
	outcomes := make(chan pip.Outcome, len(packages))

	var group errgroup.Group
	for _, pkg := range packages {
		group.Go(func() error {
			outcome, err := o.executor.Upgrade(ctx, pkg)
			if err != nil {
				return err
			}
			outcomes <- outcome
			return nil
		})
	}
	err := group.Wait()
	close(outcomes)

	var report Report
	for outcome := range outcomes {
		report.add(outcome)
	}
	if err != nil {
		return Report{}, err
	}
	return report, nil
}
