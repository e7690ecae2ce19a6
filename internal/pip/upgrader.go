package pip

import (
	"context"

	"go.uber.org/zap"

	"github.com/Abeautifulsnow/pipu/internal/execx"
)

// Upgrader installs pinned package upgrades against one interpreter.
// It is safe for concurrent use when its StatusSink is.
type Upgrader struct {
	runner Runner
	python string
	sink   StatusSink
	log    *zap.Logger
}

// NewUpgrader returns an Upgrader scoped to the python interpreter path.
// Events go to sink; a nil sink disables them.
func NewUpgrader(runner Runner, python string, sink StatusSink, log *zap.Logger) *Upgrader {
	if sink == nil {
		sink = nopSink{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Upgrader{runner: runner, python: python, sink: sink, log: log}
}

// Upgrade runs `<python> -m pip install --upgrade <name>==<latest>`, pinning
// to the version captured at listing time. A non-zero pip exit yields a
// failed Outcome and a nil error; only a runner fault returns an error.
func (u *Upgrader) Upgrade(ctx context.Context, pkg Package) (Outcome, error) {
	command, err := execx.Command(u.python, "-m", "pip", "install", "--upgrade", pkg.LatestRequirement())
	if err != nil {
		return Outcome{}, err
	}

	u.sink.UpgradeStarted(pkg.Name, pkg.Version, pkg.LatestVersion)

	_, ok, err := u.runner.Run(ctx, command)
	if err != nil {
		return Outcome{}, err
	}

	if ok {
		u.sink.UpgradeSucceeded(pkg.Name, pkg.Version, pkg.LatestVersion)
		u.log.Debug("package upgraded",
			zap.String("package", pkg.Name),
			zap.String("from", pkg.Version),
			zap.String("to", pkg.LatestVersion),
		)
	} else {
		u.sink.UpgradeFailed(pkg.Name, pkg.Version, pkg.LatestVersion)
		u.log.Warn("package upgrade failed",
			zap.String("package", pkg.Name),
			zap.String("pin", pkg.LatestRequirement()),
		)
	}
	return Outcome{Name: pkg.Name, Succeeded: ok}, nil
}
