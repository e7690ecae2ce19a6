package messages

// Runner, lister, and upgrade messages.
const (
	RunnerEmptyCommand  = "command must not be empty"
	RunnerEmptyTokenFmt = "command token %d must not be empty"
	RunnerFaultFmt      = "run %q: %v"

	ListOutdatedFailedFmt = "pip list --outdated failed: %s"
	ParseOutdatedFmt      = "parse pip outdated listing: %v"
	ParseMissingFieldFmt  = "package %d: missing required field %q"

	// UpgradeProgressFmt renders one progress line: verb, name, old, new.
	UpgradeProgressFmt = "%s %s, version: from %s to %s..."
	UpgradeStartVerb   = "installing"
	UpgradeDoneVerb    = "installed"
	UpgradeFailVerb    = "installation failed"

	SummarySuccessFmt = "Successfully installed %d packages. 「%s」"
	SummaryFailureFmt = "Unsuccessfully installed %d packages. 「%s」"

	DiffHeader       = "Pinned set changes:"
	DiffBeforeLabel  = "environment (before)"
	DiffAfterLabel   = "environment (after)"
	DiffTruncatedFmt = "... (truncated to %d lines)"
)
