package messages

// CLI messages for the root command, flags, and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "pipu"
	// RootShort is the short description for the root command.
	RootShort = "Check and upgrade outdated pip packages"
	RootLong  = "pipu inspects a Python environment for outdated packages, shows them in a table, and upgrades them sequentially or concurrently after confirmation."

	RootFlagAsync   = "Upgrade the outdated packages concurrently instead of one at a time"
	RootFlagYes     = "Skip the confirmation prompt and upgrade immediately"
	RootFlagPython  = "Path to the Python interpreter whose environment is inspected"
	RootFlagConfig  = "Path to the pipu config file"
	RootFlagVerbose = "Enable debug logging"
	RootVersionFlag = "Print version and exit"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// ConfirmUpgradeTitle is the yes/no prompt shown before upgrading.
	ConfirmUpgradeTitle     = "continue with the package update?"
	ConfirmAffirmative      = "yes"
	ConfirmNegative         = "no"
	ConfirmRequiresTerminal = "the confirmation prompt requires an interactive terminal; re-run with --yes to upgrade without prompting"

	CheckingForUpdates = "checking for updates..."

	// UpToDatePrefix is colored green; UpToDateSuffix follows uncolored.
	UpToDatePrefix = "✔ Awesome!"
	UpToDateSuffix = " All of your dependencies are up-to-date."

	// ElapsedPrefix is colored magenta; ElapsedValueFmt is colored cyan.
	ElapsedPrefix   = "Total time elapsed: "
	ElapsedValueFmt = "%.2f s."
)

// Outdated-package table headers.
const (
	TableHeaderName           = "Name"
	TableHeaderVersion        = "Version"
	TableHeaderLatestVersion  = "Latest Version"
	TableHeaderLatestFiletype = "Latest FileType"
)
