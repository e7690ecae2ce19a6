package messages

// Config, interpreter resolution, and environment lock messages.
const (
	ConfigReadFmt   = "read config %s: %v"
	ConfigSyntaxFmt = "config %s: invalid TOML: %v"
	ConfigDecodeFmt = "config %s: %v"
	ConfigHomeFmt   = "resolve home directory: %v"

	// PyenvInvalid is the fatal message when no interpreter is usable.
	PyenvInvalid       = "The python3 environment is invalid."
	PyenvOverrideFmt   = "python interpreter %q is not usable: %v"
	PyenvNotRegular    = "not a regular file"
	PyenvNotExecutable = "not executable"

	LockDirFmt     = "create lock directory %s: %v"
	LockOpenFmt    = "open lock file %s: %v"
	LockAcquireFmt = "lock %s: %v"
	LockTimeoutFmt = "another pipu run holds the environment lock (waited %s)"
)
