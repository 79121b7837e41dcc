package opts

// RootOpts contains shared options used by all commands
type RootOpts struct {
	Root       string // Project root directory
	ConfigFile string // Tool config file path
	Force      bool   // Overwrite generated artifacts even when unchanged
	Install    bool   // Run the package manager after migrating
	Debug      bool   // Debug logging
}
