package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	EnvFile    string
	DryRun     bool
	Quiet      bool
	Output     string
	ReportName string
	ReportType []string
	Dir        string
}
