package types

// CLIArgs represents the command-line arguments of the scan command.
type CLIArgs struct {
	ConfigFile   string
	Profile      string
	Regions      []string
	TopicARN     string
	CPUThreshold *float64
	Days         *int
	NoNotify     bool
	ReportName   string
	ReportType   []string
	Dir          string
}
