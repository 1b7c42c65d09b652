package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/diillson/aws-idle-notifier/internal/application/usecase"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/diillson/aws-idle-notifier/pkg/version"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	scanCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:           "idle-notifier",
		Short:         "Find idle AWS resources and notify about them",
		Version:       formattedVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "AWS Idle Notifier version: %s\n" .Version}}`)

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan EC2, EBS, RDS and S3 for idle resources",
		Long: `Scan lists running EC2 instances, available EBS volumes, RDS instances and
S3 buckets, checks their CloudWatch activity over the lookback window and
publishes the idle ones to an SNS topic.`,
		Args: cobra.NoArgs,
		RunE: app.runCommand,
	}

	scanCmd.Flags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	scanCmd.Flags().StringP("profile", "p", "", "AWS profile to use (default: default credential chain)")
	scanCmd.Flags().StringSliceP("regions", "r", nil, "AWS regions to scan (comma-separated, or \"all\")")
	scanCmd.Flags().String("topic-arn", "", "SNS topic that receives the notification")
	scanCmd.Flags().Float64("cpu-threshold", types.DefaultCPUThreshold, "Average CPU percentage below which an instance is idle")
	scanCmd.Flags().Int("days", types.DefaultLookbackDays, "Lookback window in days")
	scanCmd.Flags().Bool("no-notify", false, "Scan and report without publishing to SNS")
	scanCmd.Flags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	scanCmd.Flags().StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	scanCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "AWS Idle Notifier version: %s\n", version.FormatVersion())
		},
	}

	rootCmd.AddCommand(scanCmd, versionCmd)

	app.rootCmd = rootCmd
	app.scanCmd = scanCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
// Threshold and days are only set when given explicitly, so file values survive.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()

	configFile, _ := flags.GetString("config-file")
	profile, _ := flags.GetString("profile")
	regions, _ := flags.GetStringSlice("regions")
	topicARN, _ := flags.GetString("topic-arn")
	noNotify, _ := flags.GetBool("no-notify")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		Profile:    profile,
		Regions:    regions,
		TopicARN:   topicARN,
		NoNotify:   noNotify,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
	}

	if flags.Changed("cpu-threshold") {
		threshold, _ := flags.GetFloat64("cpu-threshold")
		args.CPUThreshold = &threshold
	}
	if flags.Changed("days") {
		days, _ := flags.GetInt("days")
		args.Days = &days
	}

	return args, nil
}

// runCommand é o ponto de entrada do comando scan.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go checkLatestVersion(app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	if app.dashboardUseCase == nil {
		return fmt.Errorf("scan use case is not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.dashboardUseCase.RunDashboard(ctx, cliArgs)
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}

// SetArgs replaces the process arguments, for tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}
