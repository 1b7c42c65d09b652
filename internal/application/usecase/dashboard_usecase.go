package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/domain/repository"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
	"github.com/pterm/pterm"
)

// DashboardUseCase runs a scan from the command line and renders the result.
type DashboardUseCase struct {
	newCloudRepo repository.CloudRepositoryFactory
	exportRepo   repository.ExportRepository
	configRepo   repository.ConfigRepository
	console      types.ConsoleInterface
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	newCloudRepo repository.CloudRepositoryFactory,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		newCloudRepo: newCloudRepo,
		exportRepo:   exportRepo,
		configRepo:   configRepo,
		console:      console,
	}
}

// ResolveConfig merges the config file, if any, with the flags. Flags win.
func (uc *DashboardUseCase) ResolveConfig(args *types.CLIArgs) (types.Config, error) {
	config := types.DefaultConfig()

	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return types.Config{}, fmt.Errorf("failed to load config file: %w", err)
		}
		config = *loaded
		uc.console.LogInfo("Loaded configuration from %s", args.ConfigFile)
	}
	// Defaults vêm antes das flags: um zero explícito deve chegar ao Validate.
	config = config.WithDefaults()

	if args.Profile != "" {
		config.Profile = args.Profile
	}
	if len(args.Regions) > 0 {
		config.Regions = args.Regions
	}
	if args.TopicARN != "" {
		config.TopicARN = args.TopicARN
	}
	if args.CPUThreshold != nil {
		config.CPUThreshold = *args.CPUThreshold
	}
	if args.Days != nil {
		config.LookbackDays = *args.Days
	}
	if args.NoNotify {
		config.DryRun = true
	}

	if err := config.Validate(); err != nil {
		return types.Config{}, err
	}
	return config, nil
}

// RunDashboard executa a varredura e exibe o resultado no terminal.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	config, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	cloudRepo := uc.newCloudRepo(config.Profile)
	scanner := NewIdleResourceUseCase(cloudRepo, cloudRepo, cloudRepo, cloudRepo, uc.console, config)

	status := uc.console.Status("Scanning for idle resources...")
	result, err := scanner.Run(ctx, nil)
	status.Stop()
	if err != nil {
		return err
	}

	table := uc.createDisplayTable()
	for _, kind := range result.Summary.Kinds {
		uc.addKindToTable(table, kind, result.Body.Get(kind.Kind))
	}
	uc.console.Print(table.Render())

	bars := make([]types.IdleBar, 0, len(result.Summary.Kinds))
	for _, kind := range result.Summary.Kinds {
		bars = append(bars, types.IdleBar{Label: kind.Label, Examined: kind.Examined, Idle: kind.Idle})
	}
	uc.console.DisplayIdleBars(bars)

	if !result.Notified && !result.Body.IsEmpty() && config.DryRun {
		uc.console.LogInfo("Notifications disabled. Run without --no-notify to publish to %s", displayTopic(config.TopicARN))
	}

	uc.exportReports(result, args)
	return nil
}

func (uc *DashboardUseCase) createDisplayTable() types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Resource Type")
	table.AddColumn("Examined")
	table.AddColumn("Idle")
	table.AddColumn("Inconclusive")
	table.AddColumn("Idle Resources")
	return table
}

func (uc *DashboardUseCase) addKindToTable(table types.TableInterface, kind entity.KindSummary, idleIDs []string) {
	idle := pterm.FgGreen.Sprint(kind.Idle)
	if kind.Idle > 0 {
		idle = pterm.FgYellow.Sprint(kind.Idle)
	}

	inconclusive := fmt.Sprint(len(kind.Inconclusive))
	if len(kind.Inconclusive) > 0 {
		inconclusive = pterm.FgRed.Sprint(len(kind.Inconclusive))
	}

	ids := "None"
	if len(idleIDs) > 0 {
		ids = strings.Join(idleIDs, "\n")
	}

	table.AddRow(kind.Label, kind.Examined, idle, inconclusive, ids)
}

// exportReports grava os relatórios solicitados. Falhas são registradas, não propagadas.
func (uc *DashboardUseCase) exportReports(result entity.ScanResult, args *types.CLIArgs) {
	if args.ReportName == "" || len(args.ReportType) == 0 {
		return
	}

	for _, reportType := range args.ReportType {
		switch strings.ToLower(reportType) {
		case "csv":
			csvPath, err := uc.exportRepo.ExportToCSV(result, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to CSV: %s", csvPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(result, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(result, args.ReportName, args.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("Unknown report type %q, skipping", reportType)
		}
	}
}

func displayTopic(topicARN string) string {
	if topicARN == "" {
		return "the configured topic"
	}
	return topicARN
}
