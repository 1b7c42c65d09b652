package main

import (
	"fmt"
	"os"

	"github.com/diillson/aws-idle-notifier/internal/adapter/driven/aws"
	"github.com/diillson/aws-idle-notifier/internal/adapter/driven/config"
	"github.com/diillson/aws-idle-notifier/internal/adapter/driven/export"
	"github.com/diillson/aws-idle-notifier/internal/adapter/driving/cli"
	"github.com/diillson/aws-idle-notifier/internal/application/usecase"
	"github.com/diillson/aws-idle-notifier/internal/domain/repository"
	"github.com/diillson/aws-idle-notifier/pkg/console"
	"github.com/diillson/aws-idle-notifier/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	newCloudRepo := func(profile string) repository.CloudRepository {
		return aws.NewAWSRepository(profile)
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	dashboardUseCase := usecase.NewDashboardUseCase(
		newCloudRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetDashboardUseCase(dashboardUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
