package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/diillson/aws-idle-notifier/internal/adapter/driven/aws"
	"github.com/diillson/aws-idle-notifier/internal/adapter/driven/config"
	handler "github.com/diillson/aws-idle-notifier/internal/adapter/driving/lambda"
	"github.com/diillson/aws-idle-notifier/internal/application/usecase"
	"github.com/diillson/aws-idle-notifier/pkg/console"
	"github.com/diillson/aws-idle-notifier/pkg/version"
)

func main() {
	logger := console.NewJSONLogger("idle-notifier").With("version", version.Version)

	cfg, err := config.NewConfigRepository().LoadFromEnvironment()
	if err != nil {
		logger.LogError("Invalid configuration: %s", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		logger.LogError("Failed to load AWS config: %s", err)
		os.Exit(1)
	}

	awsRepo := aws.NewAWSRepositoryFromConfig(awsCfg)
	scanner := usecase.NewIdleResourceUseCase(awsRepo, awsRepo, awsRepo, awsRepo, logger, *cfg)

	lambda.Start(handler.NewHandler(scanner, logger).Handle)
}
