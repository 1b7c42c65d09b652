package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/domain/repository"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
)

// IdleResourceUseCase scans an account for idle resources and notifies about them.
type IdleResourceUseCase struct {
	inventory repository.InventoryRepository
	metrics   repository.MetricRepository
	notifier  repository.NotificationRepository
	account   repository.AccountRepository
	logger    types.Logger
	config    types.Config
	now       func() time.Time
}

// NewIdleResourceUseCase creates a new idle resource use case. Zero config
// values are replaced by the defaults.
func NewIdleResourceUseCase(
	inventory repository.InventoryRepository,
	metrics repository.MetricRepository,
	notifier repository.NotificationRepository,
	account repository.AccountRepository,
	logger types.Logger,
	config types.Config,
) *IdleResourceUseCase {
	return &IdleResourceUseCase{
		inventory: inventory,
		metrics:   metrics,
		notifier:  notifier,
		account:   account,
		logger:    logger,
		config:    config.WithDefaults(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Config returns the effective configuration.
func (uc *IdleResourceUseCase) Config() types.Config {
	return uc.config
}

// Run executes one scan: the four scanners, the report, the notification and
// the diagnostic log. The trigger payload is accepted but not inspected.
func (uc *IdleResourceUseCase) Run(ctx context.Context, trigger json.RawMessage) (entity.ScanResult, error) {
	regions, err := uc.resolveRegions(ctx)
	if err != nil {
		return entity.ScanResult{}, err
	}

	accountID, err := uc.account.GetAccountID(ctx)
	if err != nil {
		uc.logger.LogWarning("Could not resolve account ID: %s", err)
		accountID = "Unknown"
	}

	uc.logger.LogInfo("Scanning account %s (%s) for resources idle over the last %d days",
		accountID, strings.Join(regions, ", "), uc.config.LookbackDays)

	outputs, err := uc.scanAll(ctx, regions)
	if err != nil {
		return entity.ScanResult{}, err
	}

	report := BuildReport(
		outputs[entity.KindComputeInstance].IdleIDs,
		outputs[entity.KindBlockVolume].IdleIDs,
		outputs[entity.KindDatabaseInstance].IdleIDs,
		outputs[entity.KindObjectBucket].IdleIDs,
	)

	notified, err := uc.Notify(ctx, report)
	if err != nil {
		return entity.ScanResult{}, err
	}

	uc.logReport(report)

	summary := entity.Summary{AccountID: accountID, Regions: regions}
	for _, kind := range entity.ResourceKinds {
		summary.Kinds = append(summary.Kinds, outputs[kind].summary())
	}
	if n := summary.Inconclusive(); n > 0 {
		uc.logger.LogWarning("%d resource(s) could not be classified and were left out of the report", n)
	}

	return entity.NewScanResult(report, summary, notified), nil
}

// Notify publishes the rendered report. Nothing is sent when the report is empty.
func (uc *IdleResourceUseCase) Notify(ctx context.Context, report entity.Report) (bool, error) {
	if report.IsEmpty() {
		uc.logger.LogInfo("No idle resources found. Skipping notification.")
		return false, nil
	}

	message := renderMessage(report, MaxMessageBytes)
	if uc.config.DryRun {
		uc.logger.LogWarning("Dry run: notification with %d idle resource(s) was not published", report.Total())
		uc.logger.LogInfo("Subject: %s\n%s", uc.config.Subject, message)
		return false, nil
	}

	messageID, err := uc.notifier.Publish(ctx, uc.config.TopicARN, uc.config.Subject, message)
	if err != nil {
		return false, fmt.Errorf("%w: %w", types.ErrNotificationPublish, err)
	}

	uc.logger.LogSuccess("Published notification %s to %s", messageID, uc.config.TopicARN)
	return true, nil
}

// scanAll runs the four scanners concurrently and indexes their output by kind.
func (uc *IdleResourceUseCase) scanAll(ctx context.Context, regions []string) (map[entity.ResourceKind]ScanOutput, error) {
	scanners := map[entity.ResourceKind]func(context.Context, []string) (ScanOutput, error){
		entity.KindComputeInstance:  uc.ScanComputeInstances,
		entity.KindBlockVolume:      uc.ScanBlockVolumes,
		entity.KindDatabaseInstance: uc.ScanDatabaseInstances,
		entity.KindObjectBucket:     uc.ScanBuckets,
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		outputs = make(map[entity.ResourceKind]ScanOutput, len(scanners))
		errs    = make([]error, len(entity.ResourceKinds))
	)

	for i, kind := range entity.ResourceKinds {
		wg.Add(1)
		go func(idx int, kind entity.ResourceKind) {
			defer wg.Done()
			out, err := scanners[kind](ctx, regions)
			if err != nil {
				errs[idx] = err
				return
			}
			mu.Lock()
			outputs[kind] = out
			mu.Unlock()
		}(i, kind)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (uc *IdleResourceUseCase) resolveRegions(ctx context.Context) ([]string, error) {
	regions := uc.config.Regions
	if len(regions) == 1 && strings.EqualFold(regions[0], "all") {
		discovered, err := uc.account.GetAccessibleRegions(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: could not list regions: %w", types.ErrInventoryQuery, err)
		}
		return discovered, nil
	}
	if len(regions) > 0 {
		return regions, nil
	}
	if region := uc.account.DefaultRegion(); region != "" {
		return []string{region}, nil
	}
	return nil, errors.New("no AWS region configured. Set regions or AWS_REGION")
}

func (uc *IdleResourceUseCase) logReport(report entity.Report) {
	uc.logger.LogInfo("Idle Resources Found:")
	for _, section := range report.Sections {
		uc.logger.LogInfo("%s: [%s]", section.Label, strings.Join(section.ResourceIDs, ", "))
	}
}
