package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
)

// ScanOutput is what one scanner produces for its resource kind.
type ScanOutput struct {
	Kind         entity.ResourceKind
	IdleIDs      []string
	Examined     int
	Inconclusive []string
}

func (o ScanOutput) summary() entity.KindSummary {
	return entity.KindSummary{
		Kind:         o.Kind,
		Label:        o.Kind.Label(),
		Examined:     o.Examined,
		Idle:         len(o.IdleIDs),
		Inconclusive: o.Inconclusive,
	}
}

// candidate is a resource waiting for a metric-based verdict.
type candidate struct {
	id     string
	region string
	window entity.MetricWindow
}

type verdict struct {
	idle bool
	err  error
}

// ScanComputeInstances reports running instances whose average CPU over the
// window is below the configured threshold.
func (uc *IdleResourceUseCase) ScanComputeInstances(ctx context.Context, regions []string) (ScanOutput, error) {
	now := uc.now()
	var candidates []candidate
	for _, region := range regions {
		ids, err := uc.inventory.ListRunningInstances(ctx, region)
		if err != nil {
			return ScanOutput{}, fmt.Errorf("%w: EC2 instances in %s: %w", types.ErrInventoryQuery, region, err)
		}
		for _, id := range ids {
			candidates = append(candidates, candidate{id: id, region: region, window: instanceCPUWindow(now, uc.config, id)})
		}
	}

	threshold := uc.config.CPUThreshold
	return uc.classify(ctx, entity.KindComputeInstance, candidates, func(s entity.MetricSample) bool {
		return IsIdleByCPU(s, threshold)
	})
}

// ScanBlockVolumes reports every volume that is not attached to an instance.
// Availability is the whole signal; no metric is consulted.
func (uc *IdleResourceUseCase) ScanBlockVolumes(ctx context.Context, regions []string) (ScanOutput, error) {
	out := ScanOutput{Kind: entity.KindBlockVolume, IdleIDs: []string{}}
	for _, region := range regions {
		ids, err := uc.inventory.ListAvailableVolumes(ctx, region)
		if err != nil {
			return ScanOutput{}, fmt.Errorf("%w: EBS volumes in %s: %w", types.ErrInventoryQuery, region, err)
		}
		out.IdleIDs = append(out.IdleIDs, ids...)
		out.Examined += len(ids)
	}
	return out, nil
}

// ScanDatabaseInstances applies the CPU rule to every DB instance.
func (uc *IdleResourceUseCase) ScanDatabaseInstances(ctx context.Context, regions []string) (ScanOutput, error) {
	now := uc.now()
	var candidates []candidate
	for _, region := range regions {
		ids, err := uc.inventory.ListDBInstances(ctx, region)
		if err != nil {
			return ScanOutput{}, fmt.Errorf("%w: RDS instances in %s: %w", types.ErrInventoryQuery, region, err)
		}
		for _, id := range ids {
			candidates = append(candidates, candidate{id: id, region: region, window: databaseCPUWindow(now, uc.config, id)})
		}
	}

	threshold := uc.config.CPUThreshold
	return uc.classify(ctx, entity.KindDatabaseInstance, candidates, func(s entity.MetricSample) bool {
		return IsIdleByCPU(s, threshold)
	})
}

// ScanBuckets reports buckets with no object-count datapoints over the window.
// Buckets are listed account-wide; regions only supplies the fallback region
// for buckets whose location could not be resolved.
func (uc *IdleResourceUseCase) ScanBuckets(ctx context.Context, regions []string) (ScanOutput, error) {
	now := uc.now()
	buckets, err := uc.inventory.ListBuckets(ctx)
	if err != nil {
		return ScanOutput{}, fmt.Errorf("%w: S3 buckets: %w", types.ErrInventoryQuery, err)
	}

	fallback := ""
	if len(regions) > 0 {
		fallback = regions[0]
	}

	candidates := make([]candidate, 0, len(buckets))
	for _, bucket := range buckets {
		region := bucket.Region
		if region == "" {
			region = fallback
			if bucket.LocationErr != nil {
				uc.logger.LogWarning("%s: region of %s unresolved, querying %s: %v", entity.KindObjectBucket.Label(), bucket.Name, fallback, bucket.LocationErr)
			}
		}
		candidates = append(candidates, candidate{id: bucket.Name, region: region, window: bucketObjectsWindow(now, uc.config, bucket.Name)})
	}

	return uc.classify(ctx, entity.KindObjectBucket, candidates, IsIdleByObjectActivity)
}

// classify queries each candidate's metric with bounded concurrency and keeps
// the idle ones in candidate order. A failed query marks the resource as
// inconclusive and leaves it out of the idle list.
func (uc *IdleResourceUseCase) classify(
	ctx context.Context,
	kind entity.ResourceKind,
	candidates []candidate,
	isIdle func(entity.MetricSample) bool,
) (ScanOutput, error) {
	verdicts := make([]verdict, len(candidates))
	sem := make(chan struct{}, uc.config.MaxConcurrentQueries)
	var wg sync.WaitGroup

	for i, c := range candidates {
		wg.Add(1)
		go func(idx int, c candidate) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				verdicts[idx] = verdict{err: ctx.Err()}
				return
			}
			defer func() { <-sem }()

			sample, err := uc.metrics.QueryMetric(ctx, c.region, c.window)
			if err != nil {
				verdicts[idx] = verdict{err: err}
				return
			}
			verdicts[idx] = verdict{idle: isIdle(sample)}
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return ScanOutput{}, fmt.Errorf("%s scan interrupted: %w", kind.Label(), err)
	}

	out := ScanOutput{Kind: kind, IdleIDs: []string{}, Examined: len(candidates)}
	for i, v := range verdicts {
		c := candidates[i]
		switch {
		case v.err != nil:
			out.Inconclusive = append(out.Inconclusive, c.id)
			uc.logger.LogWarning("%s: skipping %s in %s: %v", kind.Label(), c.id, c.region, asMetricQueryError(v.err))
		case v.idle:
			out.IdleIDs = append(out.IdleIDs, c.id)
		}
	}
	return out, nil
}

func asMetricQueryError(err error) error {
	if errors.Is(err, types.ErrMetricQuery) {
		return err
	}
	return fmt.Errorf("%w: %w", types.ErrMetricQuery, err)
}
