package repository

import (
	"context"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

// MetricRepository evaluates a metric window in a region.
type MetricRepository interface {
	QueryMetric(ctx context.Context, region string, window entity.MetricWindow) (entity.MetricSample, error)
}
