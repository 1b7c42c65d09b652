package repository

import (
	"context"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

// InventoryRepository lists live resources of each kind.
type InventoryRepository interface {
	// ListRunningInstances returns ids of instances in the "running" state, in listing order.
	ListRunningInstances(ctx context.Context, region string) ([]string, error)
	// ListAvailableVolumes returns ids of volumes with status "available".
	ListAvailableVolumes(ctx context.Context, region string) ([]string, error)
	// ListDBInstances returns every DB instance identifier, unfiltered.
	ListDBInstances(ctx context.Context, region string) ([]string, error)
	// ListBuckets returns every bucket in the account with its region resolved.
	ListBuckets(ctx context.Context) ([]entity.Bucket, error)
}

// AccountRepository resolves the scanned account and its regions.
type AccountRepository interface {
	GetAccountID(ctx context.Context) (string, error)
	DefaultRegion() string
	GetAccessibleRegions(ctx context.Context) ([]string, error)
}
