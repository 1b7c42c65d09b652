package usecase

import (
	"time"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
	"github.com/diillson/aws-idle-notifier/internal/shared/types"
)

// CloudWatch namespaces, metrics and dimensions consulted by the scanners.
const (
	NamespaceEC2 = "AWS/EC2"
	NamespaceRDS = "AWS/RDS"
	NamespaceS3  = "AWS/S3"

	MetricCPUUtilization  = "CPUUtilization"
	MetricNumberOfObjects = "NumberOfObjects"

	DimensionInstanceID           = "InstanceId"
	DimensionDBInstanceIdentifier = "DBInstanceIdentifier"
	DimensionBucketName           = "BucketName"
	DimensionStorageType          = "StorageType"

	StorageTypeAll = "AllStorageTypes"
)

// IsIdleByCPU is the compute and database rule: a sample must exist and sit
// strictly below the threshold. No datapoints means "not idle".
func IsIdleByCPU(sample entity.MetricSample, threshold float64) bool {
	return sample.Present && sample.Value < threshold
}

// IsIdleByObjectActivity is the bucket rule: no object-count datapoints over
// the window is taken as no activity. Any datapoint means "not idle".
func IsIdleByObjectActivity(sample entity.MetricSample) bool {
	return sample.Absent()
}

func instanceCPUWindow(now time.Time, cfg types.Config, instanceID string) entity.MetricWindow {
	return entity.NewTrailingWindow(now, cfg.LookbackDays, cfg.Period(),
		NamespaceEC2, MetricCPUUtilization, entity.StatisticAverage,
		entity.Dimension{Name: DimensionInstanceID, Value: instanceID})
}

func databaseCPUWindow(now time.Time, cfg types.Config, dbInstanceID string) entity.MetricWindow {
	return entity.NewTrailingWindow(now, cfg.LookbackDays, cfg.Period(),
		NamespaceRDS, MetricCPUUtilization, entity.StatisticAverage,
		entity.Dimension{Name: DimensionDBInstanceIdentifier, Value: dbInstanceID})
}

func bucketObjectsWindow(now time.Time, cfg types.Config, bucket string) entity.MetricWindow {
	return entity.NewTrailingWindow(now, cfg.LookbackDays, cfg.Period(),
		NamespaceS3, MetricNumberOfObjects, entity.StatisticSum,
		entity.Dimension{Name: DimensionBucketName, Value: bucket},
		entity.Dimension{Name: DimensionStorageType, Value: StorageTypeAll})
}
