package types

import "errors"

var (
	ErrInventoryQuery      = errors.New("inventory query failed")
	ErrMetricQuery         = errors.New("metric query failed")
	ErrNotificationPublish = errors.New("notification publish failed")
	ErrMissingTopicARN     = errors.New("no SNS topic ARN configured. Set topic_arn or use --no-notify")
)
