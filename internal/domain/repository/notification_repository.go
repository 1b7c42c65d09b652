package repository

import "context"

// NotificationRepository delivers a rendered message to a pub/sub destination.
type NotificationRepository interface {
	Publish(ctx context.Context, destination, subject, message string) (string, error)
}
