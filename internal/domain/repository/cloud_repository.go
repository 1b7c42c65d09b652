package repository

// CloudRepository is everything a scan needs from one set of credentials.
type CloudRepository interface {
	InventoryRepository
	MetricRepository
	NotificationRepository
	AccountRepository
}

// CloudRepositoryFactory builds a CloudRepository for a named profile.
type CloudRepositoryFactory func(profile string) CloudRepository
