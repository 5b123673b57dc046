package errs

import "errors"

// Operational sentinels shared across usecase layers. Business rule failures
// live next to the rules in the domain packages.
var (
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrCacheOperationFailed    = errors.New("cache operation failed")
	ErrNotificationFailed      = errors.New("notification delivery failed")
)
