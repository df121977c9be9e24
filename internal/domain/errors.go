package domain

import "errors"

var (
	// ErrConfigurationMissing means no tax law configuration exists for the
	// requested year. It requires an administrative fix (a missing upsert),
	// so callers must surface it rather than retry.
	ErrConfigurationMissing = errors.New("tax law configuration missing")

	// ErrStoreUnavailable means the external configuration store could not be
	// reached. Distinct from ErrConfigurationMissing: callers may retry with
	// backoff, the core itself never does.
	ErrStoreUnavailable = errors.New("tax law store unavailable")
)
