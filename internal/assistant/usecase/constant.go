package usecase

import "time"

const (
	LogPrefix = "internal.assistant.usecase"

	// orderLogSuffix keeps order turns apart from chat turns of the same session.
	orderLogSuffix = ":order"

	varOrderDetails = "order_details"
	varMissing      = "missing"

	// orderIntent labels order completions in errors.
	orderIntent = "order"

	nothingMissing = "nothing, all order details are collected"
)

// Defaults applied by New when Config leaves them zero.
const (
	DefaultMaxSessions = 1024
	DefaultSessionTTL  = 24 * time.Hour
)
