package clientdata

import "time"

// Cache lifetimes. TTLs are added to the store time to compute expires_at.
const (
	// TTLCurrentPrice is used when the service config leaves PRICE_CACHE_TTL unset.
	TTLCurrentPrice = time.Minute

	// StaleRetention is how long an expired quote is kept as a fallback
	// for when Yahoo is unreachable.
	StaleRetention = 24 * time.Hour
)
