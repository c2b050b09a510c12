package usecase

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPending is stored under a key while its request runs.
	IdempotencyPending = "processing"

	// maxStaleSnapshots bounds how many stale snapshots the resolver
	// discards before falling back to the cold path.
	maxStaleSnapshots = 32
)

// NoiseThreshold is the magnitude below which a carried-forward balance is
// reported as exactly zero.
var NoiseThreshold = decimal.NewFromInt(1)
