package lifecycle

import (
	"math"
	"time"
)

// DelaySeconds computes the exponential backoff delay applied before
// a failed job becomes eligible for retry: base^attempts seconds,
// where attempts is the attempts count after the just-failed attempt
// (1, 2, 3, ...), so delays grow as base^1, base^2, base^3.
//
// There is no cap and no jitter: for large attempts and base > 1,
// the delay grows without bound. This is a deliberate, narrower
// contract than a production backoff policy might want; see
// DESIGN.md for the open-question discussion.
func DelaySeconds(attempts uint32, base float64) time.Duration {
	seconds := math.Pow(base, float64(attempts))
	return time.Duration(seconds * float64(time.Second))
}
