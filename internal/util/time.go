package util

import "time"

// Now returns the canonical UTC timestamp used for persisted rows.
func Now() time.Time {
	return time.Now().UTC()
}
