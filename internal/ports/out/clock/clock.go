package clock

import "time"

// Clock provides time to the application. Token issuance and expiry depend on
// it; an interface keeps those paths deterministic under test.
type Clock interface {
	Now() time.Time
}
