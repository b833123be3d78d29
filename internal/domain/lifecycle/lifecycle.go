// Package lifecycle holds shared constants for application start and stop handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop operations such as server shutdown
// and database pings.
const DefaultTimeout = 10 * time.Second
