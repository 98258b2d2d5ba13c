// Package lifecycle holds shared process start/stop constants.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown steps such as the initial
// database ping and graceful HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
