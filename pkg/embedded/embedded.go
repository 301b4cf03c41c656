// Package embedded provides embedded static assets for the application.
package embedded

import (
	"embed"
)

// Files contains all files embedded in the Go binary:
//   - holdings.yaml - default holdings used when no HOLDINGS_FILE is configured
//   - templates/ - HTML templates rendered by the dashboard handlers
//
//go:embed holdings.yaml templates
var Files embed.FS

// DefaultHoldings is the path of the bundled holdings file inside Files
const DefaultHoldings = "holdings.yaml"
