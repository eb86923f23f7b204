// Package raw reads the environment without logging, so the logger can use
// it while it bootstraps.
package raw

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or def when it is unset or blank.
func Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
