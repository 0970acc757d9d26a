package config

import "time"

// Default constants for application configuration
const (
	DefaultLogLevel   = "info"
	DefaultJSONLog    = false
	DefaultStartURL   = "https://kbopub.economie.fgov.be/kbopub/zoeknummerform.html"
	DefaultOutputPath = "kbo_contacts.csv"
	DefaultUserAgent  = "kbolookup/1.0 (https://github.com/kbo-tools/kbolookup)"
	DefaultNavTimeout = 30 * time.Second

	// Headless mode is off by default: a visible window is less likely to
	// trigger the registry's anti-bot checks, and the operator needs to see
	// the page to solve a human check anyway.
	DefaultHeadless = false

	// DefaultSlowMo spaces individual UI actions (fill, click) apart.
	DefaultSlowMo = 80 * time.Millisecond

	// DefaultPaceDelay is the polite gap between consecutive records.
	DefaultPaceDelay = 600 * time.Millisecond
)
