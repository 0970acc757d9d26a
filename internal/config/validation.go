package config

import (
	"fmt"
	"net/url"
	"strings"
)

func validate(c *Config) error {
	if c.NavTimeout <= 0 {
		return fmt.Errorf("navigation timeout must be > 0")
	}
	if c.SlowMo < 0 {
		return fmt.Errorf("slowmo delay must be >= 0")
	}
	if c.PaceDelay < 0 {
		return fmt.Errorf("pacing delay must be >= 0")
	}
	if !strings.HasPrefix(c.StartURL, "http://") && !strings.HasPrefix(c.StartURL, "https://") {
		return fmt.Errorf("start URL must be absolute: %s", c.StartURL)
	}
	if _, err := url.Parse(c.StartURL); err != nil {
		return fmt.Errorf("start URL is not parseable: %w", err)
	}
	return nil
}
