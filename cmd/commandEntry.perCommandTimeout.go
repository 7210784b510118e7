package cmd

import "time"

// perCommandTimeout returns the entry's own timeout, or defaultTimeout when it
// is unset or unparsable.
func (c *commandEntry) perCommandTimeout(defaultTimeout time.Duration) time.Duration {
	if c.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return defaultTimeout
	}
	return d
}
