package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// loadProfile reads a YAML profile, checks the fields a human must provide
// (name, description) and the ones that would make parsing meaningless, then
// fills the remaining defaults.
func loadProfile(path string) (*profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p := &profile{}
	if err := yamlUnmarshal(b, p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.New("profile.name is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return nil, errors.New("profile.description is required")
	}
	if p.Parser.IndentStep < 0 {
		return nil, fmt.Errorf("parser.indent_step must be positive, got %d", p.Parser.IndentStep)
	}
	if p.Report.Timeout != "" {
		if _, err := time.ParseDuration(p.Report.Timeout); err != nil {
			return nil, fmt.Errorf("report.timeout: %w", err)
		}
	}
	p.applyDefaults()
	return p, nil
}

// resolveProfile loads --profile (or the defaults) and applies the flag and
// environment overrides on top.
func resolveProfile() (*profile, error) {
	p := defaultProfile()
	if cfgProfile != "" {
		var err error
		if p, err = loadProfile(cfgProfile); err != nil {
			return nil, fmt.Errorf("failed to read profile: %w", err)
		}
	}
	if cfgTarget != "" {
		p.SSHHost.IP = cfgTarget
	}
	if cfgUser != "" {
		p.SSHHost.User = cfgUser
	}
	if cfgRedisAddr != "" {
		p.Sink.RedisAddr = cfgRedisAddr
	}
	if cfgRedisDB >= 0 {
		p.Sink.RedisDB = cfgRedisDB
	}
	if cfgRedisKey != "" {
		p.Sink.Key = cfgRedisKey
	}
	return p, nil
}
