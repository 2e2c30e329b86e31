package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains([]string{"postgres", "sqlite"}, c.Database.Driver) {
		errs = append(errs, fmt.Errorf("database.driver must be postgres or sqlite (got %q)", c.Database.Driver))
	}

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if c.Auth.AccessTokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.access_token_ttl must be > 0 (got %s)", c.Auth.AccessTokenTTL))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must be >= 0 (got %d)", c.Server.RateLimit))
	}

	if !slices.Contains([]string{"json", "text"}, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format))
	}

	if err := c.SRS.validate(); err != nil {
		errs = append(errs, fmt.Errorf("srs: %w", err))
	}

	if err := c.Content.validate(); err != nil {
		errs = append(errs, fmt.Errorf("content: %w", err))
	}

	return errors.Join(errs...)
}

func (s *SRSConfig) validate() error {
	// Zero means any overdue ratio counts regardless of elapsed time.
	if s.MinOverdueInterval < 0 {
		return fmt.Errorf("min_overdue_interval must be >= 0 (got %d)", s.MinOverdueInterval)
	}
	positive := []struct {
		name string
		v    int64
	}{
		{"rel_overdue_threshold", s.RelOverdueThreshold},
		{"init_after_success", s.InitAfterSuccess},
		{"init_after_failure", s.InitAfterFailure},
		{"success_multiplier", s.SuccessMultiplier},
		{"max_multiplier", s.MaxMultiplier},
		{"min_interval", s.MinInterval},
		{"failure_divisor", s.FailureDivisor},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", p.name, p.v)
		}
	}
	if s.FailurePolicy != "interval" && s.FailurePolicy != "untrack" {
		return fmt.Errorf("failure_policy must be interval or untrack (got %q)", s.FailurePolicy)
	}
	return nil
}

func (c *ContentConfig) validate() error {
	if strings.TrimSpace(c.Dir) == "" {
		return errors.New("dir is required")
	}
	c.Langs = ParseList(c.LangsRaw)
	if len(c.Langs) == 0 {
		return errors.New("langs must name at least one language")
	}
	return nil
}

// ParseList splits a comma-separated list, trimming blanks and dropping
// empty and repeated items.
func ParseList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" || slices.Contains(out, p) {
			continue
		}
		out = append(out, p)
	}
	return out
}
