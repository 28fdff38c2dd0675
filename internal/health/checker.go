// Package health provides periodic health checks for the mapai daemon:
// database connectivity, the province dataset, and the upstream assistant.
package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/infra/assistant"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// Check defines a single health check.
type Check struct {
	Name    string
	CheckFn func(ctx context.Context) error
}

// Status represents the result of a health check.
type Status struct {
	Name      string    `json:"name"`
	Healthy   bool      `json:"healthy"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker runs periodic health checks.
type Checker struct {
	mu       sync.RWMutex
	checks   []Check
	statuses []Status
	interval time.Duration
}

// NewChecker creates a checker with the standard three checks. The assistant
// check is skipped when no client is configured.
func NewChecker(db *sqlite.DB, datasetPath string, chatClient *assistant.Client) *Checker {
	checks := []Check{
		{
			Name: "sqlite",
			CheckFn: func(ctx context.Context) error {
				return db.Ping()
			},
		},
		{
			Name: "dataset",
			CheckFn: func(ctx context.Context) error {
				return checkDataset(datasetPath)
			},
		},
	}
	if chatClient != nil {
		checks = append(checks, Check{
			Name: "assistant",
			CheckFn: func(ctx context.Context) error {
				ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				return chatClient.Ping(ctx)
			},
		})
	}
	return &Checker{interval: 60 * time.Second, checks: checks}
}

// Run starts the health check loop. Call in a goroutine.
func (c *Checker) Run(ctx context.Context) {
	// Run immediately on start
	c.runAll(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.runAll(ctx)
		}
	}
}

func (c *Checker) runAll(ctx context.Context) {
	statuses := make([]Status, len(c.checks))
	for i, check := range c.checks {
		s := Status{
			Name:      check.Name,
			CheckedAt: time.Now(),
		}
		if err := check.CheckFn(ctx); err != nil {
			s.Healthy = false
			s.Error = err.Error()
		} else {
			s.Healthy = true
		}
		statuses[i] = s
	}

	c.mu.Lock()
	c.statuses = statuses
	c.mu.Unlock()
}

// Statuses returns the latest health check results.
func (c *Checker) Statuses() []Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]Status, len(c.statuses))
	copy(result, c.statuses)
	return result
}

// IsHealthy returns true if all checks pass.
func (c *Checker) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.statuses {
		if !s.Healthy {
			return false
		}
	}
	return true
}

// checkDataset verifies the boundary file parses and yields at least one
// named feature.
func checkDataset(path string) error {
	if path == "" {
		return fmt.Errorf("no dataset configured")
	}
	fc, err := geo.LoadDataset(path)
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	for _, f := range fc.Features {
		if f.DisplayName() != "" {
			return nil
		}
	}
	return fmt.Errorf("dataset has no named features")
}
