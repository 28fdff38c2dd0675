// Package registry manages the external region catalog: records fetched from
// the upstream region API, cached write-through in SQLite so the map keeps
// working when the upstream is down.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/enttlevo/mapai/internal/domain"
	"github.com/enttlevo/mapai/internal/geo"
	"github.com/enttlevo/mapai/internal/infra/metrics"
	"github.com/enttlevo/mapai/internal/infra/sqlite"
)

// Manager fetches and caches region records.
type Manager struct {
	url    string
	client *http.Client
	db     *sqlite.DB
	ttl    time.Duration

	mu      sync.Mutex
	fetched time.Time
}

// NewManager creates a Manager fetching from url, caching in db, refreshing
// lazily once the cached copy is older than ttl.
func NewManager(url string, db *sqlite.DB, ttl time.Duration) *Manager {
	return &Manager{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		db:     db,
		ttl:    ttl,
	}
}

// regionRecord is the upstream wire shape (Xano-style region rows).
type regionRecord struct {
	ID           int64  `json:"id"`
	CreatedAt    int64  `json:"created_at"`
	RegionID     string `json:"region_id"`
	RegionName   string `json:"region_name"`
	ProvinceName string `json:"province_name"`
	Lat          string `json:"lat"`
	Long         string `json:"long"`
	Summary      string `json:"summary"`
}

// Refresh fetches the catalog from upstream and replaces the cache.
func (m *Manager) Refresh(ctx context.Context) error {
	if m.url == "" {
		return errors.New("no regions url configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return err
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch regions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("fetch regions: status %d", resp.StatusCode)
	}

	var records []regionRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return fmt.Errorf("decode regions: %w", err)
	}

	now := time.Now()
	regions := make([]domain.Region, 0, len(records))
	for _, rec := range records {
		if rec.RegionID == "" || rec.RegionName == "" {
			continue
		}
		regions = append(regions, domain.Region{
			RegionID:     rec.RegionID,
			RegionName:   rec.RegionName,
			ProvinceName: rec.ProvinceName,
			Lat:          rec.Lat,
			Long:         rec.Long,
			Summary:      rec.Summary,
			FetchedAt:    now,
		})
	}

	if err := m.db.UpsertRegions(regions, now); err != nil {
		return err
	}

	m.mu.Lock()
	m.fetched = now
	m.mu.Unlock()

	if n, err := m.db.CountRegions(); err == nil {
		metrics.RegionsCached.Set(float64(n))
	}
	return nil
}

// List returns the region catalog, refreshing from upstream when the cached
// copy is stale. An upstream failure falls back to the cache; only an empty
// cache makes it an error.
func (m *Manager) List(ctx context.Context) ([]domain.Region, error) {
	m.mu.Lock()
	stale := time.Since(m.fetched) > m.ttl
	m.mu.Unlock()

	if stale {
		if err := m.Refresh(ctx); err != nil {
			log.Printf("[registry] refresh failed, serving cache: %v", err)
		}
	}

	regions, err := m.db.ListRegions()
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, domain.ErrRegionsDown
	}
	return regions, nil
}

// FindByProvince cross-references a resolved canonical province name against
// the catalog's province_name (falling back to region_name), using the same
// normalization the resolver matches with.
func (m *Manager) FindByProvince(ctx context.Context, province string) (domain.Region, bool) {
	regions, err := m.List(ctx)
	if err != nil {
		return domain.Region{}, false
	}

	want := geo.Normalize(province)
	if want == "" {
		return domain.Region{}, false
	}
	for _, r := range regions {
		if geo.Normalize(r.ProvinceName) == want {
			return r, true
		}
	}
	for _, r := range regions {
		if geo.Normalize(r.RegionName) == want {
			return r, true
		}
	}
	return domain.Region{}, false
}
