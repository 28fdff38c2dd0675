package sqlite

import (
	"fmt"
	"time"

	"github.com/enttlevo/mapai/internal/domain"
)

// ─── Region cache ───────────────────────────────────────────────────────────

// UpsertRegions replaces the cached copy of the external region catalog in a
// single transaction.
func (d *DB) UpsertRegions(regions []domain.Region, fetchedAt time.Time) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range regions {
		if r.RegionID == "" {
			continue
		}
		_, err := tx.Exec(
			`INSERT INTO regions (region_id, region_name, province_name, lat, long, summary, fetched_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(region_id) DO UPDATE SET
				region_name = excluded.region_name,
				province_name = excluded.province_name,
				lat = excluded.lat,
				long = excluded.long,
				summary = excluded.summary,
				fetched_at = excluded.fetched_at`,
			r.RegionID, r.RegionName, r.ProvinceName, r.Lat, r.Long, r.Summary, fetchedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("upsert region %s: %w", r.RegionID, err)
		}
	}
	return tx.Commit()
}

// ListRegions returns the cached region catalog, alphabetical by name.
func (d *DB) ListRegions() ([]domain.Region, error) {
	rows, err := d.db.Query(
		`SELECT region_id, region_name, province_name, lat, long, summary, fetched_at
		 FROM regions ORDER BY region_name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []domain.Region
	for rows.Next() {
		var r domain.Region
		var fetched int64
		if err := rows.Scan(&r.RegionID, &r.RegionName, &r.ProvinceName, &r.Lat, &r.Long, &r.Summary, &fetched); err != nil {
			return nil, err
		}
		r.FetchedAt = time.Unix(fetched, 0)
		regions = append(regions, r)
	}
	return regions, rows.Err()
}

// CountRegions reports how many region records are cached.
func (d *DB) CountRegions() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM regions`).Scan(&n)
	return n, err
}
