// Package domain holds the types shared across mapai services: externally
// published region records and the chat sessions persisted per visitor.
package domain

import "time"

// Region is one record from the external region catalog. RegionID is the
// identifier the conversational backend expects; ProvinceName and RegionName
// cross-reference the geographic catalog's canonical province names. Lat and
// Long stay strings because that is how the upstream API publishes them.
type Region struct {
	RegionID     string    `json:"region_id"`
	RegionName   string    `json:"region_name"`
	ProvinceName string    `json:"province_name,omitempty"`
	Lat          string    `json:"lat,omitempty"`
	Long         string    `json:"long,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	FetchedAt    time.Time `json:"-"`
}

// DisplayName prefers the explicit province name over the region label.
func (r Region) DisplayName() string {
	if r.ProvinceName != "" {
		return r.ProvinceName
	}
	return r.RegionName
}
