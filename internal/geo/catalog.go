package geo

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// nameKeys is the ordered property-key fallback chain for province display
// names. Upstream boundary exports disagree on which key carries the name.
var nameKeys = []string{"adm1_name", "NAME_1", "name"}

// Feature is one administrative boundary from the GeoJSON dataset. Geometry
// is opaque to the resolver; it is only carried so the API can re-serve it to
// the map layer.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// FeatureCollection is the GeoJSON document the catalog is built from.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// LoadDataset reads and parses the province boundary GeoJSON.
func LoadDataset(path string) (*FeatureCollection, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &fc, nil
}

// DisplayName extracts the feature's province name, trying each known
// property key in order. Returns "" when none is present.
func (f Feature) DisplayName() string {
	for _, k := range nameKeys {
		if v, ok := f.Properties[k]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// Index maps normalized lookup keys to canonical province display names.
// Keys are unique; several keys (the name itself plus every alias) may map to
// the same canonical name. Built once at startup, read-only afterwards, so it
// is safe to share across concurrent chat sessions without locking.
type Index struct {
	byKey map[string]string
}

// BuildIndex compiles the lookup index from the dataset plus the alias table.
// Construction never fails: features without a recognizable name are skipped,
// and alias targets missing from the dataset fall back to the alias table's
// own spelling.
func BuildIndex(fc *FeatureCollection) *Index {
	names := make(map[string]struct{})
	if fc != nil {
		for _, f := range fc.Features {
			if n := f.DisplayName(); n != "" {
				names[n] = struct{}{}
			}
		}
	}

	byKey := make(map[string]string, len(names)*2)
	for n := range names {
		if k := Normalize(n); k != "" {
			byKey[k] = n
		}
	}

	// resolve prefers the dataset's exact spelling for a canonical name.
	resolve := func(canon string) string {
		want := Normalize(canon)
		for n := range names {
			if Normalize(n) == want {
				return n
			}
		}
		return canon
	}

	for canon, aliases := range ProvinceAliases {
		target := resolve(canon)
		for _, a := range aliases {
			if k := Normalize(a); k != "" {
				byKey[k] = target
			}
		}
	}

	// Hardening: every province from the closed list stays resolvable even
	// when the dataset spelling drifts or a feature is missing outright.
	for _, p := range Provinces {
		k := Normalize(p)
		if k == "" {
			continue
		}
		if _, ok := byKey[k]; !ok {
			byKey[k] = resolve(p)
		}
	}

	return &Index{byKey: byKey}
}

// Lookup returns the canonical province name for a normalized key.
func (idx *Index) Lookup(key string) (string, bool) {
	v, ok := idx.byKey[key]
	return v, ok
}

// Len reports how many lookup keys the index holds.
func (idx *Index) Len() int { return len(idx.byKey) }

// CanonicalNames returns the distinct canonical province names, sorted.
func (idx *Index) CanonicalNames() []string {
	seen := make(map[string]struct{}, len(idx.byKey))
	out := make([]string, 0, len(idx.byKey))
	for _, v := range idx.byKey {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
