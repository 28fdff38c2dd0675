package geo

import (
	"path/filepath"
	"testing"
)

func loadTestIndex(t *testing.T) (*FeatureCollection, *Index) {
	t.Helper()
	fc, err := LoadDataset(filepath.Join("testdata", "provinces.geojson"))
	if err != nil {
		t.Fatalf("LoadDataset: %v", err)
	}
	return fc, BuildIndex(fc)
}

func TestDisplayNameFallbackChain(t *testing.T) {
	tests := []struct {
		props map[string]interface{}
		want  string
	}{
		{map[string]interface{}{"adm1_name": "Kwilu"}, "Kwilu"},
		{map[string]interface{}{"NAME_1": "Kwango"}, "Kwango"},
		{map[string]interface{}{"name": "Mongala"}, "Mongala"},
		// Primary key wins over alternates.
		{map[string]interface{}{"adm1_name": "Ituri", "name": "wrong"}, "Ituri"},
		// Blank primary falls through.
		{map[string]interface{}{"adm1_name": "  ", "NAME_1": "Sankuru"}, "Sankuru"},
		{map[string]interface{}{"pcode": "CD00"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		f := Feature{Properties: tt.props}
		if got := f.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tt.props, got, tt.want)
		}
	}
}

func TestBuildIndexFromDataset(t *testing.T) {
	_, idx := loadTestIndex(t)

	// Every dataset name resolves to itself, whichever property key held it.
	for _, name := range []string{"Kongo-Central", "Kasai", "Kasai-Central", "Kasai-Oriental", "Nord-Kivu"} {
		got, ok := idx.Lookup(Normalize(name))
		if !ok || got != name {
			t.Errorf("Lookup(%q) = %q, %v; want %q", Normalize(name), got, ok, name)
		}
	}

	// Aliases resolve to the dataset's exact spelling.
	aliases := map[string]string{
		"bas-congo":  "Kongo-Central",
		"bas congo":  "Kongo-Central",
		"goma":       "Nord-Kivu",
		"north kivu": "Nord-Kivu",
		"kananga":    "Kasai-Central",
		"mbuji-mayi": "Kasai-Oriental",
	}
	for key, want := range aliases {
		got, ok := idx.Lookup(key)
		if !ok || got != want {
			t.Errorf("Lookup(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
}

func TestBuildIndexHardensClosedList(t *testing.T) {
	// The fixture dataset only has five features; the closed list still
	// guarantees every province a key, using the list's own spelling.
	_, idx := loadTestIndex(t)
	for _, p := range Provinces {
		got, ok := idx.Lookup(Normalize(p))
		if !ok {
			t.Errorf("province %q missing from hardened index", p)
			continue
		}
		if got == "" {
			t.Errorf("province %q resolves to empty canonical name", p)
		}
	}

	if got, _ := idx.Lookup("tshopo"); got != "Tshopo" {
		t.Errorf("Lookup(tshopo) = %q, want %q", got, "Tshopo")
	}
}

func TestBuildIndexNeverFails(t *testing.T) {
	// Nil and empty datasets still produce a usable alias-only index.
	for _, fc := range []*FeatureCollection{nil, {}, {Features: []Feature{{}}}} {
		idx := BuildIndex(fc)
		if idx == nil {
			t.Fatal("BuildIndex returned nil")
		}
		if got, ok := idx.Lookup("goma"); !ok || got != "Nord-Kivu" {
			t.Errorf("alias lookup on degraded index = %q, %v", got, ok)
		}
	}
}

func TestCanonicalNames(t *testing.T) {
	_, idx := loadTestIndex(t)
	names := idx.CanonicalNames()
	if len(names) < len(Provinces) {
		t.Fatalf("CanonicalNames() returned %d names, want at least %d", len(names), len(Provinces))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("CanonicalNames not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
