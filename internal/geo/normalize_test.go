package geo

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Kinshasa", "kinshasa"},
		{"Kasaï", "kasai"},
		{"Équateur", "equateur"},
		{"Maï-Ndombe", "mai-ndombe"},
		{"Kongo, Central?!", "kongo central"},
		{"  Nord   Kivu \t", "nord kivu"},
		{"KONGO-CENTRAL", "kongo-central"},
		{"(Bukavu)", "bukavu"},
		{"?!.,", ""},
		{"province 26", "province 26"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDashVariants(t *testing.T) {
	// En dash, em dash, minus sign and friends all fold to plain '-'.
	variants := []string{
		"Kasai-Central",
		"Kasai–Central", // en dash
		"Kasai—Central", // em dash
		"Kasai−Central", // minus sign
		"Kasai‐Central", // unicode hyphen
	}
	for _, v := range variants {
		if got := Normalize(v); got != "kasai-central" {
			t.Errorf("Normalize(%q) = %q, want %q", v, got, "kasai-central")
		}
	}

	// Hyphen and space remain distinct forms on purpose.
	if Normalize("Kasai-Central") == Normalize("Kasai Central") {
		t.Error("hyphenated and spaced forms should not normalize equal")
	}
}

func TestNormalizeDiacriticsEqual(t *testing.T) {
	if Normalize("Kasaï") != Normalize("Kasai") {
		t.Errorf("diacritic forms differ: %q vs %q", Normalize("Kasaï"), Normalize("Kasai"))
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Kasaï-Orientale?!", "  Kongo,, Central  ", "Nord—Kivu",
		"what's up in (Goma) today???", "ÉÈÀçñ", "a - b",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
