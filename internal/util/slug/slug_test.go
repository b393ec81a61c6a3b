package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		label    string
		expected string
	}{
		{"Accueil", "accueil"},
		{"Programme", "programme"},
		{"Qui sommes-nous ?", "qui-sommes-nous"},
		{"Réalisations", "realisations"},
		{"Commanditaires", "commanditaires"},
		{"Vente de billets", "vente-de-billets"},
		{"Scène & Régie", "scene-regie"},
		{"  espaces  multiples  ", "espaces-multiples"},
		{"2024 Saison", "2024-saison"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Make(tc.label); got != tc.expected {
			t.Errorf("Make(%q) = %q, want %q", tc.label, got, tc.expected)
		}
	}
}
