package models

import (
	"encoding/json"
	"testing"
)

func TestNumericCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"plain number", `12.5`, 12.5},
		{"numeric string", `"10.750"`, 10.75},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
		{"garbage string", `"abc"`, 0},
		{"integer", `200`, 200},
	}

	for _, tc := range cases {
		var n Numeric
		if err := json.Unmarshal([]byte(tc.in), &n); err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
			continue
		}
		if n.Float64() != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, n.Float64(), tc.want)
		}
	}
}

func TestNumericInsideStruct(t *testing.T) {
	var row struct {
		GrossWeight Numeric `json:"gross_weight"`
		Rate        Numeric `json:"rate"`
	}
	// Missing fields stay zero, string weights still parse.
	if err := json.Unmarshal([]byte(`{"gross_weight":"11.5"}`), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.GrossWeight != 11.5 || row.Rate != 0 {
		t.Errorf("got %v/%v, want 11.5/0", row.GrossWeight, row.Rate)
	}
}
