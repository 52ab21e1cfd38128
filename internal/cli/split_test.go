package cli

import (
	"testing"

	"github.com/pawlygon/shapekit/pkg/roster"
)

func TestResolvePair(t *testing.T) {
	rs := &roster.Set{Pairs: []roster.Pair{
		{A: "Left", B: "Right"},
		{A: "Upper", B: "Lower"},
	}}

	tests := []struct {
		name    string
		pair    string
		groups  string
		want    roster.Pair
		wantErr bool
	}{
		{"default first pair", "", "", roster.Pair{A: "Left", B: "Right"}, false},
		{"named pair", "Upper/Lower", "", roster.Pair{A: "Upper", B: "Lower"}, false},
		{"unknown pair", "Front/Back", "", roster.Pair{}, true},
		{"explicit groups", "", "L_side,R_side", roster.Pair{A: "L_side", B: "R_side"}, false},
		{"explicit groups with spaces", "", "L side, R side", roster.Pair{A: "L side", B: "R side"}, false},
		{"groups win over pair", "Upper/Lower", "X,Y", roster.Pair{A: "X", B: "Y"}, false},
		{"malformed groups", "", "only-one", roster.Pair{}, true},
		{"empty side", "", "A,", roster.Pair{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvePair(rs, tt.pair, tt.groups)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolvePair() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolvePair() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolvePairNoneConfigured(t *testing.T) {
	if _, err := resolvePair(&roster.Set{}, "", ""); err == nil {
		t.Error("resolvePair() with no pairs returned nil error")
	}
}
