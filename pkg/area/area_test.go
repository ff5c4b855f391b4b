package area_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teams-transport/whdb/pkg/area"
)

func TestCaseArea(t *testing.T) {
	tests := []struct {
		name  string
		width string
		depth string
		want  string
	}{
		{
			name:  "two by one and a half feet",
			width: "24",
			depth: "18",
			want:  "3",
		},
		{
			name:  "square case",
			width: "48",
			depth: "48",
			want:  "16",
		},
		{
			name:  "fractional inches",
			width: "30.5",
			depth: "22.25",
			want:  "4.7127",
		},
		{
			name:  "rounds to four decimal places",
			width: "10",
			depth: "10",
			want:  "0.6944",
		},
		{
			name:  "zero width",
			width: "0",
			depth: "36",
			want:  "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := decimal.NewFromString(tt.width)
			require.NoError(t, err)
			d, err := decimal.NewFromString(tt.depth)
			require.NoError(t, err)

			got := area.CaseArea(w, d)
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(got),
				"want %s, got %s", want, got)
		})
	}
}

func TestRoundedCaseArea(t *testing.T) {
	tests := []struct {
		name  string
		width string
		depth string
		want  int64
	}{
		{
			name:  "exact result stays",
			width: "24",
			depth: "18",
			want:  3,
		},
		{
			name:  "rounds up above half",
			width: "10",
			depth: "10",
			want:  1, // 0.6944 sq ft
		},
		{
			name:  "half rounds away from zero",
			width: "36",
			depth: "14",
			want:  4, // 3.5 sq ft
		},
		{
			name:  "large case",
			width: "96",
			depth: "60",
			want:  40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := decimal.NewFromString(tt.width)
			require.NoError(t, err)
			d, err := decimal.NewFromString(tt.depth)
			require.NoError(t, err)

			assert.Equal(t, tt.want, area.RoundedCaseArea(w, d))
		})
	}
}

func TestCaseAreaFromFloat(t *testing.T) {
	got := area.CaseAreaFromFloat(24, 18)
	assert.True(t, got.Equal(decimal.NewFromInt(3)),
		"want 3, got %s", got)
}
