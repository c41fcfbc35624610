package subscription

import (
	"math"
	"testing"
	"time"
)

func TestProrateCredit(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 30)

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"half period used", start.AddDate(0, 0, 15), 50},
		{"period just started", start, 100},
		{"period expired", end, 0},
		{"past expiry", end.AddDate(0, 0, 5), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := prorateCredit(100, start, end, tt.now)
			if math.Abs(got-tt.want) > 0.01 {
				t.Errorf("prorateCredit = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestProrateCreditZeroLengthPeriod(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := prorateCredit(100, at, at, at.Add(-time.Hour)); got != 0 {
		t.Errorf("zero-length period should yield no credit, got %f", got)
	}
}
