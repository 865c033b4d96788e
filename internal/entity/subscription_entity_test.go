package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRemainingDaysNeverNegative(t *testing.T) {
	today := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ended yesterday", time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC), 0},
		{"ended a month ago", time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC), 0},
		{"ends today at midnight", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 0},
		{"ends today in the evening", time.Date(2025, 6, 15, 22, 0, 0, 0, time.UTC), 0},
		{"ends tomorrow", time.Date(2025, 6, 16, 1, 0, 0, 0, time.UTC), 1},
		{"ends in three days", time.Date(2025, 6, 18, 8, 0, 0, 0, time.UTC), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemainingDays(tt.end, today)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}
