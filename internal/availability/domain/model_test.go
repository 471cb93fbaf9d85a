package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"disjoint before", day(1), day(3), day(5), day(8), false},
		{"disjoint after", day(10), day(12), day(5), day(8), false},
		{"back to back checkout equals checkin", day(1), day(5), day(5), day(8), false},
		{"back to back checkin equals checkout", day(8), day(10), day(5), day(8), false},
		{"partial overlap left", day(3), day(6), day(5), day(8), true},
		{"partial overlap right", day(7), day(10), day(5), day(8), true},
		{"identical range", day(5), day(8), day(5), day(8), true},
		{"a contains b", day(1), day(10), day(5), day(8), true},
		{"b contains a", day(6), day(7), day(5), day(8), true},
		{"single night inside", day(6), day(7), day(5), day(8), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// The predicate is symmetric in its two intervals.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, time.March, 5, 23, 45, 12, 999, loc)

	got := DateOnly(in)

	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}
