//go:build unit

package clock_test

import (
	"testing"
	"time"

	"court-reservations/internal/pkg/clock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := clock.NewRealClock(loc).Now()
	assert.Equal(t, loc, now.Location())
}

func TestMockClock(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)
	assert.Equal(t, start, c.Now())

	c.Add(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), c.Now())

	later := start.AddDate(0, 0, 1)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}

func TestLoadLocation(t *testing.T) {
	loc, err := clock.LoadLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = clock.LoadLocation("Not/AZone")
	assert.Error(t, err)
}
