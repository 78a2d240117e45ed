package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCampaign_RemainingDays(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		duration  int
		expected  int
	}{
		{"fresh campaign", now, 30, 30},
		{"unsaved campaign uses now", time.Time{}, 30, 30},
		{"half elapsed rounds up", now.Add(-15*24*time.Hour - 12*time.Hour), 30, 15},
		{"one hour into a day still counts it", now.Add(-1 * time.Hour), 30, 30},
		{"ended exactly", now.Add(-30 * 24 * time.Hour), 30, 0},
		{"long past the end is floored at zero", now.Add(-90 * 24 * time.Hour), 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Campaign{CreatedAt: tt.createdAt, Duration: tt.duration}
			assert.Equal(t, tt.expected, c.RemainingDays(now))
		})
	}
}

func TestValidOrganizationType(t *testing.T) {
	for _, valid := range []string{"individual", "nonprofit", "business", "community"} {
		assert.True(t, ValidOrganizationType(valid), valid)
	}
	for _, invalid := range []string{"", "government", "Individual"} {
		assert.False(t, ValidOrganizationType(invalid), invalid)
	}
}

func TestCampaign_Summary(t *testing.T) {
	c := &Campaign{
		Title:           "Water Project",
		CreatorName:     "Alice",
		FullDescription: "the long part",
		DaysLeft:        12,
	}

	s := c.Summary()
	assert.Equal(t, "Water Project", s.Title)
	assert.Equal(t, "Alice", s.CreatorName)
	assert.Equal(t, 12, s.DaysLeft)
}
