package fasting_test

import (
	"testing"

	"github.com/nutrifast/backend/internal/fasting"
	"github.com/stretchr/testify/assert"
)

func TestScheduleFastingHours(t *testing.T) {
	assert.Equal(t, 12, fasting.Schedule12_12.FastingHours(0))
	assert.Equal(t, 16, fasting.Schedule16_8.FastingHours(0))
	assert.Equal(t, 20, fasting.Schedule20_4.FastingHours(0))
	assert.Equal(t, 13, fasting.ScheduleCustom.FastingHours(13))
}

func TestClampCustomHours(t *testing.T) {
	assert.Equal(t, 23, fasting.ClampCustomHours(30))
	assert.Equal(t, 1, fasting.ClampCustomHours(0))
	assert.Equal(t, 1, fasting.ClampCustomHours(-5))
	assert.Equal(t, 16, fasting.ClampCustomHours(16))
}

func TestParseScheduleFallback(t *testing.T) {
	assert.Equal(t, fasting.Schedule18_6, fasting.ParseSchedule("18:6"))
	assert.Equal(t, fasting.ScheduleCustom, fasting.ParseSchedule("custom"))
	assert.Equal(t, fasting.DefaultSchedule, fasting.ParseSchedule("nonsense"))
}

func TestMilestonesOrdered(t *testing.T) {
	for i := 1; i < len(fasting.Milestones); i++ {
		assert.Greater(t, fasting.Milestones[i].Hours, fasting.Milestones[i-1].Hours)
	}
}
