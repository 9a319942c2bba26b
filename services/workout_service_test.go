package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkoutSchedule(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc, err := NewWorkoutService(nil, start, time.UTC)
	require.NoError(t, err)

	tests := []struct {
		day      time.Time
		cycleDay int
		plan     string
		progress int
	}{
		{start, 1, PlanTraining, 14},
		{start.AddDate(0, 0, 1), 2, PlanRest, 29},
		{start.AddDate(0, 0, 6).Add(23 * time.Hour), 7, PlanTraining, 100},
		{start.AddDate(0, 0, 7), 1, PlanTraining, 14},
		{start.AddDate(0, 0, -1), 7, PlanTraining, 100},
		{start.AddDate(0, 0, -6), 2, PlanRest, 29},
	}
	for _, tc := range tests {
		t.Run(tc.day.Format(DateLayout), func(t *testing.T) {
			s := svc.Schedule(tc.day)
			assert.Equal(t, tc.cycleDay, s.CycleDay)
			assert.Equal(t, tc.plan, s.Plan)
			assert.Equal(t, tc.progress, s.Progress)
			assert.Equal(t, 7, s.CycleLength)
			if tc.plan == PlanTraining {
				require.Len(t, s.Items, 3)
				assert.Equal(t, "Bench Press", s.Items[0].Name)
			} else {
				assert.Empty(t, s.Items)
			}
		})
	}
}

func TestParseWorkoutCatalog(t *testing.T) {
	c, err := ParseWorkoutCatalog([]byte("cycleLength: 3\nexercises:\n  - id: 1\n    name: Row\n    sets: 5\n    reps: 5\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, c.CycleLength)
	assert.Equal(t, "Row", c.Exercises[0].Name)

	_, err = ParseWorkoutCatalog([]byte("cycleLength: 0\nexercises: [{id: 1}]\n"))
	assert.Error(t, err)
	_, err = ParseWorkoutCatalog([]byte("cycleLength: 7\n"))
	assert.Error(t, err)
	_, err = ParseWorkoutCatalog([]byte("cycleLength: [\n"))
	assert.Error(t, err)
}
