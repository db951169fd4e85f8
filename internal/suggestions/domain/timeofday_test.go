package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay(" Morning ")
	require.NoError(t, err)
	assert.Equal(t, Morning, tod)

	_, err = ParseTimeOfDay("noon")
	assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
}

func TestFilterByTimeOfDay(t *testing.T) {
	slot := func(id int64, start, end activities.Clock) activities.Activity {
		return activities.Activity{ID: id, TimeSlots: []activities.TimeSlot{{TimeStart: start, TimeEnd: end}}}
	}
	withContext := func(id int64, start, end string) activities.Activity {
		return activities.Activity{ID: id, Contexts: []activities.Context{{ID: id, Label: "c", TimeStart: clock(start), TimeEnd: clock(end)}}}
	}

	completed := slot(1, "07:00", "08:00")
	completed.IsCompleted = true

	// Slots take precedence over contexts.
	slotWins := slot(6, "19:00", "20:00")
	slotWins.Contexts = []activities.Context{{ID: 1, Label: "c", TimeStart: clock("07:00"), TimeEnd: clock("08:00")}}

	all := []activities.Activity{
		completed,
		slot(2, "07:00", "08:00"),
		slot(3, "11:00", "13:00"),
		withContext(4, "06:00", "12:00"),
		{ID: 5, Contexts: []activities.Context{{ID: 5, Label: "all day"}}},
		slotWins,
		slot(7, "23:30", "05:00"),
	}

	// Bounds are compared literally, so the slot crossing midnight passes
	// every period's check.
	assert.Equal(t, []int64{2, 4, 7}, activityIDs(FilterByTimeOfDay(all, Morning)))
	assert.Equal(t, []int64{7}, activityIDs(FilterByTimeOfDay(all, Afternoon)))
	assert.Equal(t, []int64{6, 7}, activityIDs(FilterByTimeOfDay(all, Evening)))
	assert.Equal(t, []int64{7}, activityIDs(FilterByTimeOfDay(all, Night)))
	assert.Empty(t, FilterByTimeOfDay(all, TimeOfDay("noon")))
}

func activityIDs(as []activities.Activity) []int64 {
	out := make([]int64, 0, len(as))
	for _, a := range as {
		out = append(out, a.ID)
	}
	return out
}
