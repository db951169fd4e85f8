package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
)

func clock(s string) *activities.Clock {
	c := activities.Clock(s)
	return &c
}

// monday returns 2024-03-04, a Monday, at the given time in UTC.
func monday(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.UTC)
}

func TestActiveContexts(t *testing.T) {
	all := []activities.Context{
		{ID: 1, Name: "work", Label: "Work", Days: []activities.Weekday{activities.Monday, activities.Tuesday}, TimeStart: clock("09:00"), TimeEnd: clock("17:00")},
		{ID: 2, Name: "always", Label: "Always"},
		{ID: 3, Name: "weekend", Label: "Weekend", Days: []activities.Weekday{activities.Saturday, activities.Sunday}},
		{ID: 4, Name: "night", Label: "Night", TimeStart: clock("22:00"), TimeEnd: clock("06:00")},
		{ID: 5, Name: "half", Label: "Half", TimeStart: clock("20:00")},
		{ID: 6, Name: "empty-days", Label: "Empty days", Days: []activities.Weekday{}},
	}

	t.Run("monday morning", func(t *testing.T) {
		active := ActiveContexts(all, monday(10, 0))
		assert.Equal(t, []int64{1, 2, 5}, ids(active))
	})

	t.Run("monday night", func(t *testing.T) {
		active := ActiveContexts(all, monday(23, 30))
		assert.Equal(t, []int64{2, 4, 5}, ids(active))
	})

	t.Run("after midnight", func(t *testing.T) {
		active := ActiveContexts(all, monday(0, 30))
		assert.Equal(t, []int64{2, 4, 5}, ids(active))
	})

	t.Run("sunday", func(t *testing.T) {
		sunday := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)
		active := ActiveContexts(all, sunday)
		assert.Equal(t, []int64{2, 3, 5}, ids(active))
	})

	t.Run("empty day list matches no day", func(t *testing.T) {
		for d := 0; d < 7; d++ {
			now := monday(10, 0).AddDate(0, 0, d)
			assert.Empty(t, ActiveContexts(all[5:], now), now.Weekday().String())
		}
	})

	t.Run("no contexts", func(t *testing.T) {
		active := ActiveContexts(nil, monday(10, 0))
		assert.NotNil(t, active)
		assert.Empty(t, active)
	})
}

func TestActiveContexts_UsesLocationOfNow(t *testing.T) {
	madrid := time.FixedZone("CET", 60*60)
	work := []activities.Context{
		{ID: 1, Name: "work", Label: "Work", Days: []activities.Weekday{activities.Monday}, TimeStart: clock("09:00"), TimeEnd: clock("17:00")},
	}
	// 08:30 UTC is 09:30 in UTC+1.
	now := monday(8, 30)
	assert.Empty(t, ActiveContexts(work, now))
	assert.Len(t, ActiveContexts(work, now.In(madrid)), 1)
}

func TestContextInput(t *testing.T) {
	all := []activities.Context{
		{ID: 1, Label: "Work", TimeStart: clock("09:00"), TimeEnd: clock("17:00")},
		{ID: 2, Label: "Evening", TimeStart: clock("18:00"), TimeEnd: clock("22:00")},
	}

	assert.Equal(t, []int64{1}, ids(FromAllContexts(all).Active(monday(10, 0))))
	// Pre-computed lists are trusted as given.
	assert.Equal(t, []int64{1, 2}, ids(FromActiveContexts(all).Active(monday(10, 0))))
	assert.NotNil(t, FromActiveContexts(nil).Active(monday(10, 0)))
}

func ids(cs []activities.Context) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
