package queries

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/suggestions/domain"
)

// monday returns Monday 2024-03-04 at hh:mm UTC.
func monday(hh, mm int) time.Time {
	return time.Date(2024, 3, 4, hh, mm, 0, 0, time.UTC)
}

func clock(s string) *activities.Clock {
	c := activities.Clock(s)
	return &c
}

type fakeActivities struct {
	list    []activities.Activity
	err     error
	filters []activities.ActivityFilter
	// onList runs after the list is read, before it is returned.
	onList func()
}

func (f *fakeActivities) List(_ context.Context, filter activities.ActivityFilter) ([]activities.Activity, error) {
	f.filters = append(f.filters, filter)
	list := f.list
	if f.onList != nil {
		f.onList()
	}
	return list, f.err
}

type fakeContexts struct {
	all       []activities.Context
	active    []activities.Context
	err       error
	listCalls int
	activeAt  []time.Time
}

func (f *fakeContexts) List(context.Context) ([]activities.Context, error) {
	f.listCalls++
	return f.all, f.err
}

func (f *fakeContexts) FindActive(_ context.Context, now time.Time) ([]activities.Context, error) {
	f.activeAt = append(f.activeAt, now)
	return f.active, f.err
}

type mapCache struct {
	entries    map[string][]SuggestionDTO
	generation int64
	gets       int
	err        error
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]SuggestionDTO{}}
}

func cacheKeyString(k CacheKey) string {
	category := "all"
	if k.CategoryID != nil {
		category = fmt.Sprint(*k.CategoryID)
	}
	return fmt.Sprintf("%d|%s|%d|%s", k.Generation, k.Minute.Format(time.RFC3339), k.Limit, category)
}

func (c *mapCache) Generation(context.Context) (int64, error) {
	return c.generation, c.err
}

func (c *mapCache) invalidate() {
	c.generation++
}

func (c *mapCache) Get(_ context.Context, key CacheKey) ([]SuggestionDTO, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.entries[cacheKeyString(key)]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key CacheKey, s []SuggestionDTO) error {
	if c.err != nil {
		return c.err
	}
	c.entries[cacheKeyString(key)] = s
	return nil
}

func work() activities.Context {
	return activities.Context{ID: 1, Name: "work", Label: "Trabajo", TimeStart: clock("09:00"), TimeEnd: clock("17:00")}
}

func sampleActivities() []activities.Activity {
	return []activities.Activity{
		{ID: 1, Title: "Deep work", Priority: activities.PriorityUrgent, Contexts: []activities.Context{work()}},
		{ID: 2, Title: "Evening run", Priority: activities.PriorityImportant,
			TimeSlots: []activities.TimeSlot{{TimeStart: "19:00", TimeEnd: "20:00"}}},
		{ID: 3, Title: "Unscheduled", Priority: activities.PriorityUrgent},
	}
}

func TestGetSuggestionsHandler_EvaluateMode(t *testing.T) {
	acts := &fakeActivities{list: sampleActivities()}
	ctxs := &fakeContexts{all: []activities.Context{work()}}
	handler := NewGetSuggestionsHandler(acts, ctxs, nil, Settings{Location: time.UTC}, nil)

	got, err := handler.Handle(context.Background(), GetSuggestionsQuery{Now: monday(10, 0)})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Deep work", got[0].Title)
	assert.Equal(t, domain.ContextMatchPoints+domain.UrgentPoints, got[0].Score)
	assert.Contains(t, got[0].Reason, "Trabajo")
	assert.Equal(t, 1, ctxs.listCalls)

	require.Len(t, acts.filters, 1)
	require.NotNil(t, acts.filters[0].IsCompleted)
	assert.False(t, *acts.filters[0].IsCompleted)
}

func TestGetSuggestionsHandler_StoreMode(t *testing.T) {
	acts := &fakeActivities{list: sampleActivities()}
	ctxs := &fakeContexts{active: []activities.Context{work()}}
	madrid, err := time.LoadLocation("Europe/Madrid")
	require.NoError(t, err)

	handler := NewGetSuggestionsHandler(acts, ctxs, nil, Settings{Location: madrid, Mode: ContextModeStore}, nil)
	got, err := handler.Handle(context.Background(), GetSuggestionsQuery{Now: monday(9, 30)})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Zero(t, ctxs.listCalls)
	require.Len(t, ctxs.activeAt, 1)
	assert.Equal(t, madrid, ctxs.activeAt[0].Location())
	assert.Equal(t, 10, ctxs.activeAt[0].Hour())
}

func TestGetSuggestionsHandler_Limit(t *testing.T) {
	many := make([]activities.Activity, 0, 15)
	for i := range 15 {
		many = append(many, activities.Activity{ID: int64(i + 1), Title: "a", Contexts: []activities.Context{work()}})
	}
	ctx := context.Background()

	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default", nil, domain.DefaultLimit},
		{"explicit", func() *int { n := 3; return &n }(), 3},
		{"zero", func() *int { n := 0; return &n }(), 0},
		{"negative", func() *int { n := -1; return &n }(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewGetSuggestionsHandler(
				&fakeActivities{list: many},
				&fakeContexts{all: []activities.Context{work()}},
				nil, Settings{Location: time.UTC}, nil,
			)
			got, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0), Limit: tt.limit})
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestGetSuggestionsHandler_UsesClock(t *testing.T) {
	handler := NewGetSuggestionsHandler(
		&fakeActivities{list: sampleActivities()},
		&fakeContexts{all: []activities.Context{work()}},
		nil,
		Settings{Location: time.UTC, Now: func() time.Time { return monday(19, 15) }},
		nil,
	)
	got, err := handler.Handle(context.Background(), GetSuggestionsQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Evening run", got[0].Title)
}

func TestGetSuggestionsHandler_SourceFailures(t *testing.T) {
	ctx := context.Background()
	now := GetSuggestionsQuery{Now: monday(10, 0)}

	handler := NewGetSuggestionsHandler(&fakeActivities{err: errors.New("db down")}, &fakeContexts{}, nil, Settings{}, nil)
	_, err := handler.Handle(ctx, now)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorContains(t, err, "db down")

	handler = NewGetSuggestionsHandler(&fakeActivities{}, &fakeContexts{err: errors.New("db down")}, nil, Settings{}, nil)
	_, err = handler.Handle(ctx, now)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestGetSuggestionsHandler_Cache(t *testing.T) {
	ctx := context.Background()
	acts := &fakeActivities{list: sampleActivities()}
	cache := newMapCache()
	handler := NewGetSuggestionsHandler(acts, &fakeContexts{all: []activities.Context{work()}}, cache, Settings{Location: time.UTC}, nil)

	first, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0)})
	require.NoError(t, err)
	second, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0).Add(30 * time.Second)})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, acts.filters, 1, "second call within the minute is served from cache")

	_, err = handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 1)})
	require.NoError(t, err)
	assert.Len(t, acts.filters, 2)
}

func TestGetSuggestionsHandler_CacheErrorsAreIgnored(t *testing.T) {
	cache := newMapCache()
	cache.err = errors.New("redis down")
	handler := NewGetSuggestionsHandler(
		&fakeActivities{list: sampleActivities()},
		&fakeContexts{all: []activities.Context{work()}},
		cache, Settings{Location: time.UTC}, nil,
	)
	got, err := handler.Handle(context.Background(), GetSuggestionsQuery{Now: monday(10, 0)})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Zero(t, cache.gets)
	assert.Empty(t, cache.entries)
}

func TestGetSuggestionsHandler_ScoresStartOfMinute(t *testing.T) {
	ctx := context.Background()
	completed := monday(8, 0).Add(30 * time.Second)
	deepWork := activities.Activity{
		ID: 1, Title: "Deep work", Priority: activities.PriorityUrgent,
		Contexts: []activities.Context{work()}, LastCompleted: &completed,
	}
	acts := &fakeActivities{list: []activities.Activity{deepWork}}
	handler := NewGetSuggestionsHandler(acts, &fakeContexts{all: []activities.Context{work()}}, newMapCache(), Settings{Location: time.UTC}, nil)

	late, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0).Add(59 * time.Second)})
	require.NoError(t, err)
	early, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0).Add(10 * time.Second)})
	require.NoError(t, err)

	want := domain.Suggest(acts.list, []activities.Context{work()}, monday(10, 0), domain.Options{Limit: domain.DefaultLimit})
	require.Len(t, want, 1)
	for _, got := range [][]SuggestionDTO{late, early} {
		require.Len(t, got, 1)
		assert.Equal(t, want[0].Score, got[0].Score)
		assert.Equal(t, want[0].Reasons, got[0].Reasons)
	}
	assert.Equal(t, domain.ContextMatchPoints+domain.UrgentPoints-domain.RecentPenaltyPoints, early[0].Score)
	assert.Contains(t, early[0].Reasons, "Completada recientemente")
	assert.Len(t, acts.filters, 1)

	// Uncached, the handler gives the same answer anywhere in the minute.
	uncached := NewGetSuggestionsHandler(acts, &fakeContexts{all: []activities.Context{work()}}, nil, Settings{Location: time.UTC}, nil)
	got, err := uncached.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0).Add(10 * time.Second)})
	require.NoError(t, err)
	assert.Equal(t, early, got)
}

func TestGetSuggestionsHandler_ChangeDuringComputeIsNotCached(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	acts := &fakeActivities{list: sampleActivities()}
	acts.onList = func() {
		// A write commits and invalidates while the old list is scored.
		acts.list = acts.list[:0:0]
		cache.invalidate()
		acts.onList = nil
	}
	handler := NewGetSuggestionsHandler(acts, &fakeContexts{all: []activities.Context{work()}}, cache, Settings{Location: time.UTC}, nil)

	stale, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0)})
	require.NoError(t, err)
	assert.Len(t, stale, 1)

	fresh, err := handler.Handle(ctx, GetSuggestionsQuery{Now: monday(10, 0).Add(20 * time.Second)})
	require.NoError(t, err)
	assert.Empty(t, fresh)
	assert.Len(t, acts.filters, 2, "the second call recomputes")
}

func TestGetActiveContextsHandler(t *testing.T) {
	ctx := context.Background()
	home := activities.Context{ID: 2, Name: "home", Label: "Casa"}
	night := activities.Context{ID: 3, Name: "night", Label: "Noche", TimeStart: clock("22:00"), TimeEnd: clock("02:00")}
	all := []activities.Context{work(), home, night}

	handler := NewGetActiveContextsHandler(&fakeContexts{all: all}, Settings{Location: time.UTC})
	got, err := handler.Handle(ctx, monday(10, 0))
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, contextIDs(got))

	got, err = handler.Handle(ctx, monday(23, 30))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, contextIDs(got))

	store := NewGetActiveContextsHandler(&fakeContexts{}, Settings{Mode: ContextModeStore})
	got, err = store.Handle(ctx, monday(10, 0))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func contextIDs(cs []activities.Context) []int64 {
	ids := make([]int64, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestActivitiesByTimeOfDayHandler(t *testing.T) {
	ctx := context.Background()
	handler := NewActivitiesByTimeOfDayHandler(&fakeActivities{list: sampleActivities()})

	got, err := handler.Handle(ctx, "Evening")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Evening run", got[0].Title)

	// The 09:00-17:00 context starts before noon, so it is not contained in
	// the afternoon.
	got, err = handler.Handle(ctx, "afternoon")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = handler.Handle(ctx, "brunch")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeOfDay)
}

func TestParseContextMode(t *testing.T) {
	mode, err := ParseContextMode("")
	require.NoError(t, err)
	assert.Equal(t, ContextModeEvaluate, mode)

	mode, err = ParseContextMode("store")
	require.NoError(t, err)
	assert.Equal(t, ContextModeStore, mode)

	_, err = ParseContextMode("remote")
	assert.ErrorIs(t, err, ErrInvalidContextMode)
}
