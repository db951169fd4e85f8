package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database/sqlite"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/migrations"
	suggestions "github.com/manumorante/whats-next/internal/suggestions/domain"
)

func setupTestDB(t *testing.T) database.Connection {
	t.Helper()
	ctx := context.Background()
	conn, err := sqlite.Open(ctx, database.Config{SQLitePath: sqlite.InMemory})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))
	return conn
}

func clock(s string) *domain.Clock {
	c := domain.Clock(s)
	return &c
}

func weekday(d domain.Weekday) *domain.Weekday { return &d }

func TestCategoryRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository(setupTestDB(t))

	ocio := &domain.Category{Name: "Ocio", Color: "#00ff00", Icon: "🎮"}
	casa := &domain.Category{Name: "Casa", Color: "#0000ff"}
	require.NoError(t, repo.Create(ctx, ocio))
	require.NoError(t, repo.Create(ctx, casa))
	assert.NotZero(t, ocio.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Casa", list[0].Name)
	assert.Equal(t, "", list[0].Icon)
	assert.Equal(t, "🎮", list[1].Icon)

	ocio.Color = "#ff0000"
	require.NoError(t, repo.Update(ctx, ocio))
	found, err := repo.FindByID(ctx, ocio.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "#ff0000", found.Color)
	assert.WithinDuration(t, ocio.CreatedAt, found.CreatedAt, time.Millisecond)

	require.NoError(t, repo.Delete(ctx, ocio.ID))
	found, err = repo.FindByID(ctx, ocio.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestContextRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewContextRepository(setupTestDB(t))

	work := &domain.Context{
		Name: "work", Label: "Work",
		Days:      []domain.Weekday{domain.Monday, domain.Friday},
		TimeStart: clock("09:00"), TimeEnd: clock("17:00"),
	}
	always := &domain.Context{Name: "always", Label: "Always"}
	require.NoError(t, repo.Create(ctx, work))
	require.NoError(t, repo.Create(ctx, always))

	found, err := repo.FindByID(ctx, work.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []domain.Weekday{domain.Monday, domain.Friday}, found.Days)
	assert.Equal(t, domain.Clock("09:00"), *found.TimeStart)

	found, err = repo.FindByID(ctx, always.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Days)
	assert.Nil(t, found.TimeStart)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"always", "work"}, []string{list[0].Name, list[1].Name})

	work.Days = nil
	work.Label = "Office"
	require.NoError(t, repo.Update(ctx, work))
	found, err = repo.FindByID(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, "Office", found.Label)
	assert.Nil(t, found.Days)

	require.NoError(t, repo.Delete(ctx, work.ID))
	found, err = repo.FindByID(ctx, work.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestContextRepository_FindActiveMatchesEvaluator(t *testing.T) {
	ctx := context.Background()
	repo := NewContextRepository(setupTestDB(t))

	fixtures := []*domain.Context{
		{Name: "a-work", Label: "Work", Days: []domain.Weekday{domain.Monday, domain.Tuesday}, TimeStart: clock("09:00"), TimeEnd: clock("17:00")},
		{Name: "b-always", Label: "Always"},
		{Name: "c-weekend", Label: "Weekend", Days: []domain.Weekday{domain.Saturday, domain.Sunday}},
		{Name: "d-night", Label: "Night", TimeStart: clock("22:00"), TimeEnd: clock("06:00")},
		{Name: "e-empty-days", Label: "Empty", Days: []domain.Weekday{}, TimeStart: clock("10:00"), TimeEnd: clock("10:00")},
	}
	for _, c := range fixtures {
		require.NoError(t, repo.Create(ctx, c))
	}
	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(fixtures))
	assert.Nil(t, all[1].Days, "null days stay nil")
	assert.NotNil(t, all[4].Days, "an empty day list is not every day")
	assert.Empty(t, all[4].Days)

	// 2024-03-03 is a Sunday.
	base := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		for _, hm := range [][2]int{{0, 0}, {5, 59}, {6, 0}, {9, 0}, {10, 0}, {12, 30}, {17, 0}, {17, 1}, {21, 59}, {22, 0}, {23, 59}} {
			now := base.AddDate(0, 0, d).Add(time.Duration(hm[0])*time.Hour + time.Duration(hm[1])*time.Minute)
			active, err := repo.FindActive(ctx, now)
			require.NoError(t, err)
			assert.Equal(t, names(suggestions.ActiveContexts(all, now)), names(active), now.String())
		}
	}
}

func names(cs []domain.Context) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Name)
	}
	return out
}

func TestActivityRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	categories := NewCategoryRepository(conn)
	contexts := NewContextRepository(conn)
	repo := NewActivityRepository(conn)

	cat := &domain.Category{Name: "Ocio", Color: "#0f0"}
	require.NoError(t, categories.Create(ctx, cat))
	morning := &domain.Context{Name: "morning", Label: "Morning", TimeStart: clock("06:00"), TimeEnd: clock("12:00")}
	evening := &domain.Context{Name: "evening", Label: "Evening", TimeStart: clock("18:00"), TimeEnd: clock("22:00")}
	require.NoError(t, contexts.Create(ctx, morning))
	require.NoError(t, contexts.Create(ctx, evening))

	duration := 30
	a := &domain.Activity{
		Title:           "Read",
		Description:     "Novel",
		CategoryID:      &cat.ID,
		DurationMinutes: &duration,
		EnergyLevel:     domain.EnergyLow,
		Priority:        domain.PriorityImportant,
		IsRecurring:     true,
		RecurrenceType:  domain.RecurrenceDaily,
		Contexts:        []domain.Context{*evening, *morning},
		TimeSlots: []domain.TimeSlot{
			{DayOfWeek: weekday(domain.Sunday), TimeStart: "10:00", TimeEnd: "11:00"},
			{TimeStart: "22:00", TimeEnd: "01:00"},
		},
	}
	require.NoError(t, repo.Create(ctx, a))
	require.NotZero(t, a.ID)
	assert.NotZero(t, a.TimeSlots[0].ID)

	found, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Read", found.Title)
	assert.Equal(t, "Novel", found.Description)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Ocio", found.Category.Name)
	assert.Equal(t, 30, *found.DurationMinutes)
	assert.Equal(t, domain.EnergyLow, found.EnergyLevel)
	assert.True(t, found.IsRecurring)
	assert.Equal(t, domain.RecurrenceDaily, found.RecurrenceType)
	assert.Equal(t, []int64{evening.ID, morning.ID}, found.ContextIDs())
	require.Len(t, found.TimeSlots, 2)
	assert.Equal(t, domain.Sunday, *found.TimeSlots[0].DayOfWeek)
	assert.Nil(t, found.TimeSlots[1].DayOfWeek)
	assert.Equal(t, domain.Clock("01:00"), found.TimeSlots[1].TimeEnd)
	assert.Zero(t, found.CompletionsCount)
	assert.Nil(t, found.LastCompleted)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestActivityRepository_UpdateReplacesSchedule(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	contexts := NewContextRepository(conn)
	repo := NewActivityRepository(conn)

	c1 := &domain.Context{Name: "one", Label: "One"}
	c2 := &domain.Context{Name: "two", Label: "Two"}
	require.NoError(t, contexts.Create(ctx, c1))
	require.NoError(t, contexts.Create(ctx, c2))

	a := &domain.Activity{
		Title:     "Walk",
		Priority:  domain.PrioritySomeday,
		Contexts:  []domain.Context{*c1},
		TimeSlots: []domain.TimeSlot{{TimeStart: "07:00", TimeEnd: "08:00"}},
	}
	require.NoError(t, repo.Create(ctx, a))

	a.Title = "Long walk"
	a.Priority = domain.PriorityUrgent
	a.Contexts = []domain.Context{*c2}
	a.TimeSlots = nil
	require.NoError(t, repo.Update(ctx, a))

	found, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Long walk", found.Title)
	assert.Equal(t, domain.PriorityUrgent, found.Priority)
	assert.Equal(t, []int64{c2.ID}, found.ContextIDs())
	assert.Empty(t, found.TimeSlots)
	assert.Nil(t, found.Category)
}

func TestActivityRepository_ListOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	categories := NewCategoryRepository(conn)
	repo := NewActivityRepository(conn)

	cat := &domain.Category{Name: "Casa", Color: "#00f"}
	require.NoError(t, categories.Create(ctx, cat))

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	create := func(title string, p domain.Priority, e domain.EnergyLevel, offset time.Duration, category *int64) *domain.Activity {
		a := &domain.Activity{Title: title, Priority: p, EnergyLevel: e, CreatedAt: base.Add(offset), CategoryID: category}
		require.NoError(t, repo.Create(ctx, a))
		return a
	}
	create("old someday", domain.PrioritySomeday, domain.EnergyLow, 0, nil)
	create("new someday", domain.PrioritySomeday, domain.EnergyHigh, time.Hour, &cat.ID)
	create("urgent", domain.PriorityUrgent, domain.EnergyHigh, 0, nil)
	important := create("important", domain.PriorityImportant, domain.EnergyNone, 0, &cat.ID)
	create("same time someday", domain.PrioritySomeday, domain.EnergyLow, 0, nil)

	list, err := repo.List(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "important", "new someday", "same time someday", "old someday"}, activityTitles(list))

	list, err = repo.List(ctx, domain.ActivityFilter{CategoryID: &cat.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"important", "new someday"}, activityTitles(list))

	high := domain.EnergyHigh
	list, err = repo.List(ctx, domain.ActivityFilter{EnergyLevel: &high})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "new someday"}, activityTitles(list))

	urgent := domain.PriorityUrgent
	list, err = repo.List(ctx, domain.ActivityFilter{Priority: &urgent})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent"}, activityTitles(list))

	require.NoError(t, repo.SetCompleted(ctx, important.ID, true))
	done := true
	list, err = repo.List(ctx, domain.ActivityFilter{IsCompleted: &done})
	require.NoError(t, err)
	assert.Equal(t, []string{"important"}, activityTitles(list))
	assert.True(t, list[0].IsCompleted)

	pending := false
	list, err = repo.List(ctx, domain.ActivityFilter{IsCompleted: &pending})
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestActivityRepository_Completions(t *testing.T) {
	ctx := context.Background()
	repo := NewActivityRepository(setupTestDB(t))

	a := &domain.Activity{Title: "Stretch", Priority: domain.PrioritySomeday}
	require.NoError(t, repo.Create(ctx, a))

	first := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 4, 18, 30, 0, 0, time.FixedZone("UTC+1", 3600))
	require.NoError(t, repo.AddCompletion(ctx, &domain.Completion{ActivityID: a.ID, CompletedAt: first, Notes: "good"}))
	require.NoError(t, repo.AddCompletion(ctx, &domain.Completion{ActivityID: a.ID, CompletedAt: second}))

	found, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, found.CompletionsCount)
	require.NotNil(t, found.LastCompleted)
	assert.True(t, second.Equal(*found.LastCompleted))

	log, err := repo.ListCompletions(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.True(t, second.Equal(log[0].CompletedAt))
	assert.Equal(t, "good", log[1].Notes)

	require.NoError(t, repo.Delete(ctx, a.ID))
	log, err = repo.ListCompletions(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestActivityRepository_WithinUnitOfWork(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	repo := NewActivityRepository(conn)
	uow := database.NewUnitOfWork(conn)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(txCtx, &domain.Activity{Title: "discarded", Priority: domain.PrioritySomeday}))
	require.NoError(t, uow.Rollback(txCtx))

	list, err := repo.List(ctx, domain.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCategoryDeleteUncategorisesActivities(t *testing.T) {
	ctx := context.Background()
	conn := setupTestDB(t)
	categories := NewCategoryRepository(conn)
	repo := NewActivityRepository(conn)

	cat := &domain.Category{Name: "Temp", Color: "#fff"}
	require.NoError(t, categories.Create(ctx, cat))
	a := &domain.Activity{Title: "x", Priority: domain.PrioritySomeday, CategoryID: &cat.ID}
	require.NoError(t, repo.Create(ctx, a))

	require.NoError(t, categories.Delete(ctx, cat.ID))
	found, err := repo.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)
	assert.Nil(t, found.Category)
}

func activityTitles(as []domain.Activity) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Title)
	}
	return out
}
