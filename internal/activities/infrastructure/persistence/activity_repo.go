package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
)

// ActivityRepository implements domain.ActivityRepository. Activities are
// returned with their category, contexts, time slots and completion stats.
type ActivityRepository struct {
	conn database.Connection
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(conn database.Connection) *ActivityRepository {
	return &ActivityRepository{conn: conn}
}

const activitySelect = `SELECT
    a.id, a.title, a.description, a.category_id, a.duration_minutes, a.energy_level,
    a.location, a.priority, a.is_recurring, a.recurrence_type, a.is_completed, a.created_at,
    c.name, c.color, c.icon, c.created_at,
    (SELECT COUNT(*) FROM activity_completions ac WHERE ac.activity_id = a.id),
    (SELECT MAX(ac.completed_at) FROM activity_completions ac WHERE ac.activity_id = a.id)
FROM activities a
LEFT JOIN categories c ON c.id = a.category_id`

const activityOrder = ` ORDER BY
    CASE a.priority WHEN 'urgent' THEN 0 WHEN 'important' THEN 1 ELSE 2 END,
    a.created_at DESC, a.id DESC`

func (r *ActivityRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.Activity, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.CategoryID != nil {
		conditions = append(conditions, "a.category_id = ?")
		args = append(args, *filter.CategoryID)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "a.priority = ?")
		args = append(args, string(*filter.Priority))
	}
	if filter.EnergyLevel != nil {
		conditions = append(conditions, "a.energy_level = ?")
		args = append(args, string(*filter.EnergyLevel))
	}
	if filter.IsCompleted != nil {
		conditions = append(conditions, "a.is_completed = ?")
		args = append(args, boolToInt(*filter.IsCompleted))
	}

	query := activitySelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += activityOrder

	activities, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if err := r.loadSchedules(ctx, activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) FindByID(ctx context.Context, id int64) (*domain.Activity, error) {
	activities, err := r.query(ctx, activitySelect+` WHERE a.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, nil
	}
	if err := r.loadSchedules(ctx, activities); err != nil {
		return nil, err
	}
	return &activities[0], nil
}

// Create inserts the activity with its context links and time slots, and
// fills in the generated ids.
func (r *ActivityRepository) Create(ctx context.Context, a *domain.Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	exec := database.ExecutorFromContext(ctx, r.conn)

	err := exec.QueryRow(ctx,
		`INSERT INTO activities (title, description, category_id, duration_minutes, energy_level,
		    location, priority, is_recurring, recurrence_type, is_completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		a.Title, nullString(a.Description), nullInt64(a.CategoryID), nullInt(a.DurationMinutes),
		nullString(string(a.EnergyLevel)), nullString(a.Location), string(a.Priority),
		boolToInt(a.IsRecurring), nullString(string(a.RecurrenceType)), boolToInt(a.IsCompleted),
		formatTime(a.CreatedAt),
	).Scan(&a.ID)
	if err != nil {
		return err
	}
	return r.saveSchedule(ctx, exec, a)
}

// Update overwrites the activity's fields and replaces its context links and
// time slots.
func (r *ActivityRepository) Update(ctx context.Context, a *domain.Activity) error {
	exec := database.ExecutorFromContext(ctx, r.conn)

	_, err := exec.Exec(ctx,
		`UPDATE activities SET title = ?, description = ?, category_id = ?, duration_minutes = ?,
		    energy_level = ?, location = ?, priority = ?, is_recurring = ?, recurrence_type = ?,
		    is_completed = ?
		 WHERE id = ?`,
		a.Title, nullString(a.Description), nullInt64(a.CategoryID), nullInt(a.DurationMinutes),
		nullString(string(a.EnergyLevel)), nullString(a.Location), string(a.Priority),
		boolToInt(a.IsRecurring), nullString(string(a.RecurrenceType)), boolToInt(a.IsCompleted),
		a.ID,
	)
	if err != nil {
		return err
	}

	if _, err := exec.Exec(ctx, `DELETE FROM activity_contexts WHERE activity_id = ?`, a.ID); err != nil {
		return err
	}
	if _, err := exec.Exec(ctx, `DELETE FROM activity_time_slots WHERE activity_id = ?`, a.ID); err != nil {
		return err
	}
	return r.saveSchedule(ctx, exec, a)
}

func (r *ActivityRepository) saveSchedule(ctx context.Context, exec database.Executor, a *domain.Activity) error {
	for i, c := range a.Contexts {
		_, err := exec.Exec(ctx,
			`INSERT INTO activity_contexts (activity_id, context_id, position) VALUES (?, ?, ?)`,
			a.ID, c.ID, i,
		)
		if err != nil {
			return err
		}
	}

	for i := range a.TimeSlots {
		slot := &a.TimeSlots[i]
		slot.ActivityID = a.ID
		var day any
		if slot.DayOfWeek != nil {
			day = string(*slot.DayOfWeek)
		}
		err := exec.QueryRow(ctx,
			`INSERT INTO activity_time_slots (activity_id, day_of_week, time_start, time_end, position)
			 VALUES (?, ?, ?, ?, ?) RETURNING id`,
			a.ID, day, string(slot.TimeStart), string(slot.TimeEnd), i,
		).Scan(&slot.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the activity. Links, slots and completions cascade.
func (r *ActivityRepository) Delete(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM activities WHERE id = ?`, id)
	return err
}

func (r *ActivityRepository) SetCompleted(ctx context.Context, id int64, completed bool) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE activities SET is_completed = ? WHERE id = ?`, boolToInt(completed), id)
	return err
}

// AddCompletion appends to the completion log.
func (r *ActivityRepository) AddCompletion(ctx context.Context, c *domain.Completion) error {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now().UTC()
	}
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`INSERT INTO activity_completions (activity_id, completed_at, notes) VALUES (?, ?, ?) RETURNING id`,
		c.ActivityID, formatTime(c.CompletedAt), nullString(c.Notes),
	).Scan(&c.ID)
}

// ListCompletions returns the log of one activity, newest first.
func (r *ActivityRepository) ListCompletions(ctx context.Context, activityID int64) ([]domain.Completion, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT id, activity_id, completed_at, notes FROM activity_completions
		 WHERE activity_id = ? ORDER BY completed_at DESC, id DESC`, activityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := make([]domain.Completion, 0)
	for rows.Next() {
		var (
			c           domain.Completion
			completedAt string
			notes       sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.ActivityID, &completedAt, &notes); err != nil {
			return nil, err
		}
		if c.CompletedAt, err = parseTime(completedAt); err != nil {
			return nil, err
		}
		c.Notes = notes.String
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func (r *ActivityRepository) query(ctx context.Context, query string, args ...any) ([]domain.Activity, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]domain.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}
	return activities, rows.Err()
}

func scanActivity(row database.Row) (*domain.Activity, error) {
	var (
		a              domain.Activity
		description    sql.NullString
		categoryID     sql.NullInt64
		duration       sql.NullInt64
		energy         sql.NullString
		location       sql.NullString
		priority       string
		isRecurring    int64
		recurrence     sql.NullString
		isCompleted    int64
		createdAt      string
		categoryName   sql.NullString
		categoryColor  sql.NullString
		categoryIcon   sql.NullString
		categoryCreate sql.NullString
		completions    int64
		lastCompleted  sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Title, &description, &categoryID, &duration, &energy,
		&location, &priority, &isRecurring, &recurrence, &isCompleted, &createdAt,
		&categoryName, &categoryColor, &categoryIcon, &categoryCreate,
		&completions, &lastCompleted,
	)
	if err != nil {
		return nil, err
	}

	a.Description = description.String
	a.Location = location.String
	a.EnergyLevel = domain.EnergyLevel(energy.String)
	a.Priority = domain.Priority(priority)
	a.IsRecurring = isRecurring != 0
	a.RecurrenceType = domain.RecurrenceType(recurrence.String)
	a.IsCompleted = isCompleted != 0
	a.CompletionsCount = int(completions)
	a.Contexts = []domain.Context{}
	a.TimeSlots = []domain.TimeSlot{}

	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.LastCompleted, err = parseNullTime(lastCompleted); err != nil {
		return nil, err
	}
	if duration.Valid {
		d := int(duration.Int64)
		a.DurationMinutes = &d
	}
	if categoryID.Valid {
		id := categoryID.Int64
		a.CategoryID = &id
		if categoryName.Valid {
			a.Category = &domain.Category{
				ID:    id,
				Name:  categoryName.String,
				Color: categoryColor.String,
				Icon:  categoryIcon.String,
			}
			if t, err := parseNullTime(categoryCreate); err == nil && t != nil {
				a.Category.CreatedAt = *t
			}
		}
	}
	return &a, nil
}

// loadSchedules fills in contexts and time slots for all activities with
// one query each.
func (r *ActivityRepository) loadSchedules(ctx context.Context, activities []domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	index := make(map[int64]*domain.Activity, len(activities))
	ids := make([]int64, 0, len(activities))
	for i := range activities {
		index[activities[i].ID] = &activities[i]
		ids = append(ids, activities[i].ID)
	}
	exec := database.ExecutorFromContext(ctx, r.conn)
	in := placeholders(len(ids))

	rows, err := exec.Query(ctx,
		`SELECT ctx.id, ctx.name, ctx.label, ctx.days, ctx.time_start, ctx.time_end, ctx.created_at, ac.activity_id
		 FROM activity_contexts ac
		 JOIN contexts ctx ON ctx.id = ac.context_id
		 WHERE ac.activity_id IN (`+in+`)
		 ORDER BY ac.activity_id, ac.position`,
		int64Args(ids)...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var activityID int64
		c, err := scanContext(rows, &activityID)
		if err != nil {
			rows.Close()
			return err
		}
		if a, ok := index[activityID]; ok {
			a.Contexts = append(a.Contexts, *c)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = exec.Query(ctx,
		`SELECT id, activity_id, day_of_week, time_start, time_end
		 FROM activity_time_slots
		 WHERE activity_id IN (`+in+`)
		 ORDER BY activity_id, position, id`,
		int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			slot  domain.TimeSlot
			day   sql.NullString
			start string
			end   string
		)
		if err := rows.Scan(&slot.ID, &slot.ActivityID, &day, &start, &end); err != nil {
			return err
		}
		if day.Valid && day.String != "" {
			d := domain.Weekday(day.String)
			slot.DayOfWeek = &d
		}
		slot.TimeStart = domain.Clock(start)
		slot.TimeEnd = domain.Clock(end)
		if a, ok := index[slot.ActivityID]; ok {
			a.TimeSlots = append(a.TimeSlots, slot)
		}
	}
	return rows.Err()
}
