package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
)

// ContextRepository implements domain.ContextRepository.
type ContextRepository struct {
	conn database.Connection
}

// NewContextRepository creates a context repository.
func NewContextRepository(conn database.Connection) *ContextRepository {
	return &ContextRepository{conn: conn}
}

const contextColumns = `id, name, label, days, time_start, time_end, created_at`

func (r *ContextRepository) List(ctx context.Context) ([]domain.Context, error) {
	return r.query(ctx, `SELECT `+contextColumns+` FROM contexts ORDER BY name ASC, id ASC`)
}

// activeContextsQuery evaluates context windows in SQL. Days are a JSON
// array of quoted codes, so membership is a LIKE on the quoted code. Bounds
// are zero-padded HH:MM, so text comparison is time comparison, and a window
// whose end is before its start crosses midnight.
const activeContextsQuery = `SELECT ` + contextColumns + ` FROM contexts
WHERE (days IS NULL OR days LIKE ?)
  AND (
    time_start IS NULL OR time_end IS NULL
    OR (time_end >= time_start AND ? >= time_start AND ? <= time_end)
    OR (time_end < time_start AND (? >= time_start OR ? <= time_end))
  )
ORDER BY name ASC, id ASC`

// FindActive returns the contexts whose window contains now, evaluated by
// the database in now's location.
func (r *ContextRepository) FindActive(ctx context.Context, now time.Time) ([]domain.Context, error) {
	day := `%"` + string(domain.WeekdayOf(now)) + `"%`
	clock := string(domain.ClockOf(now))
	return r.query(ctx, activeContextsQuery, day, clock, clock, clock, clock)
}

func (r *ContextRepository) FindByID(ctx context.Context, id int64) (*domain.Context, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+contextColumns+` FROM contexts WHERE id = ?`, id)
	c, err := scanContext(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return c, err
}

func (r *ContextRepository) Create(ctx context.Context, c *domain.Context) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	days, err := encodeDays(c.Days)
	if err != nil {
		return err
	}
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`INSERT INTO contexts (name, label, days, time_start, time_end, created_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		c.Name, c.Label, days, nullClock(c.TimeStart), nullClock(c.TimeEnd), formatTime(c.CreatedAt),
	).Scan(&c.ID)
}

func (r *ContextRepository) Update(ctx context.Context, c *domain.Context) error {
	days, err := encodeDays(c.Days)
	if err != nil {
		return err
	}
	_, err = database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE contexts SET name = ?, label = ?, days = ?, time_start = ?, time_end = ? WHERE id = ?`,
		c.Name, c.Label, days, nullClock(c.TimeStart), nullClock(c.TimeEnd), c.ID,
	)
	return err
}

// Delete removes the context and unlinks it from every activity.
func (r *ContextRepository) Delete(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM contexts WHERE id = ?`, id)
	return err
}

func (r *ContextRepository) query(ctx context.Context, query string, args ...any) ([]domain.Context, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contexts := make([]domain.Context, 0)
	for rows.Next() {
		c, err := scanContext(rows)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, *c)
	}
	return contexts, rows.Err()
}

func scanContext(row database.Row, extra ...any) (*domain.Context, error) {
	var (
		c         domain.Context
		days      sql.NullString
		start     sql.NullString
		end       sql.NullString
		createdAt string
	)
	dest := append([]any{&c.ID, &c.Name, &c.Label, &days, &start, &end, &createdAt}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if c.Days, err = decodeDays(days); err != nil {
		return nil, err
	}
	c.TimeStart = clockPtr(start)
	c.TimeEnd = clockPtr(end)
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
