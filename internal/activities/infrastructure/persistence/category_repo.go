package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/shared/infrastructure/database"
)

// CategoryRepository implements domain.CategoryRepository on SQLite or PostgreSQL.
type CategoryRepository struct {
	conn database.Connection
}

// NewCategoryRepository creates a category repository.
func NewCategoryRepository(conn database.Connection) *CategoryRepository {
	return &CategoryRepository{conn: conn}
}

const categoryColumns = `id, name, color, icon, created_at`

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := database.ExecutorFromContext(ctx, r.conn).Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
	c, err := scanCategory(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return c, err
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx,
		`INSERT INTO categories (name, color, icon, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		c.Name, c.Color, nullString(c.Icon), formatTime(c.CreatedAt),
	).Scan(&c.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx,
		`UPDATE categories SET name = ?, color = ?, icon = ? WHERE id = ?`,
		c.Name, c.Color, nullString(c.Icon), c.ID,
	)
	return err
}

// Delete removes the category. Activities in it become uncategorised.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := database.ExecutorFromContext(ctx, r.conn).Exec(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return err
}

func scanCategory(row database.Row) (*domain.Category, error) {
	var (
		c         domain.Category
		icon      sql.NullString
		createdAt string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &icon, &createdAt); err != nil {
		return nil, err
	}
	c.Icon = icon.String
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = t
	return &c, nil
}
