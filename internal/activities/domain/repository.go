package domain

import (
	"context"
	"time"
)

// ActivityFilter narrows activity listings. Nil fields are ignored.
type ActivityFilter struct {
	CategoryID  *int64
	Priority    *Priority
	EnergyLevel *EnergyLevel
	IsCompleted *bool
}

// ActivityRepository persists activities with their contexts, time slots and
// completion log. Lookups return (nil, nil) when nothing matches.
//
// List orders by priority (urgent first), then newest first, then id
// descending, so callers always see a deterministic order.
type ActivityRepository interface {
	List(ctx context.Context, filter ActivityFilter) ([]Activity, error)
	FindByID(ctx context.Context, id int64) (*Activity, error)
	Create(ctx context.Context, activity *Activity) error
	Update(ctx context.Context, activity *Activity) error
	Delete(ctx context.Context, id int64) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
	AddCompletion(ctx context.Context, completion *Completion) error
	ListCompletions(ctx context.Context, activityID int64) ([]Completion, error)
}

// ContextRepository persists contexts. List orders by name.
type ContextRepository interface {
	List(ctx context.Context) ([]Context, error)
	FindByID(ctx context.Context, id int64) (*Context, error)
	// FindActive returns the contexts whose window contains now.
	FindActive(ctx context.Context, now time.Time) ([]Context, error)
	Create(ctx context.Context, c *Context) error
	Update(ctx context.Context, c *Context) error
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository persists categories. List orders by name.
type CategoryRepository interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
}
