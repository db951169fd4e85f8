package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

// timeLayout is fixed width so that text order equals time order, which
// MAX(completed_at) and ORDER BY rely on.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullString maps "" to NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullClock(c *domain.Clock) any {
	if c == nil {
		return nil
	}
	return string(*c)
}

func clockPtr(s sql.NullString) *domain.Clock {
	if !s.Valid || s.String == "" {
		return nil
	}
	c := domain.Clock(s.String)
	return &c
}

// encodeDays stores the weekday list as a JSON array. Nil means every day and
// is stored as NULL.
func encodeDays(days []domain.Weekday) (any, error) {
	if days == nil {
		return nil, nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func decodeDays(s sql.NullString) ([]domain.Weekday, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var days []domain.Weekday
	if err := json.Unmarshal([]byte(s.String), &days); err != nil {
		return nil, fmt.Errorf("invalid stored days %q: %w", s.String, err)
	}
	return days, nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
