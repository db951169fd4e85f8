package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrCategoryEmptyName  = errors.New("category name cannot be empty")
	ErrCategoryEmptyColor = errors.New("category color cannot be empty")
)

// Category groups activities for filtering and display.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCategory creates a category with normalized fields.
func NewCategory(name, color, icon string) (*Category, error) {
	c := &Category{Name: name, Color: color, Icon: icon}
	if err := c.Normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

// Normalize trims fields and checks required ones.
func (c *Category) Normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Color = strings.TrimSpace(c.Color)
	c.Icon = strings.TrimSpace(c.Icon)
	if c.Name == "" {
		return ErrCategoryEmptyName
	}
	if c.Color == "" {
		return ErrCategoryEmptyColor
	}
	return nil
}
