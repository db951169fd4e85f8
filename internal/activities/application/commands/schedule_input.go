package commands

import (
	"context"
	"fmt"

	"github.com/manumorante/whats-next/internal/activities/domain"
)

// TimeSlotInput is a time slot as entered by a user.
type TimeSlotInput struct {
	DayOfWeek string `json:"day_of_week,omitempty"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

func parseTimeSlots(inputs []TimeSlotInput) ([]domain.TimeSlot, error) {
	slots := make([]domain.TimeSlot, 0, len(inputs))
	for _, in := range inputs {
		var slot domain.TimeSlot
		if in.DayOfWeek != "" {
			d, err := domain.ParseWeekday(in.DayOfWeek)
			if err != nil {
				return nil, err
			}
			slot.DayOfWeek = &d
		}
		if in.TimeStart == "" || in.TimeEnd == "" {
			return nil, domain.ErrTimeSlotNoBounds
		}
		start, err := domain.ParseClock(in.TimeStart)
		if err != nil {
			return nil, err
		}
		end, err := domain.ParseClock(in.TimeEnd)
		if err != nil {
			return nil, err
		}
		slot.TimeStart, slot.TimeEnd = start, end
		slots = append(slots, slot)
	}
	return slots, nil
}

// loadContexts resolves context ids in order, dropping duplicates.
func loadContexts(ctx context.Context, repo domain.ContextRepository, ids []int64) ([]domain.Context, error) {
	contexts := make([]domain.Context, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, err := repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("%w: %d", ErrContextNotFound, id)
		}
		contexts = append(contexts, *c)
	}
	return contexts, nil
}

func ensureCategory(ctx context.Context, repo domain.CategoryRepository, id *int64) error {
	if id == nil {
		return nil
	}
	c, err := repo.FindByID(ctx, *id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: %d", ErrCategoryNotFound, *id)
	}
	return nil
}
