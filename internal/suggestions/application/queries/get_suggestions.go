package queries

import (
	"context"
	"log/slog"
	"time"

	activities "github.com/manumorante/whats-next/internal/activities/domain"
	"github.com/manumorante/whats-next/internal/suggestions/domain"
)

// SuggestionDTO is an activity with the score and reasons it was suggested for.
// The activity fields are inlined in JSON.
type SuggestionDTO struct {
	activities.Activity
	Score   int      `json:"score"`
	Reason  string   `json:"reason"`
	Reasons []string `json:"reasons"`
}

// GetSuggestionsQuery contains the parameters for a suggestion run.
type GetSuggestionsQuery struct {
	// Now is the instant to suggest for. Zero means the current time.
	Now time.Time
	// Limit caps the result. Nil means the configured default.
	Limit      *int
	CategoryID *int64
}

// CacheKey identifies a cached suggestion list. Suggestions are computed for
// the start of the minute, so a list is a function of its key.
type CacheKey struct {
	// Generation is the cache generation read before the sources were
	// queried. A list computed from data that changed since is stored under a
	// generation no later read uses.
	Generation int64
	Minute     time.Time
	Limit      int
	CategoryID *int64
}

// Cache stores suggestion lists. Implementations advance the generation when
// stored data changes.
type Cache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, key CacheKey) ([]SuggestionDTO, bool, error)
	Set(ctx context.Context, key CacheKey, suggestions []SuggestionDTO) error
}

// GetSuggestionsHandler handles the GetSuggestionsQuery.
type GetSuggestionsHandler struct {
	activities ActivitySource
	contexts   ContextSource
	cache      Cache
	settings   Settings
	logger     *slog.Logger
}

// NewGetSuggestionsHandler creates a new GetSuggestionsHandler. The cache is
// optional.
func NewGetSuggestionsHandler(
	activitySource ActivitySource,
	contextSource ContextSource,
	cache Cache,
	settings Settings,
	logger *slog.Logger,
) *GetSuggestionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &GetSuggestionsHandler{
		activities: activitySource,
		contexts:   contextSource,
		cache:      cache,
		settings:   settings.withDefaults(),
		logger:     logger,
	}
}

// Handle returns the best suggestions for the query's minute, highest score
// first. The result is never nil.
func (h *GetSuggestionsHandler) Handle(ctx context.Context, query GetSuggestionsQuery) ([]SuggestionDTO, error) {
	now := h.settings.snapshot(query.Now).Truncate(time.Minute)
	limit := h.settings.DefaultLimit
	if query.Limit != nil {
		limit = *query.Limit
	}
	if limit <= 0 {
		return []SuggestionDTO{}, nil
	}

	key := CacheKey{Minute: now, Limit: limit, CategoryID: query.CategoryID}
	cacheable := false
	if h.cache != nil {
		cached, ok, err := h.cachedSuggestions(ctx, &key)
		if err != nil {
			h.logger.Warn("suggestion cache read failed", "error", err)
		} else if ok {
			return cached, nil
		} else {
			cacheable = true
		}
	}

	pending := false
	all, err := h.activities.List(ctx, activities.ActivityFilter{
		CategoryID:  query.CategoryID,
		IsCompleted: &pending,
	})
	if err != nil {
		return nil, unavailable("activities", err)
	}

	var input domain.ContextInput
	contexts, err := loadActiveContexts(ctx, h.contexts, h.settings.Mode, now)
	if err != nil {
		return nil, err
	}
	if h.settings.Mode == ContextModeStore {
		input = domain.FromActiveContexts(contexts)
	} else {
		input = domain.FromAllContexts(contexts)
	}

	ranked := domain.Suggest(all, input.Active(now), now, domain.Options{
		Limit:      limit,
		CategoryID: query.CategoryID,
	})
	out := toSuggestionDTOs(ranked)

	if cacheable {
		if err := h.cache.Set(ctx, key, out); err != nil {
			h.logger.Warn("suggestion cache write failed", "error", err)
		}
	}

	h.logger.Debug("suggestions computed",
		"candidates", len(all),
		"returned", len(out),
		"mode", string(h.settings.Mode),
	)
	return out, nil
}

// cachedSuggestions pins key to the current generation and looks it up.
func (h *GetSuggestionsHandler) cachedSuggestions(ctx context.Context, key *CacheKey) ([]SuggestionDTO, bool, error) {
	gen, err := h.cache.Generation(ctx)
	if err != nil {
		return nil, false, err
	}
	key.Generation = gen
	return h.cache.Get(ctx, *key)
}

func toSuggestionDTOs(ranked []domain.Suggestion) []SuggestionDTO {
	out := make([]SuggestionDTO, len(ranked))
	for i, s := range ranked {
		out[i] = SuggestionDTO{
			Activity: s.Activity,
			Score:    s.Score,
			Reason:   s.Reason(),
			Reasons:  s.Reasons,
		}
	}
	return out
}
