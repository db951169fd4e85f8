package api

import "github.com/manumorante/whats-next/internal/app"

// HandlersFromContainer collects the handlers the API needs from c.
func HandlersFromContainer(c *app.Container) Handlers {
	return Handlers{
		CreateActivity:   c.CreateActivityHandler,
		UpdateActivity:   c.UpdateActivityHandler,
		DeleteActivity:   c.DeleteActivityHandler,
		CompleteActivity: c.CompleteActivityHandler,
		ToggleActivity:   c.ToggleActivityHandler,
		Contexts:         c.ContextHandler,
		Categories:       c.CategoryHandler,

		ListActivities:  c.ListActivitiesHandler,
		GetActivity:     c.GetActivityHandler,
		ListCompletions: c.ListCompletionsHandler,
		ListContexts:    c.ListContextsHandler,
		ListCategories:  c.ListCategoriesHandler,

		GetSuggestions:        c.GetSuggestionsHandler,
		GetActiveContexts:     c.GetActiveContextsHandler,
		ActivitiesByTimeOfDay: c.ActivitiesByTimeOfDayHandler,

		Health:  c.Health,
		Metrics: c.Metrics,
	}
}
