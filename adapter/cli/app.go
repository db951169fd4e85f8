package cli

import (
	"errors"

	activityCommands "github.com/manumorante/whats-next/internal/activities/application/commands"
	activityQueries "github.com/manumorante/whats-next/internal/activities/application/queries"
	"github.com/manumorante/whats-next/internal/app"
	suggestionQueries "github.com/manumorante/whats-next/internal/suggestions/application/queries"
)

// ErrNoApp is returned by commands that need the store when it could not be opened.
var ErrNoApp = errors.New("application not initialized - database connection required")

// App holds the CLI application dependencies.
type App struct {
	// Activity command handlers
	CreateActivityHandler   *activityCommands.CreateActivityHandler
	DeleteActivityHandler   *activityCommands.DeleteActivityHandler
	CompleteActivityHandler *activityCommands.CompleteActivityHandler
	ToggleActivityHandler   *activityCommands.ToggleActivityHandler
	ContextHandler          *activityCommands.ContextHandler
	CategoryHandler         *activityCommands.CategoryHandler

	// Activity query handlers
	ListActivitiesHandler *activityQueries.ListActivitiesHandler
	ListContextsHandler   *activityQueries.ListContextsHandler
	ListCategoriesHandler *activityQueries.ListCategoriesHandler

	// Suggestions
	GetSuggestionsHandler        *suggestionQueries.GetSuggestionsHandler
	GetActiveContextsHandler     *suggestionQueries.GetActiveContextsHandler
	ActivitiesByTimeOfDayHandler *suggestionQueries.ActivitiesByTimeOfDayHandler

	container *app.Container
}

// NewApp creates an App backed by the container's handlers.
func NewApp(container *app.Container) *App {
	return &App{
		CreateActivityHandler:   container.CreateActivityHandler,
		DeleteActivityHandler:   container.DeleteActivityHandler,
		CompleteActivityHandler: container.CompleteActivityHandler,
		ToggleActivityHandler:   container.ToggleActivityHandler,
		ContextHandler:          container.ContextHandler,
		CategoryHandler:         container.CategoryHandler,

		ListActivitiesHandler: container.ListActivitiesHandler,
		ListContextsHandler:   container.ListContextsHandler,
		ListCategoriesHandler: container.ListCategoriesHandler,

		GetSuggestionsHandler:        container.GetSuggestionsHandler,
		GetActiveContextsHandler:     container.GetActiveContextsHandler,
		ActivitiesByTimeOfDayHandler: container.ActivitiesByTimeOfDayHandler,

		container: container,
	}
}

// Container returns the container the app was built from, or nil.
func (a *App) Container() *app.Container {
	return a.container
}

// Global app instance
var cliApp *App

// SetApp sets the global app instance.
func SetApp(a *App) {
	cliApp = a
}

// GetApp returns the global app instance.
func GetApp() *App {
	return cliApp
}
