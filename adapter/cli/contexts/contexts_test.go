package contexts

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manumorante/whats-next/adapter/cli"
	"github.com/manumorante/whats-next/internal/activities/domain"
	internalApp "github.com/manumorante/whats-next/internal/app"
	"github.com/manumorante/whats-next/pkg/config"
)

func setupTestApp(t *testing.T) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:                 "test",
		DatabaseDriver:         "sqlite",
		SQLitePath:             filepath.Join(t.TempDir(), "test.db"),
		Timezone:               "UTC",
		SuggestionsContextMode: "evaluate",
		SuggestionsLimit:       10,
		SuggestionCacheTTL:     time.Minute,
	}
	container, err := internalApp.NewContainer(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(container.Close)

	app := cli.NewApp(container)
	cli.SetApp(app)
	t.Cleanup(func() { cli.SetApp(nil) })
	return app
}

func resetFlags() {
	label, dayList, timeStart, timeEnd = "", "", "", ""
	activeOnly = false
}

func TestAddAndListContexts(t *testing.T) {
	setupTestApp(t)
	ctx := context.Background()

	var out bytes.Buffer
	addCmd.SetContext(ctx)
	addCmd.SetOut(&out)
	listCmd.SetContext(ctx)
	listCmd.SetOut(&out)

	resetFlags()
	require.NoError(t, addCmd.RunE(addCmd, []string{"anytime"}))
	assert.Contains(t, out.String(), "Context added: anytime (id 1, all day, every day)")

	resetFlags()
	label = "Rarely"
	dayList = "Sun, Sat"
	timeStart = "23:58"
	timeEnd = "23:59"
	out.Reset()
	require.NoError(t, addCmd.RunE(addCmd, []string{"rare"}))
	assert.Contains(t, out.String(), "23:58-23:59, Sun,Sat")

	resetFlags()
	out.Reset()
	require.NoError(t, listCmd.RunE(listCmd, nil))
	assert.Contains(t, out.String(), "anytime")
	assert.Contains(t, out.String(), "Rarely")

	activeOnly = true
	out.Reset()
	require.NoError(t, listCmd.RunE(listCmd, nil))
	assert.Contains(t, out.String(), "anytime")
	activeOnly = false
}

func TestAddContextErrors(t *testing.T) {
	setupTestApp(t)
	addCmd.SetContext(context.Background())
	addCmd.SetOut(io.Discard)

	resetFlags()
	timeStart = "09:00"
	assert.ErrorIs(t, addCmd.RunE(addCmd, []string{"half"}), domain.ErrContextPartialWindow)

	resetFlags()
	dayList = "Monday"
	assert.ErrorIs(t, addCmd.RunE(addCmd, []string{"typo"}), domain.ErrInvalidWeekday)
	resetFlags()
}

func TestListWithoutApp(t *testing.T) {
	cli.SetApp(nil)
	listCmd.SetContext(context.Background())
	assert.ErrorIs(t, listCmd.RunE(listCmd, nil), cli.ErrNoApp)
}

func TestPrintContextsEmpty(t *testing.T) {
	var out bytes.Buffer
	printContexts(&out, nil)
	assert.Equal(t, "No contexts found.\n", out.String())
}

func TestDays(t *testing.T) {
	assert.Equal(t, "every day", days(domain.Context{}))
	assert.Equal(t, "no days", days(domain.Context{Days: []domain.Weekday{}}))
	assert.Equal(t, "Mon,Fri", days(domain.Context{Days: []domain.Weekday{domain.Monday, domain.Friday}}))
}
