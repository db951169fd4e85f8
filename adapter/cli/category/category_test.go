package category

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

func setupTestApp(t *testing.T) {
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

	cli.SetApp(cli.NewApp(container))
	t.Cleanup(func() { cli.SetApp(nil) })
}

func TestCategoryCommands(t *testing.T) {
	setupTestApp(t)
	ctx := context.Background()

	var out bytes.Buffer
	listCmd.SetContext(ctx)
	listCmd.SetOut(&out)
	addCmd.SetContext(ctx)
	addCmd.SetOut(&out)

	require.NoError(t, listCmd.RunE(listCmd, nil))
	assert.Equal(t, "No categories found.\n", out.String())

	color, icon = "#4caf50", "house"
	out.Reset()
	require.NoError(t, addCmd.RunE(addCmd, []string{"Home"}))
	assert.Equal(t, "Category added: Home (id 1)\n", out.String())

	out.Reset()
	require.NoError(t, listCmd.RunE(listCmd, nil))
	assert.Contains(t, out.String(), "Home")
	assert.Contains(t, out.String(), "#4caf50")

	color = ""
	err := addCmd.RunE(addCmd, []string{"Work"})
	assert.ErrorIs(t, err, domain.ErrCategoryEmptyColor)
	color = "#9e9e9e"
}
