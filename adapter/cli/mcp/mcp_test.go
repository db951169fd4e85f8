package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manumorante/whats-next/adapter/cli"
)

func TestServeRequiresApp(t *testing.T) {
	cli.SetApp(nil)
	serveCmd.SetContext(context.Background())

	assert.ErrorIs(t, serveCmd.RunE(serveCmd, nil), cli.ErrNoApp)
}

func TestCommandTree(t *testing.T) {
	assert.Equal(t, "mcp", Cmd.Name())
	assert.NotNil(t, Cmd.RunE)

	found := false
	for _, c := range Cmd.Commands() {
		if c.Name() == "serve" {
			found = true
		}
	}
	assert.True(t, found)
}
