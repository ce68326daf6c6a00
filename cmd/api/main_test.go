package main

import (
	"context"
	"testing"
	"time"

	"insurance-service/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRun_StartupFailureReturnsExitCode(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	cfg := config.Load()
	cfg.RunMigrations = false
	cfg.Postgres.Host = "127.0.0.1"
	cfg.Postgres.Port = 1

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	code := run(ctx, cfg, zap.New(core))
	assert.Equal(t, 1, code)

	entries := logs.FilterMessage("server stopped with error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap()["error"], "PostgreSQL")
}
