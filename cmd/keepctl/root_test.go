package main

import (
	"bytes"
	"testing"
	"time"

	"keep-notes-be/internal/config"
	"keep-notes-be/internal/dto"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "status"},
		{"sweep"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.NotNil(t, cmd.RunE, path)
	}
}

func TestResolveDSN(t *testing.T) {
	defer func() { dsn = "" }()

	_, err := resolveDSN(&config.Config{})
	assert.Error(t, err)

	got, err := resolveDSN(&config.Config{Database: config.DatabaseConfig{Connection: "postgres://env"}})
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", got)

	dsn = "postgres://flag"
	got, err = resolveDSN(&config.Config{Database: config.DatabaseConfig{Connection: "postgres://env"}})
	require.NoError(t, err)
	assert.Equal(t, "postgres://flag", got)
}

func TestPrintSweep(t *testing.T) {
	color.NoColor = true
	cutoff := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		res  dto.CleanupTrashResponse
		want string
	}{
		{dto.CleanupTrashResponse{Removed: 4, Cutoff: cutoff}, "Cleaned up 4 old trashed notes (cutoff 2025-06-03T12:00:00Z)\n"},
		{dto.CleanupTrashResponse{Cutoff: cutoff}, "No old trashed notes to clean up (cutoff 2025-06-03T12:00:00Z)\n"},
		{dto.CleanupTrashResponse{Skipped: true, Cutoff: cutoff}, "Another sweep is running, nothing done (cutoff 2025-06-03T12:00:00Z)\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		printSweep(&buf, &tt.res)
		assert.Equal(t, tt.want, buf.String())
	}
}

func TestSweepDryRunFlag(t *testing.T) {
	flag := sweepCmd.Flags().Lookup("dry-run")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)

	color.NoColor = true
	var buf bytes.Buffer
	printPreview(&buf, &dto.TrashSweepPreview{Expired: 3, Cutoff: time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)})
	assert.Equal(t, "3 trashed notes would be deleted (cutoff 2025-06-03T12:00:00Z)\n", buf.String())
}
