package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellswap/valuation-engine/internal/config"
)

func TestOpen_EmptyDriverDisables(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{})
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestOpen_SQLite(t *testing.T) {
	s, err := Open(context.Background(), config.StoreConfig{
		Driver:      "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "open.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	defer s.Close()

	require.NoError(t, s.Migrate(context.Background()))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StoreConfig{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}
