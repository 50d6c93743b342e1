package provider

import (
	"context"
	"testing"

	"github.com/darkkaiser/apk-update-server/internal/config"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/storage/file"
	"github.com/darkkaiser/apk-update-server/internal/storage/memory"
	"github.com/darkkaiser/apk-update-server/internal/storage/supabase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	base := config.Default().Storage

	t.Run("supabase", func(t *testing.T) {
		cfg := base
		cfg.Supabase = config.SupabaseConfig{URL: "https://project.supabase.co", Key: "key"}

		s, err := New(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &supabase.Store{}, s)
	})

	t.Run("supabase 접속 정보 누락", func(t *testing.T) {
		_, err := New(context.Background(), base)
		require.Error(t, err)
		assert.Equal(t, apperrors.InvalidInput, apperrors.UnderlyingType(err))
	})

	t.Run("file", func(t *testing.T) {
		cfg := base
		cfg.Provider = config.ProviderFile
		cfg.File.Root = t.TempDir()

		s, err := New(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &file.Store{}, s)
	})

	t.Run("memory", func(t *testing.T) {
		cfg := base
		cfg.Provider = config.ProviderMemory

		s, err := New(context.Background(), cfg)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, s)
		assert.NoError(t, s.Close())
	})

	t.Run("지원하지 않는 provider", func(t *testing.T) {
		cfg := base
		cfg.Provider = "s3"

		_, err := New(context.Background(), cfg)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}
