package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/darkkaiser/apk-update-server/internal/config"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/service/api"
	"github.com/darkkaiser/apk-update-server/internal/service/notification"
	"github.com/darkkaiser/apk-update-server/internal/service/probe"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetadata(t *testing.T) {
	assert.Equal(t, "apk-update-server", config.AppName)
	assert.Equal(t, "apk-update-server.json", config.DefaultFilename)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr error
	}{
		{name: "인자 없음", args: nil, want: options{}},
		{name: "설정 파일", args: []string{"--config", "custom.yaml"}, want: options{configFile: "custom.yaml"}},
		{name: "단축 옵션", args: []string{"-c", "custom.json", "-v"}, want: options{configFile: "custom.json", showVersion: true}},
		{name: "도움말", args: []string{"--help"}, wantErr: pflag.ErrHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := parseFlags(tt.args, &out)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, out.String(), "--config")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseFlags([]string{"--unknown"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestNewComponents(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Provider = config.ProviderMemory

	c, err := newComponents(context.Background(), &cfg)
	require.NoError(t, err)
	defer c.store.Close()

	require.Len(t, c.services, 3)
	assert.IsType(t, &notification.Service{}, c.services[0])
	assert.IsType(t, &probe.Service{}, c.services[1])
	assert.IsType(t, &api.Service{}, c.services[2])
}

func TestNewComponents_StorageError(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Provider = config.ProviderSupabase
	cfg.Storage.Supabase = config.SupabaseConfig{}

	_, err := newComponents(context.Background(), &cfg)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}
