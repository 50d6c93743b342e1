// Package provider 설정에 따라 storage.Store 구현체를 생성합니다.
package provider

import (
	"context"

	"github.com/darkkaiser/apk-update-server/internal/config"
	apperrors "github.com/darkkaiser/apk-update-server/internal/pkg/errors"
	"github.com/darkkaiser/apk-update-server/internal/storage"
	"github.com/darkkaiser/apk-update-server/internal/storage/file"
	"github.com/darkkaiser/apk-update-server/internal/storage/gcs"
	"github.com/darkkaiser/apk-update-server/internal/storage/memory"
	"github.com/darkkaiser/apk-update-server/internal/storage/supabase"
	applog "github.com/darkkaiser/apk-update-server/pkg/log"
)

const component = "storage.provider"

// New cfg.Provider에 해당하는 Store를 생성합니다.
func New(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	var (
		s   storage.Store
		err error
	)

	switch cfg.Provider {
	case config.ProviderSupabase:
		s, err = supabase.New(supabase.Options{
			URL:              cfg.Supabase.URL,
			Key:              cfg.Supabase.Key,
			Bucket:           cfg.Bucket,
			ListLimit:        cfg.ListLimit,
			MaxDownloadBytes: cfg.MaxDownloadBytes,
			Timeout:          cfg.Timeout,
		})

	case config.ProviderGCS:
		s, err = gcs.New(ctx, gcs.Options{
			Bucket:           cfg.Bucket,
			CredentialsFile:  cfg.GCS.CredentialsFile,
			Endpoint:         cfg.GCS.Endpoint,
			ListLimit:        cfg.ListLimit,
			MaxDownloadBytes: cfg.MaxDownloadBytes,
			Timeout:          cfg.Timeout,
		})

	case config.ProviderFile:
		s, err = file.New(cfg.File.Root, cfg.Bucket)

	case config.ProviderMemory:
		s = memory.New()

	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 스토리지 provider입니다 (provider=%q)", cfg.Provider)
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.UnderlyingType(err), "%s 스토리지 초기화에 실패했습니다", cfg.Provider)
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"provider": cfg.Provider,
		"bucket":   cfg.Bucket,
		"folder":   cfg.Folder,
	}).Info("스토리지 클라이언트 생성 완료")

	return s, nil
}
