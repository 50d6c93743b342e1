package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/darkkaiser/apk-update-server/internal/storage"
)

// MockStore storage.Store 인터페이스의 Mock 구현체입니다.
type MockStore struct {
	mock.Mock
}

var _ storage.Store = (*MockStore)(nil)

func (m *MockStore) List(ctx context.Context, folder string) ([]storage.ObjectInfo, error) {
	args := m.Called(ctx, folder)
	objects, _ := args.Get(0).([]storage.ObjectInfo)
	return objects, args.Error(1)
}

func (m *MockStore) Download(ctx context.Context, path string) (*storage.Object, error) {
	args := m.Called(ctx, path)
	obj, _ := args.Get(0).(*storage.Object)
	return obj, args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
