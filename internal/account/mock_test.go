package account

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// mockStore lets repository tests script each tier's result independently.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) FindExact(ctx context.Context, key string) ([]Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *mockStore) FindContaining(ctx context.Context, key string) ([]Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *mockStore) ReplaceAll(ctx context.Context, accounts []Account) (int, error) {
	args := m.Called(ctx, accounts)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) Migrate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
