package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Mirror is a mock implementation of store.Mirror
type Mirror struct {
	mock.Mock
}

func (m *Mirror) Put(ctx context.Context, objectName string, data []byte) error {
	args := m.Called(ctx, objectName, data)
	return args.Error(0)
}

func (m *Mirror) Get(ctx context.Context, objectName string) ([]byte, error) {
	args := m.Called(ctx, objectName)
	if b, ok := args.Get(0).([]byte); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}
