package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/acai-pdv/services"
)

var nowForTests = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func TestRedisSnapshotStore(t *testing.T) {
	mock := newMockCmdable()
	store := NewRedisSnapshotStore(mock, "acai-pdv")
	ctx := context.Background()

	_, err := store.Load(ctx, "acai-pdv-store")
	assert.ErrorIs(t, err, services.ErrSnapshotNotFound)

	require.NoError(t, store.Save(ctx, "acai-pdv-store", []byte(`{"orders":[]}`)))
	assert.Contains(t, mock.data, "acai-pdv:acai-pdv-store")

	payload, err := store.Load(ctx, "acai-pdv-store")
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":[]}`, string(payload))
}

func TestRedisSnapshotStoreWithoutPrefix(t *testing.T) {
	mock := newMockCmdable()
	store := NewRedisSnapshotStore(mock, "")

	require.NoError(t, store.Save(context.Background(), "slot", []byte("{}")))
	assert.Contains(t, mock.data, "slot")
}
