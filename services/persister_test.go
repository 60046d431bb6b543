package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/acai-pdv/models"
)

type memoryStore struct {
	mu     sync.Mutex
	slots  map[string][]byte
	saves  int
	failOn error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{slots: make(map[string][]byte)}
}

func (m *memoryStore) Load(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.slots[name]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return payload, nil
}

func (m *memoryStore) Save(_ context.Context, name string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != nil {
		return m.failOn
	}
	m.slots[name] = append([]byte(nil), payload...)
	m.saves++
	return nil
}

func (m *memoryStore) decode(t *testing.T, name string) models.LedgerSnapshot {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	var snap models.LedgerSnapshot
	require.NoError(t, json.Unmarshal(m.slots[name], &snap))
	return snap
}

func TestPersisterSeedsEmptySlot(t *testing.T) {
	store := newMemoryStore()
	p := NewPersister(store, "acai-pdv-store")
	l := NewLedger()

	found, err := p.Restore(context.Background(), l, func() models.LedgerSnapshot { return SeedSnapshot(testNow) })
	require.NoError(t, err)
	assert.False(t, found)
	assert.Len(t, l.Products(ProductFilter{}), 7)
	assert.Len(t, store.decode(t, "acai-pdv-store").Products, 7)
}

func TestPersisterRestoresStoredSnapshot(t *testing.T) {
	store := newMemoryStore()
	source, _ := newTestLedger(t)
	require.NoError(t, NewPersister(store, "slot").Save(context.Background(), source))

	l := NewLedger()
	found, err := NewPersister(store, "slot").Restore(context.Background(), l, nil)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, source.Stock(), l.Stock())
	user, ok := l.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "Maria Santos", user.Name)
}

func TestPersisterRejectsCorruptPayload(t *testing.T) {
	store := newMemoryStore()
	store.slots["slot"] = []byte("{not json")

	_, err := NewPersister(store, "slot").Restore(context.Background(), NewLedger(), nil)
	assert.Error(t, err)
}

func TestPersisterAttachSavesOncePerMutation(t *testing.T) {
	store := newMemoryStore()
	l, _ := newTestLedger(t)
	p := NewPersister(store, "slot")
	p.Attach(l)

	_, err := l.AddToCurrentOrder(acaiLine(models.SizeM, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, store.saves, "cart edits are not persisted")

	order, err := l.FinalizeOrder(models.PaymentPix, "")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)

	snap := store.decode(t, "slot")
	require.Len(t, snap.Orders, 1)
	assert.Equal(t, order.ID, snap.Orders[0].ID)
	for _, item := range snap.Stock {
		if item.Size == models.SizeM {
			assert.Equal(t, 49, item.AvailablePots)
		}
	}
}

func TestPersisterFailureDoesNotUndoMutation(t *testing.T) {
	store := newMemoryStore()
	store.failOn = errors.New("disk full")
	l, _ := newTestLedger(t)
	NewPersister(store, "slot").Attach(l)

	require.NoError(t, l.SetStockPackages("1", models.SizeP, 9))
	item, _ := l.GetStockByKey("1", models.SizeP)
	assert.Equal(t, 225, item.AvailablePots)
}
