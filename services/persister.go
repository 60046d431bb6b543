package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/utils"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore keeps serialized ledger snapshots under a slot name.
type SnapshotStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
}

// Persister writes the ledger snapshot to a store after every change of
// persisted state.
type Persister struct {
	store       SnapshotStore
	name        string
	timeout     time.Duration
	mu          sync.Mutex
	lastSaved   uint64
	initialised bool
}

func NewPersister(store SnapshotStore, name string) *Persister {
	return &Persister{store: store, name: name, timeout: 5 * time.Second}
}

// Restore loads the slot into ledger. When the slot is empty and seed is
// not nil, the seed is applied and written. The returned bool reports
// whether a stored snapshot was found.
func (p *Persister) Restore(ctx context.Context, ledger *Ledger, seed func() models.LedgerSnapshot) (bool, error) {
	payload, err := p.store.Load(ctx, p.name)
	if errors.Is(err, ErrSnapshotNotFound) {
		if seed == nil {
			return false, nil
		}
		ledger.Restore(seed())
		utils.InfoLogger.WithField("snapshot", p.name).Info("No snapshot found, seeded default catalog")
		return false, p.Save(ctx, ledger)
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot %s: %w", p.name, err)
	}

	var snap models.LedgerSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", p.name, err)
	}
	ledger.Restore(snap)
	utils.InfoLogger.WithFields(logrus.Fields{
		"snapshot": p.name,
		"products": len(snap.Products),
		"orders":   len(snap.Orders),
	}).Info("Ledger restored")
	return true, nil
}

// Save writes the current snapshot unless a newer or equal revision has
// already been written.
func (p *Persister) Save(ctx context.Context, ledger *Ledger) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap, rev := ledger.snapshot()
	if p.initialised && rev <= p.lastSaved {
		return nil
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := p.store.Save(ctx, p.name, payload); err != nil {
		return fmt.Errorf("save snapshot %s: %w", p.name, err)
	}
	p.lastSaved = rev
	p.initialised = true
	return nil
}

// Attach saves after every persistent ledger event. Failures are logged
// and never undo the change.
func (p *Persister) Attach(ledger *Ledger) {
	ledger.Subscribe(func(ev Event) {
		if !ev.Persistent() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.Save(ctx, ledger); err != nil {
			utils.ErrorLogger.WithFields(logrus.Fields{
				"snapshot": p.name,
				"event":    ev.Type,
			}).WithError(err).Error("Failed to persist ledger snapshot")
		}
	})
}
