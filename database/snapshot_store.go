package database

import (
	"context"
	"errors"
	"time"

	"github.com/yeremiapane/acai-pdv/models"
	"github.com/yeremiapane/acai-pdv/services"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSnapshotStore keeps each snapshot slot as one row of the snapshots table.
type GormSnapshotStore struct {
	db *gorm.DB
}

func NewGormSnapshotStore(db *gorm.DB) *GormSnapshotStore {
	return &GormSnapshotStore{db: db}
}

func (s *GormSnapshotStore) Load(ctx context.Context, name string) ([]byte, error) {
	var row models.Snapshot
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Payload), nil
}

// Save inserts the slot or overwrites its payload.
func (s *GormSnapshotStore) Save(ctx context.Context, name string, payload []byte) error {
	row := models.Snapshot{
		Name:      name,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
