package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cymond/educhat/entity"
	"github.com/cymond/educhat/errors"
)

type (
	// SqliteStore is the gorm-backed storage collaborator. Besides memories it
	// persists character profiles and adaptation state, so a single database
	// file carries everything durable about a deployment.
	SqliteStore struct {
		db *gorm.DB
	}

	// profileRecord stores the profile as a JSON document; profiles are only
	// read whole, never queried by field.
	profileRecord struct {
		ID   string `gorm:"primaryKey"`
		Data datatypes.JSON
	}
)

var (
	_ Store = (*SqliteStore)(nil)
)

func (profileRecord) TableName() string { return "character_profiles" }

func NewSqliteStore(path string, logger *slog.Logger) (*SqliteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite store path is not configured")
	}
	if path != ":memory:" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, errors.Wrapf(err, "failed to create sqlite directory for %s", path)
			}
			if logger != nil {
				logger.Info("created sqlite directory", slog.String("path", path))
			}
		}
	}

	db, err := gorm.Open(
		sqlite.Open(
			fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", path),
		),
		&gorm.Config{},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database at %s", path)
	}

	if err := db.AutoMigrate(&entity.Memory{}, &entity.AdaptedState{}, &profileRecord{}); err != nil {
		return nil, errors.Wrapf(err, "failed to auto-migrate sqlite database at %s", path)
	}

	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return db.Close()
}

func (s *SqliteStore) Put(ctx context.Context, memory *entity.Memory) error {
	return errors.Wrapf(s.db.WithContext(ctx).Create(memory).Error, "failed to put memory")
}

func (s *SqliteStore) Update(ctx context.Context, memory *entity.Memory) error {
	return errors.Wrapf(s.db.WithContext(ctx).Save(memory).Error, "failed to update memory")
}

func (s *SqliteStore) List(ctx context.Context, characterID, userID string) ([]*entity.Memory, error) {
	var memories []*entity.Memory
	err := s.db.WithContext(ctx).
		Where("character_id = ? AND user_id = ?", characterID, userID).
		Order("importance DESC, created_at DESC").
		Find(&memories).Error
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list memories")
	}
	return memories, nil
}

func (s *SqliteStore) Touch(ctx context.Context, characterID, userID string, ids []string, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Model(&entity.Memory{}).
		Where("character_id = ? AND user_id = ? AND id IN ?", characterID, userID, ids).
		Update("last_accessed_at", at).Error
	return errors.Wrapf(err, "failed to touch memories")
}

func (s *SqliteStore) Delete(ctx context.Context, characterID, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Where("character_id = ? AND user_id = ? AND id IN ?", characterID, userID, ids).
		Delete(&entity.Memory{}).Error
	return errors.Wrapf(err, "failed to delete memories")
}

// LoadState implements behavior.StateStore.
func (s *SqliteStore) LoadState(ctx context.Context, characterID, userID string) (*entity.AdaptedState, error) {
	var state entity.AdaptedState
	err := s.db.WithContext(ctx).
		Where("character_id = ? AND user_id = ?", characterID, userID).
		First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(errors.ErrNotFound, "adaptation state for %s/%s", characterID, userID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load adaptation state")
	}
	return &state, nil
}

// SaveState implements behavior.StateStore.
func (s *SqliteStore) SaveState(ctx context.Context, state *entity.AdaptedState) error {
	return errors.Wrapf(s.db.WithContext(ctx).Save(state).Error, "failed to save adaptation state")
}

func (s *SqliteStore) PutProfile(ctx context.Context, character *entity.Character) error {
	data, err := json.Marshal(character)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal profile %s", character.ID)
	}
	record := profileRecord{ID: character.ID, Data: data}
	return errors.Wrapf(s.db.WithContext(ctx).Save(&record).Error, "failed to put profile")
}

func (s *SqliteStore) GetProfile(ctx context.Context, id string) (*entity.Character, error) {
	var record profileRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrapf(errors.ErrProfileNotFound, "%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get profile %s", id)
	}

	var character entity.Character
	if err := json.Unmarshal(record.Data, &character); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal profile %s", id)
	}
	return &character, nil
}
