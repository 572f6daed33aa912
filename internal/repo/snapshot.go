package repo

import (
	"context"
	"errors"
	"time"

	"ClipKeeper/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SnapshotRepository — доступ к серверным копиям записей и досок пользователя.
type SnapshotRepository interface {
	// GetItem возвращает запись по (userID, id); nil, если её нет.
	GetItem(ctx context.Context, userID int64, id string) (*model.SyncedItem, error)

	// UpsertItem вставляет или обновляет запись по составному ключу.
	UpsertItem(ctx context.Context, row *model.SyncedItem) error

	// ItemsUpdatedSince возвращает записи пользователя, изменённые после since.
	ItemsUpdatedSince(ctx context.Context, userID int64, since time.Time) ([]model.SyncedItem, error)

	// GetPinboard возвращает доску по (userID, id); nil, если её нет.
	GetPinboard(ctx context.Context, userID int64, id string) (*model.SyncedPinboard, error)

	// UpsertPinboard вставляет или обновляет доску.
	UpsertPinboard(ctx context.Context, row *model.SyncedPinboard) error

	// PinboardsUpdatedSince возвращает доски пользователя, изменённые после since.
	PinboardsUpdatedSince(ctx context.Context, userID int64, since time.Time) ([]model.SyncedPinboard, error)
}

type snapshotRepo struct {
	db *gorm.DB
}

// NewSnapshotRepository создаёт реализацию репозитория снимков.
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &snapshotRepo{db: db}
}

func (r *snapshotRepo) GetItem(ctx context.Context, userID int64, id string) (*model.SyncedItem, error) {
	var row model.SyncedItem
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *snapshotRepo) UpsertItem(ctx context.Context, row *model.SyncedItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timestamp", "payload", "updated_at"}),
	}).Create(row).Error
}

func (r *snapshotRepo) ItemsUpdatedSince(ctx context.Context, userID int64, since time.Time) ([]model.SyncedItem, error) {
	var rows []model.SyncedItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND updated_at > ?", userID, since).
		Order("timestamp DESC").
		Find(&rows).Error
	return rows, err
}

func (r *snapshotRepo) GetPinboard(ctx context.Context, userID int64, id string) (*model.SyncedPinboard, error) {
	var row model.SyncedPinboard
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *snapshotRepo) UpsertPinboard(ctx context.Context, row *model.SyncedPinboard) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"modified_at", "payload", "updated_at"}),
	}).Create(row).Error
}

func (r *snapshotRepo) PinboardsUpdatedSince(ctx context.Context, userID int64, since time.Time) ([]model.SyncedPinboard, error) {
	var rows []model.SyncedPinboard
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND updated_at > ?", userID, since).
		Order("modified_at DESC").
		Find(&rows).Error
	return rows, err
}
