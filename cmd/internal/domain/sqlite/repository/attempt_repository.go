package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultAttemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *DefaultAttemptRepository {
	return &DefaultAttemptRepository{db: db}
}

// Increment bumps the attempt counter for key and returns the count inside
// the current window. A single upsert statement does the bump-or-reset, so
// concurrent callers (or other server instances) never lose increments the
// way a read-modify-write would. An expired window starts over at 1.
func (a *DefaultAttemptRepository) Increment(key string, now, windowExpiry int64) (int64, error) {
	win := &entity.AttemptWindow{Key: key, Count: 1, WindowExpiry: windowExpiry}
	err := a.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count": gorm.Expr(
				"CASE WHEN attempt_windows.window_expiry <= ? THEN 1 ELSE attempt_windows.count + 1 END", now),
			"window_expiry": gorm.Expr(
				"CASE WHEN attempt_windows.window_expiry <= ? THEN ? ELSE attempt_windows.window_expiry END", now, windowExpiry),
		}),
	}).Create(win).Error
	if err != nil {
		return 0, err
	}

	var stored entity.AttemptWindow
	err = a.db.Where("key = ?", key).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stored.Count, nil
}

// Cleanup drops windows that expired before now.
func (a *DefaultAttemptRepository) Cleanup(now int64) error {
	return a.db.Where("window_expiry <= ?", now).Delete(&entity.AttemptWindow{}).Error
}
