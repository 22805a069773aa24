package sqlite

import (
	"matchpoint/cmd/internal/domain/entity"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the shared sqlite database and migrates the schema.
// TranslateError is on so unique-index violations come back as
// gorm.ErrDuplicatedKey, which the like/match repositories rely on.
func Init(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Profile{},
		&entity.Photo{},
		&entity.Like{},
		&entity.Match{},
		&entity.AvailabilitySlot{},
		&entity.CallInvite{},
		&entity.CallBooking{},
		&entity.AttemptWindow{},
		&entity.ResetToken{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
