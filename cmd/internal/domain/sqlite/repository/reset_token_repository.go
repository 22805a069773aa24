package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultResetTokenRepository struct {
	db *gorm.DB
}

func NewResetTokenRepository(db *gorm.DB) *DefaultResetTokenRepository {
	return &DefaultResetTokenRepository{db: db}
}

func (r *DefaultResetTokenRepository) Save(token *entity.ResetToken) error {
	return r.db.Save(token).Error
}

// Consume fetches and deletes the token in one transaction, so a token can
// be redeemed at most once even under concurrent confirms. Expired tokens
// are deleted on sight and reported as absent.
func (r *DefaultResetTokenRepository) Consume(token string, now int64) (*entity.ResetToken, error) {
	var stored entity.ResetToken
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("token = ?", token).First(&stored).Error
		if err != nil {
			return err
		}

		res := tx.Where("token = ?", token).Delete(&entity.ResetToken{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if stored.ExpiresAt <= now {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
