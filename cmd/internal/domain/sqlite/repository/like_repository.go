package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultLikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *DefaultLikeRepository {
	return &DefaultLikeRepository{db: db}
}

// Insert persists the like and reports whether a new row was created.
// The unique index on (sender_id, receiver_id) settles duplicate concurrent
// submissions: the loser sees gorm.ErrDuplicatedKey, which is reported as
// created=false rather than an error.
func (l *DefaultLikeRepository) Insert(like *entity.Like) (bool, error) {
	err := l.db.Create(like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *DefaultLikeRepository) Exists(senderID, receiverID int) (bool, error) {
	var count int64
	err := l.db.Model(&entity.Like{}).
		Where("sender_id = ?", senderID).
		Where("receiver_id = ?", receiverID).
		Count(&count).Error
	return count > 0, err
}

// FindReceiverIDs returns the ids of every user senderID has liked.
func (l *DefaultLikeRepository) FindReceiverIDs(senderID int) ([]int, error) {
	var ids []int
	err := l.db.Model(&entity.Like{}).
		Where("sender_id = ?", senderID).
		Pluck("receiver_id", &ids).Error
	return ids, err
}
