package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultMatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *DefaultMatchRepository {
	return &DefaultMatchRepository{db: db}
}

// Ensure returns the one match for the canonical pair (userA < userB),
// creating it if absent. Two requests may race here, one per direction of
// the mutual like; the unique index on (user_a_id, user_b_id) lets only one
// insert through, and the loser fetches the winner's row. Callers never see
// the duplicate as an error.
func (m *DefaultMatchRepository) Ensure(userA, userB int, matchedAt int64) (*entity.Match, error) {
	if userA > userB {
		userA, userB = userB, userA
	}

	existing, err := m.findByPair(userA, userB)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	match := &entity.Match{UserAID: userA, UserBID: userB, MatchedAt: matchedAt}
	err = m.db.Create(match).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return m.findByPair(userA, userB)
	}
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (m *DefaultMatchRepository) FindByID(id int) (*entity.Match, error) {
	var match entity.Match
	err := m.db.First(&match, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &match, err
}

func (m *DefaultMatchRepository) FindAllForUser(userID int) ([]*entity.Match, error) {
	var matches []*entity.Match
	err := m.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Find(&matches).Error
	return matches, err
}

func (m *DefaultMatchRepository) findByPair(userA, userB int) (*entity.Match, error) {
	var match entity.Match
	err := m.db.
		Where("user_a_id = ?", userA).
		Where("user_b_id = ?", userB).
		First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &match, err
}
