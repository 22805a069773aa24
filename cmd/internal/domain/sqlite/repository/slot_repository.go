package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultSlotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) *DefaultSlotRepository {
	return &DefaultSlotRepository{db: db}
}

func (s *DefaultSlotRepository) Save(slot *entity.AvailabilitySlot) error {
	return s.db.Save(slot).Error
}

func (s *DefaultSlotRepository) FindByID(id int) (*entity.AvailabilitySlot, error) {
	var slot entity.AvailabilitySlot
	err := s.db.First(&slot, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &slot, err
}

func (s *DefaultSlotRepository) FindByUserID(userID int) ([]*entity.AvailabilitySlot, error) {
	var slots []*entity.AvailabilitySlot
	err := s.db.
		Where("user_id = ?", userID).
		Order("start_time asc").
		Find(&slots).Error
	return slots, err
}

func (s *DefaultSlotRepository) FindOpenByUserID(userID int) ([]*entity.AvailabilitySlot, error) {
	var slots []*entity.AvailabilitySlot
	err := s.db.
		Where("user_id = ?", userID).
		Where("is_booked = ?", false).
		Order("start_time asc").
		Find(&slots).Error
	return slots, err
}
