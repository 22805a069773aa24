package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

// ErrSlotTaken is returned by Accept when the booking race is lost: either
// the slot's latch was already flipped or the invite was already accepted.
var ErrSlotTaken = errors.New("slot already booked")

type DefaultInviteRepository struct {
	db *gorm.DB
}

func NewInviteRepository(db *gorm.DB) *DefaultInviteRepository {
	return &DefaultInviteRepository{db: db}
}

func (i *DefaultInviteRepository) Save(invite *entity.CallInvite) error {
	return i.db.Save(invite).Error
}

func (i *DefaultInviteRepository) FindByID(id int) (*entity.CallInvite, error) {
	var invite entity.CallInvite
	err := i.db.Preload("Slot").Preload("Match").First(&invite, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invite, err
}

// Accept applies the three booking writes as one atomic unit: flip the
// slot's is_booked latch, move the invite to accepted, create the booking.
// Both updates are guarded so they only hit rows still in the expected
// state; zero rows affected means another accept won the slot first, and
// the transaction rolls back with ErrSlotTaken. At most one booking can
// ever exist per slot, no matter how many invites point at it.
func (i *DefaultInviteRepository) Accept(invite *entity.CallInvite, booking *entity.CallBooking, now int64) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.AvailabilitySlot{}).
			Where("id = ?", invite.SlotID).
			Where("is_booked = ?", false).
			Updates(map[string]any{"is_booked": true, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotTaken
		}

		res = tx.Model(&entity.CallInvite{}).
			Where("id = ?", invite.ID).
			Where("status = ?", entity.InviteStatusProposed).
			Updates(map[string]any{"status": entity.InviteStatusAccepted, "updated_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSlotTaken
		}

		return tx.Create(booking).Error
	})
}
