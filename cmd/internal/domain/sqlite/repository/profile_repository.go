package repository

import (
	"errors"
	"matchpoint/cmd/internal/domain/entity"

	"gorm.io/gorm"
)

type DefaultProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *DefaultProfileRepository {
	return &DefaultProfileRepository{db: db}
}

func (p *DefaultProfileRepository) FindByUserID(userID int) (*entity.Profile, error) {
	var profile entity.Profile
	err := p.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("photos.sort_order asc")
	}).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &profile, err
}

func (p *DefaultProfileRepository) ExistsByUserID(userID int) (bool, error) {
	var count int64
	err := p.db.Model(&entity.Profile{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (p *DefaultProfileRepository) Save(profile *entity.Profile) error {
	return p.db.Omit("Photos", "User").Save(profile).Error
}

// ReplacePhotos swaps the profile's photo set for the given one.
func (p *DefaultProfileRepository) ReplacePhotos(profileID int, photos []*entity.Photo) error {
	return p.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("profile_id = ?", profileID).Delete(&entity.Photo{}).Error
		if err != nil {
			return err
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.Create(photos).Error
	})
}

// FindDiscovery lists profiles of everyone except the excluded user ids.
func (p *DefaultProfileRepository) FindDiscovery(excludeUserIDs []int) ([]*entity.Profile, error) {
	var profiles []*entity.Profile
	err := p.db.Preload("Photos", func(db *gorm.DB) *gorm.DB {
		return db.Order("photos.sort_order asc")
	}).Where("user_id NOT IN ?", excludeUserIDs).Find(&profiles).Error
	return profiles, err
}
