package service

import (
	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const maxProfilePhotos = 6

type ProfileRepository interface {
	FindByUserID(userID int) (*entity.Profile, error)
	ExistsByUserID(userID int) (bool, error)
	Save(profile *entity.Profile) error
	ReplacePhotos(profileID int, photos []*entity.Photo) error
	FindDiscovery(excludeUserIDs []int) ([]*entity.Profile, error)
}

type ProfileRequest struct {
	DisplayName string   `json:"displayName" validate:"required,max=50"`
	Bio         string   `json:"bio" validate:"max=400"`
	Age         int      `json:"age" validate:"required,gte=18,lte=100"`
	Location    string   `json:"location" validate:"max=80"`
	Gender      string   `json:"gender" validate:"max=30"`
	Preferences string   `json:"preferences" validate:"max=4000"`
	Photos      []string `json:"photos"`
}

type PhotoResponse struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
	IsPrimary bool   `json:"isPrimary"`
}

type ProfileResponse struct {
	ID          int              `json:"id"`
	UserID      int              `json:"userId"`
	DisplayName string           `json:"displayName"`
	Bio         string           `json:"bio"`
	Age         int              `json:"age"`
	Location    string           `json:"location"`
	Gender      string           `json:"gender"`
	Preferences string           `json:"preferences"`
	Photos      []*PhotoResponse `json:"photos"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

type DefaultProfileService struct {
	ProfileRepo ProfileRepository
	LikeRepo    LikeRepository
	Validate    *validator.Validate
}

func NewProfileService(profileRepo ProfileRepository, likeRepo LikeRepository, validate *validator.Validate) *DefaultProfileService {
	return &DefaultProfileService{ProfileRepo: profileRepo, LikeRepo: likeRepo, Validate: validate}
}

// SaveProfile creates or updates the caller's profile and replaces its
// photo set with the given URL list (first photo becomes primary).
func (p *DefaultProfileService) SaveProfile(req *ProfileRequest, userID int) (*ProfileResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	profile, err := p.ProfileRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	if profile == nil {
		profile = &entity.Profile{UserID: userID, CreatedAt: now}
	}
	profile.DisplayName = req.DisplayName
	profile.Bio = req.Bio
	profile.Age = req.Age
	profile.Location = req.Location
	profile.Gender = req.Gender
	profile.Preferences = req.Preferences
	profile.UpdatedAt = now

	if err := p.ProfileRepo.Save(profile); err != nil {
		log.Errorf("failed to save profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	if req.Photos != nil {
		if err := p.ProfileRepo.ReplacePhotos(profile.ID, buildPhotos(profile.ID, req.Photos)); err != nil {
			log.Errorf("failed to replace photos for profile %d: %v", profile.ID, err)
			return nil, apierror.InternalServerError
		}
	}

	saved, err := p.ProfileRepo.FindByUserID(userID)
	if err != nil || saved == nil {
		log.Errorf("failed to reload profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toProfileResponse(saved), nil
}

func (p *DefaultProfileService) GetMyProfile(userID int) (*ProfileResponse, apierror.ErrorResponse) {
	profile, err := p.ProfileRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch profile for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	if profile == nil {
		return nil, apierror.NotFoundError
	}
	return toProfileResponse(profile), nil
}

// GetDiscovery lists everyone's profile except the caller's and those the
// caller already liked. Plain listing, no ranking.
func (p *DefaultProfileService) GetDiscovery(userID int) ([]*ProfileResponse, apierror.ErrorResponse) {
	likedIDs, err := p.LikeRepo.FindReceiverIDs(userID)
	if err != nil {
		log.Errorf("failed to fetch liked users for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	profiles, err := p.ProfileRepo.FindDiscovery(append(likedIDs, userID))
	if err != nil {
		log.Errorf("failed to fetch discovery profiles for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*ProfileResponse, len(profiles))
	for i, profile := range profiles {
		response[i] = toProfileResponse(profile)
	}
	return response, nil
}

func buildPhotos(profileID int, urls []string) []*entity.Photo {
	photos := make([]*entity.Photo, 0, maxProfilePhotos)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if len(photos) == maxProfilePhotos {
			break
		}
		photos = append(photos, &entity.Photo{
			ProfileID: profileID,
			URL:       url,
			SortOrder: len(photos),
			IsPrimary: len(photos) == 0,
		})
	}
	return photos
}

func toProfileResponse(profile *entity.Profile) *ProfileResponse {
	photos := make([]*PhotoResponse, len(profile.Photos))
	for i, photo := range profile.Photos {
		photos[i] = &PhotoResponse{
			ID:        photo.ID,
			URL:       photo.URL,
			SortOrder: photo.SortOrder,
			IsPrimary: photo.IsPrimary,
		}
	}
	return &ProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		DisplayName: profile.DisplayName,
		Bio:         profile.Bio,
		Age:         profile.Age,
		Location:    profile.Location,
		Gender:      profile.Gender,
		Preferences: profile.Preferences,
		Photos:      photos,
		CreatedAt:   utils.FormatEpoch(profile.CreatedAt),
		UpdatedAt:   utils.FormatEpoch(profile.UpdatedAt),
	}
}
