package service

import (
	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type LikeRepository interface {
	Insert(like *entity.Like) (bool, error)
	Exists(senderID, receiverID int) (bool, error)
	FindReceiverIDs(senderID int) ([]int, error)
}

type MatchRepository interface {
	Ensure(userA, userB int, matchedAt int64) (*entity.Match, error)
	FindByID(id int) (*entity.Match, error)
	FindAllForUser(userID int) ([]*entity.Match, error)
}

type LikeRequest struct {
	ReceiverID int `json:"receiverId" validate:"required,gt=0"`
}

type LikeResponse struct {
	Success bool `json:"success"`
	IsMatch bool `json:"isMatch"`
}

type MatchedUser struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

type MatchResponse struct {
	ID        int          `json:"id"`
	MatchedAt string       `json:"matchedAt"`
	OtherUser *MatchedUser `json:"otherUser"`
}

type DefaultMatchService struct {
	LikeRepo    LikeRepository
	MatchRepo   MatchRepository
	UserRepo    UserRepository
	ProfileRepo ProfileRepository
	Validate    *validator.Validate
}

func NewMatchService(likeRepo LikeRepository, matchRepo MatchRepository, userRepo UserRepository, profileRepo ProfileRepository, validate *validator.Validate) *DefaultMatchService {
	return &DefaultMatchService{
		LikeRepo:    likeRepo,
		MatchRepo:   matchRepo,
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
		Validate:    validate,
	}
}

// Like records a directional like and reports whether it completed a mutual
// pair. A repeated like for the same pair is a success no-op with
// isMatch=false; only the call whose insert actually completes the pair
// reports isMatch=true. The reverse-like check is not atomic with the
// insert on purpose: if this call misses the reverse like, the reverse
// like's own call sees ours and forms the match instead.
func (m *DefaultMatchService) Like(req *LikeRequest, senderID int) (*LikeResponse, apierror.ErrorResponse) {
	if err := m.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if req.ReceiverID == senderID {
		return nil, apierror.SelfLikeError
	}

	receiver, err := m.UserRepo.FindByID(req.ReceiverID)
	if err != nil {
		log.Errorf("failed to fetch like receiver %d: %v", req.ReceiverID, err)
		return nil, apierror.InternalServerError
	}
	if receiver == nil {
		return nil, apierror.NotFoundError
	}

	like := &entity.Like{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		CreatedAt:  utils.NowUTC(),
	}

	created, err := m.LikeRepo.Insert(like)
	if err != nil {
		log.Errorf("failed to record like %d -> %d: %v", senderID, req.ReceiverID, err)
		return nil, apierror.InternalServerError
	}
	if !created {
		return &LikeResponse{Success: true, IsMatch: false}, nil
	}

	mutual, err := m.LikeRepo.Exists(req.ReceiverID, senderID)
	if err != nil {
		log.Errorf("failed to check reverse like %d -> %d: %v", req.ReceiverID, senderID, err)
		return nil, apierror.InternalServerError
	}
	if !mutual {
		return &LikeResponse{Success: true, IsMatch: false}, nil
	}

	_, err = m.MatchRepo.Ensure(senderID, req.ReceiverID, utils.NowUTC())
	if err != nil {
		log.Errorf("failed to ensure match for pair (%d, %d): %v", senderID, req.ReceiverID, err)
		return nil, apierror.InternalServerError
	}
	return &LikeResponse{Success: true, IsMatch: true}, nil
}

func (m *DefaultMatchService) GetMatches(userID int) ([]*MatchResponse, apierror.ErrorResponse) {
	matches, err := m.MatchRepo.FindAllForUser(userID)
	if err != nil {
		log.Errorf("failed to fetch matches for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	response := make([]*MatchResponse, len(matches))
	for i, match := range matches {
		otherID, _ := match.OtherUser(userID)

		other := &MatchedUser{ID: otherID}
		profile, err := m.ProfileRepo.FindByUserID(otherID)
		if err != nil {
			log.Errorf("failed to fetch profile for user %d: %v", otherID, err)
			return nil, apierror.InternalServerError
		}
		if profile != nil {
			other.Name = profile.DisplayName
			if len(profile.Photos) > 0 {
				other.Photo = profile.Photos[0].URL
			}
		}

		response[i] = &MatchResponse{
			ID:        match.ID,
			MatchedAt: utils.FormatEpoch(match.MatchedAt),
			OtherUser: other,
		}
	}
	return response, nil
}
