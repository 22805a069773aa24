package service

import (
	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Attempt limits per 10-minute window, keyed by client IP.
const (
	attemptWindow     = 10 * time.Minute
	signupLimit       = 12
	loginLimit        = 20
	resetRequestLimit = 20
)

const resetTokenLifetime = time.Hour

type UserRepository interface {
	FindByID(id int) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	Save(user *entity.User) error
}

type AttemptRepository interface {
	Increment(key string, now, windowExpiry int64) (int64, error)
	Cleanup(now int64) error
}

type ResetTokenRepository interface {
	Save(token *entity.ResetToken) error
	Consume(token string, now int64) (*entity.ResetToken, error)
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=200,mixedclasses"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=200,mixedclasses"`
}

type AuthUser struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token           string    `json:"token"`
	User            *AuthUser `json:"user"`
	ProfileComplete bool      `json:"profileComplete"`
}

type MeResponse struct {
	User            *AuthUser `json:"user"`
	ProfileComplete bool      `json:"profileComplete"`
}

type ResetRequestResponse struct {
	OK bool `json:"ok"`
	// ResetToken is only populated outside production so the frontend can
	// complete the flow without a mail integration.
	ResetToken string `json:"resetToken,omitempty"`
}

type ResetConfirmResponse struct {
	OK bool `json:"ok"`
}

type DefaultUserService struct {
	UserRepo       UserRepository
	ProfileRepo    ProfileRepository
	AttemptRepo    AttemptRepository
	ResetTokenRepo ResetTokenRepository
	Validate       *validator.Validate
}

func NewUserService(userRepo UserRepository, profileRepo ProfileRepository, attemptRepo AttemptRepository, resetTokenRepo ResetTokenRepository, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{
		UserRepo:       userRepo,
		ProfileRepo:    profileRepo,
		AttemptRepo:    attemptRepo,
		ResetTokenRepo: resetTokenRepo,
		Validate:       validate,
	}
}

func (u *DefaultUserService) Signup(req *SignupRequest, clientIP string) (*AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if apierr := u.throttle("signup:"+clientIP, signupLimit); apierr != nil {
		return nil, apierr
	}

	found, err := u.UserRepo.ExistsByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.InternalServerError
	}
	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	now := utils.NowUTC()
	user := &entity.User{
		Email:     req.Email,
		Password:  string(hash),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}
	return u.authResponse(user)
}

func (u *DefaultUserService) Login(req *LoginRequest, clientIP string) (*AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if apierr := u.throttle("login:"+clientIP, loginLimit); apierr != nil {
		return nil, apierr
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.InvalidCredentialsError
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, apierror.InvalidCredentialsError
	}
	return u.authResponse(user)
}

func (u *DefaultUserService) Me(userID int) (*MeResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(userID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	if user == nil || !user.IsActive {
		return nil, apierror.InvalidAuthTokenError
	}

	complete, apierr := u.profileComplete(user.ID)
	if apierr != nil {
		return nil, apierr
	}
	return &MeResponse{
		User:            &AuthUser{ID: user.ID, Email: user.Email},
		ProfileComplete: complete,
	}, nil
}

// RequestPasswordReset issues a single-use reset token. The response is
// identical whether or not the email is registered, so accounts cannot be
// enumerated.
func (u *DefaultUserService) RequestPasswordReset(req *ResetRequestRequest, clientIP string) (*ResetRequestResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	req.Email = strings.ToLower(req.Email)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	if apierr := u.throttle("pwreset:"+clientIP, resetRequestLimit); apierr != nil {
		return nil, apierr
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user from database: %v", err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return &ResetRequestResponse{OK: true}, nil
	}

	token := &entity.ResetToken{
		Token:     strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		UserID:    user.ID,
		ExpiresAt: utils.NowUTC() + resetTokenLifetime.Milliseconds(),
	}
	if err := u.ResetTokenRepo.Save(token); err != nil {
		log.Errorf("failed to save reset token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	if utils.Getenv("APP_ENV", "") == "production" {
		return &ResetRequestResponse{OK: true}, nil
	}
	return &ResetRequestResponse{OK: true, ResetToken: token.Token}, nil
}

func (u *DefaultUserService) ConfirmPasswordReset(req *ResetConfirmRequest) (*ResetConfirmResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := u.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	record, err := u.ResetTokenRepo.Consume(req.Token, utils.NowUTC())
	if err != nil {
		log.Errorf("failed to consume reset token: %v", err)
		return nil, apierror.InternalServerError
	}
	if record == nil {
		return nil, apierror.InvalidResetTokenError
	}

	user, err := u.UserRepo.FindByID(record.UserID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", record.UserID, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.InvalidResetTokenError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user.Password = string(hash)
	user.UpdatedAt = utils.NowUTC()
	if err := u.UserRepo.Save(user); err != nil {
		log.Errorf("failed to update password for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return &ResetConfirmResponse{OK: true}, nil
}

// throttle counts an attempt for key and rejects once the window limit is
// exceeded. The counter lives in the shared store so the limit holds
// across server instances.
func (u *DefaultUserService) throttle(key string, limit int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	if err := u.AttemptRepo.Cleanup(now); err != nil {
		log.Errorf("failed to clean up expired attempt windows: %v", err)
	}

	count, err := u.AttemptRepo.Increment(key, now, now+attemptWindow.Milliseconds())
	if err != nil {
		log.Errorf("failed to count attempt for %s: %v", key, err)
		return apierror.InternalServerError
	}
	if count > limit {
		return apierror.TooManyAttemptsError
	}
	return nil
}

func (u *DefaultUserService) authResponse(user *entity.User) (*AuthResponse, apierror.ErrorResponse) {
	token, err := utils.IssueToken(user.ID)
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	complete, apierr := u.profileComplete(user.ID)
	if apierr != nil {
		return nil, apierr
	}
	return &AuthResponse{
		Token:           token,
		User:            &AuthUser{ID: user.ID, Email: user.Email},
		ProfileComplete: complete,
	}, nil
}

func (u *DefaultUserService) profileComplete(userID int) (bool, apierror.ErrorResponse) {
	complete, err := u.ProfileRepo.ExistsByUserID(userID)
	if err != nil {
		log.Errorf("failed to check profile for user %d: %v", userID, err)
		return false, apierror.InternalServerError
	}
	return complete, nil
}
