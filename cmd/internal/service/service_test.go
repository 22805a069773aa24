package service

import (
	"path/filepath"
	"testing"

	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/domain/sqlite"
	"matchpoint/cmd/internal/domain/sqlite/repository"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv wires every service against one fresh sqlite database, the same
// way cmd/api/main.go does in production.
type testEnv struct {
	db       *gorm.DB
	users    *DefaultUserService
	profiles *DefaultProfileService
	matches  *DefaultMatchService
	schedule *DefaultScheduleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	validate := validator.New()
	require.NoError(t, validate.RegisterValidation("iso8601", validators.IsIso8601))
	require.NoError(t, validate.RegisterValidation("mixedclasses", validators.HasMixedClasses))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)

	return &testEnv{
		db:       db,
		users:    NewUserService(userRepo, profileRepo, attemptRepo, resetTokenRepo, validate),
		profiles: NewProfileService(profileRepo, likeRepo, validate),
		matches:  NewMatchService(likeRepo, matchRepo, userRepo, profileRepo, validate),
		schedule: NewScheduleService(slotRepo, inviteRepo, matchRepo, validate),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *entity.User {
	t.Helper()

	now := utils.NowUTC()
	user := &entity.User{
		Email:     email,
		Password:  "unused-hash",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

// createMatch forms a match between the two users through mutual likes,
// the only path that exists in production.
func (e *testEnv) createMatch(t *testing.T, userA, userB *entity.User) *entity.Match {
	t.Helper()

	_, apierr := e.matches.Like(&LikeRequest{ReceiverID: userB.ID}, userA.ID)
	require.Nil(t, apierr)
	resp, apierr := e.matches.Like(&LikeRequest{ReceiverID: userA.ID}, userB.ID)
	require.Nil(t, apierr)
	require.True(t, resp.IsMatch)

	var match entity.Match
	require.NoError(t, e.db.
		Where("user_a_id = ? AND user_b_id = ?", min(userA.ID, userB.ID), max(userA.ID, userB.ID)).
		First(&match).Error)
	return &match
}

func (e *testEnv) createSlot(t *testing.T, owner *entity.User, start, end string) *SlotResponse {
	t.Helper()

	slot, apierr := e.schedule.CreateSlot(&SlotRequest{StartTime: start, EndTime: end}, owner.ID)
	require.Nil(t, apierr)
	return slot
}
