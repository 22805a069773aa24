package service

import (
	"net/http"
	"sync"
	"testing"

	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	resp, apierr := env.matches.Like(&LikeRequest{ReceiverID: bob.ID}, alice.ID)
	require.Nil(t, apierr)
	assert.True(t, resp.Success)
	assert.False(t, resp.IsMatch)

	// Same ordered pair again: success no-op, no second row.
	resp, apierr = env.matches.Like(&LikeRequest{ReceiverID: bob.ID}, alice.ID)
	require.Nil(t, apierr)
	assert.True(t, resp.Success)
	assert.False(t, resp.IsMatch)

	var count int64
	require.NoError(t, env.db.Model(&entity.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLikeRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")

	_, apierr := env.matches.Like(&LikeRequest{ReceiverID: alice.ID}, alice.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestLikeUnknownReceiver(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")

	_, apierr := env.matches.Like(&LikeRequest{ReceiverID: alice.ID + 100}, alice.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestMutualLikeFormsExactlyOneMatch(t *testing.T) {
	for name, reversed := range map[string]bool{"forward": false, "reversed": true} {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)
			alice := env.createUser(t, "alice@example.com")
			bob := env.createUser(t, "bob@example.com")

			first, second := alice, bob
			if reversed {
				first, second = bob, alice
			}

			resp, apierr := env.matches.Like(&LikeRequest{ReceiverID: second.ID}, first.ID)
			require.Nil(t, apierr)
			assert.False(t, resp.IsMatch)

			// The completing like reports the match.
			resp, apierr = env.matches.Like(&LikeRequest{ReceiverID: first.ID}, second.ID)
			require.Nil(t, apierr)
			assert.True(t, resp.IsMatch)

			var matches []entity.Match
			require.NoError(t, env.db.Find(&matches).Error)
			require.Len(t, matches, 1)
			assert.Equal(t, min(alice.ID, bob.ID), matches[0].UserAID)
			assert.Equal(t, max(alice.ID, bob.ID), matches[0].UserBID)
		})
	}
}

func TestConcurrentMutualLikesFormOneMatch(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, apierr := env.matches.Like(&LikeRequest{ReceiverID: bob.ID}, alice.ID)
		assert.Nil(t, apierr)
	}()
	go func() {
		defer wg.Done()
		_, apierr := env.matches.Like(&LikeRequest{ReceiverID: alice.ID}, bob.ID)
		assert.Nil(t, apierr)
	}()
	wg.Wait()

	var count int64
	require.NoError(t, env.db.Model(&entity.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureMatchRaceReturnsSameRow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	repo := env.matches.MatchRepo
	now := utils.NowUTC()

	results := make([]*entity.Match, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			// Each direction of the mutual like hands the pair in its own order.
			a, b := alice.ID, bob.ID
			if i == 1 {
				a, b = b, a
			}
			match, err := repo.Ensure(a, b, now)
			assert.NoError(t, err)
			results[i] = match
		}(i)
	}
	wg.Wait()

	require.NotNil(t, results[0])
	require.NotNil(t, results[1])
	assert.Equal(t, results[0].ID, results[1].ID)

	var count int64
	require.NoError(t, env.db.Model(&entity.Match{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetMatchesIncludesCounterpartProfile(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")

	_, apierr := env.profiles.SaveProfile(&ProfileRequest{
		DisplayName: "Bob",
		Age:         27,
		Photos:      []string{"https://example.com/bob.jpg"},
	}, bob.ID)
	require.Nil(t, apierr)

	match := env.createMatch(t, alice, bob)

	matches, apierr := env.matches.GetMatches(alice.ID)
	require.Nil(t, apierr)
	require.Len(t, matches, 1)
	assert.Equal(t, match.ID, matches[0].ID)
	assert.Equal(t, bob.ID, matches[0].OtherUser.ID)
	assert.Equal(t, "Bob", matches[0].OtherUser.Name)
	assert.Equal(t, "https://example.com/bob.jpg", matches[0].OtherUser.Photo)

	// Bob sees the same match from his side.
	matches, apierr = env.matches.GetMatches(bob.ID)
	require.Nil(t, apierr)
	require.Len(t, matches, 1)
	assert.Equal(t, alice.ID, matches[0].OtherUser.ID)
}
