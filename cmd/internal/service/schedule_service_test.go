package service

import (
	"net/http"
	"sync"
	"testing"

	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlotRejectsNonChronologicalTimes(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob@example.com")

	_, apierr := env.schedule.CreateSlot(&SlotRequest{
		StartTime: "2025-01-10T10:30:00Z",
		EndTime:   "2025-01-10T10:00:00Z",
	}, bob.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusBadRequest, apierr.Code())
}

func TestCreateSlotAllowsOverlap(t *testing.T) {
	env := newTestEnv(t)
	bob := env.createUser(t, "bob@example.com")

	env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T11:00:00Z")
	env.createSlot(t, bob, "2025-01-10T10:30:00Z", "2025-01-10T11:30:00Z")

	slots, apierr := env.schedule.GetMySlots(bob.ID)
	require.Nil(t, apierr)
	assert.Len(t, slots, 2)
}

func TestCounterpartSlotsHideBookedOnes(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	match := env.createMatch(t, alice, bob)

	open := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")
	booked := env.createSlot(t, bob, "2025-01-11T10:00:00Z", "2025-01-11T10:30:00Z")
	require.NoError(t, env.db.Model(&entity.AvailabilitySlot{}).
		Where("id = ?", booked.ID).
		Update("is_booked", true).Error)

	slots, apierr := env.schedule.GetCounterpartSlots(match.ID, alice.ID)
	require.Nil(t, apierr)
	require.Len(t, slots, 1)
	assert.Equal(t, open.ID, slots[0].ID)
	assert.False(t, slots[0].IsBooked)
}

func TestCounterpartSlotsRejectNonParticipant(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	mallory := env.createUser(t, "mallory@example.com")
	match := env.createMatch(t, alice, bob)

	_, apierr := env.schedule.GetCounterpartSlots(match.ID, mallory.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestProposeInviteValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	match := env.createMatch(t, alice, bob)
	slot := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")

	t.Run("unknown match", func(t *testing.T) {
		_, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID + 100, SlotID: slot.ID}, alice.ID)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusNotFound, apierr.Code())
	})

	t.Run("unknown slot", func(t *testing.T) {
		_, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID + 100}, alice.ID)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusNotFound, apierr.Code())
	})

	t.Run("own slot", func(t *testing.T) {
		aliceSlot := env.createSlot(t, alice, "2025-01-12T10:00:00Z", "2025-01-12T10:30:00Z")
		_, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: aliceSlot.ID}, alice.ID)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusNotFound, apierr.Code())
	})

	t.Run("booked slot", func(t *testing.T) {
		require.NoError(t, env.db.Model(&entity.AvailabilitySlot{}).
			Where("id = ?", slot.ID).
			Update("is_booked", true).Error)
		_, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
		require.NotNil(t, apierr)
		assert.Equal(t, http.StatusConflict, apierr.Code())
	})
}

func TestAcceptInviteCreatesBooking(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	match := env.createMatch(t, alice, bob)
	slot := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")

	invite, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)
	assert.Equal(t, entity.InviteStatusProposed, invite.Status)

	// Alice proposed, so Alice cannot accept her own invite.
	_, apierr = env.schedule.AcceptInvite(invite.ID, alice.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusForbidden, apierr.Code())

	booking, apierr := env.schedule.AcceptInvite(invite.ID, bob.ID)
	require.Nil(t, apierr)
	assert.Equal(t, invite.ID, booking.InviteID)
	assert.Equal(t, "2025-01-10T10:00:00Z", booking.ScheduledTime)
	assert.Equal(t, entity.BookingStatusScheduled, booking.Status)
	assert.NotEmpty(t, booking.MeetingLink)

	var storedSlot entity.AvailabilitySlot
	require.NoError(t, env.db.First(&storedSlot, slot.ID).Error)
	assert.True(t, storedSlot.IsBooked)

	var storedInvite entity.CallInvite
	require.NoError(t, env.db.First(&storedInvite, invite.ID).Error)
	assert.Equal(t, entity.InviteStatusAccepted, storedInvite.Status)

	// Accepting the same invite again conflicts.
	_, apierr = env.schedule.AcceptInvite(invite.ID, bob.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())
}

func TestAcceptInviteUnknownOrForeign(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	mallory := env.createUser(t, "mallory@example.com")
	match := env.createMatch(t, alice, bob)
	slot := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")

	invite, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)

	_, apierr = env.schedule.AcceptInvite(invite.ID+100, bob.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())

	// A user outside the match cannot see the invite.
	_, apierr = env.schedule.AcceptInvite(invite.ID, mallory.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusNotFound, apierr.Code())
}

func TestOrphanInviteCannotBeAccepted(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	match := env.createMatch(t, alice, bob)
	slot := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")

	// Two outstanding invites against the same open slot are allowed.
	first, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)
	second, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)

	_, apierr = env.schedule.AcceptInvite(first.ID, bob.ID)
	require.Nil(t, apierr)

	// The sibling is stranded in proposed state and can never be accepted.
	_, apierr = env.schedule.AcceptInvite(second.ID, bob.ID)
	require.NotNil(t, apierr)
	assert.Equal(t, http.StatusConflict, apierr.Code())

	var stranded entity.CallInvite
	require.NoError(t, env.db.First(&stranded, second.ID).Error)
	assert.Equal(t, entity.InviteStatusProposed, stranded.Status)
}

func TestConcurrentAcceptsBookSlotOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	match := env.createMatch(t, alice, bob)
	slot := env.createSlot(t, bob, "2025-01-10T10:00:00Z", "2025-01-10T10:30:00Z")

	first, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)
	second, apierr := env.schedule.ProposeInvite(&InviteRequest{MatchID: match.ID, SlotID: slot.ID}, alice.ID)
	require.Nil(t, apierr)

	results := make([]apierror.ErrorResponse, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i, inviteID := range []int{first.ID, second.ID} {
		go func(i, inviteID int) {
			defer wg.Done()
			_, apierr := env.schedule.AcceptInvite(inviteID, bob.ID)
			results[i] = apierr
		}(i, inviteID)
	}
	wg.Wait()

	// Exactly one accept wins; the other observes the booked slot.
	var conflicts, successes int
	for _, apierr := range results {
		if apierr == nil {
			successes++
		} else {
			assert.Equal(t, http.StatusConflict, apierr.Code())
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	var bookings int64
	require.NoError(t, env.db.Model(&entity.CallBooking{}).Count(&bookings).Error)
	assert.Equal(t, int64(1), bookings)

	var storedSlot entity.AvailabilitySlot
	require.NoError(t, env.db.First(&storedSlot, slot.ID).Error)
	assert.True(t, storedSlot.IsBooked)
}
