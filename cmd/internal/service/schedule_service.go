package service

import (
	"errors"
	"fmt"
	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/domain/sqlite/repository"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type SlotRepository interface {
	Save(slot *entity.AvailabilitySlot) error
	FindByID(id int) (*entity.AvailabilitySlot, error)
	FindByUserID(userID int) ([]*entity.AvailabilitySlot, error)
	FindOpenByUserID(userID int) ([]*entity.AvailabilitySlot, error)
}

type InviteRepository interface {
	Save(invite *entity.CallInvite) error
	FindByID(id int) (*entity.CallInvite, error)
	Accept(invite *entity.CallInvite, booking *entity.CallBooking, now int64) error
}

type SlotRequest struct {
	StartTime string `json:"startTime" validate:"required,iso8601"`
	EndTime   string `json:"endTime" validate:"required,iso8601"`
}

type SlotResponse struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsBooked  bool   `json:"isBooked"`
}

type InviteRequest struct {
	MatchID int `json:"matchId" validate:"required,gt=0"`
	SlotID  int `json:"slotId" validate:"required,gt=0"`
}

type InviteResponse struct {
	ID         int    `json:"id"`
	MatchID    int    `json:"matchId"`
	SlotID     int    `json:"slotId"`
	ProposerID int    `json:"proposerId"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

type BookingResponse struct {
	ID            int    `json:"id"`
	InviteID      int    `json:"inviteId"`
	ScheduledTime string `json:"scheduledTime"`
	Status        string `json:"status"`
	MeetingLink   string `json:"meetingLink"`
}

type DefaultScheduleService struct {
	SlotRepo   SlotRepository
	InviteRepo InviteRepository
	MatchRepo  MatchRepository
	Validate   *validator.Validate
}

func NewScheduleService(slotRepo SlotRepository, inviteRepo InviteRepository, matchRepo MatchRepository, validate *validator.Validate) *DefaultScheduleService {
	return &DefaultScheduleService{
		SlotRepo:   slotRepo,
		InviteRepo: inviteRepo,
		MatchRepo:  matchRepo,
		Validate:   validate,
	}
}

// CreateSlot publishes an open slot for the caller. Overlap with the
// caller's existing slots is allowed; a slot is an independent bookable
// unit and only booking consumes it.
func (s *DefaultScheduleService) CreateSlot(req *SlotRequest, userID int) (*SlotResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	start, err := utils.FromEpoch(req.StartTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}
	end, err := utils.FromEpoch(req.EndTime)
	if err != nil {
		return nil, apierror.MalformedBodyError
	}

	if start >= end {
		return nil, apierror.SlotTimesOrderError
	}

	now := utils.NowUTC()
	slot := &entity.AvailabilitySlot{
		UserID:    userID,
		StartTime: start,
		EndTime:   end,
		IsBooked:  false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.SlotRepo.Save(slot); err != nil {
		log.Errorf("failed to save slot for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toSlotResponse(slot), nil
}

func (s *DefaultScheduleService) GetMySlots(userID int) ([]*SlotResponse, apierror.ErrorResponse) {
	slots, err := s.SlotRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch slots for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toSlotResponses(slots), nil
}

// GetCounterpartSlots lists the open slots of the other participant of the
// match. A requester outside the match gets NotFound, same as a missing
// match, so match ids cannot be probed.
func (s *DefaultScheduleService) GetCounterpartSlots(matchID, userID int) ([]*SlotResponse, apierror.ErrorResponse) {
	match, err := s.MatchRepo.FindByID(matchID)
	if err != nil {
		log.Errorf("failed to fetch match %d: %v", matchID, err)
		return nil, apierror.InternalServerError
	}
	if match == nil {
		return nil, apierror.MatchNotFoundError
	}

	otherID, ok := match.OtherUser(userID)
	if !ok {
		return nil, apierror.MatchNotFoundError
	}

	slots, err := s.SlotRepo.FindOpenByUserID(otherID)
	if err != nil {
		log.Errorf("failed to fetch open slots for user %d: %v", otherID, err)
		return nil, apierror.InternalServerError
	}
	return toSlotResponses(slots), nil
}

// ProposeInvite creates a call invite against one of the counterpart's open
// slots. Repeated proposals for the same open slot are allowed; only one of
// them can ever be accepted.
func (s *DefaultScheduleService) ProposeInvite(req *InviteRequest, userID int) (*InviteResponse, apierror.ErrorResponse) {
	if err := s.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	match, err := s.MatchRepo.FindByID(req.MatchID)
	if err != nil {
		log.Errorf("failed to fetch match %d: %v", req.MatchID, err)
		return nil, apierror.InternalServerError
	}
	if match == nil {
		return nil, apierror.MatchNotFoundError
	}

	otherID, ok := match.OtherUser(userID)
	if !ok {
		return nil, apierror.MatchNotFoundError
	}

	slot, err := s.SlotRepo.FindByID(req.SlotID)
	if err != nil {
		log.Errorf("failed to fetch slot %d: %v", req.SlotID, err)
		return nil, apierror.InternalServerError
	}

	// The proposed slot must belong to the counterpart; anything else is
	// not a slot this match can book.
	if slot == nil || slot.UserID != otherID {
		return nil, apierror.SlotNotFoundError
	}
	if slot.IsBooked {
		return nil, apierror.SlotAlreadyBookedError
	}

	now := utils.NowUTC()
	invite := &entity.CallInvite{
		MatchID:    match.ID,
		SlotID:     slot.ID,
		ProposerID: userID,
		Status:     entity.InviteStatusProposed,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.InviteRepo.Save(invite); err != nil {
		log.Errorf("failed to save invite for match %d: %v", match.ID, err)
		return nil, apierror.InternalServerError
	}

	return &InviteResponse{
		ID:         invite.ID,
		MatchID:    invite.MatchID,
		SlotID:     invite.SlotID,
		ProposerID: invite.ProposerID,
		Status:     invite.Status,
		CreatedAt:  utils.FormatEpoch(invite.CreatedAt),
	}, nil
}

// AcceptInvite finalizes a booking for the invite's slot. The slot latch,
// the invite status flip and the booking row are one atomic unit in the
// store; of two concurrent accepts against the same slot exactly one
// succeeds and the other returns Conflict. A lost race is answered with
// Conflict, never retried, since the slot is gone for good.
func (s *DefaultScheduleService) AcceptInvite(inviteID, userID int) (*BookingResponse, apierror.ErrorResponse) {
	invite, err := s.InviteRepo.FindByID(inviteID)
	if err != nil {
		log.Errorf("failed to fetch invite %d: %v", inviteID, err)
		return nil, apierror.InternalServerError
	}
	if invite == nil || !invite.Match.HasUser(userID) {
		return nil, apierror.InviteNotFoundError
	}

	if invite.ProposerID == userID {
		return nil, apierror.OwnInviteAcceptError
	}

	if invite.Status == entity.InviteStatusAccepted || invite.Slot.IsBooked {
		return nil, apierror.SlotAlreadyBookedError
	}

	booking := &entity.CallBooking{
		InviteID:      invite.ID,
		ScheduledTime: invite.Slot.StartTime,
		Status:        entity.BookingStatusScheduled,
		MeetingLink:   newMeetingLink(),
		CreatedAt:     utils.NowUTC(),
	}

	err = s.InviteRepo.Accept(invite, booking, utils.NowUTC())
	if errors.Is(err, repository.ErrSlotTaken) {
		return nil, apierror.SlotAlreadyBookedError
	}
	if err != nil {
		log.Errorf("failed to accept invite %d: %v", inviteID, err)
		return nil, apierror.InternalServerError
	}

	return &BookingResponse{
		ID:            booking.ID,
		InviteID:      booking.InviteID,
		ScheduledTime: utils.FormatEpoch(booking.ScheduledTime),
		Status:        booking.Status,
		MeetingLink:   booking.MeetingLink,
	}, nil
}

// newMeetingLink returns a placeholder link; a real conferencing
// integration would mint this instead.
func newMeetingLink() string {
	return fmt.Sprintf("https://meet.matchpoint.dev/%s", uuid.NewString())
}

func toSlotResponse(slot *entity.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:        slot.ID,
		UserID:    slot.UserID,
		StartTime: utils.FormatEpoch(slot.StartTime),
		EndTime:   utils.FormatEpoch(slot.EndTime),
		IsBooked:  slot.IsBooked,
	}
}

func toSlotResponses(slots []*entity.AvailabilitySlot) []*SlotResponse {
	response := make([]*SlotResponse, len(slots))
	for i, slot := range slots {
		response[i] = toSlotResponse(slot)
	}
	return response
}
