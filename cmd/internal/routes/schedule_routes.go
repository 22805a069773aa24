package routes

import (
	"matchpoint/cmd/internal/service"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type ScheduleService interface {
	CreateSlot(req *service.SlotRequest, userID int) (*service.SlotResponse, apierror.ErrorResponse)
	GetMySlots(userID int) ([]*service.SlotResponse, apierror.ErrorResponse)
	GetCounterpartSlots(matchID, userID int) ([]*service.SlotResponse, apierror.ErrorResponse)
	ProposeInvite(req *service.InviteRequest, userID int) (*service.InviteResponse, apierror.ErrorResponse)
	AcceptInvite(inviteID, userID int) (*service.BookingResponse, apierror.ErrorResponse)
}

type DefaultScheduleRoute struct {
	ScheduleService ScheduleService
}

func NewScheduleDefault(scheduleService ScheduleService) *DefaultScheduleRoute {
	return &DefaultScheduleRoute{ScheduleService: scheduleService}
}

func (s *DefaultScheduleRoute) CreateSlot(c echo.Context) error {
	var req service.SlotRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	slot, apierr := s.ScheduleService.CreateSlot(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, slot)
}

func (s *DefaultScheduleRoute) GetMySlots(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	slots, apierr := s.ScheduleService.GetMySlots(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"slots": slots}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultScheduleRoute) GetCounterpartSlots(c echo.Context) error {
	matchID, err := strconv.Atoi(c.Param("matchId"))
	if err != nil {
		errResp := apierror.NewInvalidParamTypeError("matchId", "int")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	slots, apierr := s.ScheduleService.GetCounterpartSlots(matchID, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"slots": slots}
	return c.JSON(http.StatusOK, &resp)
}

func (s *DefaultScheduleRoute) ProposeInvite(c echo.Context) error {
	var req service.InviteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	invite, apierr := s.ScheduleService.ProposeInvite(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, invite)
}

func (s *DefaultScheduleRoute) AcceptInvite(c echo.Context) error {
	inviteID, err := strconv.Atoi(c.Param("inviteId"))
	if err != nil {
		errResp := apierror.NewInvalidParamTypeError("inviteId", "int")
		return c.JSON(errResp.Code(), errResp)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	booking, apierr := s.ScheduleService.AcceptInvite(inviteID, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, booking)
}
