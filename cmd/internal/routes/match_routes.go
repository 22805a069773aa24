package routes

import (
	"matchpoint/cmd/internal/service"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type MatchService interface {
	Like(req *service.LikeRequest, senderID int) (*service.LikeResponse, apierror.ErrorResponse)
	GetMatches(userID int) ([]*service.MatchResponse, apierror.ErrorResponse)
}

type DefaultMatchRoute struct {
	MatchService MatchService
}

func NewMatchDefault(matchService MatchService) *DefaultMatchRoute {
	return &DefaultMatchRoute{MatchService: matchService}
}

func (m *DefaultMatchRoute) Like(c echo.Context) error {
	var req service.LikeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	resp, apierr := m.MatchService.Like(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (m *DefaultMatchRoute) GetMatches(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	matches, apierr := m.MatchService.GetMatches(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"matches": matches}
	return c.JSON(http.StatusOK, &resp)
}
