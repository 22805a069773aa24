package routes

import (
	"matchpoint/cmd/internal/service"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ProfileService interface {
	SaveProfile(req *service.ProfileRequest, userID int) (*service.ProfileResponse, apierror.ErrorResponse)
	GetMyProfile(userID int) (*service.ProfileResponse, apierror.ErrorResponse)
	GetDiscovery(userID int) ([]*service.ProfileResponse, apierror.ErrorResponse)
}

type DefaultProfileRoute struct {
	ProfileService ProfileService
}

func NewProfileDefault(profileService ProfileService) *DefaultProfileRoute {
	return &DefaultProfileRoute{ProfileService: profileService}
}

func (p *DefaultProfileRoute) SaveProfile(c echo.Context) error {
	var req service.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	profile, apierr := p.ProfileService.SaveProfile(&req, data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) GetMyProfile(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	profile, apierr := p.ProfileService.GetMyProfile(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, profile)
}

func (p *DefaultProfileRoute) GetDiscovery(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	profiles, apierr := p.ProfileService.GetDiscovery(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"profiles": profiles}
	return c.JSON(http.StatusOK, &resp)
}
