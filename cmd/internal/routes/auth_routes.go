package routes

import (
	"matchpoint/cmd/internal/service"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/apierror"
	"net/http"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Signup(req *service.SignupRequest, clientIP string) (*service.AuthResponse, apierror.ErrorResponse)
	Login(req *service.LoginRequest, clientIP string) (*service.AuthResponse, apierror.ErrorResponse)
	Me(userID int) (*service.MeResponse, apierror.ErrorResponse)
	RequestPasswordReset(req *service.ResetRequestRequest, clientIP string) (*service.ResetRequestResponse, apierror.ErrorResponse)
	ConfirmPasswordReset(req *service.ResetConfirmRequest) (*service.ResetConfirmResponse, apierror.ErrorResponse)
}

type DefaultAuthRoute struct {
	UserService UserService
}

func NewAuthDefault(userService UserService) *DefaultAuthRoute {
	return &DefaultAuthRoute{UserService: userService}
}

func (a *DefaultAuthRoute) Signup(c echo.Context) error {
	var req service.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.UserService.Signup(&req, c.RealIP())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req service.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.UserService.Login(&req, c.RealIP())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) Me(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	resp, apierr := a.UserService.Me(data.UserID)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) RequestPasswordReset(c echo.Context) error {
	var req service.ResetRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.UserService.RequestPasswordReset(&req, c.RealIP())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}

func (a *DefaultAuthRoute) ConfirmPasswordReset(c echo.Context) error {
	var req service.ResetConfirmRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	resp, apierr := a.UserService.ConfirmPasswordReset(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
