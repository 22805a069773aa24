package main

import (
	"matchpoint/cmd/internal/domain/sqlite"
	"matchpoint/cmd/internal/domain/sqlite/repository"
	"matchpoint/cmd/internal/routes"
	"matchpoint/cmd/internal/service"
	"matchpoint/cmd/internal/utils"
	"matchpoint/cmd/internal/utils/validators"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	// Init SQLite
	db, err := sqlite.Init(utils.Getenv("DATABASE_PATH", "./database.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, profileRepo, attemptRepo, resetTokenRepo, validate)
	profileService := service.NewProfileService(profileRepo, likeRepo, validate)
	matchService := service.NewMatchService(likeRepo, matchRepo, userRepo, profileRepo, validate)
	scheduleService := service.NewScheduleService(slotRepo, inviteRepo, matchRepo, validate)

	// Getting routes
	authRoutes := routes.NewAuthDefault(userService)
	profileRoutes := routes.NewProfileDefault(profileService)
	matchRoutes := routes.NewMatchDefault(matchService)
	scheduleRoutes := routes.NewScheduleDefault(scheduleService)

	e := echo.New()
	e.Use(middleware.CORS())

	// Auth
	e.POST("/api/auth/signup", authRoutes.Signup)
	e.POST("/api/auth/login", authRoutes.Login)
	e.GET("/api/auth/me", authRoutes.Me)
	e.POST("/api/auth/password-reset/request", authRoutes.RequestPasswordReset)
	e.POST("/api/auth/password-reset/confirm", authRoutes.ConfirmPasswordReset)

	// Profiles
	e.POST("/api/profile", profileRoutes.SaveProfile)
	e.GET("/api/profile/me", profileRoutes.GetMyProfile)
	e.GET("/api/profile/discovery", profileRoutes.GetDiscovery)

	// Matches
	e.POST("/api/matches/like", matchRoutes.Like)
	e.GET("/api/matches", matchRoutes.GetMatches)

	// Scheduling
	e.POST("/api/schedule/slots", scheduleRoutes.CreateSlot)
	e.GET("/api/schedule/slots", scheduleRoutes.GetMySlots)
	e.GET("/api/schedule/slots/:matchId", scheduleRoutes.GetCounterpartSlots)
	e.POST("/api/schedule/invite", scheduleRoutes.ProposeInvite)
	e.POST("/api/schedule/accept/:inviteId", scheduleRoutes.AcceptInvite)

	err = e.Start(":" + utils.Getenv("PORT", "5000"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
	_ = validate.RegisterValidation("mixedclasses", validators.HasMixedClasses)
}
