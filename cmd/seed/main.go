// Command seed wipes the database and loads the demo users.
package main

import (
	"matchpoint/cmd/internal/domain/entity"
	"matchpoint/cmd/internal/domain/sqlite"
	"matchpoint/cmd/internal/utils"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Email  string
	Name   string
	Gender string
	Age    int
	Bio    string
	Photo  string
}

var seedUsers = []seedUser{
	{Email: "alice@example.com", Name: "Alice", Gender: "Female", Age: 24, Bio: "Loves hiking and coffee.", Photo: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400"},
	{Email: "bob@example.com", Name: "Bob", Gender: "Male", Age: 27, Bio: "Tech enthusiast and gamer.", Photo: "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400"},
	{Email: "charlie@example.com", Name: "Charlie", Gender: "Male", Age: 29, Bio: "Foodie and traveler.", Photo: "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=400"},
	{Email: "diana@example.com", Name: "Diana", Gender: "Female", Age: 25, Bio: "Artist and dreamer.", Photo: "https://images.unsplash.com/photo-1534528741775-53994a69daeb?w=400"},
	{Email: "eve@example.com", Name: "Eve", Gender: "Female", Age: 26, Bio: "Yoga instructor.", Photo: "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=400"},
	{Email: "frank@example.com", Name: "Frank", Gender: "Male", Age: 30, Bio: "Musician.", Photo: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400"},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file loaded: %v", err)
	}

	db, err := sqlite.Init(utils.Getenv("DATABASE_PATH", "./database.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Cleanup, children first
	for _, model := range []any{
		&entity.CallBooking{},
		&entity.CallInvite{},
		&entity.AvailabilitySlot{},
		&entity.Match{},
		&entity.Like{},
		&entity.Photo{},
		&entity.Profile{},
		&entity.User{},
	} {
		if err := db.Where("1 = 1").Delete(model).Error; err != nil {
			log.Fatal("failed to clean up table", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatal("failed to hash seed password", err)
	}

	now := utils.NowUTC()
	for _, su := range seedUsers {
		user := &entity.User{
			Email:     su.Email,
			Password:  string(hash),
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(user).Error; err != nil {
			log.Fatal("failed to create seed user", err)
		}

		profile := &entity.Profile{
			UserID:      user.ID,
			DisplayName: su.Name,
			Bio:         su.Bio,
			Age:         su.Age,
			Location:    "San Francisco, CA",
			Gender:      su.Gender,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := db.Omit("Photos", "User").Create(profile).Error; err != nil {
			log.Fatal("failed to create seed profile", err)
		}

		photo := &entity.Photo{ProfileID: profile.ID, URL: su.Photo, IsPrimary: true}
		if err := db.Create(photo).Error; err != nil {
			log.Fatal("failed to create seed photo", err)
		}

		log.Infof("created user %s", su.Name)
	}
}
