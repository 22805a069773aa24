package entity

type Profile struct {
	ID          int    `gorm:"primaryKey"`
	UserID      int    `gorm:"uniqueIndex;not null"` // References: users(id)
	DisplayName string `gorm:"not null"`
	Bio         string
	Age         int `gorm:"not null"`
	Location    string
	Gender      string
	Preferences string
	CreatedAt   int64 `gorm:"not null"`
	UpdatedAt   int64 `gorm:"not null"`

	// Relations
	User   User    `gorm:"foreignKey:UserID;references:ID"`
	Photos []Photo `gorm:"foreignKey:ProfileID;references:ID"`
}

type Photo struct {
	ID        int    `gorm:"primaryKey"`
	ProfileID int    `gorm:"not null;index"` // References: profiles(id)
	URL       string `gorm:"not null"`
	SortOrder int    `gorm:"not null"`
	IsPrimary bool   `gorm:"not null"`
}
