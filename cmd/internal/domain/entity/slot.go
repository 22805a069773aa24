package entity

// AvailabilitySlot is an open interval a user offers for calls.
// IsBooked is a one-way latch: it flips false -> true exactly once, via the
// guarded update in the accept transaction, and is never reset.
type AvailabilitySlot struct {
	ID        int   `gorm:"primaryKey"`
	UserID    int   `gorm:"not null;index"` // References: users(id)
	StartTime int64 `gorm:"not null"`
	EndTime   int64 `gorm:"not null"`
	IsBooked  bool  `gorm:"not null"`
	CreatedAt int64 `gorm:"not null"`
	UpdatedAt int64 `gorm:"not null"`
}
