package entity

const BookingStatusScheduled = "scheduled"

// CallBooking is created exactly once per accepted invite, inside the same
// transaction that books the slot. ScheduledTime is copied from the slot's
// start at accept time and never recomputed.
type CallBooking struct {
	ID            int    `gorm:"primaryKey"`
	InviteID      int    `gorm:"uniqueIndex;not null"` // References: call_invites(id)
	ScheduledTime int64  `gorm:"not null"`
	Status        string `gorm:"not null"`
	MeetingLink   string `gorm:"not null"`
	CreatedAt     int64  `gorm:"not null"`
}
