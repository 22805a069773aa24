package entity

const (
	InviteStatusProposed = "proposed"
	InviteStatusAccepted = "accepted"
)

// CallInvite proposes a specific counterpart slot to the other side of a
// match. Several invites may point at the same open slot; accepting one
// books the slot and strands the rest in "proposed" for good.
type CallInvite struct {
	ID         int    `gorm:"primaryKey"`
	MatchID    int    `gorm:"not null;index"` // References: matches(id)
	SlotID     int    `gorm:"not null;index"` // References: availability_slots(id)
	ProposerID int    `gorm:"not null"`       // References: users(id)
	Status     string `gorm:"not null"`
	CreatedAt  int64  `gorm:"not null"`
	UpdatedAt  int64  `gorm:"not null"`

	// Relations
	Match Match            `gorm:"foreignKey:MatchID;references:ID"`
	Slot  AvailabilitySlot `gorm:"foreignKey:SlotID;references:ID"`
}
