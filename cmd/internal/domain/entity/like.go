package entity

// Like is a directional "A likes B" event. The composite unique index makes
// the insert the arbiter for duplicate submissions of the same ordered pair,
// so concurrent identical likes collapse into one row at the store boundary.
type Like struct {
	ID         int   `gorm:"primaryKey"`
	SenderID   int   `gorm:"not null;uniqueIndex:idx_likes_sender_receiver"` // References: users(id)
	ReceiverID int   `gorm:"not null;uniqueIndex:idx_likes_sender_receiver"` // References: users(id)
	CreatedAt  int64 `gorm:"not null"`
}
