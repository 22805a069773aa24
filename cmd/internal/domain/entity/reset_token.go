package entity

// ResetToken is a single-use password-reset token. Stored durably for the
// same multi-instance reason as AttemptWindow; consuming one is a
// conditional delete so two confirms cannot both succeed.
type ResetToken struct {
	Token     string `gorm:"primaryKey"`
	UserID    int    `gorm:"not null"` // References: users(id)
	ExpiresAt int64  `gorm:"not null"`
}
