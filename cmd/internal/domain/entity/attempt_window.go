package entity

// AttemptWindow is a durable rate-limit counter. Keeping it in the shared
// store instead of a process-local map keeps the limit meaningful when
// several server instances share one database. Expiry is decided by
// comparing WindowExpiry against the clock, never by a local timer.
type AttemptWindow struct {
	Key          string `gorm:"primaryKey"`
	Count        int64  `gorm:"not null"`
	WindowExpiry int64  `gorm:"not null"`
}
