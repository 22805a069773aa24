package entity

// Match is the durable record of a mutual like. Rows are stored with
// UserAID < UserBID so the unique index holds one row per unordered pair
// no matter which direction completed the pair.
type Match struct {
	ID        int   `gorm:"primaryKey"`
	UserAID   int   `gorm:"not null;uniqueIndex:idx_matches_pair"` // References: users(id)
	UserBID   int   `gorm:"not null;uniqueIndex:idx_matches_pair"` // References: users(id)
	MatchedAt int64 `gorm:"not null"`
}

func (m *Match) HasUser(userID int) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// OtherUser returns the counterpart of userID in this match.
// The second return is false when userID is not a participant.
func (m *Match) OtherUser(userID int) (int, bool) {
	switch userID {
	case m.UserAID:
		return m.UserBID, true
	case m.UserBID:
		return m.UserAID, true
	}
	return 0, false
}
