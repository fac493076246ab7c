package domain

import "time"

// Participant is one connected person inside a room.
// ID ties it to a live connection and becomes stale on disconnect.
type Participant struct {
	ID       ConnID    `json:"id"`
	Name     string    `json:"name"`
	UserID   UserID    `json:"userId"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewParticipant avoids raw literals in handlers and keeps construction obvious.
func NewParticipant(id ConnID, name string, uid UserID, at time.Time) Participant {
	return Participant{ID: id, Name: name, UserID: uid, JoinedAt: at}
}
