package app

import (
	"sort"
	"time"

	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomInfo is the listing view of a room.
type RoomInfo struct {
	ID           domain.RoomID `json:"id"`
	HostName     string        `json:"hostName"`
	Participants int           `json:"participants"`
	CartItems    int           `json:"cartItems"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// Store is the in-memory room registry.
// It has no locks: only the Orchestrator loop may call it.
// A room is present if and only if it has at least one participant once
// the enclosing handler returns.
type Store struct {
	rooms map[domain.RoomID]*domain.Room
	now   func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{rooms: make(map[domain.RoomID]*domain.Room), now: now}
}

// CreateOrGetRoom returns the room, creating it with host as the host connection
// when absent. Creator fields are ignored for an existing room.
func (s *Store) CreateOrGetRoom(id domain.RoomID, host domain.ConnID, creatorName string, creatorUser domain.UserID) (*domain.Room, bool) {
	if room, ok := s.rooms[id]; ok {
		return room, false
	}
	room := domain.NewRoom(id, host, creatorName, creatorUser, s.now())
	s.rooms[id] = room
	log.Info().Str("module", "app.store").Str("room", string(id)).Str("host_user", string(creatorUser)).Msg("room created")
	return room, true
}

func (s *Store) GetRoom(id domain.RoomID) (*domain.Room, bool) {
	room, ok := s.rooms[id]
	return room, ok
}

// AddParticipant appends p to an existing room.
func (s *Store) AddParticipant(id domain.RoomID, p domain.Participant) bool {
	room, ok := s.rooms[id]
	if !ok {
		return false
	}
	room.AddParticipant(p)
	return true
}

// RemoveParticipant scans every room for conn, removes it, and deletes the
// room when it becomes empty. deleted reports the latter.
func (s *Store) RemoveParticipant(conn domain.ConnID) (id domain.RoomID, deleted bool, ok bool) {
	for rid, room := range s.rooms {
		if _, found := room.RemoveParticipant(conn); !found {
			continue
		}
		if room.Empty() {
			delete(s.rooms, rid)
			log.Info().Str("module", "app.store").Str("room", string(rid)).Msg("room deleted")
			return rid, true, true
		}
		return rid, false, true
	}
	return "", false, false
}

// RoomOf finds the room holding conn.
func (s *Store) RoomOf(conn domain.ConnID) (*domain.Room, bool) {
	for _, room := range s.rooms {
		if room.HasConn(conn) {
			return room, true
		}
	}
	return nil, false
}

func (s *Store) Len() int { return len(s.rooms) }

// List returns rooms ordered by creation time.
func (s *Store) List() []RoomInfo {
	out := make([]RoomInfo, 0, len(s.rooms))
	for id, r := range s.rooms {
		out = append(out, RoomInfo{
			ID:           id,
			HostName:     r.HostName,
			Participants: len(r.Participants),
			CartItems:    len(r.Cart),
			CreatedAt:    r.CreatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
