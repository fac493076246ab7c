package domain

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

type RoomID string

// Room is the authoritative state of one group-order session.
// HostUserID is fixed at creation and never reassigned.
type Room struct {
	ID           RoomID        `json:"id"`
	HostID       ConnID        `json:"hostId"`
	HostName     string        `json:"hostName"`
	HostUserID   UserID        `json:"hostUserId"`
	Participants []Participant `json:"participants"`
	Cart         []CartItem    `json:"cart"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func NewRoom(id RoomID, host ConnID, hostName string, hostUser UserID, at time.Time) *Room {
	return &Room{
		ID:           id,
		HostID:       host,
		HostName:     hostName,
		HostUserID:   hostUser,
		Participants: []Participant{},
		Cart:         []CartItem{},
		CreatedAt:    at,
	}
}

func (r *Room) AddParticipant(p Participant) {
	r.Participants = append(r.Participants, p)
}

// RemoveParticipant drops the participant bound to conn, keeping order.
func (r *Room) RemoveParticipant(conn ConnID) (Participant, bool) {
	_, idx, ok := lo.FindIndexOf(r.Participants, func(p Participant) bool { return p.ID == conn })
	if !ok {
		return Participant{}, false
	}
	p := r.Participants[idx]
	r.Participants = slices.Delete(r.Participants, idx, idx+1)
	return p, true
}

func (r *Room) HasConn(conn ConnID) bool {
	return lo.ContainsBy(r.Participants, func(p Participant) bool { return p.ID == conn })
}

func (r *Room) HasUser(uid UserID) bool {
	return lo.ContainsBy(r.Participants, func(p Participant) bool { return p.UserID == uid })
}

func (r *Room) Empty() bool { return len(r.Participants) == 0 }

// ConnIDs lists the live connections of the room in join order.
func (r *Room) ConnIDs() []ConnID {
	return lo.Map(r.Participants, func(p Participant, _ int) ConnID { return p.ID })
}

// Item returns a pointer into the cart so callers can mutate in place.
func (r *Room) Item(id string) (*CartItem, bool) {
	_, idx, ok := lo.FindIndexOf(r.Cart, func(c CartItem) bool { return c.ID == id })
	if !ok {
		return nil, false
	}
	return &r.Cart[idx], true
}

func (r *Room) AddItem(item CartItem) {
	r.Cart = append(r.Cart, item)
}

func (r *Room) RemoveItem(id string) bool {
	before := len(r.Cart)
	r.Cart = lo.Reject(r.Cart, func(c CartItem, _ int) bool { return c.ID == id })
	return len(r.Cart) != before
}

// Total sums every cart line.
func (r *Room) Total() float64 {
	return lo.SumBy(r.Cart, func(c CartItem) float64 { return c.Subtotal() })
}

// Clone returns a deep copy safe to hand to another goroutine.
func (r *Room) Clone() *Room {
	out := *r
	out.Participants = slices.Clone(r.Participants)
	out.Cart = slices.Clone(r.Cart)
	if out.Participants == nil {
		out.Participants = []Participant{}
	}
	if out.Cart == nil {
		out.Cart = []CartItem{}
	}
	return &out
}
