package app

import "github.com/KhaledQasim/group-order-app/internal/domain"

// Inbound event names.
const (
	EventJoinRoom       = "join-room"
	EventLeaveRoom      = "leave-room"
	EventAddToCart      = "add-to-cart"
	EventRemoveFromCart = "remove-from-cart"
	EventUpdateCartItem = "update-cart-item"
	EventPlaceOrder     = "place-order"
	EventBell           = "bell"
	EventDisconnect     = "disconnect"
)

// Command is a decoded inbound event.
type Command interface {
	Event() string
}

type JoinRoom struct {
	RoomID          domain.RoomID `json:"roomId" validate:"required"`
	ParticipantName string        `json:"participantName" validate:"required"`
	UserID          domain.UserID `json:"userId" validate:"required,userid"`
}

type LeaveRoom struct {
	RoomID domain.RoomID `json:"roomId" validate:"required"`
}

// CartItemInput is the client's view of a new line; AddedAt is set server side.
type CartItemInput struct {
	ID            string        `json:"id" validate:"required"`
	MenuItemID    string        `json:"menuItemId"`
	Name          string        `json:"name"`
	Price         float64       `json:"price" validate:"gte=0"`
	Quantity      int           `json:"quantity"`
	Size          string        `json:"size,omitempty"`
	AddedBy       string        `json:"addedBy"`
	AddedByUserID domain.UserID `json:"addedByUserId" validate:"required,userid"`
}

type AddToCart struct {
	RoomID domain.RoomID `json:"roomId" validate:"required"`
	Item   CartItemInput `json:"item"`
	UserID domain.UserID `json:"userId" validate:"required,userid"`
}

type RemoveFromCart struct {
	RoomID domain.RoomID `json:"roomId" validate:"required"`
	ItemID string        `json:"itemId" validate:"required"`
	UserID domain.UserID `json:"userId" validate:"required,userid"`
}

type UpdateCartItem struct {
	RoomID   domain.RoomID `json:"roomId" validate:"required"`
	ItemID   string        `json:"itemId" validate:"required"`
	Quantity int           `json:"quantity"`
	UserID   domain.UserID `json:"userId" validate:"required,userid"`
}

type PlaceOrder struct {
	RoomID     domain.RoomID `json:"roomId" validate:"required"`
	HostUserID domain.UserID `json:"hostUserId" validate:"required,userid"`
}

type Bell struct {
	RoomID     domain.RoomID `json:"roomId" validate:"required"`
	SenderName string        `json:"senderName"`
	UserID     domain.UserID `json:"userId" validate:"required,userid"`
}

func (JoinRoom) Event() string       { return EventJoinRoom }
func (LeaveRoom) Event() string      { return EventLeaveRoom }
func (AddToCart) Event() string      { return EventAddToCart }
func (RemoveFromCart) Event() string { return EventRemoveFromCart }
func (UpdateCartItem) Event() string { return EventUpdateCartItem }
func (PlaceOrder) Event() string     { return EventPlaceOrder }
func (Bell) Event() string           { return EventBell }
