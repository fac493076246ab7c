package app

import "errors"

// Rejection reasons. The wire protocol stays silent about them unless
// explicit NACKs are enabled.
var (
	ErrInvalidPayload  = errors.New("invalid payload")
	ErrRoomNotFound    = errors.New("room not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrDuplicateItem   = errors.New("cart item already exists")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrNotOwner        = errors.New("cart item belongs to another user")
	ErrNotHost         = errors.New("only the host can place the order")
	ErrNotMember       = errors.New("not a participant of this room")
)
