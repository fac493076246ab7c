package app

import "github.com/KhaledQasim/group-order-app/internal/domain"

// Policy answers whether a requester may perform a mutation.
// Implementations must be pure functions of their arguments.
type Policy interface {
	// CanEditItem gates cart item removal and quantity changes.
	CanEditItem(item *domain.CartItem, requester domain.UserID) bool
	// CanPlaceOrder gates order placement.
	CanPlaceOrder(room *domain.Room, requester domain.UserID) bool
	// CanRing gates the bell broadcast.
	CanRing(room *domain.Room, requester domain.UserID) bool
}

// OwnershipPolicy is the default rule set: owners edit their items, the
// creating user places the order, participants ring the bell.
type OwnershipPolicy struct{}

func (OwnershipPolicy) CanEditItem(item *domain.CartItem, requester domain.UserID) bool {
	return item != nil && requester != "" && item.AddedByUserID == requester
}

func (OwnershipPolicy) CanPlaceOrder(room *domain.Room, requester domain.UserID) bool {
	return room != nil && requester != "" && room.HostUserID == requester
}

func (OwnershipPolicy) CanRing(room *domain.Room, requester domain.UserID) bool {
	return room != nil && requester != "" && room.HasUser(requester)
}
