// Package core holds the seams between the room engine and its transports.
package core

import "github.com/KhaledQasim/group-order-app/internal/domain"

//go:generate go run go.uber.org/mock/mockgen -source=interfaces.go -destination=../mocks/mock_broadcaster.go -package=mocks

// Broadcaster delivers outbound messages. Handlers receive it explicitly so
// they can run without a real transport.
// Room recipients are resolved at delivery time, not when the message is built.
type Broadcaster interface {
	// SendTo delivers msg to a single connection.
	SendTo(sid domain.ConnID, msg any)
	// BroadcastRoom delivers msg to every participant connection of room.
	BroadcastRoom(room domain.RoomID, msg any)
	// BroadcastFrom delivers msg to every participant connection of room except from.
	BroadcastFrom(room domain.RoomID, from domain.ConnID, msg any)
}
