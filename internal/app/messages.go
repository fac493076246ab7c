package app

import (
	"fmt"

	"github.com/KhaledQasim/group-order-app/internal/domain"
)

// Outbound event names.
const (
	EventRoomUpdated       = "room-updated"
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventOrderNotification = "order-notification"
	EventError             = "error"
)

type RoomUpdatedMsg struct {
	Type string       `json:"type"`
	Room *domain.Room `json:"room"`
}

type ParticipantJoinedMsg struct {
	Type        string             `json:"type"`
	Participant domain.Participant `json:"participant"`
}

type ParticipantLeftMsg struct {
	Type          string        `json:"type"`
	ParticipantID domain.ConnID `json:"participantId"`
}

type OrderNotificationMsg struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	HostName string `json:"hostName"`
}

type BellMsg struct {
	Type       string `json:"type"`
	SenderName string `json:"senderName"`
	Message    string `json:"message"`
}

// ErrorMsg is only sent when explicit NACKs are enabled.
type ErrorMsg struct {
	Type  string `json:"type"`
	Event string `json:"event"`
	Error string `json:"error"`
}

func RoomUpdated(r *domain.Room) RoomUpdatedMsg {
	return RoomUpdatedMsg{Type: EventRoomUpdated, Room: r}
}

func ParticipantJoined(p domain.Participant) ParticipantJoinedMsg {
	return ParticipantJoinedMsg{Type: EventParticipantJoined, Participant: p}
}

func ParticipantLeft(id domain.ConnID) ParticipantLeftMsg {
	return ParticipantLeftMsg{Type: EventParticipantLeft, ParticipantID: id}
}

func OrderNotification(hostName string) OrderNotificationMsg {
	return OrderNotificationMsg{
		Type:     EventOrderNotification,
		Message:  fmt.Sprintf("%s has placed the group order", hostName),
		HostName: hostName,
	}
}

func BellRung(sender string) BellMsg {
	return BellMsg{
		Type:       EventBell,
		SenderName: sender,
		Message:    fmt.Sprintf("%s rang the bell", sender),
	}
}

func Rejected(event string, err error) ErrorMsg {
	return ErrorMsg{Type: EventError, Event: event, Error: err.Error()}
}
