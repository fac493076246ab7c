package app

import (
	"fmt"
	"time"

	"github.com/KhaledQasim/group-order-app/internal/core"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var validate = newValidator()

// newValidator adds the "userid" tag, which applies the user id length cap.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("userid", func(fl validator.FieldLevel) bool {
		return domain.UserID(fl.Field().String()).Validate() == nil
	})
	return v
}

// Handlers applies one mutation per call. A nil error means state changed
// (or, for notifications, the broadcast was sent); any error means nothing
// happened and nothing was broadcast.
type Handlers struct {
	Store  *Store
	Policy Policy
	Out    core.Broadcaster
	Now    func() time.Time
}

func NewHandlers(store *Store, policy Policy, out core.Broadcaster) *Handlers {
	if policy == nil {
		policy = OwnershipPolicy{}
	}
	return &Handlers{Store: store, Policy: policy, Out: out, Now: time.Now}
}

func checkPayload(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func (h *Handlers) JoinRoom(sid domain.ConnID, cmd JoinRoom) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	name, err := domain.NormalizeUsername(cmd.ParticipantName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if cur, ok := h.Store.RoomOf(sid); ok {
		if cur.ID == cmd.RoomID {
			h.Out.SendTo(sid, RoomUpdated(cur))
			return nil
		}
		h.leave(sid)
	}

	room, _ := h.Store.CreateOrGetRoom(cmd.RoomID, sid, name, cmd.UserID)
	p := domain.NewParticipant(sid, name, cmd.UserID, h.Now())
	h.Store.AddParticipant(room.ID, p)

	h.Out.SendTo(sid, RoomUpdated(room))
	h.Out.BroadcastFrom(room.ID, sid, ParticipantJoined(p))
	h.Out.BroadcastFrom(room.ID, sid, RoomUpdated(room))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).
		Str("user", string(cmd.UserID)).Int("participants", len(room.Participants)).Msg("joined room")
	return nil
}

// LeaveRoom removes the connection from roomId without closing it.
func (h *Handlers) LeaveRoom(sid domain.ConnID, cmd LeaveRoom) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	if !room.HasConn(sid) {
		return ErrNotMember
	}
	h.leave(sid)
	return nil
}

// Disconnect is idempotent: a connection in no room is a no-op.
func (h *Handlers) Disconnect(sid domain.ConnID) {
	h.leave(sid)
}

func (h *Handlers) leave(sid domain.ConnID) {
	id, deleted, ok := h.Store.RemoveParticipant(sid)
	if !ok {
		return
	}
	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(id)).Bool("room_deleted", deleted).Msg("left room")
	if deleted {
		return
	}
	room, _ := h.Store.GetRoom(id)
	h.Out.BroadcastRoom(id, ParticipantLeft(sid))
	h.Out.BroadcastRoom(id, RoomUpdated(room))
}

// AddToCart requires the sending connection to be in the room. The new item
// belongs to the requesting user.
func (h *Handlers) AddToCart(sid domain.ConnID, cmd AddToCart) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	if cmd.Item.Quantity < 1 {
		return ErrInvalidQuantity
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	if !room.HasConn(sid) {
		return ErrNotMember
	}
	if cmd.Item.AddedByUserID != cmd.UserID {
		return ErrNotOwner
	}
	if _, exists := room.Item(cmd.Item.ID); exists {
		return ErrDuplicateItem
	}

	in := cmd.Item
	room.AddItem(domain.CartItem{
		ID:            in.ID,
		MenuItemID:    in.MenuItemID,
		Name:          in.Name,
		Price:         in.Price,
		Quantity:      in.Quantity,
		Size:          in.Size,
		AddedBy:       in.AddedBy,
		AddedByUserID: in.AddedByUserID,
		AddedAt:       h.Now(),
	})
	h.Out.BroadcastRoom(room.ID, RoomUpdated(room))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).
		Str("item", in.ID).Int("quantity", in.Quantity).Msg("item added")
	return nil
}

func (h *Handlers) RemoveFromCart(sid domain.ConnID, cmd RemoveFromCart) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	item, ok := room.Item(cmd.ItemID)
	if !ok {
		return ErrItemNotFound
	}
	if !h.Policy.CanEditItem(item, cmd.UserID) {
		return ErrNotOwner
	}
	room.RemoveItem(cmd.ItemID)
	h.Out.BroadcastRoom(room.ID, RoomUpdated(room))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).Str("item", cmd.ItemID).Msg("item removed")
	return nil
}

func (h *Handlers) UpdateCartItem(sid domain.ConnID, cmd UpdateCartItem) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	if cmd.Quantity < 1 {
		return ErrInvalidQuantity
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	item, ok := room.Item(cmd.ItemID)
	if !ok {
		return ErrItemNotFound
	}
	if !h.Policy.CanEditItem(item, cmd.UserID) {
		return ErrNotOwner
	}
	item.Quantity = cmd.Quantity
	h.Out.BroadcastRoom(room.ID, RoomUpdated(room))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).
		Str("item", cmd.ItemID).Int("quantity", cmd.Quantity).Msg("item updated")
	return nil
}

// PlaceOrder only notifies; the cart is left as is.
func (h *Handlers) PlaceOrder(sid domain.ConnID, cmd PlaceOrder) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	if !h.Policy.CanPlaceOrder(room, cmd.HostUserID) {
		return ErrNotHost
	}
	h.Out.BroadcastRoom(room.ID, OrderNotification(room.HostName))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).
		Int("items", len(room.Cart)).Float64("total", room.Total()).Msg("order placed")
	return nil
}

// Bell reaches every member, the sender included.
func (h *Handlers) Bell(sid domain.ConnID, cmd Bell) error {
	if err := checkPayload(cmd); err != nil {
		return err
	}
	room, ok := h.Store.GetRoom(cmd.RoomID)
	if !ok {
		return ErrRoomNotFound
	}
	if !h.Policy.CanRing(room, cmd.UserID) {
		return ErrNotMember
	}
	sender := cmd.SenderName
	if sender == "" {
		sender = participantName(room, cmd.UserID)
	}
	h.Out.BroadcastRoom(room.ID, BellRung(sender))

	log.Info().Str("module", "app.handlers").Str("sid", string(sid)).Str("room", string(room.ID)).Str("user", string(cmd.UserID)).Msg("bell")
	return nil
}

func participantName(room *domain.Room, uid domain.UserID) string {
	p, _ := lo.Find(room.Participants, func(p domain.Participant) bool { return p.UserID == uid })
	return p.Name
}
