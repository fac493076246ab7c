package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/KhaledQasim/group-order-app/internal/mocks"
)

func TestHandlers_GroupOrderSession(t *testing.T) {
	hs := newHarness()
	a := hs.connect("A")
	b := hs.connect("B")

	// A creates R1 by joining it.
	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	room, ok := hs.store.GetRoom("R1")
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), room.HostUserID)
	msgs := a.drain(t)
	require.Equal(t, []string{app.EventRoomUpdated}, types(msgs))
	assert.Len(t, msgs[0].Room.Participants, 1)

	// B joins; both see two participants and A hears about Bob.
	require.NoError(t, hs.h.JoinRoom("B", app.JoinRoom{RoomID: "R1", ParticipantName: "Bob", UserID: "u2"}))
	msgs = b.drain(t)
	require.Equal(t, []string{app.EventRoomUpdated}, types(msgs))
	assert.Len(t, msgs[0].Room.Participants, 2)
	msgs = a.drain(t)
	require.Equal(t, []string{app.EventParticipantJoined, app.EventRoomUpdated}, types(msgs))
	assert.Equal(t, "Bob", msgs[0].Participant.Name)
	assert.Len(t, msgs[1].Room.Participants, 2)

	// B adds i1; A cannot change it, B can.
	require.NoError(t, hs.h.AddToCart("B", app.AddToCart{
		RoomID: "R1",
		UserID: "u2",
		Item:   app.CartItemInput{ID: "i1", Price: 10, Quantity: 2, AddedByUserID: "u2"},
	}))
	for _, c := range []*fakeConn{a, b} {
		msgs = c.drain(t)
		require.Equal(t, []string{app.EventRoomUpdated}, types(msgs))
		require.Len(t, msgs[0].Room.Cart, 1)
		assert.Equal(t, "i1", msgs[0].Room.Cart[0].ID)
	}

	err := hs.h.UpdateCartItem("A", app.UpdateCartItem{RoomID: "R1", ItemID: "i1", Quantity: 5, UserID: "u1"})
	assert.ErrorIs(t, err, app.ErrNotOwner)
	item, _ := room.Item("i1")
	assert.Equal(t, 2, item.Quantity)
	assert.Empty(t, a.drain(t))
	assert.Empty(t, b.drain(t))

	require.NoError(t, hs.h.UpdateCartItem("B", app.UpdateCartItem{RoomID: "R1", ItemID: "i1", Quantity: 5, UserID: "u2"}))
	assert.Equal(t, 5, item.Quantity)
	msgs = a.drain(t)
	require.Len(t, msgs, 1)
	assert.Equal(t, 5, msgs[0].Room.Cart[0].Quantity)
	b.drain(t)

	// Only the host's user id places the order.
	require.NoError(t, hs.h.PlaceOrder("A", app.PlaceOrder{RoomID: "R1", HostUserID: "u1"}))
	for _, c := range []*fakeConn{a, b} {
		msgs = c.drain(t)
		require.Equal(t, []string{app.EventOrderNotification}, types(msgs))
		assert.Equal(t, "Alice", msgs[0].HostName)
	}
	assert.ErrorIs(t, hs.h.PlaceOrder("B", app.PlaceOrder{RoomID: "R1", HostUserID: "u2"}), app.ErrNotHost)
	assert.Empty(t, a.drain(t))
	assert.Empty(t, b.drain(t))

	// A leaves; B is told and sees one participant.
	hs.h.Disconnect("A")
	hs.reg.Unbind("A")
	msgs = b.drain(t)
	require.Equal(t, []string{app.EventParticipantLeft, app.EventRoomUpdated}, types(msgs))
	assert.Equal(t, domain.ConnID("A"), msgs[0].ParticipantID)
	assert.Len(t, msgs[1].Room.Participants, 1)
	assert.Equal(t, domain.UserID("u1"), msgs[1].Room.HostUserID, "host identity survives host disconnect")

	// B leaves; the room is gone and nothing is sent.
	hs.h.Disconnect("B")
	_, ok = hs.store.GetRoom("R1")
	assert.False(t, ok)
	assert.Empty(t, b.drain(t))
}

func TestHandlers_JoinRejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		cmd  app.JoinRoom
	}{
		{"missing room", app.JoinRoom{ParticipantName: "Alice", UserID: "u1"}},
		{"missing name", app.JoinRoom{RoomID: "R1", UserID: "u1"}},
		{"blank name", app.JoinRoom{RoomID: "R1", ParticipantName: "   ", UserID: "u1"}},
		{"missing user", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice"}},
		{"oversized user", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: domain.UserID(strings.Repeat("u", domain.MaxUserIDLen+1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			out := mocks.NewMockBroadcaster(ctrl)
			store := app.NewStore(fixedClock())
			h := app.NewHandlers(store, nil, out)

			err := h.JoinRoom("A", tt.cmd)
			assert.ErrorIs(t, err, app.ErrInvalidPayload)
			assert.Zero(t, store.Len())
		})
	}
}

// seededRoom builds R1 with Alice (host, u1) and Bob (u2), and Bob's item i1.
func seededRoom(store *app.Store) *domain.Room {
	room, _ := store.CreateOrGetRoom("R1", "A", "Alice", "u1")
	store.AddParticipant("R1", domain.NewParticipant("A", "Alice", "u1", fixedClock()()))
	store.AddParticipant("R1", domain.NewParticipant("B", "Bob", "u2", fixedClock()()))
	room.AddItem(domain.CartItem{ID: "i1", Price: 10, Quantity: 2, AddedByUserID: "u2"})
	return room
}

func TestHandlers_RejectionsAreSilent(t *testing.T) {
	tests := []struct {
		name    string
		run     func(h *app.Handlers) error
		wantErr error
	}{
		{
			name: "add to unknown room",
			run: func(h *app.Handlers) error {
				return h.AddToCart("B", app.AddToCart{RoomID: "nope", UserID: "u2", Item: app.CartItemInput{ID: "i2", Quantity: 1, AddedByUserID: "u2"}})
			},
			wantErr: app.ErrRoomNotFound,
		},
		{
			name: "add on behalf of another user",
			run: func(h *app.Handlers) error {
				return h.AddToCart("A", app.AddToCart{RoomID: "R1", UserID: "u1", Item: app.CartItemInput{ID: "i2", Quantity: 1, AddedByUserID: "u2"}})
			},
			wantErr: app.ErrNotOwner,
		},
		{
			name: "add from a connection outside the room",
			run: func(h *app.Handlers) error {
				return h.AddToCart("X", app.AddToCart{RoomID: "R1", UserID: "u9", Item: app.CartItemInput{ID: "i2", Quantity: 1, AddedByUserID: "u9"}})
			},
			wantErr: app.ErrNotMember,
		},
		{
			name: "oversized user id",
			run: func(h *app.Handlers) error {
				long := domain.UserID(strings.Repeat("u", domain.MaxUserIDLen+1))
				return h.UpdateCartItem("B", app.UpdateCartItem{RoomID: "R1", ItemID: "i1", Quantity: 7, UserID: long})
			},
			wantErr: app.ErrInvalidPayload,
		},
		{
			name: "oversized host id",
			run: func(h *app.Handlers) error {
				long := domain.UserID(strings.Repeat("u", domain.MaxUserIDLen+1))
				return h.PlaceOrder("A", app.PlaceOrder{RoomID: "R1", HostUserID: long})
			},
			wantErr: app.ErrInvalidPayload,
		},
		{
			name: "add duplicate id",
			run: func(h *app.Handlers) error {
				return h.AddToCart("B", app.AddToCart{RoomID: "R1", UserID: "u2", Item: app.CartItemInput{ID: "i1", Quantity: 1, AddedByUserID: "u2"}})
			},
			wantErr: app.ErrDuplicateItem,
		},
		{
			name: "add zero quantity",
			run: func(h *app.Handlers) error {
				return h.AddToCart("B", app.AddToCart{RoomID: "R1", UserID: "u2", Item: app.CartItemInput{ID: "i2", AddedByUserID: "u2"}})
			},
			wantErr: app.ErrInvalidQuantity,
		},
		{
			name: "add without user",
			run: func(h *app.Handlers) error {
				return h.AddToCart("B", app.AddToCart{RoomID: "R1", Item: app.CartItemInput{ID: "i2", Quantity: 1, AddedByUserID: "u2"}})
			},
			wantErr: app.ErrInvalidPayload,
		},
		{
			name: "remove someone else's item",
			run: func(h *app.Handlers) error {
				return h.RemoveFromCart("A", app.RemoveFromCart{RoomID: "R1", ItemID: "i1", UserID: "u1"})
			},
			wantErr: app.ErrNotOwner,
		},
		{
			name: "remove missing item",
			run: func(h *app.Handlers) error {
				return h.RemoveFromCart("B", app.RemoveFromCart{RoomID: "R1", ItemID: "zz", UserID: "u2"})
			},
			wantErr: app.ErrItemNotFound,
		},
		{
			name: "update someone else's item",
			run: func(h *app.Handlers) error {
				return h.UpdateCartItem("A", app.UpdateCartItem{RoomID: "R1", ItemID: "i1", Quantity: 7, UserID: "u1"})
			},
			wantErr: app.ErrNotOwner,
		},
		{
			name: "update to zero",
			run: func(h *app.Handlers) error {
				return h.UpdateCartItem("B", app.UpdateCartItem{RoomID: "R1", ItemID: "i1", Quantity: 0, UserID: "u2"})
			},
			wantErr: app.ErrInvalidQuantity,
		},
		{
			name: "guest places order",
			run: func(h *app.Handlers) error {
				return h.PlaceOrder("B", app.PlaceOrder{RoomID: "R1", HostUserID: "u2"})
			},
			wantErr: app.ErrNotHost,
		},
		{
			name: "order without host id",
			run: func(h *app.Handlers) error {
				return h.PlaceOrder("A", app.PlaceOrder{RoomID: "R1"})
			},
			wantErr: app.ErrInvalidPayload,
		},
		{
			name: "stranger rings",
			run: func(h *app.Handlers) error {
				return h.Bell("X", app.Bell{RoomID: "R1", SenderName: "Eve", UserID: "u9"})
			},
			wantErr: app.ErrNotMember,
		},
		{
			name: "leave a room the connection is not in",
			run: func(h *app.Handlers) error {
				return h.LeaveRoom("X", app.LeaveRoom{RoomID: "R1"})
			},
			wantErr: app.ErrNotMember,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			out := mocks.NewMockBroadcaster(ctrl)
			store := app.NewStore(fixedClock())
			room := seededRoom(store)
			h := app.NewHandlers(store, nil, out)

			err := tt.run(h)
			assert.ErrorIs(t, err, tt.wantErr)
			require.Len(t, room.Cart, 1)
			assert.Equal(t, 2, room.Cart[0].Quantity)
			assert.Len(t, room.Participants, 2)
		})
	}
}

func TestHandlers_RemoveFromCartByOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockBroadcaster(ctrl)
	store := app.NewStore(fixedClock())
	room := seededRoom(store)
	h := app.NewHandlers(store, nil, out)

	out.EXPECT().BroadcastRoom(domain.RoomID("R1"), app.RoomUpdated(room)).Times(1)

	require.NoError(t, h.RemoveFromCart("B", app.RemoveFromCart{RoomID: "R1", ItemID: "i1", UserID: "u2"}))
	assert.Empty(t, room.Cart)
}

func TestHandlers_BellReachesSender(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockBroadcaster(ctrl)
	store := app.NewStore(fixedClock())
	seededRoom(store)
	h := app.NewHandlers(store, nil, out)

	out.EXPECT().BroadcastRoom(domain.RoomID("R1"), app.BellRung("Bob")).Times(2)

	require.NoError(t, h.Bell("B", app.Bell{RoomID: "R1", SenderName: "Bob", UserID: "u2"}))
	require.NoError(t, h.Bell("B", app.Bell{RoomID: "R1", UserID: "u2"}), "sender name falls back to the participant name")
}

func TestHandlers_PlaceOrderByHostFromAnyConnection(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockBroadcaster(ctrl)
	store := app.NewStore(fixedClock())
	seededRoom(store)
	h := app.NewHandlers(store, nil, out)

	out.EXPECT().BroadcastRoom(domain.RoomID("R1"), app.OrderNotification("Alice")).Times(1)

	require.NoError(t, h.PlaceOrder("B", app.PlaceOrder{RoomID: "R1", HostUserID: "u1"}))
}

func TestHandlers_RejoinSameRoomResendsSnapshot(t *testing.T) {
	hs := newHarness()
	a := hs.connect("A")
	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	a.drain(t)

	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	msgs := a.drain(t)
	require.Equal(t, []string{app.EventRoomUpdated}, types(msgs))
	assert.Len(t, msgs[0].Room.Participants, 1)
}

func TestHandlers_JoinOtherRoomLeavesFirst(t *testing.T) {
	hs := newHarness()
	a := hs.connect("A")
	b := hs.connect("B")
	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	require.NoError(t, hs.h.JoinRoom("B", app.JoinRoom{RoomID: "R1", ParticipantName: "Bob", UserID: "u2"}))
	a.drain(t)
	b.drain(t)

	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R2", ParticipantName: "Alice", UserID: "u1"}))

	r1, ok := hs.store.GetRoom("R1")
	require.True(t, ok)
	assert.False(t, r1.HasConn("A"))
	assert.Equal(t, []string{app.EventParticipantLeft, app.EventRoomUpdated}, types(b.drain(t)))

	r2, ok := hs.store.GetRoom("R2")
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), r2.HostUserID)
	assert.Equal(t, []string{app.EventRoomUpdated}, types(a.drain(t)))
}

func TestHandlers_LeaveRoomKeepsHost(t *testing.T) {
	hs := newHarness()
	hs.connect("A")
	b := hs.connect("B")
	c := hs.connect("C")
	require.NoError(t, hs.h.JoinRoom("A", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	require.NoError(t, hs.h.JoinRoom("B", app.JoinRoom{RoomID: "R1", ParticipantName: "Bob", UserID: "u2"}))

	require.NoError(t, hs.h.LeaveRoom("A", app.LeaveRoom{RoomID: "R1"}))
	require.NoError(t, hs.h.JoinRoom("C", app.JoinRoom{RoomID: "R1", ParticipantName: "Carol", UserID: "u3"}))
	hs.h.Disconnect("B")

	room, ok := hs.store.GetRoom("R1")
	require.True(t, ok)
	assert.Equal(t, domain.UserID("u1"), room.HostUserID)
	assert.Equal(t, "Alice", room.HostName)
	assert.Len(t, room.Participants, 1)

	// The original host rejoins on a new connection and can still order.
	hs.connect("A2")
	require.NoError(t, hs.h.JoinRoom("A2", app.JoinRoom{RoomID: "R1", ParticipantName: "Alice", UserID: "u1"}))
	b.drain(t)
	c.drain(t)
	require.NoError(t, hs.h.PlaceOrder("A2", app.PlaceOrder{RoomID: "R1", HostUserID: "u1"}))
	assert.Equal(t, []string{app.EventOrderNotification}, types(c.drain(t)))
}

func TestHandlers_DisconnectWithoutRoomIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	out := mocks.NewMockBroadcaster(ctrl)
	store := app.NewStore(fixedClock())
	seededRoom(store)
	h := app.NewHandlers(store, nil, out)

	h.Disconnect("never-joined")
	assert.Equal(t, 1, store.Len())
}
