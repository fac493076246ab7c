package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/KhaledQasim/group-order-app/internal/core"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/rs/zerolog/log"
)

var ErrStopped = errors.New("orchestrator stopped")

type eventKind int

const (
	kindConnect eventKind = iota
	kindCommand
	kindDisconnect
	kindQuery
)

type event struct {
	kind  eventKind
	sid   domain.ConnID
	conn  core.SignalConnection
	cmd   Command
	query func(*Store) any
	reply chan any
}

// Orchestrator is the single logical worker. Every connect, command,
// disconnect and query runs to completion on the Run goroutine before the
// next one starts, in arrival order. Store, Registry and Dispatcher are never
// touched from anywhere else.
type Orchestrator struct {
	Store    *Store
	Registry *Registry
	Handlers *Handlers

	// Nack sends an error frame to the originating connection when a
	// command is rejected. Off by default.
	Nack bool

	events chan event
	done   chan struct{}
}

// NewOrchestrator wires a Store, Registry and Dispatcher around policy.
func NewOrchestrator(policy Policy, buffer int) *Orchestrator {
	store := NewStore(nil)
	reg := NewRegistry()
	return &Orchestrator{
		Store:    store,
		Registry: reg,
		Handlers: NewHandlers(store, policy, NewDispatcher(store, reg)),
		events:   make(chan event, buffer),
		done:     make(chan struct{}),
	}
}

// Run processes events until ctx ends.
func (o *Orchestrator) Run(ctx context.Context) {
	defer close(o.done)
	log.Info().Str("module", "app.orchestrator").Msg("event loop started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.orchestrator").Msg("event loop stopped")
			return
		case ev := <-o.events:
			o.apply(ev)
		}
	}
}

func (o *Orchestrator) enqueue(ctx context.Context, ev event) error {
	select {
	case o.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.done:
		return ErrStopped
	}
}

// Connect registers a transport endpoint under sid.
func (o *Orchestrator) Connect(ctx context.Context, sid domain.ConnID, conn core.SignalConnection) error {
	return o.enqueue(ctx, event{kind: kindConnect, sid: sid, conn: conn})
}

// Submit queues cmd on behalf of sid. It blocks until queued; nothing is dropped.
func (o *Orchestrator) Submit(ctx context.Context, sid domain.ConnID, cmd Command) error {
	if cmd == nil {
		return ErrInvalidPayload
	}
	return o.enqueue(ctx, event{kind: kindCommand, sid: sid, cmd: cmd})
}

// Disconnect removes sid from its room, if any, and forgets the connection.
func (o *Orchestrator) Disconnect(ctx context.Context, sid domain.ConnID) error {
	return o.enqueue(ctx, event{kind: kindDisconnect, sid: sid})
}

// Query runs fn on the loop and returns its result. fn must not retain
// pointers into the Store.
func (o *Orchestrator) Query(ctx context.Context, fn func(*Store) any) (any, error) {
	reply := make(chan any, 1)
	if err := o.enqueue(ctx, event{kind: kindQuery, query: fn, reply: reply}); err != nil {
		return nil, err
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-o.done:
		return nil, ErrStopped
	}
}

// Snapshot returns a copy of the room, or false if it does not exist.
func (o *Orchestrator) Snapshot(ctx context.Context, id domain.RoomID) (*domain.Room, bool, error) {
	v, err := o.Query(ctx, func(s *Store) any {
		r, ok := s.GetRoom(id)
		if !ok {
			return (*domain.Room)(nil)
		}
		return r.Clone()
	})
	if err != nil {
		return nil, false, err
	}
	room, _ := v.(*domain.Room)
	return room, room != nil, nil
}

func (o *Orchestrator) ListRooms(ctx context.Context) ([]RoomInfo, error) {
	v, err := o.Query(ctx, func(s *Store) any { return s.List() })
	if err != nil {
		return nil, err
	}
	rooms, _ := v.([]RoomInfo)
	return rooms, nil
}

func (o *Orchestrator) apply(ev event) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("module", "app.orchestrator").Str("sid", string(ev.sid)).Interface("panic", r).Msg("event handler panicked")
			if ev.reply != nil {
				ev.reply <- nil
			}
		}
	}()

	switch ev.kind {
	case kindConnect:
		o.Registry.Bind(ev.sid, ev.conn)
	case kindDisconnect:
		o.Handlers.Disconnect(ev.sid)
		o.Registry.Unbind(ev.sid)
	case kindQuery:
		ev.reply <- ev.query(o.Store)
	case kindCommand:
		if err := o.dispatch(ev.sid, ev.cmd); err != nil {
			log.Debug().Err(err).Str("module", "app.orchestrator").Str("sid", string(ev.sid)).Str("event", ev.cmd.Event()).Msg("command rejected")
			if o.Nack {
				o.Handlers.Out.SendTo(ev.sid, Rejected(ev.cmd.Event(), err))
			}
		}
	}
}

func (o *Orchestrator) dispatch(sid domain.ConnID, cmd Command) error {
	h := o.Handlers
	switch c := cmd.(type) {
	case JoinRoom:
		return h.JoinRoom(sid, c)
	case LeaveRoom:
		return h.LeaveRoom(sid, c)
	case AddToCart:
		return h.AddToCart(sid, c)
	case RemoveFromCart:
		return h.RemoveFromCart(sid, c)
	case UpdateCartItem:
		return h.UpdateCartItem(sid, c)
	case PlaceOrder:
		return h.PlaceOrder(sid, c)
	case Bell:
		return h.Bell(sid, c)
	default:
		return fmt.Errorf("%w: unknown command %T", ErrInvalidPayload, cmd)
	}
}
