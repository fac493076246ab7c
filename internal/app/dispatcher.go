package app

import (
	"errors"

	"github.com/KhaledQasim/group-order-app/internal/core"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
)

// Dispatcher is the Broadcaster backed by the Store and Registry.
// Room recipients are read from the Store at delivery time.
type Dispatcher struct {
	store *Store
	conns *Registry
}

func NewDispatcher(store *Store, conns *Registry) *Dispatcher {
	return &Dispatcher{store: store, conns: conns}
}

var _ core.Broadcaster = (*Dispatcher)(nil)

func (d *Dispatcher) SendTo(sid domain.ConnID, msg any) {
	frame, ok := encode(msg)
	if !ok {
		return
	}
	d.deliver(sid, frame)
}

func (d *Dispatcher) BroadcastRoom(room domain.RoomID, msg any) {
	d.BroadcastFrom(room, "", msg)
}

func (d *Dispatcher) BroadcastFrom(room domain.RoomID, from domain.ConnID, msg any) {
	r, ok := d.store.GetRoom(room)
	if !ok {
		return
	}
	frame, ok := encode(msg)
	if !ok {
		return
	}
	sent := 0
	for _, sid := range r.ConnIDs() {
		if sid == from {
			continue
		}
		if d.deliver(sid, frame) {
			sent++
		}
	}
	log.Debug().Str("module", "app.dispatcher").Str("room", string(room)).Int("sent_to", sent).Msg("broadcast result")
}

// deliver is fire-and-forget. A connection whose queue is full is closed; its
// read pump then reports the disconnect like any other.
func (d *Dispatcher) deliver(sid domain.ConnID, frame core.Frame) bool {
	conn, ok := d.conns.Get(sid)
	if !ok {
		return false
	}
	err := conn.TrySend(frame)
	switch {
	case err == nil:
		return true
	case errors.Is(err, core.ErrBackpressure):
		log.Warn().Str("module", "app.dispatcher").Str("sid", string(sid)).Msg("slow connection, closing")
		conn.Close()
	default:
		log.Debug().Err(err).Str("module", "app.dispatcher").Str("sid", string(sid)).Msg("send failed")
	}
	return false
}

func encode(msg any) (core.Frame, bool) {
	b, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "app.dispatcher").Msg("encode message")
		return nil, false
	}
	return b, true
}
