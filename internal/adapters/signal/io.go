package signal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var errUnknownEvent = errors.New("unknown event")

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	ticker := time.NewTicker(ctl.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ctl.opts.WriteWait)); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		}
	}
}

// readPump owns the disconnect: whatever ends the loop, the Engine hears
// about it exactly once.
func (ctl *SignalWSController) readPump(ctx context.Context, sid domain.ConnID, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		if err := ctl.Orch.Disconnect(context.WithoutCancel(ctx), sid); err != nil {
			log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("disconnect not delivered")
		}
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.opts.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(ctl.opts.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			logReadError(sid, err)
			return
		}
		ctl.handleSignal(ctx, sid, c, data)
	}
}

// logReadError reports why a read pump stopped. Normal closes are silent;
// timeouts and read-limit overflows are not close frames and log at debug.
func logReadError(sid domain.ConnID, err error) {
	var closeErr *websocket.CloseError
	switch {
	case !errors.As(err, &closeErr):
		log.Debug().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump stopped")
	case websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure):
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
	}
}

func (ctl *SignalWSController) handleSignal(ctx context.Context, sid domain.ConnID, c *wsSignalConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		ctl.reject(c, "", app.ErrInvalidPayload)
		return
	}

	switch env.Type {
	case eventPing:
		ctl.handlePing(c)
	case app.EventJoinRoom:
		ctl.handleJoin(ctx, sid, c, data)
	case app.EventLeaveRoom:
		ctl.handleLeave(ctx, sid, c, data)
	case app.EventAddToCart:
		submitAs[app.AddToCart](ctx, ctl, sid, c, data)
	case app.EventRemoveFromCart:
		submitAs[app.RemoveFromCart](ctx, ctl, sid, c, data)
	case app.EventUpdateCartItem:
		submitAs[app.UpdateCartItem](ctx, ctl, sid, c, data)
	case app.EventPlaceOrder:
		submitAs[app.PlaceOrder](ctx, ctl, sid, c, data)
	case app.EventBell:
		ctl.handleBell(ctx, sid, c, data)
	default:
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("type", env.Type).Msg("unknown signal")
		ctl.reject(c, env.Type, errUnknownEvent)
	}
}

func decode[T app.Command](data []byte) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("%w: %v", app.ErrInvalidPayload, err)
	}
	return v, nil
}

// submitAs decodes data as T and queues it.
func submitAs[T app.Command](ctx context.Context, ctl *SignalWSController, sid domain.ConnID, c *wsSignalConn, data []byte) {
	cmd, err := decode[T](data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("event", cmd.Event()).Msg("bad payload")
		ctl.reject(c, cmd.Event(), app.ErrInvalidPayload)
		return
	}
	ctl.submit(ctx, sid, cmd)
}

func (ctl *SignalWSController) submit(ctx context.Context, sid domain.ConnID, cmd app.Command) {
	if err := ctl.Orch.Submit(ctx, sid, cmd); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Str("event", cmd.Event()).Msg("submit")
	}
}

// reject answers the sender only when explicit NACKs are on.
func (ctl *SignalWSController) reject(c *wsSignalConn, event string, err error) {
	if !ctl.opts.Nack {
		return
	}
	ctl.sendJSON(c, app.Rejected(event, err))
}

func (ctl *SignalWSController) sendJSON(c *wsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
