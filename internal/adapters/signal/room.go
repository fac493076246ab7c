package signal

import (
	"context"

	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(
	ctx context.Context,
	sid domain.ConnID,
	conn *wsSignalConn,
	data []byte,
) {
	p, err := decode[app.JoinRoom](data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.reject(conn, app.EventJoinRoom, app.ErrInvalidPayload)
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room_id", string(p.RoomID)).Str("name", p.ParticipantName).Msg("join")
	ctl.submit(ctx, sid, p)
}

// handleLeave leaves the current room; the connection itself stays open.
func (ctl *SignalWSController) handleLeave(
	ctx context.Context,
	sid domain.ConnID,
	conn *wsSignalConn,
	data []byte,
) {
	p, err := decode[app.LeaveRoom](data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad leave payload")
		ctl.reject(conn, app.EventLeaveRoom, app.ErrInvalidPayload)
		return
	}
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room_id", string(p.RoomID)).Msg("leave")
	ctl.submit(ctx, sid, p)
}
