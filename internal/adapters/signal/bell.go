package signal

import (
	"context"
	"errors"

	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/rs/zerolog/log"
)

var errBellRateLimited = errors.New("bell rate limited")

func (ctl *SignalWSController) handleBell(
	ctx context.Context,
	sid domain.ConnID,
	conn *wsSignalConn,
	data []byte,
) {
	p, err := decode[app.Bell](data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad bell payload")
		ctl.reject(conn, app.EventBell, app.ErrInvalidPayload)
		return
	}
	if ctl.Bells != nil && !ctl.Bells.Allow(sid) {
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("user", string(p.UserID)).Msg("bell rate limited")
		ctl.reject(conn, app.EventBell, errBellRateLimited)
		return
	}
	ctl.submit(ctx, sid, p)
}
