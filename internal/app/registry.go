package app

import (
	"github.com/KhaledQasim/group-order-app/internal/core"
	"github.com/KhaledQasim/group-order-app/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps live connection ids to their transport endpoints.
// Like Store it is owned by the Orchestrator loop and has no locks.
type Registry struct {
	conns map[domain.ConnID]core.SignalConnection
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]core.SignalConnection)}
}

func (r *Registry) Bind(sid domain.ConnID, conn core.SignalConnection) {
	r.conns[sid] = conn
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("bound connection")
}

func (r *Registry) Get(sid domain.ConnID) (core.SignalConnection, bool) {
	c, ok := r.conns[sid]
	return c, ok
}

func (r *Registry) Unbind(sid domain.ConnID) {
	if _, ok := r.conns[sid]; !ok {
		return
	}
	delete(r.conns, sid)
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("unbind connection")
}

func (r *Registry) Len() int { return len(r.conns) }
