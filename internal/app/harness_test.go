package app_test

import (
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/KhaledQasim/group-order-app/internal/app"
	"github.com/KhaledQasim/group-order-app/internal/core"
	"github.com/KhaledQasim/group-order-app/internal/domain"
)

type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
	full   bool
	closed bool
}

func (c *fakeConn) TrySend(f core.Frame) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return core.ErrConnClosed
	}
	if c.full {
		return core.ErrBackpressure
	}
	c.frames = append(c.frames, f)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type wireMsg struct {
	Type          string              `json:"type"`
	Room          *domain.Room        `json:"room"`
	Participant   *domain.Participant `json:"participant"`
	ParticipantID domain.ConnID       `json:"participantId"`
	Message       string              `json:"message"`
	HostName      string              `json:"hostName"`
	SenderName    string              `json:"senderName"`
	Event         string              `json:"event"`
	Error         string              `json:"error"`
}

// drain decodes and clears everything received so far.
func (c *fakeConn) drain(t *testing.T) []wireMsg {
	t.Helper()
	c.mu.Lock()
	frames := c.frames
	c.frames = nil
	c.mu.Unlock()

	out := make([]wireMsg, 0, len(frames))
	for _, f := range frames {
		var m wireMsg
		require.NoError(t, json.Unmarshal(f, &m))
		out = append(out, m)
	}
	return out
}

func types(msgs []wireMsg) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Type)
	}
	return out
}

type harness struct {
	store *app.Store
	reg   *app.Registry
	h     *app.Handlers
}

func newHarness() *harness {
	store := app.NewStore(fixedClock())
	reg := app.NewRegistry()
	h := app.NewHandlers(store, app.OwnershipPolicy{}, app.NewDispatcher(store, reg))
	h.Now = fixedClock()
	return &harness{store: store, reg: reg, h: h}
}

func (hs *harness) connect(sid domain.ConnID) *fakeConn {
	c := &fakeConn{}
	hs.reg.Bind(sid, c)
	return c
}
