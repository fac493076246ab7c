package signal

const (
	eventPing = "ping"
	eventPong = "pong"
)

// pongMsg answers a keepalive ping without involving the room engine.
type pongMsg struct {
	Type string `json:"type"`
}

func (ctl *SignalWSController) handlePing(conn *wsSignalConn) {
	ctl.sendJSON(conn, pongMsg{Type: eventPong})
}
