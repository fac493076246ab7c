package signal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev, prevLevel := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})
	return &buf
}

func TestLogReadError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"read limit", websocket.ErrReadLimit, "readPump stopped"},
		{"timeout", errors.New("i/o timeout"), "readPump stopped"},
		{"abnormal close", &websocket.CloseError{Code: websocket.CloseAbnormalClosure}, "readPump read error"},
		{"normal close", &websocket.CloseError{Code: websocket.CloseNormalClosure}, ""},
		{"going away", &websocket.CloseError{Code: websocket.CloseGoingAway}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			logReadError("c1", tt.err)
			if tt.want == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), `"sid":"c1"`)
		})
	}
}
