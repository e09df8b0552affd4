package handlers

import (
	"ev-route-dashboard/internal/api/dto"
	"ev-route-dashboard/internal/dashboard"
	"ev-route-dashboard/internal/platform/metrics"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	wsReadLimit    = 1 << 12
	wsPongWait     = 60 * time.Second
	wsPingInterval = 20 * time.Second
	wsWriteWait    = 5 * time.Second
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

// Ticker is the playback position source.
type Ticker interface {
	Current() int
}

// StreamHandler pushes a frame to each websocket viewer on every playback tick.
// Every viewer keeps its own dark-mode setting.
type StreamHandler struct {
	Dispatcher *dashboard.Dispatcher
	Broker     *dashboard.Broker
	Player     Ticker
}

func (h *StreamHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	session := uuid.New().String()
	logger := log.WithField("session", session)

	metrics.StreamViewers.Inc()
	defer metrics.StreamViewers.Dec()

	ticks := h.Broker.Subscribe()
	defer h.Broker.Unsubscribe(ticks)

	logger.Info("viewer connected")
	defer logger.Info("viewer disconnected")

	// Read loop: the only reader. Toggles are handed to the writer below.
	toggles := make(chan bool, 1)
	closed := make(chan struct{})
	done := make(chan struct{})
	defer close(done)
	conn.SetReadLimit(wsReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error { return conn.SetReadDeadline(time.Now().Add(wsPongWait)) })

	go func() {
		defer close(closed)
		for {
			var msg dto.ClientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type != "toggle" || msg.Dark == nil {
				continue
			}
			select {
			case toggles <- *msg.Dark:
			case <-done:
				return
			}
		}
	}()

	// Write loop: the only writer.
	write := func(v any) error {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v)
	}

	state := dashboard.State{NIntervals: h.Player.Current(), Dark: true}

	if err := write(dto.StreamMessage{Type: "hello", Session: session, Tick: state.NIntervals}); err != nil {
		return
	}
	if err := write(h.frame(dashboard.InputInterval, state)); err != nil {
		return
	}

	ping := time.NewTicker(wsPingInterval)
	defer ping.Stop()

	for {
		var msg dto.StreamMessage
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			return
		case t, ok := <-ticks:
			if !ok {
				return
			}
			state.NIntervals = t.NIntervals
			msg = h.frame(dashboard.InputInterval, state)
		case dark := <-toggles:
			state.Dark = dark
			msg = h.frame(dashboard.InputDarkMode, state)
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		}

		if err := write(msg); err != nil {
			logger.WithError(err).Debug("websocket write failed")
			return
		}
	}
}

func (h *StreamHandler) frame(input string, state dashboard.State) dto.StreamMessage {
	out := h.Dispatcher.Dispatch(dashboard.Event{Input: input, State: state})

	msg := dto.StreamMessage{Type: "frame", Tick: state.NIntervals}
	if v, ok := out[dashboard.OutputReadout].(dashboard.Readout); ok {
		msg.Readout = &v
	}
	if v, ok := out[dashboard.OutputMap].(dashboard.MapUpdate); ok {
		msg.Map = &v
	}
	return msg
}
