package main

import (
	"github.com/gorilla/websocket"
	"time"
)

const (
	// Chat messages arriving inside the cooldown are dropped.
	chatCooldown = 1000 * time.Millisecond

	// Liveness sweep cadence. A peer that answers no ping for one
	// full cycle is evicted on the next.
	sweepPeriod = 30 * time.Second

	// Maximum frame size allowed from peer.
	maxFrameSize = 4096
)

// Reads and writes carry no deadlines. A stalled peer keeps its
// socket until the sweep evicts it.
type websocketManager interface {
	wsSetReadLimit()
	wsSetPongHandler(ack func())
	wsReadMessage() (int, []byte, error)
	wsWriteMessage(int, []byte) error
	wsClose()
}

type websocketInteractor struct {
	ws *websocket.Conn
}

func (w websocketInteractor) wsSetReadLimit() {
	w.ws.SetReadLimit(maxFrameSize)
}

func (w websocketInteractor) wsSetPongHandler(ack func()) {
	w.ws.SetPongHandler(func(s string) error { ack(); return nil })
}

func (w websocketInteractor) wsClose() {
	w.ws.Close()
}

func (w websocketInteractor) wsReadMessage() (messageType int, p []byte, err error) {
	return w.ws.ReadMessage()
}

func (w websocketInteractor) wsWriteMessage(messageType int, payload []byte) error {
	return w.ws.WriteMessage(messageType, payload)
}
