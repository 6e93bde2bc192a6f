package main

import (
	"fmt"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	roomLenMin = 1
	roomLenMax = 256
)

var upgrader = &websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Admission is decided by the origin gate before upgrading.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsHandler struct {
	h    *hub
	gate *originGate
}

func (wsh wsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !wsh.gate.admit(origin) {
		incr("handshake.rejected", 1)
		log.WithFields(log.Fields{"origin": origin}).Warn("rejected handshake")
		http.Error(w, "Error: origin not allowed.", http.StatusUnauthorized)
		return
	}
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := newConnection(ws, wsh.h)
	c.run()
}

// pageHandler serves the web client. The request path names the room
// the client joins; the bare root falls back to the lobby.
type pageHandler struct {
}

func (ph pageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !validateRequest(w, r) {
		return
	}
	room := strings.Trim(r.URL.Path, "/")
	if room == "" {
		room = "lobby"
	}
	webTemplate.Execute(w, templateArgs{Room: room})
}

func validateRequest(w http.ResponseWriter, r *http.Request) bool {
	if !utf8.ValidString(r.URL.Path) {
		sendBadRequestError(w, "Path must be valid Unicode (UTF-8).")
		return false
	}
	pathLen := utf8.RuneCountInString(r.URL.Path)
	if !(roomLenMin <= pathLen && pathLen <= roomLenMax) {
		sendBadRequestError(w, fmt.Sprintf(
			"Path length must be %d-%d Unicode characters (UTF-8).",
			roomLenMin, roomLenMax))
		return false
	}
	return true
}

func sendBadRequestError(w http.ResponseWriter, str string) {
	http.Error(w,
		fmt.Sprintf("Error: bad request. %s", str),
		http.StatusBadRequest)
}
