package main

import (
	"bytes"
	"encoding/json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"time"
	"unicode/utf8"
)

// frame is the inbound envelope. Chat payloads stay raw so fields the
// relay doesn't know about survive the round trip untouched.
type frame struct {
	Type    string          `json:"type"`
	Room    string          `json:"room"`
	Payload json.RawMessage `json:"payload"`
}

type connection struct {
	id   string
	send chan []byte
	ping chan struct{}
	w    websocketManager
	h    *hub

	// Owned by the hub goroutine.
	room  string
	alive bool

	// Owned by the reader goroutine.
	lastMessageAt time.Time
}

func newConnection(ws *websocket.Conn, h *hub) *connection {
	return &connection{
		id:    uuid.New().String(),
		send:  make(chan []byte, 256),
		ping:  make(chan struct{}, 1),
		w:     websocketInteractor{ws: ws},
		h:     h,
		alive: true,
	}
}

func (c *connection) run() {
	c.h.queue <- command{cmd: REGISTER, conn: c}
	incr("websockets", 1)
	defer func() {
		decr("websockets", 1)
		c.h.queue <- command{cmd: UNREGISTER, conn: c}
	}()
	go c.writer()
	c.reader()
}

func (c *connection) reader() {
	c.w.wsSetReadLimit()
	c.w.wsSetPongHandler(func() {
		c.h.queue <- command{cmd: PONG, conn: c}
	})
	for {
		if err := c.readMessage(); err != nil {
			break
		}
	}
	c.w.wsClose()
}

// readMessage pulls one frame off the wire and runs it through the
// pipeline. Only a transport error ends the read loop; a bad frame
// never does.
func (c *connection) readMessage() error {
	_, raw, err := c.w.wsReadMessage()
	if err != nil {
		return err
	}
	incr("conn.recv", 1)
	c.handleFrame(raw)
	return nil
}

func (c *connection) handleFrame(raw []byte) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		c.drop("undecodable frame", err)
		return
	}
	switch f.Type {
	case "join":
		c.handleJoin(f.Room)
	case "chat":
		c.handleChat(f.Payload)
	default:
		mark("frames.ignored", 1)
	}
}

func (c *connection) handleJoin(room string) {
	if n := utf8.RuneCountInString(room); n < roomLenMin || n > roomLenMax {
		c.drop("bad room name", nil)
		return
	}
	c.h.queue <- command{cmd: JOIN, conn: c, room: room}
}

// handleChat applies the chat policy in order: the payload must be an
// object, the cooldown must have passed, text gets escaped, and the
// rebuilt payload goes out to the sender's current room. sender and
// unknown fields are relayed as they came in.
func (c *connection) handleChat(payload json.RawMessage) {
	var fields map[string]interface{}
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		c.drop("undecodable chat payload", err)
		return
	}
	if time.Since(c.lastMessageAt) < chatCooldown {
		mark("chat.throttled", 1)
		return
	}
	c.lastMessageAt = time.Now()
	text, _ := fields["text"].(string)
	fields["text"] = escapeText(text)
	out, err := encodePayload(fields)
	if err != nil {
		c.drop("unencodable chat payload", err)
		return
	}
	c.h.queue <- command{cmd: PUBLISH, conn: c, text: out}
}

// encodePayload marshals without HTML escaping; the escaped entities
// in text must reach peers as written, not as & style sequences.
func encodePayload(fields map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (c *connection) drop(reason string, err error) {
	mark("frames.invalid", 1)
	log.WithFields(log.Fields{"conn": c.id, "err": err}).Debug(reason)
}

func (c *connection) writer() {
	defer c.w.wsClose()
	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.w.wsWriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
			incr("conn.send", 1)
		case _, ok := <-c.ping:
			if !ok {
				return
			}
			if err := c.w.wsWriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
