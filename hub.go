package main

import (
	"fmt"
	log "github.com/sirupsen/logrus"
)

// hub owns the room directory: the table of live rooms, the registry
// of every open connection, and each connection's room and alive
// fields. All of it is touched only by the hub goroutine, so joins,
// leaves, broadcasts and sweeps serialize without locks.
type hub struct {
	queue queue
	rooms rooms
	conns connections
}

type rooms map[string]*room

func newHub() *hub {
	return &hub{
		queue: make(queue, 16),
		rooms: make(rooms),
		conns: make(connections),
	}
}

func (h *hub) run(ticks *subscriber) {
	for {
		select {
		case cmd := <-h.queue:
			h.dispatch(cmd)
		case <-ticks.tick:
			h.sweep()
		}
	}
}

func (h *hub) dispatch(cmd command) {
	switch cmd.cmd {
	case REGISTER:
		h.register(cmd)
	case UNREGISTER:
		h.unregister(cmd)
	case JOIN:
		h.join(cmd)
	case PUBLISH:
		h.publish(cmd)
	case PONG:
		cmd.conn.alive = true
	default:
		panic(fmt.Sprintf("unexpected hub cmd: %v\n", cmd))
	}
}

func (h *hub) register(cmd command) {
	h.conns[cmd.conn] = nil
	log.WithFields(log.Fields{"conn": cmd.conn.id}).Info("connection open")
}

func (h *hub) unregister(cmd command) {
	c := cmd.conn
	if _, ok := h.conns[c]; !ok {
		return
	}
	delete(h.conns, c)
	h.leave(c)
	close(c.ping)
	log.WithFields(log.Fields{"conn": c.id}).Info("connection closed")
}

// join moves the connection to the named room, creating the room if
// needed. Leaving the old room and entering the new one ride the same
// command stream, so no observer sees the connection in both.
func (h *hub) join(cmd command) {
	c := cmd.conn
	if c.room == cmd.room {
		return
	}
	h.leave(c)
	r, ok := h.rooms[cmd.room]
	if !ok {
		r = newRoom(cmd.room)
		h.rooms[cmd.room] = r
		go r.run()
		incr("rooms", 1)
	}
	r.size++
	c.room = cmd.room
	r.queue <- command{cmd: SUBSCRIBE, conn: c}
	log.WithFields(log.Fields{"conn": c.id, "room": cmd.room}).Debug("joined room")
}

// leave removes the connection from its current room, if any. A room
// whose last member leaves is deleted on the spot; closing its queue
// stops the room goroutine once the unsubscribe has drained.
func (h *hub) leave(c *connection) {
	if c.room == "" {
		return
	}
	r := h.rooms[c.room]
	r.queue <- command{cmd: UNSUBSCRIBE, conn: c}
	r.size--
	c.room = ""
	if r.size == 0 {
		delete(h.rooms, r.name)
		close(r.queue)
		decr("rooms", 1)
	}
}

func (h *hub) publish(cmd command) {
	c := cmd.conn
	if c.room == "" {
		mark("drops", 1)
		return
	}
	r := h.rooms[c.room]
	select {
	case r.queue <- command{cmd: PUBLISH, text: cmd.text}:
	default:
		mark("drops", 1)
	}
}

// sweep probes every open connection. A peer that never answered the
// previous cycle's ping is presumed dead and force-closed; its reader
// unwinds through the normal unregister path.
func (h *hub) sweep() {
	for c := range h.conns {
		if !c.alive {
			incr("conn.evicted", 1)
			log.WithFields(log.Fields{"conn": c.id, "room": c.room}).Info("evicting unresponsive connection")
			c.w.wsClose()
			continue
		}
		c.alive = false
		select {
		case c.ping <- struct{}{}:
		default:
		}
	}
}
