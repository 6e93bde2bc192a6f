package main

type room struct {
	name        string
	queue       queue
	connections connections

	// Member count kept by the hub; rooms never touch it.
	size int
}

type connections map[*connection]interface {
}

func newRoom(name string) *room {
	return &room{
		name:        name,
		queue:       make(queue, 16),
		connections: make(connections),
	}
}

// run applies the hub's command stream in order. The hub is the only
// producer, and it closes the queue when the last member leaves, so
// no broadcast can observe the member set mid-mutation.
func (r *room) run() {
	for cmd := range r.queue {
		switch cmd.cmd {
		case SUBSCRIBE:
			r.subscribe(cmd.conn)
		case UNSUBSCRIBE:
			r.unsubscribe(cmd.conn)
		case PUBLISH:
			r.publish(cmd.text)
		default:
			break
		}
	}
}

func (r *room) subscribe(conn *connection) {
	r.connections[conn] = nil
}

func (r *room) unsubscribe(conn *connection) {
	delete(r.connections, conn)
}

// publish fans out to every member with room in its send buffer.
// A member that can't keep up loses the frame, not its membership;
// the sweep deals with peers that stay stuck.
func (r *room) publish(text []byte) {
	if len(text) == 0 {
		return
	}
	for conn := range r.connections {
		select {
		case conn.send <- text:
		default:
			mark("drops", 1)
		}
	}
}
