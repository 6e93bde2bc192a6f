package main

// Commands flow one way: connection readers and handlers post to the
// hub queue; the hub forwards membership and broadcast commands to
// room queues. Rooms never post back.
type queue chan command

type command struct {
	cmd  cmdCode
	room string
	text []byte
	conn *connection
}

type cmdCode int

const (
	// Handled by the hub.
	REGISTER cmdCode = iota
	UNREGISTER
	JOIN
	PONG

	// Handled by rooms; PUBLISH arrives at the hub and is forwarded.
	SUBSCRIBE
	UNSUBSCRIBE
	PUBLISH
)
