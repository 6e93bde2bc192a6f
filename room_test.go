package main

import (
	"testing"
	"time"
)

func TestRoomSubscribe(t *testing.T) {
	r := newRoom("kitchen")

	if len(r.connections) != 0 {
		t.Fatal("Expectation: 0, Received:", len(r.connections))
	}

	conn := newTestConnection()
	r.subscribe(conn)
	if len(r.connections) != 1 {
		t.Fatal("Expectation: 1, Received:", len(r.connections))
	}

	// subscribing twice keeps a single membership
	r.subscribe(conn)
	if len(r.connections) != 1 {
		t.Fatal("Expectation: 1, Received:", len(r.connections))
	}
}

func TestRoomUnsubscribe(t *testing.T) {
	r := newRoom("kitchen")
	conn := newTestConnection()
	r.subscribe(conn)

	r.unsubscribe(conn)
	if len(r.connections) != 0 {
		t.Fatal("Expectation: 0, Received:", len(r.connections))
	}

	// the send channel stays open; the writer owns its shutdown
	conn.send <- []byte("still usable")
	if len(conn.send) != 1 {
		t.Fatal("Expectation: 1, Received:", len(conn.send))
	}

	// unsubscribing a stranger is a no-op
	r.unsubscribe(newTestConnection())
}

func TestRoomPublish(t *testing.T) {
	r := newRoom("kitchen")
	conn := newTestConnection()
	conn2 := newTestConnection()
	r.subscribe(conn)
	r.subscribe(conn2)

	r.publish([]byte("monkey"))
	text, text2 := <-conn.send, <-conn2.send
	if string(text) != "monkey" {
		t.Fatal("Expectation: monkey, Received:", string(text))
	}
	if string(text2) != "monkey" {
		t.Fatal("Expectation: monkey, Received:", string(text2))
	}
}

func TestRoomPublishEmpty(t *testing.T) {
	r := newRoom("kitchen")
	conn := newTestConnection()
	r.subscribe(conn)

	r.publish([]byte(""))
	r.publish(nil)
	if len(conn.send) != 0 {
		t.Fatal("Expectation: 0, Received:", len(conn.send))
	}
}

func TestRoomPublishSkipsFullBuffer(t *testing.T) {
	r := newRoom("kitchen")
	conn := newTestConnection()
	stuck := newTestConnection()
	stuck.send = make(chan []byte)
	r.subscribe(conn)
	r.subscribe(stuck)

	// the stuck member loses the frame; nobody else waits for it
	r.publish([]byte("monkey"))
	if got := <-conn.send; string(got) != "monkey" {
		t.Fatal("Expectation: monkey, Received:", string(got))
	}
}

func TestRoomRunStopsWhenQueueCloses(t *testing.T) {
	r := newRoom("kitchen")
	done := make(chan struct{})
	go func() {
		r.run()
		close(done)
	}()

	conn := newTestConnection()
	r.queue <- command{cmd: SUBSCRIBE, conn: conn}
	r.queue <- command{cmd: PUBLISH, text: []byte("monkey")}
	if got := recvText(t, conn); got != "monkey" {
		t.Fatal("Expectation: monkey, Received:", got)
	}

	close(r.queue)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expectation: room goroutine exit, Received: still running")
	}
}
