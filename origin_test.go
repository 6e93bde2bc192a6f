package main

import (
	"testing"
)

func TestOriginGateAdmitsNoOrigin(t *testing.T) {
	g := newOriginGate([]string{"https://chat.example.com"})
	if !g.admit("") {
		t.Fatal("Expectation: empty origin admitted, Received: rejected")
	}
}

func TestOriginGateExactMatch(t *testing.T) {
	g := newOriginGate([]string{"https://chat.example.com", "https://ops.example.com"})

	if !g.admit("https://chat.example.com") {
		t.Fatal("Expectation: listed origin admitted, Received: rejected")
	}
	if !g.admit("https://ops.example.com") {
		t.Fatal("Expectation: listed origin admitted, Received: rejected")
	}
	if g.admit("https://evil.example.com") {
		t.Fatal("Expectation: unlisted origin rejected, Received: admitted")
	}

	// matching is byte-for-byte; no case folding, no default ports
	if g.admit("HTTPS://CHAT.EXAMPLE.COM") {
		t.Fatal("Expectation: case mismatch rejected, Received: admitted")
	}
	if g.admit("https://chat.example.com:443") {
		t.Fatal("Expectation: explicit port rejected, Received: admitted")
	}
}

func TestOriginGateEmptyList(t *testing.T) {
	g := newOriginGate(nil)
	if !g.admit("") {
		t.Fatal("Expectation: empty origin admitted, Received: rejected")
	}
	if g.admit("https://chat.example.com") {
		t.Fatal("Expectation: browser origin rejected, Received: admitted")
	}

	// blank allow-list entries are dropped, not matchable
	g = newOriginGate([]string{""})
	if len(g.allowed) != 0 {
		t.Fatal("Expectation: 0, Received:", len(g.allowed))
	}
}
