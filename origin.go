package main

// originGate decides admission before the websocket handshake runs.
// Requests without an Origin header are non-browser clients and pass;
// browsers must match an allow-list entry exactly. No normalization,
// no wildcards.
type originGate struct {
	allowed map[string]interface {
	}
}

func newOriginGate(origins []string) *originGate {
	g := &originGate{allowed: make(map[string]interface{})}
	for _, o := range origins {
		if o != "" {
			g.allowed[o] = nil
		}
	}
	return g
}

func (g *originGate) admit(origin string) bool {
	if origin == "" {
		return true
	}
	_, ok := g.allowed[origin]
	return ok
}
