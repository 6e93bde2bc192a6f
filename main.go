// Command websocketApiChat relays chat messages between the members
// of named rooms over websockets.
//
//	websocketApiChat -addr=:8081
//
// Everything is as ephemeral as can be. A chat message is broadcast
// to the members of the sender's current room, sender included, and
// then forgotten. A room is forgotten when its last member leaves.
//
// Join a room by sending a join frame over a websocket:
//
//	{"type":"join","room":"kitchen"}
//
// Chat with the room by sending chat frames:
//
//	{"type":"chat","payload":{"sender":"kim","text":"hi"}}
//
// The payload's text is HTML-escaped before broadcast; sender and any
// other payload fields are relayed untouched, which is how the image
// URLs minted by POST /upload ride along.
//
// Chat messages are limited to one per second per connection. A
// periodic sweep pings every connection and evicts the ones that
// stopped answering. Room names can be 1-256 characters.
//
// Non-websocket GET requests are served an HTML client that joins the
// room named by the request path.
package main

import (
	"flag"
	"github.com/facebookgo/httpdown"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"strings"
	"time"
)

func main() {
	cfg := configFromEnv()

	// Prepare the stoppable HTTP server
	server := &http.Server{
		Addr: cfg.addr,
	}
	hd := &httpdown.HTTP{
		StopTimeout: 10 * time.Second,
		KillTimeout: 1 * time.Second,
	}

	flag.StringVar(&server.Addr, "addr", server.Addr, "http service address")
	flag.DurationVar(&hd.StopTimeout, "stop-timeout", hd.StopTimeout, "stop timeout")
	flag.DurationVar(&hd.KillTimeout, "kill-timeout", hd.KillTimeout, "kill timeout")
	origins := flag.String("origins", strings.Join(cfg.origins, ","),
		"comma-separated allow-list of exact Origin values (empty admits only requests without an Origin header)")
	flag.StringVar(&cfg.uploadDir, "upload-dir", cfg.uploadDir, "directory for uploaded images")
	flag.Int64Var(&cfg.uploadMaxBytes, "upload-max-bytes", cfg.uploadMaxBytes, "maximum upload size in bytes")
	flag.DurationVar(&cfg.uploadTTL, "upload-ttl", cfg.uploadTTL, "age at which uploads are reaped")
	flag.Parse()
	cfg.origins = parseOrigins(*origins)

	if lvl, err := log.ParseLevel(cfg.logLevel); err == nil {
		log.SetLevel(lvl)
	}
	if err := os.MkdirAll(cfg.uploadDir, 0755); err != nil {
		log.Fatalln("upload dir:", err)
	}
	startMetrics()

	// Start the server
	server.Handler = newHandler(cfg)
	log.WithFields(log.Fields{"addr": server.Addr}).Info("listening")
	if err := httpdown.ListenAndServe(server, hd); err != nil {
		log.Fatalln(err)
	}
	finalMetrics()
}

func newHandler(cfg config) http.Handler {
	hub := newHub()
	ticker := newMTicker(sweepPeriod)
	go hub.run(ticker.subscribe())
	go newReaper(cfg.uploadDir, cfg.uploadTTL).run(ticker.subscribe())

	handler := mux.NewRouter()

	// Route websocket requests
	handler.Headers(
		// Requests with these headers will use this handler
		"Connection", "Upgrade",
		"Upgrade", "websocket",
	).Handler(wsHandler{h: hub, gate: newOriginGate(cfg.origins)})

	// Route image uploads and the files they create
	handler.Path("/upload").Methods("POST").Handler(
		uploadHandler{dir: cfg.uploadDir, maxBytes: cfg.uploadMaxBytes})
	handler.PathPrefix(uploadRoute).Methods("GET").Handler(
		http.StripPrefix(uploadRoute, http.FileServer(http.Dir(cfg.uploadDir))))

	// Route other GET requests to the web client
	handler.Methods("GET").Handler(pageHandler{})

	return handler
}
