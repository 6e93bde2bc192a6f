package main

import (
	log "github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"time"
)

// reaper deletes uploads whose mtime has passed the TTL. It shares
// the sweep ticker with the hub rather than running its own.
type reaper struct {
	dir string
	ttl time.Duration
}

func newReaper(dir string, ttl time.Duration) *reaper {
	return &reaper{dir: dir, ttl: ttl}
}

func (rp *reaper) run(ticks *subscriber) {
	for tick := range ticks.tick {
		rp.reap(tick)
	}
}

func (rp *reaper) reap(now time.Time) {
	entries, err := os.ReadDir(rp.dir)
	if err != nil {
		log.WithFields(log.Fields{"dir": rp.dir, "err": err}).Debug("reap skipped")
		return
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < rp.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(rp.dir, entry.Name())); err != nil {
			log.WithFields(log.Fields{"file": entry.Name(), "err": err}).Error("reap failed")
			continue
		}
		incr("uploads.reaped", 1)
		log.WithFields(log.Fields{"file": entry.Name()}).Info("reaped stale upload")
	}
}
