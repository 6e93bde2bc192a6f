package main

import (
	"encoding/json"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const uploadRoute = "/uploads/"

var imageExts = map[string]interface {
}{
	".png":  nil,
	".jpg":  nil,
	".jpeg": nil,
	".gif":  nil,
	".webp": nil,
}

// uploadHandler stores a posted image and answers with the URL the
// chat client embeds as an opaque payload field. The relay itself
// never inspects these URLs.
type uploadHandler struct {
	dir      string
	maxBytes int64
}

func (uh uploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, uh.maxBytes)
	file, header, err := r.FormFile("image")
	if err != nil {
		sendBadRequestError(w, "Unable to read image form field.")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := imageExts[ext]; !ok {
		sendBadRequestError(w, "Image type not allowed.")
		return
	}

	name := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(uh.dir, name))
	if err != nil {
		log.WithFields(log.Fields{"err": err}).Error("upload create failed")
		http.Error(w, "Error: unable to store upload.", http.StatusInternalServerError)
		return
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		log.WithFields(log.Fields{"file": name, "err": err}).Error("upload write failed")
		http.Error(w, "Error: unable to store upload.", http.StatusInternalServerError)
		return
	}

	incr("uploads", 1)
	log.WithFields(log.Fields{"file": name, "bytes": header.Size}).Info("stored upload")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": uploadRoute + name})
}
