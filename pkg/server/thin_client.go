package server

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"strings"

	clientdist "github.com/vango-dev/gmvoice/client/dist"
)

// embeddedAsset serves a file compiled into the binary with ETag
// revalidation.
type embeddedAsset struct {
	data        []byte
	contentType string
	etag        string
}

func newEmbeddedAsset(data []byte, contentType string) *embeddedAsset {
	sum := sha256.Sum256(data)
	return &embeddedAsset{
		data:        data,
		contentType: contentType,
		etag:        fmt.Sprintf("%q", fmt.Sprintf("%x", sum[:8])),
	}
}

var (
	thinClient = newEmbeddedAsset(clientdist.ClientJS, "application/javascript; charset=utf-8")
	styleSheet = newEmbeddedAsset(clientdist.AppCSS, "text/css; charset=utf-8")
)

func (a *embeddedAsset) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(a.data) == 0 {
		http.Error(w, "Asset not available", http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", a.etag)
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=0, must-revalidate")

	if etagMatches(r.Header.Get("If-None-Match"), a.etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(a.data)
}

// etagMatches handles lists and weak validators: If-None-Match: "a", W/"b".
func etagMatches(header, etag string) bool {
	if header == "" || etag == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	for _, part := range strings.Split(header, ",") {
		candidate := strings.TrimPrefix(strings.TrimSpace(part), "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}
