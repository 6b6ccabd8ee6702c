package server

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

// staticHandler serves files from a directory under a URL prefix.
// Dot-segments, backslashes, NUL bytes and dotfiles are refused.
type staticHandler struct {
	files  fs.FS
	prefix string
}

func newStaticHandler(files fs.FS, prefix string) *staticHandler {
	return &staticHandler{files: files, prefix: strings.TrimSuffix(prefix, "/")}
}

func (h *staticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel, ok := h.relPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	f, err := h.files.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if isFingerprinted(rel) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
	http.ServeContent(w, r, rel, modTime(info), rs)
}

// relPath returns the fs.FS path for urlPath, or false if it must not
// be served.
func (h *staticHandler) relPath(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, h.prefix+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, h.prefix+"/")
	if rel == "" || strings.HasPrefix(rel, "/") {
		return "", false
	}
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.HasPrefix(seg, ".") {
			return "", false
		}
	}

	clean := path.Clean(rel)
	if !fs.ValidPath(clean) {
		return "", false
	}
	return clean, true
}

// isFingerprinted reports whether the base name carries a hex hash, as in
// "app.a1b2c3d4.css".
func isFingerprinted(name string) bool {
	parts := strings.Split(path.Base(name), ".")
	if len(parts) < 3 {
		return false
	}
	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	for _, c := range hash {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

func modTime(info fs.FileInfo) time.Time {
	if info == nil {
		return time.Time{}
	}
	return info.ModTime()
}
