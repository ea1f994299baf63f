package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var _ Handler = (*MediaHandler)(nil)

// videoTypes covers the accepted upload extensions, which the builtin mime table lacks.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
}

// MediaHandler serves stored video files under "/media/".
type MediaHandler struct {
	root string
}

// NewMediaHandler creates a [MediaHandler] rooted at dir.
func NewMediaHandler(dir string) *MediaHandler {
	return &MediaHandler{root: dir}
}

// Routes implements [Handler].
func (h *MediaHandler) Routes() []string {
	return []string{"/media/"}
}

// ServeHTTP serves the file named by the request path below "/media/".
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key, ok := strings.CutPrefix(path.Clean(r.URL.Path), "/media/")
	if !ok || key == "" {
		http.NotFound(w, r)
		return
	}

	name := filepath.Join(h.root, filepath.FromSlash(key))
	f, err := os.Open(name)
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

	if ct, ok := videoTypes[strings.ToLower(filepath.Ext(name))]; ok {
		w.Header().Set("Content-Type", ct)
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
