package rest

import (
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// FilesHandler serves the local blob store under /files/. Directory
// listings are disabled and only PDFs are served.
type FilesHandler struct {
	files http.Handler
}

// NewFilesHandler creates a FilesHandler over fsys.
func NewFilesHandler(fsys fs.FS) *FilesHandler {
	return &FilesHandler{files: http.FileServerFS(fsys)}
}

// Serve handles GET /files/{path...}.
func (h *FilesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("path")
	if name == "" || strings.HasSuffix(name, "/") || path.Ext(name) != ".pdf" || !fs.ValidPath(name) {
		writeError(w, http.StatusNotFound, CodeNotFound, "not found")
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Disposition", `inline; filename="`+path.Base(name)+`"`)

	r2 := r.Clone(r.Context())
	r2.URL.Path = "/" + name
	r2.URL.RawPath = ""
	h.files.ServeHTTP(w, r2)
}
