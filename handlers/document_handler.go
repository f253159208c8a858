package handlers

import (
	"errors"
	"io/fs"
	"net/http"

	"railshift/storage"
)

// DocumentHandler serves documents kept by a LocalStore.
type DocumentHandler struct {
	Store *storage.LocalStore
}

func (h *DocumentHandler) Serve(w http.ResponseWriter, r *http.Request) {
	f, err := h.Store.Open(r.PathValue("key"))
	if errors.Is(err, fs.ErrNotExist) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not open document")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not open document")
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
