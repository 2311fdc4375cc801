package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/workspace"
)

var errNoUpload = errors.New("no file uploaded")

// handleGetTree answers a file's bytes, or the listing of a directory.
func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, repo *git.Repo) {
	file := r.PathValue("path")
	fi, err := ws.Stat(repo.Name, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch {
	case fi.IsDir():
		nodes, err := ws.ListTree(repo.Name, file)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, nodes)
	case fi.Mode().IsRegular():
		data, err := ws.ReadFile(repo.Name, file)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeRaw(w, data)
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("not a regular file or a directory: %s", file))
	}
}

// handlePutTree stores the multipart "file" field at the path and stages it.
func (s *Server) handlePutTree(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, repo *git.Repo) {
	file, err := workspace.CleanPath(r.PathValue("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)
	upload, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			err = errNoUpload
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer upload.Close()

	log.Printf("put file: repo=%s path=%s", repo.Name, file)
	if err := ws.WriteFile(repo.Name, file, upload); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.Add(r.Context(), file); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	file, err := workspace.CleanPath(r.PathValue("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	log.Printf("delete file: repo=%s path=%s", repo.Name, file)
	if err := repo.Remove(r.Context(), file); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}
