package server

import (
	"net/http"

	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/workspace"
)

type RemoteRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *Server) handleAddRemote(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req RemoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.AddRemote(r.Context(), req.Name, req.URL); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleRemoveRemote(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req RemoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.RemoveRemote(r.Context(), req.Name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

type PushRequest struct {
	Remote string `json:"remote"`
	Branch string `json:"branch"`
}

func (s *Server) handlePush(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req PushRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.Push(r.Context(), req.Remote, req.Branch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}
