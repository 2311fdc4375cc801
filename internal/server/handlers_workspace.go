package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/workspace"
)

var errEmptyRemote = errors.New("empty remote url")

func (s *Server) handleListRepos(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.resolveWorkspace(w, r)
	if !ok {
		return
	}
	repos, err := ws.ListRepos()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, repos)
}

// WorkspaceInfo describes the caller's session workspace.
type WorkspaceInfo struct {
	ID       string    `json:"id"`
	OpenedAt time.Time `json:"openedAt"`
	Repos    []string  `json:"repos"`
}

func (s *Server) handleWorkspaceInfo(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.resolveWorkspace(w, r)
	if !ok {
		return
	}
	repos, err := ws.ListRepos()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, WorkspaceInfo{ID: ws.ID, OpenedAt: ws.OpenedAt, Repos: repos})
}

type InitRequest struct {
	Repo   string `json:"repo"`
	Bare   bool   `json:"bare"`
	Shared bool   `json:"shared"`
}

func (s *Server) handleInitRepo(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.resolveWorkspace(w, r)
	if !ok {
		return
	}
	var req InitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	log.Printf("init repo: workspace=%s repo=%s bare=%t shared=%t", ws.ID, req.Repo, req.Bare, req.Shared)
	err := ws.InitRepo(req.Repo, workspace.InitOptions{
		Bare:          req.Bare,
		Shared:        req.Shared,
		DefaultBranch: s.Config.DefaultBranch,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"repo": req.Repo})
}

type CloneRequest struct {
	Remote string `json:"remote"`
	Repo   string `json:"repo"`
	Bare   bool   `json:"bare"`
}

func (s *Server) handleClone(w http.ResponseWriter, r *http.Request) {
	ws, ok := s.resolveWorkspace(w, r)
	if !ok {
		return
	}
	var req CloneRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Remote == "" {
		writeError(w, http.StatusBadRequest, errEmptyRemote)
		return
	}

	name := req.Repo
	if name == "" {
		var err error
		if name, err = workspace.RepoNameFromURL(req.Remote); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	if err := workspace.ValidName(name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if ws.HasRepo(name) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %s", workspace.ErrRepoExists, name))
		return
	}

	log.Printf("clone repo: workspace=%s remote=%s repo=%s", ws.ID, req.Remote, name)
	if err := git.Clone(r.Context(), s.Runner, ws.Root, req.Remote, name, req.Bare); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"repo": name})
}

func (s *Server) handleDeleteRepo(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, repo *git.Repo) {
	log.Printf("delete repo: workspace=%s repo=%s", ws.ID, repo.Name)
	if err := ws.RemoveRepo(repo.Name); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}
