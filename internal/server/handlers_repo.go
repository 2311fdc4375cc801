package server

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/workspace"
)

type BranchRequest struct {
	Branch string `json:"branch"`
}

func (s *Server) handleCreateBranch(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req BranchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.CreateBranch(r.Context(), req.Branch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req BranchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.Checkout(r.Context(), req.Branch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

type MoveRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := repo.Move(r.Context(), req.Source, req.Destination); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeOK(w)
}

// handleShowFile answers the raw content of a file at ?rev=, HEAD by default.
func (s *Server) handleShowFile(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	file, err := workspace.CleanPath(r.PathValue("path"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	content, err := repo.ShowFile(r.Context(), r.URL.Query().Get("rev"), file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeRaw(w, []byte(content))
}

// handleCommitShow fails with 500: a valid-looking id that git cannot show
// is a server-side problem for this route.
func (s *Server) handleCommitShow(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	commit := r.PathValue("commit")
	if !commitRe.MatchString(commit) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid commit id: %q", commit))
		return
	}
	out, err := git.Dispatch(r.Context(), repo, "show", url.Values{"commit": {commit}})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type CommitRequest struct {
	Message    string `json:"message"`
	AllowEmpty bool   `json:"allow-empty"`
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
	var req CommitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	log.Printf("commit: repo=%s allow-empty=%t", repo.Name, req.AllowEmpty)
	res, err := repo.Commit(r.Context(), req.Message, req.AllowEmpty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
