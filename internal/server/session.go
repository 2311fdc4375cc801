package server

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/kurobon/gitrest/internal/git"
	"github.com/kurobon/gitrest/internal/workspace"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "session_id"
)

var commitRe = regexp.MustCompile(`^[a-fA-F0-9]{5,40}$`)

// resolveWorkspace resolves the caller's workspace from the session header or
// cookie. A new workspace id is handed back in both.
func (s *Server) resolveWorkspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		if c, err := r.Cookie(SessionCookie); err == nil {
			id = c.Value
		}
	}

	ws, err := s.Workspaces.Resolve(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	if ws.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    ws.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	w.Header().Set(SessionHeader, ws.ID)
	return ws, true
}

type repoHandler func(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, repo *git.Repo)

// withRepo resolves the workspace and the {repo} path value before calling h.
func (s *Server) withRepo(h repoHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ws, ok := s.resolveWorkspace(w, r)
		if !ok {
			return
		}
		name := r.PathValue("repo")
		if !ws.HasRepo(name) {
			writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %s", workspace.ErrRepoNotFound, name))
			return
		}
		h(w, r, ws, git.NewRepo(s.Runner, name, ws.RepoDir(name)))
	}
}

// query serves a registered read-only query. The URL query string becomes
// its parameters, along with the named path values.
func (s *Server) query(name string, pathValues ...string) repoHandler {
	return func(w http.ResponseWriter, r *http.Request, _ *workspace.Workspace, repo *git.Repo) {
		params := url.Values{}
		for k, v := range r.URL.Query() {
			params[k] = v
		}
		for _, k := range pathValues {
			params.Set(k, r.PathValue(k))
		}

		out, err := git.Dispatch(r.Context(), repo, name, params)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
