package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/kurobon/gitrest/internal/config"
	"github.com/kurobon/gitrest/internal/git"
	_ "github.com/kurobon/gitrest/internal/git/commands" // Register queries
	"github.com/kurobon/gitrest/internal/workspace"
)

type Server struct {
	Config     *config.Config
	Workspaces *workspace.Manager
	Runner     git.Runner
	Mux        *http.ServeMux
}

func NewServer(cfg *config.Config, wm *workspace.Manager, runner git.Runner) *Server {
	s := &Server{
		Config:     cfg,
		Workspaces: wm,
		Runner:     runner,
		Mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	p := s.Config.Prefix
	handle := func(pattern string, h http.HandlerFunc) {
		method, path, _ := strings.Cut(pattern, " ")
		s.Mux.HandleFunc(method+" "+p+path, h)
	}

	handle("GET /ping", s.handlePing)
	handle("GET /queries", s.handleListQueries)

	handle("GET /{$}", s.handleListRepos)
	handle("GET /workspace", s.handleWorkspaceInfo)
	handle("POST /init", s.handleInitRepo)
	handle("POST /clone", s.handleClone)
	handle("DELETE /repo/{repo}", s.withRepo(s.handleDeleteRepo))

	handle("GET /repo/{repo}/remote", s.withRepo(s.query("remote")))
	handle("POST /repo/{repo}/remote", s.withRepo(s.handleAddRemote))
	handle("DELETE /repo/{repo}/remote", s.withRepo(s.handleRemoveRemote))
	handle("GET /repo/{repo}/branch", s.withRepo(s.query("branch")))
	handle("POST /repo/{repo}/branch", s.withRepo(s.handleCreateBranch))
	handle("POST /repo/{repo}/checkout", s.withRepo(s.handleCheckout))
	handle("POST /repo/{repo}/mv", s.withRepo(s.handleMove))

	handle("GET /repo/{repo}/show/{path...}", s.withRepo(s.handleShowFile))
	handle("GET /repo/{repo}/ls-tree/{path...}", s.withRepo(s.query("ls-tree", "path")))
	handle("GET /repo/{repo}/commit/{commit}", s.withRepo(s.handleCommitShow))
	handle("GET /repo/{repo}/log", s.withRepo(s.query("log")))
	handle("GET /repo/{repo}/reflog", s.withRepo(s.query("reflog")))
	handle("POST /repo/{repo}/commit", s.withRepo(s.handleCommit))
	handle("POST /repo/{repo}/push", s.withRepo(s.handlePush))

	handle("GET /repo/{repo}/tree/{path...}", s.withRepo(s.handleGetTree))
	handle("PUT /repo/{repo}/tree/{path...}", s.withRepo(s.handlePutTree))
	handle("DELETE /repo/{repo}/tree/{path...}", s.withRepo(s.handleDeleteTree))

	handle("GET /repo/{repo}/status", s.withRepo(s.query("status")))
	handle("GET /repo/{repo}/diff", s.withRepo(s.query("diff")))
	handle("GET /repo/{repo}/tag", s.withRepo(s.query("tag")))
	handle("GET /repo/{repo}/config", s.withRepo(s.query("config")))
	handle("GET /repo/{repo}/ls-remote", s.withRepo(s.query("ls-remote")))
	handle("GET /repo/{repo}/stash", s.withRepo(s.query("stash")))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.Mux.ServeHTTP(rec, r)
	log.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
}

// statusRecorder remembers the status code for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "pong",
		"system":  "gitrest",
	})
}

type queryInfo struct {
	Name string `json:"name"`
	Help string `json:"help"`
}

func (s *Server) handleListQueries(w http.ResponseWriter, r *http.Request) {
	infos := []queryInfo{}
	for _, name := range git.SupportedQueries() {
		help, _ := git.QueryHelp(name)
		infos = append(infos, queryInfo{Name: name, Help: help})
	}
	writeJSON(w, http.StatusOK, infos)
}
