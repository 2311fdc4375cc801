package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T) (*Manager, *Workspace) {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	ws, err := m.Resolve("")
	require.NoError(t, err)
	return m, ws
}

func TestManager_Resolve(t *testing.T) {
	root := t.TempDir()
	m, err := NewManager(root)
	require.NoError(t, err)

	ws, err := m.Resolve("")
	require.NoError(t, err)
	_, err = uuid.Parse(ws.ID)
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, ws.ID))

	again, err := m.Resolve(ws.ID)
	require.NoError(t, err)
	assert.Same(t, ws, again)

	other, err := m.Resolve("not-a-uuid")
	require.NoError(t, err)
	assert.NotEqual(t, ws.ID, other.ID)
	assert.NotEqual(t, "not-a-uuid", other.ID)

	unknown := uuid.NewString()
	fresh, err := m.Resolve(unknown)
	require.NoError(t, err)
	assert.NotEqual(t, unknown, fresh.ID)
}

func TestManager_ReopensExistingWorkspace(t *testing.T) {
	root := t.TempDir()
	first, err := NewManager(root)
	require.NoError(t, err)
	ws, err := first.Resolve("")
	require.NoError(t, err)
	require.NoError(t, ws.InitRepo("kept", InitOptions{}))

	second, err := NewManager(root)
	require.NoError(t, err)
	reopened, err := second.Resolve(ws.ID)
	require.NoError(t, err)
	assert.Equal(t, ws.ID, reopened.ID)
	assert.True(t, reopened.HasRepo("kept"))
}

func TestManager_ConcurrentResolve(t *testing.T) {
	m, ws := newWorkspace(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Resolve(ws.ID)
			assert.NoError(t, err)
			assert.Same(t, ws, got)
		}()
	}
	wg.Wait()
}

func TestWorkspace_InitRepo(t *testing.T) {
	_, ws := newWorkspace(t)

	require.NoError(t, ws.InitRepo("plain", InitOptions{DefaultBranch: "main"}))
	require.NoError(t, ws.InitRepo("bare.git", InitOptions{Bare: true, Shared: true}))

	repos, err := ws.ListRepos()
	require.NoError(t, err)
	assert.Equal(t, []string{"bare.git", "plain"}, repos)

	r, err := gogit.PlainOpen(ws.RepoDir("plain"))
	require.NoError(t, err)
	head, err := r.Storer.Reference(plumbing.HEAD)
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("main"), head.Target())

	bare, err := gogit.PlainOpen(ws.RepoDir("bare.git"))
	require.NoError(t, err)
	cfg, err := bare.Config()
	require.NoError(t, err)
	assert.True(t, cfg.Core.IsBare)
	assert.Equal(t, "true", cfg.Raw.Section("core").Option("sharedRepository"))

	assert.ErrorIs(t, ws.InitRepo("plain", InitOptions{}), ErrRepoExists)
	assert.ErrorIs(t, ws.InitRepo("../escape", InitOptions{}), ErrInvalidName)
}

func TestWorkspace_RemoveRepo(t *testing.T) {
	_, ws := newWorkspace(t)
	require.NoError(t, ws.InitRepo("demo", InitOptions{}))

	require.NoError(t, ws.RemoveRepo("demo"))
	assert.False(t, ws.HasRepo("demo"))
	assert.NoDirExists(t, ws.RepoDir("demo"))
	assert.ErrorIs(t, ws.RemoveRepo("demo"), ErrRepoNotFound)
}

func TestWorkspace_Files(t *testing.T) {
	_, ws := newWorkspace(t)
	require.NoError(t, ws.InitRepo("demo", InitOptions{}))

	require.NoError(t, ws.WriteFile("demo", "docs/guide/intro.md", strings.NewReader("# intro\n")))
	require.NoError(t, ws.WriteFile("demo", "README.md", strings.NewReader("v1")))
	require.NoError(t, ws.WriteFile("demo", "/README.md", strings.NewReader("v2")))

	data, err := ws.ReadFile("demo", "README.md")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	onDisk, err := os.ReadFile(filepath.Join(ws.RepoDir("demo"), "docs", "guide", "intro.md"))
	require.NoError(t, err)
	assert.Equal(t, "# intro\n", string(onDisk))

	fi, err := ws.Stat("demo", "docs")
	require.NoError(t, err)
	assert.True(t, fi.IsDir())

	_, err = ws.Stat("demo", "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ws.ReadFile("demo", "missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = ws.ReadFile("nope", "README.md")
	assert.ErrorIs(t, err, ErrRepoNotFound)

	assert.ErrorIs(t, ws.WriteFile("demo", "docs", strings.NewReader("x")), ErrNotRegularFile)
	assert.ErrorIs(t, ws.WriteFile("demo", ".git/config", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, ws.WriteFile("demo", "", strings.NewReader("x")), ErrInvalidPath)
}

func TestWorkspace_PathsStayInsideRepo(t *testing.T) {
	_, ws := newWorkspace(t)
	require.NoError(t, ws.InitRepo("demo", InitOptions{}))
	require.NoError(t, ws.InitRepo("other", InitOptions{}))

	require.NoError(t, ws.WriteFile("demo", "../other/planted.txt", strings.NewReader("x")))
	assert.FileExists(t, filepath.Join(ws.RepoDir("demo"), "other", "planted.txt"))
	assert.NoFileExists(t, filepath.Join(ws.RepoDir("other"), "planted.txt"))
}

func TestWorkspace_SymlinksDoNotEscape(t *testing.T) {
	_, ws := newWorkspace(t)
	require.NoError(t, ws.InitRepo("demo", InitOptions{}))

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret"), []byte("hunter2"), 0644))
	require.NoError(t, os.Symlink(outside, filepath.Join(ws.RepoDir("demo"), "link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret"), filepath.Join(ws.RepoDir("demo"), "secret.txt")))
	require.NoError(t, os.Symlink(outside, ws.RepoDir("alias")))

	_, err := ws.ReadFile("demo", "link/secret")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ws.ReadFile("demo", "secret.txt")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ws.Stat("demo", "link")
	assert.ErrorIs(t, err, ErrInvalidPath)
	_, err = ws.ListTree("demo", "link")
	assert.ErrorIs(t, err, ErrInvalidPath)

	assert.ErrorIs(t, ws.WriteFile("demo", "link/planted.txt", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, ws.WriteFile("demo", "secret.txt", strings.NewReader("x")), ErrInvalidPath)
	assert.NoFileExists(t, filepath.Join(outside, "planted.txt"))
	data, err := os.ReadFile(filepath.Join(outside, "secret"))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", string(data))

	assert.False(t, ws.HasRepo("alias"))
	_, err = ws.ReadFile("alias", "secret")
	assert.ErrorIs(t, err, ErrRepoNotFound)

	// The filesystem itself keeps links inside the workspace.
	_, err = ws.Filesystem.Open("demo/link/secret")
	assert.Error(t, err)
}

func TestWorkspace_ListTree(t *testing.T) {
	_, ws := newWorkspace(t)
	require.NoError(t, ws.InitRepo("demo", InitOptions{}))
	for _, p := range []string{"b.txt", "a/x.go", "a/sub/y.go", "c/z.md"} {
		require.NoError(t, ws.WriteFile("demo", p, strings.NewReader(p)))
	}

	tree, err := ws.ListTree("demo", "")
	require.NoError(t, err)
	assert.Equal(t, []*Node{
		{Name: "a", Type: NodeDir, Contents: []*Node{
			{Name: "sub", Type: NodeDir, Contents: []*Node{
				{Name: "y.go", Type: NodeFile},
			}},
			{Name: "x.go", Type: NodeFile},
		}},
		{Name: "c", Type: NodeDir, Contents: []*Node{
			{Name: "z.md", Type: NodeFile},
		}},
		{Name: "b.txt", Type: NodeFile},
	}, tree)

	sub, err := ws.ListTree("demo", "a/sub")
	require.NoError(t, err)
	assert.Equal(t, []*Node{{Name: "y.go", Type: NodeFile}}, sub)

	_, err = ws.ListTree("demo", "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"repo", "my-repo_1.git", "A.B"} {
		assert.NoError(t, ValidName(name), name)
	}
	for _, name := range []string{"", ".", "..", "a/b", "a b", "ré"} {
		assert.ErrorIs(t, ValidName(name), ErrInvalidName, name)
	}
}

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		remote   string
		expected string
	}{
		{"https://github.com/user/project.git", "project"},
		{"https://github.com/user/project", "project"},
		{"git@github.com:user/project.git", "project"},
		{"ssh://git@example.com:2222/team/tool.git", "tool"},
		{"/srv/repos/project/", "project"},
		{"file:///srv/repos/lib.git", "lib"},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			name, err := RepoNameFromURL(tt.remote)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}

	_, err := RepoNameFromURL("https://example.com/")
	assert.ErrorIs(t, err, ErrInvalidName)
}
