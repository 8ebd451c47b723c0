package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obsidian-cli/internal/config"
	"obsidian-cli/internal/editor"
	"obsidian-cli/internal/vault"
)

type recordingEditor struct {
	command string
	paths   []string
	edit    func(path string) error
}

func (r *recordingEditor) Edit(path string) error {
	r.paths = append(r.paths, path)
	if r.edit != nil {
		return r.edit(path)
	}
	return nil
}

type harness struct {
	t      *testing.T
	root   string
	app    *app
	editor *recordingEditor
	answer bool
	asked  []string
	piped  bool
}

func newHarness(t *testing.T, files map[string]string) *harness {
	t.Helper()
	for _, key := range []string{"OBSIDIAN_VAULT", "OBSIDIAN_CONFIG", "OBSIDIAN_BLACKLIST", "OBSIDIAN_VERBOSE", "DEBUG"} {
		t.Setenv(key, "")
	}

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".obsidian"), 0o755))
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	h := &harness{t: t, root: root, editor: &recordingEditor{}}
	h.app = newApp()
	h.app.newEditor = func(command string) editor.Runner {
		h.editor.command = command
		return h.editor
	}
	h.app.confirm = func(question string, _ io.Reader, _ io.Writer) (bool, error) {
		h.asked = append(h.asked, question)
		return h.answer, nil
	}
	h.app.stdinPiped = func(io.Reader) bool { return h.piped }
	return h
}

func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	cmd := newRootCommand(h.app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--vault", h.root}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) read(rel string) string {
	h.t.Helper()
	data, err := os.ReadFile(filepath.Join(h.root, filepath.FromSlash(rel)))
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) readAbs(path string) string {
	h.t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(h.t, err)
	return string(data)
}

func TestVersion(t *testing.T) {
	h := newHarness(t, nil)
	cmd := newRootCommand(h.app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "obsidian-cli dev\n", out.String())
}

func TestMissingVault(t *testing.T) {
	h := newHarness(t, nil)
	cmd := newRootCommand(h.app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--vault", filepath.Join(h.root, "nope"), "ls"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, vault.ExitFailure, vault.ExitCode(err))
}

func TestNotAVault(t *testing.T) {
	h := newHarness(t, nil)
	plain := t.TempDir()
	cmd := newRootCommand(h.app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--vault", plain, "ls"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".obsidian")
}

func TestCat(t *testing.T) {
	h := newHarness(t, map[string]string{
		"note.md": "---\ntitle: note\n---\n# Heading\n\nBody text\n",
	})

	out, _, err := h.run("", "cat", "note")
	require.NoError(t, err)
	assert.Equal(t, "# Heading\n\nBody text\n", out)

	out, _, err = h.run("", "cat", "-s", "note.md")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: note\n---\n# Heading\n\nBody text\n", out)

	_, _, err = h.run("", "cat", "missing")
	require.Error(t, err)
	assert.Equal(t, vault.ExitNotFound, vault.ExitCode(err))
}

func TestCatRender(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "notty")
	h := newHarness(t, map[string]string{"note.md": "# Heading\n\nBody text\n"})

	out, _, err := h.run("", "cat", "--render", "note")
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "Body text")
}

func TestNewFromStdin(t *testing.T) {
	h := newHarness(t, nil)
	h.piped = true

	_, _, err := h.run("  piped body  \n", "new", "Inbox/todo")
	require.NoError(t, err)

	content := h.read("Inbox/todo.md")
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "title: todo")
	assert.True(t, strings.HasSuffix(content, "piped body\n"))
	assert.Empty(t, h.editor.paths, "piped input must not open the editor")

	_, _, err = h.run("again", "new", "Inbox/todo")
	require.Error(t, err)
	assert.Equal(t, vault.ExitNoteExists, vault.ExitCode(err))

	_, _, err = h.run("replaced", "new", "--force", "Inbox/todo")
	require.NoError(t, err)
	assert.Contains(t, h.read("Inbox/todo.md"), "replaced\n")
}

func TestNewOpensEditor(t *testing.T) {
	h := newHarness(t, nil)

	_, _, err := h.run("", "--editor", "nvim", "new", "idea")
	require.NoError(t, err)

	require.Len(t, h.editor.paths, 1)
	assert.Equal(t, filepath.Join(h.root, "idea.md"), h.editor.paths[0])
	assert.Equal(t, "nvim", h.editor.command)
	assert.Contains(t, h.read("idea.md"), "# idea\n")
}

func TestEditTouchesModified(t *testing.T) {
	h := newHarness(t, map[string]string{
		"note.md":  "---\nmodified: 2020-01-01T00:00:00Z\n---\nbody\n",
		"plain.md": "no frontmatter\n",
	})

	_, _, err := h.run("", "edit", "note")
	require.NoError(t, err)
	require.Len(t, h.editor.paths, 1)
	assert.NotContains(t, h.read("note.md"), "2020-01-01")

	_, _, err = h.run("", "edit", "plain")
	require.NoError(t, err)
	assert.Equal(t, "no frontmatter\n", h.read("plain.md"))
}

func TestFind(t *testing.T) {
	h := newHarness(t, map[string]string{
		"Daily/meeting.md": "# Meeting\n",
		"ideas.md":         "# Ideas\n",
	})

	out, _, err := h.run("", "find", "meet")
	require.NoError(t, err)
	assert.Equal(t, "Daily/meeting.md\n", out)

	out, errOut, err := h.run("", "find", "--exact", "meet")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No files found matching 'meet'")
}

func TestLs(t *testing.T) {
	h := newHarness(t, map[string]string{
		"b.md":               "---\nmodified: 2025-03-14T09:26:53Z\n---\n",
		"a/c.md":             "",
		"Assets/hidden.md":   "",
		"attachment.png":     "",
		".obsidian/app.json": "{}",
	})

	out, _, err := h.run("", "ls")
	require.NoError(t, err)
	assert.Equal(t, "a/c.md\nb.md\n", out)

	out, _, err = h.run("", "ls", "--date")
	require.NoError(t, err)
	assert.Contains(t, out, "b.md    2025-03-14 09:26")
}

func TestInfo(t *testing.T) {
	h := newHarness(t, map[string]string{"a.md": "# A\n"})

	out, _, err := h.run("", "info")
	require.NoError(t, err)
	assert.Contains(t, out, "Obsidian Vault Information")
	assert.Contains(t, out, h.root)
}

func TestMeta(t *testing.T) {
	h := newHarness(t, map[string]string{
		"note.md":  "---\ntitle: Note\ntags: [a, b]\n---\nbody\n",
		"plain.md": "body\n",
	})

	out, _, err := h.run("", "meta", "note")
	require.NoError(t, err)
	assert.Equal(t, "tags: [a, b]\ntitle: Note\n", out)

	out, _, err = h.run("", "frontmatter", "note", "title")
	require.NoError(t, err)
	assert.Equal(t, "title: Note\n", out)

	_, _, err = h.run("", "meta", "note", "missing")
	require.Error(t, err)
	assert.Equal(t, vault.ExitKeyNotFound, vault.ExitCode(err))

	_, _, err = h.run("", "meta", "note", "count", "42")
	require.NoError(t, err)
	out, _, err = h.run("", "meta", "note", "count")
	require.NoError(t, err)
	assert.Equal(t, "count: 42\n", out)
	assert.Contains(t, h.read("note.md"), "count: 42\n")

	_, errOut, err := h.run("", "meta", "plain")
	require.NoError(t, err)
	assert.Contains(t, errOut, "No frontmatter metadata found")
}

func TestMetaFlags(t *testing.T) {
	h := newHarness(t, map[string]string{"note.md": "---\ntitle: Note\n---\nbody\n"})

	out, _, err := h.run("", "meta", "note", "-k", "title")
	require.NoError(t, err)
	assert.Equal(t, "title: Note\n", out)

	_, _, err = h.run("", "meta", "note", "--key", "tags", "--value", "[work, q3]")
	require.NoError(t, err)
	out, _, err = h.run("", "meta", "note", "--key", "tags")
	require.NoError(t, err)
	assert.Equal(t, "tags: [work, q3]\n", out)

	_, _, err = h.run("", "meta", "note", "--key", "ghost")
	assert.Equal(t, vault.ExitKeyNotFound, vault.ExitCode(err))

	_, _, err = h.run("", "meta", "note", "--value", "x")
	require.Error(t, err)
	assert.Equal(t, vault.ExitInvalidArguments, vault.ExitCode(err))

	_, _, err = h.run("", "meta", "note", "title", "--key", "tags")
	require.Error(t, err)
	assert.Equal(t, vault.ExitInvalidArguments, vault.ExitCode(err))
}

func TestQuery(t *testing.T) {
	h := newHarness(t, map[string]string{
		"draft.md":         "---\ntitle: Draft Plan\nstatus: draft\ntags: [work]\n---\n",
		"done.md":          "---\nstatus: done\ntags: [work, home]\n---\n",
		"plain.md":         "no frontmatter\n",
		"Assets/hidden.md": "---\nstatus: draft\n---\n",
	})

	out, _, err := h.run("", "query", "status")
	require.NoError(t, err)
	assert.Equal(t, "done.md\ndraft.md\n", out)

	out, _, err = h.run("", "query", "status", "--value", "draft", "--style", "title")
	require.NoError(t, err)
	assert.Equal(t, "draft.md: Draft Plan\n", out)

	out, _, err = h.run("", "query", "tags", "--contains", "ho")
	require.NoError(t, err)
	assert.Equal(t, "done.md\n", out)

	out, _, err = h.run("", "query", "status", "--missing", "--count")
	require.NoError(t, err)
	assert.Equal(t, "Found 1 matching files\n", out)

	out, _, err = h.run("", "query", "tags", "--value", "work", "-s", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"path": "done.md"`)
	assert.Contains(t, out, `"path": "draft.md"`)

	out, _, err = h.run("", "query", "status", "-s", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Total matches: 2")

	out, errOut, err := h.run("", "query", "owner")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "No matching files found")

	_, _, err = h.run("", "query", "status", "--value", "a", "--contains", "b")
	require.Error(t, err)

	_, _, err = h.run("", "query", "status", "--style", "yaml")
	require.Error(t, err)
	assert.Equal(t, vault.ExitInvalidArguments, vault.ExitCode(err))
}

func TestRename(t *testing.T) {
	h := newHarness(t, map[string]string{
		"Plan.md":  "# Plan\n",
		"index.md": "[[Plan]] and [[Plan#Goals|goals]]\n",
	})

	out, _, err := h.run("", "rename", "Plan", "Roadmap", "--link")
	require.NoError(t, err)
	assert.Contains(t, out, "Renamed: Plan.md -> Roadmap.md")
	assert.Contains(t, out, "Updated 2 link(s) in index.md")
	assert.Contains(t, out, "Updated 2 wiki link(s) across 1 file(s)")
	assert.Equal(t, "[[Roadmap]] and [[Roadmap#Goals|goals]]\n", h.read("index.md"))
	assert.Equal(t, "# Plan\n", h.read("Roadmap.md"))

	out, _, err = h.run("", "rename", "Roadmap", "Archive/Roadmap", "-l")
	require.NoError(t, err)
	assert.Contains(t, out, "No wiki links to update for 'Roadmap'")
	assert.FileExists(t, filepath.Join(h.root, "Archive", "Roadmap.md"))

	_, _, err = h.run("", "rename", "index", "Archive/Roadmap")
	require.Error(t, err)
	assert.Equal(t, vault.ExitNoteExists, vault.ExitCode(err))

	_, _, err = h.run("", "rename", "ghost", "other")
	assert.Equal(t, vault.ExitNotFound, vault.ExitCode(err))
}

func TestConfigInitAndShow(t *testing.T) {
	h := newHarness(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.yaml")

	out, _, err := h.run("", "--editor", "nvim", "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, h.root, cfg.Vault)
	assert.Equal(t, "nvim", cfg.Editor)

	_, _, err = h.run("", "config", "init", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = h.run("", "--editor", "hx", "config", "init", "--path", path, "--force")
	require.NoError(t, err)
	cfg, err = config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "hx", cfg.Editor)

	tomlPath := filepath.Join(dir, "obsidian-cli.toml")
	_, _, err = h.run("", "config", "init", "--path", tomlPath)
	require.NoError(t, err)
	assert.Contains(t, h.readAbs(tomlPath), "vault = ")

	out, _, err = h.run("", "--blacklist", "Templates/:*.canvas", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "vault: "+h.root+"\n")
	assert.Contains(t, out, "- Templates/\n")
	assert.Contains(t, out, "*.canvas")
}

func TestAddUID(t *testing.T) {
	h := newHarness(t, map[string]string{"note.md": "---\ntitle: Note\n---\nbody\n"})

	_, _, err := h.run("", "add-uid", "note")
	require.NoError(t, err)
	assert.Contains(t, h.read("note.md"), "uid: ")

	_, _, err = h.run("", "add-uid", "note")
	require.Error(t, err)
	assert.Equal(t, vault.ExitKeyExists, vault.ExitCode(err))

	_, _, err = h.run("", "add-uid", "-f", "note")
	require.NoError(t, err)
}

func TestRm(t *testing.T) {
	h := newHarness(t, map[string]string{"keep.md": "", "drop.md": ""})

	out, _, err := h.run("", "rm", "keep")
	require.NoError(t, err)
	assert.Equal(t, "Operation cancelled.\n", out)
	assert.Equal(t, []string{"Are you sure you want to delete 'keep.md'?"}, h.asked)
	assert.FileExists(t, filepath.Join(h.root, "keep.md"))

	h.answer = true
	_, _, err = h.run("", "rm", "keep")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(h.root, "keep.md"))

	_, _, err = h.run("", "rm", "--force", "drop")
	require.NoError(t, err)
	assert.Len(t, h.asked, 2)
	assert.NoFileExists(t, filepath.Join(h.root, "drop.md"))

	_, _, err = h.run("", "rm", "-f", "drop")
	assert.Equal(t, vault.ExitNotFound, vault.ExitCode(err))
}

func TestJournal(t *testing.T) {
	h := newHarness(t, nil)

	_, _, err := h.run("", "journal", "--date", "2024-02-05")
	require.NoError(t, err)

	want := filepath.Join(h.root, "Calendar", "2024", "02", "2024-02-05.md")
	require.Len(t, h.editor.paths, 1)
	assert.Equal(t, want, h.editor.paths[0])
	assert.Contains(t, h.read("Calendar/2024/02/2024-02-05.md"), "# 2024-02-05\n")

	_, _, err = h.run("", "journal", "--date", "05/02/2024")
	require.Error(t, err)
	assert.Equal(t, vault.ExitInvalidArguments, vault.ExitCode(err))
}

func TestServe(t *testing.T) {
	h := newHarness(t, map[string]string{"hello.md": "hello world\n"})

	stdin := `{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n" +
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_note_content","arguments":{"filename":"hello"}}}` + "\n"

	out, _, err := h.run(stdin, "serve")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"protocolVersion":"2024-11-05"`)
	assert.Contains(t, lines[1], `"text":"hello world\n"`)
}
