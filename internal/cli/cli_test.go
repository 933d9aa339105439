package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/export"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// testEnv isolates one CLI test: its own config and data directories and a
// pinned clock.
type testEnv struct {
	t         *testing.T
	ConfigDir string
	DataDir   string
}

type result struct {
	Stdout string
	Stderr string
	Code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("PANTRY_LOG_LEVEL", "")
	t.Setenv("PANTRY_LOG_FORMAT", "")
	t.Setenv("PANTRY_DATA_DIR", "")
	t.Setenv("PANTRY_CONFIG_DIR", "")

	orig := now
	now = func() time.Time { return time.Date(2025, time.January, 1, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	return &testEnv{
		t:         t,
		ConfigDir: filepath.Join(root, "config"),
		DataDir:   filepath.Join(root, "data"),
	}
}

// run invokes the CLI in-process with the env's directories and stdin.
func (e *testEnv) runWithInput(stdin string, args ...string) result {
	e.t.Helper()
	full := append([]string{"--config-dir", e.ConfigDir, "--data-dir", e.DataDir}, args...)
	var stdout, stderr bytes.Buffer
	code := run(full, strings.NewReader(stdin), &stdout, &stderr)
	return result{Stdout: stdout.String(), Stderr: stderr.String(), Code: code}
}

func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	return e.runWithInput("", args...)
}

func (e *testEnv) mustRun(args ...string) result {
	e.t.Helper()
	res := e.run(args...)
	require.Equal(e.t, exitSuccess, res.Code, "pantry %v failed: %s", args, res.Stderr)
	return res
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("init")
	assert.Contains(t, res.Stdout, "loaded from empty")
	assert.FileExists(t, filepath.Join(env.DataDir, types.CSVFileName))
	assert.FileExists(t, filepath.Join(env.DataDir, types.JSONFileName))

	data, err := os.ReadFile(filepath.Join(env.ConfigDir, "config.yaml"))
	require.NoError(t, err)
	var cfg configFile
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, env.DataDir, cfg.DataDir)
	assert.Equal(t, types.LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, types.LogFormatText, cfg.LogFormat)

	env.mustRun("add", "dairy", "milk", "2", "L", "2025-01-10")
	res = env.mustRun("init")
	assert.Contains(t, res.Stdout, "loaded from csv", "init leaves existing files alone")
	res = env.mustRun("list")
	assert.Contains(t, res.Stdout, "milk")
}

func TestAddListRemove(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("add", "dairy", "milk", "2", "L", "2025-01-10")
	assert.Equal(t, "Added milk (2 L) to dairy.\n", res.Stdout)
	env.mustRun("add", "produce", "apple", "6", "pieces", "2024-12-30")

	res = env.mustRun("list")
	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "CATEGORY"))
	assert.Regexp(t, `^dairy\s+milk\s+2\s+L\s+2025-01-10\s+fresh$`, lines[1])
	assert.Regexp(t, `^produce\s+apple\s+6\s+pieces\s+2024-12-30\s+expired$`, lines[2])
	assert.Equal(t, "Total: 2 item(s)", lines[3])

	res = env.mustRun("remove", "MILK", "1")
	assert.Equal(t, "Removed 1 of 'milk'. 1 remaining.\n", res.Stdout)

	res = env.mustRun("remove", "milk", "all")
	assert.Equal(t, "Removed all of 'milk' successfully.\n", res.Stdout)

	res = env.mustRun("--json", "list")
	var groups []types.CategoryItems
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "produce", groups[0].Category)

	res = env.mustRun("categories")
	assert.Equal(t, "produce\n", res.Stdout, "emptied categories are not persisted")
}

func TestRemoveJSON(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "dairy", "milk", "2", "L", "2025-01-10")

	res := env.mustRun("remove", "milk", "5", "--json")
	var rr types.RemoveResult
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &rr))
	assert.Equal(t, types.RemoveResult{Name: "milk", Category: "dairy", Removed: 2, Deleted: true}, rr)
}

func TestEmptyList(t *testing.T) {
	env := newTestEnv(t)

	res := env.mustRun("list")
	assert.Equal(t, "Pantry is empty!\n", res.Stdout)

	res = env.mustRun("categories", "--json")
	assert.JSONEq(t, "[]", res.Stdout)

	res = env.mustRun("list", "--json")
	assert.JSONEq(t, "[]", res.Stdout)
}

func TestUserErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"negative quantity", []string{"add", "dairy", "milk", "-1", "L", "2025-01-10"}},
		{"non-integer quantity", []string{"add", "dairy", "milk", "two", "L", "2025-01-10"}},
		{"bad date", []string{"add", "dairy", "milk", "1", "L", "10/01/2025"}},
		{"missing args", []string{"add", "dairy", "milk"}},
		{"remove unknown item", []string{"remove", "bread", "1"}},
		{"remove zero", []string{"remove", "milk", "0"}},
		{"remove garbage amount", []string{"remove", "milk", "some"}},
		{"unknown flag", []string{"list", "--colour"}},
		{"unknown command", []string{"bogus"}},
		{"negative days", []string{"expiring", "--days", "-1"}},
		{"export without out", []string{"export"}},
		{"export unknown format", []string{"export", "--format", "ods", "--out", "x.ods"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.mustRun("add", "dairy", "milk", "2", "L", "2025-01-10")

			res := env.run(tt.args...)
			assert.Equal(t, exitUserError, res.Code, "stderr: %s", res.Stderr)
			assert.True(t, strings.HasPrefix(res.Stderr, "Error: "), "stderr: %s", res.Stderr)
		})
	}
}

func TestMalformedStoreIsSystemError(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.MkdirAll(env.DataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.DataDir, types.CSVFileName),
		[]byte("category,name,quantity,unit,expiry_date\ndairy,milk,-3,L,2025-01-10\n"), 0o644))

	res := env.run("list")
	assert.Equal(t, exitSysError, res.Code)
	assert.Contains(t, res.Stderr, "malformed record")
}

func TestExpiring(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "dry", "pasta", "1", "kg", "2026-01-01")
	env.mustRun("add", "dairy", "milk", "1", "L", "2025-01-05")
	env.mustRun("add", "dairy", "yogurt", "4", "cups", "2024-12-31")

	res := env.mustRun("expiring")
	lines := strings.Split(strings.TrimSpace(res.Stdout), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "yogurt")
	assert.Contains(t, lines[1], "expired")
	assert.Contains(t, lines[2], "milk")
	assert.Contains(t, lines[2], "warning")

	res = env.mustRun("expiring", "--days", "0", "--json")
	var items []types.Item
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "yogurt", items[0].Name)
	assert.Equal(t, "dairy", items[0].Category)
}

func TestExport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("add", "dairy", "milk", "2", "L", "2025-01-10")

	for _, format := range []string{export.FormatSQLite, export.FormatXLSX} {
		out := filepath.Join(t.TempDir(), "pantry."+format)
		res := env.mustRun("export", "--format", format, "--out", out)
		assert.Equal(t, fmt.Sprintf("Exported pantry to %s\n", out), res.Stdout)
		assert.FileExists(t, out)
	}
}

func TestMenuFromRoot(t *testing.T) {
	env := newTestEnv(t)

	res := env.runWithInput("1\n1\npantry staples\nrice\n5\nKG\n2026-03-01\n2\n4\n")
	require.Equal(t, exitSuccess, res.Code, res.Stderr)
	assert.Contains(t, res.Stdout, "Pantry staples\n")
	assert.Contains(t, res.Stdout, "rice (5 kg) - Category: pantry staples - Expires: 01-03-2026")

	res = env.mustRun("--json", "list")
	assert.Contains(t, res.Stdout, `"unit": "kg"`)
}

func TestMenuSubcommandSavesOnEOF(t *testing.T) {
	env := newTestEnv(t)

	res := env.runWithInput("", "menu")
	require.Equal(t, exitSuccess, res.Code, res.Stderr)
	assert.FileExists(t, filepath.Join(env.DataDir, types.CSVFileName))
}

func TestConfigDataDir(t *testing.T) {
	env := newTestEnv(t)
	dataDir := filepath.Join(t.TempDir(), "from-config")
	require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"),
		[]byte("data_dir: "+dataDir+"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config-dir", env.ConfigDir, "add", "dry", "rice", "1", "kg", "2026-01-01"},
		strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, exitSuccess, code, stderr.String())
	assert.FileExists(t, filepath.Join(dataDir, types.CSVFileName))
}

func TestLogSettings(t *testing.T) {
	t.Run("env override enables debug logs on stderr", func(t *testing.T) {
		env := newTestEnv(t)
		t.Setenv("PANTRY_LOG_LEVEL", "debug")

		res := env.mustRun("list")
		assert.Contains(t, res.Stderr, "pantry loaded")
		assert.Equal(t, "Pantry is empty!\n", res.Stdout, "logs stay off stdout")
	})

	t.Run("unknown level in config.yaml", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, os.MkdirAll(env.ConfigDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(env.ConfigDir, "config.yaml"),
			[]byte("log_level: chatty\n"), 0o644))

		res := env.run("list")
		assert.Equal(t, exitUserError, res.Code)
		assert.Contains(t, res.Stderr, "unknown log level")
	})
}

func TestVersion(t *testing.T) {
	var stdout bytes.Buffer
	code := run([]string{"version"}, strings.NewReader(""), &stdout, &bytes.Buffer{})
	require.Equal(t, exitSuccess, code)
	assert.Equal(t, "pantry v0.1.0\nmodule: github.com/mesh-intelligence/pantry\n", stdout.String())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("wrapped: %w", types.ErrNotFound)))
	assert.Equal(t, exitUserError, exitCode(fmt.Errorf("x: %w", export.ErrUnknownFormat)))
	assert.Equal(t, exitSysError, exitCode(fmt.Errorf("x: %w", types.ErrFormat)))
	assert.Equal(t, exitSysError, exitCode(errors.New("disk full")))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, loadDotEnv(filepath.Join(dir, ".env")), "missing file is fine")

	t.Setenv("PANTRY_LOG_FORMAT", "text")
	t.Setenv("PANTRY_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("PANTRY_LOG_LEVEL"))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("PANTRY_LOG_LEVEL=debug\nPANTRY_LOG_FORMAT=json\n"), 0o644))
	require.NoError(t, loadDotEnv(path))

	assert.Equal(t, "debug", os.Getenv("PANTRY_LOG_LEVEL"))
	assert.Equal(t, "text", os.Getenv("PANTRY_LOG_FORMAT"), "existing variables win")
}
