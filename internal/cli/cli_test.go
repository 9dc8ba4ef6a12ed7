package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubeengine"
	"github.com/SeamusWaldron/cubeengine/internal/scene"
	"github.com/SeamusWaldron/cubeengine/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		configPath, dbPath, metricsAddr, logLevel, verbose = "", "", "", "", false
		historyID, historyLast, historyLimit, sceneOutput = "", false, 20, ""
		simTick, simMaxTime, simQuiet = 16*time.Millisecond, time.Hour, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseSymbols(t *testing.T) {
	got := parseSymbols([]string{"wr", " k\t", "u i"})
	assert.Equal(t, []cubeengine.Symbol{"w", "r", "k", "u", "i"}, got)
}

func TestSimulate(t *testing.T) {
	eng, err := cubeengine.New(scene.NewStaticSource(scene.Rubik()))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, simulate(eng, parseSymbols([]string{"wrq"}), 16*time.Millisecond, time.Minute, false, &out))

	text := out.String()
	assert.Contains(t, text, "Moves:      2")
	assert.Contains(t, text, "Dropped:    1 unresolved, 0 empty layer")
	assert.Contains(t, text, "Solved:     yes")
	assert.Contains(t, text, "W W W")
}

func TestSimulate_GivesUp(t *testing.T) {
	eng, err := cubeengine.New(scene.NewStaticSource(scene.Rubik()))
	require.NoError(t, err)

	var out bytes.Buffer
	err = simulate(eng, parseSymbols([]string{"wwww"}), 10*time.Millisecond, 100*time.Millisecond, true, &out)
	assert.Error(t, err)
}

func TestSimulateCommand_Journals(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	out, err := execute(t, "simulate", "--db", db, "--quiet", "u", "j")
	require.NoError(t, err)
	assert.Contains(t, out, "Solved:     yes")

	out, err = execute(t, "history", "--db", db, "--last")
	require.NoError(t, err)
	assert.Contains(t, out, "Source:  simulate")
	assert.Contains(t, out, "Sequence: uj")
	assert.Contains(t, out, "+Z@-2")
}

func TestHistory_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	out, err := execute(t, "history", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions recorded")
}

func TestHistory_PrefixLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := storage.Open(path)
	require.NoError(t, err)
	id, err := storage.NewSessionRepository(db).Create("keyboard", "", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	out, err := execute(t, "history", "--db", path, "--id", id[:6])
	require.NoError(t, err)
	assert.Contains(t, out, "Session: "+id)

	_, err = execute(t, "history", "--db", path, "--id", "zzzz")
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestSceneExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubik.yaml")
	_, err := execute(t, "scene", "export", "-o", path)
	require.NoError(t, err)

	nodes, err := scene.Load(path)
	require.NoError(t, err)
	assert.Len(t, nodes, len(scene.Rubik()))

	out, err := execute(t, "scene", "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "27 cubies")
	assert.True(t, strings.Contains(out, "* Cube.000"))
}

func TestSimulateCommand_FromSceneFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "rubik.yaml")
	require.NoError(t, scene.Save(scenePath, scene.Rubik()))

	cfgPath := filepath.Join(dir, "cubeengine.yaml")
	require.NoError(t, writeFile(cfgPath, "scene:\n  path: "+scenePath+"\nmove:\n  duration: 50ms\n"))

	out, err := execute(t, "simulate", "--config", cfgPath, "--quiet", "w")
	require.NoError(t, err)
	assert.Contains(t, out, "Moves:      1")
	assert.Contains(t, out, "Solved:     no")
}

func TestLoadConfig_Invalid(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, writeFile(cfgPath, "move:\n  easing: wobble\n"))
	_, err := execute(t, "simulate", "--config", cfgPath, "w")
	assert.ErrorIs(t, err, cubeengine.ErrInvalidConfig)
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0644)
}
