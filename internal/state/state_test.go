package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_MissingIsEmpty(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Equal(t, AppState{}, f.State())
}

func TestFile_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	f, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, f.SetLastDevice("AA:BB", "GoCube_1A2B"))
	require.NoError(t, f.SetLastSession("c0ffee"))

	g, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, AppState{LastDeviceAddr: "AA:BB", LastDeviceName: "GoCube_1A2B", LastSessionID: "c0ffee"}, g.State())
}

func TestFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestFile_Preferred(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, f.Preferred([]string{"X", "Y"}))

	require.NoError(t, f.SetLastDevice("Y", "GoCube"))
	assert.Equal(t, 1, f.Preferred([]string{"X", "Y"}))
	assert.Equal(t, 0, f.Preferred([]string{"Z"}))
}
