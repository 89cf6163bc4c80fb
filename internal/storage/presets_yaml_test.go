package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kotimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBoardFileMissingReturnsDefaults(t *testing.T) {
	board, err := LoadBoardFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, model.DefaultBoard(), board)
}

func TestSaveAndLoadBoardFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", presetsFileName)
	board := model.BoardConfig{
		Presets: []model.Preset{
			{Name: "Tea", TimeLimit: 3 * time.Minute, Wait: true, Marks: []int{60, 120}, Color: "#F92672"},
			{Name: "Plank", TimeLimit: 45 * time.Second, Color: "#70C72E"},
		},
		IdleStopEnabled: true,
		IdleStopAfter:   2 * time.Minute,
	}

	require.NoError(t, SaveBoardFile(path, board))
	loaded, err := LoadBoardFile(path)

	require.NoError(t, err)
	assert.Equal(t, board, loaded)
}

func TestLoadBoardFileNormalizesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), presetsFileName)
	content := `
timers:
  - seconds: 0
    marks: [-1, 0, 5]
  - name: Eggs
    seconds: 420
idle_stop_enabled: false
idle_stop_minutes: 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	board, err := LoadBoardFile(path)
	require.NoError(t, err)

	require.Len(t, board.Presets, 2)
	first := board.Presets[0]
	assert.Equal(t, "Timer 1", first.Name)
	assert.Equal(t, model.DefaultTimeLimit, first.TimeLimit)
	assert.Equal(t, []int{5}, first.Marks)
	assert.Equal(t, model.Palette[0], first.Color)

	second := board.Presets[1]
	assert.Equal(t, "Eggs", second.Name)
	assert.Equal(t, 7*time.Minute, second.TimeLimit)
	assert.Equal(t, model.Palette[1], second.Color)
	assert.Equal(t, 5*time.Minute, board.IdleStopAfter)
}

func TestLoadBoardFileInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), presetsFileName)
	require.NoError(t, os.WriteFile(path, []byte("timers: [oops"), 0o644))

	board, err := LoadBoardFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse presets yaml")
	assert.Equal(t, model.DefaultBoard(), board)
}

func TestResolvePath(t *testing.T) {
	path, err := ResolvePath("kotimer")
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, presetsFileName, filepath.Base(path))
	assert.Equal(t, "kotimer", filepath.Base(filepath.Dir(path)))
}
