package main

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"kotimer/internal/core/clock"
	"kotimer/internal/core/countdown"
	"kotimer/internal/core/model"
	"kotimer/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsListDefaults(t *testing.T) {
	out := &bytes.Buffer{}
	opts := PresetFileOptions{File: filepath.Join(t.TempDir(), "missing.yaml")}

	require.NoError(t, runPresetsList(opts, testGlobalOptions(nil, out)))

	output := out.String()
	assert.Contains(t, output, "Timer 1")
	assert.Contains(t, output, "Timer 4")
	assert.Contains(t, output, "05:00")
	assert.Contains(t, output, "10:00")
}

func TestPresetsResetWritesDefaults(t *testing.T) {
	out := &bytes.Buffer{}
	path := filepath.Join(t.TempDir(), "kotimer", "presets.yaml")
	custom := model.BoardConfig{
		Presets:       []model.Preset{{Name: "Tea", TimeLimit: 2 * time.Hour, Marks: []int{90}, Color: "#F92672"}},
		IdleStopAfter: time.Minute,
	}
	require.NoError(t, storage.SaveBoardFile(path, custom))

	opts := PresetFileOptions{File: path}
	require.NoError(t, runPresetsList(opts, testGlobalOptions(nil, out)))
	assert.Contains(t, out.String(), "Tea")
	assert.Contains(t, out.String(), "2:00:00")
	assert.Contains(t, out.String(), "01:30")

	out.Reset()
	require.NoError(t, runPresetsReset(opts, testGlobalOptions(nil, out)))
	assert.Contains(t, out.String(), path)

	loaded, err := storage.LoadBoardFile(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBoard(), loaded)
}

func TestBuildEntries(t *testing.T) {
	board := model.DefaultBoard()
	board.Presets[0].Marks = []int{1}
	fake := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	entries := buildEntries(board, fake, nil, logger)

	require.Len(t, entries, len(board.Presets))
	for i, entry := range entries {
		assert.Equal(t, board.Presets[i].Name, entry.Name)
		assert.Equal(t, countdown.StateIdle, entry.Timer.State())
		assert.Equal(t, board.Presets[i].Seconds(), entry.Timer.TimeLeft().Get())
	}
	assert.Zero(t, fake.Pending())
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "00:45", formatLimit(45))
	assert.Equal(t, "59:59", formatLimit(3599))
	assert.Equal(t, "1:02:05", formatLimit(3725))
	assert.Equal(t, "-", formatMarks(nil))
	assert.Equal(t, "00:30,01:00", formatMarks([]int{30, 60}))
}
