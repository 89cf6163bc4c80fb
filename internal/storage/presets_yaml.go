package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"kotimer/internal/core/model"

	"gopkg.in/yaml.v3"
)

const presetsFileName = "presets.yaml"

type yamlPreset struct {
	Name    string `yaml:"name"`
	Seconds int    `yaml:"seconds"`
	Wait    bool   `yaml:"wait"`
	Marks   []int  `yaml:"marks,omitempty"`
	Color   string `yaml:"color,omitempty"`
}

type yamlBoard struct {
	Timers          []yamlPreset `yaml:"timers"`
	IdleStopEnabled bool         `yaml:"idle_stop_enabled"`
	IdleStopMinutes int          `yaml:"idle_stop_minutes"`
}

// LoadBoard reads the timer presets of appName from YAML.
// If the file does not exist, the default board is returned.
func LoadBoard(appName string) (model.BoardConfig, error) {
	configPath, err := ResolvePath(appName)
	if err != nil {
		return model.DefaultBoard(), err
	}
	return LoadBoardFile(configPath)
}

// SaveBoard writes the timer presets of appName to YAML.
func SaveBoard(appName string, board model.BoardConfig) error {
	configPath, err := ResolvePath(appName)
	if err != nil {
		return err
	}
	return SaveBoardFile(configPath, board)
}

// LoadBoardFile reads presets from configPath.
func LoadBoardFile(configPath string) (model.BoardConfig, error) {
	board := model.DefaultBoard()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return board, nil
		}
		return board, fmt.Errorf("read presets file: %w", err)
	}

	var fileData yamlBoard
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return board, fmt.Errorf("parse presets yaml: %w", err)
	}

	applyYamlBoard(&board, fileData)
	return board, nil
}

// SaveBoardFile writes presets to configPath, creating its directory.
func SaveBoardFile(configPath string, board model.BoardConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlBoard{
		IdleStopEnabled: board.IdleStopEnabled,
		IdleStopMinutes: int(board.IdleStopAfter / time.Minute),
	}
	for _, preset := range board.Presets {
		fileData.Timers = append(fileData.Timers, yamlPreset{
			Name:    preset.Name,
			Seconds: preset.Seconds(),
			Wait:    preset.Wait,
			Marks:   preset.Marks,
			Color:   preset.Color,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal presets yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write presets file: %w", err)
	}

	return nil
}

// ResolvePath returns the presets file location for appName.
func ResolvePath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, presetsFileName), nil
}

func applyYamlBoard(board *model.BoardConfig, fileData yamlBoard) {
	if len(fileData.Timers) > 0 {
		presets := make([]model.Preset, 0, len(fileData.Timers))
		for i, entry := range fileData.Timers {
			presets = append(presets, presetFromYaml(i, entry))
		}
		board.Presets = presets
	}

	if fileData.IdleStopMinutes > 0 {
		board.IdleStopAfter = time.Duration(fileData.IdleStopMinutes) * time.Minute
	}
	board.IdleStopEnabled = fileData.IdleStopEnabled
}

func presetFromYaml(index int, entry yamlPreset) model.Preset {
	preset := model.Preset{
		Name:      entry.Name,
		TimeLimit: time.Duration(entry.Seconds) * time.Second,
		Wait:      entry.Wait,
		Color:     entry.Color,
	}
	if preset.Name == "" {
		preset.Name = fmt.Sprintf("Timer %d", index+1)
	}
	if preset.TimeLimit <= 0 {
		preset.TimeLimit = model.DefaultTimeLimit
	}
	if preset.Color == "" {
		preset.Color = model.Palette[index%len(model.Palette)]
	}
	for _, mark := range entry.Marks {
		if mark > 0 {
			preset.Marks = append(preset.Marks, mark)
		}
	}
	return preset
}
