package main

import (
	"kotimer/internal/core/model"
	"kotimer/internal/storage"

	"github.com/spf13/pflag"
)

// PresetFileOptions select the presets file shared with the desktop app.
type PresetFileOptions struct {
	File string
}

func (opts *PresetFileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.File, "file", "", "read presets from `path` instead of the user config directory")
}

func (opts PresetFileOptions) path() (string, error) {
	if opts.File != "" {
		return opts.File, nil
	}
	return storage.ResolvePath(appName)
}

func (opts PresetFileOptions) load() (model.BoardConfig, string, error) {
	path, err := opts.path()
	if err != nil {
		return model.DefaultBoard(), "", err
	}
	board, err := storage.LoadBoardFile(path)
	return board, path, err
}
