package model

import (
	"fmt"
	"time"
)

// DefaultTimeLimit is used for presets without a positive limit.
const DefaultTimeLimit = time.Minute

// Preset describes one countdown timer on the board.
type Preset struct {
	Name      string
	TimeLimit time.Duration
	Wait      bool
	Marks     []int
	Color     string
}

// Seconds returns the preset limit in whole seconds.
func (preset Preset) Seconds() int {
	return int(preset.TimeLimit / time.Second)
}

// BoardConfig contains the timers shown together and the idle policy
// applied to all of them.
type BoardConfig struct {
	Presets []Preset

	IdleStopEnabled bool
	IdleStopAfter   time.Duration
}

// Palette is the default card color cycle.
var Palette = []string{
	"#7CE8F9",
	"#E6DB74",
	"#F92672",
	"#70C72E",
}

// DefaultBoard returns four waiting timers of five and ten minutes.
func DefaultBoard() BoardConfig {
	limits := []time.Duration{5 * time.Minute, 5 * time.Minute, 10 * time.Minute, 10 * time.Minute}
	presets := make([]Preset, 0, len(limits))
	for i, limit := range limits {
		presets = append(presets, Preset{
			Name:      fmt.Sprintf("Timer %d", i+1),
			TimeLimit: limit,
			Wait:      true,
			Color:     Palette[i%len(Palette)],
		})
	}
	return BoardConfig{
		Presets:         presets,
		IdleStopEnabled: false,
		IdleStopAfter:   5 * time.Minute,
	}
}
