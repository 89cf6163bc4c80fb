package animation

import "time"

// DefaultConfig returns a calm attention blink for the time-is-up overlay.
func DefaultConfig() Config {
	return Config{
		LitDuration: Range{
			Min: 600 * time.Millisecond,
			Max: 800 * time.Millisecond,
		},
		DimDuration: Range{
			Min: 250 * time.Millisecond,
			Max: 350 * time.Millisecond,
		},
		DoubleBlinkChance: 0.12,
		DoubleBlinkGap: Range{
			Min: 80 * time.Millisecond,
			Max: 120 * time.Millisecond,
		},
		Limit: time.Minute,
	}
}
