//go:build !windows

package overlay

// Other drivers only honour the background alpha.
func (overlay *Window) applyNativeOpacity(uint8) {}
