package countdown

import "fmt"

// FormatMinutesSeconds renders seconds as MM:SS. Minutes wrap at one hour.
func FormatMinutesSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	minutes := (seconds / 60) % 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
