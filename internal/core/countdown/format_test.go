package countdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinutesSeconds(t *testing.T) {
	cases := map[int]string{
		-7:   "00:00",
		0:    "00:00",
		9:    "00:09",
		60:   "01:00",
		125:  "02:05",
		3599: "59:59",
		3600: "00:00",
		3725: "02:05",
	}
	for seconds, want := range cases {
		assert.Equal(t, want, FormatMinutesSeconds(seconds), "seconds=%d", seconds)
	}
}
