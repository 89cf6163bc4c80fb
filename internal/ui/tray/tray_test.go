package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Status: no timers", StatusText(0, 0))
	assert.Equal(t, "Status: 4 timers idle", StatusText(0, 4))
	assert.Equal(t, "Status: 2 of 4 running", StatusText(2, 4))
}

func TestSetCountsWithoutTray(t *testing.T) {
	manager := New(nil, "kotimer", Callbacks{})
	manager.SetCounts(1, 3)
	assert.Equal(t, "Status: 1 of 3 running", manager.statusItem.Label)
}
