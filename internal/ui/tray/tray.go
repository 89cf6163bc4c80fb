package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowBoard   func()
	OnStartAll    func()
	OnStopAll     func()
	OnResetAll    func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	title      string
	statusItem *fyne.MenuItem
	callbacks  Callbacks
	running    int
	total      int
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// SetCounts updates the running-timers status line.
func (manager *Manager) SetCounts(running, total int) {
	if running == manager.running && total == manager.total {
		return
	}
	manager.running = running
	manager.total = total
	manager.statusItem.Label = StatusText(running, total)
	manager.refreshMenu()
}

// StatusText renders the status line for running of total timers.
func StatusText(running, total int) string {
	switch {
	case total == 0:
		return "Status: no timers"
	case running == 0:
		return fmt.Sprintf("Status: %d timers idle", total)
	default:
		return fmt.Sprintf("Status: %d of %d running", running, total)
	}
}

func (manager *Manager) item(label string, handler func()) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		if handler != nil {
			handler()
		}
	})
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		manager.item("Show timers", manager.callbacks.OnShowBoard),
		fyne.NewMenuItemSeparator(),
		manager.item("Start all", manager.callbacks.OnStartAll),
		manager.item("Stop all", manager.callbacks.OnStopAll),
		manager.item("Reset all", manager.callbacks.OnResetAll),
		fyne.NewMenuItemSeparator(),
		manager.item("Preferences", manager.callbacks.OnPreferences),
		manager.quitItem(),
	))
}

func (manager *Manager) quitItem() *fyne.MenuItem {
	quit := manager.item("Quit", manager.callbacks.OnQuit)
	quit.IsQuit = true
	return quit
}
