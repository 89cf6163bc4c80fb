package main

import (
	"errors"
	"log"
	"log/slog"

	"kotimer/internal/core/clock"
	"kotimer/internal/core/countdown"
	"kotimer/internal/core/model"
	"kotimer/internal/platform"
	"kotimer/internal/storage"
	"kotimer/internal/ui/board"
	"kotimer/internal/ui/overlay"
	"kotimer/internal/ui/preferences"
	"kotimer/internal/ui/tray"
	"kotimer/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName         = "kotimer"
	appID           = "com.kotimer.app"
	timeIsUpMessage = "Time is up!"
	overlayOpacity  = uint8(217)
)

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			if activateErr := platform.ActivateRunning(appName); activateErr != nil {
				log.Printf("activate running instance: %v", activateErr)
			}
		}
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	config, err := storage.LoadBoard(appName)
	if err != nil {
		log.Printf("load presets: %v (using defaults)", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.AppIcon))

	session := &desk{
		app:    fyneApp,
		clock:  clock.OnLoop(clock.Real(), fyne.Do),
		idle:   platform.NewIdleProvider(),
		logger: slog.Default(),
	}
	session.board = board.New(fyneApp, "kotimer")
	session.overlay = overlay.New(fyneApp, overlay.Config{
		Opacity: overlayOpacity,
		Message: timeIsUpMessage,
	})

	prefsWindow := preferences.New(fyneApp, config, func(updated model.BoardConfig) {
		if err := storage.SaveBoard(appName, updated); err != nil {
			log.Printf("save presets: %v", err)
		}
		session.build(updated)
	})

	boardWindow := session.board.Window()
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		session.desktop = desktopApp
		session.tray = tray.New(desktopApp, "kotimer", tray.Callbacks{
			OnShowBoard: session.board.Show,
			OnStartAll: func() {
				session.forEach((*countdown.Timer).Start)
			},
			OnStopAll: func() {
				session.forEach((*countdown.Timer).Stop)
			},
			OnResetAll: func() {
				session.forEach(func(timer *countdown.Timer) {
					timer.Reset(countdown.KeepLimit, false)
				})
			},
			OnPreferences: prefsWindow.Show,
			OnQuit:        session.quit,
		})
		desktopApp.SetSystemTrayWindow(boardWindow)
		boardWindow.SetCloseIntercept(session.board.Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		boardWindow.SetCloseIntercept(session.quit)
	}

	guard.OnActivate(func() {
		fyne.Do(session.board.Show)
	})

	session.build(config)
	session.board.Show()
	session.forEach((*countdown.Timer).Start)

	fyneApp.Run()
}

// desk owns the timers built from the current presets and the windows
// bound to them.
type desk struct {
	app     fyne.App
	desktop desktop.App
	tray    *tray.Manager
	board   *board.Window
	overlay *overlay.Window
	clock   clock.Clock
	idle    platform.IdleProvider
	logger  *slog.Logger

	timers      []*countdown.Timer
	unsubscribe []func()
}

func (session *desk) build(config model.BoardConfig) {
	session.closeTimers()

	var keepGoing func() bool
	if config.IdleStopEnabled {
		keepGoing = platform.KeepGoingWhileActive(session.idle, config.IdleStopAfter, session.logger)
	}

	cards := make([]board.Card, 0, len(config.Presets))
	for _, preset := range config.Presets {
		timer := countdown.New(preset.Seconds(), countdown.Options{
			Wait:            preset.Wait,
			KeepGoing:       keepGoing,
			NotifyTimeMarks: preset.Marks,
			Clock:           session.clock,
			Logger:          session.logger.With(slog.String("timer", preset.Name)),
		})
		session.watch(timer, preset)
		session.timers = append(session.timers, timer)
		cards = append(cards, board.Card{Name: preset.Name, Color: preset.Color, Timer: timer})
	}

	session.board.SetCards(cards)
	session.refreshStatus()
}

func (session *desk) watch(timer *countdown.Timer, preset model.Preset) {
	accent := board.ParseHexColor(preset.Color)
	session.unsubscribe = append(session.unsubscribe,
		timer.On(countdown.EventTimeIsUp, func(countdown.Event) {
			session.overlay.Show(overlay.Session{
				Name:   preset.Name,
				Limit:  timer.TimeLimit(),
				Accent: accent,
				OnRestart: func() {
					timer.Reset(countdown.KeepLimit, true)
				},
			})
		}),
		timer.On(countdown.EventTimeMarkHit, func(event countdown.Event) {
			session.app.SendNotification(fyne.NewNotification(preset.Name,
				"Mark reached at "+countdown.FormatMinutesSeconds(event.TimeElapsed)))
		}),
		timer.On(countdown.EventTimerStopped, func(event countdown.Event) {
			session.logger.Info("timer stopped while idle",
				slog.String("timer", preset.Name),
				slog.Int("elapsed", event.TimeElapsed))
		}),
		timer.Running().Subscribe(func(bool) {
			session.refreshStatus()
		}),
	)
}

func (session *desk) refreshStatus() {
	if session.tray == nil {
		return
	}
	running := 0
	for _, timer := range session.timers {
		if timer.IsRunning() {
			running++
		}
	}
	session.tray.SetCounts(running, len(session.timers))
	if running > 0 {
		session.desktop.SetSystemTrayIcon(resources.MustIcon(resources.AppIcon))
		return
	}
	session.desktop.SetSystemTrayIcon(resources.MustIcon(resources.IdleIcon))
}

func (session *desk) forEach(apply func(*countdown.Timer)) {
	for _, timer := range session.timers {
		apply(timer)
	}
}

func (session *desk) closeTimers() {
	for _, unsubscribe := range session.unsubscribe {
		unsubscribe()
	}
	session.unsubscribe = nil
	session.forEach((*countdown.Timer).Close)
	session.timers = nil
}

func (session *desk) quit() {
	session.closeTimers()
	session.app.Quit()
}
