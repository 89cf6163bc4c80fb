package overlay

import (
	"context"
	"image/color"

	"kotimer/internal/core/countdown"
	"kotimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Opacity    uint8
	Fullscreen bool
	Message    string
	// StaticText keeps the title lit instead of blinking.
	StaticText bool
}

// Session describes the timer that just ran out.
type Session struct {
	Name      string
	Limit     int
	Accent    color.Color
	OnRestart func()
}

// Window manages the time-is-up overlay.
type Window struct {
	app           fyne.App
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	messageLabel  *canvas.Text
	limitLabel    *canvas.Text
	restartButton *widget.Button
	dismissButton *widget.Button
	blink         *animation.Engine
	accent        color.Color
	onRestart     func()
	shown         bool
}

const (
	overlayWidthFraction  = float32(0.18)
	overlayHeightFraction = float32(0.16)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

var (
	defaultAccent = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	dimText       = color.NRGBA{R: 110, G: 110, B: 110, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Time is up")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText("", defaultAccent)
	titleLabel.Alignment = fyne.TextAlignLeading
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	messageLabel := canvas.NewText(config.Message, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	messageLabel.Alignment = fyne.TextAlignLeading
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.TextSize = 15

	limitLabel := canvas.NewText("--:--", defaultAccent)
	limitLabel.Alignment = fyne.TextAlignLeading
	limitLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	limitLabel.TextSize = 16

	restartButton := widget.NewButton("Restart", nil)
	dismissButton := widget.NewButton("Dismiss", nil)
	buttons := container.NewGridWithColumns(2, restartButton, dismissButton)

	content := container.New(&panelLayout{}, titleLabel, messageLabel, limitLabel, buttons)
	window.SetContent(container.NewStack(background, content))

	overlay := &Window{
		app:           app,
		window:        window,
		config:        config,
		background:    background,
		titleLabel:    titleLabel,
		messageLabel:  messageLabel,
		limitLabel:    limitLabel,
		restartButton: restartButton,
		dismissButton: dismissButton,
		accent:        defaultAccent,
	}
	overlay.blink = animation.New(animation.DefaultConfig(), overlay.setLit)

	restartButton.OnTapped = overlay.restart
	dismissButton.OnTapped = overlay.Hide
	window.SetCloseIntercept(overlay.Hide)

	overlay.applyWindowMode()
	return overlay
}

// Show presents session. A later session replaces the one on screen.
func (overlay *Window) Show(session Session) {
	accent := session.Accent
	if accent == nil {
		accent = defaultAccent
	}

	overlay.blink.Stop()
	overlay.accent = accent
	overlay.onRestart = session.OnRestart
	overlay.titleLabel.Text = session.Name
	overlay.titleLabel.Color = accent
	overlay.titleLabel.Refresh()
	overlay.limitLabel.Text = countdown.FormatMinutesSeconds(session.Limit)
	overlay.limitLabel.Color = accent
	overlay.limitLabel.Refresh()
	if session.OnRestart == nil {
		overlay.restartButton.Disable()
	} else {
		overlay.restartButton.Enable()
	}

	overlay.applyWindowMode()
	overlay.shown = true
	overlay.window.Show()
	overlay.window.RequestFocus()
	if !overlay.config.StaticText {
		overlay.blink.Start(context.Background())
	}
}

// Hide closes the overlay.
func (overlay *Window) Hide() {
	overlay.blink.Stop()
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.shown = false
	overlay.onRestart = nil
	overlay.window.Hide()
}

// Visible reports whether a session is on screen.
func (overlay *Window) Visible() bool {
	return overlay.shown
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	overlay.background.FillColor = color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity}
	overlay.messageLabel.Text = config.Message
	overlay.applyWindowMode()
	canvas.Refresh(overlay.background)
	overlay.messageLabel.Refresh()
}

// setLit runs on the blink goroutine.
func (overlay *Window) setLit(lit bool) {
	fyne.Do(func() {
		textColor := overlay.accent
		if !lit {
			textColor = dimText
		}
		overlay.titleLabel.Color = textColor
		overlay.titleLabel.Refresh()
		overlay.limitLabel.Color = textColor
		overlay.limitLabel.Refresh()
	})
}

func (overlay *Window) restart() {
	handler := overlay.onRestart
	overlay.Hide()
	if handler != nil {
		handler()
	}
}

func (overlay *Window) applyWindowMode() {
	overlay.applyNativeOpacity(overlay.config.Opacity)
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// panelLayout stacks title, message and limit from the top and pins the
// button row to the bottom edge.
type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 4 {
		return
	}
	title := objects[0]
	message := objects[1]
	limit := objects[2]
	buttons := objects[3]

	pad := size.Height * 0.06
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	messageSize := message.MinSize()
	messageY := pad + titleSize.Height + 6
	message.Move(fyne.NewPos(pad, messageY))
	message.Resize(fyne.NewSize(availableWidth, messageSize.Height))

	limitSize := limit.MinSize()
	limitY := messageY + messageSize.Height + 8
	limit.Move(fyne.NewPos(pad, limitY))
	limit.Resize(limitSize)

	buttonsSize := buttons.MinSize()
	buttonsY := size.Height - pad - buttonsSize.Height
	if buttonsY < limitY+limitSize.Height {
		buttonsY = limitY + limitSize.Height
	}
	buttons.Move(fyne.NewPos(pad, buttonsY))
	buttons.Resize(fyne.NewSize(availableWidth, buttonsSize.Height))
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 4 {
		return fyne.NewSize(0, 0)
	}
	width := float32(0)
	height := float32(0)
	for _, object := range objects {
		size := object.MinSize()
		if size.Width > width {
			width = size.Width
		}
		height += size.Height
	}
	return fyne.NewSize(width+20, height+40)
}
