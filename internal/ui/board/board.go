// Package board shows a grid of countdown timer cards.
package board

import (
	"fmt"
	"image/color"

	"kotimer/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const columns = 2

// Card binds one timer to the board.
type Card struct {
	Name  string
	Color string
	Timer *countdown.Timer
}

// Window manages the board UI.
type Window struct {
	window fyne.Window
	grid   *fyne.Container
	cards  []*cardView
}

type cardView struct {
	timer        *countdown.Timer
	container    *fyne.Container
	timeLabel    *canvas.Text
	elapsedLabel *canvas.Text
	toggleButton *widget.Button
	unsubscribe  []func()
}

// New creates the board window.
func New(app fyne.App, title string) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	grid := container.NewGridWithColumns(columns)
	window.SetContent(container.NewPadded(grid))
	window.Resize(fyne.NewSize(520, 360))

	return &Window{window: window, grid: grid}
}

// Window returns the underlying fyne window.
func (board *Window) Window() fyne.Window {
	return board.window
}

// SetCards replaces the cards shown on the board.
func (board *Window) SetCards(cards []Card) {
	for _, view := range board.cards {
		view.detach()
	}
	board.cards = board.cards[:0]
	board.grid.RemoveAll()

	for _, card := range cards {
		view := newCardView(card)
		board.cards = append(board.cards, view)
		board.grid.Add(view.container)
	}
	board.grid.Refresh()
}

// Show displays the board.
func (board *Window) Show() {
	board.window.Show()
	board.window.RequestFocus()
}

// Hide hides the board.
func (board *Window) Hide() {
	board.window.Hide()
}

func newCardView(card Card) *cardView {
	timer := card.Timer
	accent := ParseHexColor(card.Color)

	background := canvas.NewRectangle(color.NRGBA{R: accent.R, G: accent.G, B: accent.B, A: 60})
	background.StrokeColor = accent
	background.StrokeWidth = 2
	background.CornerRadius = 12

	nameLabel := canvas.NewText(card.Name, accent)
	nameLabel.Alignment = fyne.TextAlignCenter
	nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	nameLabel.TextSize = 16

	timeLabel := canvas.NewText(timer.TimeLeftStr().Get(), accent)
	timeLabel.Alignment = fyne.TextAlignCenter
	timeLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timeLabel.TextSize = 36

	elapsedLabel := canvas.NewText(elapsedText(timer.TimeElapsedStr().Get()), theme.Color(theme.ColorNameForeground))
	elapsedLabel.Alignment = fyne.TextAlignCenter
	elapsedLabel.TextSize = 12

	view := &cardView{
		timer:        timer,
		timeLabel:    timeLabel,
		elapsedLabel: elapsedLabel,
	}

	view.toggleButton = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), timer.Toggle)
	resetButton := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		timer.Reset(countdown.KeepLimit, false)
	})
	view.setRunning(timer.IsRunning())

	buttons := container.NewGridWithColumns(2, view.toggleButton, resetButton)
	content := container.NewVBox(nameLabel, timeLabel, elapsedLabel, buttons)
	view.container = container.NewStack(background, container.NewPadded(content))

	view.unsubscribe = append(view.unsubscribe,
		timer.TimeLeftStr().Subscribe(view.setTimeLeft),
		timer.TimeElapsedStr().Subscribe(view.setElapsed),
		timer.Running().Subscribe(view.setRunning),
	)
	return view
}

func (view *cardView) setTimeLeft(value string) {
	view.timeLabel.Text = value
	view.timeLabel.Refresh()
}

func (view *cardView) setElapsed(value string) {
	view.elapsedLabel.Text = elapsedText(value)
	view.elapsedLabel.Refresh()
}

func (view *cardView) setRunning(running bool) {
	if running {
		view.toggleButton.SetIcon(theme.MediaPauseIcon())
		view.toggleButton.SetText("Stop")
		return
	}
	view.toggleButton.SetIcon(theme.MediaPlayIcon())
	view.toggleButton.SetText("Start")
}

func (view *cardView) detach() {
	for _, unsubscribe := range view.unsubscribe {
		unsubscribe()
	}
	view.unsubscribe = nil
}

func elapsedText(value string) string {
	return fmt.Sprintf("elapsed %s", value)
}

// ParseHexColor parses #RRGGBB. Invalid input yields the first palette color.
func ParseHexColor(value string) color.NRGBA {
	var red, green, blue uint8
	if len(value) == 7 {
		if _, err := fmt.Sscanf(value, "#%02x%02x%02x", &red, &green, &blue); err == nil {
			return color.NRGBA{R: red, G: green, B: blue, A: 255}
		}
	}
	return color.NRGBA{R: 0x7C, G: 0xE8, B: 0xF9, A: 255}
}
