package preferences

import (
	"fmt"
	"time"

	"kotimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

type presetRow struct {
	name    *widget.Entry
	seconds *widget.Entry
	marks   *widget.Entry
	wait    *widget.Check
}

func (row presetRow) fields() presetFields {
	return presetFields{
		Name:    row.name.Text,
		Seconds: row.seconds.Text,
		Marks:   row.marks.Text,
		Wait:    row.wait.Checked,
	}
}

// Window edits the board presets.
type Window struct {
	window      fyne.Window
	board       model.BoardConfig
	onSave      func(model.BoardConfig)
	rowsBox     *fyne.Container
	rows        []presetRow
	idleCheck   *widget.Check
	idleMinutes *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, board model.BoardConfig, onSave func(model.BoardConfig)) *Window {
	window := app.NewWindow("Timer Presets")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		rowsBox:     container.NewVBox(),
		idleCheck:   widget.NewCheck("Stop timers when idle", nil),
		idleMinutes: widget.NewEntry(),
	}

	header := container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("Name", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Seconds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Marks", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Wait", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	addButton := widget.NewButton("Add timer", prefs.addDefaultRow)
	removeButton := widget.NewButton("Remove last", prefs.removeLastRow)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		header,
		prefs.rowsBox,
		container.NewHBox(addButton, removeButton),
		widget.NewSeparator(),
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Idle for"), prefs.idleMinutes, widget.NewLabel("min")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateBoard(prefs.board)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(560, 440))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateBoard(board)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateBoard replaces window values.
func (prefs *Window) UpdateBoard(board model.BoardConfig) {
	prefs.board = board
	prefs.rows = prefs.rows[:0]
	prefs.rowsBox.RemoveAll()
	for _, preset := range board.Presets {
		prefs.addRow(fieldsFromPreset(preset))
	}
	prefs.idleCheck.SetChecked(board.IdleStopEnabled)
	prefs.idleMinutes.SetText(fmt.Sprintf("%d", int(board.IdleStopAfter.Minutes())))
	prefs.rowsBox.Refresh()
}

// Board returns the configuration currently entered in the form.
func (prefs *Window) Board() model.BoardConfig {
	board := model.BoardConfig{
		Presets:         make([]model.Preset, 0, len(prefs.rows)),
		IdleStopEnabled: prefs.idleCheck.Checked,
		IdleStopAfter:   prefs.board.IdleStopAfter,
	}
	for i, row := range prefs.rows {
		var previous model.Preset
		if i < len(prefs.board.Presets) {
			previous = prefs.board.Presets[i]
		}
		board.Presets = append(board.Presets, applyFields(previous, i, row.fields()))
	}
	if minutes, ok := parsePositiveInt(prefs.idleMinutes.Text); ok {
		board.IdleStopAfter = time.Duration(minutes) * time.Minute
	}
	return board
}

func (prefs *Window) addRow(fields presetFields) {
	row := presetRow{
		name:    widget.NewEntry(),
		seconds: widget.NewEntry(),
		marks:   widget.NewEntry(),
		wait:    widget.NewCheck("", nil),
	}
	row.name.SetText(fields.Name)
	row.seconds.SetText(fields.Seconds)
	row.marks.SetText(fields.Marks)
	row.marks.SetPlaceHolder("e.g. 60, 120")
	row.wait.SetChecked(fields.Wait)

	prefs.rows = append(prefs.rows, row)
	prefs.rowsBox.Add(container.NewGridWithColumns(4, row.name, row.seconds, row.marks, row.wait))
}

func (prefs *Window) addDefaultRow() {
	prefs.addRow(presetFields{
		Name:    fmt.Sprintf("Timer %d", len(prefs.rows)+1),
		Seconds: fmt.Sprintf("%d", int(model.DefaultTimeLimit.Seconds())),
		Wait:    true,
	})
	prefs.rowsBox.Refresh()
}

func (prefs *Window) removeLastRow() {
	if len(prefs.rows) <= 1 {
		return
	}
	prefs.rows = prefs.rows[:len(prefs.rows)-1]
	objects := prefs.rowsBox.Objects
	prefs.rowsBox.Remove(objects[len(objects)-1])
}

func (prefs *Window) handleSave() {
	board := prefs.Board()
	prefs.board = board
	if prefs.onSave != nil {
		prefs.onSave(board)
	}
	prefs.window.Hide()
}
